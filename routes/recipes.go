package routes

import (
	"errors"
	"net/http"
	"strconv"

	"tastory-backend/internal/logger"
	"tastory-backend/services"
	"tastory-backend/utils"

	"github.com/gin-gonic/gin"
)

// SetupRecipeRoutes registers single-recipe endpoints, including the
// calorie audit used to spot-check stored versus calculated values.
func SetupRecipeRoutes(router *gin.Engine, recipes *services.RecipeService) {
	router.GET("/recipe/:id/calories", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			utils.RespondWithBadRequest(c, "Recipe id must be numeric", nil)
			return
		}

		audit, err := recipes.AuditCalories(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrRecipeNotFound) {
				utils.RespondWithNotFound(c, "Recipe not found")
				return
			}
			logger.Error("Calorie audit failed", "recipe", id, "error", err)
			utils.RespondWithInternalError(c, "Could not audit recipe calories", nil)
			return
		}

		c.JSON(http.StatusOK, audit)
	})
}
