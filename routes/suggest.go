package routes

import (
	"net/http"

	"tastory-backend/internal/logger"
	"tastory-backend/services"

	"github.com/gin-gonic/gin"
)

// SetupSuggestRoutes registers the autocomplete endpoint.
func SetupSuggestRoutes(router *gin.Engine, suggest *services.SuggestService) {
	router.GET("/suggest", func(c *gin.Context) {
		names, err := suggest.Suggest(c.Request.Context(), c.Query("query"))
		if err != nil {
			logger.Warn("Suggest lookup failed", "error", err)
			// Autocomplete is cosmetic; degrade to no suggestions.
			c.JSON(http.StatusOK, []string{})
			return
		}
		c.JSON(http.StatusOK, names)
	})
}
