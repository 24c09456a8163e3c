package routes

import (
	"net/http"

	"tastory-backend/internal/logger"
	"tastory-backend/internal/telemetry"
	"tastory-backend/services"
	"tastory-backend/utils"

	"github.com/gin-gonic/gin"
)

// SetupTrendingRoutes registers the trending searches endpoint.
func SetupTrendingRoutes(router *gin.Engine, trending *services.TrendingService, metrics *telemetry.Metrics) {
	router.GET("/trending", func(c *gin.Context) {
		list, cached, err := trending.Get(c.Request.Context())
		if err != nil {
			logger.Error("Trending computation failed", "error", err)
			utils.RespondWithInternalError(c, "Could not load trending searches", nil)
			return
		}

		if metrics != nil {
			outcome := "miss"
			if cached {
				outcome = "hit"
			}
			metrics.RecordTrendingCache(outcome)
		}

		c.JSON(http.StatusOK, list)
	})
}
