package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tastory-backend/internal/logger"
	"tastory-backend/internal/queue"
	"tastory-backend/middleware"
	"tastory-backend/services"
	"tastory-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// SearchRequest is the body of the main search endpoint.
type SearchRequest struct {
	Message string `json:"message" binding:"required"`
	Page    int    `json:"page"`
}

// SetupSearchRoutes registers the main search endpoint. Each successful
// search enqueues a best-effort log write consumed by the trending
// aggregator.
func SetupSearchRoutes(router *gin.Engine, search *services.SearchService, asynqClient *asynq.Client) {
	router.POST("/chat", func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "A search query is required", gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			utils.RespondWithBadRequest(c, "A search query is required", nil)
			return
		}
		if req.Page < 1 {
			req.Page = 1
		}

		// Log the query up front so trending sees it even if retrieval
		// fails; the result count is backfilled once the search finishes.
		// Both writes are fire-and-forget; a full queue never blocks the
		// response.
		normalized := search.NormalizedQueryText(req.Message)
		sessionID := middleware.GetSessionID(c)
		enqueue(asynqClient, func() (*asynq.Task, error) {
			return queue.NewSearchLogTask(normalized, sessionID, 0)
		})

		resp, err := search.Search(c.Request.Context(), req.Message, req.Page)
		if err != nil {
			if errors.Is(err, services.ErrNoQuery) {
				utils.RespondWithBadRequest(c, "A search query is required", nil)
				return
			}
			logger.Error("Search failed", "query", req.Message, "error", err)
			utils.RespondWithInternalError(c, "Recipe search failed. Please try again.", nil)
			return
		}

		enqueue(asynqClient, func() (*asynq.Task, error) {
			return queue.NewBackfillCountTask(normalized, sessionID, resp.TotalResults)
		})

		c.JSON(http.StatusOK, resp)
	})

	// GET variant for direct links and the browser address bar. Not
	// logged: trending should reflect typed searches, not shared links.
	router.GET("/search", func(c *gin.Context) {
		query := c.Query("q")
		if strings.TrimSpace(query) == "" {
			utils.RespondWithBadRequest(c, "A search query is required", nil)
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}

		resp, err := search.Search(c.Request.Context(), query, page)
		if err != nil {
			logger.Error("Search failed", "query", query, "error", err)
			utils.RespondWithInternalError(c, "Recipe search failed. Please try again.", nil)
			return
		}

		c.JSON(http.StatusOK, resp)
	})
}

func enqueue(client *asynq.Client, build func() (*asynq.Task, error)) {
	if client == nil {
		return
	}
	task, err := build()
	if err != nil {
		return
	}
	if _, err := client.Enqueue(task); err != nil {
		logger.Warn("Failed to enqueue task", "type", task.Type(), "error", err)
	}
}
