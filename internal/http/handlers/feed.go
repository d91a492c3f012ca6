package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

type FeedHandler struct {
	log  *logger.Logger
	feed services.FeedService
	recs services.RecommendationService
}

func NewFeedHandler(log *logger.Logger, feed services.FeedService, recs services.RecommendationService) *FeedHandler {
	return &FeedHandler{log: log.With("handler", "FeedHandler"), feed: feed, recs: recs}
}

// GET /api/home?filter=similar|friends|profession
func (h *FeedHandler) Home(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, h.feed.HomeFeed(c.Request.Context(), userID, c.Query("filter")))
}

// GET /api/recommendations?filter=similar|friends|profession
func (h *FeedHandler) Recommendations(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, h.recs.Recommend(c.Request.Context(), userID, c.Query("filter")))
}
