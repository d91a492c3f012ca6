package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

const defaultHistoryLimit = 50

type ShelfHandler struct {
	log     *logger.Logger
	shelves services.ShelfService
}

func NewShelfHandler(log *logger.Logger, shelves services.ShelfService) *ShelfHandler {
	return &ShelfHandler{log: log.With("handler", "ShelfHandler"), shelves: shelves}
}

// GET /api/me/shelves/current
func (h *ShelfHandler) CurrentlyReading(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, gin.H{"books": h.shelves.CurrentlyReading(c.Request.Context(), userID)})
}

// GET /api/me/shelves/reading
func (h *ShelfHandler) Reading(c *gin.Context) { h.shelf(c, h.shelves.Reading) }

// GET /api/me/shelves/want-to-read
func (h *ShelfHandler) WantToRead(c *gin.Context) { h.shelf(c, h.shelves.WantToRead) }

// GET /api/me/shelves/finished
func (h *ShelfHandler) Finished(c *gin.Context) { h.shelf(c, h.shelves.Finished) }

// GET /api/me/shelves/favorites
func (h *ShelfHandler) Favorites(c *gin.Context) { h.shelf(c, h.shelves.Favorites) }

func (h *ShelfHandler) shelf(c *gin.Context, list func(ctx context.Context, userID string) []reading.ShelfEntry) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, gin.H{"books": list(c.Request.Context(), userID)})
}

// GET /api/me/stats
func (h *ShelfHandler) Stats(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	response.RespondOK(c, h.shelves.Stats(c.Request.Context(), userID))
}

// GET /api/me/history?limit=
func (h *ShelfHandler) History(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	limit := queryInt(c, "limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	response.RespondOK(c, gin.H{"history": h.shelves.History(c.Request.Context(), userID, limit)})
}
