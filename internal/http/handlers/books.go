package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

type BookHandler struct {
	log      *logger.Logger
	feed     services.FeedService
	status   services.BookStatusService
	sessions services.ReadingSessionService
}

func NewBookHandler(
	log *logger.Logger,
	feed services.FeedService,
	status services.BookStatusService,
	sessions services.ReadingSessionService,
) *BookHandler {
	return &BookHandler{
		log:      log.With("handler", "BookHandler"),
		feed:     feed,
		status:   status,
		sessions: sessions,
	}
}

// GET /api/books/:bookId
func (h *BookHandler) GetBook(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	book, err := h.feed.BookDetail(c.Request.Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "book_not_found", err)
			return
		}
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"book": book})
}

// GET /api/books/:bookId/page
func (h *BookHandler) GetBookPage(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	page, err := h.feed.BookPage(c.Request.Context(), userID, bookID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "book_not_found", err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/books/:bookId/stats
func (h *BookHandler) GetBookStats(c *gin.Context) {
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	stats, _ := h.sessions.BookStats(c.Request.Context(), bookID)
	response.RespondOK(c, gin.H{"stats": stats})
}

// GET /api/books/:bookId/status
func (h *BookHandler) GetStatus(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	st, _ := h.status.GetStatus(c.Request.Context(), userID, bookID)
	response.RespondOK(c, st)
}

// PUT /api/books/:bookId/status
// body: { "status": "want-to-read" | "reading" | "finished", "currentPage": 12 }
func (h *BookHandler) UpdateStatus(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	var req struct {
		Status      string `json:"status"`
		CurrentPage any    `json:"currentPage"`
	}
	if !bindJSON(c, &req) {
		return
	}
	currentPage, ok := optionalInt(c, req.CurrentPage, "currentPage")
	if !ok {
		return
	}
	st, err := h.status.UpdateStatus(c.Request.Context(), userID, bookID, req.Status, currentPage)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": st})
}

// PUT /api/books/:bookId/rating
// body: { "rating": 1..5 }
func (h *BookHandler) RateBook(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	var req struct {
		Rating any `json:"rating"`
	}
	if !bindJSON(c, &req) {
		return
	}
	value, ok := requiredInt(c, req.Rating, "rating")
	if !ok {
		return
	}
	rating, err := h.status.RateBook(c.Request.Context(), userID, bookID, value)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rating)
}

// GET /api/books/:bookId/review
func (h *BookHandler) GetReview(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	review, _ := h.status.GetReview(c.Request.Context(), userID, bookID)
	response.RespondOK(c, gin.H{"review": review})
}

// PUT /api/books/:bookId/review
// body: { "content": "..." }; blank content deletes the review.
func (h *BookHandler) SaveReview(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.status.SaveReview(c.Request.Context(), userID, bookID, req.Content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"review": review})
}

// PUT /api/books/:bookId/progress
// body: { "currentPage": 42 }
func (h *BookHandler) UpdateProgress(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	var req struct {
		CurrentPage any `json:"currentPage"`
	}
	if !bindJSON(c, &req) {
		return
	}
	page, ok := requiredInt(c, req.CurrentPage, "currentPage")
	if !ok {
		return
	}
	progress, err := h.status.UpdateCurrentPage(c.Request.Context(), userID, bookID, page)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, progress)
}
