package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

const endSessionFailed = "Failed to end reading session"

type SessionHandler struct {
	log      *logger.Logger
	sessions services.ReadingSessionService
}

func NewSessionHandler(log *logger.Logger, sessions services.ReadingSessionService) *SessionHandler {
	return &SessionHandler{log: log.With("handler", "SessionHandler"), sessions: sessions}
}

// POST /api/books/:bookId/sessions
// body: { "startPage": 1 }
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	var req struct {
		StartPage any `json:"startPage"`
	}
	if !bindJSON(c, &req) {
		return
	}
	startPage, ok := requiredInt(c, req.StartPage, "startPage")
	if !ok {
		return
	}
	id, err := h.sessions.StartSession(c.Request.Context(), userID, bookID, startPage)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			response.RespondError(c, http.StatusConflict, "session_already_active", err)
			return
		}
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"sessionId": id})
}

// POST /api/sessions/:sessionId/end
// body: { "endPage": 120, "notes": "..." }
func (h *SessionHandler) EndSession(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	sessionID := pathID(c, "sessionId", "invalid_session_id")
	if sessionID == "" {
		return
	}
	var req struct {
		EndPage any    `json:"endPage"`
		Notes   string `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	endPage, ok := requiredInt(c, req.EndPage, "endPage")
	if !ok {
		return
	}
	sum, err := h.sessions.EndSession(c.Request.Context(), userID, sessionID, endPage, req.Notes)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidState) || errors.Is(err, apperr.ErrNotFound) {
			response.RespondError(c, http.StatusConflict, "end_session_failed", errors.New(endSessionFailed))
			return
		}
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, sum)
}

// GET /api/sessions/active?bookId=
func (h *SessionHandler) ActiveSession(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	active, _ := h.sessions.ActiveSession(c.Request.Context(), userID, strings.TrimSpace(c.Query("bookId")))
	response.RespondOK(c, gin.H{"session": active})
}

// GET /api/books/:bookId/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	sessions, _ := h.sessions.BookSessions(c.Request.Context(), userID, bookID)
	response.RespondOK(c, gin.H{"sessions": sessions})
}

// GET /api/books/:bookId/sessions/stats
func (h *SessionHandler) SessionStats(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	bookID := pathID(c, "bookId", "invalid_book_id")
	if bookID == "" {
		return
	}
	stats, _ := h.sessions.UserBookStats(c.Request.Context(), userID, bookID)
	response.RespondOK(c, gin.H{"stats": stats})
}
