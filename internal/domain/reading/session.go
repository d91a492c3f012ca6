package reading

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

// Session is one timed reading interval for a (user, book) pair.
// Lifecycle: created active, closed exactly once, never mutated afterwards.
type Session struct {
	ID              string     `json:"sessionId"`
	UserID          string     `json:"userId,omitempty"`
	BookID          string     `json:"bookId,omitempty"`
	StartPage       int        `json:"startPage"`
	StartTime       time.Time  `json:"startTime"`
	EndPage         *int       `json:"endPage,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	PagesRead       *int       `json:"pagesRead,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Active          bool       `json:"active"`
}

type BookRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage,omitempty"`
}

// ActiveSession is an open session with its duration computed at read time.
type ActiveSession struct {
	SessionID              string    `json:"sessionId"`
	StartPage              int       `json:"startPage"`
	StartTime              time.Time `json:"startTime"`
	CurrentDurationMinutes int       `json:"currentDurationMinutes"`
	Book                   BookRef   `json:"book"`
}

// SessionSummary is what closing a session reports back.
type SessionSummary struct {
	SessionID       string  `json:"sessionId"`
	StartPage       int     `json:"startPage"`
	EndPage         int     `json:"endPage"`
	DurationMinutes int     `json:"durationMinutes"`
	PagesRead       int     `json:"pagesRead"`
	PercentComplete float64 `json:"percentComplete"`
}

type SessionStats struct {
	SessionCount        int     `json:"sessionCount"`
	TotalReadingMinutes int     `json:"totalReadingMinutes"`
	TotalPagesRead      int     `json:"totalPagesRead"`
	AvgSessionDuration  float64 `json:"avgSessionDuration"`
	AvgPagesPerSession  float64 `json:"avgPagesPerSession"`
}

type BookReadingStats struct {
	SessionCount       int     `json:"sessionCount"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
	AvgPagesPerSession float64 `json:"avgPagesPerSession"`
	AvgDaysToFinish    float64 `json:"avgDaysToFinish"`
}

func NewSessionID() string {
	return "RS-" + uuid.NewString()
}

// NewSession opens a session. The start page must be at least 1.
func NewSession(userID, bookID string, startPage int, now time.Time) (*Session, error) {
	userID = strings.TrimSpace(userID)
	bookID = strings.TrimSpace(bookID)
	if userID == "" || bookID == "" {
		return nil, apperr.InvalidArgument("user id and book id are required")
	}
	if startPage < 1 {
		return nil, apperr.InvalidArgument("start page must be >= 1, got %d", startPage)
	}
	return &Session{
		ID:        NewSessionID(),
		UserID:    userID,
		BookID:    bookID,
		StartPage: startPage,
		StartTime: now.UTC(),
		Active:    true,
	}, nil
}

// DurationMinutes is the whole number of minutes between start and end, never negative.
func DurationMinutes(start, end time.Time) int {
	if start.IsZero() || end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// Close moves an active session to closed. pagesRead may be negative when the
// reader went backwards; that is recorded as-is.
func (s *Session) Close(endPage int, notes string, pageCount int, now time.Time) (SessionSummary, error) {
	if s == nil {
		return SessionSummary{}, apperr.NotFound("reading session")
	}
	if !s.Active {
		return SessionSummary{}, apperr.InvalidState("reading session %s is not active", s.ID)
	}
	if endPage < 0 {
		return SessionSummary{}, apperr.InvalidArgument("end page must be >= 0, got %d", endPage)
	}
	end := now.UTC()
	duration := DurationMinutes(s.StartTime, end)
	pagesRead := endPage - s.StartPage

	s.EndPage = &endPage
	s.EndTime = &end
	s.DurationMinutes = &duration
	s.PagesRead = &pagesRead
	s.Notes = strings.TrimSpace(notes)
	s.Active = false

	return SessionSummary{
		SessionID:       s.ID,
		StartPage:       s.StartPage,
		EndPage:         endPage,
		DurationMinutes: duration,
		PagesRead:       pagesRead,
		PercentComplete: PercentComplete(endPage, pageCount),
	}, nil
}

// ToActive projects an open session for display at time now.
func (s *Session) ToActive(book BookRef, now time.Time) ActiveSession {
	return ActiveSession{
		SessionID:              s.ID,
		StartPage:              s.StartPage,
		StartTime:              s.StartTime,
		CurrentDurationMinutes: DurationMinutes(s.StartTime, now),
		Book:                   book,
	}
}
