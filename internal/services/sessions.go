package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type ReadingSessionService interface {
	StartSession(ctx context.Context, userID, bookID string, startPage int) (string, error)
	EndSession(ctx context.Context, userID, sessionID string, endPage int, notes string) (reading.SessionSummary, error)
	ActiveSession(ctx context.Context, userID, bookID string) (*reading.ActiveSession, error)
	BookSessions(ctx context.Context, userID, bookID string) ([]reading.Session, error)
	UserBookStats(ctx context.Context, userID, bookID string) (reading.SessionStats, error)
	BookStats(ctx context.Context, bookID string) (reading.BookReadingStats, error)
}

type readingSessionService struct {
	log      *logger.Logger
	sessions graph.SessionRepo
	locker   redis.Locker
	lockTTL  time.Duration
	now      func() time.Time
}

func NewReadingSessionService(
	log *logger.Logger,
	sessions graph.SessionRepo,
	locker redis.Locker,
	lockTTL time.Duration,
	now func() time.Time,
) ReadingSessionService {
	if now == nil {
		now = time.Now
	}
	return &readingSessionService{
		log:      log.With("service", "ReadingSessionService"),
		sessions: sessions,
		locker:   locker,
		lockTTL:  lockTTL,
		now:      now,
	}
}

func (s *readingSessionService) StartSession(ctx context.Context, userID, bookID string, startPage int) (id string, err error) {
	ctx, span := observability.StartSpan(ctx, "ReadingSessionService.StartSession",
		attribute.String("user.id", userID), attribute.String("book.id", bookID))
	defer func() { observability.EndSpan(span, err) }()

	session, err := reading.NewSession(userID, bookID, startPage, s.now())
	if err != nil {
		return "", err
	}
	err = withLock(ctx, s.locker, sessionLockKey(session.UserID, session.BookID), s.lockTTL, func() error {
		return s.sessions.Start(ctx, session)
	})
	if err != nil {
		s.log.Error("Failed to start reading session", "user_id", userID, "book_id", bookID, "error", err)
		return "", err
	}
	s.log.Info("Reading session started", "session_id", session.ID, "user_id", userID, "book_id", bookID)
	return session.ID, nil
}

func (s *readingSessionService) EndSession(ctx context.Context, userID, sessionID string, endPage int, notes string) (sum reading.SessionSummary, err error) {
	ctx, span := observability.StartSpan(ctx, "ReadingSessionService.EndSession",
		attribute.String("user.id", userID), attribute.String("session.id", sessionID))
	defer func() { observability.EndSpan(span, err) }()

	sum, err = s.sessions.End(ctx, userID, sessionID, endPage, notes, s.now())
	if err != nil {
		s.log.Error("Failed to end reading session", "user_id", userID, "session_id", sessionID, "error", err)
		return reading.SessionSummary{}, err
	}
	return sum, nil
}

// ActiveSession reports nil when nothing is open or the store cannot be read.
func (s *readingSessionService) ActiveSession(ctx context.Context, userID, bookID string) (*reading.ActiveSession, error) {
	row, err := s.sessions.Active(ctx, userID, bookID)
	if err != nil {
		s.log.Warn("Active session lookup failed", "user_id", userID, "book_id", bookID, "error", err)
		return nil, nil
	}
	if row == nil {
		return nil, nil
	}
	active := row.Session.ToActive(row.Book, s.now())
	return &active, nil
}

func (s *readingSessionService) BookSessions(ctx context.Context, userID, bookID string) ([]reading.Session, error) {
	out, err := s.sessions.Closed(ctx, userID, bookID)
	if err != nil {
		s.log.Warn("Closed sessions lookup failed", "user_id", userID, "book_id", bookID, "error", err)
		return []reading.Session{}, nil
	}
	return out, nil
}

func (s *readingSessionService) UserBookStats(ctx context.Context, userID, bookID string) (reading.SessionStats, error) {
	out, err := s.sessions.UserBookStats(ctx, userID, bookID)
	if err != nil {
		s.log.Warn("Session stats lookup failed", "user_id", userID, "book_id", bookID, "error", err)
		return reading.SessionStats{}, nil
	}
	return out, nil
}

func (s *readingSessionService) BookStats(ctx context.Context, bookID string) (reading.BookReadingStats, error) {
	out, err := s.sessions.BookStats(ctx, bookID)
	if err != nil {
		s.log.Warn("Book reading stats lookup failed", "book_id", bookID, "error", err)
		return reading.BookReadingStats{}, nil
	}
	return out, nil
}
