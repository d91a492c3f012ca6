package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type BookStatusService interface {
	GetStatus(ctx context.Context, userID, bookID string) (reading.BookStatus, error)
	UpdateStatus(ctx context.Context, userID, bookID, status string, currentPage *int) (reading.Status, error)
	UpdateCurrentPage(ctx context.Context, userID, bookID string, currentPage int) (reading.PageProgress, error)
	RateBook(ctx context.Context, userID, bookID string, rating int) (reading.Rating, error)
	GetReview(ctx context.Context, userID, bookID string) (*reading.Review, error)
	// SaveReview deletes the review and returns nil for blank content.
	SaveReview(ctx context.Context, userID, bookID, content string) (*reading.Review, error)
}

type bookStatusService struct {
	log    *logger.Logger
	status graph.StatusRepo
	now    func() time.Time
}

func NewBookStatusService(log *logger.Logger, status graph.StatusRepo, now func() time.Time) BookStatusService {
	if now == nil {
		now = time.Now
	}
	return &bookStatusService{
		log:    log.With("service", "BookStatusService"),
		status: status,
		now:    now,
	}
}

func (s *bookStatusService) GetStatus(ctx context.Context, userID, bookID string) (reading.BookStatus, error) {
	out, err := s.status.Get(ctx, userID, bookID)
	if err != nil {
		s.log.Warn("Book status lookup failed", "user_id", userID, "book_id", bookID, "error", err)
		return reading.DefaultBookStatus(), nil
	}
	return out, nil
}

func (s *bookStatusService) UpdateStatus(ctx context.Context, userID, bookID, raw string, currentPage *int) (st reading.Status, err error) {
	ctx, span := observability.StartSpan(ctx, "BookStatusService.UpdateStatus",
		attribute.String("user.id", userID), attribute.String("book.id", bookID), attribute.String("status", raw))
	defer func() { observability.EndSpan(span, err) }()

	change, err := reading.NewStatusChange(raw, currentPage, s.now())
	if err != nil {
		return "", err
	}
	if err := s.status.Replace(ctx, userID, bookID, change); err != nil {
		s.log.Error("Failed to update book status", "user_id", userID, "book_id", bookID, "status", change.Status, "error", err)
		return "", err
	}
	return change.Status, nil
}

func (s *bookStatusService) UpdateCurrentPage(ctx context.Context, userID, bookID string, currentPage int) (reading.PageProgress, error) {
	if currentPage < 1 {
		return reading.PageProgress{}, apperr.InvalidArgument("current page must be >= 1, got %d", currentPage)
	}
	out, err := s.status.UpdatePage(ctx, userID, bookID, currentPage, s.now())
	if err != nil {
		s.log.Error("Failed to update current page", "user_id", userID, "book_id", bookID, "error", err)
		return reading.PageProgress{}, err
	}
	return out, nil
}

func (s *bookStatusService) RateBook(ctx context.Context, userID, bookID string, rating int) (reading.Rating, error) {
	if err := reading.ValidateRating(rating); err != nil {
		return reading.Rating{}, err
	}
	out, err := s.status.Rate(ctx, userID, bookID, rating, s.now())
	if err != nil {
		s.log.Error("Failed to rate book", "user_id", userID, "book_id", bookID, "error", err)
		return reading.Rating{}, err
	}
	return out, nil
}

func (s *bookStatusService) GetReview(ctx context.Context, userID, bookID string) (*reading.Review, error) {
	out, err := s.status.Review(ctx, userID, bookID)
	if err != nil {
		s.log.Warn("Review lookup failed", "user_id", userID, "book_id", bookID, "error", err)
		return nil, nil
	}
	return out, nil
}

func (s *bookStatusService) SaveReview(ctx context.Context, userID, bookID, content string) (*reading.Review, error) {
	content, blank := reading.NormalizeReview(content)
	if blank {
		if err := s.status.DeleteReview(ctx, userID, bookID); err != nil {
			s.log.Error("Failed to delete review", "user_id", userID, "book_id", bookID, "error", err)
			return nil, err
		}
		return nil, nil
	}
	out, err := s.status.SaveReview(ctx, userID, bookID, content, s.now())
	if err != nil {
		s.log.Error("Failed to save review", "user_id", userID, "book_id", bookID, "error", err)
		return nil, err
	}
	return &out, nil
}
