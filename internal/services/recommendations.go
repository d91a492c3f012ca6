package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type RecommendationResult struct {
	Filter          reading.Filter           `json:"filter"`
	Recommendations []reading.Recommendation `json:"recommendations"`
}

type RecommendationService interface {
	// Recommend never fails: an unreadable store yields an empty list.
	Recommend(ctx context.Context, userID, filter string) RecommendationResult
	// Rank is Recommend with the store error surfaced, for callers that track failures.
	Rank(ctx context.Context, userID string, filter reading.Filter) ([]reading.Recommendation, error)
}

type recommendationService struct {
	log   *logger.Logger
	repo  graph.RecommendationRepo
	pool  int
	limit int
}

func NewRecommendationService(log *logger.Logger, repo graph.RecommendationRepo, pool, limit int) RecommendationService {
	if limit <= 0 || limit > reading.MaxRecommendations {
		limit = reading.MaxRecommendations
	}
	if pool < limit {
		pool = limit
	}
	return &recommendationService{
		log:   log.With("service", "RecommendationService"),
		repo:  repo,
		pool:  pool,
		limit: limit,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID, raw string) RecommendationResult {
	filter := reading.ParseFilter(raw)
	recs, err := s.Rank(ctx, userID, filter)
	if err != nil {
		s.log.Warn("Recommendations unavailable", "user_id", userID, "filter", filter, "error", err)
		recs = []reading.Recommendation{}
	}
	return RecommendationResult{Filter: filter, Recommendations: recs}
}

func (s *recommendationService) Rank(ctx context.Context, userID string, filter reading.Filter) ([]reading.Recommendation, error) {
	var (
		candidates []reading.Candidate
		exclude    map[string]struct{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.repo.Candidates(gctx, userID, filter, s.pool)
		return err
	})
	g.Go(func() error {
		ids, err := s.repo.InteractedBookIDs(gctx, userID)
		if err != nil {
			// Candidate queries already exclude interacted books.
			s.log.Warn("Interacted books lookup failed", "user_id", userID, "error", err)
			ids = map[string]struct{}{}
		}
		exclude = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return []reading.Recommendation{}, err
	}
	return reading.Rank(filter, candidates, exclude, s.limit), nil
}
