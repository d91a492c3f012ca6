package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

const (
	BranchCurrentlyReading = "currentlyReading"
	BranchTrendingInGenres = "trendingInGenres"
	BranchSocialTrending   = "socialTrending"
	BranchClubTrending     = "clubTrending"
	BranchLocalTrending    = "localTrending"
	BranchRecommendations  = "recommendations"
	BranchUpcomingEvents   = "upcomingEvents"
	BranchRecentlyAdded    = "recentlyAdded"
	BranchAdaptations      = "adaptations"

	BranchStatus        = "status"
	BranchReview        = "review"
	BranchActiveSession = "activeSession"
	BranchSessions      = "sessions"
	BranchSessionStats  = "sessionStats"
	BranchBookStats     = "bookStats"
)

type HomeFeed struct {
	Filter           reading.Filter               `json:"filter"`
	CurrentlyReading []reading.CurrentlyReading   `json:"currentlyReading"`
	TrendingInGenres []reading.TrendingBook       `json:"trendingInGenres"`
	SocialTrending   []reading.SocialTrendingBook `json:"socialTrending"`
	ClubTrending     []reading.ClubTrendingBook   `json:"clubTrending"`
	LocalTrending    []reading.LocalTrendingBook  `json:"localTrending"`
	Recommendations  []reading.Recommendation     `json:"recommendations"`
	UpcomingEvents   []reading.Event              `json:"upcomingEvents"`
	RecentlyAdded    []reading.RecentBook         `json:"recentlyAdded"`
	Adaptations      []reading.Adaptation         `json:"adaptations"`
	Failed           []string                     `json:"failed"`
}

func emptyHomeFeed(filter reading.Filter) HomeFeed {
	return HomeFeed{
		Filter:           filter,
		CurrentlyReading: []reading.CurrentlyReading{},
		TrendingInGenres: []reading.TrendingBook{},
		SocialTrending:   []reading.SocialTrendingBook{},
		ClubTrending:     []reading.ClubTrendingBook{},
		LocalTrending:    []reading.LocalTrendingBook{},
		Recommendations:  []reading.Recommendation{},
		UpcomingEvents:   []reading.Event{},
		RecentlyAdded:    []reading.RecentBook{},
		Adaptations:      []reading.Adaptation{},
		Failed:           []string{},
	}
}

type BookPage struct {
	Book          reading.BookDetail       `json:"book"`
	Status        reading.BookStatus       `json:"status"`
	Review        *reading.Review          `json:"review"`
	ActiveSession *reading.ActiveSession   `json:"activeSession"`
	Sessions      []reading.Session        `json:"sessions"`
	SessionStats  reading.SessionStats     `json:"sessionStats"`
	BookStats     reading.BookReadingStats `json:"bookStats"`
	Failed        []string                 `json:"failed"`
}

type FeedService interface {
	HomeFeed(ctx context.Context, userID, filter string) HomeFeed
	BookDetail(ctx context.Context, viewerID, bookID string) (reading.BookDetail, error)
	// BookPage fails only when the book itself cannot be loaded.
	BookPage(ctx context.Context, userID, bookID string) (BookPage, error)
}

type feedService struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	feed     graph.FeedRepo
	books    graph.BookRepo
	shelves  graph.ShelfRepo
	status   graph.StatusRepo
	sessions graph.SessionRepo
	recs     RecommendationService
	now      func() time.Time
}

func NewFeedService(
	log *logger.Logger,
	metrics *observability.Metrics,
	feed graph.FeedRepo,
	books graph.BookRepo,
	shelves graph.ShelfRepo,
	status graph.StatusRepo,
	sessions graph.SessionRepo,
	recs RecommendationService,
	now func() time.Time,
) FeedService {
	if now == nil {
		now = time.Now
	}
	return &feedService{
		log:      log.With("service", "FeedService"),
		metrics:  metrics,
		feed:     feed,
		books:    books,
		shelves:  shelves,
		status:   status,
		sessions: sessions,
		recs:     recs,
		now:      now,
	}
}

func (s *feedService) HomeFeed(ctx context.Context, userID, raw string) HomeFeed {
	ctx, span := observability.StartSpan(ctx, "FeedService.HomeFeed", attribute.String("user.id", userID))
	filter := reading.ParseFilter(raw)
	out := emptyHomeFeed(filter)
	now := s.now()

	f := newFanout("home", s.log, s.metrics)
	f.run(BranchCurrentlyReading, into(&out.CurrentlyReading, func() ([]reading.CurrentlyReading, error) {
		return s.shelves.CurrentlyReading(ctx, userID)
	}))
	f.run(BranchTrendingInGenres, into(&out.TrendingInGenres, func() ([]reading.TrendingBook, error) {
		return s.feed.TrendingInGenres(ctx, userID, now)
	}))
	f.run(BranchSocialTrending, into(&out.SocialTrending, func() ([]reading.SocialTrendingBook, error) {
		return s.feed.SocialTrending(ctx)
	}))
	f.run(BranchClubTrending, into(&out.ClubTrending, func() ([]reading.ClubTrendingBook, error) {
		return s.feed.ClubTrending(ctx)
	}))
	f.run(BranchLocalTrending, into(&out.LocalTrending, func() ([]reading.LocalTrendingBook, error) {
		return s.feed.LocalTrending(ctx, userID, now)
	}))
	f.run(BranchRecommendations, into(&out.Recommendations, func() ([]reading.Recommendation, error) {
		return s.recs.Rank(ctx, userID, filter)
	}))
	f.run(BranchUpcomingEvents, into(&out.UpcomingEvents, func() ([]reading.Event, error) {
		return s.feed.UpcomingEvents(ctx, userID, now)
	}))
	f.run(BranchRecentlyAdded, into(&out.RecentlyAdded, func() ([]reading.RecentBook, error) {
		return s.feed.RecentlyAdded(ctx, now)
	}))
	f.run(BranchAdaptations, into(&out.Adaptations, func() ([]reading.Adaptation, error) {
		return s.feed.Adaptations(ctx, userID)
	}))
	out.Failed = f.wait()

	span.SetAttributes(attribute.Int("feed.failed_branches", len(out.Failed)))
	observability.EndSpan(span, nil)
	return out
}

func (s *feedService) BookDetail(ctx context.Context, viewerID, bookID string) (reading.BookDetail, error) {
	out, err := s.books.Detail(ctx, viewerID, bookID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.log.Error("Failed to load book", "book_id", bookID, "error", err)
		}
		return reading.BookDetail{}, err
	}
	return out, nil
}

func (s *feedService) BookPage(ctx context.Context, userID, bookID string) (page BookPage, err error) {
	ctx, span := observability.StartSpan(ctx, "FeedService.BookPage",
		attribute.String("user.id", userID), attribute.String("book.id", bookID))
	defer func() { observability.EndSpan(span, err) }()

	now := s.now()
	page = BookPage{Status: reading.DefaultBookStatus(), Sessions: []reading.Session{}}
	var detailErr error

	f := newFanout("book", s.log, s.metrics)
	f.g.Go(func() error {
		page.Book, detailErr = s.books.Detail(ctx, userID, bookID)
		return nil
	})
	f.run(BranchStatus, into(&page.Status, func() (reading.BookStatus, error) {
		return s.status.Get(ctx, userID, bookID)
	}))
	f.run(BranchReview, into(&page.Review, func() (*reading.Review, error) {
		return s.status.Review(ctx, userID, bookID)
	}))
	f.run(BranchActiveSession, into(&page.ActiveSession, func() (*reading.ActiveSession, error) {
		row, err := s.sessions.Active(ctx, userID, bookID)
		if err != nil || row == nil {
			return nil, err
		}
		active := row.Session.ToActive(row.Book, now)
		return &active, nil
	}))
	f.run(BranchSessions, into(&page.Sessions, func() ([]reading.Session, error) {
		return s.sessions.Closed(ctx, userID, bookID)
	}))
	f.run(BranchSessionStats, into(&page.SessionStats, func() (reading.SessionStats, error) {
		return s.sessions.UserBookStats(ctx, userID, bookID)
	}))
	f.run(BranchBookStats, into(&page.BookStats, func() (reading.BookReadingStats, error) {
		return s.sessions.BookStats(ctx, bookID)
	}))
	page.Failed = f.wait()

	if detailErr != nil {
		if errors.Is(detailErr, apperr.ErrNotFound) {
			return BookPage{}, detailErr
		}
		s.log.Error("Failed to load book for page", "book_id", bookID, "error", detailErr)
		return BookPage{}, apperr.NotFound("book %s could not be loaded", bookID)
	}
	return page, nil
}
