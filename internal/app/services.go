package app

import (
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

type Services struct {
	Sessions        services.ReadingSessionService
	Status          services.BookStatusService
	Recommendations services.RecommendationService
	Goals           services.ReadingGoalService
	Shelves         services.ShelfService
	Feed            services.FeedService
	Profiles        services.ProfileService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, repos Repos) Services {
	log.Info("Wiring services...")
	now := time.Now

	recs := services.NewRecommendationService(
		log,
		repos.Recommendation,
		cfg.Recommendations.CandidatePool,
		cfg.Recommendations.Limit,
	)

	return Services{
		Sessions:        services.NewReadingSessionService(log, repos.Session, clients.Locker, cfg.Redis.LockTTL, now),
		Status:          services.NewBookStatusService(log, repos.Status, now),
		Recommendations: recs,
		Goals:           services.NewReadingGoalService(log, repos.Goal, clients.Locker, cfg.Redis.LockTTL, now),
		Shelves:         services.NewShelfService(log, repos.Shelf),
		Profiles:        services.NewProfileService(log, repos.Profile, repos.Club, clients.Locker, cfg.Redis.LockTTL, now),
		Feed: services.NewFeedService(
			log,
			clients.Metrics,
			repos.Feed,
			repos.Book,
			repos.Shelf,
			repos.Status,
			repos.Session,
			recs,
			now,
		),
	}
}
