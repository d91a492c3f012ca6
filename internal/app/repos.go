package app

import (
	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type Repos struct {
	Session        graph.SessionRepo
	Status         graph.StatusRepo
	Goal           graph.GoalRepo
	Recommendation graph.RecommendationRepo
	Shelf          graph.ShelfRepo
	Feed           graph.FeedRepo
	Book           graph.BookRepo
	Profile        graph.ProfileRepo
	Club           graph.ClubRepo
}

func wireRepos(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Session:        graph.NewSessionRepo(store, log, metrics),
		Status:         graph.NewStatusRepo(store, log, metrics),
		Goal:           graph.NewGoalRepo(store, log, metrics),
		Recommendation: graph.NewRecommendationRepo(store, log, metrics),
		Shelf:          graph.NewShelfRepo(store, log, metrics),
		Feed:           graph.NewFeedRepo(store, log, metrics),
		Book:           graph.NewBookRepo(store, log, metrics),
		Profile:        graph.NewProfileRepo(store, log, metrics),
		Club:           graph.NewClubRepo(store, log, metrics),
	}
}
