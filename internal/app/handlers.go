package app

import (
	"fmt"

	httpH "github.com/GORLEABHILASH/booklovers/internal/http/handlers"
	httpMW "github.com/GORLEABHILASH/booklovers/internal/http/middleware"
	"github.com/GORLEABHILASH/booklovers/internal/platform/authtoken"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Book    *httpH.BookHandler
	Session *httpH.SessionHandler
	Feed    *httpH.FeedHandler
	Shelf   *httpH.ShelfHandler
	Goal    *httpH.GoalHandler
	Profile *httpH.ProfileHandler
}

func wireHandlers(log *logger.Logger, store *neo4jdb.Client, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(store),
		Book:    httpH.NewBookHandler(log, services.Feed, services.Status, services.Sessions),
		Session: httpH.NewSessionHandler(log, services.Sessions),
		Feed:    httpH.NewFeedHandler(log, services.Feed, services.Recommendations),
		Shelf:   httpH.NewShelfHandler(log, services.Shelves),
		Goal:    httpH.NewGoalHandler(log, services.Goals),
		Profile: httpH.NewProfileHandler(log, services.Profiles),
	}
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) (Middleware, error) {
	log.Info("Wiring middleware...")
	verifier, err := authtoken.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return Middleware{}, fmt.Errorf("init token verifier: %w", err)
	}
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, verifier)}, nil
}
