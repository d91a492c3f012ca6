package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/GORLEABHILASH/booklovers/internal/http/handlers"
	httpMW "github.com/GORLEABHILASH/booklovers/internal/http/middleware"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	CORSOrigins    []string
	RequestTimeout time.Duration

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler  *httpH.HealthHandler
	BookHandler    *httpH.BookHandler
	SessionHandler *httpH.SessionHandler
	FeedHandler    *httpH.FeedHandler
	ShelfHandler   *httpH.ShelfHandler
	GoalHandler    *httpH.GoalHandler
	ProfileHandler *httpH.ProfileHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.AttachRequestContext(cfg.RequestTimeout))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Books
		if cfg.BookHandler != nil {
			protected.GET("/books/:bookId", cfg.BookHandler.GetBook)
			protected.GET("/books/:bookId/page", cfg.BookHandler.GetBookPage)
			protected.GET("/books/:bookId/stats", cfg.BookHandler.GetBookStats)
			protected.GET("/books/:bookId/status", cfg.BookHandler.GetStatus)
			protected.PUT("/books/:bookId/status", cfg.BookHandler.UpdateStatus)
			protected.PUT("/books/:bookId/rating", cfg.BookHandler.RateBook)
			protected.GET("/books/:bookId/review", cfg.BookHandler.GetReview)
			protected.PUT("/books/:bookId/review", cfg.BookHandler.SaveReview)
			protected.PUT("/books/:bookId/progress", cfg.BookHandler.UpdateProgress)
		}

		// Reading sessions
		if cfg.SessionHandler != nil {
			protected.POST("/books/:bookId/sessions", cfg.SessionHandler.StartSession)
			protected.GET("/books/:bookId/sessions", cfg.SessionHandler.ListSessions)
			protected.GET("/books/:bookId/sessions/stats", cfg.SessionHandler.SessionStats)
			protected.POST("/sessions/:sessionId/end", cfg.SessionHandler.EndSession)
			protected.GET("/sessions/active", cfg.SessionHandler.ActiveSession)
		}

		// Home feed + recommendations
		if cfg.FeedHandler != nil {
			protected.GET("/home", cfg.FeedHandler.Home)
			protected.GET("/recommendations", cfg.FeedHandler.Recommendations)
		}

		// Shelves (Me)
		if cfg.ShelfHandler != nil {
			protected.GET("/me/shelves/current", cfg.ShelfHandler.CurrentlyReading)
			protected.GET("/me/shelves/reading", cfg.ShelfHandler.Reading)
			protected.GET("/me/shelves/want-to-read", cfg.ShelfHandler.WantToRead)
			protected.GET("/me/shelves/finished", cfg.ShelfHandler.Finished)
			protected.GET("/me/shelves/favorites", cfg.ShelfHandler.Favorites)
			protected.GET("/me/stats", cfg.ShelfHandler.Stats)
			protected.GET("/me/history", cfg.ShelfHandler.History)
		}

		// Goals
		if cfg.GoalHandler != nil {
			protected.GET("/goals", cfg.GoalHandler.ListGoals)
			protected.POST("/goals", cfg.GoalHandler.SetGoal)
			protected.GET("/goals/active", cfg.GoalHandler.ActiveGoal)
			protected.GET("/goals/completed", cfg.GoalHandler.CompletedGoals)
			protected.GET("/goals/books-read", cfg.GoalHandler.BooksRead)
			protected.POST("/goals/sync", cfg.GoalHandler.SyncProgress)
			protected.PUT("/goals/:goalId/progress", cfg.GoalHandler.UpdateProgress)
			protected.POST("/goals/:goalId/cancel", cfg.GoalHandler.CancelGoal)
		}

		// Profile, preferences, social
		if cfg.ProfileHandler != nil {
			protected.GET("/me/profile", cfg.ProfileHandler.GetProfile)
			protected.PUT("/me/profile", cfg.ProfileHandler.UpdateProfile)
			protected.GET("/me/preferences", cfg.ProfileHandler.GetPreferences)
			protected.PUT("/me/preferences", cfg.ProfileHandler.UpdatePreferences)
			protected.GET("/me/social", cfg.ProfileHandler.GetSocial)
			protected.GET("/options/profile", cfg.ProfileHandler.ProfileOptions)
			protected.GET("/options/reading", cfg.ProfileHandler.ReadingOptions)
			protected.GET("/options/locations", cfg.ProfileHandler.Locations)
			protected.GET("/clubs", cfg.ProfileHandler.AvailableClubs)
			protected.POST("/clubs/:clubId/members", cfg.ProfileHandler.JoinClub)
			protected.DELETE("/clubs/:clubId/members", cfg.ProfileHandler.LeaveClub)
		}
	}

	return r
}
