package services

import (
	"context"

	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

const MaxHistoryLimit = 200

// ShelfService lists a user's books. Every method degrades to an empty result.
type ShelfService interface {
	CurrentlyReading(ctx context.Context, userID string) []reading.CurrentlyReading
	Reading(ctx context.Context, userID string) []reading.ShelfEntry
	WantToRead(ctx context.Context, userID string) []reading.ShelfEntry
	Finished(ctx context.Context, userID string) []reading.ShelfEntry
	Favorites(ctx context.Context, userID string) []reading.ShelfEntry
	Stats(ctx context.Context, userID string) reading.UserReadingStats
	History(ctx context.Context, userID string, limit int) []reading.HistoryEntry
}

type shelfService struct {
	log     *logger.Logger
	shelves graph.ShelfRepo
}

func NewShelfService(log *logger.Logger, shelves graph.ShelfRepo) ShelfService {
	return &shelfService{log: log.With("service", "ShelfService"), shelves: shelves}
}

func (s *shelfService) CurrentlyReading(ctx context.Context, userID string) []reading.CurrentlyReading {
	out, err := s.shelves.CurrentlyReading(ctx, userID)
	if err != nil {
		s.log.Warn("Currently reading lookup failed", "user_id", userID, "error", err)
		return []reading.CurrentlyReading{}
	}
	return out
}

func (s *shelfService) Reading(ctx context.Context, userID string) []reading.ShelfEntry {
	return s.entries("reading", userID, func() ([]reading.ShelfEntry, error) { return s.shelves.Reading(ctx, userID) })
}

func (s *shelfService) WantToRead(ctx context.Context, userID string) []reading.ShelfEntry {
	return s.entries("want-to-read", userID, func() ([]reading.ShelfEntry, error) { return s.shelves.WantToRead(ctx, userID) })
}

func (s *shelfService) Finished(ctx context.Context, userID string) []reading.ShelfEntry {
	return s.entries("finished", userID, func() ([]reading.ShelfEntry, error) { return s.shelves.Finished(ctx, userID) })
}

func (s *shelfService) Favorites(ctx context.Context, userID string) []reading.ShelfEntry {
	return s.entries("favorites", userID, func() ([]reading.ShelfEntry, error) { return s.shelves.Favorites(ctx, userID) })
}

func (s *shelfService) entries(shelf, userID string, load func() ([]reading.ShelfEntry, error)) []reading.ShelfEntry {
	out, err := load()
	if err != nil {
		s.log.Warn("Shelf lookup failed", "shelf", shelf, "user_id", userID, "error", err)
		return []reading.ShelfEntry{}
	}
	return out
}

func (s *shelfService) Stats(ctx context.Context, userID string) reading.UserReadingStats {
	out, err := s.shelves.Stats(ctx, userID)
	if err != nil {
		s.log.Warn("Reading stats lookup failed", "user_id", userID, "error", err)
		return reading.UserReadingStats{}
	}
	return out
}

func (s *shelfService) History(ctx context.Context, userID string, limit int) []reading.HistoryEntry {
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	out, err := s.shelves.History(ctx, userID, limit)
	if err != nil {
		s.log.Warn("Reading history lookup failed", "user_id", userID, "error", err)
		return []reading.HistoryEntry{}
	}
	return out
}
