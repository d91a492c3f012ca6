package graph

import (
	"context"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type StatusRepo interface {
	Get(ctx context.Context, userID, bookID string) (reading.BookStatus, error)
	// Replace removes every status fact for the pair, creates the requested one
	// and appends the matching history entry, all in one transaction.
	Replace(ctx context.Context, userID, bookID string, change reading.StatusChange) error
	UpdatePage(ctx context.Context, userID, bookID string, page int, now time.Time) (reading.PageProgress, error)
	Rate(ctx context.Context, userID, bookID string, rating int, now time.Time) (reading.Rating, error)
	Review(ctx context.Context, userID, bookID string) (*reading.Review, error)
	SaveReview(ctx context.Context, userID, bookID, content string, now time.Time) (reading.Review, error)
	DeleteReview(ctx context.Context, userID, bookID string) error
}

type statusRepo struct {
	base
}

func NewStatusRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) StatusRepo {
	return &statusRepo{base: newBase(store, log, metrics, "StatusRepo")}
}

func (r *statusRepo) Get(ctx context.Context, userID, bookID string) (reading.BookStatus, error) {
	out := reading.DefaultBookStatus()
	err := r.read(ctx, "get_status", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
OPTIONAL MATCH (u)-[s:READING|FINISHED|WANTS_TO_READ]->(b)
OPTIONAL MATCH (u)-[rt:RATES]->(b)
RETURN type(s) AS rel,
       rt.rating AS rating,
       s.currentPage AS currentPage,
       s.percentComplete AS percentComplete,
       coalesce(s.lastUpdated, s.date) AS lastUpdated
ORDER BY lastUpdated DESC
LIMIT 1
`, map[string]any{"userId": userID, "bookId": bookID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return nil
		}
		out.Status = reading.StatusFromRelationship(neo4jdb.String(rec, "rel"))
		out.Rating = neo4jdb.Int(rec, "rating")
		if page := neo4jdb.Int(rec, "currentPage"); page > 0 {
			out.CurrentPage = page
		}
		out.PercentComplete = clampPercent(neo4jdb.Float(rec, "percentComplete"))
		out.LastUpdated = neo4jdb.Time(rec, "lastUpdated")
		return nil
	})
	if err != nil {
		return reading.DefaultBookStatus(), err
	}
	return out, nil
}

func (r *statusRepo) Replace(ctx context.Context, userID, bookID string, change reading.StatusChange) error {
	rel := change.Status.Relationship()
	if rel == "" {
		return apperr.InvalidArgument("status %q cannot be stored", change.Status)
	}
	return r.write(ctx, "replace_status", func(ctx context.Context, tx neo4jdb.Tx) error {
		pageCount, err := pairExists(ctx, tx, userID, bookID)
		if err != nil {
			return err
		}
		if _, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[s:READING|FINISHED|WANTS_TO_READ]->(:BOOK {id: $bookId})
DELETE s
`, map[string]any{"userId": userID, "bookId": bookID}); err != nil {
			return err
		}

		props := map[string]any{"date": change.At, "lastUpdated": change.At}
		if change.CurrentPage != nil {
			props["currentPage"] = int64(*change.CurrentPage)
			props["percentComplete"] = reading.PercentComplete(*change.CurrentPage, pageCount)
		}
		// Relationship types cannot be parameters; Relationship() only yields known types.
		if _, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
CREATE (u)-[s:`+rel+`]->(b)
SET s = $props
`, map[string]any{"userId": userID, "bookId": bookID, "props": props}); err != nil {
			return err
		}

		he := reading.NewHistoryEntry(change.Status.HistoryAction(), change.At)
		he.CurrentPage = change.CurrentPage
		return appendHistory(ctx, tx, userID, bookID, he)
	})
}

func (r *statusRepo) UpdatePage(ctx context.Context, userID, bookID string, page int, now time.Time) (reading.PageProgress, error) {
	var out reading.PageProgress
	err := r.write(ctx, "update_page", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:READING]->(b:BOOK {id: $bookId})
RETURN b.pageCount AS pageCount
`, map[string]any{"userId": userID, "bookId": bookID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("user %s is not reading book %s", userID, bookID)
		}
		pct := reading.PercentComplete(page, neo4jdb.Int(rec, "pageCount"))
		if _, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[r:READING]->(:BOOK {id: $bookId})
SET r.currentPage = $currentPage,
    r.lastUpdated = $now,
    r.percentComplete = $percentComplete
`, map[string]any{
			"userId":          userID,
			"bookId":          bookID,
			"currentPage":     int64(page),
			"now":             now.UTC(),
			"percentComplete": pct,
		}); err != nil {
			return err
		}
		out = reading.PageProgress{CurrentPage: page, PercentComplete: pct}
		return nil
	})
	if err != nil {
		return reading.PageProgress{}, err
	}
	return out, nil
}

func (r *statusRepo) Rate(ctx context.Context, userID, bookID string, rating int, now time.Time) (reading.Rating, error) {
	var out reading.Rating
	err := r.write(ctx, "rate_book", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
MERGE (u)-[r:RATES]->(b)
SET r.rating = $rating, r.timestamp = $now
RETURN r.rating AS rating, r.timestamp AS timestamp
`, map[string]any{"userId": userID, "bookId": bookID, "rating": int64(rating), "now": now.UTC()})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("user %s or book %s", userID, bookID)
		}
		out = reading.Rating{Value: neo4jdb.Int(rec, "rating"), Timestamp: now.UTC()}
		if ts := neo4jdb.Time(rec, "timestamp"); ts != nil {
			out.Timestamp = *ts
		}
		return nil
	})
	if err != nil {
		return reading.Rating{}, err
	}
	return out, nil
}

func (r *statusRepo) Review(ctx context.Context, userID, bookID string) (*reading.Review, error) {
	var out *reading.Review
	err := r.read(ctx, "get_review", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[r:REVIEWS]->(:BOOK {id: $bookId})
RETURN r.content AS content, r.createdAt AS createdAt, r.updatedAt AS updatedAt
`, map[string]any{"userId": userID, "bookId": bookID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return nil
		}
		rv := &reading.Review{Content: neo4jdb.String(rec, "content")}
		if t := neo4jdb.Time(rec, "createdAt"); t != nil {
			rv.CreatedAt = *t
		}
		if t := neo4jdb.Time(rec, "updatedAt"); t != nil {
			rv.UpdatedAt = *t
		}
		out = rv
		return nil
	})
	return out, err
}

func (r *statusRepo) SaveReview(ctx context.Context, userID, bookID, content string, now time.Time) (reading.Review, error) {
	var out reading.Review
	err := r.write(ctx, "save_review", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
MERGE (u)-[r:REVIEWS]->(b)
ON CREATE SET r.createdAt = $now
SET r.content = $content, r.updatedAt = $now
RETURN r.content AS content, r.createdAt AS createdAt, r.updatedAt AS updatedAt
`, map[string]any{"userId": userID, "bookId": bookID, "content": content, "now": now.UTC()})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("user %s or book %s", userID, bookID)
		}
		out = reading.Review{Content: neo4jdb.String(rec, "content"), CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
		if t := neo4jdb.Time(rec, "createdAt"); t != nil {
			out.CreatedAt = *t
		}
		return appendHistory(ctx, tx, userID, bookID, reading.ReviewEntry(content, now))
	})
	if err != nil {
		return reading.Review{}, err
	}
	return out, nil
}

func (r *statusRepo) DeleteReview(ctx context.Context, userID, bookID string) error {
	return r.write(ctx, "delete_review", func(ctx context.Context, tx neo4jdb.Tx) error {
		_, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[r:REVIEWS]->(:BOOK {id: $bookId})
DELETE r
`, map[string]any{"userId": userID, "bookId": bookID})
		return err
	})
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
