package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

const CurrentlyReadingLimit = 5

type ShelfRepo interface {
	CurrentlyReading(ctx context.Context, userID string) ([]reading.CurrentlyReading, error)
	Reading(ctx context.Context, userID string) ([]reading.ShelfEntry, error)
	WantToRead(ctx context.Context, userID string) ([]reading.ShelfEntry, error)
	Finished(ctx context.Context, userID string) ([]reading.ShelfEntry, error)
	Favorites(ctx context.Context, userID string) ([]reading.ShelfEntry, error)
	Stats(ctx context.Context, userID string) (reading.UserReadingStats, error)
	History(ctx context.Context, userID string, limit int) ([]reading.HistoryEntry, error)
}

type shelfRepo struct {
	base
}

func NewShelfRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) ShelfRepo {
	return &shelfRepo{base: newBase(store, log, metrics, "ShelfRepo")}
}

func (r *shelfRepo) CurrentlyReading(ctx context.Context, userID string) ([]reading.CurrentlyReading, error) {
	out := []reading.CurrentlyReading{}
	err := r.read(ctx, "currently_reading", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[r:READING]->(b:BOOK)
WITH b, r
ORDER BY r.lastUpdated DESC
LIMIT $limit`+withBook("r", "r.currentPage AS currentPage, r.percentComplete AS percentComplete, r.lastUpdated AS lastUpdated")+
			`ORDER BY lastUpdated DESC
`, map[string]any{"userId": userID, "limit": int64(CurrentlyReadingLimit)})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			page := neo4jdb.Int(rec, "currentPage")
			if page < 1 {
				page = 1
			}
			out = append(out, reading.CurrentlyReading{
				BookSummary: decodeBook(rec),
				CurrentPage: page,
				Progress:    reading.RoundProgress(neo4jdb.Float(rec, "percentComplete")),
				LastUpdated: neo4jdb.Time(rec, "lastUpdated"),
			})
		}
		return nil
	})
	if err != nil {
		return []reading.CurrentlyReading{}, err
	}
	return out, nil
}

// shelfQuery lists books on one relationship r; extra columns come from r or rt.
func shelfQuery(rel, extra, order string) string {
	return `
MATCH (u:USER {id: $userId})-[r:` + rel + `]->(b:BOOK)
OPTIONAL MATCH (u)-[rt:RATES]->(b)
OPTIONAL MATCH (b)<-[:WROTE]-(a:AUTHOR)
WITH b, r, rt, head(collect(a.name)) AS authorName
RETURN b.id AS id,
       b.title AS title,
       coalesce(authorName, b.author) AS author,
       ` + extra + `
ORDER BY ` + order + `
`
}

func (r *shelfRepo) Reading(ctx context.Context, userID string) ([]reading.ShelfEntry, error) {
	return r.shelf(ctx, "shelf_reading", userID, shelfQuery("READING",
		`r.currentPage AS currentPage,
       b.pageCount AS pageCount,
       r.percentComplete AS percentComplete,
       r.lastUpdated AS lastUpdated`, "lastUpdated DESC"))
}

func (r *shelfRepo) WantToRead(ctx context.Context, userID string) ([]reading.ShelfEntry, error) {
	return r.shelf(ctx, "shelf_want_to_read", userID, shelfQuery("WANTS_TO_READ",
		`r.date AS addedDate`, "addedDate DESC"))
}

func (r *shelfRepo) Finished(ctx context.Context, userID string) ([]reading.ShelfEntry, error) {
	return r.shelf(ctx, "shelf_finished", userID, shelfQuery("FINISHED",
		`r.date AS completedDate,
       rt.rating AS rating`, "completedDate DESC"))
}

func (r *shelfRepo) Favorites(ctx context.Context, userID string) ([]reading.ShelfEntry, error) {
	return r.shelf(ctx, "shelf_favorites", userID, shelfQuery("FAVORITES",
		`r.addedOn AS addedDate,
       rt.rating AS rating`, "addedDate DESC"))
}

func (r *shelfRepo) shelf(ctx context.Context, op, userID, cypher string) ([]reading.ShelfEntry, error) {
	out := []reading.ShelfEntry{}
	err := r.read(ctx, op, func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, cypher, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, decodeShelfEntry(rec))
		}
		return nil
	})
	if err != nil {
		return []reading.ShelfEntry{}, err
	}
	return out, nil
}

func decodeShelfEntry(rec *neo4j.Record) reading.ShelfEntry {
	e := reading.ShelfEntry{
		ID:            neo4jdb.String(rec, "id"),
		Title:         neo4jdb.String(rec, "title"),
		Author:        neo4jdb.String(rec, "author"),
		CurrentPage:   neo4jdb.IntPtr(rec, "currentPage"),
		PageCount:     neo4jdb.IntPtr(rec, "pageCount"),
		Rating:        neo4jdb.IntPtr(rec, "rating"),
		LastUpdated:   neo4jdb.Time(rec, "lastUpdated"),
		AddedDate:     neo4jdb.Time(rec, "addedDate"),
		CompletedDate: neo4jdb.Time(rec, "completedDate"),
	}
	if e.Author == "" {
		e.Author = reading.UnknownAuthor
	}
	if v := neo4jdb.Value(rec, "percentComplete"); v != nil {
		p := reading.RoundProgress(neo4jdb.AsFloat(v))
		e.Progress = &p
	}
	return e
}

func (r *shelfRepo) Stats(ctx context.Context, userID string) (reading.UserReadingStats, error) {
	var out reading.UserReadingStats
	err := r.read(ctx, "user_reading_stats", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})
OPTIONAL MATCH (u)-[:READING]->(rb:BOOK)
WITH u, count(DISTINCT rb) AS booksReading
OPTIONAL MATCH (u)-[:FINISHED]->(fb:BOOK)
WITH u, booksReading, count(DISTINCT fb) AS booksFinished
OPTIONAL MATCH (u)-[:WANTS_TO_READ]->(wb:BOOK)
RETURN booksReading, booksFinished, count(DISTINCT wb) AS booksWantToRead
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		out = reading.UserReadingStats{
			BooksReading:    neo4jdb.Int(rec, "booksReading"),
			BooksFinished:   neo4jdb.Int(rec, "booksFinished"),
			BooksWantToRead: neo4jdb.Int(rec, "booksWantToRead"),
		}
		return nil
	})
	if err != nil {
		return reading.UserReadingStats{}, err
	}
	return out, nil
}

func (r *shelfRepo) History(ctx context.Context, userID string, limit int) ([]reading.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	out := []reading.HistoryEntry{}
	err := r.read(ctx, "reading_history", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:HAS_HISTORY]->(:READING_HISTORY)-[:CONTAINS_ENTRY]->(he:HISTORY_ENTRY)
OPTIONAL MATCH (he)-[:REFERENCES_BOOK]->(b:BOOK)
RETURN he.id AS id,
       he.action AS action,
       he.timestamp AS timestamp,
       he.context AS context,
       b.id AS bookId,
       b.title AS bookTitle,
       he.currentPage AS currentPage,
       he.fromPage AS fromPage,
       he.toPage AS toPage,
       he.duration AS duration,
       he.notes AS notes,
       he.content AS content
ORDER BY timestamp DESC
LIMIT $limit
`, map[string]any{"userId": userID, "limit": int64(limit)})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			he := reading.HistoryEntry{
				ID:          neo4jdb.String(rec, "id"),
				Action:      reading.Action(neo4jdb.String(rec, "action")),
				Context:     neo4jdb.String(rec, "context"),
				BookID:      neo4jdb.String(rec, "bookId"),
				BookTitle:   neo4jdb.String(rec, "bookTitle"),
				CurrentPage: neo4jdb.IntPtr(rec, "currentPage"),
				FromPage:    neo4jdb.IntPtr(rec, "fromPage"),
				ToPage:      neo4jdb.IntPtr(rec, "toPage"),
				Duration:    neo4jdb.IntPtr(rec, "duration"),
				Notes:       neo4jdb.String(rec, "notes"),
				Content:     neo4jdb.String(rec, "content"),
			}
			if ts := neo4jdb.Time(rec, "timestamp"); ts != nil {
				he.Timestamp = *ts
			}
			out = append(out, he)
		}
		return nil
	})
	if err != nil {
		return []reading.HistoryEntry{}, err
	}
	return out, nil
}
