package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

const (
	friendsOnBookLimit = 5
	similarBooksLimit  = 4
)

type BookRepo interface {
	// Detail is the book page header as seen by viewerID. ErrNotFound when the book is absent.
	Detail(ctx context.Context, viewerID, bookID string) (reading.BookDetail, error)
}

type bookRepo struct {
	base
}

func NewBookRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) BookRepo {
	return &bookRepo{base: newBase(store, log, metrics, "BookRepo")}
}

func (r *bookRepo) Detail(ctx context.Context, viewerID, bookID string) (reading.BookDetail, error) {
	var out reading.BookDetail
	err := r.read(ctx, "book_detail", func(ctx context.Context, tx neo4jdb.Tx) error {
		params := map[string]any{"viewerId": viewerID, "bookId": bookID}

		recs, err := tx.Run(ctx, `
MATCH (b:BOOK {id: $bookId})
OPTIONAL MATCH (:USER)-[rt:RATES]->(b)
WITH b, avg(rt.rating) AS averageRating, count(rt) AS ratingsCount
OPTIONAL MATCH (reader:USER)-[:READING]->(b)
WITH b, averageRating, ratingsCount, count(DISTINCT reader) AS readersCount
OPTIONAL MATCH (finisher:USER)-[:FINISHED]->(b)
WITH b, averageRating, ratingsCount, readersCount, count(DISTINCT finisher) AS finishedCount`+
			withBook("averageRating, ratingsCount, readersCount, finishedCount", "averageRating, ratingsCount, readersCount, finishedCount"), params)
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("book %s", bookID)
		}
		out = reading.BookDetail{
			BookSummary:    decodeBook(rec),
			AverageRating:  neo4jdb.Float(rec, "averageRating"),
			RatingsCount:   neo4jdb.Int(rec, "ratingsCount"),
			ReadersCount:   neo4jdb.Int(rec, "readersCount"),
			FinishedCount:  neo4jdb.Int(rec, "finishedCount"),
			Adaptations:    []reading.Adaptation{},
			FriendsReading: []reading.FriendStatus{},
			SimilarBooks:   []reading.BookSummary{},
		}

		friends, err := tx.Run(ctx, `
MATCH (:USER {id: $viewerId})-[:FRIEND]->(f:USER)-[r:READING|FINISHED|WANTS_TO_READ]->(:BOOK {id: $bookId})
RETURN f.id AS id, f.name AS name, type(r) AS rel
ORDER BY name
LIMIT $limit
`, withParam(params, "limit", int64(friendsOnBookLimit)))
		if err != nil {
			return err
		}
		for _, f := range friends {
			out.FriendsReading = append(out.FriendsReading, reading.FriendStatus{
				ID:     neo4jdb.String(f, "id"),
				Name:   neo4jdb.String(f, "name"),
				Status: reading.StatusFromRelationship(neo4jdb.String(f, "rel")),
			})
		}

		similar, err := tx.Run(ctx, `
MATCH (:BOOK {id: $bookId})-[:BELONGS_TO]->(g:GENRE)<-[:BELONGS_TO]-(b:BOOK)
WHERE b.id <> $bookId
WITH b, count(DISTINCT g) AS overlap
ORDER BY overlap DESC, b.title
LIMIT $limit`+withBook("overlap", "overlap")+`ORDER BY overlap DESC, title
`, withParam(params, "limit", int64(similarBooksLimit)))
		if err != nil {
			return err
		}
		for _, s := range similar {
			out.SimilarBooks = append(out.SimilarBooks, decodeBook(s))
		}

		movies, err := tx.Run(ctx, `
MATCH (m:MOVIE)-[:ADAPTED_FROM]->(b:BOOK {id: $bookId})
OPTIONAL MATCH (:USER {id: $viewerId})-[rt:RATES]->(b)
RETURN m.id AS id,
       m.title AS title,
       m.releaseYear AS releaseYear,
       b.title AS bookTitle,
       rt IS NOT NULL AS hasRead
ORDER BY releaseYear DESC
`, params)
		if err != nil {
			return err
		}
		out.Adaptations = decodeAdaptations(movies)
		return nil
	})
	if err != nil {
		return reading.BookDetail{}, err
	}
	return out, nil
}

func withParam(params map[string]any, key string, v any) map[string]any {
	out := make(map[string]any, len(params)+1)
	for k, pv := range params {
		out[k] = pv
	}
	out[key] = v
	return out
}

func decodeAdaptations(recs []*neo4j.Record) []reading.Adaptation {
	out := make([]reading.Adaptation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, reading.Adaptation{
			ID:          neo4jdb.String(rec, "id"),
			Title:       neo4jdb.String(rec, "title"),
			ReleaseYear: neo4jdb.Int(rec, "releaseYear"),
			BookTitle:   neo4jdb.String(rec, "bookTitle"),
			HasRead:     neo4jdb.Bool(rec, "hasRead"),
		})
	}
	return out
}
