package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

// base is embedded by every repository. Driver failures leave it as
// StoreError tagged with the operation; domain errors raised inside fn pass through.
type base struct {
	store   neo4jdb.Store
	log     *logger.Logger
	metrics *observability.Metrics
}

func newBase(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics, name string) base {
	if log == nil {
		log = logger.NewNop()
	}
	return base{store: store, log: log.With("repo", name), metrics: metrics}
}

func (b base) read(ctx context.Context, op string, fn neo4jdb.TxFunc) error {
	start := time.Now()
	err := apperr.Store(op, b.store.Read(ctx, fn))
	b.metrics.ObserveStore(op, err, time.Since(start))
	return err
}

func (b base) write(ctx context.Context, op string, fn neo4jdb.TxFunc) error {
	start := time.Now()
	err := apperr.Store(op, b.store.Write(ctx, fn))
	b.metrics.ObserveStore(op, err, time.Since(start))
	return err
}

// bookColumns projects b, optional author a and genre list genres into the
// columns decodeBook reads.
const bookColumns = `b.id AS id,
       b.title AS title,
       coalesce(a.name, b.author) AS author,
       a.id AS authorId,
       b.coverImage AS coverImage,
       b.description AS description,
       b.pageCount AS pageCount,
       b.publishedYear AS publishedYear,
       genres`

// withBook finishes a query whose rows are keyed by b: it attaches the first
// author and the genre names, keeps vars in scope and returns bookColumns plus extra.
func withBook(vars, extra string) string {
	carry := ""
	if vars != "" {
		carry = ", " + vars
	}
	ret := bookColumns
	if extra != "" {
		ret += ",\n       " + extra
	}
	return `
OPTIONAL MATCH (b)<-[:WROTE]-(author:AUTHOR)
WITH b` + carry + `, head(collect(author)) AS a
OPTIONAL MATCH (b)-[:BELONGS_TO]->(bg:GENRE)
WITH b, a` + carry + `, collect(DISTINCT bg.name) AS genres
RETURN ` + ret + "\n"
}

func decodeBook(rec *neo4j.Record) reading.BookSummary {
	author := neo4jdb.String(rec, "author")
	if author == "" {
		author = reading.UnknownAuthor
	}
	return reading.BookSummary{
		ID:            neo4jdb.String(rec, "id"),
		Title:         neo4jdb.String(rec, "title"),
		Author:        author,
		AuthorID:      neo4jdb.String(rec, "authorId"),
		CoverImage:    neo4jdb.String(rec, "coverImage"),
		Description:   neo4jdb.String(rec, "description"),
		PageCount:     neo4jdb.Int(rec, "pageCount"),
		PublishedYear: neo4jdb.Int(rec, "publishedYear"),
		Genres:        reading.TopGenres(neo4jdb.Strings(rec, "genres")),
	}
}

// bookFromMap decodes the same fields from a collected map projection.
func bookFromMap(m map[string]any) reading.BookSummary {
	author := neo4jdb.AsString(m["author"])
	if author == "" {
		author = reading.UnknownAuthor
	}
	return reading.BookSummary{
		ID:            neo4jdb.AsString(m["id"]),
		Title:         neo4jdb.AsString(m["title"]),
		Author:        author,
		AuthorID:      neo4jdb.AsString(m["authorId"]),
		CoverImage:    neo4jdb.AsString(m["coverImage"]),
		Description:   neo4jdb.AsString(m["description"]),
		PageCount:     neo4jdb.AsInt(m["pageCount"]),
		PublishedYear: neo4jdb.AsInt(m["publishedYear"]),
		Genres:        reading.TopGenres(neo4jdb.AsStrings(m["genres"])),
	}
}

// pairExists reports whether both the user and the book are present.
func pairExists(ctx context.Context, tx neo4jdb.Tx, userID, bookID string) (pageCount int, err error) {
	recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
RETURN b.pageCount AS pageCount
`, map[string]any{"userId": userID, "bookId": bookID})
	if err != nil {
		return 0, err
	}
	rec := neo4jdb.First(recs)
	if rec == nil {
		return 0, apperr.NotFound("user %s or book %s", userID, bookID)
	}
	return neo4jdb.Int(rec, "pageCount"), nil
}

// appendHistory adds one entry under the per-(user, book) history container.
func appendHistory(ctx context.Context, tx neo4jdb.Tx, userID, bookID string, he reading.HistoryEntry) error {
	_, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (b:BOOK {id: $bookId})
MERGE (u)-[:HAS_HISTORY]->(rh:READING_HISTORY {id: $historyId})
CREATE (he:HISTORY_ENTRY)
SET he = $entry
CREATE (rh)-[:CONTAINS_ENTRY]->(he)
CREATE (he)-[:REFERENCES_BOOK]->(b)
`, map[string]any{
		"userId":    userID,
		"bookId":    bookID,
		"historyId": reading.HistoryContainerID(userID, bookID),
		"entry":     he.Params(),
	})
	return err
}
