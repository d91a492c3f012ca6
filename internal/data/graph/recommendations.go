package graph

import (
	"context"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

type RecommendationRepo interface {
	// Candidates returns up to pool unscored books for the strategy. Books the
	// user already has a status or rating for are excluded in the query.
	Candidates(ctx context.Context, userID string, filter reading.Filter, pool int) ([]reading.Candidate, error)
	InteractedBookIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

type recommendationRepo struct {
	base
}

func NewRecommendationRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) RecommendationRepo {
	return &recommendationRepo{base: newBase(store, log, metrics, "RecommendationRepo")}
}

const notInteracted = `NOT (u)-[:READING|FINISHED|WANTS_TO_READ|RATES]->(b)`

// Books rated by other readers. A book's overlap is the most preferred genres
// any one of its raters shares with the user; the average covers those raters only.
var similarCandidates = `
MATCH (u:USER {id: $userId})
MATCH (rater:USER)-[rt:RATES]->(b:BOOK)
WHERE rater <> u AND ` + notInteracted + `
OPTIONAL MATCH (u)-[:PREFERS_GENRE]->(g:GENRE)<-[:PREFERS_GENRE]-(rater)
WITH b, rater, avg(rt.rating) AS rating, count(DISTINCT g) AS shared
WITH b, max(shared) AS genreOverlap, coalesce(avg(rating), 0.0) AS averageRating
WITH b, genreOverlap, averageRating,
     CASE WHEN genreOverlap > 0 THEN genreOverlap * 10 + averageRating * 5 ELSE averageRating * 10 END AS score
ORDER BY score DESC
LIMIT $pool` + withBook("genreOverlap, averageRating", "genreOverlap, averageRating")

var friendCandidates = `
MATCH (u:USER {id: $userId})-[:FRIEND]->(f:USER)-[r:READING|RATES]->(b:BOOK)
WHERE (type(r) = 'READING' OR r.rating >= 4) AND ` + notInteracted + `
WITH b, count(DISTINCT f) AS friendCount, head(collect(DISTINCT f.name)) AS topFriendName
WITH b, friendCount, topFriendName,
     CASE WHEN friendCount > 3 THEN friendCount * 25 ELSE friendCount * 20 END AS score
ORDER BY score DESC
LIMIT $pool` + withBook("friendCount, topFriendName", "friendCount, topFriendName")

var professionCandidates = `
MATCH (u:USER {id: $userId})
MATCH (reader:USER)-[rt:RATES]->(b:BOOK)
WHERE reader <> u AND ` + notInteracted + `
WITH b,
     count(DISTINCT reader) AS readerCount,
     coalesce(avg(rt.rating), 0.0) AS averageRating,
     max(CASE WHEN u.profession IS NOT NULL AND reader.profession = u.profession THEN 1 ELSE 0 END) = 1 AS professionMatch
WITH b, readerCount, averageRating, professionMatch,
     readerCount * averageRating * CASE WHEN professionMatch THEN $boost ELSE 1 END AS score
ORDER BY score DESC
LIMIT $pool` + withBook("readerCount, averageRating, professionMatch", "readerCount, averageRating, professionMatch")

func (r *recommendationRepo) Candidates(ctx context.Context, userID string, filter reading.Filter, pool int) ([]reading.Candidate, error) {
	if pool <= 0 {
		pool = reading.MaxRecommendations
	}
	cypher := similarCandidates
	switch filter {
	case reading.FilterFriends:
		cypher = friendCandidates
	case reading.FilterProfession:
		cypher = professionCandidates
	}

	out := []reading.Candidate{}
	err := r.read(ctx, "recommendation_candidates_"+string(filter), func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, cypher, map[string]any{
			"userId": userID,
			"pool":   int64(pool),
			"boost":  int64(reading.ProfessionBoost),
		})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.Candidate{
				Book:            decodeBook(rec),
				GenreOverlap:    neo4jdb.Int(rec, "genreOverlap"),
				AverageRating:   neo4jdb.Float(rec, "averageRating"),
				FriendCount:     neo4jdb.Int(rec, "friendCount"),
				TopFriendName:   neo4jdb.String(rec, "topFriendName"),
				ReaderCount:     neo4jdb.Int(rec, "readerCount"),
				ProfessionMatch: neo4jdb.Bool(rec, "professionMatch"),
			})
		}
		return nil
	})
	if err != nil {
		return []reading.Candidate{}, err
	}
	return out, nil
}

func (r *recommendationRepo) InteractedBookIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	err := r.read(ctx, "interacted_books", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:READING|FINISHED|WANTS_TO_READ|RATES]->(b:BOOK)
RETURN collect(DISTINCT b.id) AS bookIds
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		for _, id := range neo4jdb.Strings(neo4jdb.First(recs), "bookIds") {
			out[id] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return map[string]struct{}{}, err
	}
	return out, nil
}
