package graph

import (
	"context"
	"math"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/platform/neo4jdb"
)

const (
	TrendingWindow   = 30 * 24 * time.Hour
	trendingLimit    = 4
	recentLimit      = 2
	RecentMinYear    = 2023
	defaultClubScore = 4.0
)

// FeedRepo serves the read-only home feed branches.
type FeedRepo interface {
	TrendingInGenres(ctx context.Context, userID string, now time.Time) ([]reading.TrendingBook, error)
	SocialTrending(ctx context.Context) ([]reading.SocialTrendingBook, error)
	ClubTrending(ctx context.Context) ([]reading.ClubTrendingBook, error)
	LocalTrending(ctx context.Context, userID string, now time.Time) ([]reading.LocalTrendingBook, error)
	UpcomingEvents(ctx context.Context, userID string, now time.Time) ([]reading.Event, error)
	RecentlyAdded(ctx context.Context, now time.Time) ([]reading.RecentBook, error)
	Adaptations(ctx context.Context, userID string) ([]reading.Adaptation, error)
}

type feedRepo struct {
	base
}

func NewFeedRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) FeedRepo {
	return &feedRepo{base: newBase(store, log, metrics, "FeedRepo")}
}

// recentActivity matches a rating or reading fact r touched since $since.
const recentActivity = `(r.timestamp >= $since OR r.lastUpdated >= $since)`

func (r *feedRepo) TrendingInGenres(ctx context.Context, userID string, now time.Time) ([]reading.TrendingBook, error) {
	out := []reading.TrendingBook{}
	err := r.read(ctx, "trending_in_genres", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[:PREFERS_GENRE]->(:GENRE)<-[:BELONGS_TO]-(b:BOOK)
MATCH (other:USER)-[r:RATES|READING]->(b)
WHERE `+recentActivity+`
WITH b, count(DISTINCT other) AS readers
ORDER BY readers DESC
LIMIT $limit`+withBook("readers", "readers")+`ORDER BY readers DESC
`, map[string]any{"userId": userID, "since": now.UTC().Add(-TrendingWindow), "limit": int64(trendingLimit)})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.TrendingBook{BookSummary: decodeBook(rec), Readers: neo4jdb.Int(rec, "readers")})
		}
		return nil
	})
	if err != nil {
		return []reading.TrendingBook{}, err
	}
	return out, nil
}

func (r *feedRepo) SocialTrending(ctx context.Context) ([]reading.SocialTrendingBook, error) {
	out := []reading.SocialTrendingBook{}
	err := r.read(ctx, "social_trending", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (p:POST)-[:ABOUT]->(b:BOOK)
OPTIONAL MATCH (p)<-[:ON]-(c:COMMENT)
WITH b, p, count(DISTINCT c) AS postComments
WITH b,
     count(p) AS posts,
     sum(postComments) AS comments,
     sum(coalesce(p.likes, 0)) AS likes
WITH b, posts, comments, likes, posts + comments + likes AS socialScore
ORDER BY socialScore DESC
LIMIT $limit
OPTIONAL MATCH (reader:USER)-[:READING]->(b)
WITH b, posts, comments, likes, socialScore, count(DISTINCT reader) AS readers`+
			withBook("posts, comments, likes, socialScore, readers", "readers, posts, comments, likes, socialScore")+`ORDER BY socialScore DESC
`, map[string]any{"limit": int64(trendingLimit)})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.SocialTrendingBook{
				BookSummary: decodeBook(rec),
				Readers:     neo4jdb.Int(rec, "readers"),
				SocialStats: reading.SocialStats{
					Posts:    neo4jdb.Int(rec, "posts"),
					Comments: neo4jdb.Int(rec, "comments"),
					Likes:    neo4jdb.Int(rec, "likes"),
				},
			})
		}
		return nil
	})
	if err != nil {
		return []reading.SocialTrendingBook{}, err
	}
	return out, nil
}

func (r *feedRepo) ClubTrending(ctx context.Context) ([]reading.ClubTrendingBook, error) {
	out := []reading.ClubTrendingBook{}
	err := r.read(ctx, "club_trending", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (bc:BOOK_CLUB)-[f:FEATURED]->(b:BOOK)
WITH b, count(DISTINCT bc) AS clubCount, avg(coalesce(f.rating, $defaultRating)) AS avgRating
ORDER BY clubCount DESC
LIMIT $limit
OPTIONAL MATCH (reader:USER)-[:READING]->(b)
WITH b, clubCount, avgRating, count(DISTINCT reader) AS readers`+
			withBook("clubCount, avgRating, readers", "readers, clubCount, avgRating")+`ORDER BY clubCount DESC
`, map[string]any{"limit": int64(trendingLimit), "defaultRating": defaultClubScore})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.ClubTrendingBook{
				BookSummary: decodeBook(rec),
				Readers:     neo4jdb.Int(rec, "readers"),
				ClubStats: reading.ClubStats{
					ClubCount: neo4jdb.Int(rec, "clubCount"),
					AvgRating: math.Round(neo4jdb.Float(rec, "avgRating")*10) / 10,
				},
			})
		}
		return nil
	})
	if err != nil {
		return []reading.ClubTrendingBook{}, err
	}
	return out, nil
}

func (r *feedRepo) LocalTrending(ctx context.Context, userID string, now time.Time) ([]reading.LocalTrendingBook, error) {
	out := []reading.LocalTrendingBook{}
	err := r.read(ctx, "local_trending", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})-[:LIVES_IN]->(city:CITY)-[:PART_OF]->(state:STATE)
MATCH (other:USER)-[:LIVES_IN]->(:CITY)-[:PART_OF]->(state)
WHERE other <> u
MATCH (other)-[r:RATES|READING]->(b:BOOK)
WHERE `+recentActivity+`
WITH b, city.name AS cityName, state.name AS stateName, count(DISTINCT other) AS readers
ORDER BY readers DESC
LIMIT $limit`+withBook("cityName, stateName, readers", "readers, cityName, stateName")+`ORDER BY readers DESC
`, map[string]any{"userId": userID, "since": now.UTC().Add(-TrendingWindow), "limit": int64(trendingLimit)})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.LocalTrendingBook{
				BookSummary: decodeBook(rec),
				Readers:     neo4jdb.Int(rec, "readers"),
				LocationStats: reading.LocationStats{
					Location: neo4jdb.String(rec, "cityName"),
					State:    neo4jdb.String(rec, "stateName"),
				},
			})
		}
		return nil
	})
	if err != nil {
		return []reading.LocalTrendingBook{}, err
	}
	return out, nil
}

func (r *feedRepo) UpcomingEvents(ctx context.Context, userID string, now time.Time) ([]reading.Event, error) {
	out := []reading.Event{}
	err := r.read(ctx, "upcoming_events", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId})-[:LIVES_IN]->(:CITY)-[:PART_OF]->(s:STATE)
MATCH (e:EVENT)-[:LOCATED_IN]->(c:CITY)-[:PART_OF]->(s)
WHERE e.date > $now
OPTIONAL MATCH (u)-[:FRIEND]->(f:USER)-[:ATTENDED]->(e)
RETURN e.id AS id,
       e.name AS name,
       e.description AS description,
       e.date AS date,
       c.name AS location,
       count(DISTINCT f) AS friendsAttending
ORDER BY date ASC
LIMIT 1
`, map[string]any{"userId": userID, "now": now.UTC()})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.Event{
				ID:               neo4jdb.String(rec, "id"),
				Name:             neo4jdb.String(rec, "name"),
				Description:      neo4jdb.String(rec, "description"),
				Date:             neo4jdb.Time(rec, "date"),
				Location:         neo4jdb.String(rec, "location"),
				FriendsAttending: neo4jdb.Int(rec, "friendsAttending"),
			})
		}
		return nil
	})
	if err != nil {
		return []reading.Event{}, err
	}
	return out, nil
}

func (r *feedRepo) RecentlyAdded(ctx context.Context, now time.Time) ([]reading.RecentBook, error) {
	out := []reading.RecentBook{}
	err := r.read(ctx, "recently_added", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (b:BOOK)
WHERE b.publishedYear IS NOT NULL AND b.publishedYear >= $minYear
WITH b
ORDER BY b.publishedYear DESC, b.createdAt DESC
LIMIT $limit`+withBook("", "b.createdAt AS addedAt")+`ORDER BY publishedYear DESC
`, map[string]any{"minYear": int64(RecentMinYear), "limit": int64(recentLimit)})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.RecentBook{
				BookSummary: decodeBook(rec),
				DaysAgo:     reading.DaysSince(neo4jdb.Time(rec, "addedAt"), now),
			})
		}
		return nil
	})
	if err != nil {
		return []reading.RecentBook{}, err
	}
	return out, nil
}

func (r *feedRepo) Adaptations(ctx context.Context, userID string) ([]reading.Adaptation, error) {
	out := []reading.Adaptation{}
	err := r.read(ctx, "adaptations", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (m:MOVIE)-[:ADAPTED_FROM]->(b:BOOK)
OPTIONAL MATCH (u:USER {id: $userId})-[rt:RATES]->(b)
RETURN m.id AS id,
       m.title AS title,
       m.releaseYear AS releaseYear,
       b.title AS bookTitle,
       rt IS NOT NULL AS hasRead
ORDER BY releaseYear DESC
LIMIT 1
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		out = decodeAdaptations(recs)
		return nil
	})
	if err != nil {
		return []reading.Adaptation{}, err
	}
	return out, nil
}
