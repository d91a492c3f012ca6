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

type ClubRepo interface {
	// Available lists clubs the user is not a member of, largest first.
	Available(ctx context.Context, userID string) ([]reading.BookClub, error)
	Join(ctx context.Context, userID, clubID string, now time.Time) (reading.ClubMembership, error)
	Leave(ctx context.Context, userID, clubID string) error
}

type clubRepo struct {
	base
}

func NewClubRepo(store neo4jdb.Store, log *logger.Logger, metrics *observability.Metrics) ClubRepo {
	return &clubRepo{base: newBase(store, log, metrics, "ClubRepo")}
}

func (r *clubRepo) Available(ctx context.Context, userID string) ([]reading.BookClub, error) {
	out := []reading.BookClub{}
	err := r.read(ctx, "available_clubs", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (bc:BOOK_CLUB)
WHERE NOT (:USER {id: $userId})-[:MEMBER_OF]->(bc)
OPTIONAL MATCH (bc)<-[:MEMBER_OF]-(member:USER)
WITH bc, count(DISTINCT member) AS memberCount
OPTIONAL MATCH (bc)-[:FOCUSES_ON]->(g:GENRE)
RETURN bc.id AS id,
       bc.name AS name,
       bc.description AS description,
       memberCount,
       collect(DISTINCT g.name) AS genres
ORDER BY memberCount DESC, name
`, map[string]any{"userId": userID})
		if err != nil {
			return err
		}
		for _, rec := range recs {
			out = append(out, reading.BookClub{
				ID:          neo4jdb.String(rec, "id"),
				Name:        neo4jdb.String(rec, "name"),
				Description: neo4jdb.String(rec, "description"),
				MemberCount: neo4jdb.Int(rec, "memberCount"),
				Genres:      neo4jdb.Strings(rec, "genres"),
			})
		}
		return nil
	})
	if err != nil {
		return []reading.BookClub{}, err
	}
	return out, nil
}

// Join keeps an existing membership's role and join date.
func (r *clubRepo) Join(ctx context.Context, userID, clubID string, now time.Time) (reading.ClubMembership, error) {
	var out reading.ClubMembership
	err := r.write(ctx, "join_club", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (u:USER {id: $userId}), (bc:BOOK_CLUB {id: $clubId})
MERGE (u)-[m:MEMBER_OF]->(bc)
ON CREATE SET m.role = $role, m.joinDate = $now
WITH bc, m
OPTIONAL MATCH (bc)<-[:MEMBER_OF]-(member:USER)
RETURN bc.id AS clubId,
       bc.name AS clubName,
       m.role AS memberRole,
       m.joinDate AS joinDate,
       count(DISTINCT member) AS memberCount
`, map[string]any{"userId": userID, "clubId": clubID, "role": reading.RoleMember, "now": now})
		if err != nil {
			return err
		}
		rec := neo4jdb.First(recs)
		if rec == nil {
			return apperr.NotFound("user %s or book club %s", userID, clubID)
		}
		out = reading.ClubMembership{
			ID:          neo4jdb.String(rec, "clubId"),
			Name:        neo4jdb.String(rec, "clubName"),
			MemberRole:  neo4jdb.String(rec, "memberRole"),
			JoinedDate:  neo4jdb.Time(rec, "joinDate"),
			MemberCount: neo4jdb.Int(rec, "memberCount"),
		}
		return nil
	})
	if err != nil {
		return reading.ClubMembership{}, err
	}
	return out, nil
}

func (r *clubRepo) Leave(ctx context.Context, userID, clubID string) error {
	return r.write(ctx, "leave_club", func(ctx context.Context, tx neo4jdb.Tx) error {
		recs, err := tx.Run(ctx, `
MATCH (:USER {id: $userId})-[m:MEMBER_OF]->(:BOOK_CLUB {id: $clubId})
DELETE m
RETURN count(*) AS removed
`, map[string]any{"userId": userID, "clubId": clubID})
		if err != nil {
			return err
		}
		if neo4jdb.Int(neo4jdb.First(recs), "removed") == 0 {
			return apperr.NotFound("membership of %s in book club %s", userID, clubID)
		}
		return nil
	})
}
