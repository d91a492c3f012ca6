package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

func TestAvailableClubs(t *testing.T) {
	store, tx := script(t, step{match: "WHERE NOT (:USER {id: $userId})-[:MEMBER_OF]->(bc)", recs: rows(
		record("id", "BC-1", "name", "Night Owls", "memberCount", int64(12), "genres", []any{"Horror"}),
	)})
	got, err := NewClubRepo(store, nop, nil).Available(context.Background(), "USER-1")
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	tx.done()
	if len(got) != 1 || got[0].MemberCount != 12 || len(got[0].Genres) != 1 {
		t.Fatalf("clubs: got=%+v", got)
	}
}

func TestJoinClub(t *testing.T) {
	store, tx := script(t, step{match: "ON CREATE SET m.role = $role", recs: rows(record(
		"clubId", "BC-1", "clubName", "Night Owls", "memberRole", "Member", "joinDate", t0, "memberCount", int64(13),
	))})
	got, err := NewClubRepo(store, nop, nil).Join(context.Background(), "USER-1", "BC-1", t0)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if got.MemberRole != reading.RoleMember || got.JoinedDate == nil || got.MemberCount != 13 {
		t.Fatalf("membership: got=%+v", got)
	}
	if tx.param(0, "role") != reading.RoleMember || tx.param(0, "now") != t0 {
		t.Fatalf("params: %+v", tx.calls[0].params)
	}
}

func TestJoinUnknownClub(t *testing.T) {
	store, _ := script(t, step{match: "MERGE (u)-[m:MEMBER_OF]->(bc)"})
	if _, err := NewClubRepo(store, nop, nil).Join(context.Background(), "USER-1", "BC-404", t0); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound got=%v", err)
	}
}

func TestLeaveClub(t *testing.T) {
	store, _ := script(t, step{match: "DELETE m", recs: rows(record("removed", int64(1)))})
	if err := NewClubRepo(store, nop, nil).Leave(context.Background(), "USER-1", "BC-1"); err != nil {
		t.Fatalf("Leave: %v", err)
	}

	store, _ = script(t, step{match: "DELETE m", recs: rows(record("removed", int64(0)))})
	if err := NewClubRepo(store, nop, nil).Leave(context.Background(), "USER-1", "BC-1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("not a member: want ErrNotFound got=%v", err)
	}
}
