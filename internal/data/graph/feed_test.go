package graph

import (
	"context"
	"testing"
	"time"
)

func TestTrendingInGenresWindow(t *testing.T) {
	store, tx := script(t, step{match: "PREFERS_GENRE", recs: rows(record("id", "BOOK-1", "title", "Kindred", "readers", int64(6)))})
	got, err := NewFeedRepo(store, nop, nil).TrendingInGenres(context.Background(), "USER-1", t0)
	if err != nil {
		t.Fatalf("TrendingInGenres: %v", err)
	}
	if since := tx.param(0, "since"); since != t0.Add(-30*24*time.Hour) {
		t.Fatalf("since: got=%v", since)
	}
	if len(got) != 1 || got[0].Readers != 6 || len(got[0].Genres) != 0 || got[0].Genres == nil {
		t.Fatalf("rows: got=%+v", got)
	}
}

func TestSocialTrending(t *testing.T) {
	store, _ := script(t, step{match: "(p:POST)-[:ABOUT]->", recs: rows(record(
		"id", "BOOK-1", "readers", int64(2), "posts", int64(3), "comments", int64(5), "likes", int64(40),
	))})
	got, err := NewFeedRepo(store, nop, nil).SocialTrending(context.Background())
	if err != nil {
		t.Fatalf("SocialTrending: %v", err)
	}
	if len(got) != 1 || got[0].SocialStats.Posts != 3 || got[0].SocialStats.Comments != 5 || got[0].SocialStats.Likes != 40 {
		t.Fatalf("rows: got=%+v", got)
	}
}

func TestClubTrendingRoundsRating(t *testing.T) {
	store, tx := script(t, step{match: "BOOK_CLUB", recs: rows(record("id", "BOOK-1", "clubCount", int64(2), "avgRating", 4.26))})
	got, err := NewFeedRepo(store, nop, nil).ClubTrending(context.Background())
	if err != nil {
		t.Fatalf("ClubTrending: %v", err)
	}
	if tx.param(0, "defaultRating") != 4.0 {
		t.Fatalf("default rating: got=%v", tx.param(0, "defaultRating"))
	}
	if len(got) != 1 || got[0].ClubStats.AvgRating != 4.3 || got[0].ClubStats.ClubCount != 2 {
		t.Fatalf("rows: got=%+v", got)
	}
}

func TestLocalTrending(t *testing.T) {
	store, _ := script(t, step{match: "LIVES_IN", recs: rows(record("id", "BOOK-1", "readers", int64(3), "cityName", "Austin", "stateName", "Texas"))})
	got, err := NewFeedRepo(store, nop, nil).LocalTrending(context.Background(), "USER-1", t0)
	if err != nil {
		t.Fatalf("LocalTrending: %v", err)
	}
	if len(got) != 1 || got[0].LocationStats.Location != "Austin" || got[0].LocationStats.State != "Texas" {
		t.Fatalf("rows: got=%+v", got)
	}
}

func TestUpcomingEvents(t *testing.T) {
	when := t0.Add(72 * time.Hour)
	store, tx := script(t, step{match: "e.date > $now", recs: rows(record(
		"id", "EVENT-1", "name", "Author talk", "date", when, "location", "Austin", "friendsAttending", int64(2),
	))})
	got, err := NewFeedRepo(store, nop, nil).UpcomingEvents(context.Background(), "USER-1", t0)
	if err != nil {
		t.Fatalf("UpcomingEvents: %v", err)
	}
	if tx.param(0, "now") != t0 {
		t.Fatalf("now: got=%v", tx.param(0, "now"))
	}
	if len(got) != 1 || got[0].FriendsAttending != 2 || !got[0].Date.Equal(when) {
		t.Fatalf("rows: got=%+v", got)
	}
}

func TestRecentlyAddedDaysAgo(t *testing.T) {
	store, tx := script(t, step{match: "b.publishedYear >= $minYear", recs: rows(
		record("id", "BOOK-1", "publishedYear", int64(2025), "addedAt", t0.Add(-50*time.Hour)),
		record("id", "BOOK-2", "publishedYear", int64(2024), "addedAt", nil),
	)})
	got, err := NewFeedRepo(store, nop, nil).RecentlyAdded(context.Background(), t0)
	if err != nil {
		t.Fatalf("RecentlyAdded: %v", err)
	}
	if tx.param(0, "minYear") != int64(RecentMinYear) {
		t.Fatalf("min year: got=%v", tx.param(0, "minYear"))
	}
	if len(got) != 2 || got[0].DaysAgo != 2 || got[1].DaysAgo != 0 {
		t.Fatalf("rows: got=%+v", got)
	}
}

func TestAdaptations(t *testing.T) {
	store, _ := script(t, step{match: "ADAPTED_FROM", recs: rows(record(
		"id", "MOVIE-1", "title", "Dune: Part Two", "releaseYear", int64(2024), "bookTitle", "Dune", "hasRead", true,
	))})
	got, err := NewFeedRepo(store, nop, nil).Adaptations(context.Background(), "USER-1")
	if err != nil {
		t.Fatalf("Adaptations: %v", err)
	}
	if len(got) != 1 || !got[0].HasRead || got[0].ReleaseYear != 2024 || got[0].BookTitle != "Dune" {
		t.Fatalf("rows: got=%+v", got)
	}
}
