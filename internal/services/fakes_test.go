package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/data/graph"
	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

var (
	nop      = logger.NewNop()
	t0       = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock    = func() time.Time { return t0 }
	errStore = apperr.Store("test", errors.New("connection refused"))
)

type fakeSessions struct {
	mu      sync.Mutex
	started []*reading.Session
	start   func(*reading.Session) error
	end     func(userID, sessionID string, endPage int, notes string, now time.Time) (reading.SessionSummary, error)
	active  *graph.ActiveSessionRow
	closed  []reading.Session
	err     error
}

func (f *fakeSessions) Start(_ context.Context, s *reading.Session) error {
	f.mu.Lock()
	f.started = append(f.started, s)
	f.mu.Unlock()
	if f.start != nil {
		return f.start(s)
	}
	return f.err
}

func (f *fakeSessions) End(_ context.Context, userID, sessionID string, endPage int, notes string, now time.Time) (reading.SessionSummary, error) {
	if f.end != nil {
		return f.end(userID, sessionID, endPage, notes, now)
	}
	return reading.SessionSummary{}, f.err
}

func (f *fakeSessions) Active(context.Context, string, string) (*graph.ActiveSessionRow, error) {
	return f.active, f.err
}

func (f *fakeSessions) Closed(context.Context, string, string) ([]reading.Session, error) {
	if f.err != nil {
		return []reading.Session{}, f.err
	}
	return f.closed, nil
}

func (f *fakeSessions) UserBookStats(context.Context, string, string) (reading.SessionStats, error) {
	return reading.SessionStats{SessionCount: 2}, f.err
}

func (f *fakeSessions) BookStats(context.Context, string) (reading.BookReadingStats, error) {
	return reading.BookReadingStats{SessionCount: 9}, f.err
}

type fakeStatus struct {
	status   reading.BookStatus
	replaced []reading.StatusChange
	review   *reading.Review
	deleted  int
	saved    []string
	pageErr  error
	err      error
}

func (f *fakeStatus) Get(context.Context, string, string) (reading.BookStatus, error) {
	if f.err != nil {
		return reading.DefaultBookStatus(), f.err
	}
	return f.status, nil
}

func (f *fakeStatus) Replace(_ context.Context, _, _ string, change reading.StatusChange) error {
	f.replaced = append(f.replaced, change)
	return f.err
}

func (f *fakeStatus) UpdatePage(_ context.Context, _, _ string, page int, _ time.Time) (reading.PageProgress, error) {
	if f.pageErr != nil {
		return reading.PageProgress{}, f.pageErr
	}
	return reading.PageProgress{CurrentPage: page, PercentComplete: reading.PercentComplete(page, 200)}, nil
}

func (f *fakeStatus) Rate(_ context.Context, _, _ string, rating int, now time.Time) (reading.Rating, error) {
	return reading.Rating{Value: rating, Timestamp: now}, f.err
}

func (f *fakeStatus) Review(context.Context, string, string) (*reading.Review, error) {
	return f.review, f.err
}

func (f *fakeStatus) SaveReview(_ context.Context, _, _, content string, now time.Time) (reading.Review, error) {
	f.saved = append(f.saved, content)
	return reading.Review{Content: content, CreatedAt: now, UpdatedAt: now}, f.err
}

func (f *fakeStatus) DeleteReview(context.Context, string, string) error {
	f.deleted++
	return f.err
}

type fakeRecRepo struct {
	candidates []reading.Candidate
	interacted map[string]struct{}
	candErr    error
	idsErr     error
	pool       int
}

func (f *fakeRecRepo) Candidates(_ context.Context, _ string, _ reading.Filter, pool int) ([]reading.Candidate, error) {
	f.pool = pool
	if f.candErr != nil {
		return []reading.Candidate{}, f.candErr
	}
	return f.candidates, nil
}

func (f *fakeRecRepo) InteractedBookIDs(context.Context, string) (map[string]struct{}, error) {
	if f.idsErr != nil {
		return map[string]struct{}{}, f.idsErr
	}
	return f.interacted, nil
}

type fakeGoals struct {
	active    *reading.Goal
	booksRead int
	upserts   []reading.GoalSpec
	progress  []int
	err       error
}

func (f *fakeGoals) List(context.Context, string) ([]reading.Goal, error) {
	return []reading.Goal{}, f.err
}

func (f *fakeGoals) Upsert(_ context.Context, _ string, spec reading.GoalSpec, _ time.Time) (reading.GoalResult, error) {
	f.upserts = append(f.upserts, spec)
	if f.err != nil {
		return reading.GoalResult{}, f.err
	}
	return reading.GoalResult{ID: "GOAL-1", Period: spec.Period, Target: spec.Target, Updated: len(f.upserts) > 1}, nil
}

func (f *fakeGoals) UpdateProgress(_ context.Context, _, goalID string, progress int, now time.Time) (reading.Goal, error) {
	f.progress = append(f.progress, progress)
	if f.active == nil || f.active.ID != goalID {
		return reading.Goal{}, apperr.NotFound("reading goal %s", goalID)
	}
	g := *f.active
	if err := g.ApplyProgress(progress, now); err != nil {
		return reading.Goal{}, err
	}
	return g, nil
}

func (f *fakeGoals) Cancel(_ context.Context, _, goalID string, now time.Time) (reading.Goal, error) {
	if f.active == nil {
		return reading.Goal{}, apperr.NotFound("reading goal %s", goalID)
	}
	g := *f.active
	if err := g.Cancel(now); err != nil {
		return reading.Goal{}, err
	}
	return g, nil
}

func (f *fakeGoals) Active(context.Context, string, reading.Period) (*reading.Goal, error) {
	return f.active, f.err
}

func (f *fakeGoals) Completed(context.Context, string) ([]reading.Goal, error) {
	return []reading.Goal{}, f.err
}

func (f *fakeGoals) BooksReadInPeriod(context.Context, string, time.Time, time.Time) (int, error) {
	return f.booksRead, f.err
}

type fakeShelves struct {
	current []reading.CurrentlyReading
	err     error
	limit   int
}

func (f *fakeShelves) CurrentlyReading(context.Context, string) ([]reading.CurrentlyReading, error) {
	if f.err != nil {
		return []reading.CurrentlyReading{}, f.err
	}
	return f.current, nil
}

func (f *fakeShelves) Reading(context.Context, string) ([]reading.ShelfEntry, error) {
	return []reading.ShelfEntry{{ID: "BOOK-1"}}, f.err
}

func (f *fakeShelves) WantToRead(context.Context, string) ([]reading.ShelfEntry, error) {
	return []reading.ShelfEntry{}, f.err
}

func (f *fakeShelves) Finished(context.Context, string) ([]reading.ShelfEntry, error) {
	return []reading.ShelfEntry{}, f.err
}

func (f *fakeShelves) Favorites(context.Context, string) ([]reading.ShelfEntry, error) {
	return []reading.ShelfEntry{}, f.err
}

func (f *fakeShelves) Stats(context.Context, string) (reading.UserReadingStats, error) {
	return reading.UserReadingStats{BooksReading: 1}, f.err
}

func (f *fakeShelves) History(_ context.Context, _ string, limit int) ([]reading.HistoryEntry, error) {
	f.limit = limit
	return []reading.HistoryEntry{}, f.err
}

// fakeFeed fails the branches named in failing.
type fakeFeed struct {
	failing map[string]bool
}

func (f *fakeFeed) fail(branch string) error {
	if f.failing[branch] {
		return errStore
	}
	return nil
}

func (f *fakeFeed) TrendingInGenres(context.Context, string, time.Time) ([]reading.TrendingBook, error) {
	if err := f.fail(BranchTrendingInGenres); err != nil {
		return []reading.TrendingBook{}, err
	}
	return []reading.TrendingBook{{Readers: 3}}, nil
}

func (f *fakeFeed) SocialTrending(context.Context) ([]reading.SocialTrendingBook, error) {
	if err := f.fail(BranchSocialTrending); err != nil {
		return []reading.SocialTrendingBook{}, err
	}
	return []reading.SocialTrendingBook{{Readers: 1}}, nil
}

func (f *fakeFeed) ClubTrending(context.Context) ([]reading.ClubTrendingBook, error) {
	if err := f.fail(BranchClubTrending); err != nil {
		return []reading.ClubTrendingBook{}, err
	}
	return []reading.ClubTrendingBook{{Readers: 1}}, nil
}

func (f *fakeFeed) LocalTrending(context.Context, string, time.Time) ([]reading.LocalTrendingBook, error) {
	if err := f.fail(BranchLocalTrending); err != nil {
		return []reading.LocalTrendingBook{}, err
	}
	return []reading.LocalTrendingBook{{Readers: 2}}, nil
}

func (f *fakeFeed) UpcomingEvents(context.Context, string, time.Time) ([]reading.Event, error) {
	if err := f.fail(BranchUpcomingEvents); err != nil {
		return []reading.Event{}, err
	}
	return []reading.Event{{ID: "EVENT-1"}}, nil
}

func (f *fakeFeed) RecentlyAdded(context.Context, time.Time) ([]reading.RecentBook, error) {
	if err := f.fail(BranchRecentlyAdded); err != nil {
		return []reading.RecentBook{}, err
	}
	return []reading.RecentBook{{DaysAgo: 1}}, nil
}

func (f *fakeFeed) Adaptations(context.Context, string) ([]reading.Adaptation, error) {
	if err := f.fail(BranchAdaptations); err != nil {
		return []reading.Adaptation{}, err
	}
	return []reading.Adaptation{{ID: "MOVIE-1"}}, nil
}

type fakeBooks struct {
	detail reading.BookDetail
	err    error
}

func (f *fakeBooks) Detail(context.Context, string, string) (reading.BookDetail, error) {
	return f.detail, f.err
}

type fakeLocker struct {
	mu       sync.Mutex
	keys     []string
	released int
	err      error
}

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	if l.err != nil {
		return nil, l.err
	}
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

type fakeProfiles struct {
	profile  reading.Profile
	getErr   error
	updated  *reading.ProfileUpdate
	prefs    *reading.Preferences
	options  reading.ProfileOptions
	seeded   [][]string
	seedErr  error
	err      error
	getCalls int
}

func (f *fakeProfiles) Get(context.Context, string) (reading.Profile, error) {
	f.getCalls++
	if f.getErr != nil {
		return reading.Profile{}, f.getErr
	}
	return f.profile, nil
}

func (f *fakeProfiles) Update(_ context.Context, _ string, u reading.ProfileUpdate) error {
	f.updated = &u
	return f.err
}

func (f *fakeProfiles) Preferences(context.Context, string) (reading.Preferences, error) {
	if f.err != nil {
		return reading.EmptyPreferences(), f.err
	}
	return reading.Preferences{Genres: []string{"Fantasy"}, Authors: []string{}, Themes: []string{}}, nil
}

func (f *fakeProfiles) ReplacePreferences(_ context.Context, _ string, p reading.Preferences) error {
	f.prefs = &p
	return f.err
}

func (f *fakeProfiles) Social(context.Context, string) (reading.SocialData, error) {
	if f.err != nil {
		return reading.EmptySocialData(), f.err
	}
	return reading.SocialData{FollowersCount: 2, BookClubs: []reading.ClubMembership{}}, nil
}

func (f *fakeProfiles) ProfileOptions(context.Context) (reading.ProfileOptions, error) {
	return f.options, f.err
}

func (f *fakeProfiles) SeedProfileOptions(_ context.Context, professions, hobbies []string) error {
	f.seeded = append(f.seeded, professions, hobbies)
	return f.seedErr
}

func (f *fakeProfiles) ReadingOptions(context.Context) (reading.ReadingOptions, error) {
	return reading.ReadingOptions{}, f.err
}

func (f *fakeProfiles) Locations(context.Context) (reading.Locations, error) {
	return reading.Locations{}, f.err
}

type fakeClubs struct {
	joinedAt time.Time
	err      error
}

func (f *fakeClubs) Available(context.Context, string) ([]reading.BookClub, error) {
	if f.err != nil {
		return []reading.BookClub{}, f.err
	}
	return []reading.BookClub{{ID: "BC-1"}}, nil
}

func (f *fakeClubs) Join(_ context.Context, _, clubID string, now time.Time) (reading.ClubMembership, error) {
	f.joinedAt = now
	if f.err != nil {
		return reading.ClubMembership{}, f.err
	}
	return reading.ClubMembership{ID: clubID, MemberRole: reading.RoleMember}, nil
}

func (f *fakeClubs) Leave(context.Context, string, string) error { return f.err }
