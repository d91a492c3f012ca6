package handlers

import (
	"context"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

type fakeSessionService struct {
	startPage int
	startErr  error
	endErr    error
	endPage   int
}

func (f *fakeSessionService) StartSession(_ context.Context, _, _ string, startPage int) (string, error) {
	f.startPage = startPage
	if f.startErr != nil {
		return "", f.startErr
	}
	return "RS-1", nil
}

func (f *fakeSessionService) EndSession(_ context.Context, _, sessionID string, endPage int, _ string) (reading.SessionSummary, error) {
	f.endPage = endPage
	if f.endErr != nil {
		return reading.SessionSummary{}, f.endErr
	}
	return reading.SessionSummary{SessionID: sessionID, EndPage: endPage, PercentComplete: 50}, nil
}

func (f *fakeSessionService) ActiveSession(context.Context, string, string) (*reading.ActiveSession, error) {
	return nil, nil
}

func (f *fakeSessionService) BookSessions(context.Context, string, string) ([]reading.Session, error) {
	return []reading.Session{}, nil
}

func (f *fakeSessionService) UserBookStats(context.Context, string, string) (reading.SessionStats, error) {
	return reading.SessionStats{SessionCount: 3}, nil
}

func (f *fakeSessionService) BookStats(context.Context, string) (reading.BookReadingStats, error) {
	return reading.BookReadingStats{}, nil
}

type fakeStatusService struct {
	status      string
	currentPage *int
	rating      int
	err         error
}

func (f *fakeStatusService) GetStatus(context.Context, string, string) (reading.BookStatus, error) {
	return reading.DefaultBookStatus(), nil
}

func (f *fakeStatusService) UpdateStatus(_ context.Context, _, _, status string, currentPage *int) (reading.Status, error) {
	f.status, f.currentPage = status, currentPage
	if f.err != nil {
		return "", f.err
	}
	return reading.Status(status), nil
}

func (f *fakeStatusService) UpdateCurrentPage(_ context.Context, _, _ string, page int) (reading.PageProgress, error) {
	if f.err != nil {
		return reading.PageProgress{}, f.err
	}
	return reading.PageProgress{CurrentPage: page}, nil
}

func (f *fakeStatusService) RateBook(_ context.Context, _, _ string, rating int) (reading.Rating, error) {
	f.rating = rating
	if f.err != nil {
		return reading.Rating{}, f.err
	}
	return reading.Rating{Value: rating}, nil
}

func (f *fakeStatusService) GetReview(context.Context, string, string) (*reading.Review, error) {
	return nil, nil
}

func (f *fakeStatusService) SaveReview(_ context.Context, _, _, content string) (*reading.Review, error) {
	return &reading.Review{Content: content}, f.err
}

type fakeFeedService struct {
	pageErr error
}

func (f *fakeFeedService) HomeFeed(_ context.Context, _, filter string) services.HomeFeed {
	return services.HomeFeed{Filter: reading.ParseFilter(filter), Failed: []string{services.BranchClubTrending}}
}

func (f *fakeFeedService) BookDetail(context.Context, string, string) (reading.BookDetail, error) {
	if f.pageErr != nil {
		return reading.BookDetail{}, f.pageErr
	}
	return reading.BookDetail{BookSummary: reading.BookSummary{ID: "BOOK-1"}}, nil
}

func (f *fakeFeedService) BookPage(context.Context, string, string) (services.BookPage, error) {
	if f.pageErr != nil {
		return services.BookPage{}, f.pageErr
	}
	return services.BookPage{Failed: []string{}}, nil
}

type fakeShelfService struct {
	limit int
}

func (f *fakeShelfService) CurrentlyReading(context.Context, string) []reading.CurrentlyReading {
	return []reading.CurrentlyReading{}
}
func (f *fakeShelfService) Reading(context.Context, string) []reading.ShelfEntry {
	return []reading.ShelfEntry{{ID: "BOOK-1"}}
}
func (f *fakeShelfService) WantToRead(context.Context, string) []reading.ShelfEntry {
	return []reading.ShelfEntry{}
}
func (f *fakeShelfService) Finished(context.Context, string) []reading.ShelfEntry {
	return []reading.ShelfEntry{}
}
func (f *fakeShelfService) Favorites(context.Context, string) []reading.ShelfEntry {
	return []reading.ShelfEntry{}
}
func (f *fakeShelfService) Stats(context.Context, string) reading.UserReadingStats {
	return reading.UserReadingStats{BooksFinished: 2}
}
func (f *fakeShelfService) History(_ context.Context, _ string, limit int) []reading.HistoryEntry {
	f.limit = limit
	return []reading.HistoryEntry{}
}

type fakeGoalService struct {
	updated bool
	err     error
	start   time.Time
	end     time.Time
}

func (f *fakeGoalService) ListGoals(context.Context, string) ([]reading.Goal, error) {
	return []reading.Goal{}, nil
}

func (f *fakeGoalService) SetGoal(_ context.Context, _ string, in reading.GoalInput) (reading.GoalResult, error) {
	if f.err != nil {
		return reading.GoalResult{}, f.err
	}
	return reading.GoalResult{ID: "GOAL-1", Period: reading.Period(in.Period), Target: in.Target, Updated: f.updated}, nil
}

func (f *fakeGoalService) UpdateGoalProgress(context.Context, string, string, int) (reading.Goal, error) {
	return reading.Goal{}, f.err
}

func (f *fakeGoalService) ActiveGoal(context.Context, string, string) (*reading.Goal, error) {
	return nil, f.err
}

func (f *fakeGoalService) CancelGoal(context.Context, string, string) (reading.Goal, error) {
	return reading.Goal{}, f.err
}

func (f *fakeGoalService) CompletedGoals(context.Context, string) ([]reading.Goal, error) {
	return []reading.Goal{}, nil
}

func (f *fakeGoalService) BooksReadInPeriod(_ context.Context, _ string, start, end time.Time) (int, error) {
	f.start, f.end = start, end
	return 2, f.err
}

func (f *fakeGoalService) SyncGoalProgress(context.Context, string, string) (reading.Goal, error) {
	return reading.Goal{}, f.err
}

type fakeRecommendationService struct{}

func (fakeRecommendationService) Recommend(_ context.Context, _, filter string) services.RecommendationResult {
	return services.RecommendationResult{Filter: reading.ParseFilter(filter), Recommendations: []reading.Recommendation{}}
}

func (fakeRecommendationService) Rank(context.Context, string, reading.Filter) ([]reading.Recommendation, error) {
	return []reading.Recommendation{}, nil
}

type fakeProfileService struct {
	update  *reading.ProfileUpdate
	prefs   *reading.Preferences
	err     error
	clubID  string
	profile reading.Profile
}

func (f *fakeProfileService) Profile(context.Context, string) (reading.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) UpdateProfile(_ context.Context, _ string, u reading.ProfileUpdate) (reading.Profile, error) {
	f.update = &u
	if f.err != nil {
		return reading.Profile{}, f.err
	}
	return reading.Profile{ID: "USER-1", Name: u.Name()}, nil
}

func (f *fakeProfileService) Preferences(context.Context, string) reading.Preferences {
	return reading.EmptyPreferences()
}

func (f *fakeProfileService) UpdatePreferences(_ context.Context, _ string, p reading.Preferences) (reading.Preferences, error) {
	f.prefs = &p
	return p, f.err
}

func (f *fakeProfileService) Social(context.Context, string) reading.SocialData {
	return reading.EmptySocialData()
}

func (f *fakeProfileService) ProfileOptions(context.Context) reading.ProfileOptions {
	return reading.ProfileOptions{Professions: []string{"Teacher"}, Hobbies: []string{}}
}

func (f *fakeProfileService) ReadingOptions(context.Context) reading.ReadingOptions {
	return reading.ReadingOptions{}
}

func (f *fakeProfileService) Locations(context.Context) reading.Locations {
	return reading.EmptyLocations()
}

func (f *fakeProfileService) AvailableClubs(context.Context, string) []reading.BookClub {
	return []reading.BookClub{}
}

func (f *fakeProfileService) JoinClub(_ context.Context, _, clubID string) (reading.ClubMembership, error) {
	f.clubID = clubID
	return reading.ClubMembership{ID: clubID, MemberRole: reading.RoleMember}, f.err
}

func (f *fakeProfileService) LeaveClub(_ context.Context, _, clubID string) error {
	f.clubID = clubID
	return f.err
}
