package reading

import "time"

type CurrentlyReading struct {
	BookSummary
	CurrentPage int        `json:"currentPage"`
	Progress    int        `json:"progress"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

type TrendingBook struct {
	BookSummary
	Readers int `json:"readers"`
}

type SocialStats struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
}

type SocialTrendingBook struct {
	BookSummary
	Readers     int         `json:"readers"`
	SocialStats SocialStats `json:"socialStats"`
}

type ClubStats struct {
	ClubCount int     `json:"clubCount"`
	AvgRating float64 `json:"avgRating"`
}

type ClubTrendingBook struct {
	BookSummary
	Readers   int       `json:"readers"`
	ClubStats ClubStats `json:"clubStats"`
}

type LocationStats struct {
	Location string `json:"location"`
	State    string `json:"state"`
}

type LocalTrendingBook struct {
	BookSummary
	Readers       int           `json:"readers"`
	LocationStats LocationStats `json:"locationStats"`
}

type Event struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	Date             *time.Time `json:"date,omitempty"`
	Location         string     `json:"location,omitempty"`
	FriendsAttending int        `json:"friendsAttending"`
}

type RecentBook struct {
	BookSummary
	DaysAgo int `json:"daysAgo"`
}

type Adaptation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
	BookTitle   string `json:"bookTitle,omitempty"`
	HasRead     bool   `json:"hasRead"`
}

// DaysSince is the number of whole days between t and now; unknown times count as 0.
func DaysSince(t *time.Time, now time.Time) int {
	if t == nil || t.IsZero() || now.Before(*t) {
		return 0
	}
	return int(now.Sub(*t) / (24 * time.Hour))
}
