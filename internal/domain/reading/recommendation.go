package reading

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/GORLEABHILASH/booklovers/internal/normalization"
)

type Filter string

const (
	FilterSimilar    Filter = "similar"
	FilterFriends    Filter = "friends"
	FilterProfession Filter = "profession"
)

// ParseFilter never fails: anything unrecognised means similar.
func ParseFilter(raw string) Filter {
	switch f := Filter(normalization.ParseInputString(raw)); f {
	case FilterFriends, FilterProfession:
		return f
	default:
		return FilterSimilar
	}
}

const (
	MaxRecommendations = 10
	MaxMatchPercent    = 99
	ProfessionBoost    = 3
)

// Candidate is a book surfaced by one strategy together with the raw factors it is scored on.
type Candidate struct {
	Book BookSummary

	GenreOverlap  int
	AverageRating float64

	FriendCount   int
	TopFriendName string

	ReaderCount     int
	ProfessionMatch bool
}

// Reason explains a recommendation. Exactly one variant exists per Filter.
type Reason interface {
	Kind() Filter
	Text() string
}

type SimilarReason struct {
	GenreOverlap  int     `json:"genreOverlap"`
	AverageRating float64 `json:"averageRating"`
}

func (SimilarReason) Kind() Filter { return FilterSimilar }
func (r SimilarReason) Text() string {
	if r.GenreOverlap > 0 {
		return "Readers with similar taste enjoyed this"
	}
	return "Highly rated by other readers"
}

type FriendsReason struct {
	FriendCount int    `json:"friendCount"`
	TopFriend   string `json:"topFriend,omitempty"`
}

func (FriendsReason) Kind() Filter { return FilterFriends }
func (r FriendsReason) Text() string {
	name := normalization.FirstName(r.TopFriend)
	switch {
	case r.FriendCount > 1 && name != "":
		return fmt.Sprintf("%s and %d others are reading", name, r.FriendCount-1)
	case r.FriendCount > 1:
		return fmt.Sprintf("%d friends are reading", r.FriendCount)
	case name != "":
		return fmt.Sprintf("%s is reading", name)
	default:
		return "Friend recommendation"
	}
}

type ProfessionReason struct {
	ReaderCount     int     `json:"readerCount"`
	AverageRating   float64 `json:"averageRating"`
	ProfessionMatch bool    `json:"professionMatch"`
}

func (ProfessionReason) Kind() Filter { return FilterProfession }
func (r ProfessionReason) Text() string {
	if r.ProfessionMatch {
		return "Popular with readers in your profession"
	}
	return "Popular with readers"
}

type Recommendation struct {
	Book         BookSummary
	MatchPercent int
	Score        float64
	Reason       Reason
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	reason := map[string]any{}
	if r.Reason != nil {
		raw, err := json.Marshal(r.Reason)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &reason); err != nil {
			return nil, err
		}
		reason["kind"] = r.Reason.Kind()
		reason["text"] = r.Reason.Text()
	}
	return json.Marshal(struct {
		BookSummary
		MatchPercent int            `json:"matchPercent"`
		Reason       map[string]any `json:"reason"`
	}{r.Book, r.MatchPercent, reason})
}

func SimilarScore(genreOverlap int, avgRating float64) float64 {
	if genreOverlap > 0 {
		return float64(genreOverlap)*10 + avgRating*5
	}
	return avgRating * 10
}

func FriendsScore(friendCount int) float64 {
	if friendCount > 3 {
		return float64(friendCount) * 25
	}
	return float64(friendCount) * 20
}

func ProfessionScore(readerCount int, avgRating float64, professionMatch bool) float64 {
	boost := 1
	if professionMatch {
		boost = ProfessionBoost
	}
	return float64(readerCount) * avgRating * float64(boost)
}

// MatchPercent rounds a score and clamps it to [0, 99].
func MatchPercent(score float64) int {
	if math.IsNaN(score) || score <= 0 {
		return 0
	}
	pct := math.Round(score)
	if pct > MaxMatchPercent {
		return MaxMatchPercent
	}
	return int(pct)
}

// Score applies the strategy's formula to a candidate.
func Score(filter Filter, c Candidate) (float64, Reason) {
	switch filter {
	case FilterFriends:
		return FriendsScore(c.FriendCount), FriendsReason{FriendCount: c.FriendCount, TopFriend: c.TopFriendName}
	case FilterProfession:
		return ProfessionScore(c.ReaderCount, c.AverageRating, c.ProfessionMatch),
			ProfessionReason{ReaderCount: c.ReaderCount, AverageRating: c.AverageRating, ProfessionMatch: c.ProfessionMatch}
	default:
		return SimilarScore(c.GenreOverlap, c.AverageRating), SimilarReason{GenreOverlap: c.GenreOverlap, AverageRating: c.AverageRating}
	}
}

// Rank scores candidates, drops excluded and duplicate books, and returns the
// best limit results, most relevant first.
func Rank(filter Filter, candidates []Candidate, exclude map[string]struct{}, limit int) []Recommendation {
	if limit <= 0 || limit > MaxRecommendations {
		limit = MaxRecommendations
	}
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		id := c.Book.ID
		if id == "" {
			continue
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		score, reason := Score(filter, c)
		book := c.Book
		book.Genres = TopGenres(book.Genres)
		if book.Author == "" {
			book.Author = UnknownAuthor
		}
		out = append(out, Recommendation{
			Book:         book,
			MatchPercent: MatchPercent(score),
			Score:        score,
			Reason:       reason,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Book.ID < out[j].Book.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
