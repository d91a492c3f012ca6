package reading

import (
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/normalization"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
	"github.com/GORLEABHILASH/booklovers/internal/pkg/pointers"
)

// Status is the single current ReadingStatus fact for a (user, book) pair.
type Status string

const (
	StatusNone       Status = "none"
	StatusWantToRead Status = "want-to-read"
	StatusReading    Status = "reading"
	StatusFinished   Status = "finished"
)

// ParseStatus accepts only the statuses a user can set.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(normalization.ParseInputString(raw)); s {
	case StatusWantToRead, StatusReading, StatusFinished:
		return s, nil
	default:
		return "", apperr.InvalidArgument("unknown reading status %q", raw)
	}
}

// Relationship is the graph relationship type that stores the status.
func (s Status) Relationship() string {
	switch s {
	case StatusReading:
		return "READING"
	case StatusFinished:
		return "FINISHED"
	case StatusWantToRead:
		return "WANTS_TO_READ"
	default:
		return ""
	}
}

func (s Status) HistoryAction() Action {
	switch s {
	case StatusReading:
		return ActionStarted
	case StatusFinished:
		return ActionFinished
	case StatusWantToRead:
		return ActionWantToRead
	default:
		return ""
	}
}

// StatusFromRelationship maps a stored relationship type back to a Status.
func StatusFromRelationship(rel string) Status {
	switch rel {
	case "READING":
		return StatusReading
	case "FINISHED":
		return StatusFinished
	case "WANTS_TO_READ":
		return StatusWantToRead
	default:
		return StatusNone
	}
}

type BookStatus struct {
	Status          Status     `json:"status"`
	Rating          int        `json:"rating"`
	CurrentPage     int        `json:"currentPage"`
	PercentComplete float64    `json:"percentComplete"`
	LastUpdated     *time.Time `json:"lastUpdated,omitempty"`
}

// DefaultBookStatus is reported for a pair with no facts at all.
func DefaultBookStatus() BookStatus {
	return BookStatus{Status: StatusNone, Rating: 0, CurrentPage: 1, PercentComplete: 0}
}

type StatusChange struct {
	Status      Status
	CurrentPage *int
	At          time.Time
}

// NewStatusChange validates a requested status transition. A current page is
// only kept for the reading status and must be positive.
func NewStatusChange(raw string, currentPage *int, at time.Time) (StatusChange, error) {
	status, err := ParseStatus(raw)
	if err != nil {
		return StatusChange{}, err
	}
	change := StatusChange{Status: status, At: at.UTC()}
	if status == StatusReading && currentPage != nil {
		if *currentPage < 1 {
			return StatusChange{}, apperr.InvalidArgument("current page must be >= 1, got %d", *currentPage)
		}
		change.CurrentPage = pointers.Int(*currentPage)
	}
	return change, nil
}

type Rating struct {
	Value     int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(v int) error {
	if v < MinRating || v > MaxRating {
		return apperr.InvalidArgument("rating must be between %d and %d, got %d", MinRating, MaxRating, v)
	}
	return nil
}

type PageProgress struct {
	CurrentPage     int     `json:"currentPage"`
	PercentComplete float64 `json:"percentComplete"`
}
