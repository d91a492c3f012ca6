package reading

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionStarted        Action = "started"
	ActionFinished       Action = "finished"
	ActionWantToRead     Action = "want-to-read"
	ActionReviewed       Action = "reviewed"
	ActionProgressUpdate Action = "progress-update"
)

// HistoryEntry is an append-only audit record. Payload fields depend on Action.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Action      Action    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	Context     string    `json:"context"`
	BookID      string    `json:"bookId,omitempty"`
	BookTitle   string    `json:"bookTitle,omitempty"`
	CurrentPage *int      `json:"currentPage,omitempty"`
	FromPage    *int      `json:"fromPage,omitempty"`
	ToPage      *int      `json:"toPage,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Content     string    `json:"content,omitempty"`
}

const HistoryContextApp = "app"

func NewHistoryID() string {
	return "ENTRY-" + uuid.NewString()
}

// HistoryContainerID names the per-(user, book) READING_HISTORY node.
func HistoryContainerID(userID, bookID string) string {
	return "RH-" + userID + "-" + bookID
}

func NewHistoryEntry(action Action, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        NewHistoryID(),
		Action:    action,
		Timestamp: at.UTC(),
		Context:   HistoryContextApp,
	}
}

// ProgressEntry records a closed session.
func ProgressEntry(summary SessionSummary, notes string, at time.Time) HistoryEntry {
	he := NewHistoryEntry(ActionProgressUpdate, at)
	from, to, dur := summary.StartPage, summary.EndPage, summary.DurationMinutes
	he.FromPage = &from
	he.ToPage = &to
	he.Duration = &dur
	he.Notes = notes
	return he
}

// Params flattens the entry into Cypher parameters; unset payload fields become null.
func (h HistoryEntry) Params() map[string]any {
	return map[string]any{
		"id":          h.ID,
		"action":      string(h.Action),
		"timestamp":   h.Timestamp,
		"context":     h.Context,
		"currentPage": intOrNil(h.CurrentPage),
		"fromPage":    intOrNil(h.FromPage),
		"toPage":      intOrNil(h.ToPage),
		"duration":    intOrNil(h.Duration),
		"notes":       stringOrNil(h.Notes),
		"content":     stringOrNil(h.Content),
	}
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
