package reading

import (
	"strings"
	"time"
	"unicode/utf8"
)

type Review struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const ReviewExcerptLimit = 100

// NormalizeReview reports whether content is blank, in which
// case the stored review is deleted instead of saved.
func NormalizeReview(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	return content, trimmed == ""
}

// ReviewExcerpt keeps the first 100 characters and marks truncation with "...".
func ReviewExcerpt(content string) string {
	if utf8.RuneCountInString(content) <= ReviewExcerptLimit {
		return content
	}
	runes := []rune(content)
	return string(runes[:ReviewExcerptLimit]) + "..."
}

// ReviewEntry is the history record appended when a review is saved.
func ReviewEntry(content string, at time.Time) HistoryEntry {
	he := NewHistoryEntry(ActionReviewed, at)
	he.Content = ReviewExcerpt(content)
	return he
}
