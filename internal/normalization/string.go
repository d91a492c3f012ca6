package normalization

import (
	"strings"
)

// ParseInputString trims and lower-cases free-form enum input (statuses, periods, filters).
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func ParseInputStringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	normalized := ParseInputString(*input)
	return &normalized
}

// FirstName returns the first whitespace-separated token of a display name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Names trims each entry and drops blanks and case-insensitive duplicates,
// keeping the first spelling seen.
func Names(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, raw := range list {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SplitList parses a comma-separated form field into Names.
func SplitList(raw string) []string {
	return Names(strings.Split(raw, ","))
}
