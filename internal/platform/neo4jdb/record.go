package neo4jdb

import (
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GORLEABHILASH/booklovers/internal/normalization"
)

// Value returns the column or nil when the record is nil or the key is absent.
func Value(rec *neo4j.Record, key string) any {
	if rec == nil {
		return nil
	}
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	return v
}

func String(rec *neo4j.Record, key string) string { return AsString(Value(rec, key)) }
func Int(rec *neo4j.Record, key string) int { return AsInt(Value(rec, key)) }
func Float(rec *neo4j.Record, key string) float64 { return AsFloat(Value(rec, key)) }
func Bool(rec *neo4j.Record, key string) bool { return AsBool(Value(rec, key)) }
func Strings(rec *neo4j.Record, key string) []string { return AsStrings(Value(rec, key)) }
func Time(rec *neo4j.Record, key string) *time.Time { return AsTime(Value(rec, key)) }
func Maps(rec *neo4j.Record, key string) []map[string]any {
	return AsMaps(Value(rec, key))
}

// IntPtr is nil when the column is null.
func IntPtr(rec *neo4j.Record, key string) *int {
	v := Value(rec, key)
	if v == nil {
		return nil
	}
	n := AsInt(v)
	return &n
}

func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return ""
	}
}

func AsInt(v any) int { return int(normalization.ToInt(v)) }

func AsFloat(v any) float64 { return normalization.ToNumber(v) }

func AsBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

// AsStrings drops nulls and non-string elements.
func AsStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// AsTime understands driver temporal values and RFC3339 strings.
func AsTime(v any) *time.Time {
	var out time.Time
	switch t := v.(type) {
	case time.Time:
		out = t
	case neo4j.LocalDateTime:
		out = time.Time(t)
	case neo4j.Date:
		out = time.Time(t)
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t))
		if err != nil {
			parsed, err = time.Parse("2006-01-02", strings.TrimSpace(t))
			if err != nil {
				return nil
			}
		}
		out = parsed
	default:
		return nil
	}
	if out.IsZero() {
		return nil
	}
	out = out.UTC()
	return &out
}

// AsMaps keeps only map elements, the shape returned by collect({...}) projections.
func AsMaps(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// First is the first record or nil.
func First(recs []*neo4j.Record) *neo4j.Record {
	if len(recs) == 0 {
		return nil
	}
	return recs[0]
}
