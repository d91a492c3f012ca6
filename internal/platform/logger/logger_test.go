package logger

import "testing"

func TestSanitizeRedactsSecrets(t *testing.T) {
	l := NewNop()
	l.redact = true

	out := l.sanitize([]interface{}{
		"access_token", "abc",
		"Authorization", "Bearer x",
		"book_id", "BOOK-1",
		"blob", "eyJhbGciOiJIUzI1.eyJzdWIiOiJVU0VSLTEi.sig",
	})
	if len(out) != 8 {
		t.Fatalf("len: want=8 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("access_token: want redacted got=%v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("authorization: want redacted got=%v", out[3])
	}
	if out[5] != "BOOK-1" {
		t.Fatalf("book_id: want=BOOK-1 got=%v", out[5])
	}
	if out[7] != "[REDACTED]" {
		t.Fatalf("jwt-looking value: want redacted got=%v", out[7])
	}
}

func TestSanitizeDisabledPassesThrough(t *testing.T) {
	l := NewNop()
	in := []interface{}{"password", "hunter2"}
	out := l.sanitize(in)
	if out[1] != "hunter2" {
		t.Fatalf("want passthrough got=%v", out[1])
	}
}

func TestSanitizeOddLengthKeepsTrailingKey(t *testing.T) {
	l := NewNop()
	l.redact = true
	out := l.sanitize([]interface{}{"user_id", "USER-1", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestHashValueIsStableAndSalted(t *testing.T) {
	a := &Logger{hashSalt: "s1"}
	b := &Logger{hashSalt: "s2"}
	if a.hashValue("reader@example.com") != a.hashValue("reader@example.com") {
		t.Fatalf("hash not stable")
	}
	if a.hashValue("reader@example.com") == b.hashValue("reader@example.com") {
		t.Fatalf("salt ignored")
	}
	if a.hashValue("") != "" {
		t.Fatalf("empty value should hash to empty")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got.String() != "info" {
		t.Fatalf("level: want=info got=%s", got)
	}
	if got := parseLevel("WARN"); got.String() != "warn" {
		t.Fatalf("level: want=warn got=%s", got)
	}
}
