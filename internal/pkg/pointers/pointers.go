package pointers

// Int copies v so callers never alias a caller-owned variable.
func Int(v int) *int { return &v }

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
