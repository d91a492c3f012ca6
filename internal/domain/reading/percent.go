package reading

import "math"

// PercentComplete is 100*page/pageCount clamped to [0, 100]. It is 0 when the
// page count is unknown.
func PercentComplete(page, pageCount int) float64 {
	if pageCount <= 0 {
		return 0
	}
	pct := 100.0 * float64(page) / float64(pageCount)
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// RoundProgress rounds a percentage for display.
func RoundProgress(pct float64) int {
	return int(math.Round(math.Max(0, math.Min(100, pct))))
}
