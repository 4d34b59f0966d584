package dash

import "math"

// CalculateTrend compares a metric against the previous period and returns
// the rounded percentage delta. A previous of zero cannot anchor a ratio, so
// any positive current counts as a 100% rise and anything else stays neutral.
func CalculateTrend(current, previous float64) *Trend {
	if previous == 0 {
		if current > 0 {
			return &Trend{Change: 100, Direction: "up"}
		}
		return &Trend{Change: 0, Direction: "neutral"}
	}
	change := (current - previous) / previous * 100
	t := &Trend{Change: int(math.Abs(math.Round(change)))}
	switch {
	case change > 0:
		t.Direction = "up"
	case change < 0:
		t.Direction = "down"
	default:
		t.Direction = "neutral"
	}
	return t
}
