package analytics

import (
	"math"
	"time"
)

// Round2 rounds half-up to two decimal places. All reported rates go
// through it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CompletionRate is completed/total as a percentage, 0 when there are no
// tasks.
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(completed) / float64(total) * 100)
}

// Efficiency is actual/estimated hours as a percentage, 0 when nothing was
// estimated.
func Efficiency(actual, estimated float64) float64 {
	if estimated == 0 {
		return 0
	}
	return Round2(actual / estimated * 100)
}

// WeekWindow is the calendar week containing now, starting Sunday at
// midnight and ending just before the next week begins.
func WeekWindow(now time.Time) (start, end time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// MonthWindow is the calendar month containing now.
func MonthWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}
