package analytics

import (
	"testing"
	"time"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 33.333333, want: 33.33},
		{in: 66.666666, want: 66.67},
		{in: 12.345, want: 12.35},
		{in: 100, want: 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{name: "no tasks", completed: 0, total: 0, want: 0},
		{name: "none done", completed: 0, total: 5, want: 0},
		{name: "third done", completed: 1, total: 3, want: 33.33},
		{name: "all done", completed: 4, total: 4, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(tt.completed, tt.total); got != tt.want {
				t.Errorf("CompletionRate(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestEfficiency(t *testing.T) {
	if got := Efficiency(3, 0); got != 0 {
		t.Errorf("Efficiency with zero estimate = %v, want 0", got)
	}
	if got := Efficiency(3, 4); got != 75 {
		t.Errorf("Efficiency(3, 4) = %v, want 75", got)
	}
	if got := Efficiency(5, 4); got != 125 {
		t.Errorf("Efficiency(5, 4) = %v, want 125", got)
	}
}

func TestWeekWindow(t *testing.T) {
	// Wednesday 2026-03-18
	now := time.Date(2026, time.March, 18, 15, 30, 0, 0, time.UTC)
	start, end := WeekWindow(now)

	wantStart := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC) // Sunday
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if start.Weekday() != time.Sunday {
		t.Errorf("week starts on %v, want Sunday", start.Weekday())
	}
	wantEnd := time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	// a Sunday maps to itself
	sun := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	s2, _ := WeekWindow(sun)
	if !s2.Equal(wantStart) {
		t.Errorf("Sunday start = %v, want %v", s2, wantStart)
	}
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)
	start, end := MonthWindow(now)

	wantStart := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	// 2026 is not a leap year
	wantEnd := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if end.Day() != 28 {
		t.Errorf("end day = %d, want 28", end.Day())
	}
}
