package task

import (
	"testing"
	"time"
)

func TestDueTodayWindow(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, dhaka)
	start, end := DueTodayWindow(now)

	wantStart := time.Date(2026, time.March, 14, 0, 0, 0, 0, dhaka)
	wantEnd := time.Date(2026, time.March, 15, 0, 0, 0, 0, dhaka)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{name: "start of day", due: wantStart, want: true},
		{name: "mid morning", due: now, want: true},
		{name: "last millisecond", due: wantEnd.Add(-time.Millisecond), want: true},
		{name: "next midnight excluded", due: wantEnd, want: false},
		{name: "yesterday excluded", due: wantStart.Add(-time.Second), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := !tt.due.Before(start) && tt.due.Before(end)
			if got != tt.want {
				t.Errorf("in window = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueTodayWindowKeepsLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2026, time.July, 1, 23, 30, 0, 0, ny)
	start, _ := DueTodayWindow(now)
	if start.Location() != ny {
		t.Errorf("start location = %v, want %v", start.Location(), ny)
	}
	if start.Day() != 1 {
		t.Errorf("start day = %d, want 1", start.Day())
	}
}

func TestDueStatuses(t *testing.T) {
	got := DueStatuses()
	want := []string{StatusPending, StatusInProgress}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DueStatuses()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
