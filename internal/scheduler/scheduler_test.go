package scheduler

import (
	"context"
	"testing"

	"planner/internal/reminder"
)

type noopRunner struct{}

func (noopRunner) Run(ctx context.Context) ([]reminder.BatchResult, error) {
	return []reminder.BatchResult{}, nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "dhaka", timezone: "Asia/Dhaka"},
		{name: "utc", timezone: "UTC"},
		{name: "bogus zone", timezone: "Mars/Olympus_Mons", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(noopRunner{}, tt.timezone)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New returned nil error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			s.Start()
			s.Stop()
		})
	}
}
