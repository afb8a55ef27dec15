package reminder

import (
	"strings"
	"testing"

	"planner/internal/auth"
	"planner/internal/category"
	"planner/internal/course"
	"planner/internal/task"
)

func testUser() *auth.User {
	return &auth.User{ID: 1, Email: "ada@uni.test", FirstName: "Ada", LastName: "Lovelace"}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestComposeReminderEmailIsPure(t *testing.T) {
	u := testUser()
	tasks := []task.Task{
		{Title: "Write report", Priority: task.PriorityHigh, Status: task.StatusPending, Description: strPtr("final draft")},
		{Title: "Revise algebra", Priority: task.PriorityLow, Status: task.StatusInProgress},
	}

	s1, h1 := ComposeReminderEmail(u, tasks)
	s2, h2 := ComposeReminderEmail(u, tasks)
	if s1 != s2 {
		t.Errorf("subject differs between calls: %q vs %q", s1, s2)
	}
	if h1 != h2 {
		t.Error("body differs between identical calls")
	}
}

func TestComposeReminderEmailSubject(t *testing.T) {
	u := testUser()

	tests := []struct {
		name  string
		count int
		want  string
	}{
		{name: "singular", count: 1, want: "📚 Task Reminders - 1 task due today"},
		{name: "plural", count: 3, want: "📚 Task Reminders - 3 tasks due today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]task.Task, tt.count)
			for i := range tasks {
				tasks[i] = task.Task{Title: "t", Priority: task.PriorityMedium, Status: task.StatusPending}
			}
			got, _ := ComposeReminderEmail(u, tasks)
			if got != tt.want {
				t.Errorf("subject = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeReminderEmailColors(t *testing.T) {
	u := testUser()

	tests := []struct {
		name     string
		priority string
		status   string
		want     []string
	}{
		{name: "urgent pending", priority: task.PriorityUrgent, status: task.StatusPending, want: []string{"#dc2626", "#f59e0b"}},
		{name: "high in progress", priority: task.PriorityHigh, status: task.StatusInProgress, want: []string{"#ef4444", "#3b82f6"}},
		{name: "medium completed", priority: task.PriorityMedium, status: task.StatusCompleted, want: []string{"#8b5cf6", "#10b981"}},
		{name: "low", priority: task.PriorityLow, status: task.StatusPending, want: []string{"#3b82f6"}},
		{name: "unknown falls back to gray", priority: "WHENEVER", status: "SOMEDAY", want: []string{"#6b7280"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, html := ComposeReminderEmail(u, []task.Task{{Title: "t", Priority: tt.priority, Status: tt.status}})
			for _, w := range tt.want {
				if !strings.Contains(html, w) {
					t.Errorf("body missing color %s", w)
				}
			}
		})
	}
}

func TestComposeReminderEmailBody(t *testing.T) {
	u := testUser()
	tasks := []task.Task{
		{
			Title:          "Write <b>report</b>",
			Description:    strPtr("for CS101"),
			Priority:       task.PriorityUrgent,
			Status:         task.StatusPending,
			EstimatedHours: f64Ptr(2.5),
			Category:       &category.Category{Name: "Assignments", Color: "#EF4444"},
			Course:         &course.Course{Name: "Intro to CS"},
		},
		{Title: "bare task", Priority: task.PriorityLow, Status: task.StatusPending},
	}

	_, html := ComposeReminderEmail(u, tasks)

	for _, want := range []string{
		"Hello Ada Lovelace!",
		"You have 2 tasks due today",
		"Write &lt;b&gt;report&lt;/b&gt;", // user content is escaped
		"for CS101",
		"Estimated: 2.5 hours",
		"Assignments",
		"Intro to CS",
		"#374151", // course badge color
	} {
		if !strings.Contains(html, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if strings.Contains(html, "<b>report</b>") {
		t.Error("task title was not HTML-escaped")
	}
	// the bare task must not render description or estimate lines
	if strings.Count(html, "Estimated:") != 1 {
		t.Error("estimate line rendered for a task without estimated hours")
	}
}
