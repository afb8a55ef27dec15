package reminder

import (
	"fmt"
	"html/template"
	"strings"

	"planner/internal/auth"
	"planner/internal/task"
)

var priorityColors = map[string]string{
	task.PriorityUrgent: "#dc2626",
	task.PriorityHigh:   "#ef4444",
	task.PriorityMedium: "#8b5cf6",
	task.PriorityLow:    "#3b82f6",
}

var statusColors = map[string]string{
	task.StatusPending:    "#f59e0b",
	task.StatusInProgress: "#3b82f6",
	task.StatusCompleted:  "#10b981",
}

const neutralColor = "#6b7280"

// ComposeReminderEmail builds the subject and HTML body for a user's
// due-today digest. It is a pure function: no I/O, no clock, and the same
// input always produces the same output. Callers must not pass an empty
// task list; the batch job skips those users entirely.
func ComposeReminderEmail(user *auth.User, tasks []task.Task) (subject, html string) {
	subject = fmt.Sprintf("📚 Task Reminders - %d task%s due today", len(tasks), plural(len(tasks)))

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Task Reminders</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #374151; background-color: #f9fafb; margin: 0; padding: 20px;">
<div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 32px; text-align: center;">
<h1 style="margin: 0; color: white; font-size: 28px; font-weight: 700;">📚 Task Reminders</h1>
`)
	fmt.Fprintf(&b, `<p style="margin: 8px 0 0 0; color: rgba(255, 255, 255, 0.9); font-size: 16px;">Hello %s %s!</p>`,
		esc(user.FirstName), esc(user.LastName))
	b.WriteString("\n</div>\n<div style=\"padding: 32px;\">\n")
	fmt.Fprintf(&b, `<h2 style="margin: 0 0 24px 0; color: #111827; font-size: 22px; font-weight: 600;">📅 You have %d task%s due today</h2>`,
		len(tasks), plural(len(tasks)))
	b.WriteString("\n<div style=\"margin-bottom: 24px;\">\n")

	for i := range tasks {
		writeTaskBlock(&b, &tasks[i])
	}

	b.WriteString(`</div>
<div style="background-color: #f3f4f6; border-radius: 8px; padding: 20px; margin-top: 24px;">
<h3 style="margin: 0 0 12px 0; color: #111827; font-size: 18px; font-weight: 600;">💡 Tips for today:</h3>
<ul style="margin: 0; padding-left: 20px; color: #6b7280;">
<li>Start with the highest priority tasks first</li>
<li>Break down large tasks into smaller, manageable chunks</li>
<li>Take short breaks between tasks to maintain focus</li>
<li>Update your task status as you progress</li>
</ul>
</div>
<div style="text-align: center; margin-top: 32px; padding-top: 24px; border-top: 1px solid #e5e7eb;">
<p style="margin: 0; color: #6b7280; font-size: 14px;">This is an automated reminder from your Smart Academic Task Planner.</p>
<p style="margin: 8px 0 0 0; color: #6b7280; font-size: 14px;">Log in to your dashboard to manage your tasks.</p>
</div>
</div>
</div>
</body>
</html>
`)

	return subject, b.String()
}

func writeTaskBlock(b *strings.Builder, t *task.Task) {
	b.WriteString(`<div style="border: 1px solid #e5e7eb; border-radius: 8px; padding: 16px; margin-bottom: 16px; background-color: #ffffff;">` + "\n")
	fmt.Fprintf(b, `<h3 style="margin: 0 0 8px 0; color: #111827; font-size: 18px;">%s</h3>`+"\n", esc(t.Title))

	if t.Description != nil && *t.Description != "" {
		fmt.Fprintf(b, `<p style="margin: 0 0 12px 0; color: #6b7280; font-size: 14px;">%s</p>`+"\n", esc(*t.Description))
	}

	b.WriteString(`<div style="display: flex; gap: 12px; flex-wrap: wrap;">` + "\n")
	writeBadge(b, colorFor(priorityColors, t.Priority), t.Priority)
	writeBadge(b, colorFor(statusColors, t.Status), t.Status)
	if t.Category != nil {
		writeBadge(b, t.Category.Color, t.Category.Name)
	}
	if t.Course != nil {
		writeBadge(b, "#374151", t.Course.Name)
	}
	b.WriteString("</div>\n")

	if t.EstimatedHours != nil {
		fmt.Fprintf(b, `<p style="margin: 8px 0 0 0; color: #6b7280; font-size: 12px;">Estimated: %g hours</p>`+"\n", *t.EstimatedHours)
	}
	b.WriteString("</div>\n")
}

func writeBadge(b *strings.Builder, color, label string) {
	fmt.Fprintf(b, `<span style="background-color: %s; color: white; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: 600;">%s</span>`+"\n",
		esc(color), esc(label))
}

func colorFor(m map[string]string, key string) string {
	if c, ok := m[key]; ok {
		return c
	}
	return neutralColor
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func esc(s string) string { return template.HTMLEscapeString(s) }
