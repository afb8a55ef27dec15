package task

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"planner/internal/category"
	"planner/internal/course"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"

	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// PriorityRankSQL orders string priorities by severity instead of
// alphabetically. Used anywhere tasks are sorted priority-first.
const PriorityRankSQL = `case priority when 'URGENT' then 4 when 'HIGH' then 3 when 'MEDIUM' then 2 when 'LOW' then 1 else 0 end`

type Task struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"index;not null" json:"userId"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	Priority string `gorm:"not null;default:'MEDIUM'" json:"priority"`
	Status   string `gorm:"index;not null;default:'PENDING'" json:"status"`

	DueDate        *time.Time `gorm:"index;type:timestamptz" json:"dueDate,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	CompletedAt    *time.Time `gorm:"type:timestamptz" json:"completedAt,omitempty"`

	CategoryID *uint64 `gorm:"index" json:"categoryId,omitempty"`
	CourseID   *uint64 `gorm:"index" json:"courseId,omitempty"`

	Category *category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Course   *course.Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Tags pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`

	IsRecurring bool            `gorm:"not null;default:false" json:"isRecurring"`
	Recurrence  json.RawMessage `gorm:"type:jsonb" json:"recurrence,omitempty"`

	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	TimeLogs []TimeLog `gorm:"foreignKey:TaskID" json:"timeLogs,omitempty"`

	CreatedAt time.Time `gorm:"index;not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

// Subtask is a checklist item under a task.
type Subtask struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	TaskID uint64 `gorm:"index;not null" json:"taskId"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Status      string  `gorm:"not null;default:'PENDING'" json:"status"`
	Order       int     `gorm:"column:sort_order;not null;default:0" json:"order"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

// TimeLog records time spent on a task. Duration is minutes and is
// derived from start/end when the end time is known.
type TimeLog struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	TaskID uint64 `gorm:"index;not null" json:"taskId"`

	StartTime   time.Time  `gorm:"index;not null;type:timestamptz" json:"startTime"`
	EndTime     *time.Time `gorm:"type:timestamptz" json:"endTime,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

// DueTodayWindow is the half-open local calendar day [start, end)
// containing now. A task due at 23:59:59.999 is inside; midnight of the
// next day is not.
func DueTodayWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

// DueStatuses are the statuses that still count toward a reminder.
func DueStatuses() []string { return []string{StatusPending, StatusInProgress} }
