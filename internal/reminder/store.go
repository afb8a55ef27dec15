package reminder

import (
	"context"
	"time"

	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/task"
)

// GormStore backs the batch job with the application database.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) UsersWithTasksDueToday(ctx context.Context, now time.Time) ([]DueUser, error) {
	start, end := task.DueTodayWindow(now)

	dueTaskUsers := s.DB.Model(&task.Task{}).
		Select("user_id").
		Where("due_date >= ? AND due_date < ?", start, end).
		Where("status IN ?", task.DueStatuses())

	var users []auth.User
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("id IN (?)", dueTaskUsers).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	out := make([]DueUser, 0, len(users))
	for _, u := range users {
		var tasks []task.Task
		err := s.DB.WithContext(ctx).
			Preload("Category").
			Preload("Course").
			Where("user_id = ?", u.ID).
			Where("due_date >= ? AND due_date < ?", start, end).
			Where("status IN ?", task.DueStatuses()).
			Order(task.PriorityRankSQL + " desc, due_date asc").
			Find(&tasks).Error
		if err != nil {
			return nil, err
		}
		out = append(out, DueUser{User: u, Tasks: tasks})
	}
	return out, nil
}

// RecordReminders inserts one sent Reminder row per due task. Called only
// after the send succeeded, so every batch-created row has IsSent=true.
func (s *GormStore) RecordReminders(ctx context.Context, userID uint64, tasks []task.Task, sentAt time.Time) error {
	rows := make([]Reminder, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		taskID := t.ID
		at := sentAt
		rows = append(rows, Reminder{
			UserID:      userID,
			TaskID:      &taskID,
			Title:       "Daily Task Reminder - " + t.Title,
			Message:     `Task "` + t.Title + `" is due today`,
			Type:        TypeEmail,
			ScheduledAt: sentAt,
			IsSent:      true,
			SentAt:      &at,
		})
	}
	return s.DB.WithContext(ctx).Create(&rows).Error
}
