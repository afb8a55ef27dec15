package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/category"
	"planner/internal/course"
	"planner/internal/reminder"
	"planner/internal/resource"
	"planner/internal/task"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&category.Category{},
		&course.Course{},
		&task.Task{},
		&task.Subtask{},
		&task.TimeLog{},
		&resource.Resource{},
		&reminder.Reminder{},
	); err != nil {
		return err
	}

	// One category name per user
	if err := gdb.Exec(`create unique index if not exists uq_categories_user_name on categories(user_id, name);`).Error; err != nil {
		return err
	}

	// Tag filters (GIN for text[])
	if err := gdb.Exec(`create index if not exists idx_tasks_tags on tasks using gin (tags);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_tasks_user_status on tasks(user_id, status);`,
		`create index if not exists idx_tasks_due_status on tasks(due_date, status);`,
		`create index if not exists idx_tasks_user_created on tasks(user_id, created_at desc);`,
		`create index if not exists idx_reminders_user_sched on reminders(user_id, scheduled_at);`,
		`create index if not exists idx_time_logs_task_start on time_logs(task_id, start_time desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
