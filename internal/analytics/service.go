package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"planner/internal/category"
	"planner/internal/course"
	"planner/internal/task"
)

// Service computes read-only aggregations over the task store. Nothing is
// cached; every call recomputes from the database.
type Service struct {
	DB *gorm.DB
}

// Window is an optional [Start, End] filter on creation time. Both bounds
// must be set for the filter to apply, matching the HTTP query contract.
type Window struct {
	Start *time.Time
	End   *time.Time
}

func (w Window) isSet() bool { return w.Start != nil && w.End != nil }

type DashboardStats struct {
	TotalTasks      int64   `json:"totalTasks"`
	CompletedTasks  int64   `json:"completedTasks"`
	PendingTasks    int64   `json:"pendingTasks"`
	OverdueTasks    int64   `json:"overdueTasks"`
	TotalCourses    int64   `json:"totalCourses"`
	TotalCategories int64   `json:"totalCategories"`
	CompletionRate  float64 `json:"completionRate"`
}

type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type TaskProgress struct {
	TasksByStatus   []GroupCount `json:"tasksByStatus"`
	TasksByPriority []GroupCount `json:"tasksByPriority"`
}

type ProductivityMetrics struct {
	TotalEstimatedHours float64 `json:"totalEstimatedHours"`
	TotalActualHours    float64 `json:"totalActualHours"`
	CompletedTasks      int64   `json:"completedTasks"`
	Efficiency          float64 `json:"efficiency"`
}

type TimeAnalysis struct {
	TimeLogs       []task.TimeLog `json:"timeLogs"`
	TotalTimeSpent int64          `json:"totalTimeSpent"`
}

type CategoryStats struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	TotalTasks     int64  `json:"totalTasks"`
	CompletedTasks int64  `json:"completedTasks"`
	PendingTasks   int64  `json:"pendingTasks"`
}

type CourseStats struct {
	ID                  uint64  `json:"id"`
	Code                string  `json:"code"`
	Name                string  `json:"name"`
	TotalTasks          int64   `json:"totalTasks"`
	CompletedTasks      int64   `json:"completedTasks"`
	TotalEstimatedHours float64 `json:"totalEstimatedHours"`
	TotalActualHours    float64 `json:"totalActualHours"`
}

type PeriodReport struct {
	Period         string    `json:"period"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	TotalTasks     int64     `json:"totalTasks"`
	CompletedTasks int64     `json:"completedTasks"`
	NewTasks       int64     `json:"newTasks"`
	CompletionRate float64   `json:"completionRate"`
}

func (s *Service) taskScope(ctx context.Context, userID uint64, w Window) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&task.Task{}).Where("user_id = ?", userID)
	if w.isSet() {
		q = q.Where("created_at >= ? AND created_at <= ?", *w.Start, *w.End)
	}
	return q
}

func (s *Service) Dashboard(ctx context.Context, userID uint64, w Window) (DashboardStats, error) {
	var out DashboardStats

	if err := s.taskScope(ctx, userID, w).Count(&out.TotalTasks).Error; err != nil {
		return out, err
	}
	if err := s.taskScope(ctx, userID, w).Where("status = ?", task.StatusCompleted).Count(&out.CompletedTasks).Error; err != nil {
		return out, err
	}
	if err := s.taskScope(ctx, userID, w).Where("status = ?", task.StatusPending).Count(&out.PendingTasks).Error; err != nil {
		return out, err
	}
	if err := s.taskScope(ctx, userID, w).
		Where("due_date < ?", time.Now()).
		Where("status <> ?", task.StatusCompleted).
		Count(&out.OverdueTasks).Error; err != nil {
		return out, err
	}
	if err := s.DB.WithContext(ctx).Model(&course.Course{}).Where("user_id = ?", userID).Count(&out.TotalCourses).Error; err != nil {
		return out, err
	}
	if err := s.DB.WithContext(ctx).Model(&category.Category{}).Where("user_id = ?", userID).Count(&out.TotalCategories).Error; err != nil {
		return out, err
	}

	out.CompletionRate = CompletionRate(out.CompletedTasks, out.TotalTasks)
	return out, nil
}

func (s *Service) TaskProgress(ctx context.Context, userID uint64, w Window) (TaskProgress, error) {
	var out TaskProgress

	if err := s.taskScope(ctx, userID, w).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&out.TasksByStatus).Error; err != nil {
		return out, err
	}
	if err := s.taskScope(ctx, userID, w).
		Select("priority as key, count(*) as count").
		Group("priority").
		Scan(&out.TasksByPriority).Error; err != nil {
		return out, err
	}
	return out, nil
}

func (s *Service) Productivity(ctx context.Context, userID uint64, w Window) (ProductivityMetrics, error) {
	var rows []struct {
		EstimatedHours *float64
		ActualHours    *float64
		Status         string
	}
	if err := s.taskScope(ctx, userID, w).
		Select("estimated_hours, actual_hours, status").
		Scan(&rows).Error; err != nil {
		return ProductivityMetrics{}, err
	}

	var out ProductivityMetrics
	for _, r := range rows {
		if r.EstimatedHours != nil {
			out.TotalEstimatedHours += *r.EstimatedHours
		}
		if r.ActualHours != nil {
			out.TotalActualHours += *r.ActualHours
		}
		if r.Status == task.StatusCompleted {
			out.CompletedTasks++
		}
	}
	out.Efficiency = Efficiency(out.TotalActualHours, out.TotalEstimatedHours)
	return out, nil
}

func (s *Service) TimeAnalysis(ctx context.Context, userID uint64, w Window) (TimeAnalysis, error) {
	q := s.DB.WithContext(ctx).Model(&task.TimeLog{}).
		Joins("JOIN tasks ON tasks.id = time_logs.task_id").
		Where("tasks.user_id = ?", userID)
	if w.isSet() {
		q = q.Where("time_logs.start_time >= ? AND time_logs.start_time <= ?", *w.Start, *w.End)
	}

	var out TimeAnalysis
	if err := q.Order("time_logs.start_time desc").Find(&out.TimeLogs).Error; err != nil {
		return out, err
	}
	for _, l := range out.TimeLogs {
		if l.Duration != nil {
			out.TotalTimeSpent += int64(*l.Duration)
		}
	}
	return out, nil
}

func (s *Service) CategoryBreakdown(ctx context.Context, userID uint64, w Window) ([]CategoryStats, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if w.isSet() {
		q = q.Where("created_at >= ? AND created_at <= ?", *w.Start, *w.End)
	}

	var categories []category.Category
	if err := q.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}

	stats := make([]CategoryStats, 0, len(categories))
	for _, c := range categories {
		cs := CategoryStats{ID: c.ID, Name: c.Name, Color: c.Color}
		base := s.DB.WithContext(ctx).Model(&task.Task{}).Where("category_id = ?", c.ID)
		if err := base.Session(&gorm.Session{}).Count(&cs.TotalTasks).Error; err != nil {
			return nil, err
		}
		if err := base.Session(&gorm.Session{}).Where("status = ?", task.StatusCompleted).Count(&cs.CompletedTasks).Error; err != nil {
			return nil, err
		}
		if err := base.Session(&gorm.Session{}).Where("status = ?", task.StatusPending).Count(&cs.PendingTasks).Error; err != nil {
			return nil, err
		}
		stats = append(stats, cs)
	}
	return stats, nil
}

func (s *Service) CoursePerformance(ctx context.Context, userID uint64, w Window) ([]CourseStats, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if w.isSet() {
		q = q.Where("created_at >= ? AND created_at <= ?", *w.Start, *w.End)
	}

	var courses []course.Course
	if err := q.Order("id").Find(&courses).Error; err != nil {
		return nil, err
	}

	stats := make([]CourseStats, 0, len(courses))
	for _, c := range courses {
		cs := CourseStats{ID: c.ID, Code: c.Code, Name: c.Name}

		var rows []struct {
			EstimatedHours *float64
			ActualHours    *float64
			Status         string
		}
		if err := s.DB.WithContext(ctx).Model(&task.Task{}).
			Where("course_id = ?", c.ID).
			Select("estimated_hours, actual_hours, status").
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			cs.TotalTasks++
			if r.Status == task.StatusCompleted {
				cs.CompletedTasks++
			}
			if r.EstimatedHours != nil {
				cs.TotalEstimatedHours += *r.EstimatedHours
			}
			if r.ActualHours != nil {
				cs.TotalActualHours += *r.ActualHours
			}
		}
		stats = append(stats, cs)
	}
	return stats, nil
}

func (s *Service) WeeklyReport(ctx context.Context, userID uint64) (PeriodReport, error) {
	start, end := WeekWindow(time.Now())
	return s.periodReport(ctx, userID, "week", start, end)
}

func (s *Service) MonthlyReport(ctx context.Context, userID uint64) (PeriodReport, error) {
	start, end := MonthWindow(time.Now())
	return s.periodReport(ctx, userID, "month", start, end)
}

func (s *Service) periodReport(ctx context.Context, userID uint64, period string, start, end time.Time) (PeriodReport, error) {
	out := PeriodReport{Period: period, StartDate: start, EndDate: end}
	w := Window{Start: &start, End: &end}

	if err := s.taskScope(ctx, userID, w).Count(&out.TotalTasks).Error; err != nil {
		return out, err
	}
	if err := s.taskScope(ctx, userID, w).Where("status = ?", task.StatusCompleted).Count(&out.CompletedTasks).Error; err != nil {
		return out, err
	}

	out.NewTasks = out.TotalTasks
	out.CompletionRate = CompletionRate(out.CompletedTasks, out.TotalTasks)
	return out, nil
}
