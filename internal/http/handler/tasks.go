package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/category"
	"planner/internal/course"
	"planner/internal/task"
)

var validPriorities = map[string]bool{
	task.PriorityLow: true, task.PriorityMedium: true,
	task.PriorityHigh: true, task.PriorityUrgent: true,
}

var validStatuses = map[string]bool{
	task.StatusPending: true, task.StatusInProgress: true,
	task.StatusCompleted: true, task.StatusCancelled: true,
}

type TaskHandler struct {
	DB *gorm.DB
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	qp := r.URL.Query()

	page, _ := strconv.Atoi(qp.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(qp.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := h.DB.Model(&task.Task{}).Where("user_id = ?", u.ID)

	if v := qp.Get("status"); v != "" {
		if !validStatuses[v] {
			respondError(w, http.StatusBadRequest, "Status must be PENDING, IN_PROGRESS, COMPLETED, or CANCELLED")
			return
		}
		q = q.Where("status = ?", v)
	}
	if v := qp.Get("priority"); v != "" {
		if !validPriorities[v] {
			respondError(w, http.StatusBadRequest, "Priority must be LOW, MEDIUM, HIGH, or URGENT")
			return
		}
		q = q.Where("priority = ?", v)
	}
	if v := qp.Get("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		q = q.Where("category_id = ?", id)
	}
	if v := qp.Get("courseId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid courseId")
			return
		}
		q = q.Where("course_id = ?", id)
	}
	if v := qp.Get("dueDate"); v != "" {
		d, err := time.Parse(time.RFC3339, v)
		if err != nil {
			if d, err = time.Parse("2006-01-02", v); err != nil {
				respondError(w, http.StatusBadRequest, "Due date must be a valid date")
				return
			}
		}
		q = q.Where("due_date >= ? AND due_date < ?", d, d.Add(24*time.Hour))
	}
	if v := strings.TrimSpace(qp.Get("search")); v != "" {
		like := "%" + v + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	var tasks []task.Task
	err := q.Session(&gorm.Session{}).
		Preload("Category").
		Preload("Course").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Order(task.PriorityRankSQL + " desc, due_date asc, created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	respondData(w, http.StatusOK, map[string]any{
		"tasks": tasks,
		"pagination": map[string]any{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
			"hasNext":    page < totalPages,
			"hasPrev":    page > 1,
		},
	})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var t task.Task
	err := h.DB.
		Preload("Category").
		Preload("Course").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Preload("TimeLogs", func(db *gorm.DB) *gorm.DB { return db.Order("start_time desc") }).
		Where("id = ? AND user_id = ?", id, u.ID).
		First(&t).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"task": t})
}

type taskReq struct {
	Title          *string         `json:"title"`
	Description    *string         `json:"description"`
	Priority       *string         `json:"priority"`
	Status         *string         `json:"status"`
	DueDate        *string         `json:"dueDate"`
	EstimatedHours *float64        `json:"estimatedHours"`
	ActualHours    *float64        `json:"actualHours"`
	CategoryID     *uint64         `json:"categoryId"`
	CourseID       *uint64         `json:"courseId"`
	Tags           []string        `json:"tags"`
	IsRecurring    *bool           `json:"isRecurring"`
	Recurrence     json.RawMessage `json:"recurrence"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req taskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" || len(*req.Title) > 200 {
		respondError(w, http.StatusBadRequest, "Task title must be between 1 and 200 characters")
		return
	}

	t := task.Task{
		UserID:   u.ID,
		Title:    strings.TrimSpace(*req.Title),
		Priority: task.PriorityMedium,
		Status:   task.StatusPending,
		Tags:     pq.StringArray{},
	}

	if !h.applyTaskReq(w, u, &t, &req) {
		return
	}

	if err := h.DB.Create(&t).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	h.DB.Preload("Category").Preload("Course").First(&t, t.ID)

	respondMessage(w, http.StatusCreated, "Task created successfully", map[string]any{"task": t})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var t task.Task
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&t).Error; err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req taskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 200 {
			respondError(w, http.StatusBadRequest, "Task title must be between 1 and 200 characters")
			return
		}
		t.Title = title
	}

	if !h.applyTaskReq(w, u, &t, &req) {
		return
	}

	// moving into COMPLETED stamps the completion time once
	if req.Status != nil && *req.Status == task.StatusCompleted && t.CompletedAt == nil {
		now := time.Now()
		t.CompletedAt = &now
	}

	if err := h.DB.Save(&t).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	h.DB.Preload("Category").Preload("Course").First(&t, t.ID)

	respondMessage(w, http.StatusOK, "Task updated successfully", map[string]any{"task": t})
}

// applyTaskReq copies validated optional fields onto the task. It writes
// the error response itself and reports whether the caller may continue.
func (h *TaskHandler) applyTaskReq(w http.ResponseWriter, u *auth.User, t *task.Task, req *taskReq) bool {
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Priority != nil {
		if !validPriorities[*req.Priority] {
			respondError(w, http.StatusBadRequest, "Priority must be LOW, MEDIUM, HIGH, or URGENT")
			return false
		}
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		if !validStatuses[*req.Status] {
			respondError(w, http.StatusBadRequest, "Status must be PENDING, IN_PROGRESS, COMPLETED, or CANCELLED")
			return false
		}
		t.Status = *req.Status
	}
	if req.DueDate != nil {
		due, ok := parseTime(req.DueDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "Due date must be a valid date")
			return false
		}
		t.DueDate = due
	}
	if req.EstimatedHours != nil {
		if *req.EstimatedHours < 0 {
			respondError(w, http.StatusBadRequest, "Estimated hours must be a positive number")
			return false
		}
		t.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		if *req.ActualHours < 0 {
			respondError(w, http.StatusBadRequest, "Actual hours must be a positive number")
			return false
		}
		t.ActualHours = req.ActualHours
	}
	if req.CategoryID != nil {
		var c category.Category
		if err := h.DB.Where("id = ? AND user_id = ?", *req.CategoryID, u.ID).First(&c).Error; err != nil {
			respondError(w, http.StatusNotFound, "Category not found")
			return false
		}
		t.CategoryID = req.CategoryID
	}
	if req.CourseID != nil {
		var c course.Course
		if err := h.DB.Where("id = ? AND user_id = ?", *req.CourseID, u.ID).First(&c).Error; err != nil {
			respondError(w, http.StatusNotFound, "Course not found")
			return false
		}
		t.CourseID = req.CourseID
	}
	if req.Tags != nil {
		t.Tags = pq.StringArray(req.Tags)
	}
	if req.IsRecurring != nil {
		t.IsRecurring = *req.IsRecurring
	}
	if req.Recurrence != nil {
		t.Recurrence = req.Recurrence
	}
	return true
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, u.ID).Delete(&task.Task{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondMessage(w, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var t task.Task
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&t).Error; err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	now := time.Now()
	t.Status = task.StatusCompleted
	t.CompletedAt = &now
	if err := h.DB.Save(&t).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Task completed successfully", map[string]any{"task": t})
}

// ownedTask loads a task scoped to the caller, for subtask/time-log routes.
func (h *TaskHandler) ownedTask(u *auth.User, id uint64) (*task.Task, error) {
	var t task.Task
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

type subtaskReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (h *TaskHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := h.ownedTask(u, id); err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req subtaskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || len(req.Title) > 200 {
		respondError(w, http.StatusBadRequest, "Subtask title must be between 1 and 200 characters")
		return
	}

	st := task.Subtask{
		TaskID:      id,
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusPending,
	}
	if req.Order != nil {
		st.Order = *req.Order
	}
	if err := h.DB.Create(&st).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusCreated, "Subtask created successfully", map[string]any{"subtask": st})
}

func (h *TaskHandler) UpdateSubtask(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedSubtask(w, r)
	if !ok {
		return
	}

	var req subtaskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if title := strings.TrimSpace(req.Title); title != "" {
		if len(title) > 200 {
			respondError(w, http.StatusBadRequest, "Subtask title must be between 1 and 200 characters")
			return
		}
		st.Title = title
	}
	if req.Description != nil {
		st.Description = req.Description
	}
	if req.Order != nil {
		st.Order = *req.Order
	}

	if err := h.DB.Save(st).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Subtask updated successfully", map[string]any{"subtask": st})
}

func (h *TaskHandler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedSubtask(w, r)
	if !ok {
		return
	}

	if err := h.DB.Delete(st).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondMessage(w, http.StatusOK, "Subtask deleted successfully", nil)
}

func (h *TaskHandler) CompleteSubtask(w http.ResponseWriter, r *http.Request) {
	st, ok := h.ownedSubtask(w, r)
	if !ok {
		return
	}

	st.Status = task.StatusCompleted
	if err := h.DB.Save(st).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondMessage(w, http.StatusOK, "Subtask completed successfully", map[string]any{"subtask": st})
}

func (h *TaskHandler) ownedSubtask(w http.ResponseWriter, r *http.Request) (*task.Subtask, bool) {
	u, _ := auth.UserFromContext(r.Context())
	taskID, ok1 := urlID(r, "taskId")
	subtaskID, ok2 := urlID(r, "subtaskId")
	if !ok1 || !ok2 {
		respondError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	if _, err := h.ownedTask(u, taskID); err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return nil, false
	}

	var st task.Subtask
	if err := h.DB.Where("id = ? AND task_id = ?", subtaskID, taskID).First(&st).Error; err != nil {
		respondError(w, http.StatusNotFound, "Subtask not found")
		return nil, false
	}
	return &st, true
}

type timeLogReq struct {
	StartTime   string  `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Description *string `json:"description"`
}

func (h *TaskHandler) LogTime(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := h.ownedTask(u, id); err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req timeLogReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}

	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Start time must be a valid date")
		return
	}
	end, ok := parseTime(req.EndTime)
	if !ok {
		respondError(w, http.StatusBadRequest, "End time must be a valid date")
		return
	}
	if end != nil && end.Before(start) {
		respondError(w, http.StatusBadRequest, "End time must be after start time")
		return
	}

	tl := task.TimeLog{
		TaskID:      id,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
	}
	if end != nil {
		mins := int(end.Sub(start).Minutes())
		tl.Duration = &mins
	}
	if err := h.DB.Create(&tl).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusCreated, "Time logged successfully", map[string]any{"timeLog": tl})
}

func (h *TaskHandler) ListTimeLogs(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := h.ownedTask(u, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Task not found")
		} else {
			respondError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	var logs []task.TimeLog
	if err := h.DB.Where("task_id = ?", id).Order("start_time desc").Find(&logs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"timeLogs": logs})
}
