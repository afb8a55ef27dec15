package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/course"
	"planner/internal/task"
)

type CourseHandler struct {
	DB *gorm.DB
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var courses []course.Course
	if err := h.DB.Where("user_id = ?", u.ID).Order("year desc, semester, code").Find(&courses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var c course.Course
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&c).Error; err != nil {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	// upcoming work for the course detail view
	var tasks []task.Task
	if err := h.DB.Where("course_id = ?", c.ID).
		Select("id, title, status, priority, due_date").
		Order("due_date asc").
		Find(&tasks).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"course": c, "tasks": tasks})
}

type courseReq struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits"`
	Semester    *string `json:"semester"`
	Year        *int    `json:"year"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req courseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Code == nil || strings.TrimSpace(*req.Code) == "" || req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Course code and name are required")
		return
	}

	c := course.Course{
		UserID: u.ID,
		Code:   strings.TrimSpace(*req.Code),
		Name:   strings.TrimSpace(*req.Name),
	}
	if !applyCourseReq(w, &c, &req) {
		return
	}

	if err := h.DB.Create(&c).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusCreated, "Course created successfully", map[string]any{"course": c})
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var c course.Course
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&c).Error; err != nil {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	var req courseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Code != nil && strings.TrimSpace(*req.Code) != "" {
		c.Code = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if !applyCourseReq(w, &c, &req) {
		return
	}

	if err := h.DB.Save(&c).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Course updated successfully", map[string]any{"course": c})
}

func applyCourseReq(w http.ResponseWriter, c *course.Course, req *courseReq) bool {
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Credits != nil {
		c.Credits = req.Credits
	}
	if req.Semester != nil {
		c.Semester = req.Semester
	}
	if req.Year != nil {
		c.Year = req.Year
	}
	if req.StartDate != nil {
		t, ok := parseTime(req.StartDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "Start date must be a valid date")
			return false
		}
		c.StartDate = t
	}
	if req.EndDate != nil {
		t, ok := parseTime(req.EndDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "End date must be a valid date")
			return false
		}
		c.EndDate = t
	}
	return true
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, u.ID).Delete(&course.Course{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	respondMessage(w, http.StatusOK, "Course deleted successfully", nil)
}
