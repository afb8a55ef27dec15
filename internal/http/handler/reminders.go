package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/reminder"
	"planner/internal/task"
)

var validReminderTypes = map[string]bool{
	reminder.TypeEmail: true,
	reminder.TypePush:  true,
	reminder.TypeSMS:   true,
}

// ReminderRunner is the daily batch as the trigger endpoint sees it.
type ReminderRunner interface {
	Run(ctx context.Context) ([]reminder.BatchResult, error)
}

type ReminderHandler struct {
	DB    *gorm.DB
	Batch ReminderRunner
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var reminders []reminder.Reminder
	if err := h.DB.Where("user_id = ?", u.ID).Order("scheduled_at asc").Find(&reminders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"reminders": reminders})
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	rem, ok := h.owned(w, r)
	if !ok {
		return
	}
	respondData(w, http.StatusOK, map[string]any{"reminder": rem})
}

type reminderReq struct {
	Title       *string `json:"title"`
	Message     *string `json:"message"`
	Type        *string `json:"type"`
	ScheduledAt *string `json:"scheduledAt"`
	TaskID      *uint64 `json:"taskId"`
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req reminderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" || len(*req.Title) > 100 {
		respondError(w, http.StatusBadRequest, "Reminder title must be between 1 and 100 characters")
		return
	}
	at, ok := parseTime(req.ScheduledAt)
	if !ok || at == nil {
		respondError(w, http.StatusBadRequest, "Scheduled time must be a valid date")
		return
	}

	rem := reminder.Reminder{
		UserID:      u.ID,
		Title:       strings.TrimSpace(*req.Title),
		Type:        reminder.TypeEmail,
		ScheduledAt: *at,
	}
	if req.Message != nil {
		rem.Message = *req.Message
	}
	if req.Type != nil {
		if !validReminderTypes[*req.Type] {
			respondError(w, http.StatusBadRequest, "Type must be EMAIL, PUSH, or SMS")
			return
		}
		rem.Type = *req.Type
	}
	if req.TaskID != nil {
		var t task.Task
		if err := h.DB.Where("id = ? AND user_id = ?", *req.TaskID, u.ID).First(&t).Error; err != nil {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		rem.TaskID = req.TaskID
	}

	if err := h.DB.Create(&rem).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusCreated, "Reminder created successfully", map[string]any{"reminder": rem})
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	rem, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req reminderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 100 {
			respondError(w, http.StatusBadRequest, "Reminder title must be between 1 and 100 characters")
			return
		}
		rem.Title = title
	}
	if req.Message != nil {
		rem.Message = *req.Message
	}
	if req.Type != nil {
		if !validReminderTypes[*req.Type] {
			respondError(w, http.StatusBadRequest, "Type must be EMAIL, PUSH, or SMS")
			return
		}
		rem.Type = *req.Type
	}
	if req.ScheduledAt != nil {
		at, ok := parseTime(req.ScheduledAt)
		if !ok || at == nil {
			respondError(w, http.StatusBadRequest, "Scheduled time must be a valid date")
			return
		}
		rem.ScheduledAt = *at
	}
	if req.TaskID != nil {
		var t task.Task
		if err := h.DB.Where("id = ? AND user_id = ?", *req.TaskID, u.ID).First(&t).Error; err != nil {
			respondError(w, http.StatusNotFound, "Task not found")
			return
		}
		rem.TaskID = req.TaskID
	}

	if err := h.DB.Save(rem).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Reminder updated successfully", map[string]any{"reminder": rem})
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rem, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.DB.Delete(rem).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondMessage(w, http.StatusOK, "Reminder deleted successfully", nil)
}

func (h *ReminderHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	rem, ok := h.owned(w, r)
	if !ok {
		return
	}

	now := time.Now()
	rem.IsSent = true
	rem.SentAt = &now
	if err := h.DB.Save(rem).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Reminder marked as sent", map[string]any{"reminder": rem})
}

// TriggerDaily runs the reminder batch on demand. The route is mounted
// behind RequireAdmin, so the job is never invoked for non-admin callers.
func (h *ReminderHandler) TriggerDaily(w http.ResponseWriter, r *http.Request) {
	results, err := h.Batch.Run(r.Context())
	if err != nil {
		if errors.Is(err, reminder.ErrRunInProgress) {
			respondError(w, http.StatusConflict, "A reminder run is already in progress")
			return
		}
		log.Error().Err(err).Msg("manual daily reminder trigger failed")
		respondError(w, http.StatusInternalServerError, "Failed to trigger daily reminders")
		return
	}

	respondMessage(w, http.StatusOK, "Daily task reminders triggered successfully", map[string]any{
		"results": results,
	})
}

func (h *ReminderHandler) owned(w http.ResponseWriter, r *http.Request) (*reminder.Reminder, bool) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	var rem reminder.Reminder
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&rem).Error; err != nil {
		respondError(w, http.StatusNotFound, "Reminder not found")
		return nil, false
	}
	return &rem, true
}
