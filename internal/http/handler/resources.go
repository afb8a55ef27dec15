package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/resource"
)

var validResourceTypes = map[string]bool{"LINK": true, "FILE": true, "NOTE": true}

type ResourceHandler struct {
	DB *gorm.DB
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	q := h.DB.Where("user_id = ?", u.ID)
	if v := r.URL.Query().Get("type"); v != "" {
		if !validResourceTypes[v] {
			respondError(w, http.StatusBadRequest, "Type must be LINK, FILE, or NOTE")
			return
		}
		q = q.Where("type = ?", v)
	}

	var resources []resource.Resource
	if err := q.Order("created_at desc").Find(&resources).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"resources": resources})
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var res resource.Resource
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&res).Error; err != nil {
		respondError(w, http.StatusNotFound, "Resource not found")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"resource": res})
}

type resourceReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	URL         *string  `json:"url"`
	FilePath    *string  `json:"filePath"`
	FileSize    *int64   `json:"fileSize"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"isPublic"`
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req resourceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Resource title is required")
		return
	}
	if req.Type == nil || !validResourceTypes[*req.Type] {
		respondError(w, http.StatusBadRequest, "Type must be LINK, FILE, or NOTE")
		return
	}

	res := resource.Resource{
		UserID:      u.ID,
		Title:       strings.TrimSpace(*req.Title),
		Description: req.Description,
		Type:        *req.Type,
		URL:         req.URL,
		FilePath:    req.FilePath,
		FileSize:    req.FileSize,
		Tags:        pq.StringArray{},
	}
	if req.Tags != nil {
		res.Tags = pq.StringArray(req.Tags)
	}
	if req.IsPublic != nil {
		res.IsPublic = *req.IsPublic
	}

	if err := h.DB.Create(&res).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusCreated, "Resource created successfully", map[string]any{"resource": res})
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var res resource.Resource
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&res).Error; err != nil {
		respondError(w, http.StatusNotFound, "Resource not found")
		return
	}

	var req resourceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		res.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		if !validResourceTypes[*req.Type] {
			respondError(w, http.StatusBadRequest, "Type must be LINK, FILE, or NOTE")
			return
		}
		res.Type = *req.Type
	}
	if req.Description != nil {
		res.Description = req.Description
	}
	if req.URL != nil {
		res.URL = req.URL
	}
	if req.FilePath != nil {
		res.FilePath = req.FilePath
	}
	if req.FileSize != nil {
		res.FileSize = req.FileSize
	}
	if req.Tags != nil {
		res.Tags = pq.StringArray(req.Tags)
	}
	if req.IsPublic != nil {
		res.IsPublic = *req.IsPublic
	}

	if err := h.DB.Save(&res).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Resource updated successfully", map[string]any{"resource": res})
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, u.ID).Delete(&resource.Resource{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Resource not found")
		return
	}

	respondMessage(w, http.StatusOK, "Resource deleted successfully", nil)
}
