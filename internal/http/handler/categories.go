package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/category"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var categories []category.Category
	if err := h.DB.Where("user_id = ?", u.ID).Order("name").Find(&categories).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var c category.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&c).Error; err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	respondData(w, http.StatusOK, map[string]any{"category": c})
}

type categoryReq struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	c := category.Category{
		UserID: u.ID,
		Name:   strings.TrimSpace(*req.Name),
	}
	if req.Color != nil && *req.Color != "" {
		c.Color = *req.Color
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := h.DB.Create(&c).Error; err != nil {
		respondError(w, http.StatusConflict, "Category with this name already exists")
		return
	}

	respondMessage(w, http.StatusCreated, "Category created successfully", map[string]any{"category": c})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var c category.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, u.ID).First(&c).Error; err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil && *req.Color != "" {
		c.Color = *req.Color
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := h.DB.Save(&c).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusOK, "Category updated successfully", map[string]any{"category": c})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, u.ID).Delete(&category.Category{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	respondMessage(w, http.StatusOK, "Category deleted successfully", nil)
}
