package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"planner/internal/auth"
)

type UserHandler struct {
	DB *gorm.DB
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	respondData(w, http.StatusOK, map[string]any{"user": u})
}

type updateMeReq struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Programme  *string `json:"programme"`
	University *string `json:"university"`
	Avatar     *string `json:"avatar"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	var req updateMeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}

	updates := map[string]any{}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) != "" {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) != "" {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Programme != nil {
		updates["programme"] = req.Programme
	}
	if req.University != nil {
		updates["university"] = req.University
	}
	if req.Avatar != nil {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := h.DB.Model(u).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
	}

	respondMessage(w, http.StatusOK, "Profile updated successfully", map[string]any{"user": u})
}
