package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"planner/internal/auth"
	"planner/internal/category"
)

type AuthHandler struct {
	DB  *gorm.DB
	JWT *auth.JWT
}

type registerReq struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	StudentID  *string `json:"studentId"`
	Programme  *string `json:"programme"`
	University *string `json:"university"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || len(req.Password) < 8 || req.FirstName == "" || req.LastName == "" {
		respondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	var existing int64
	q := h.DB.Model(&auth.User{}).Where("email = ?", req.Email)
	if req.StudentID != nil && *req.StudentID != "" {
		q = h.DB.Model(&auth.User{}).Where("email = ? OR student_id = ?", req.Email, *req.StudentID)
	}
	if err := q.Count(&existing).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if existing > 0 {
		respondError(w, http.StatusBadRequest, "User with this email or student ID already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	u := auth.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		StudentID:    req.StudentID,
		Programme:    req.Programme,
		University:   req.University,
		Role:         auth.RoleUser,
		IsActive:     true,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		// every new account starts with the default category set
		defaults := category.Defaults(u.ID)
		return tx.Create(&defaults).Error
	})
	if err != nil {
		respondError(w, http.StatusConflict, "email already used")
		return
	}

	token, refresh, err := h.tokens(u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user":         u,
		"token":        token,
		"refreshToken": refresh,
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	var u auth.User
	if err := h.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.ComparePassword(u.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !u.IsActive {
		respondError(w, http.StatusUnauthorized, "User account is deactivated")
		return
	}

	token, refresh, err := h.tokens(u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"user":         u,
		"token":        token,
		"refreshToken": refresh,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad json")
		return
	}

	uid, err := h.JWT.Verify(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	var u auth.User
	if err := h.DB.First(&u, uid).Error; err != nil || !u.IsActive {
		respondError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	token, refresh, err := h.tokens(u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"token":        token,
		"refreshToken": refresh,
	})
}

func (h *AuthHandler) tokens(userID uint64) (token, refresh string, err error) {
	if token, err = h.JWT.Sign(userID); err != nil {
		return "", "", err
	}
	if refresh, err = h.JWT.SignRefresh(userID); err != nil {
		return "", "", err
	}
	return token, refresh, nil
}
