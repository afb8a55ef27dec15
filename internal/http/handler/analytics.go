package handler

import (
	"net/http"
	"time"

	"planner/internal/analytics"
	"planner/internal/auth"
)

type AnalyticsHandler struct {
	Svc *analytics.Service
}

// window reads optional startDate/endDate query params. Both must be
// present and valid for the filter to apply.
func window(r *http.Request) (analytics.Window, bool) {
	qp := r.URL.Query()
	startStr, endStr := qp.Get("startDate"), qp.Get("endDate")
	if startStr == "" || endStr == "" {
		return analytics.Window{}, true
	}

	start, err1 := time.Parse(time.RFC3339, startStr)
	end, err2 := time.Parse(time.RFC3339, endStr)
	if err1 != nil || err2 != nil {
		return analytics.Window{}, false
	}
	return analytics.Window{Start: &start, End: &end}, true
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	win, ok := window(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Start and end dates must be valid dates")
		return
	}

	stats, err := h.Svc.Dashboard(r.Context(), u.ID, win)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (h *AnalyticsHandler) TaskProgress(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	win, ok := window(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Start and end dates must be valid dates")
		return
	}

	progress, err := h.Svc.TaskProgress(r.Context(), u.ID, win)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, progress)
}

func (h *AnalyticsHandler) Productivity(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	win, ok := window(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Start and end dates must be valid dates")
		return
	}

	metrics, err := h.Svc.Productivity(r.Context(), u.ID, win)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, metrics)
}

func (h *AnalyticsHandler) TimeAnalysis(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	win, ok := window(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Start and end dates must be valid dates")
		return
	}

	ta, err := h.Svc.TimeAnalysis(r.Context(), u.ID, win)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, ta)
}

func (h *AnalyticsHandler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	win, ok := window(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Start and end dates must be valid dates")
		return
	}

	stats, err := h.Svc.CategoryBreakdown(r.Context(), u.ID, win)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"categoryStats": stats})
}

func (h *AnalyticsHandler) CoursePerformance(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())
	win, ok := window(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Start and end dates must be valid dates")
		return
	}

	stats, err := h.Svc.CoursePerformance(r.Context(), u.ID, win)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"courseStats": stats})
}

func (h *AnalyticsHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	report, err := h.Svc.WeeklyReport(r.Context(), u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFromContext(r.Context())

	report, err := h.Svc.MonthlyReport(r.Context(), u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondData(w, http.StatusOK, report)
}
