package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"planner/internal/analytics"
	"planner/internal/auth"
	"planner/internal/config"
	"planner/internal/http/handler"
	mw "planner/internal/http/middleware"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, batch handler.ReminderRunner) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	uh := &handler.UserHandler{DB: db}
	th := &handler.TaskHandler{DB: db}
	ch := &handler.CourseHandler{DB: db}
	cath := &handler.CategoryHandler{DB: db}
	resh := &handler.ResourceHandler{DB: db}
	remh := &handler.ReminderHandler{DB: db, Batch: batch}
	anh := &handler.AnalyticsHandler{Svc: &analytics.Service{DB: db}}

	requireAuth := auth.RequireAuth(jwtSvc, db)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/refresh", ah.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/me", uh.Me)
			r.Put("/users/me", uh.UpdateMe)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", th.List)
				r.Post("/", th.Create)
				r.Get("/{id}", th.Get)
				r.Put("/{id}", th.Update)
				r.Delete("/{id}", th.Delete)
				r.Patch("/{id}/complete", th.Complete)

				r.Post("/{id}/subtasks", th.AddSubtask)
				r.Put("/{taskId}/subtasks/{subtaskId}", th.UpdateSubtask)
				r.Delete("/{taskId}/subtasks/{subtaskId}", th.DeleteSubtask)
				r.Patch("/{taskId}/subtasks/{subtaskId}/complete", th.CompleteSubtask)

				r.Post("/{id}/time-logs", th.LogTime)
				r.Get("/{id}/time-logs", th.ListTimeLogs)
			})

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", ch.List)
				r.Post("/", ch.Create)
				r.Get("/{id}", ch.Get)
				r.Put("/{id}", ch.Update)
				r.Delete("/{id}", ch.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", cath.List)
				r.Post("/", cath.Create)
				r.Get("/{id}", cath.Get)
				r.Put("/{id}", cath.Update)
				r.Delete("/{id}", cath.Delete)
			})

			r.Route("/resources", func(r chi.Router) {
				r.Get("/", resh.List)
				r.Post("/", resh.Create)
				r.Get("/{id}", resh.Get)
				r.Put("/{id}", resh.Update)
				r.Delete("/{id}", resh.Delete)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.With(auth.RequireAdmin).Post("/trigger-daily", remh.TriggerDaily)

				r.Get("/", remh.List)
				r.Post("/", remh.Create)
				r.Get("/{id}", remh.Get)
				r.Put("/{id}", remh.Update)
				r.Delete("/{id}", remh.Delete)
				r.Patch("/{id}/sent", remh.MarkSent)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/dashboard", anh.Dashboard)
				r.Get("/task-progress", anh.TaskProgress)
				r.Get("/productivity", anh.Productivity)
				r.Get("/time-analysis", anh.TimeAnalysis)
				r.Get("/category-breakdown", anh.CategoryBreakdown)
				r.Get("/course-performance", anh.CoursePerformance)
				r.Get("/weekly-report", anh.WeeklyReport)
				r.Get("/monthly-report", anh.MonthlyReport)
			})
		})
	})

	return r
}
