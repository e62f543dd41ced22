package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/ironclub/internal/auth"
	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/notify"
	"github.com/claude/ironclub/internal/payments"
	"github.com/claude/ironclub/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	notifier notify.Notifier
	payments payments.Provider
	tokens   *auth.TokenIssuer
	log      *slog.Logger
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, notifier notify.Notifier, provider payments.Provider, tokens *auth.TokenIssuer, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		notifier: notifier,
		payments: provider,
		tokens:   tokens,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Public endpoints.
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/plans", s.handleListPlans)
		r.Post("/billing/webhook", s.handleBillingWebhook)

		// Everything else needs a session.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(s.tokens))

			r.Post("/auth/logout", s.handleLogout)

			r.Get("/members/me", s.handleGetMe)
			r.Put("/members/me", s.handleUpdateMe)

			r.Post("/billing/checkout", s.handleCheckout)
			r.Get("/billing/portal", s.handleBillingPortal)
			r.Get("/payments", s.handleListPayments)

			r.Get("/classes", s.handleListClasses)
			r.Post("/classes/{id}/bookings", s.handleBookClass)
			r.Delete("/classes/{id}/bookings", s.handleCancelBooking)

			r.Get("/exercises", s.handleListExercises)
			r.Get("/exercises/{id}/stats", s.handleExerciseStats)
			r.Get("/exercises/{id}/chart", s.handleExerciseChart)

			r.Post("/workouts", s.handleCreateWorkout)
			r.Get("/workouts", s.handleListWorkouts)
			r.Get("/workouts/{id}", s.handleGetWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)
			r.Get("/stats/workouts", s.handleUserWorkoutStats)

			r.Post("/measurements", s.handleCreateMeasurement)
			r.Get("/measurements", s.handleListMeasurements)

			r.Post("/goals", s.handleCreateGoal)
			r.Get("/goals", s.handleListGoals)
			r.Post("/goals/{id}/pause", s.handleGoalTransition)
			r.Post("/goals/{id}/resume", s.handleGoalTransition)
			r.Post("/goals/{id}/complete", s.handleGoalTransition)
			r.Post("/goals/{id}/abandon", s.handleGoalTransition)
			r.Post("/goals/recalculate", s.handleRecalculateGoals)

			r.Get("/notifications", s.handleListNotifications)
			r.Post("/notifications/{id}/read", s.handleMarkNotificationRead)

			// Trainer endpoints.
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleTrainer, models.RoleAdmin))
				r.Post("/classes", s.handleCreateClass)
				r.Put("/classes/{id}", s.handleUpdateClass)
				r.Delete("/classes/{id}", s.handleDeleteClass)
				r.Get("/classes/{id}/bookings", s.handleListBookings)
				r.Post("/exercises", s.handleCreateExercise)
			})

			// Admin endpoints.
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleAdmin))
				r.Get("/members", s.handleListMembers)
				r.Get("/members/{id}", s.handleGetMember)
				r.Put("/members/{id}", s.handleUpdateMember)
				r.Delete("/members/{id}", s.handleDeleteMember)
				r.Post("/plans", s.handleCreatePlan)
				r.Put("/plans/{id}", s.handleUpdatePlan)
				r.Delete("/plans/{id}", s.handleDeletePlan)
				r.Get("/admin/overview", s.handleClubOverview)
			})
		})
	})
}

// SetMCP mounts the MCP transport handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}

// SetFrontend mounts the SPA filesystem. Unmatched routes serve
// index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
