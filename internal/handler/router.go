package handler

import (
	"net/http"

	chathandler "github.com/krish0326/i-backend/internal/chat/handler"
	chatservice "github.com/krish0326/i-backend/internal/chat/service"
	"github.com/krish0326/i-backend/internal/infra/observability"
	"github.com/krish0326/i-backend/internal/infra/ws"
	"github.com/krish0326/i-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Deps bundles everything the router needs.
type Deps struct {
	ChatSvc    *chatservice.ChatService
	TeamSvc    *service.TeamService
	ProjectSvc *service.ProjectService
	UploadSvc  *service.UploadService
	HealthSvc  *service.HealthService
	Hub        *ws.Hub

	Metrics        *observability.Metrics
	Logger         *zap.Logger
	AllowedOrigins []string
	UploadDir      string
	MaxUploadBytes int64
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(deps.Logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(deps.HealthSvc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- Websocket chat transport ---
	r.Get("/ws", ws.Handler(deps.Hub, deps.ChatSvc, deps.AllowedOrigins))

	// --- Static uploads ---
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Chatbot
		// =============================================
		r.Post("/chatbot/message", chathandler.MessageHandler(deps.ChatSvc, deps.Logger))
		r.Get("/chatbot/conversations/{conversationId}", chathandler.HistoryHandler(deps.ChatSvc, deps.Logger))
		r.Get("/chatbot/stats", chathandler.StatsHandler(deps.Metrics, deps.Logger))

		// =============================================
		// Team members
		// =============================================
		r.Get("/team", listTeamHandler(deps.TeamSvc, deps.Logger))
		r.Post("/team", createTeamMemberHandler(deps.TeamSvc, deps.Logger))
		r.Get("/team/{memberId}", getTeamMemberHandler(deps.TeamSvc, deps.Logger))
		r.Put("/team/{memberId}", updateTeamMemberHandler(deps.TeamSvc, deps.Logger))
		r.Delete("/team/{memberId}", deleteTeamMemberHandler(deps.TeamSvc, deps.Logger))

		// =============================================
		// Portfolio projects
		// =============================================
		r.Get("/projects", listProjectsHandler(deps.ProjectSvc, deps.Logger))
		r.Post("/projects", createProjectHandler(deps.ProjectSvc, deps.Logger))
		r.Get("/projects/{projectId}", getProjectHandler(deps.ProjectSvc, deps.Logger))
		r.Put("/projects/{projectId}", updateProjectHandler(deps.ProjectSvc, deps.Logger))
		r.Delete("/projects/{projectId}", deleteProjectHandler(deps.ProjectSvc, deps.Logger))

		// =============================================
		// Uploads
		// =============================================
		r.Post("/uploads", uploadHandler(deps.UploadSvc, deps.MaxUploadBytes, deps.Logger))
	})

	return r
}

// ============================================================
// Health
// ============================================================

func healthzHandler(healthSvc *service.HealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := healthSvc.Check(r.Context())
		code := http.StatusOK
		if status.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
