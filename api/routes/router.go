package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/obitflow/obitflow-backend/api/controllers"
	webhookcontrollers "github.com/obitflow/obitflow-backend/api/controllers/webhooks"
	"github.com/obitflow/obitflow-backend/api/middleware"
	"github.com/obitflow/obitflow-backend/internal/cases"
	"github.com/obitflow/obitflow-backend/internal/dispatch"
	"github.com/obitflow/obitflow-backend/internal/notifications"
	"github.com/obitflow/obitflow-backend/internal/profiles"
	"github.com/obitflow/obitflow-backend/internal/signatures"
	"github.com/obitflow/obitflow-backend/internal/staff"
	dropboxsign "github.com/obitflow/obitflow-backend/internal/webhooks/dropboxsign"
	"github.com/obitflow/obitflow-backend/pkg/config"
	"github.com/obitflow/obitflow-backend/pkg/db"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/redis"
)

// RouterParams bundles everything the API surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Registry *prometheus.Registry

	Cases         cases.Service
	Staff         staff.Service
	Profiles      profiles.Service
	Notifications notifications.Service
	Dispatch      dispatch.Service
	Signatures    signatures.Service
	SignWebhook   *dropboxsign.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/dropbox-sign", webhookcontrollers.DropboxSignWebhook(p.SignWebhook, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.HomeContext(logg))

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", controllers.ListCases(p.Cases, logg))
			r.Get("/{caseId}", controllers.GetCase(p.Cases, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", controllers.ListStaff(p.Staff, logg))
			r.Post("/", controllers.CreateStaff(p.Staff, logg))
			r.Patch("/{staffId}", controllers.UpdateStaff(p.Staff, logg))
			r.Delete("/{staffId}", controllers.DeleteStaff(p.Staff, logg))
		})

		r.Route("/profile/preferences", func(r chi.Router) {
			r.Get("/", controllers.GetPreferences(p.Profiles, logg))
			r.Put("/", controllers.UpdatePreferences(p.Profiles, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(p.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(p.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(p.Notifications, logg))
		})

		r.Post("/notify/staff", controllers.NotifyStaff(p.Dispatch, logg))
		r.Post("/signatures/send", controllers.SendSignatureLink(p.Signatures, logg))
	})

	return r
}
