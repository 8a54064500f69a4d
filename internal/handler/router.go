package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/logging"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
	"github.com/Shivanand-hulikatti/association-registrations/internal/service"
)

// Deps are the collaborators of the HTTP surface.
type Deps struct {
	Events         *service.EventService
	Registrations  *service.RegistrationService
	SessionSecret  []byte
	AllowedOrigins []string // browser origins granted credentialed CORS access
	Logger         *zap.Logger
	Gatherer       prometheus.Gatherer
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	events := NewEventHandler(d.Events)
	regs := NewRegistrationHandler(d.Events, d.Registrations)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(d.Logger))        // structured access log
	r.Use(CORS(d.AllowedOrigins))

	r.Get("/health", HealthCheck)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(d.SessionSecret, func(w http.ResponseWriter, r *http.Request, err error) {
			logging.Extract(r.Context()).Info("rejected session token", zap.Error(err))
			writeJSON(w, http.StatusUnauthorized, model.ErrorResponse{Error: "invalid session", Code: string(apperr.CodeUnauthorized)})
		}))

		r.Route("/events", func(r chi.Router) {
			r.Post("/", events.CreateEvent)
			r.Get("/", events.ListEvents)
			r.Get("/{id}", events.GetEvent)

			r.Get("/{id}/registrations", regs.List)
			r.Post("/{id}/registrations", regs.Create)
			r.Get("/{id}/registrations/{registrationID}", regs.Get)
			r.Put("/{id}/registrations/{registrationID}", regs.Update)
			r.Delete("/{id}/registrations/{registrationID}", regs.Delete)
		})
		r.Get("/users/{id}/registrations", regs.ListForUser)
	})

	return r
}
