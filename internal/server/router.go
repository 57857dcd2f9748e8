package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pizzapos-backend/internal/config"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/handler"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	home handler.HomeHandler,
	auth handler.AuthHandler,
	products handler.ProductHandler,
	orders handler.OrderHandler,
	boardH handler.BoardHandler,
	customers handler.CustomerHandler,
	employees handler.EmployeeHandler,
	shifts handler.ShiftHandler,
	blocked handler.BlockedHandler,
	reports handler.ReportHandler,
	exports handler.ExportHandler,
	settings handler.SettingsHandler,
	sync handler.SyncHandler,
	users handler.UserHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	home.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// counter and kitchen staff
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff))
			products.RegisterRoutes(sr)
			orders.RegisterRoutes(sr)
			boardH.RegisterRoutes(sr)
			customers.RegisterRoutes(sr)
			shifts.RegisterRoutes(sr)
			blocked.RegisterRoutes(sr)
		})
		// manager and owner
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager))
			employees.RegisterRoutes(mr)
			reports.RegisterRoutes(mr)
			exports.RegisterRoutes(mr)
			settings.RegisterRoutes(mr)
			sync.RegisterRoutes(mr)
		})
		// owner only
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			users.RegisterRoutes(ar)
		})
	})

	return r
}
