package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"surety/internal/config"
	"surety/internal/transport/httpserver/handler"
	"surety/internal/transport/httpserver/middleware"
)

// Options carries the optional surfaces mounted next to the JSON API.
type Options struct {
	// MCP is served at cfg.MCP.HTTPPath when set and enabled.
	MCP http.Handler
	// Registry backs /metrics and request instrumentation when set.
	Registry *prometheus.Registry
}

func NewRouter(cfg config.Config, handlers *handler.Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewCORS(cfg.CORSOrigins))
	if cfg.MetricsEnabled && opts.Registry != nil {
		r.Use(middleware.NewMetrics(opts.Registry).Middleware)
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	// MCP sessions hold long-lived streams, so they sit outside the timeout.
	if cfg.MCP.HTTPEnabled && opts.MCP != nil {
		r.Handle(cfg.MCP.HTTPPath, opts.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))

		r.Get("/health", handlers.Health)
		r.Get("/live", handlers.Live)
		r.Get("/dashboard", handlers.Dashboard)
		r.Get("/coverage-lookup", handlers.CoverageLookup)
		r.Get("/renewal-calendar", handlers.RenewalCalendar)
		r.Get("/member-coverage", handlers.MemberCoverage)

		r.Get("/members", handlers.ListMembers)
		r.Post("/members", handlers.CreateMember)
		r.Get("/members/{id}", handlers.GetMember)
		r.Put("/members/{id}", handlers.UpdateMember)
		r.Delete("/members/{id}", handlers.DeleteMember)

		r.Get("/insurers", handlers.ListInsurers)
		r.Post("/insurers", handlers.CreateInsurer)
		r.Get("/insurers/{id}", handlers.GetInsurer)
		r.Put("/insurers/{id}", handlers.UpdateInsurer)
		r.Delete("/insurers/{id}", handlers.DeleteInsurer)

		r.Get("/assets", handlers.ListAssets)
		r.Post("/assets", handlers.CreateAsset)
		r.Get("/assets/{id}", handlers.GetAsset)
		r.Put("/assets/{id}", handlers.UpdateAsset)
		r.Delete("/assets/{id}", handlers.DeleteAsset)

		r.Get("/policies", handlers.ListPolicies)
		r.Post("/policies", handlers.CreatePolicy)
		r.Route("/policies/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetPolicy)
			r.Put("/", handlers.UpdatePolicy)
			r.Delete("/", handlers.DeletePolicy)

			r.Get("/payments", handlers.ListPayments)
			r.Post("/payments", handlers.CreatePayment)
			r.Put("/payments/{paymentId}", handlers.UpdatePayment)
			r.Delete("/payments/{paymentId}", handlers.DeletePayment)

			r.Get("/coverage-items", handlers.ListCoverageItems)
			r.Post("/coverage-items", handlers.CreateCoverageItem)
			r.Get("/coverage-items/{itemId}", handlers.GetCoverageItem)
			r.Put("/coverage-items/{itemId}", handlers.UpdateCoverageItem)
			r.Delete("/coverage-items/{itemId}", handlers.DeleteCoverageItem)

			r.Get("/beneficiaries", handlers.ListBeneficiaries)
			r.Put("/beneficiaries", handlers.ReplaceBeneficiaries)

			r.Get("/cash-values", handlers.ListCashValues)
			r.Put("/cash-values", handlers.ReplaceCashValues)

			r.Get("/extension", handlers.GetExtension)
			r.Put("/extension", handlers.SetExtension)
		})

		r.Get("/settings", handlers.ListSettings)
		r.Post("/settings", handlers.CreateSetting)
		r.Get("/settings/{key}", handlers.GetSetting)
		r.Put("/settings/{key}", handlers.UpdateSetting)
		r.Delete("/settings/{key}", handlers.DeleteSetting)

		r.Get("/backup", handlers.ExportBackup)
		r.Post("/backup", handlers.RestoreBackup)
	})

	return r
}
