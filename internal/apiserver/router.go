package apiserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lzplanner/lzplanner/internal/apiserver/handler"
	"github.com/lzplanner/lzplanner/internal/catalog"
	"github.com/lzplanner/lzplanner/internal/store"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

// NewRouter creates the API router with all endpoints. pricingCache and
// refresher may be nil when the live pricing overlay is disabled.
func NewRouter(resolver *catalog.Resolver, calc *costing.Calculator, subs *store.SubmissionStore, pricingCache *store.PricingCache, refresher handler.Refresher) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	estimateHandler := handler.NewEstimateHandler(resolver, calc, subs)
	catalogHandler := handler.NewCatalogHandler(resolver)
	pricingHandler := handler.NewPricingHandler(pricingCache, refresher)
	analyticsHandler := handler.NewAnalyticsHandler(subs)

	r.Route("/api/v1", func(r chi.Router) {
		// Estimates (literal routes before parameterized to avoid conflicts)
		r.Post("/estimates", estimateHandler.Create)
		r.Get("/estimates", estimateHandler.List)
		r.Get("/estimates/export", estimateHandler.ExportCSV)
		r.Get("/estimates/{id}", estimateHandler.Get)

		// Catalog
		r.Get("/catalog/sizes", catalogHandler.ListSizes)
		r.Get("/catalog/sizes/{size}", catalogHandler.GetSize)

		// Live pricing overlay
		r.Get("/pricing/status", pricingHandler.Status)
		r.Post("/pricing/refresh", pricingHandler.Refresh)

		// Reporting
		r.Get("/analytics/summary", analyticsHandler.Summary)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
