package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lzplanner/lzplanner/internal/cloud/aws"
	"github.com/lzplanner/lzplanner/internal/store"
)

// Refresher triggers a live pricing fetch. Implemented by the AWS pricing
// service; nil when the overlay is disabled.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// PricingHandler exposes the pricing cache status and the manual refresh
// trigger.
type PricingHandler struct {
	cache     *store.PricingCache
	refresher Refresher
}

func NewPricingHandler(cache *store.PricingCache, refresher Refresher) *PricingHandler {
	return &PricingHandler{cache: cache, refresher: refresher}
}

// Status handles GET /api/v1/pricing/status.
func (h *PricingHandler) Status(w http.ResponseWriter, r *http.Request) {
	source := "static"
	var status store.CacheStatus
	if h.cache != nil {
		status = h.cache.Status()
		if status.Valid {
			source = "live"
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source":             source,
		"refreshAvailable":   h.refresher != nil,
		"cache":              status,
		"livePricedFeatures": aws.LivePricedFeatureIDs(),
	})
}

// Refresh handles POST /api/v1/pricing/refresh. The fetch runs in the
// background: cost calculations keep serving the previous snapshot (or
// static values) while it is in flight, and a failure leaves the cache
// untouched.
func (h *PricingHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, http.StatusConflict, "live pricing is disabled")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := h.refresher.Refresh(ctx); err != nil {
			slog.Warn("pricing: manual refresh failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}
