package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lzplanner/lzplanner/internal/catalog"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

// CatalogHandler serves the static tier and feature catalog, with effective
// (overlay-aware) per-feature pricing, to the configurator UI.
type CatalogHandler struct {
	resolver *catalog.Resolver
}

func NewCatalogHandler(resolver *catalog.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: resolver}
}

// ListSizes handles GET /api/v1/catalog/sizes.
func (h *CatalogHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sizes": h.resolver.Tiers(),
	})
}

type featureView struct {
	costing.Feature
	// EffectivePricing carries the overlay-substituted costs the
	// calculator would use right now.
	EffectivePricing costing.FeaturePricing `json:"effectivePricing"`
	MandatoryForSize bool                   `json:"mandatoryForSize"`
}

// GetSize handles GET /api/v1/catalog/sizes/{size}: the tier plus its
// feature list in catalog order.
func (h *CatalogHandler) GetSize(w http.ResponseWriter, r *http.Request) {
	size := costing.Size(chi.URLParam(r, "size"))
	tier, ok := h.resolver.Tier(size)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown configuration size %q", size))
		return
	}

	feats := h.resolver.FeaturesForTier(size)
	views := make([]featureView, 0, len(feats))
	for _, f := range feats {
		views = append(views, featureView{
			Feature:          f,
			EffectivePricing: h.resolver.FeaturePricing(f.ID),
			MandatoryForSize: tier.IsMandatory(f.ID),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"size":     tier,
		"features": views,
	})
}
