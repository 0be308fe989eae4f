// Package catalog exposes the static landing zone tier and feature
// definitions and resolves per-feature pricing, optionally overlaid with
// freshly fetched list prices.
package catalog

import (
	"fmt"

	"github.com/lzplanner/lzplanner/pkg/costing"
)

// Overlay substitutes a live monthly infrastructure cost for a feature.
// Lookup returns ok=false whenever the overlaid data is absent or no longer
// fresh; the resolver then falls back to the static catalog value. A zero
// price with ok=true is a genuine "this service is free" answer and is
// honored as-is. One-time professional services costs are never overlaid.
type Overlay interface {
	Lookup(featureID string) (monthlyCost float64, ok bool)
}

// Resolver answers tier and feature lookups. Lookups never fail: unknown
// tier IDs are a miss, unknown feature IDs price at zero. The static data
// is immutable after construction, so a single Resolver is safe for
// concurrent use across requests.
type Resolver struct {
	overlay Overlay

	tiers      []costing.Tier
	tiersByID  map[costing.Size]costing.Tier
	features   []costing.Feature
	featsByID  map[string]costing.Feature
	featsBySiz map[costing.Size][]costing.Feature
}

// NewResolver builds a Resolver over the static catalog, deriving each
// tier's available feature set from the features' AvailableInSizes and
// verifying the catalog invariants. overlay may be nil (static pricing
// only). A validation failure is a startup error, not a runtime condition.
func NewResolver(overlay Overlay) (*Resolver, error) {
	r := &Resolver{
		overlay:    overlay,
		tiersByID:  make(map[costing.Size]costing.Tier, len(tierDefs)),
		featsByID:  make(map[string]costing.Feature, len(featureDefs)),
		featsBySiz: make(map[costing.Size][]costing.Feature, len(tierDefs)),
	}

	for _, f := range featureDefs {
		if f.ID == "" {
			return nil, fmt.Errorf("catalog: feature with empty ID")
		}
		if _, dup := r.featsByID[f.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate feature ID %q", f.ID)
		}
		if f.InfraCostImpact < 0 || f.ProfessionalServicesCostImpact < 0 {
			return nil, fmt.Errorf("catalog: feature %q has negative cost impact", f.ID)
		}
		if len(f.AvailableInSizes) == 0 {
			return nil, fmt.Errorf("catalog: feature %q is not available in any size", f.ID)
		}
		r.featsByID[f.ID] = f
		r.features = append(r.features, f)
	}

	for _, t := range tierDefs {
		if _, dup := r.tiersByID[t.Size]; dup {
			return nil, fmt.Errorf("catalog: duplicate tier %q", t.Size)
		}

		// Derive availability from the feature side, preserving declaration order.
		var avail []string
		var feats []costing.Feature
		for _, f := range r.features {
			if f.AvailableIn(t.Size) {
				avail = append(avail, f.ID)
				feats = append(feats, f)
			}
		}
		t.AvailableFeatures = avail

		for _, id := range t.MandatoryFeatures {
			if !t.HasFeature(id) {
				return nil, fmt.Errorf("catalog: tier %q marks %q mandatory but it is not available in that size", t.Size, id)
			}
		}

		r.tiers = append(r.tiers, t)
		r.tiersByID[t.Size] = t
		r.featsBySiz[t.Size] = feats
	}

	return r, nil
}

// Tiers returns all tiers in ascending size order.
func (r *Resolver) Tiers() []costing.Tier {
	out := make([]costing.Tier, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// Tier looks up a tier by size. A miss means the caller supplied an
// invalid configuration size; the boundary layer turns that into a client
// error.
func (r *Resolver) Tier(size costing.Size) (costing.Tier, bool) {
	t, ok := r.tiersByID[size]
	return t, ok
}

// Feature looks up a single feature definition by ID.
func (r *Resolver) Feature(id string) (costing.Feature, bool) {
	f, ok := r.featsByID[id]
	return f, ok
}

// FeaturesForTier returns the features offered in the given size, in
// catalog declaration order. Unknown sizes yield an empty list.
func (r *Resolver) FeaturesForTier(size costing.Size) []costing.Feature {
	feats := r.featsBySiz[size]
	out := make([]costing.Feature, len(feats))
	copy(out, feats)
	return out
}

// FeaturePricing returns the effective cost pair for a feature. The
// monthly infrastructure cost comes from the overlay when it has a fresh
// entry for the feature, otherwise from the static catalog; professional
// services costs always come from the static catalog. Unknown feature IDs
// price at zero.
func (r *Resolver) FeaturePricing(featureID string) costing.FeaturePricing {
	f, ok := r.featsByID[featureID]
	if !ok {
		return costing.FeaturePricing{}
	}

	p := costing.FeaturePricing{
		InfraCostImpact:                f.InfraCostImpact,
		ProfessionalServicesCostImpact: f.ProfessionalServicesCostImpact,
	}
	if r.overlay != nil {
		if live, ok := r.overlay.Lookup(featureID); ok {
			p.InfraCostImpact = live
		}
	}
	return p
}
