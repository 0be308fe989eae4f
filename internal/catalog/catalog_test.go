package catalog

import (
	"testing"

	"github.com/lzplanner/lzplanner/pkg/costing"
)

// fakeOverlay is a controllable pricing overlay for resolver tests.
type fakeOverlay struct {
	prices map[string]float64
	fresh  bool
}

func (o *fakeOverlay) Lookup(featureID string) (float64, bool) {
	if !o.fresh {
		return 0, false
	}
	p, ok := o.prices[featureID]
	return p, ok
}

func TestNewResolver_CatalogIsValid(t *testing.T) {
	if _, err := NewResolver(nil); err != nil {
		t.Fatalf("NewResolver(nil) returned error: %v", err)
	}
}

func TestResolver_TierLookup(t *testing.T) {
	r, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	for _, size := range costing.Sizes {
		tier, ok := r.Tier(size)
		if !ok {
			t.Errorf("Tier(%q) not found", size)
			continue
		}
		if tier.Size != size {
			t.Errorf("Tier(%q).Size = %q", size, tier.Size)
		}
	}

	if _, ok := r.Tier("extra-large"); ok {
		t.Error("Tier(\"extra-large\") = found, want miss")
	}
	if _, ok := r.Tier(""); ok {
		t.Error("Tier(\"\") = found, want miss")
	}
}

func TestResolver_VerySmallTierConstants(t *testing.T) {
	r, _ := NewResolver(nil)
	tier, ok := r.Tier(costing.SizeVerySmall)
	if !ok {
		t.Fatal("very-small tier missing")
	}

	if tier.BaseInfraCostPerMonth != 300 {
		t.Errorf("BaseInfraCostPerMonth = %v, want 300", tier.BaseInfraCostPerMonth)
	}
	if tier.BaseProfessionalServicesCost != 10000 {
		t.Errorf("BaseProfessionalServicesCost = %v, want 10000", tier.BaseProfessionalServicesCost)
	}
	if tier.ManagedServicesCostPerUnit != 150 {
		t.Errorf("ManagedServicesCostPerUnit = %v, want 150", tier.ManagedServicesCostPerUnit)
	}
	if tier.ManagedServicesCostPerTBStorage != 100 {
		t.Errorf("ManagedServicesCostPerTBStorage = %v, want 100", tier.ManagedServicesCostPerTBStorage)
	}
}

func TestResolver_MandatoryFeaturesAreAvailable(t *testing.T) {
	r, _ := NewResolver(nil)
	for _, tier := range r.Tiers() {
		for _, id := range tier.MandatoryFeatures {
			if !tier.HasFeature(id) {
				t.Errorf("tier %q: mandatory feature %q not in available set", tier.Size, id)
			}
		}
	}
}

func TestResolver_FeaturesForTierPreservesDeclarationOrder(t *testing.T) {
	r, _ := NewResolver(nil)

	feats := r.FeaturesForTier(costing.SizeLarge)
	if len(feats) != len(featureDefs) {
		t.Fatalf("large tier offers %d features, want all %d", len(feats), len(featureDefs))
	}
	for i, f := range feats {
		if f.ID != featureDefs[i].ID {
			t.Errorf("position %d = %q, want %q", i, f.ID, featureDefs[i].ID)
		}
	}
}

func TestResolver_FeaturesForTierFiltersBySize(t *testing.T) {
	r, _ := NewResolver(nil)

	for _, f := range r.FeaturesForTier(costing.SizeVerySmall) {
		if !f.AvailableIn(costing.SizeVerySmall) {
			t.Errorf("feature %q offered for very-small but not available in that size", f.ID)
		}
	}

	// Spot checks against the catalog.
	ids := make(map[string]bool)
	for _, f := range r.FeaturesForTier(costing.SizeVerySmall) {
		ids[f.ID] = true
	}
	if ids["transit-gateway"] {
		t.Error("transit-gateway offered for very-small, want small and up only")
	}
	if ids["siem-forwarding"] {
		t.Error("siem-forwarding offered for very-small, want medium and up only")
	}
	if !ids["guardduty"] {
		t.Error("guardduty missing for very-small")
	}
}

func TestResolver_FeaturesForTierUnknownSize(t *testing.T) {
	r, _ := NewResolver(nil)
	if got := r.FeaturesForTier("galactic"); len(got) != 0 {
		t.Errorf("FeaturesForTier(unknown) returned %d features, want 0", len(got))
	}
}

func TestResolver_FeaturePricingStatic(t *testing.T) {
	r, _ := NewResolver(nil)

	p := r.FeaturePricing("guardduty")
	if p.InfraCostImpact != 85 {
		t.Errorf("InfraCostImpact = %v, want 85", p.InfraCostImpact)
	}
	if p.ProfessionalServicesCostImpact != 800 {
		t.Errorf("ProfessionalServicesCostImpact = %v, want 800", p.ProfessionalServicesCostImpact)
	}
}

func TestResolver_FeaturePricingUnknownIsZero(t *testing.T) {
	r, _ := NewResolver(nil)
	p := r.FeaturePricing("no-such-feature")
	if p.InfraCostImpact != 0 || p.ProfessionalServicesCostImpact != 0 {
		t.Errorf("FeaturePricing(unknown) = %+v, want zero", p)
	}
}

func TestResolver_OverlaySubstitutesMonthlyOnly(t *testing.T) {
	overlay := &fakeOverlay{
		fresh:  true,
		prices: map[string]float64{"guardduty": 123.45},
	}
	r, _ := NewResolver(overlay)

	p := r.FeaturePricing("guardduty")
	if p.InfraCostImpact != 123.45 {
		t.Errorf("InfraCostImpact = %v, want overlaid 123.45", p.InfraCostImpact)
	}
	// One-time services cost always comes from the static catalog.
	if p.ProfessionalServicesCostImpact != 800 {
		t.Errorf("ProfessionalServicesCostImpact = %v, want static 800", p.ProfessionalServicesCostImpact)
	}
}

func TestResolver_OverlayZeroIsHonored(t *testing.T) {
	overlay := &fakeOverlay{
		fresh:  true,
		prices: map[string]float64{"security-hub": 0},
	}
	r, _ := NewResolver(overlay)

	if p := r.FeaturePricing("security-hub"); p.InfraCostImpact != 0 {
		t.Errorf("InfraCostImpact = %v, want explicit 0 from overlay", p.InfraCostImpact)
	}
}

func TestResolver_StaleOverlayFallsBackToStatic(t *testing.T) {
	overlay := &fakeOverlay{
		fresh:  false,
		prices: map[string]float64{"guardduty": 999},
	}
	r, _ := NewResolver(overlay)

	if p := r.FeaturePricing("guardduty"); p.InfraCostImpact != 85 {
		t.Errorf("InfraCostImpact = %v, want static 85 when overlay is stale", p.InfraCostImpact)
	}
}

func TestResolver_OverlayMissFallsBackToStatic(t *testing.T) {
	overlay := &fakeOverlay{fresh: true, prices: map[string]float64{}}
	r, _ := NewResolver(overlay)

	if p := r.FeaturePricing("guardduty"); p.InfraCostImpact != 85 {
		t.Errorf("InfraCostImpact = %v, want static 85 on overlay miss", p.InfraCostImpact)
	}
}
