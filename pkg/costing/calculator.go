package costing

// FeatureSource answers the two catalog queries the calculator needs:
// which features a tier offers, and what a feature currently costs. The
// pricing side may be backed by a live overlay; the calculator does not
// care and must not be able to tell.
type FeatureSource interface {
	// FeaturesForTier returns the features offered in the given size, in
	// catalog declaration order.
	FeaturesForTier(size Size) []Feature
	// FeaturePricing returns the effective costs for a feature. Unknown
	// IDs yield a zero pricing, never an error.
	FeaturePricing(featureID string) FeaturePricing
}

// Calculator produces itemized cost breakdowns for a landing zone
// configuration. Calculate is pure and side-effect free, so it is safe to
// invoke on every user input change and from concurrent requests.
type Calculator struct {
	source             FeatureSource
	migrationCostPerVM float64
}

// NewCalculator creates a Calculator over the given feature source.
// A non-positive migrationCostPerVM selects the static default rate.
func NewCalculator(source FeatureSource, migrationCostPerVM float64) *Calculator {
	if migrationCostPerVM <= 0 {
		migrationCostPerVM = DefaultMigrationCostPerVM
	}
	return &Calculator{source: source, migrationCostPerVM: migrationCostPerVM}
}

// MigrationCostPerVM returns the per-VM migration rate in effect.
func (c *Calculator) MigrationCostPerVM() float64 {
	return c.migrationCostPerVM
}

// Calculate combines the tier's base pricing, the effective feature
// selection, and the resource quantities into a complete breakdown.
//
// Selected feature IDs that are not offered in the tier's size are dropped
// silently; duplicate IDs count once. The function never fails: it assumes
// the tier was resolved by the catalog and that quantities are non-negative
// well-typed numbers, and callers validate inputs before invoking it.
func (c *Calculator) Calculate(tier Tier, selectedFeatureIDs []string, computeUnits, storageTB float64, additionalCosts []AdditionalCost) CostBreakdown {
	selected := make(map[string]bool, len(selectedFeatureIDs))
	for _, id := range selectedFeatureIDs {
		selected[id] = true
	}

	// Intersect the selection with the features actually offered in this
	// size. Iterating the catalog side keeps the result deterministic.
	var featureInfra, featureServices float64
	for _, f := range c.source.FeaturesForTier(tier.Size) {
		if !selected[f.ID] {
			continue
		}
		pricing := c.source.FeaturePricing(f.ID)
		featureInfra += pricing.InfraCostImpact
		featureServices += pricing.ProfessionalServicesCostImpact
	}

	var additionalTotal float64
	for _, ac := range additionalCosts {
		additionalTotal += ac.Amount
	}

	b := CostBreakdown{
		BaseInfrastructureCost:     tier.BaseInfraCostPerMonth,
		FeaturesInfrastructureCost: featureInfra,

		BaseProfessionalServicesCost:     tier.BaseProfessionalServicesCost,
		FeaturesProfessionalServicesCost: featureServices,
		AdditionalCostsTotal:             additionalTotal,

		MigrationCostPerVM: c.migrationCostPerVM,
		MigrationVMCount:   computeUnits,

		ManagedServicesComputeCost: computeUnits * tier.ManagedServicesCostPerUnit,
		ManagedServicesStorageCost: storageTB * tier.ManagedServicesCostPerTBStorage,
	}

	b.TotalInfrastructureCost = b.BaseInfrastructureCost + b.FeaturesInfrastructureCost
	b.TotalProfessionalServicesCost = b.BaseProfessionalServicesCost + b.FeaturesProfessionalServicesCost + b.AdditionalCostsTotal
	b.MigrationCost = b.MigrationVMCount * b.MigrationCostPerVM
	b.TotalManagedServicesCost = b.ManagedServicesComputeCost + b.ManagedServicesStorageCost

	// Professional services and migration are one-time and excluded from
	// the monthly figure.
	b.TotalMonthlyCost = b.TotalInfrastructureCost + b.TotalManagedServicesCost
	b.TotalFirstYearCost = b.TotalMonthlyCost*MonthsPerYear + b.TotalProfessionalServicesCost + b.MigrationCost

	return b
}
