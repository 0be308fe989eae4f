// Package costing holds the landing zone cost model: size tiers, add-on
// features, and the breakdown produced by the calculator.
package costing

// MonthsPerYear converts a recurring monthly figure into the first-year
// projection used by the quote.
const MonthsPerYear = 12

// DefaultMigrationCostPerVM is the static per-VM migration rate in USD,
// used unless overridden via configuration.
const DefaultMigrationCostPerVM = 300.0

// Size identifies one of the four fixed landing zone size tiers.
type Size string

const (
	SizeVerySmall Size = "very-small"
	SizeSmall     Size = "small"
	SizeMedium    Size = "medium"
	SizeLarge     Size = "large"
)

// Sizes lists all valid tiers in ascending order.
var Sizes = []Size{SizeVerySmall, SizeSmall, SizeMedium, SizeLarge}

// Category groups features for display. It carries no pricing semantics.
type Category string

const (
	CategoryFoundation Category = "foundation"
	CategorySecurity   Category = "security"
	CategoryNetworking Category = "networking"
	CategoryAutomation Category = "automation"
	CategoryMonitoring Category = "monitoring"
)

// Tier is a fixed landing zone size bracket with its base pricing and
// feature availability. Tiers are defined at startup and never mutated.
type Tier struct {
	Size        Size   `json:"size"`
	Name        string `json:"name"`
	Description string `json:"description"`

	DefaultComputeUnits int `json:"defaultComputeUnits"`
	DefaultStorageTB    int `json:"defaultStorageTB"`

	BaseInfraCostPerMonth        float64 `json:"baseInfraCostPerMonth"`
	BaseProfessionalServicesCost float64 `json:"baseProfessionalServicesCost"`

	ManagedServicesCostPerUnit      float64 `json:"managedServicesCostPerUnit"`
	ManagedServicesCostPerTBStorage float64 `json:"managedServicesCostPerTBStorage"`

	AvailableFeatures []string `json:"availableFeatures"`
	MandatoryFeatures []string `json:"mandatoryFeatures"`
}

// HasFeature reports whether the feature is offered for this tier.
func (t Tier) HasFeature(featureID string) bool {
	for _, id := range t.AvailableFeatures {
		if id == featureID {
			return true
		}
	}
	return false
}

// IsMandatory reports whether the feature is mandatory for this tier.
func (t Tier) IsMandatory(featureID string) bool {
	for _, id := range t.MandatoryFeatures {
		if id == featureID {
			return true
		}
	}
	return false
}

// Feature is an optional or mandatory add-on capability. InfraCostImpact is
// a recurring monthly USD delta; ProfessionalServicesCostImpact is a
// one-time USD delta. ServiceCode links the feature to an AWS Price List
// service for live pricing; empty means static pricing only.
type Feature struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Mandatory   bool     `json:"mandatory"`

	InfraCostImpact                float64 `json:"infraCostImpact"`
	ProfessionalServicesCostImpact float64 `json:"professionalServicesCostImpact"`

	AvailableInSizes []Size `json:"availableInSizes"`

	ServiceCode string `json:"-"`
}

// AvailableIn reports whether the feature is offered in the given size.
func (f Feature) AvailableIn(size Size) bool {
	for _, s := range f.AvailableInSizes {
		if s == size {
			return true
		}
	}
	return false
}

// FeaturePricing is the effective cost pair for a single feature, after any
// live pricing overlay has been applied to the monthly component.
type FeaturePricing struct {
	InfraCostImpact                float64 `json:"infraCostImpact"`
	ProfessionalServicesCostImpact float64 `json:"professionalServicesCostImpact"`
}

// AdditionalCost is an ad hoc one-time line item attached by the caller.
// It sums directly into the professional services total.
type AdditionalCost struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// CostBreakdown is the calculator's output: four cost buckets, each split
// into a base amount and the delta contributed by selections or quantities,
// plus the two grand totals. It is recomputed on every call and never
// cached.
type CostBreakdown struct {
	// Infrastructure (monthly).
	BaseInfrastructureCost     float64 `json:"baseInfrastructureCost"`
	FeaturesInfrastructureCost float64 `json:"featuresInfrastructureCost"`
	TotalInfrastructureCost    float64 `json:"totalInfrastructureCost"`

	// Professional services (one-time).
	BaseProfessionalServicesCost     float64 `json:"baseProfessionalServicesCost"`
	FeaturesProfessionalServicesCost float64 `json:"featuresProfessionalServicesCost"`
	AdditionalCostsTotal             float64 `json:"additionalCostsTotal"`
	TotalProfessionalServicesCost    float64 `json:"totalProfessionalServicesCost"`

	// Migration (one-time). VMCount mirrors the compute unit count.
	MigrationCostPerVM float64 `json:"migrationCostPerVM"`
	MigrationVMCount   float64 `json:"migrationVMCount"`
	MigrationCost      float64 `json:"migrationCost"`

	// Managed services (monthly).
	ManagedServicesComputeCost float64 `json:"managedServicesComputeCost"`
	ManagedServicesStorageCost float64 `json:"managedServicesStorageCost"`
	TotalManagedServicesCost   float64 `json:"totalManagedServicesCost"`

	TotalMonthlyCost   float64 `json:"totalMonthlyCost"`
	TotalFirstYearCost float64 `json:"totalFirstYearCost"`
}
