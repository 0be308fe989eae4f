package catalog

import "github.com/lzplanner/lzplanner/pkg/costing"

// tierDefs declares the four fixed landing zone tiers in ascending order.
// AvailableFeatures is intentionally left empty here: the resolver derives
// it from each feature's AvailableInSizes at construction time so the two
// encodings cannot drift apart.
var tierDefs = []costing.Tier{
	{
		Size:                            costing.SizeVerySmall,
		Name:                            "Very Small",
		Description:                     "Pilot landing zone for a handful of workloads in a single organization unit.",
		DefaultComputeUnits:             5,
		DefaultStorageTB:                2,
		BaseInfraCostPerMonth:           300,
		BaseProfessionalServicesCost:    10000,
		ManagedServicesCostPerUnit:      150,
		ManagedServicesCostPerTBStorage: 100,
		MandatoryFeatures:               []string{"identity-center", "account-vending"},
	},
	{
		Size:                            costing.SizeSmall,
		Name:                            "Small",
		Description:                     "Entry-level landing zone for a small production estate with separated workload accounts.",
		DefaultComputeUnits:             15,
		DefaultStorageTB:                5,
		BaseInfraCostPerMonth:           650,
		BaseProfessionalServicesCost:    18000,
		ManagedServicesCostPerUnit:      140,
		ManagedServicesCostPerTBStorage: 95,
		MandatoryFeatures:               []string{"identity-center", "account-vending", "centralized-logging"},
	},
	{
		Size:                            costing.SizeMedium,
		Name:                            "Medium",
		Description:                     "Multi-account landing zone with full security baseline and shared networking.",
		DefaultComputeUnits:             40,
		DefaultStorageTB:                20,
		BaseInfraCostPerMonth:           1400,
		BaseProfessionalServicesCost:    32000,
		ManagedServicesCostPerUnit:      130,
		ManagedServicesCostPerTBStorage: 90,
		MandatoryFeatures:               []string{"identity-center", "account-vending", "centralized-logging", "guardduty"},
	},
	{
		Size:                            costing.SizeLarge,
		Name:                            "Large",
		Description:                     "Enterprise landing zone spanning multiple business units and regions.",
		DefaultComputeUnits:             100,
		DefaultStorageTB:                50,
		BaseInfraCostPerMonth:           2800,
		BaseProfessionalServicesCost:    55000,
		ManagedServicesCostPerUnit:      120,
		ManagedServicesCostPerTBStorage: 85,
		MandatoryFeatures:               []string{"identity-center", "account-vending", "centralized-logging", "guardduty", "security-hub"},
	},
}
