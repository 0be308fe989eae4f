package catalog

import "github.com/lzplanner/lzplanner/pkg/costing"

var allSizes = []costing.Size{costing.SizeVerySmall, costing.SizeSmall, costing.SizeMedium, costing.SizeLarge}
var smallAndUp = []costing.Size{costing.SizeSmall, costing.SizeMedium, costing.SizeLarge}
var mediumAndUp = []costing.Size{costing.SizeMedium, costing.SizeLarge}

// featureDefs declares the add-on catalog. Declaration order is the display
// order and must stay stable: list endpoints and the quote PDF preserve it.
// InfraCostImpact is the static monthly USD figure used whenever no fresh
// live price is cached for the feature's ServiceCode.
var featureDefs = []costing.Feature{
	{
		ID:          "identity-center",
		Name:        "IAM Identity Center",
		Description: "Workforce SSO with permission sets mapped to the account structure.",
		Category:    costing.CategoryFoundation,
		Mandatory:   true,
		// The service itself is free; the cost is setup effort.
		InfraCostImpact:                0,
		ProfessionalServicesCostImpact: 1600,
		AvailableInSizes:               allSizes,
	},
	{
		ID:                             "account-vending",
		Name:                           "Account Vending",
		Description:                    "Automated account provisioning with baseline guardrails.",
		Category:                       costing.CategoryFoundation,
		Mandatory:                      true,
		InfraCostImpact:                40,
		ProfessionalServicesCostImpact: 2400,
		AvailableInSizes:               allSizes,
	},
	{
		ID:                             "guardduty",
		Name:                           "GuardDuty Threat Detection",
		Description:                    "Organization-wide threat detection across all member accounts.",
		Category:                       costing.CategorySecurity,
		InfraCostImpact:                85,
		ProfessionalServicesCostImpact: 800,
		AvailableInSizes:               allSizes,
		ServiceCode:                    "AmazonGuardDuty",
	},
	{
		ID:                             "security-hub",
		Name:                           "Security Hub",
		Description:                    "Aggregated security findings and compliance standards.",
		Category:                       costing.CategorySecurity,
		InfraCostImpact:                60,
		ProfessionalServicesCostImpact: 1200,
		AvailableInSizes:               allSizes,
		ServiceCode:                    "AWSSecurityHub",
	},
	{
		ID:                             "config-conformance",
		Name:                           "Config Conformance Packs",
		Description:                    "Recorded resource configuration evaluated against conformance packs.",
		Category:                       costing.CategorySecurity,
		InfraCostImpact:                110,
		ProfessionalServicesCostImpact: 1500,
		AvailableInSizes:               smallAndUp,
		ServiceCode:                    "AWSConfig",
	},
	{
		ID:                             "siem-forwarding",
		Name:                           "SIEM Forwarding",
		Description:                    "Security telemetry forwarded to the customer's SIEM platform.",
		Category:                       costing.CategorySecurity,
		InfraCostImpact:                240,
		ProfessionalServicesCostImpact: 5200,
		AvailableInSizes:               mediumAndUp,
	},
	{
		ID:                             "transit-gateway",
		Name:                           "Transit Gateway",
		Description:                    "Hub-and-spoke connectivity between workload VPCs and on-premises.",
		Category:                       costing.CategoryNetworking,
		InfraCostImpact:                185,
		ProfessionalServicesCostImpact: 2800,
		AvailableInSizes:               smallAndUp,
		ServiceCode:                    "AmazonVPC",
	},
	{
		ID:                             "site-to-site-vpn",
		Name:                           "Site-to-Site VPN",
		Description:                    "Redundant IPsec tunnels to the on-premises network.",
		Category:                       costing.CategoryNetworking,
		InfraCostImpact:                73,
		ProfessionalServicesCostImpact: 900,
		AvailableInSizes:               allSizes,
		ServiceCode:                    "AmazonVPC",
	},
	{
		ID:                             "dns-firewall",
		Name:                           "DNS Firewall",
		Description:                    "Route 53 Resolver DNS Firewall with managed domain lists.",
		Category:                       costing.CategoryNetworking,
		InfraCostImpact:                140,
		ProfessionalServicesCostImpact: 1100,
		AvailableInSizes:               mediumAndUp,
		ServiceCode:                    "AmazonRoute53",
	},
	{
		ID:                             "backup-orchestration",
		Name:                           "Backup Orchestration",
		Description:                    "Centralized backup plans with cross-account vaults.",
		Category:                       costing.CategoryAutomation,
		InfraCostImpact:                95,
		ProfessionalServicesCostImpact: 1400,
		AvailableInSizes:               allSizes,
		ServiceCode:                    "AWSBackup",
	},
	{
		ID:                             "patch-automation",
		Name:                           "Patch Automation",
		Description:                    "Scheduled patch baselines via Systems Manager.",
		Category:                       costing.CategoryAutomation,
		InfraCostImpact:                30,
		ProfessionalServicesCostImpact: 1300,
		AvailableInSizes:               smallAndUp,
		ServiceCode:                    "AWSSystemsManager",
	},
	{
		ID:                             "drift-remediation",
		Name:                           "Drift Remediation",
		Description:                    "Automatic rollback of out-of-band changes to baseline resources.",
		Category:                       costing.CategoryAutomation,
		InfraCostImpact:                55,
		ProfessionalServicesCostImpact: 2600,
		AvailableInSizes:               mediumAndUp,
	},
	{
		ID:                             "centralized-logging",
		Name:                           "Centralized Logging",
		Description:                    "Organization trail and log archive account with lifecycle policies.",
		Category:                       costing.CategoryMonitoring,
		Mandatory:                      true,
		InfraCostImpact:                150,
		ProfessionalServicesCostImpact: 1800,
		AvailableInSizes:               allSizes,
		ServiceCode:                    "AmazonCloudWatch",
	},
	{
		ID:                             "cost-dashboards",
		Name:                           "Cost Dashboards",
		Description:                    "Per-account spend dashboards with budget notifications.",
		Category:                       costing.CategoryMonitoring,
		InfraCostImpact:                25,
		ProfessionalServicesCostImpact: 700,
		AvailableInSizes:               allSizes,
	},
	{
		ID:                             "anomaly-alerting",
		Name:                           "Anomaly Alerting",
		Description:                    "Metric anomaly detection wired into the on-call escalation path.",
		Category:                       costing.CategoryMonitoring,
		InfraCostImpact:                45,
		ProfessionalServicesCostImpact: 950,
		AvailableInSizes:               mediumAndUp,
		ServiceCode:                    "AmazonCloudWatch",
	},
}
