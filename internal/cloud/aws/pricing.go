// Package aws fetches live list prices for catalog features from the AWS
// Price List API. The fetched figures overlay the static catalog's monthly
// infrastructure costs; every failure path degrades to the static values.
package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"

	intmetrics "github.com/lzplanner/lzplanner/internal/metrics"
	"github.com/lzplanner/lzplanner/internal/store"
)

// hoursPerMonth converts hourly list prices into monthly figures
// (365.2425 days/year * 24 / 12).
const hoursPerMonth = 730.5

// priceQuery describes how to turn one feature into a Price List query and
// a monthly cost estimate. monthlyQuantity is the assumed consumption used
// to scale the unit price (tunnel-hours, ingested GB, recorded items, and
// so on); the assumptions mirror the static catalog figures.
type priceQuery struct {
	serviceCode     string
	filters         map[string]string
	unit            string // price dimension unit to match; "" accepts any
	monthlyQuantity float64
}

// featureQueries maps catalog feature IDs to their Price List queries.
// Features absent here are priced statically only (free services and
// bundled managed-service effort).
var featureQueries = map[string]priceQuery{
	"guardduty": {
		serviceCode:     "AmazonGuardDuty",
		filters:         map[string]string{"group": "Paid-Events"},
		monthlyQuantity: 20, // millions of analyzed events
	},
	"security-hub": {
		serviceCode:     "AWSSecurityHub",
		filters:         map[string]string{"group": "Compliance Check"},
		monthlyQuantity: 60000, // security checks
	},
	"config-conformance": {
		serviceCode:     "AWSConfig",
		filters:         map[string]string{"group": "Configuration Item Recorded"},
		monthlyQuantity: 350000, // configuration items
	},
	"transit-gateway": {
		serviceCode:     "AmazonVPC",
		filters:         map[string]string{"operation": "TransitGatewayVPC"},
		unit:            "Hrs",
		monthlyQuantity: 3 * hoursPerMonth, // attachments
	},
	"site-to-site-vpn": {
		serviceCode:     "AmazonVPC",
		filters:         map[string]string{"group": "VPN Connection"},
		unit:            "Hrs",
		monthlyQuantity: 2 * hoursPerMonth, // redundant tunnels
	},
	"dns-firewall": {
		serviceCode:     "AmazonRoute53",
		filters:         map[string]string{"group": "DNS-Firewall-Queries"},
		monthlyQuantity: 140, // millions of queries
	},
	"backup-orchestration": {
		serviceCode:     "AWSBackup",
		filters:         map[string]string{"group": "AWS-Backup-Storage"},
		unit:            "GB-Mo",
		monthlyQuantity: 950, // warm backup storage GB
	},
	"patch-automation": {
		serviceCode:     "AWSSystemsManager",
		filters:         map[string]string{"group": "AWS-SSM-AdvInstances"},
		unit:            "Hrs",
		monthlyQuantity: 6 * hoursPerMonth, // advanced instances
	},
	"centralized-logging": {
		serviceCode:     "AmazonCloudWatch",
		filters:         map[string]string{"group": "Ingested Logs"},
		unit:            "GB",
		monthlyQuantity: 300, // ingested log GB
	},
	"anomaly-alerting": {
		serviceCode:     "AmazonCloudWatch",
		filters:         map[string]string{"group": "Alarm"},
		unit:            "Alarms",
		monthlyQuantity: 50,
	},
}

// PricingService fetches feature list prices and refreshes the shared
// pricing cache. Refreshes are coalesced: a trigger while one is already
// in flight returns immediately, and calculation callers are never gated.
type PricingService struct {
	client   *pricing.Client
	cache    *store.PricingCache
	location string

	inFlight atomic.Bool
}

// NewPricingService creates a PricingService. The Price List API is only
// served from us-east-1 regardless of the priced region; location selects
// the price list rows (e.g. "US East (N. Virginia)").
func NewPricingService(ctx context.Context, location string, cache *store.PricingCache) (*PricingService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("us-east-1"))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	if location == "" {
		location = "US East (N. Virginia)"
	}
	return &PricingService{
		client:   pricing.NewFromConfig(cfg),
		cache:    cache,
		location: location,
	}, nil
}

// Refresh fetches current list prices for all live-priced features and
// replaces the cache snapshot. A refresh already in flight coalesces the
// trigger. Errors are returned for status reporting but the previous cache
// contents stay untouched, so no caller ever observes a failed refresh as
// anything other than "still serving the old (or static) numbers".
func (s *PricingService) Refresh(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		slog.Info("pricing: refresh already in flight, coalescing")
		return nil
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	prices, err := s.fetchAll(ctx)
	if err != nil {
		intmetrics.PricingRefreshTotal.WithLabelValues("error").Inc()
		intmetrics.PricingFallbackActive.Set(1)
		return err
	}

	if removed := store.SanitizePrices(prices); removed > 0 {
		slog.Warn("pricing: removed invalid prices from API response", "removed", removed)
	}
	if len(prices) == 0 {
		intmetrics.PricingRefreshTotal.WithLabelValues("empty").Inc()
		intmetrics.PricingFallbackActive.Set(1)
		return fmt.Errorf("pricing API returned no usable prices")
	}

	s.cache.Replace(prices)
	intmetrics.PricingRefreshTotal.WithLabelValues("ok").Inc()
	intmetrics.PricingFallbackActive.Set(0)
	intmetrics.PricingLastLiveUpdate.Set(float64(time.Now().Unix()))
	slog.Info("pricing: refreshed feature prices",
		"features", len(prices), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// fetchAll resolves every feature query. Per-feature failures are logged
// and leave that feature absent from the snapshot (static fallback); only
// a fully failed fetch is an error.
func (s *PricingService) fetchAll(ctx context.Context) (map[string]float64, error) {
	ids := make([]string, 0, len(featureQueries))
	for id := range featureQueries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	prices := make(map[string]float64, len(ids))
	var lastErr error
	for _, id := range ids {
		q := featureQueries[id]
		unitPrice, err := s.fetchUnitPrice(ctx, q)
		if err != nil {
			slog.Warn("pricing: feature fetch failed, static fallback",
				"feature", id, "service", q.serviceCode, "error", err)
			lastErr = err
			continue
		}
		prices[id] = roundUSD(unitPrice * q.monthlyQuantity)
	}
	if len(prices) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return prices, nil
}

// fetchUnitPrice runs one GetProducts query and returns the lowest positive
// USD price whose dimension unit matches the query.
func (s *PricingService) fetchUnitPrice(ctx context.Context, q priceQuery) (float64, error) {
	filters := []pricingtypes.Filter{
		{Type: pricingtypes.FilterTypeTermMatch, Field: awscfg.String("ServiceCode"), Value: awscfg.String(q.serviceCode)},
		{Type: pricingtypes.FilterTypeTermMatch, Field: awscfg.String("location"), Value: awscfg.String(s.location)},
	}
	fields := make([]string, 0, len(q.filters))
	for f := range q.filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		filters = append(filters, pricingtypes.Filter{
			Type:  pricingtypes.FilterTypeTermMatch,
			Field: awscfg.String(f),
			Value: awscfg.String(q.filters[f]),
		})
	}

	input := &pricing.GetProductsInput{
		ServiceCode: awscfg.String(q.serviceCode),
		Filters:     filters,
		MaxResults:  awscfg.Int32(100),
	}

	best := math.Inf(1)
	const maxPages = 20 // safety limit to prevent unbounded pagination
	paginator := pricing.NewGetProductsPaginator(s.client, input)
	for page := 0; paginator.HasMorePages() && page < maxPages; page++ {
		result, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("getting pricing products: %w", err)
		}
		for _, item := range result.PriceList {
			if price, ok := parsePriceListItem(item, q.unit); ok && price < best {
				best = price
			}
		}
	}

	if math.IsInf(best, 1) {
		return 0, fmt.Errorf("no %s price dimension found for %s", q.unit, q.serviceCode)
	}
	return best, nil
}

// parsePriceListItem extracts the hourly/unit on-demand USD price from one
// PriceList JSON document. unit narrows which price dimension is accepted;
// an empty unit accepts any dimension.
func parsePriceListItem(priceJSON string, unit string) (price float64, ok bool) {
	var item struct {
		Terms struct {
			OnDemand map[string]struct {
				PriceDimensions map[string]struct {
					Unit         string            `json:"unit"`
					PricePerUnit map[string]string `json:"pricePerUnit"`
				} `json:"priceDimensions"`
			} `json:"OnDemand"`
		} `json:"terms"`
	}

	if err := json.Unmarshal([]byte(priceJSON), &item); err != nil {
		return 0, false
	}

	for _, offer := range item.Terms.OnDemand {
		for _, dim := range offer.PriceDimensions {
			if unit != "" && dim.Unit != unit {
				continue
			}
			usdStr, exists := dim.PricePerUnit["USD"]
			if !exists {
				continue
			}
			p, err := strconv.ParseFloat(usdStr, 64)
			if err != nil || p <= 0 {
				continue
			}
			return p, true
		}
	}
	return 0, false
}

// roundUSD rounds to whole cents; list prices carry up to ten decimal
// places and the noise is meaningless at monthly-estimate scale.
func roundUSD(v float64) float64 {
	return math.Round(v*100) / 100
}

// LivePricedFeatureIDs returns the feature IDs that have a live price
// query, sorted. Used by status reporting.
func LivePricedFeatureIDs() []string {
	ids := make([]string, 0, len(featureQueries))
	for id := range featureQueries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
