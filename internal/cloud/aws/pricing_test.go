package aws

import (
	"testing"
)

// ---------------------------------------------------------------------------
// parsePriceListItem
// ---------------------------------------------------------------------------

func priceListDoc(unit, usd string) string {
	return `{
		"product": {"productFamily": "Test"},
		"terms": {
			"OnDemand": {
				"OFFER.CODE": {
					"priceDimensions": {
						"OFFER.CODE.DIM": {
							"unit": "` + unit + `",
							"pricePerUnit": {"USD": "` + usd + `"}
						}
					}
				}
			}
		}
	}`
}

func TestParsePriceListItem(t *testing.T) {
	tests := []struct {
		name      string
		priceJSON string
		unit      string
		wantPrice float64
		wantOK    bool
	}{
		{
			name:      "matching unit",
			priceJSON: priceListDoc("Hrs", "0.05"),
			unit:      "Hrs",
			wantPrice: 0.05,
			wantOK:    true,
		},
		{
			name:      "any unit accepted when filter empty",
			priceJSON: priceListDoc("GB-Mo", "0.023"),
			unit:      "",
			wantPrice: 0.023,
			wantOK:    true,
		},
		{
			name:      "unit mismatch rejected",
			priceJSON: priceListDoc("GB-Mo", "0.023"),
			unit:      "Hrs",
			wantOK:    false,
		},
		{
			name:      "zero price skipped",
			priceJSON: priceListDoc("Hrs", "0.0000000000"),
			unit:      "Hrs",
			wantOK:    false,
		},
		{
			name:      "non-numeric price skipped",
			priceJSON: priceListDoc("Hrs", "free"),
			unit:      "Hrs",
			wantOK:    false,
		},
		{
			name: "non-USD currency skipped",
			priceJSON: `{"terms": {"OnDemand": {"O": {"priceDimensions": {"D": {
				"unit": "Hrs", "pricePerUnit": {"CNY": "0.35"}
			}}}}}}`,
			unit:   "Hrs",
			wantOK: false,
		},
		{
			name:      "malformed json",
			priceJSON: `{"terms": `,
			unit:      "Hrs",
			wantOK:    false,
		},
		{
			name:      "no on-demand terms",
			priceJSON: `{"terms": {"OnDemand": {}}}`,
			unit:      "Hrs",
			wantOK:    false,
		},
		{
			name:      "high precision list price",
			priceJSON: priceListDoc("Hrs", "0.0000004600"),
			unit:      "Hrs",
			wantPrice: 0.00000046,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := parsePriceListItem(tt.priceJSON, tt.unit)
			if ok != tt.wantOK {
				t.Fatalf("parsePriceListItem() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && price != tt.wantPrice {
				t.Errorf("parsePriceListItem() price = %v, want %v", price, tt.wantPrice)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// roundUSD
// ---------------------------------------------------------------------------

func TestRoundUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.0456 * 730.5, 33.31},
		{2.718, 2.72},
		{0.004, 0.0},
		{85.0, 85.0},
	}

	for _, tt := range tests {
		if got := roundUSD(tt.in); got != tt.want {
			t.Errorf("roundUSD(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// featureQueries
// ---------------------------------------------------------------------------

func TestLivePricedFeatureIDs_SortedAndComplete(t *testing.T) {
	ids := LivePricedFeatureIDs()

	if len(ids) != len(featureQueries) {
		t.Fatalf("got %d ids, want %d", len(ids), len(featureQueries))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("ids not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
	for _, id := range ids {
		if _, ok := featureQueries[id]; !ok {
			t.Errorf("id %q has no query", id)
		}
	}
}

func TestFeatureQueries_HaveServiceCodeAndQuantity(t *testing.T) {
	for id, q := range featureQueries {
		if q.serviceCode == "" {
			t.Errorf("feature %q has empty service code", id)
		}
		if q.monthlyQuantity <= 0 {
			t.Errorf("feature %q has non-positive monthly quantity %v", id, q.monthlyQuantity)
		}
	}
}
