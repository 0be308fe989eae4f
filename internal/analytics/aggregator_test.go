package analytics

import (
	"testing"
	"time"

	"github.com/lzplanner/lzplanner/internal/store"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	if s.SubmissionCount != 0 {
		t.Errorf("SubmissionCount = %d, want 0", s.SubmissionCount)
	}
	if s.AverageFirstYearUSD != 0 {
		t.Errorf("AverageFirstYearUSD = %v, want 0", s.AverageFirstYearUSD)
	}
	if len(s.PerDay) != 0 {
		t.Errorf("PerDay has %d entries, want 0", len(s.PerDay))
	}
}

func TestSummarize_TotalsAndAverage(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	subs := []store.Submission{
		{Size: costing.SizeVerySmall, TotalFirstYearCost: 18600, CreatedAt: now},
		{Size: costing.SizeSmall, TotalFirstYearCost: 31400, CreatedAt: now},
		{Size: costing.SizeSmall, TotalFirstYearCost: 28000, CreatedAt: now},
	}

	s := Summarize(subs)

	if s.SubmissionCount != 3 {
		t.Errorf("SubmissionCount = %d, want 3", s.SubmissionCount)
	}
	if s.TotalFirstYearUSD != 78000 {
		t.Errorf("TotalFirstYearUSD = %v, want 78000", s.TotalFirstYearUSD)
	}
	if s.AverageFirstYearUSD != 26000 {
		t.Errorf("AverageFirstYearUSD = %v, want 26000", s.AverageFirstYearUSD)
	}

	small := s.BySize[costing.SizeSmall]
	if small.Count != 2 {
		t.Errorf("BySize[small].Count = %d, want 2", small.Count)
	}
	if small.TotalFirstYearUSD != 59400 {
		t.Errorf("BySize[small].TotalFirstYearUSD = %v, want 59400", small.TotalFirstYearUSD)
	}
}

func TestSummarize_FeatureSelections(t *testing.T) {
	subs := []store.Submission{
		{Features: []string{"guardduty", "transit-gateway"}},
		{Features: []string{"guardduty"}},
		{Features: nil},
	}

	s := Summarize(subs)

	if s.FeatureSelections["guardduty"] != 2 {
		t.Errorf("FeatureSelections[guardduty] = %d, want 2", s.FeatureSelections["guardduty"])
	}
	if s.FeatureSelections["transit-gateway"] != 1 {
		t.Errorf("FeatureSelections[transit-gateway] = %d, want 1", s.FeatureSelections["transit-gateway"])
	}
}

func TestSummarize_PerDaySortedByDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC) }
	subs := []store.Submission{
		{CreatedAt: day(12)},
		{CreatedAt: day(10)},
		{CreatedAt: day(12)},
		{CreatedAt: day(11)},
	}

	s := Summarize(subs)

	want := []DayCount{
		{Date: "2026-03-10", Count: 1},
		{Date: "2026-03-11", Count: 1},
		{Date: "2026-03-12", Count: 2},
	}
	if len(s.PerDay) != len(want) {
		t.Fatalf("PerDay has %d entries, want %d", len(s.PerDay), len(want))
	}
	for i, w := range want {
		if s.PerDay[i] != w {
			t.Errorf("PerDay[%d] = %+v, want %+v", i, s.PerDay[i], w)
		}
	}
}
