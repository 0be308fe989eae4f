// Package analytics aggregates stored submissions for reporting. It only
// reads the persisted snapshots; the calculator is never involved, so the
// figures reflect what each customer was actually quoted at the time.
package analytics

import (
	"sort"

	"github.com/lzplanner/lzplanner/internal/store"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

// Summary is the aggregate view over a set of submissions.
type Summary struct {
	SubmissionCount     int     `json:"submissionCount"`
	TotalFirstYearUSD   float64 `json:"totalFirstYearUSD"`
	AverageFirstYearUSD float64 `json:"averageFirstYearUSD"`

	BySize            map[costing.Size]SizeSummary `json:"bySize"`
	FeatureSelections map[string]int               `json:"featureSelections"`
	PerDay            []DayCount                   `json:"perDay"`
}

// SizeSummary aggregates submissions for one tier.
type SizeSummary struct {
	Count             int     `json:"count"`
	TotalFirstYearUSD float64 `json:"totalFirstYearUSD"`
}

// DayCount is the number of submissions received on one calendar day.
type DayCount struct {
	Date  string `json:"date"` // 2006-01-02
	Count int    `json:"count"`
}

// Summarize aggregates the given submissions.
func Summarize(subs []store.Submission) Summary {
	s := Summary{
		BySize:            make(map[costing.Size]SizeSummary),
		FeatureSelections: make(map[string]int),
	}

	perDay := make(map[string]int)
	for _, sub := range subs {
		s.SubmissionCount++
		s.TotalFirstYearUSD += sub.TotalFirstYearCost

		sz := s.BySize[sub.Size]
		sz.Count++
		sz.TotalFirstYearUSD += sub.TotalFirstYearCost
		s.BySize[sub.Size] = sz

		for _, id := range sub.Features {
			s.FeatureSelections[id]++
		}

		perDay[sub.CreatedAt.Format("2006-01-02")]++
	}

	if s.SubmissionCount > 0 {
		s.AverageFirstYearUSD = s.TotalFirstYearUSD / float64(s.SubmissionCount)
	}

	for date, count := range perDay {
		s.PerDay = append(s.PerDay, DayCount{Date: date, Count: count})
	}
	sort.Slice(s.PerDay, func(i, j int) bool { return s.PerDay[i].Date < s.PerDay[j].Date })

	return s
}
