package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lzplanner/lzplanner/pkg/costing"
)

func testSubmission(id, partner string, size costing.Size, createdAt time.Time) Submission {
	return Submission{
		ID:                 id,
		CreatedAt:          createdAt,
		PartnerName:        partner,
		CustomerName:       "ACME GmbH",
		Size:               size,
		Features:           []string{"guardduty", "centralized-logging"},
		ComputeUnits:       10,
		StorageTB:          4,
		TotalFirstYearCost: 42000,
		Telemetry:          json.RawMessage(`{"clicks":17}`),
	}
}

func TestSubmissionStore_SaveAndGet(t *testing.T) {
	s := NewSubmissionStore(nil, nil)

	sub := testSubmission("id-1", "CloudWorks", costing.SizeSmall, time.Now())
	s.Save(sub)

	got, ok := s.Get("id-1")
	if !ok {
		t.Fatal("Get(id-1) = miss, want hit")
	}
	if got.PartnerName != "CloudWorks" {
		t.Errorf("PartnerName = %q, want %q", got.PartnerName, "CloudWorks")
	}
	if got.TotalFirstYearCost != 42000 {
		t.Errorf("TotalFirstYearCost = %v, want 42000", got.TotalFirstYearCost)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}

func TestSubmissionStore_ListNewestFirst(t *testing.T) {
	s := NewSubmissionStore(nil, nil)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.Save(testSubmission(fmt.Sprintf("id-%d", i), "P", costing.SizeSmall, base.Add(time.Duration(i)*time.Hour)))
	}

	subs := s.List(ListFilter{})
	if len(subs) != 3 {
		t.Fatalf("List returned %d, want 3", len(subs))
	}
	if subs[0].ID != "id-2" || subs[2].ID != "id-0" {
		t.Errorf("order = [%s %s %s], want newest first", subs[0].ID, subs[1].ID, subs[2].ID)
	}
}

func TestSubmissionStore_ListFilters(t *testing.T) {
	s := NewSubmissionStore(nil, nil)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	s.Save(testSubmission("a", "CloudWorks Consulting", costing.SizeSmall, base))
	s.Save(testSubmission("b", "Nimbus Partners", costing.SizeMedium, base.AddDate(0, 0, 5)))
	s.Save(testSubmission("c", "cloudworks labs", costing.SizeSmall, base.AddDate(0, 0, 10)))

	if got := s.List(ListFilter{Size: costing.SizeSmall}); len(got) != 2 {
		t.Errorf("size filter returned %d, want 2", len(got))
	}

	// Partner match is a case-insensitive substring.
	if got := s.List(ListFilter{Partner: "cloudworks"}); len(got) != 2 {
		t.Errorf("partner filter returned %d, want 2", len(got))
	}

	got := s.List(ListFilter{From: base.AddDate(0, 0, 3), To: base.AddDate(0, 0, 7)})
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("date range filter = %v, want just b", ids(got))
	}

	if got := s.List(ListFilter{Limit: 2}); len(got) != 2 {
		t.Errorf("limit filter returned %d, want 2", len(got))
	}

	if got := s.List(ListFilter{Partner: "nobody"}); len(got) != 0 {
		t.Errorf("non-matching filter returned %d, want 0", len(got))
	}
}

func ids(subs []Submission) []string {
	var out []string
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func TestSubmissionStore_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lzplanner.db")
	db, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	defer db.Close()

	writer := NewWriter(db.RawDB(), 16)
	writer.Run(context.Background())

	s := NewSubmissionStore(db.RawDB(), writer)
	sub := testSubmission("persist-1", "CloudWorks", costing.SizeMedium, time.Now().UTC().Truncate(time.Second))
	s.Save(sub)
	writer.Drain()

	reloaded := NewSubmissionStore(db.RawDB(), nil)
	got, ok := reloaded.Get("persist-1")
	if !ok {
		t.Fatal("submission missing after reload")
	}
	if got.Size != costing.SizeMedium {
		t.Errorf("Size = %q, want %q", got.Size, costing.SizeMedium)
	}
	if len(got.Features) != 2 || got.Features[0] != "guardduty" {
		t.Errorf("Features = %v, want round-tripped selection", got.Features)
	}
	if got.TotalFirstYearCost != 42000 {
		t.Errorf("TotalFirstYearCost = %v, want snapshot 42000", got.TotalFirstYearCost)
	}
	if string(got.Telemetry) != `{"clicks":17}` {
		t.Errorf("Telemetry = %s, want opaque passthrough", got.Telemetry)
	}
}
