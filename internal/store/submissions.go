package store

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lzplanner/lzplanner/pkg/costing"
)

// Submission is one persisted estimate: the original selection inputs, the
// opaque telemetry payload, and a snapshot of the first-year total computed
// at submission time. The total is never recomputed, so later catalog or
// pricing changes cannot alter historical records.
type Submission struct {
	ID           string                   `json:"id"`
	CreatedAt    time.Time                `json:"createdAt"`
	PartnerName  string                   `json:"partnerName"`
	CustomerName string                   `json:"customerName"`
	Size         costing.Size             `json:"size"`
	Features     []string                 `json:"selectedFeatures"`
	ComputeUnits float64                  `json:"computeUnits"`
	StorageTB    float64                  `json:"storageTB"`
	Additional   []costing.AdditionalCost `json:"additionalCosts"`

	TotalFirstYearCost float64 `json:"totalFirstYearCost"`

	// Telemetry is behavioral data captured by the configurator UI. It is
	// stored verbatim and never interpreted server-side.
	Telemetry json.RawMessage `json:"telemetry,omitempty"`
}

// ListFilter narrows a listing. Zero values mean "no constraint".
type ListFilter struct {
	Size    costing.Size
	Partner string // case-insensitive substring match
	From    time.Time
	To      time.Time
	Limit   int
}

// SubmissionStore keeps submissions in an in-memory map, with nil-safe
// write-behind persistence to SQLite. When a database is present, rows are
// loaded back at startup so the in-memory view survives restarts.
type SubmissionStore struct {
	writer *Writer

	mu    sync.RWMutex
	byID  map[string]Submission
	order []string // insertion order, oldest first
}

// NewSubmissionStore creates the store. db and writer may be nil, in which
// case the store is purely in-memory.
func NewSubmissionStore(db *sql.DB, writer *Writer) *SubmissionStore {
	s := &SubmissionStore{
		writer: writer,
		byID:   make(map[string]Submission),
	}
	if db != nil {
		s.loadPersisted(db)
	}
	return s
}

// Save records a submission and enqueues its persistence.
func (s *SubmissionStore) Save(sub Submission) {
	s.mu.Lock()
	if _, exists := s.byID[sub.ID]; !exists {
		s.order = append(s.order, sub.ID)
	}
	s.byID[sub.ID] = sub
	s.mu.Unlock()

	if s.writer == nil {
		return
	}
	s.writer.Enqueue(func(db *sql.DB) {
		persistSubmission(db, sub)
	})
}

// Get returns a submission by ID.
func (s *SubmissionStore) Get(id string) (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.byID[id]
	return sub, ok
}

// Count returns the number of stored submissions.
func (s *SubmissionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// List returns submissions matching the filter, newest first.
func (s *SubmissionStore) List(f ListFilter) []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partner := strings.ToLower(f.Partner)
	var out []Submission
	for i := len(s.order) - 1; i >= 0; i-- {
		sub := s.byID[s.order[i]]
		if f.Size != "" && sub.Size != f.Size {
			continue
		}
		if partner != "" && !strings.Contains(strings.ToLower(sub.PartnerName), partner) {
			continue
		}
		if !f.From.IsZero() && sub.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && sub.CreatedAt.After(f.To) {
			continue
		}
		out = append(out, sub)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out
}

func persistSubmission(db *sql.DB, sub Submission) {
	features, err := json.Marshal(sub.Features)
	if err != nil {
		features = []byte("[]")
	}
	additional, err := json.Marshal(sub.Additional)
	if err != nil {
		additional = []byte("[]")
	}
	telemetry := sub.Telemetry
	if len(telemetry) == 0 {
		telemetry = json.RawMessage("{}")
	}

	if _, err := db.Exec(
		`INSERT OR REPLACE INTO submissions
		 (id, created_at, partner_name, customer_name, size, selected_features,
		  compute_units, storage_tb, additional_costs, total_first_year_cost, telemetry)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.CreatedAt.Format(time.RFC3339), sub.PartnerName, sub.CustomerName,
		string(sub.Size), string(features), sub.ComputeUnits, sub.StorageTB,
		string(additional), sub.TotalFirstYearCost, string(telemetry),
	); err != nil {
		slog.Error("submission store: persist", "id", sub.ID, "error", err)
	}
}

func (s *SubmissionStore) loadPersisted(db *sql.DB) {
	rows, err := db.Query(
		`SELECT id, created_at, partner_name, customer_name, size, selected_features,
		        compute_units, storage_tb, additional_costs, total_first_year_cost, telemetry
		 FROM submissions ORDER BY created_at ASC`,
	)
	if err != nil {
		slog.Error("submission store: load", "error", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var sub Submission
		var createdAt, size, features, additional, telemetry string
		if err := rows.Scan(
			&sub.ID, &createdAt, &sub.PartnerName, &sub.CustomerName, &size, &features,
			&sub.ComputeUnits, &sub.StorageTB, &additional, &sub.TotalFirstYearCost, &telemetry,
		); err != nil {
			continue
		}
		sub.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sub.Size = costing.Size(size)
		if err := json.Unmarshal([]byte(features), &sub.Features); err != nil {
			sub.Features = nil
		}
		if err := json.Unmarshal([]byte(additional), &sub.Additional); err != nil {
			sub.Additional = nil
		}
		sub.Telemetry = json.RawMessage(telemetry)

		s.byID[sub.ID] = sub
		s.order = append(s.order, sub.ID)
	}
}
