package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lzplanner/lzplanner/internal/catalog"
	intmetrics "github.com/lzplanner/lzplanner/internal/metrics"
	"github.com/lzplanner/lzplanner/internal/store"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

// EstimateHandler is the submission and reporting boundary: it validates
// incoming configurations, resolves the tier, invokes the calculator, and
// persists the result. Unknown tiers and malformed payloads are rejected
// here with descriptive messages; nothing past this point errors on user
// input.
type EstimateHandler struct {
	resolver *catalog.Resolver
	calc     *costing.Calculator
	subs     *store.SubmissionStore
	validate *validator.Validate
}

func NewEstimateHandler(resolver *catalog.Resolver, calc *costing.Calculator, subs *store.SubmissionStore) *EstimateHandler {
	return &EstimateHandler{
		resolver: resolver,
		calc:     calc,
		subs:     subs,
		validate: validator.New(),
	}
}

type additionalCostPayload struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

type createEstimateRequest struct {
	PartnerName  string                  `json:"partnerName" validate:"required"`
	CustomerName string                  `json:"customerName"`
	Size         string                  `json:"size" validate:"required"`
	Features     []string                `json:"selectedFeatures"`
	ComputeUnits float64                 `json:"computeUnits" validate:"gte=0"`
	StorageTB    float64                 `json:"storageTB" validate:"gte=0"`
	Additional   []additionalCostPayload `json:"additionalCosts" validate:"dive"`

	// Telemetry is opaque behavioral data from the configurator UI,
	// stored verbatim for later reporting.
	Telemetry json.RawMessage `json:"telemetry"`
}

type createEstimateResponse struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"createdAt"`
	Breakdown costing.CostBreakdown `json:"breakdown"`
}

// Create handles POST /api/v1/estimates.
func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEstimateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		intmetrics.EstimatesRejected.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		intmetrics.EstimatesRejected.WithLabelValues("validation").Inc()
		writeError(w, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	tier, ok := h.resolver.Tier(costing.Size(req.Size))
	if !ok {
		intmetrics.EstimatesRejected.WithLabelValues("unknown_size").Inc()
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown configuration size %q", req.Size))
		return
	}

	additional := make([]costing.AdditionalCost, 0, len(req.Additional))
	for i, ac := range req.Additional {
		additional = append(additional, costing.AdditionalCost{
			ID:          strconv.Itoa(i + 1),
			Description: ac.Description,
			Amount:      ac.Amount,
		})
	}

	breakdown := h.calc.Calculate(tier, req.Features, req.ComputeUnits, req.StorageTB, additional)

	sub := store.Submission{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		PartnerName:  req.PartnerName,
		CustomerName: req.CustomerName,
		Size:         tier.Size,
		Features:     req.Features,
		ComputeUnits: req.ComputeUnits,
		StorageTB:    req.StorageTB,
		Additional:   additional,

		TotalFirstYearCost: breakdown.TotalFirstYearCost,
		Telemetry:          req.Telemetry,
	}
	h.subs.Save(sub)

	intmetrics.EstimatesSubmitted.WithLabelValues(string(tier.Size)).Inc()
	intmetrics.EstimateFirstYearUSD.Observe(breakdown.TotalFirstYearCost)
	intmetrics.StoredSubmissions.Set(float64(h.subs.Count()))

	writeJSON(w, http.StatusCreated, createEstimateResponse{
		ID:        sub.ID,
		CreatedAt: sub.CreatedAt,
		Breakdown: breakdown,
	})
}

// List handles GET /api/v1/estimates with optional filters.
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	subs := h.subs.List(filter)
	if subs == nil {
		subs = []store.Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(subs),
		"submissions": subs,
	})
}

// Get handles GET /api/v1/estimates/{id}.
func (h *EstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, ok := h.subs.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no submission with id %q", id))
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ExportCSV handles GET /api/v1/estimates/export, streaming the filtered
// submissions as a CSV report.
func (h *EstimateHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="estimates.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"id", "created_at", "partner", "customer", "size",
		"compute_units", "storage_tb", "selected_features", "total_first_year_usd",
	})
	for _, sub := range h.subs.List(filter) {
		cw.Write([]string{
			sub.ID,
			sub.CreatedAt.Format(time.RFC3339),
			sub.PartnerName,
			sub.CustomerName,
			string(sub.Size),
			strconv.FormatFloat(sub.ComputeUnits, 'f', -1, 64),
			strconv.FormatFloat(sub.StorageTB, 'f', -1, 64),
			strings.Join(sub.Features, ";"),
			strconv.FormatFloat(sub.TotalFirstYearCost, 'f', 2, 64),
		})
	}
	cw.Flush()
}

func parseListFilter(r *http.Request) (store.ListFilter, error) {
	q := r.URL.Query()
	f := store.ListFilter{
		Size:    costing.Size(q.Get("size")),
		Partner: q.Get("partner"),
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q: expected YYYY-MM-DD", v)
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q: expected YYYY-MM-DD", v)
		}
		// Inclusive end of day.
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		f.Limit = n
	}
	return f, nil
}
