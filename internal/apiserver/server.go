package apiserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lzplanner/lzplanner/internal/apiserver/handler"
	"github.com/lzplanner/lzplanner/internal/catalog"
	"github.com/lzplanner/lzplanner/internal/config"
	"github.com/lzplanner/lzplanner/internal/store"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

// NewServer creates the HTTP server for the REST API.
func NewServer(cfg *config.Config, resolver *catalog.Resolver, calc *costing.Calculator, subs *store.SubmissionStore, pricingCache *store.PricingCache, refresher handler.Refresher) *http.Server {
	router := NewRouter(resolver, calc, subs, pricingCache, refresher)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
