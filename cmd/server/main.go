package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/lzplanner/lzplanner/internal/apiserver"
	"github.com/lzplanner/lzplanner/internal/apiserver/handler"
	"github.com/lzplanner/lzplanner/internal/catalog"
	"github.com/lzplanner/lzplanner/internal/cloud/aws"
	"github.com/lzplanner/lzplanner/internal/config"
	intmetrics "github.com/lzplanner/lzplanner/internal/metrics"
	"github.com/lzplanner/lzplanner/internal/store"
	"github.com/lzplanner/lzplanner/pkg/costing"
)

func main() {
	var configFile string
	var port int
	flag.StringVar(&configFile, "config", "/etc/lzplanner/config.yaml", "Path to config file")
	flag.IntVar(&port, "port", 0, "Override the API server port")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		slog.Warn("failed to load config file, falling back to defaults/env",
			"path", configFile, "error", err)
		cfg = config.DefaultConfig()
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("starting lzplanner",
		"port", cfg.Server.Port,
		"livePricing", cfg.Pricing.Enabled,
		"dbPath", cfg.Database.Path,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open SQLite (nil-safe: on failure everything runs in-memory).
	var appDB *store.DB
	if cfg.Database.Path != "" {
		appDB, err = store.Open(store.Config{
			Path:          cfg.Database.Path,
			RetentionDays: cfg.Database.RetentionDays,
		})
		if err != nil {
			slog.Warn("database open failed, continuing in-memory", "error", err)
			appDB = nil
		}
	}

	var sqlDB *sql.DB
	var writer *store.Writer
	if appDB != nil {
		sqlDB = appDB.RawDB()
		writer = store.NewWriter(sqlDB, 1024)
		writer.Run(ctx)
		defer appDB.Close()
	}

	subs := store.NewSubmissionStore(sqlDB, writer)
	intmetrics.StoredSubmissions.Set(float64(subs.Count()))

	// Live pricing overlay. The resolver takes the cache as its overlay;
	// when the overlay is disabled the cache stays empty and every lookup
	// falls back to the static catalog.
	pricingCache := store.NewPricingCache(sqlDB, cfg.Pricing.CacheTTL)
	var refresher handler.Refresher
	var cronRunner *cron.Cron
	if cfg.Pricing.Enabled {
		svc, err := aws.NewPricingService(ctx, cfg.Pricing.Location, pricingCache)
		if err != nil {
			slog.Warn("pricing service init failed, static pricing only", "error", err)
		} else {
			refresher = svc
			if !pricingCache.Valid() {
				go func() {
					rctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
					defer cancel()
					if err := svc.Refresh(rctx); err != nil {
						slog.Warn("initial pricing refresh failed, static pricing only", "error", err)
					}
				}()
			}
			if cfg.Pricing.RefreshSchedule != "" {
				cronRunner = cron.New()
				_, err := cronRunner.AddFunc(cfg.Pricing.RefreshSchedule, func() {
					rctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
					defer cancel()
					if err := svc.Refresh(rctx); err != nil {
						slog.Warn("scheduled pricing refresh failed", "error", err)
					}
				})
				if err != nil {
					slog.Warn("invalid refresh schedule, scheduled refresh disabled",
						"schedule", cfg.Pricing.RefreshSchedule, "error", err)
				} else {
					cronRunner.Start()
					defer cronRunner.Stop()
				}
			}
		}
	}
	if !pricingCache.Valid() {
		intmetrics.PricingFallbackActive.Set(1)
	}

	resolver, err := catalog.NewResolver(pricingCache)
	if err != nil {
		slog.Error("catalog validation failed", "error", err)
		os.Exit(1)
	}
	calc := costing.NewCalculator(resolver, cfg.Costing.MigrationCostPerVM)

	// Metrics listener.
	if cfg.Server.MetricsPort != 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.MetricsPort)
			if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	srv := apiserver.NewServer(cfg, resolver, calc, subs, pricingCache, refresher)
	go func() {
		slog.Info("api server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("api server shutdown", "error", err)
	}
	if writer != nil {
		writer.Drain()
	}
}
