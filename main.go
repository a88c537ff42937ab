package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gorilla/mux"
	_ "github.com/joho/godotenv/autoload"

	"rentroll-reconciliation/internal/constants"
	"rentroll-reconciliation/internal/infrastructure/repository"
	"rentroll-reconciliation/internal/models"
	"rentroll-reconciliation/internal/recon"
	"rentroll-reconciliation/pkg/config"
	"rentroll-reconciliation/pkg/database"
	errs "rentroll-reconciliation/pkg/errors"
	"rentroll-reconciliation/pkg/health"
	"rentroll-reconciliation/pkg/logging"
	"rentroll-reconciliation/pkg/metrics"
)

func main() {
	cfg := config.Load()

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})
	logger.Info("starting rent roll reconciliation service",
		logging.String("env", cfg.Env), logging.String("port", cfg.Port))

	db, err := database.NewWithConfig(cfg.DatabaseURL, cfg)
	if err != nil {
		logger.Error("database connect failed", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := repository.NewSQLRepository(db)

	matcher := recon.NewMatcher(recon.Config{
		MinConfidence: cfg.MatchThreshold,
		Weights: recon.Weights{
			Address:   cfg.AddressWeight,
			FloorDoor: cfg.FloorDoorWeight,
			Size:      cfg.SizeWeight,
		},
	})
	svc := recon.NewService(repo, matcher, logger)

	app := &App{cfg: cfg, log: logger.WithComponent("http"), svc: svc}

	if cfg.MetricsEnabled {
		app.registry = metrics.NewRegistry()
		app.runsTotal = app.registry.Counter("recon_runs_total", "Completed reconciliation runs")
		app.matchedTotal = app.registry.Counter("recon_units_matched_total", "Candidate units matched across all runs")
		app.anomaliesTotal = app.registry.Counter("recon_anomalies_total", "Unmatched candidate units across all runs")
		app.lastMatchRate = app.registry.Gauge("recon_last_match_rate", "Match rate of the most recent run")
	}

	router := mux.NewRouter()
	router.HandleFunc("/properties/{id}/reconcile", app.reconcileHandler).Methods("POST")
	router.HandleFunc("/api/runs", app.runsHandler).Methods("GET")
	router.HandleFunc("/api/stats", app.statsHandler).Methods("GET")
	router.Handle("/health", health.NewChecker(db).Handler()).Methods("GET")
	if app.registry != nil {
		router.Handle(cfg.MetricsPath, app.registry.Handler()).Methods("GET")
	}

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	go func() {
		fmt.Printf("Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		constants.GracefulShutdownTimeoutDefault)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", err)
	}
	logger.Info("shutdown complete")
}

type App struct {
	cfg *config.Config
	log *logging.ComponentLogger
	svc *recon.Service

	registry       *metrics.Registry
	runsTotal      *metrics.Counter
	matchedTotal   *metrics.Counter
	anomaliesTotal *metrics.Counter
	lastMatchRate  *metrics.Gauge
}

// reconcileHandler matches extracted rent roll units against the property's
// canonical units and returns the full run report.
func (app *App) reconcileHandler(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["id"]
	if propertyID == "" {
		http.Error(w, "missing property id", http.StatusBadRequest)
		return
	}

	var body struct {
		Units []models.CandidateUnit `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	report, err := app.svc.Reconcile(r.Context(), propertyID, body.Units)
	if err != nil {
		app.log.Error("reconcile failed", err, logging.String("property_id", propertyID))
		status := http.StatusInternalServerError
		if errs.Is(err, errs.ErrValidation) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("reconciliation failed: %v", err), status)
		return
	}

	if app.registry != nil {
		app.runsTotal.Inc()
		app.matchedTotal.Add(int64(report.Result.MatchedCount))
		app.anomaliesTotal.Add(int64(len(report.Result.UnmatchedUnits)))
		app.lastMatchRate.Set(report.Stats.MatchRate)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (app *App) runsHandler(w http.ResponseWriter, r *http.Request) {
	limit := constants.RecentRunsDefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := app.svc.RecentRuns(r.Context(), limit)
	if err != nil {
		app.log.Error("list runs failed", err)
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []models.ReconciliationRun{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

func (app *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.svc.Stats(r.Context())
	if err != nil {
		app.log.Error("stats failed", err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
