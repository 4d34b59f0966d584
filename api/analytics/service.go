package analytics

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"SellerPulse/internal/pipeline"
	"SellerPulse/internal/serviceiface"
	"SellerPulse/internal/store"
)

// Service is the analytics HTTP service. It owns the state holder, the
// filter worker and the background upload jobs.
type Service struct {
	config       map[string]interface{}
	state        *State
	filterWorker *pipeline.FilterWorker
	jobs         *pipeline.JobManager
	auditDB      *sql.DB
}

func NewAnalyticsService(cfg map[string]interface{}, kv store.KV, auditDB *sql.DB) serviceiface.Service {
	return &Service{
		config:       cfg,
		state:        NewState(kv),
		filterWorker: pipeline.NewFilterWorker(16),
		jobs:         pipeline.NewJobManager(),
		auditDB:      auditDB,
	}
}

func (s *Service) Name() string {
	return "analytics"
}

func (s *Service) Start() error {
	if s.auditDB != nil {
		if err := EnsureAuditTable(s.auditDB); err != nil {
			return err
		}
	}
	go StartAnalyticsService(s)
	return nil
}

func (s *Service) Stop() error {
	s.filterWorker.Stop()
	return nil
}

// Router wires every analytics route. Split out so tests can drive the
// handlers without a listening socket.
func Router(s *Service) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/analytics/upload", UploadHandler(s)).Methods(http.MethodPost)
	router.HandleFunc("/analytics/upload/status/{job}", UploadStatusHandler(s)).Methods(http.MethodGet)
	router.HandleFunc("/analytics/upload/stream/{job}", UploadStreamHandler(s)).Methods(http.MethodGet)
	router.HandleFunc("/analytics/recalculate", RecalculateHandler(s)).Methods(http.MethodPost)
	router.HandleFunc("/analytics/prices", UpdatePricesHandler(s)).Methods(http.MethodPut)
	router.HandleFunc("/analytics/filter-context", FilterContextHandler(s)).Methods(http.MethodGet)
	router.HandleFunc("/analytics/drilldown/{sku}", DrilldownHandler(s)).Methods(http.MethodGet)
	router.HandleFunc("/analytics/data/{type}", DeleteFileHandler(s)).Methods(http.MethodDelete)
	router.HandleFunc("/analytics/data", DeleteAllHandler(s)).Methods(http.MethodDelete)
	router.HandleFunc("/analytics/view-mode", ViewModeHandler(s)).Methods(http.MethodGet)
	router.HandleFunc("/analytics/view-mode", SetViewModeHandler(s)).Methods(http.MethodPut)
	return router
}

// StartAnalyticsService restores persisted state and serves the analytics
// API.
func StartAnalyticsService(s *Service) {
	ctx := context.Background()
	if err := s.state.Load(ctx); err != nil {
		log.Fatalf("Analytics Service failed to restore state: %v", err)
	}

	log.Println("Analytics Service started on :7143")
	if err := http.ListenAndServe(":7143", Router(s)); err != nil {
		log.Fatalf("Analytics Service failed: %v", err)
	}
}
