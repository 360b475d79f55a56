// Package http serves the chart series, the view state and the record
// write endpoints.
package http

import (
	"context"
	"net/http"
	"time"

	"grafik/internal/amqp"
	"grafik/internal/cache"
	"grafik/internal/chart"
	"grafik/internal/core"
)

const snapshotCacheKey = "current"

// Store is the persistence surface the server needs.
type Store interface {
	Snapshot(ctx context.Context) (core.Snapshot, error)
	CreateBudget(ctx context.Context, b core.Budget) (int64, error)
	ArchiveBudget(ctx context.Context, id int64) error
	AppendBudgetEntry(ctx context.Context, budgetID int64, e core.BudgetEntry) (int64, error)
	AddDailyExpense(ctx context.Context, d core.DailyExpense) (int64, error)
	AddFundEntry(ctx context.Context, f core.FundEntry) (int64, error)
}

// SnapshotPublisher queues asynchronous chart snapshot exports. May be
// nil when AMQP is not configured.
type SnapshotPublisher interface {
	PublishSnapshotRequest(ctx context.Context, msg *amqp.SnapshotRequestMessage) error
}

// Options tune request handling.
type Options struct {
	// InsightTimeout bounds the external analysis call.
	InsightTimeout time.Duration
	// SnapshotCacheTTL memoizes the loaded snapshot between recomputes.
	SnapshotCacheTTL time.Duration
}

type Server struct {
	*http.Server
	store          Store
	view           *chart.Controller
	publisher      SnapshotPublisher
	snapshots      *cache.TTL[core.Snapshot]
	insightTimeout time.Duration
}

func NewServer(addr string, store Store, view *chart.Controller, publisher SnapshotPublisher, opts Options) *Server {
	if opts.InsightTimeout <= 0 {
		opts.InsightTimeout = 30 * time.Second
	}
	if opts.SnapshotCacheTTL <= 0 {
		opts.SnapshotCacheTTL = 5 * time.Second
	}

	s := &Server{
		store:          store,
		view:           view,
		publisher:      publisher,
		snapshots:      cache.New[core.Snapshot](1, opts.SnapshotCacheTTL),
		insightTimeout: opts.InsightTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/series/{kind}", s.handleSeries)
	mux.HandleFunc("GET /chart", s.handleChart)

	mux.HandleFunc("GET /api/view", s.handleViewState)
	mux.HandleFunc("POST /api/view/mode", s.handleSelectMode)
	mux.HandleFunc("POST /api/view/analyze", s.handleAnalyze)

	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("POST /api/budgets/{id}/entries", s.handleAppendBudgetEntry)
	mux.HandleFunc("POST /api/budgets/{id}/archive", s.handleArchiveBudget)
	mux.HandleFunc("POST /api/expenses", s.handleAddDailyExpense)
	mux.HandleFunc("POST /api/fund", s.handleAddFundEntry)

	mux.HandleFunc("POST /api/snapshots", s.handleRequestSnapshot)

	s.Server = &http.Server{
		Addr:    addr,
		Handler: s.withSecurityHeaders(s.withRequestID(mux)),
	}
	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Snapshot(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// snapshot loads the current records, memoized for a short TTL.
func (s *Server) snapshot(ctx context.Context) (core.Snapshot, error) {
	if snap, ok := s.snapshots.Get(snapshotCacheKey); ok {
		return snap, nil
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return core.Snapshot{}, err
	}
	s.snapshots.Set(snapshotCacheKey, snap)
	return snap, nil
}

// invalidateSnapshot drops the memoized snapshot after a write.
func (s *Server) invalidateSnapshot() {
	s.snapshots.Delete(snapshotCacheKey)
}

func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = generateRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
