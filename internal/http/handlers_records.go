package http

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"grafik/internal/amqp"
	"grafik/internal/chart"
	"grafik/internal/core"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.store.CreateBudget(r.Context(), core.Budget{Name: req.Name, Color: req.Color})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateSnapshot()
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleAppendBudgetEntry(w http.ResponseWriter, r *http.Request) {
	budgetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	var req struct {
		Amount int64  `json:"amount"`
		Date   string `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	id, err := s.store.AppendBudgetEntry(r.Context(), budgetID, core.BudgetEntry{
		Amount: core.Money{Amount: req.Amount},
		Date:   date,
	})
	switch {
	case err == nil:
		s.invalidateSnapshot()
		respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "budget not found")
	default:
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	}
}

func (s *Server) handleArchiveBudget(w http.ResponseWriter, r *http.Request) {
	budgetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	err = s.store.ArchiveBudget(r.Context(), budgetID)
	switch {
	case err == nil:
		s.invalidateSnapshot()
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "budget not found")
	default:
		slog.ErrorContext(r.Context(), "Failed to archive budget", "error", err, "budget_id", budgetID)
		respondError(w, http.StatusInternalServerError, "failed to archive budget")
	}
}

func (s *Server) handleAddDailyExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      int64  `json:"amount"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	id, err := s.store.AddDailyExpense(r.Context(), core.DailyExpense{
		Amount:      core.Money{Amount: req.Amount},
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateSnapshot()
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleAddFundEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64  `json:"amount"`
		Date   string `json:"date"`
		Type   string `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	id, err := s.store.AddFundEntry(r.Context(), core.FundEntry{
		Amount: core.Money{Amount: req.Amount},
		Date:   date,
		Type:   core.FundEntryType(req.Type),
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateSnapshot()
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// handleRequestSnapshot queues an asynchronous chart export for the
// worker.
func (s *Server) handleRequestSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		respondError(w, http.StatusServiceUnavailable, "snapshot export not configured")
		return
	}

	var req struct {
		Kind string `json:"kind"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, err := chart.ParseKind(req.Kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown chart kind")
		return
	}

	msg := amqp.NewSnapshotRequestMessage(string(kind))
	if err := s.publisher.PublishSnapshotRequest(r.Context(), msg); err != nil {
		slog.ErrorContext(r.Context(), "Failed to publish snapshot request", "error", err, "kind", kind)
		respondError(w, http.StatusInternalServerError, "failed to queue snapshot")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"id": msg.ID})
}
