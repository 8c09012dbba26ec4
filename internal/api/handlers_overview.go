package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dnordby/reportscan/internal/points"
	"github.com/dnordby/reportscan/internal/resultstore"
	"github.com/go-chi/chi/v5"
)

// handleOverview rebuilds the points overview for a document. The
// envelope is derived on every request from the frozen detected-points
// snapshot plus the current findings; it is never read from storage.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	docHash := chi.URLParam(r, "docHash")
	ctx := r.Context()
	store := s.orchestrator.ResultStore()

	snap, err := store.GetSnapshot(ctx, docHash)
	if err != nil {
		if errors.Is(err, resultstore.ErrNoSnapshot) {
			jsonError(w, "no analysis exists for this document", http.StatusNotFound)
			return
		}
		jsonError(w, "snapshot fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	findings, err := store.GetFindings(ctx, docHash)
	if err != nil {
		jsonError(w, "findings fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	overview, err := points.BuildOverview(snap.Points, findings)
	if err != nil {
		s.log.Error("overview build failed", "doc_hash", docHash, "error", err)
		jsonError(w, "overview build failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

// handleScore returns the stored safety score for a document.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	docHash := chi.URLParam(r, "docHash")
	store := s.orchestrator.ResultStore()

	if _, err := store.GetSnapshot(r.Context(), docHash); err != nil {
		if errors.Is(err, resultstore.ErrNoSnapshot) {
			jsonError(w, "no analysis exists for this document", http.StatusNotFound)
			return
		}
		jsonError(w, "snapshot fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	result, err := store.GetScore(r.Context(), docHash)
	if err != nil {
		jsonError(w, "score fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	if result == nil {
		jsonError(w, "score not yet computed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleDeleteReport removes all stored results for a document hash.
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	docHash := chi.URLParam(r, "docHash")
	if err := s.orchestrator.ResultStore().Delete(r.Context(), docHash); err != nil {
		jsonError(w, "delete failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docHash})
}
