package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/prochunk/internal/store"
)

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// handleSearch embeds the query text and returns the closest stored chunks.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}

	vectors, err := s.embedder.Embed(r.Context(), []string{req.Query})
	if err != nil {
		jsonError(w, "failed to embed query: "+err.Error(), http.StatusBadGateway)
		return
	}

	results, err := s.store.Search(r.Context(), vectors[0], req.Limit)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []store.SearchResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":   req.Query,
		"results": results,
	})
}

// handleDeleteDocument removes every stored chunk of a document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docNumber := chi.URLParam(r, "docNumber")
	deleted, err := s.store.DeleteDocument(r.Context(), docNumber)
	if err != nil {
		jsonError(w, "delete failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document_number": docNumber,
		"chunks_deleted":  deleted,
	})
}
