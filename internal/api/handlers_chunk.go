package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dgallion1/prochunk/internal/chunker"
	"github.com/dgallion1/prochunk/internal/engine"
)

// handleChunk splits an uploaded document synchronously and returns the
// chunks without embedding or storing them.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	data, err := s.readUpload(file)
	if err != nil {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	cfg := chunker.Config{
		TargetWords:  s.cfg.TargetWords,
		OverlapWords: s.cfg.OverlapWords,
	}
	if v := r.FormValue("target_words"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TargetWords = n
		}
	}
	if v := r.FormValue("overlap_words"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.OverlapWords = n
		}
	}

	doc, err := engine.Open(filename, data, cfg)
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	chunks, err := doc.Chunk()
	if err != nil {
		if errors.Is(err, engine.ErrMissingHeader) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "chunking failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if chunks == nil {
		chunks = []chunker.Chunk{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"chunks":   chunks,
		"count":    len(chunks),
	})
}
