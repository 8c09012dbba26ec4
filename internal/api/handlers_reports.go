package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dnordby/reportscan/internal/parser"
	"github.com/dnordby/reportscan/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

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
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = pipeline.ContentHashHex(data)[:16]
	}
	title := r.FormValue("title")

	job := newJob(docID, filename, title, data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s/status", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":       snap.ID,
		"doc_id":       snap.DocID,
		"status":       snap.Status,
		"phase":        snap.Phase,
		"content_hash": snap.ContentHash,
		"progress":     snap.Progress,
	})
}

func (s *Server) handleBatchSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		job := newJob(pipeline.ContentHashHex(data)[:16], filename, "", data)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"doc_id":   job.DocID,
			"status":   job.Status,
			"poll_url": fmt.Sprintf("/api/jobs/%s/status", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func newJob(docID, filename, title string, data []byte) *pipeline.Job {
	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewULID(),
		DocID:     docID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	return job
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
