package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nkapre/paperforge/internal/parser"
	"github.com/nkapre/paperforge/internal/pipeline"
)

func (s *Server) handleSectionUpload(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")
	if !s.sess.Schema().HasSection(sectionID) {
		jsonError(w, fmt.Sprintf("section %q is not in the active schema", sectionID), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	// Files commit in upload order, so read them all before queueing.
	var files []pipeline.FileInput
	for _, fh := range headers {
		file, err := s.readUpload(fh)
		if err != nil {
			jsonError(w, fmt.Sprintf("%s: %s", fh.Filename, err), http.StatusBadRequest)
			return
		}
		if !strings.HasPrefix(file.MimeType, "image/") {
			jsonError(w, fmt.Sprintf("%s: section uploads must be images", file.Name), http.StatusBadRequest)
			return
		}
		files = append(files, file)
	}

	job, err := s.orchestrator.SubmitSection(sectionID, files)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeAccepted(w, job)
}

func (s *Server) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fh, err := firstFile(r, "file")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !parser.IsSupportedExtension(fh.Filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(fh.Filename)), http.StatusBadRequest)
		return
	}

	file, err := s.readUpload(fh)
	if err != nil {
		jsonError(w, fmt.Sprintf("%s: %s", fh.Filename, err), http.StatusBadRequest)
		return
	}

	job, err := s.orchestrator.SubmitDocument(file)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeAccepted(w, job)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func (s *Server) readUpload(fh *multipart.FileHeader) (pipeline.FileInput, error) {
	f, err := fh.Open()
	if err != nil {
		return pipeline.FileInput{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return pipeline.FileInput{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return pipeline.FileInput{}, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return pipeline.FileInput{
		Name:     sanitizeFilename(fh.Filename),
		MimeType: mimeType,
		Data:     data,
	}, nil
}

func firstFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%s is required", field)
	}
	return headers[0], nil
}

func writeAccepted(w http.ResponseWriter, job *pipeline.Job) {
	snap := job.Snapshot()
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": "/api/uploads/" + snap.ID,
	})
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
