package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkapre/paperforge/internal/session"
)

func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	type schemaInfo struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	var out []schemaInfo
	for _, key := range s.registry.Keys() {
		sch, _ := s.registry.Get(key)
		out = append(out, schemaInfo{Key: key, Name: sch.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"schemas": out})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleSelectSchema(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	discarded, err := s.sess.SelectSchema(req.Key)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"schema_key":       req.Key,
		"discarded_blocks": discarded,
	})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := session.ParseUploadMode(req.Mode)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.sess.SetUploadMode(mode)
	writeJSON(w, http.StatusOK, map[string]any{"mode": mode})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"text": s.sess.Preview()})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	n, err := s.sess.SegmentRawText()
	if err != nil {
		if errors.Is(err, session.ErrNoRawText) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocks": n})
}

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	block := s.sess.AddBlock()
	writeJSON(w, http.StatusCreated, block)
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "blockID")

	var req struct {
		SectionID *string `json:"section_id"`
		Text      *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.SectionID == nil && req.Text == nil {
		jsonError(w, "nothing to update", http.StatusBadRequest)
		return
	}

	if req.SectionID != nil {
		if err := s.sess.SetBlockSection(blockID, *req.SectionID); err != nil {
			jsonError(w, err.Error(), blockErrStatus(err))
			return
		}
	}
	if req.Text != nil {
		if err := s.sess.SetBlockText(blockID, *req.Text); err != nil {
			jsonError(w, err.Error(), blockErrStatus(err))
			return
		}
	}
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "blockID")
	if err := s.sess.DeleteBlock(blockID); err != nil {
		jsonError(w, err.Error(), blockErrStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func blockErrStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownBlock):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnknownSection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
