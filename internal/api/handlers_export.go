package api

import (
	"encoding/json"
	"net/http"

	"github.com/nkapre/paperforge/internal/export"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var meta export.Metadata
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	blocks := s.sess.Blocks()
	if len(blocks) == 0 {
		jsonError(w, "session has no blocks to export", http.StatusConflict)
		return
	}

	doc := export.Assemble(s.sess.Schema(), blocks, meta)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="Exam_Paper.docx"`)
	if _, err := doc.WriteTo(w); err != nil {
		s.log.Error("write exported document", "error", err)
	}
}
