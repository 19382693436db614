package server

import (
	"net/http"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/blob"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.ListActive(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.templates.GetActive(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// handleUploadCustomTemplate stores an uploaded template document and
// registers it as an inactive custom template
func (s *Server) handleUploadCustomTemplate(w http.ResponseWriter, r *http.Request) {
	up, err := readUpload(w, r, customTemplatePolicy)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	backend := s.cfg.Blob.Backend
	url, err := s.blobs.Upload(r.Context(), blob.NewKey(blob.FolderCustomTemplates, up.filename), up.contentType, up.data)
	if err != nil {
		observability.BlobUploads.WithLabelValues(backend, "failure").Inc()
		s.fail(w, r, err)
		return
	}
	observability.BlobUploads.WithLabelValues(backend, "success").Inc()

	t, err := s.templates.CreateCustom(r.Context(), callerID(r), up.filename, url)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, t)
}
