package server

import (
	"net/http"
	"strconv"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/types"
)

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Create(r.Context(), callerID(r), body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.resumes.List(r.Context(), callerID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Owned(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Update(r.Context(), callerID(r), id, body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.resumes.Delete(r.Context(), callerID(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume deleted successfully"})
}

func (s *Server) handleDuplicateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Duplicate(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req types.VisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationResponse(w, extractValidationErrors(err))
		return
	}
	res, err := s.resumes.SetVisibility(r.Context(), callerID(r), id, *req.IsPublic)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleCalculateScore(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	score, err := s.resumes.RecalculateScore(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, types.ScoreResponse{Completeness: score})
}

func (s *Server) handleResumeSuggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Owned(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, s.resumes.Suggestions(res))
}

func (s *Server) handleResumeDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Owned(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := s.resumes.Document(r.Context(), res)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleResumeHTML(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Owned(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.resumes.HTML(r.Context(), res)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleResumeText(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Owned(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	text, err := s.resumes.Text(r.Context(), res)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleResumePDF serves the PDF to the owner, or to anyone when the resume is public
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	res, err := s.resumes.Readable(r.Context(), callerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePDF(w, r, res)
}

func (s *Server) handleGetSharedResume(w http.ResponseWriter, r *http.Request) {
	res, err := s.resumes.Shared(r.Context(), r.PathValue("link"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleSharedResumePDF(w http.ResponseWriter, r *http.Request) {
	res, err := s.resumes.Shared(r.Context(), r.PathValue("link"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePDF(w, r, res)
}

func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, res *db.Resume) {
	data, err := s.resumes.PDF(r.Context(), res)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+PDFFilename(res)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
