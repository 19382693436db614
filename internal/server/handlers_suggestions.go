package server

import (
	"net/http"
	"strings"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/suggestions"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/types"
)

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	jsonResponse(w, http.StatusOK, types.KeywordsResponse{
		Role:     role,
		Keywords: suggestions.Keywords(role),
	})
}

func (s *Server) handleImproveText(w http.ResponseWriter, r *http.Request) {
	var req types.ImproveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationResponse(w, extractValidationErrors(err))
		return
	}
	kind := req.Type
	if kind == "" {
		kind = suggestions.KindGeneral
	}
	jsonResponse(w, http.StatusOK, types.ImproveResponse{
		Original: req.Text,
		Improved: s.improver.Improve(r.Context(), req.Text, kind),
	})
}
