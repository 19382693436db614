package server

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/types"
)

// Admin listing and analytics windows
const (
	adminResumeLimit   = 100
	popularTemplates   = 5
	recentResumeWindow = 7 * 24 * time.Hour
	userGrowthMonths   = 6
)

// Overview holds the headline counts on the admin dashboard
type Overview struct {
	TotalUsers     int `json:"totalUsers"`
	TotalResumes   int `json:"totalResumes"`
	TotalTemplates int `json:"totalTemplates"`
	RecentResumes  int `json:"recentResumes"`
}

// Analytics is the admin dashboard payload
type Analytics struct {
	Overview         Overview           `json:"overview"`
	PopularTemplates []db.TemplateUsage `json:"popularTemplates"`
	UserGrowth       []db.MonthCount    `json:"userGrowth"`
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]types.User, 0, len(users))
	for i := range users {
		out = append(out, *toAPIUser(&users[i]))
	}
	jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleAdminListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.ListAllResumes(r.Context(), adminResumeLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if resumes == nil {
		resumes = []db.ResumeWithOwner{}
	}
	jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleAdminListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.ListAll(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, templates)
}

// handleAdminAnalytics gathers the dashboard counts concurrently
func (s *Server) handleAdminAnalytics(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	a := Analytics{}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		a.Overview.TotalUsers, err = s.store.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		a.Overview.TotalResumes, err = s.store.CountResumes(ctx)
		return err
	})
	g.Go(func() (err error) {
		a.Overview.TotalTemplates, err = s.store.CountTemplates(ctx)
		return err
	})
	g.Go(func() (err error) {
		a.Overview.RecentResumes, err = s.store.CountResumesSince(ctx, now.Add(-recentResumeWindow))
		return err
	})
	g.Go(func() (err error) {
		a.PopularTemplates, err = s.store.TopTemplates(ctx, popularTemplates)
		return err
	})
	g.Go(func() (err error) {
		a.UserGrowth, err = s.store.UserGrowth(ctx, now.AddDate(0, -userGrowthMonths, 0))
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	if a.PopularTemplates == nil {
		a.PopularTemplates = []db.TemplateUsage{}
	}
	if a.UserGrowth == nil {
		a.UserGrowth = []db.MonthCount{}
	}
	jsonResponse(w, http.StatusOK, a)
}

func (s *Server) handleAdminCreateTemplate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTemplateRequest(w, r)
	if !ok {
		return
	}
	t, err := s.templates.Create(r.Context(), callerID(r), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, t)
}

func (s *Server) handleAdminUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeTemplateRequest(w, r)
	if !ok {
		return
	}
	t, err := s.templates.Update(r.Context(), id, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

func (s *Server) handleAdminDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.templates.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Template deleted successfully"})
}

func (s *Server) handleAdminToggleTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.templates.Toggle(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

func decodeTemplateRequest(w http.ResponseWriter, r *http.Request) (*types.TemplateRequest, bool) {
	var req types.TemplateRequest
	if !decodeJSON(w, r, &req) {
		return nil, false
	}
	if err := req.Validate(); err != nil {
		validationResponse(w, extractValidationErrors(err))
		return nil, false
	}
	return &req, true
}
