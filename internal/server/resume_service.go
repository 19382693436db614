package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/pdf"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/qrcode"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/rendering"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/schemas"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/sharelink"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/suggestions"
)

// resumePayload is a create or update body. Nil fields were not sent.
type resumePayload struct {
	TemplateID     *string                 `json:"templateId"`
	IsPublic       *bool                   `json:"isPublic"`
	PersonalInfo   *resume.PersonalInfo    `json:"personalInfo"`
	Education      *[]resume.Education     `json:"education"`
	Experience     *[]resume.Experience    `json:"experience"`
	Skills         *[]resume.Skill         `json:"skills"`
	Projects       *[]resume.Project       `json:"projects"`
	Certifications *[]resume.Certification `json:"certifications"`
}

// parseResumePayload validates body against the resume schema and decodes it
func parseResumePayload(body []byte) (*resumePayload, error) {
	if err := schemas.ValidateResume(body); err != nil {
		return nil, err
	}
	var p resumePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ErrValidation{Field: "(root)", Message: err.Error()}
	}
	return &p, nil
}

// apply copies the sections present in the payload onto r
func (p *resumePayload) apply(r *resume.Resume) {
	if p.PersonalInfo != nil {
		r.PersonalInfo = *p.PersonalInfo
	}
	if p.Education != nil {
		r.Education = *p.Education
	}
	if p.Experience != nil {
		r.Experience = *p.Experience
	}
	if p.Skills != nil {
		r.Skills = *p.Skills
	}
	if p.Projects != nil {
		r.Projects = *p.Projects
	}
	if p.Certifications != nil {
		r.Certifications = *p.Certifications
	}
}

// ResumeService implements resume ownership, persistence and output formats.
// Completeness is always computed by the store on save.
type ResumeService struct {
	store       Store
	qr          qrcode.Encoder
	renderer    pdf.Renderer
	frontendURL string
	newLink     func() (string, error)
	logger      *zap.Logger
}

// NewResumeService creates a ResumeService. renderer may be nil, in which
// case PDF requests fail.
func NewResumeService(store Store, qr qrcode.Encoder, renderer pdf.Renderer, frontendURL string, logger *zap.Logger) *ResumeService {
	return &ResumeService{
		store:       store,
		qr:          qr,
		renderer:    renderer,
		frontendURL: frontendURL,
		newLink:     sharelink.New,
		logger:      logger,
	}
}

// Create stores a new resume for userID from a JSON body. The body must
// name an existing template.
func (s *ResumeService) Create(ctx context.Context, userID uuid.UUID, body []byte) (*db.Resume, error) {
	p, err := parseResumePayload(body)
	if err != nil {
		return nil, err
	}
	if p.PersonalInfo == nil {
		return nil, &ErrValidation{Field: "personalInfo", Message: "is required"}
	}

	r := &db.Resume{UserID: userID}
	p.apply(&r.Resume)
	if p.IsPublic != nil {
		r.IsPublic = *p.IsPublic
	}

	if p.TemplateID == nil || *p.TemplateID == "" {
		return nil, &ErrValidation{Field: "templateId", Message: "is required"}
	}
	templateID, err := uuid.Parse(*p.TemplateID)
	if err != nil {
		return nil, &ErrValidation{Field: "templateId", Message: "must be a UUID"}
	}
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if tmpl == nil {
		return nil, &ErrTemplateNotFound{TemplateID: templateID}
	}
	r.TemplateID = &templateID

	if err := s.insertWithLink(ctx, r); err != nil {
		return nil, err
	}
	observability.ResumesSaved.WithLabelValues("create").Inc()
	observability.CompletenessScores.Observe(float64(r.Completeness))

	if err := s.store.IncrementTemplateUsage(ctx, templateID); err != nil {
		s.logger.Warn("failed to increment template usage",
			zap.String("template_id", templateID.String()), zap.Error(err))
	}
	return r, nil
}

// insertWithLink assigns a fresh share link and QR code and inserts r,
// regenerating the link when it collides with an existing one.
func (s *ResumeService) insertWithLink(ctx context.Context, r *db.Resume) error {
	for attempt := 1; attempt <= sharelink.MaxAttempts; attempt++ {
		link, err := s.newLink()
		if err != nil {
			return err
		}
		qr, err := s.qr.Encode(qrcode.ShareURL(s.frontendURL, link))
		if err != nil {
			return err
		}
		r.ShareableLink = link
		r.QRCode = qr

		err = s.store.CreateResume(ctx, r)
		if err == nil {
			return nil
		}
		var dup *db.ErrDuplicate
		if !errors.As(err, &dup) {
			return fmt.Errorf("failed to create resume: %w", err)
		}
		s.logger.Warn("share link collision, regenerating", zap.Int("attempt", attempt))
	}
	return fmt.Errorf("failed to allocate a unique share link after %d attempts", sharelink.MaxAttempts)
}

// Owned returns a resume owned by userID
func (s *ResumeService) Owned(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, &ErrForbidden{}
	}
	return r, nil
}

// Readable returns a resume the caller owns or that is public. userID is
// uuid.Nil for anonymous callers.
func (s *ResumeService) Readable(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID && !r.IsPublic {
		return nil, &ErrForbidden{}
	}
	return r, nil
}

// Shared returns a public resume by its share link
func (s *ResumeService) Shared(ctx context.Context, link string) (*db.Resume, error) {
	if !sharelink.Valid(link) {
		return nil, &ErrResumeNotFound{Ref: link}
	}
	r, err := s.store.GetResumeByShareLink(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("failed to get shared resume: %w", err)
	}
	if r == nil || !r.IsPublic {
		return nil, &ErrResumeNotFound{Ref: link}
	}
	return r, nil
}

func (s *ResumeService) get(ctx context.Context, id uuid.UUID) (*db.Resume, error) {
	r, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if r == nil {
		return nil, &ErrResumeNotFound{Ref: id.String()}
	}
	return r, nil
}

// List returns the user's resumes, newest first
func (s *ResumeService) List(ctx context.Context, userID uuid.UUID) ([]db.Resume, error) {
	resumes, err := s.store.ListResumesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	return resumes, nil
}

// Update replaces the sections present in body and rescores
func (s *ResumeService) Update(ctx context.Context, userID, id uuid.UUID, body []byte) (*db.Resume, error) {
	p, err := parseResumePayload(body)
	if err != nil {
		return nil, err
	}
	r, err := s.Owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	p.apply(&r.Resume)
	if p.IsPublic != nil {
		r.IsPublic = *p.IsPublic
	}

	ok, err := s.store.UpdateResume(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	if !ok {
		return nil, &ErrResumeNotFound{Ref: id.String()}
	}
	observability.ResumesSaved.WithLabelValues("update").Inc()
	observability.CompletenessScores.Observe(float64(r.Completeness))
	return r, nil
}

// Delete removes an owned resume
func (s *ResumeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Owned(ctx, userID, id); err != nil {
		return err
	}
	ok, err := s.store.DeleteResume(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if !ok {
		return &ErrResumeNotFound{Ref: id.String()}
	}
	return nil
}

// Duplicate copies content, template and visibility into a new resume with
// its own share link and QR code
func (s *ResumeService) Duplicate(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	src, err := s.Owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	copied := &db.Resume{
		UserID:     src.UserID,
		TemplateID: src.TemplateID,
		IsPublic:   src.IsPublic,
		Resume:     src.Resume,
	}
	if err := s.insertWithLink(ctx, copied); err != nil {
		return nil, err
	}
	observability.ResumesSaved.WithLabelValues("duplicate").Inc()
	observability.CompletenessScores.Observe(float64(copied.Completeness))
	return copied, nil
}

// SetVisibility toggles access through the share link
func (s *ResumeService) SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (*db.Resume, error) {
	r, err := s.Owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.store.SetResumeVisibility(ctx, id, isPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to set visibility: %w", err)
	}
	if !ok {
		return nil, &ErrResumeNotFound{Ref: id.String()}
	}
	r.IsPublic = isPublic
	return r, nil
}

// RecalculateScore recomputes and persists the completeness of an owned resume
func (s *ResumeService) RecalculateScore(ctx context.Context, userID, id uuid.UUID) (int, error) {
	if _, err := s.Owned(ctx, userID, id); err != nil {
		return 0, err
	}
	score, err := s.store.RecalculateScore(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to recalculate score: %w", err)
	}
	if score < 0 {
		return 0, &ErrResumeNotFound{Ref: id.String()}
	}
	observability.ResumesSaved.WithLabelValues("recalculate").Inc()
	return score, nil
}

// Suggestions returns writing suggestions for a resume
func (s *ResumeService) Suggestions(r *db.Resume) suggestions.Suggestions {
	return suggestions.ForResume(&r.Resume, r.Completeness)
}

// Document assembles a resume with its template's styles. A resume without
// a template, or whose template was deleted, uses the default styles.
func (s *ResumeService) Document(ctx context.Context, r *db.Resume) (*resume.Document, error) {
	var styles resume.Styles
	if r.TemplateID != nil {
		tmpl, err := s.store.GetTemplate(ctx, *r.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		if tmpl != nil {
			styles = tmpl.Styles
		}
	}
	return resume.Assemble(&r.Resume, styles, r.QRCode)
}

// HTML renders a resume as a standalone HTML page
func (s *ResumeService) HTML(ctx context.Context, r *db.Resume) (string, error) {
	doc, err := s.Document(ctx, r)
	if err != nil {
		return "", err
	}
	return rendering.RenderHTML(doc)
}

// Text renders a resume as plain text suitable for applicant tracking systems
func (s *ResumeService) Text(ctx context.Context, r *db.Resume) (string, error) {
	page, err := s.HTML(ctx, r)
	if err != nil {
		return "", err
	}
	return rendering.RenderText(page)
}

// PDF renders a resume as an A4 PDF
func (s *ResumeService) PDF(ctx context.Context, r *db.Resume) ([]byte, error) {
	if s.renderer == nil {
		return nil, &pdf.RenderError{Message: "PDF rendering is not configured"}
	}
	page, err := s.HTML(ctx, r)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderPDF(ctx, page)
}

// PDFFilename is the download name of a resume PDF
func PDFFilename(r *db.Resume) string {
	name := strings.Map(func(c rune) rune {
		switch {
		case c == '"' || c == '\\' || c == '/' || c < 0x20:
			return -1
		}
		return c
	}, strings.TrimSpace(r.PersonalInfo.FullName))
	if name == "" {
		return "Resume.pdf"
	}
	return name + "_Resume.pdf"
}
