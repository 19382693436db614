package server

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/types"
)

// TemplateService manages the template catalog
type TemplateService struct {
	store Store
}

// NewTemplateService creates a new template service
func NewTemplateService(store Store) *TemplateService {
	return &TemplateService{store: store}
}

// ListActive returns the templates offered to users
func (s *TemplateService) ListActive(ctx context.Context) ([]db.Template, error) {
	templates, err := s.store.ListTemplates(ctx, true)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []db.Template{}
	}
	return templates, nil
}

// ListAll returns every template, active or not
func (s *TemplateService) ListAll(ctx context.Context) ([]db.Template, error) {
	templates, err := s.store.ListTemplates(ctx, false)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []db.Template{}
	}
	return templates, nil
}

// GetActive returns an active template. Inactive templates are reported as missing.
func (s *TemplateService) GetActive(ctx context.Context, id uuid.UUID) (*db.Template, error) {
	t, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.IsActive {
		return nil, &ErrTemplateNotFound{TemplateID: id}
	}
	return t, nil
}

// Create adds a template on behalf of an admin
func (s *TemplateService) Create(ctx context.Context, adminID uuid.UUID, req *types.TemplateRequest) (*db.Template, error) {
	exists, err := s.store.TemplateNameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ErrTemplateNameTaken{Name: req.Name}
	}

	t := &db.Template{IsActive: true, CreatedBy: &adminID}
	applyTemplateRequest(t, req)
	if err := s.store.CreateTemplate(ctx, t); err != nil {
		return nil, nameTaken(err, req.Name)
	}
	return t, nil
}

// Update replaces the editable fields of a template
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req *types.TemplateRequest) (*db.Template, error) {
	t, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &ErrTemplateNotFound{TemplateID: id}
	}
	if t.Name != req.Name {
		exists, err := s.store.TemplateNameExists(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ErrTemplateNameTaken{Name: req.Name}
		}
	}

	applyTemplateRequest(t, req)
	found, err := s.store.UpdateTemplate(ctx, t)
	if err != nil {
		return nil, nameTaken(err, req.Name)
	}
	if !found {
		return nil, &ErrTemplateNotFound{TemplateID: id}
	}
	return t, nil
}

// Delete removes a template
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.store.DeleteTemplate(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return &ErrTemplateNotFound{TemplateID: id}
	}
	return nil
}

// Toggle flips whether a template is offered to users
func (s *TemplateService) Toggle(ctx context.Context, id uuid.UUID) (*db.Template, error) {
	t, err := s.store.ToggleTemplateActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &ErrTemplateNotFound{TemplateID: id}
	}
	return t, nil
}

// CreateCustom records a user-uploaded template file. Custom templates start
// inactive until an admin reviews them.
func (s *TemplateService) CreateCustom(ctx context.Context, userID uuid.UUID, filename, url string) (*db.Template, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if name == "" || name == "." {
		name = "Custom Template"
	}
	t := &db.Template{
		Name:              name + " (" + uuid.NewString()[:8] + ")",
		Description:       "Custom uploaded template",
		Category:          db.CategoryCustom,
		Layout:            db.LayoutCustom,
		IsCustom:          true,
		CustomTemplateURL: url,
		Styles:            resume.Styles{}.WithDefaults(),
		CreatedBy:         &userID,
	}
	if err := s.store.CreateTemplate(ctx, t); err != nil {
		return nil, nameTaken(err, t.Name)
	}
	return t, nil
}

func applyTemplateRequest(t *db.Template, req *types.TemplateRequest) {
	t.Name = req.Name
	t.Description = req.Description
	t.Thumbnail = req.Thumbnail
	t.Category = req.Category
	t.Layout = req.Layout
	if t.Layout == "" {
		t.Layout = db.LayoutModern
	}
	t.IsATS = req.IsATS
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	t.Styles = req.Styles.WithDefaults()
}

// nameTaken maps a unique violation to ErrTemplateNameTaken
func nameTaken(err error, name string) error {
	var dup *db.ErrDuplicate
	if errors.As(err, &dup) {
		return &ErrTemplateNameTaken{Name: name}
	}
	return err
}
