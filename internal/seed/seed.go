// Package seed installs the admin account and the default template catalog.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/schemas"
)

//go:embed catalog.json
var defaultCatalog []byte

// Store is the subset of the record store used for seeding
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*db.User, error)
	TemplateNameExists(ctx context.Context, name string) (bool, error)
	CreateTemplate(ctx context.Context, t *db.Template) error
}

// CatalogEntry is one template in a seed catalog
type CatalogEntry struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Thumbnail   string        `json:"thumbnail"`
	Category    string        `json:"category"`
	Layout      string        `json:"layout"`
	IsATS       bool          `json:"isATS"`
	IsActive    *bool         `json:"isActive"`
	Styles      resume.Styles `json:"styles"`
}

// Result counts what a seed run created and skipped
type Result struct {
	AdminCreated     bool
	TemplatesCreated int
	TemplatesSkipped int
}

// ParseCatalog validates a catalog against the template catalog schema and decodes it
func ParseCatalog(data []byte) ([]CatalogEntry, error) {
	if err := schemas.ValidateTemplateCatalog(data); err != nil {
		return nil, fmt.Errorf("invalid template catalog: %w", err)
	}
	var entries []CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode template catalog: %w", err)
	}
	return entries, nil
}

// DefaultCatalog returns the embedded default templates
func DefaultCatalog() ([]CatalogEntry, error) {
	return ParseCatalog(defaultCatalog)
}

// Seeder installs seed data. Every step skips records that already exist.
type Seeder struct {
	store    Store
	admin    config.AdminConfig
	password config.PasswordConfig
	logger   *zap.Logger
}

// New creates a Seeder
func New(store Store, admin config.AdminConfig, password config.PasswordConfig, logger *zap.Logger) *Seeder {
	return &Seeder{store: store, admin: admin, password: password, logger: logger}
}

// Run seeds the admin account and the given catalog
func (s *Seeder) Run(ctx context.Context, catalog []CatalogEntry) (*Result, error) {
	res := &Result{}

	created, err := s.seedAdmin(ctx)
	if err != nil {
		return nil, err
	}
	res.AdminCreated = created

	for _, entry := range catalog {
		exists, err := s.store.TemplateNameExists(ctx, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check template %q: %w", entry.Name, err)
		}
		if exists {
			s.logger.Debug("template already exists", zap.String("name", entry.Name))
			res.TemplatesSkipped++
			continue
		}
		if err := s.store.CreateTemplate(ctx, entry.toTemplate()); err != nil {
			return nil, fmt.Errorf("failed to create template %q: %w", entry.Name, err)
		}
		s.logger.Info("template created", zap.String("name", entry.Name))
		res.TemplatesCreated++
	}
	return res, nil
}

func (s *Seeder) seedAdmin(ctx context.Context) (bool, error) {
	if s.admin.Password == "" {
		s.logger.Warn("ADMIN_PASSWORD not set, skipping admin account")
		return false, nil
	}
	existing, err := s.store.GetUserByEmail(ctx, s.admin.Email)
	if err != nil {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		if !existing.IsAdmin() {
			s.logger.Warn("admin email belongs to a non-admin user", zap.String("email", existing.Email))
		}
		return false, nil
	}

	hash, err := s.password.HashPassword(s.admin.Password)
	if err != nil {
		return false, err
	}
	if _, err := s.store.CreateUser(ctx, s.admin.Name, s.admin.Email, hash, db.RoleAdmin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.Info("admin account created", zap.String("email", s.admin.Email))
	return true, nil
}

func (e CatalogEntry) toTemplate() *db.Template {
	active := true
	if e.IsActive != nil {
		active = *e.IsActive
	}
	return &db.Template{
		Name:        e.Name,
		Description: e.Description,
		Thumbnail:   e.Thumbnail,
		Category:    e.Category,
		Layout:      e.Layout,
		IsATS:       e.IsATS,
		IsActive:    active,
		Styles:      e.Styles,
	}
}
