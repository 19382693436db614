package server

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
)

// Store is the record store the API runs against. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, u *db.User) error
	ListUsers(ctx context.Context) ([]db.User, error)
	CountUsers(ctx context.Context) (int, error)
	UserGrowth(ctx context.Context, since time.Time) ([]db.MonthCount, error)

	CreateTemplate(ctx context.Context, t *db.Template) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*db.Template, error)
	TemplateNameExists(ctx context.Context, name string) (bool, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]db.Template, error)
	UpdateTemplate(ctx context.Context, t *db.Template) (bool, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) (bool, error)
	ToggleTemplateActive(ctx context.Context, id uuid.UUID) (*db.Template, error)
	IncrementTemplateUsage(ctx context.Context, id uuid.UUID) error
	CountTemplates(ctx context.Context) (int, error)
	TopTemplates(ctx context.Context, limit int) ([]db.TemplateUsage, error)

	CreateResume(ctx context.Context, r *db.Resume) error
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	GetResumeByShareLink(ctx context.Context, link string) (*db.Resume, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	UpdateResume(ctx context.Context, r *db.Resume) (bool, error)
	SetResumeVisibility(ctx context.Context, id uuid.UUID, isPublic bool) (bool, error)
	RecalculateScore(ctx context.Context, id uuid.UUID) (int, error)
	DeleteResume(ctx context.Context, id uuid.UUID) (bool, error)
	CountResumes(ctx context.Context) (int, error)
	CountResumesSince(ctx context.Context, since time.Time) (int, error)
	ListAllResumes(ctx context.Context, limit int) ([]db.ResumeWithOwner, error)
}

var _ Store = (*db.DB)(nil)
