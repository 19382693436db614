package server

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

// mockStore is an in-memory Store
type mockStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*db.User
	templates map[uuid.UUID]*db.Template
	resumes   map[uuid.UUID]*db.Resume

	// pingErr is returned from Ping
	pingErr error
	// linkCollisions makes the next n CreateResume calls fail with ErrDuplicate
	linkCollisions int
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     make(map[uuid.UUID]*db.User),
		templates: make(map[uuid.UUID]*db.Template),
		resumes:   make(map[uuid.UUID]*db.Resume),
	}
}

func (m *mockStore) Ping(_ context.Context) error { return m.pingErr }

func (m *mockStore) CreateUser(_ context.Context, name, email, passwordHash, role string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return nil, &db.ErrDuplicate{Constraint: "users_email_key"}
		}
	}
	now := time.Now().UTC()
	u := &db.User{
		ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, Role: role,
		CreatedAt: now, UpdatedAt: now,
	}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *mockStore) UpdateUser(_ context.Context, u *db.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	cp.Email = strings.ToLower(strings.TrimSpace(cp.Email))
	cp.UpdatedAt = time.Now().UTC()
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]db.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (m *mockStore) CountUsers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *mockStore) UserGrowth(_ context.Context, since time.Time) ([]db.MonthCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			counts[u.CreatedAt.Format("2006-01")]++
		}
	}
	growth := []db.MonthCount{}
	for month, n := range counts {
		growth = append(growth, db.MonthCount{Month: month, Count: n})
	}
	sort.Slice(growth, func(i, j int) bool { return growth[i].Month < growth[j].Month })
	return growth, nil
}

func (m *mockStore) CreateTemplate(_ context.Context, t *db.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.templates {
		if existing.Name == t.Name {
			return &db.ErrDuplicate{Constraint: "templates_name_key"}
		}
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *mockStore) GetTemplate(_ context.Context, id uuid.UUID) (*db.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockStore) TemplateNameExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.templates {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) ListTemplates(_ context.Context, activeOnly bool) ([]db.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	templates := []db.Template{}
	for _, t := range m.templates {
		if activeOnly && !t.IsActive {
			continue
		}
		templates = append(templates, *t)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

func (m *mockStore) UpdateTemplate(_ context.Context, t *db.Template) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.templates[t.ID]
	if !ok {
		return false, nil
	}
	t.UsageCount = existing.UsageCount
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	m.templates[t.ID] = &cp
	return true, nil
}

func (m *mockStore) DeleteTemplate(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return false, nil
	}
	delete(m.templates, id)
	for _, r := range m.resumes {
		if r.TemplateID != nil && *r.TemplateID == id {
			r.TemplateID = nil
		}
	}
	return true, nil
}

func (m *mockStore) ToggleTemplateActive(_ context.Context, id uuid.UUID) (*db.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	t.IsActive = !t.IsActive
	cp := *t
	return &cp, nil
}

func (m *mockStore) IncrementTemplateUsage(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.templates[id]; ok {
		t.UsageCount++
	}
	return nil
}

func (m *mockStore) CountTemplates(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.templates), nil
}

func (m *mockStore) TopTemplates(_ context.Context, limit int) ([]db.TemplateUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	top := []db.TemplateUsage{}
	for _, t := range m.templates {
		top = append(top, db.TemplateUsage{ID: t.ID, Name: t.Name, UsageCount: t.UsageCount})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].UsageCount != top[j].UsageCount {
			return top[i].UsageCount > top[j].UsageCount
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (m *mockStore) CreateResume(_ context.Context, r *db.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkCollisions > 0 {
		m.linkCollisions--
		return &db.ErrDuplicate{Constraint: "resumes_shareable_link_key"}
	}
	r.ID = uuid.New()
	r.Completeness = resume.Score(&r.Resume)
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.resumes[r.ID] = &cp
	return nil
}

func (m *mockStore) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *mockStore) GetResumeByShareLink(_ context.Context, link string) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resumes {
		if r.ShareableLink == link {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListResumesByUser(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resumes []db.Resume
	for _, r := range m.resumes {
		if r.UserID == userID {
			resumes = append(resumes, *r)
		}
	}
	return resumes, nil
}

func (m *mockStore) UpdateResume(_ context.Context, r *db.Resume) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[r.ID]; !ok {
		return false, nil
	}
	r.Completeness = resume.Score(&r.Resume)
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	m.resumes[r.ID] = &cp
	return true, nil
}

func (m *mockStore) SetResumeVisibility(_ context.Context, id uuid.UUID, isPublic bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return false, nil
	}
	r.IsPublic = isPublic
	return true, nil
}

func (m *mockStore) RecalculateScore(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return -1, nil
	}
	r.Completeness = resume.Score(&r.Resume)
	return r.Completeness, nil
}

func (m *mockStore) DeleteResume(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

func (m *mockStore) CountResumes(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resumes), nil
}

func (m *mockStore) CountResumesSince(_ context.Context, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.resumes {
		if !r.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *mockStore) ListAllResumes(_ context.Context, limit int) ([]db.ResumeWithOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []db.ResumeWithOwner{}
	for _, r := range m.resumes {
		row := db.ResumeWithOwner{Resume: *r}
		if u, ok := m.users[r.UserID]; ok {
			row.OwnerName = u.Name
			row.OwnerEmail = u.Email
		}
		all = append(all, row)
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

var _ Store = (*mockStore)(nil)

// addUser stores a user with the given password hashed under cfg
func (m *mockStore) addUser(t testing.TB, cfg *config.PasswordConfig, name, email, password, role string) *db.User {
	hash, err := cfg.HashPassword(password)
	require.NoError(t, err)
	u, err := m.CreateUser(context.Background(), name, email, hash, role)
	require.NoError(t, err)
	return u
}

// addTemplate stores an active template
func (m *mockStore) addTemplate(name string, styles resume.Styles) *db.Template {
	t := &db.Template{
		Name:     name,
		Category: db.CategoryModern,
		Layout:   db.LayoutModern,
		IsActive: true,
		Styles:   styles,
	}
	_ = m.CreateTemplate(context.Background(), t)
	return t
}

// memBlobStore keeps uploads in memory
type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memBlobStore) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return "/uploads/" + key, nil
}

// fakeRenderer returns a fixed PDF body and remembers the last page
type fakeRenderer struct {
	mu   sync.Mutex
	html string
	err  error
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

// fakeQR encodes the URL verbatim so tests can read it back
type fakeQR struct{}

func (fakeQR) Encode(url string) (string, error) {
	return "data:image/png;base64," + url, nil
}
