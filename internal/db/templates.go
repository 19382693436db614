package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const templateColumns = `id, name, description, thumbnail, category, is_active, is_ats, is_custom,
	custom_template_url, layout, styles, usage_count, created_by, created_at, updated_at`

func scanTemplate(row rowScanner) (*Template, error) {
	var t Template
	var styles []byte
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Thumbnail, &t.Category, &t.IsActive, &t.IsATS,
		&t.IsCustom, &t.CustomTemplateURL, &t.Layout, &styles, &t.UsageCount, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(styles) > 0 {
		if err := json.Unmarshal(styles, &t.Styles); err != nil {
			return nil, fmt.Errorf("failed to decode template styles: %w", err)
		}
	}
	return &t, nil
}

func collectTemplates(rows pgx.Rows) ([]Template, error) {
	defer rows.Close()
	templates := []Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// CreateTemplate inserts a template and fills in its ID, counters and timestamps.
// A taken name yields *ErrDuplicate.
func (db *DB) CreateTemplate(ctx context.Context, t *Template) error {
	styles, err := json.Marshal(t.Styles)
	if err != nil {
		return fmt.Errorf("failed to marshal template styles: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO templates (name, description, thumbnail, category, is_active, is_ats, is_custom,
		                        custom_template_url, layout, styles, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, usage_count, created_at, updated_at`,
		t.Name, t.Description, t.Thumbnail, t.Category, t.IsActive, t.IsATS, t.IsCustom,
		t.CustomTemplateURL, t.Layout, styles, t.CreatedBy,
	).Scan(&t.ID, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if dup := asDuplicate(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetTemplate retrieves a template by ID. Returns nil, nil when not found.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	t, err := scanTemplate(db.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

// TemplateNameExists reports whether a template already uses the name
func (db *DB) TemplateNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM templates WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check template name: %w", err)
	}
	return exists, nil
}

// ListTemplates returns templates ordered by name. activeOnly hides disabled ones.
func (db *DB) ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return collectTemplates(rows)
}

// UpdateTemplate saves the editable fields of a template. Returns false when
// the template does not exist.
func (db *DB) UpdateTemplate(ctx context.Context, t *Template) (bool, error) {
	styles, err := json.Marshal(t.Styles)
	if err != nil {
		return false, fmt.Errorf("failed to marshal template styles: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`UPDATE templates
		 SET name = $1, description = $2, thumbnail = $3, category = $4, is_active = $5,
		     is_ats = $6, layout = $7, styles = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING usage_count, created_at, updated_at`,
		t.Name, t.Description, t.Thumbnail, t.Category, t.IsActive, t.IsATS, t.Layout, styles, t.ID,
	).Scan(&t.UsageCount, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		if dup := asDuplicate(err); dup != nil {
			return false, dup
		}
		return false, fmt.Errorf("failed to update template: %w", err)
	}
	return true, nil
}

// DeleteTemplate removes a template. Resumes using it fall back to default styles.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ToggleTemplateActive flips is_active and returns the updated template, or nil when absent
func (db *DB) ToggleTemplateActive(ctx context.Context, id uuid.UUID) (*Template, error) {
	t, err := scanTemplate(db.pool.QueryRow(ctx,
		`UPDATE templates SET is_active = NOT is_active, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+templateColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle template: %w", err)
	}
	return t, nil
}

// IncrementTemplateUsage bumps the usage counter of a template
func (db *DB) IncrementTemplateUsage(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE templates SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment template usage: %w", err)
	}
	return nil
}

// CountTemplates returns the number of templates
func (db *DB) CountTemplates(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return n, nil
}

// TopTemplates returns the most used templates, most used first
func (db *DB) TopTemplates(ctx context.Context, limit int) ([]TemplateUsage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, usage_count FROM templates ORDER BY usage_count DESC, name LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top templates: %w", err)
	}
	defer rows.Close()

	top := []TemplateUsage{}
	for rows.Next() {
		var u TemplateUsage
		if err := rows.Scan(&u.ID, &u.Name, &u.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan template usage: %w", err)
		}
		top = append(top, u)
	}
	return top, rows.Err()
}
