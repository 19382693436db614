package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

const resumeColumns = `id, user_id, template_id, personal_info, education, experience, skills,
	projects, certifications, completeness, is_public, shareable_link, qr_code, created_at, updated_at`

// resumeContent holds the JSONB encodings of the authored sections.
type resumeContent struct {
	personalInfo, education, experience, skills, projects, certifications []byte
}

func encodeContent(r *resume.Resume) (*resumeContent, error) {
	r.Normalize()
	var c resumeContent
	var err error
	fields := []struct {
		dst *[]byte
		src any
	}{
		{&c.personalInfo, r.PersonalInfo},
		{&c.education, r.Education},
		{&c.experience, r.Experience},
		{&c.skills, r.Skills},
		{&c.projects, r.Projects},
		{&c.certifications, r.Certifications},
	}
	for _, f := range fields {
		if *f.dst, err = json.Marshal(f.src); err != nil {
			return nil, fmt.Errorf("failed to marshal resume content: %w", err)
		}
	}
	return &c, nil
}

func (c *resumeContent) decode(r *resume.Resume) error {
	fields := []struct {
		src []byte
		dst any
	}{
		{c.personalInfo, &r.PersonalInfo},
		{c.education, &r.Education},
		{c.experience, &r.Experience},
		{c.skills, &r.Skills},
		{c.projects, &r.Projects},
		{c.certifications, &r.Certifications},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := json.Unmarshal(f.src, f.dst); err != nil {
			return fmt.Errorf("failed to decode resume content: %w", err)
		}
	}
	r.Normalize()
	return nil
}

func scanResume(row rowScanner) (*Resume, error) {
	var r Resume
	var c resumeContent
	err := row.Scan(&r.ID, &r.UserID, &r.TemplateID, &c.personalInfo, &c.education, &c.experience,
		&c.skills, &c.projects, &c.certifications, &r.Completeness, &r.IsPublic, &r.ShareableLink,
		&r.QRCode, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := c.decode(&r.Resume); err != nil {
		return nil, err
	}
	return &r, nil
}

func collectResumes(rows pgx.Rows) ([]Resume, error) {
	defer rows.Close()
	resumes := []Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// CreateResume scores and inserts a resume, filling in ID, score and
// timestamps. A taken shareable link yields *ErrDuplicate so the caller can
// retry with a fresh link.
func (db *DB) CreateResume(ctx context.Context, r *Resume) error {
	c, err := encodeContent(&r.Resume)
	if err != nil {
		return err
	}
	score := resume.Score(&r.Resume)

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, template_id, personal_info, education, experience, skills,
		                      projects, certifications, completeness, is_public, shareable_link, qr_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		r.UserID, r.TemplateID, c.personalInfo, c.education, c.experience, c.skills,
		c.projects, c.certifications, score, r.IsPublic, r.ShareableLink, r.QRCode,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if dup := asDuplicate(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create resume: %w", err)
	}
	r.Completeness = score
	return nil
}

// GetResume retrieves a resume by ID. Returns nil, nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// GetResumeByShareLink retrieves a resume by its shareable link. Returns nil, nil when not found.
func (db *DB) GetResumeByShareLink(ctx context.Context, link string) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE shareable_link = $1`, link))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume by share link: %w", err)
	}
	return r, nil
}

// ListResumesByUser returns a user's resumes, newest first
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return collectResumes(rows)
}

// UpdateResume rescores and saves the content and visibility of a resume.
// Returns false when the resume does not exist.
func (db *DB) UpdateResume(ctx context.Context, r *Resume) (bool, error) {
	c, err := encodeContent(&r.Resume)
	if err != nil {
		return false, err
	}
	score := resume.Score(&r.Resume)

	err = db.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET personal_info = $1, education = $2, experience = $3, skills = $4, projects = $5,
		     certifications = $6, completeness = $7, is_public = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING updated_at`,
		c.personalInfo, c.education, c.experience, c.skills, c.projects, c.certifications,
		score, r.IsPublic, r.ID,
	).Scan(&r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update resume: %w", err)
	}
	r.Completeness = score
	return true, nil
}

// SetResumeVisibility toggles public access through the shareable link
func (db *DB) SetResumeVisibility(ctx context.Context, id uuid.UUID, isPublic bool) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET is_public = $1, updated_at = NOW() WHERE id = $2`, isPublic, id)
	if err != nil {
		return false, fmt.Errorf("failed to set resume visibility: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RecalculateScore recomputes and stores the completeness of a resume under a
// row lock. Returns -1 when the resume does not exist.
func (db *DB) RecalculateScore(ctx context.Context, id uuid.UUID) (int, error) {
	score := -1
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		r, err := scanResume(tx.QueryRow(ctx,
			`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		score = resume.Score(&r.Resume)
		_, err = tx.Exec(ctx,
			`UPDATE resumes SET completeness = $1, updated_at = NOW() WHERE id = $2`, score, id)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to recalculate score: %w", err)
	}
	return score, nil
}

// DeleteResume removes a resume
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountResumes returns the number of resumes
func (db *DB) CountResumes(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return n, nil
}

// CountResumesSince returns the number of resumes created at or after since
func (db *DB) CountResumesSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM resumes WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent resumes: %w", err)
	}
	return n, nil
}

// ListAllResumes returns the newest resumes across all users with their owners
func (db *DB) ListAllResumes(ctx context.Context, limit int) ([]ResumeWithOwner, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.user_id, r.template_id, r.personal_info, r.education, r.experience, r.skills,
		        r.projects, r.certifications, r.completeness, r.is_public, r.shareable_link, r.qr_code,
		        r.created_at, r.updated_at, u.name, u.email
		 FROM resumes r
		 JOIN users u ON u.id = r.user_id
		 ORDER BY r.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list all resumes: %w", err)
	}
	defer rows.Close()

	out := []ResumeWithOwner{}
	for rows.Next() {
		var item ResumeWithOwner
		var c resumeContent
		err := rows.Scan(&item.ID, &item.UserID, &item.TemplateID, &c.personalInfo, &c.education,
			&c.experience, &c.skills, &c.projects, &c.certifications, &item.Completeness, &item.IsPublic,
			&item.ShareableLink, &item.QRCode, &item.CreatedAt, &item.UpdatedAt,
			&item.OwnerName, &item.OwnerEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if err := c.decode(&item.Resume.Resume); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
