package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

func TestAsDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	dup := asDuplicate(fmt.Errorf("insert: %w", pgErr))
	require.NotNil(t, dup)
	assert.Equal(t, "users_email_key", dup.Constraint)
	assert.Contains(t, dup.Error(), "users_email_key")

	assert.Nil(t, asDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.Nil(t, asDuplicate(errors.New("boom")))
}

func TestMigrationsAreOrdered(t *testing.T) {
	require.NotEmpty(t, Migrations)
	seen := map[string]bool{}
	for i, m := range Migrations {
		assert.False(t, seen[m.Name], "duplicate migration %s", m.Name)
		seen[m.Name] = true
		assert.True(t, strings.HasPrefix(m.Name, fmt.Sprintf("%04d_", i+1)), m.Name)
		assert.NotEmpty(t, strings.TrimSpace(m.SQL))
	}
}

func TestResumeContentRoundTrip(t *testing.T) {
	in := resume.Resume{
		PersonalInfo: resume.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Skills:       []resume.Skill{{Name: "Go"}},
		Experience: []resume.Experience{{
			Company: "Analytical Engines", Position: "Engineer",
			StartDate: resume.NewDate(2020, 1, 1), Current: true,
		}},
	}

	c, err := encodeContent(&in)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(c.education))
	assert.JSONEq(t, `[{"name":"Go","level":"intermediate"}]`, string(c.skills))

	var out resume.Resume
	require.NoError(t, c.decode(&out))
	assert.Equal(t, "Ada Lovelace", out.PersonalInfo.FullName)
	require.Len(t, out.Experience, 1)
	assert.True(t, out.Experience[0].Current)
	assert.Equal(t, 2020, out.Experience[0].StartDate.Year())
	assert.NotNil(t, out.Projects)
	assert.Equal(t, resume.Score(&in), resume.Score(&out))
}

func TestResumeContentDecodeInvalid(t *testing.T) {
	c := resumeContent{skills: []byte(`{"not":"a list"}`)}
	var out resume.Resume
	assert.Error(t, c.decode(&out))
}
