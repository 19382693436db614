package schemas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "error should be ValidationError type, got %v", err)
	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateResume_Valid(t *testing.T) {
	body := `{
		"templateId": "6f1c1d1e-8f4a-4c1b-9b1e-2c3d4e5f6a7b",
		"personalInfo": {"fullName": "Ada Lovelace", "email": "ada@example.com", "phone": "555"},
		"experience": [{"company": "Engines", "position": "Engineer", "startDate": "2020-01-01", "endDate": null, "current": true, "achievements": ["Shipped"]}],
		"education": [{"institution": "MIT", "degree": "BSc", "startDate": "2016-09"}],
		"skills": [{"name": "Go", "level": "expert"}, {"name": "SQL"}],
		"projects": [{"title": "Compiler", "technologies": ["Go"]}],
		"certifications": [{"name": "CKA", "date": "2023-05-01T00:00:00Z"}]
	}`
	assert.NoError(t, ValidateResume([]byte(body)))
}

func TestValidateResume_PartialUpdate(t *testing.T) {
	assert.NoError(t, ValidateResume([]byte(`{"skills": []}`)))
	assert.NoError(t, ValidateResume([]byte(`{}`)))
}

func TestValidateResume_MissingRequired(t *testing.T) {
	err := ValidateResume([]byte(`{"personalInfo": {"fullName": "Ada"}}`))
	require.Error(t, err)
	fieldsOf(t, err)
	assert.Contains(t, err.Error(), "email is required")
}

func TestValidateResume_ReportsEveryField(t *testing.T) {
	body := `{
		"personalInfo": {"fullName": "Ada", "email": "not-an-email"},
		"experience": [{"company": "Engines"}],
		"skills": [{"name": "Go", "level": "guru"}],
		"projects": [{"title": "X", "startDate": "yesterday"}]
	}`
	err := ValidateResume([]byte(body))
	require.Error(t, err)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "personalInfo.email")
	assert.Contains(t, err.Error(), "position is required")
	assert.Contains(t, fields, "skills.0.level")
	assert.Contains(t, fields, "projects.0.startDate")
}

func TestValidateResume_InvalidJSON(t *testing.T) {
	err := ValidateResume([]byte(`{"personalInfo": `))
	require.Error(t, err)
	assert.Equal(t, []string{"(root)"}, fieldsOf(t, err))
}

func TestValidateTemplateCatalog(t *testing.T) {
	valid := `[{"name": "Modern", "description": "d", "category": "modern", "layout": "modern",
		"isATS": true, "styles": {"primaryColor": "#3b82f6", "secondaryColor": "#1e40af", "fontFamily": "Inter", "fontSize": "14px"}}]`
	assert.NoError(t, ValidateTemplateCatalog([]byte(valid)))

	invalid := `[{"name": "Bad", "description": "d", "category": "retro", "layout": "modern",
		"styles": {"primaryColor": "blue", "secondaryColor": "#1e40af", "fontFamily": "Inter", "fontSize": "14pt"}}]`
	err := ValidateTemplateCatalog([]byte(invalid))
	require.Error(t, err)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "0.category")
	assert.Contains(t, fields, "0.styles.primaryColor")
	assert.Contains(t, fields, "0.styles.fontSize")

	assert.Error(t, ValidateTemplateCatalog([]byte(`[]`)))
}

func TestReadResumeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"personalInfo": {"fullName": "Ada", "email": "ada@example.com"}}`), 0o644))

	data, err := ReadResumeFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ada")

	_, err = ReadResumeFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"personalInfo": {"fullName": "Ada", "email": "nope"}}`), 0o644))
	_, err = ReadResumeFile(bad)
	assert.Contains(t, fieldsOf(t, err), "personalInfo.email")
}
