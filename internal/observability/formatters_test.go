package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/seed"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/suggestions"
)

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := &resume.Resume{
		PersonalInfo: resume.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Phone: "555"},
		Skills:       []resume.Skill{{Name: "Go"}},
	}

	p.PrintScore(r)
	output := buf.String()

	assert.Contains(t, output, "RESUME COMPLETENESS")
	assert.Contains(t, output, "Completeness: 23%")
	assert.Contains(t, output, "✓ contact")
	assert.Contains(t, output, "~ skills")
	assert.Contains(t, output, "10/15")
	assert.Contains(t, output, "✗ certifications")
}

func TestPrintScore_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScore(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	s := suggestions.Suggestions{
		Summary: []suggestions.Suggestion{{Type: suggestions.TypeWarning, Message: "Add a professional summary"}},
		Skills: []suggestions.Suggestion{
			{Type: suggestions.TypeImprovement, Message: "Add more skills"},
		},
	}

	p.PrintSuggestions(s)
	output := buf.String()

	assert.Contains(t, output, "SUGGESTIONS")
	assert.Contains(t, output, "Found 2 suggestions")
	assert.Contains(t, output, "⚠ Add a professional summary")
	assert.Contains(t, output, "↑ Add more skills")
	assert.NotContains(t, output, "Experience:")
}

func TestPrintSuggestions_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestions(suggestions.Suggestions{})

	assert.Contains(t, buf.String(), "NO SUGGESTIONS")
}

func TestPrintSuggestions_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var general []suggestions.Suggestion
	for i := 0; i < maxItemsToShow+2; i++ {
		general = append(general, suggestions.Suggestion{Type: suggestions.TypeInfo, Message: "tip"})
	}

	p.PrintSuggestions(suggestions.Suggestions{General: general})

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords("designer", []string{"Figma", "Prototyping"})
	output := buf.String()

	assert.Contains(t, output, "KEYWORDS")
	assert.Contains(t, output, "Role: designer")
	assert.Contains(t, output, "• Figma")
}

func TestPrintSeedResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSeedResult(&seed.Result{AdminCreated: true, TemplatesCreated: 3, TemplatesSkipped: 1})
	output := buf.String()

	assert.Contains(t, output, "Admin account:     created")
	assert.Contains(t, output, "Templates created: 3")
	assert.Contains(t, output, "Templates skipped: 1")
}

func TestPrintBox_LongLinesAreTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}
