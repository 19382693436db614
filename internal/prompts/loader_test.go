package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get(ImproveFile, "rewrite-sentence")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Instruction}}")
	assert.Contains(t, prompt, "{{.Text}}")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(ImproveFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			template: "Hello {{.Name}}!",
			data:     map[string]string{"Name": "World"},
			expected: "Hello World!",
		},
		{
			name:     "repeated placeholder",
			template: "{{.X}} and {{.X}}",
			data:     map[string]string{"X": "y"},
			expected: "y and y",
		},
		{
			name:     "missing data leaves placeholder",
			template: "Hello {{.Name}}",
			data:     map[string]string{},
			expected: "Hello {{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestImproveText(t *testing.T) {
	prompt, err := ImproveText("quantifiable", "Built a payment service")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Sentence: Built a payment service")
	assert.Contains(t, prompt, "measurable impact")
	assert.NotContains(t, prompt, "{{.")
}

func TestImproveText_UnknownKindUsesGeneral(t *testing.T) {
	prompt, err := ImproveText("poetic", "Wrote code")
	require.NoError(t, err)
	assert.Contains(t, prompt, "clearer and more professional")
}

func TestImproveFile_EveryKindHasInstruction(t *testing.T) {
	for _, kind := range []string{"general", "action-oriented", "quantifiable"} {
		_, err := Get(ImproveFile, "instruction-"+kind)
		assert.NoError(t, err, kind)
	}
}
