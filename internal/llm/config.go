// Package llm wraps the generative model used by the writing assistant.
package llm

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// Config holds generation settings
type Config struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns settings suited to short rewrites
func DefaultConfig() *Config {
	return &Config{
		Model:           DefaultModel,
		Temperature:     0.3,
		MaxOutputTokens: 512,
	}
}

// WithModel returns a copy of the config using model, or the receiver when model is empty
func (c *Config) WithModel(model string) *Config {
	if model == "" {
		return c
	}
	out := *c
	out.Model = model
	return &out
}
