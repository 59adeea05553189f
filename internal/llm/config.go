// Package llm wraps the external text-completion service used for keyword extraction.
package llm

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config selects the model and sampling for completions.
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns a low-temperature config so repeated extractions agree.
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: 0.1,
	}
}

func (c *Config) model() string {
	if c == nil || c.Model == "" {
		return DefaultModel
	}
	return c.Model
}
