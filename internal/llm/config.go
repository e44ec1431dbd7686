package llm

// defaultModel is used when no model is configured. Extraction is a
// structured-output task, so the standard tier is enough.
const defaultModel = "gemini-2.5-flash"

// Config holds the model configuration for text generation
type Config struct {
	Model string
	// Temperature is kept low for consistent structured output
	Temperature float32
}

// DefaultConfig returns the default generation configuration
func DefaultConfig() *Config {
	return &Config{
		Model:       defaultModel,
		Temperature: 0.1,
	}
}
