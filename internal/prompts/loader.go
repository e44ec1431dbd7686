// Package prompts provides a loader for externalized LLM prompt templates.
// Templates are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Template keys available in matching.json
const (
	// KeyCombinedMatch requests education and experience match data given
	// both the resume and the job text
	KeyCombinedMatch = "combined_match"
	// KeyResumeSummary requests the skills taxonomy and narrative summary
	// given the resume text only
	KeyResumeSummary = "resume_summary"
)

// matchingFile is the single prompt file for the matching pipeline
const matchingFile = "matching.json"

var (
	cache   map[string]string
	cacheMu sync.Mutex
)

// Get retrieves a prompt template by key from the embedded matching prompts
func Get(key string) (string, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cache == nil {
		data, err := promptFiles.ReadFile(matchingFile)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file %s: %w", matchingFile, err)
		}
		if err := json.Unmarshal(data, &cache); err != nil {
			return "", fmt.Errorf("failed to parse prompt file %s: %w", matchingFile, err)
		}
	}

	prompt, exists := cache[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, matchingFile)
	}
	return prompt, nil
}

// Format replaces template placeholders in the form {{.key}} with values
// from vars.
func Format(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
