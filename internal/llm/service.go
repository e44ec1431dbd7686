package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/prompts"
)

// Service resolves named prompt templates and runs them through a Client.
// It is the concrete text-generation collaborator handed to the extraction
// pipeline.
type Service struct {
	client Client
	log    *zap.Logger
}

// NewService creates a Service on top of an existing client
func NewService(client Client, log *zap.Logger) *Service {
	return &Service{client: client, log: logger.NopIfNil(log)}
}

// Complete renders the named template with vars and generates a response.
// The response is expected to be a single JSON object but is not trusted to
// be one; callers repair and validate it.
func (s *Service) Complete(ctx context.Context, templateKey string, vars map[string]string) (string, error) {
	template, err := prompts.Get(templateKey)
	if err != nil {
		return "", fmt.Errorf("resolve prompt template: %w", err)
	}

	prompt := prompts.Format(template, vars)
	s.log.Debug("invoking text generation",
		zap.String("template", templateKey),
		zap.Int("prompt_chars", len(prompt)))

	response, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.log.Debug("text generation finished",
		zap.String("template", templateKey),
		zap.String("response_head", logger.Truncate(response, 120)))
	return response, nil
}
