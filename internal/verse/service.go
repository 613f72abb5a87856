// Package verse turns a free-text query into a verse-and-reflection reply.
package verse

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces text for a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service renders the verse prompt template and asks the generator.
type Service struct {
	gen Generator
}

// New creates a verse service.
func New(gen Generator) *Service {
	return &Service{gen: gen}
}

// Lookup returns the formatted verse reply for a query. A blank generation
// is returned as an empty string; the caller decides how to phrase that.
func (s *Service) Lookup(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, query)

	out, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate verse: %w", err)
	}
	return strings.TrimSpace(out), nil
}
