// Package post orchestrates one run: search the topic, build the prompt and
// generate the post.
package post

import (
	"context"

	"github.com/doeshing/trendpost/internal/pkg/logger"
	"github.com/doeshing/trendpost/internal/ports"
)

// Searcher returns prompt context for a topic and never fails.
type Searcher interface {
	Search(ctx context.Context, topic string) string
}

// Generator returns post text for a prompt and never fails.
type Generator interface {
	Generate(ctx context.Context, topic, prompt string) string
}

// Service runs the search-then-generate pipeline once.
type Service struct {
	Searcher  Searcher
	Generator Generator
	Logger    ports.Logger
	MaxChars  int
}

// Run produces a post about topic. The generator's result is returned as is.
func (s *Service) Run(ctx context.Context, topic string) string {
	log := s.Logger
	if log == nil {
		log = logger.NewNop()
	}

	snippets := s.Searcher.Search(ctx, topic)
	prompt := BuildPrompt(topic, snippets, s.MaxChars)
	log.Debug("prompt built", map[string]interface{}{"prompt": prompt})

	result := s.Generator.Generate(ctx, topic, prompt)
	log.Info("post generated", map[string]interface{}{"topic": topic, "post": result})
	return result
}
