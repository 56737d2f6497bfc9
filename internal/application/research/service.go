// Package research turns web search hits into prompt context.
package research

import (
	"context"
	"errors"
	"strings"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/pkg/logger"
	"github.com/doeshing/trendpost/internal/ports"
)

// Service wraps a SearchClient and applies the "no recent results" fallback.
type Service struct {
	Client       ports.SearchClient
	Logger       ports.Logger
	SnippetLimit int
}

// Search returns the joined snippets for topic, or domain.SentinelNoResults
// when the search failed or found nothing. It never fails.
func (s *Service) Search(ctx context.Context, topic string) string {
	log := s.logger()
	if s.Client == nil {
		log.Error("web search unavailable", errors.New("research.Service has no search client"), nil)
		return domain.SentinelNoResults
	}

	log.Info("searching the web", map[string]interface{}{"topic": topic})
	items, err := s.Client.Search(ctx, topic)
	if err != nil {
		log.Error("web search failed", err, map[string]interface{}{"topic": topic})
		return domain.SentinelNoResults
	}

	for _, item := range items {
		log.Info("search result", map[string]interface{}{
			"title":   item.Title,
			"snippet": item.Snippet,
			"link":    item.Link,
		})
	}

	snippets, ok := JoinSnippets(items, s.SnippetLimit)
	if !ok {
		log.Info("no search results found", map[string]interface{}{"topic": topic})
		return domain.SentinelNoResults
	}
	return snippets
}

func (s *Service) logger() ports.Logger {
	if s.Logger == nil {
		return logger.NewNop()
	}
	return s.Logger
}

// JoinSnippets joins the snippets with single spaces in the given order and
// cuts the result to at most limit characters. ok is false when items is
// empty. A non-positive limit means domain.DefaultSnippetLimit.
func JoinSnippets(items []domain.SearchItem, limit int) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	if limit <= 0 {
		limit = domain.DefaultSnippetLimit
	}
	snippets := make([]string, 0, len(items))
	for _, item := range items {
		snippets = append(snippets, item.Snippet)
	}
	return truncate(strings.Join(snippets, " "), limit), true
}

func truncate(text string, limit int) string {
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
