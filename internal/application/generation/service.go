// Package generation produces post text and records every completed call in
// the history store.
package generation

import (
	"context"
	"errors"
	"time"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/pkg/logger"
	"github.com/doeshing/trendpost/internal/ports"
)

// Service wraps a GenerationClient with the placeholder fallback and history
// persistence.
type Service struct {
	Client  ports.GenerationClient
	History ports.HistoryStore
	Clock   ports.Clock
	Logger  ports.Logger
}

// Generate sends prompt and returns the generated text, or
// domain.PlaceholderGenerationFailed when nothing usable came back.
//
// A record is appended whenever the request completed, including when the
// reply had no text. When the request itself failed nothing is recorded.
// Generate never fails; history errors are logged.
func (s *Service) Generate(ctx context.Context, topic, prompt string) string {
	log := s.logger()
	if s.Client == nil {
		log.Error("generation unavailable", errors.New("generation.Service has no client"), nil)
		return domain.PlaceholderGenerationFailed
	}

	resp, err := s.Client.Generate(ctx, prompt)
	if err != nil {
		log.Error("generation request failed", err, map[string]interface{}{"topic": topic})
		return domain.PlaceholderGenerationFailed
	}

	result := resp.TextOrPlaceholder()
	if result == domain.PlaceholderGenerationFailed {
		log.Warn("generation response carried no text", map[string]interface{}{"topic": topic})
	}

	s.record(ctx, domain.NewGenerationRecord(topic, prompt, result, resp, s.now()))
	return result
}

// record runs detached from ctx cancellation: a completed request is always
// recorded, even when the caller's deadline expired meanwhile.
func (s *Service) record(ctx context.Context, rec domain.GenerationRecord) {
	ctx = context.WithoutCancel(ctx)
	log := s.logger()
	if s.History == nil {
		log.Warn("history store unavailable, generation not recorded", nil)
		return
	}
	if err := s.History.Append(ctx, rec); err != nil {
		log.Error("history update failed", err, map[string]interface{}{"path": s.History.Path()})
		return
	}
	log.Info("history updated", map[string]interface{}{"path": s.History.Path()})
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() ports.Logger {
	if s.Logger == nil {
		return logger.NewNop()
	}
	return s.Logger
}
