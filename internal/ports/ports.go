// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application services in internal/application depend only on these
// interfaces; concrete adapters (HTTP clients, history files, loggers) live in
// internal/infrastructure and internal/pkg and are wired in internal/app.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/trendpost/internal/domain"
)

// ConfigProvider loads the latest configuration.
// Implementations typically read ~/.trendpost/config.yaml plus the environment.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SearchClient queries a web search API for a topic.
// Errors cover transport and decoding failures; an empty slice means no hits.
type SearchClient interface {
	Search(ctx context.Context, topic string) ([]domain.SearchItem, error)
}

// GenerationClient sends a prompt to a generative-text API.
// An error is returned only when the request itself failed; a reply with an
// unexpected shape comes back as a (possibly empty) response.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (domain.GenerationResponse, error)
}

// HistoryStore persists generation records in append order.
type HistoryStore interface {
	Append(ctx context.Context, record domain.GenerationRecord) error
	Records(ctx context.Context) ([]domain.GenerationRecord, error)
	Clear(ctx context.Context) error
	Path() string
}

// Clock abstracts time.Now so record timestamps are testable.
type Clock interface {
	Now() time.Time
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }
