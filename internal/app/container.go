package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/trendpost/internal/application/generation"
	"github.com/doeshing/trendpost/internal/application/post"
	"github.com/doeshing/trendpost/internal/application/research"
	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/infrastructure/ai"
	"github.com/doeshing/trendpost/internal/infrastructure/config"
	"github.com/doeshing/trendpost/internal/infrastructure/history"
	"github.com/doeshing/trendpost/internal/infrastructure/search"
	"github.com/doeshing/trendpost/internal/pkg/logger"
	"github.com/doeshing/trendpost/internal/ports"
)

// Options tunes container construction.
type Options struct {
	Verbose    bool
	ConfigPath string
	// Logger replaces the zap console logger when set.
	Logger *logger.ZapLogger
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	PostService  *post.Service
	ConfigLoader *config.FileLoader
	Config       domain.Config
	HistoryStore ports.HistoryStore
	Logger       *logger.ZapLogger
	RunID        string

	closers []func() error
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	base := opts.Logger
	if base == nil {
		base, err = logger.New(opts.Verbose)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}
	runID := uuid.NewString()
	log := base.With(map[string]interface{}{"run": runID})

	c := &Container{
		ConfigLoader: cfgLoader,
		Config:       cfg,
		Logger:       log,
		RunID:        runID,
	}

	historyStore, err := c.newHistoryStore(cfg, log)
	if err != nil {
		return nil, err
	}
	c.HistoryStore = historyStore

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second}

	c.PostService = &post.Service{
		Searcher: &research.Service{
			Client: search.NewGoogleClient(
				cfg.Search.Endpoint,
				cfg.Credentials.SearchAPIKey,
				cfg.Credentials.SearchContextID,
				httpClient,
			),
			Logger:       log,
			SnippetLimit: cfg.Search.SnippetLimit,
		},
		Generator: &generation.Service{
			Client: ai.NewGeminiClient(
				cfg.Generation.Endpoint,
				cfg.Generation.Model,
				cfg.Credentials.GenerationAPIKey,
				httpClient,
				log,
			),
			History: historyStore,
			Clock:   ports.SystemClock{},
			Logger:  log,
		},
		Logger:   log,
		MaxChars: cfg.Post.MaxChars,
	}
	return c, nil
}

func (c *Container) newHistoryStore(cfg domain.Config, log ports.Logger) (ports.HistoryStore, error) {
	switch cfg.History.Backend {
	case domain.HistoryBackendJSON:
		return history.NewFileStore(cfg.History.Path, history.OSBackend{}, log), nil
	case domain.HistoryBackendSQLite:
		path := cfg.History.Path
		if filepath.Ext(path) == ".json" {
			path = path[:len(path)-len(".json")] + ".db"
		}
		store, err := history.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %q", cfg.History.Backend)
	}
}

// Close releases stores and flushes the logger.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Sync on stderr reports EINVAL on some platforms; it is not actionable.
	_ = c.Logger.Sync()
	return firstErr
}
