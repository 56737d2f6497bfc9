package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/ports"
)

// FileLoader loads YAML configuration from ~/.trendpost/config.yaml
// (overridable via TRENDPOST_CONFIG) and credentials from the environment.
// Variables listed in EnvFiles are loaded first without overriding variables
// that are already set.
type FileLoader struct {
	overridePath string
	EnvFiles     []string
}

// NewFileLoader builds a new loader. It reads ./.env by default.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, EnvFiles: []string{".env"}}
}

// Load implements ports.ConfigProvider. A missing file yields the defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return domain.Config{}, err
	}

	cfg := defaultConfig()
	path := l.Path()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return domain.Config{}, err
	}

	cfg = hydrateDefaults(cfg)
	cfg.Credentials = domain.Credentials{
		SearchAPIKey:     os.Getenv(domain.EnvSearchAPIKey),
		SearchContextID:  os.Getenv(domain.EnvSearchContextID),
		GenerationAPIKey: os.Getenv(domain.EnvGenerationAPIKey),
	}
	return cfg, nil
}

// Path returns the configuration file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(domain.EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".trendpost", "config.yaml")
}

func (l *FileLoader) loadEnvFiles() error {
	for _, file := range l.EnvFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Search: domain.SearchSettings{
			Endpoint:     domain.DefaultSearchEndpoint,
			SnippetLimit: domain.DefaultSnippetLimit,
		},
		Generation: domain.GenerationSettings{
			Endpoint: domain.DefaultGenerationEndpoint,
			Model:    domain.DefaultGenerationModel,
		},
		History: domain.HistorySettings{
			Path:    domain.DefaultHistoryFile,
			Backend: domain.DefaultHistoryBackend,
		},
		Post: domain.PostSettings{
			MaxChars: domain.DefaultPostMaxChars,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := defaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = def.Search.Endpoint
	}
	if cfg.Search.SnippetLimit <= 0 {
		cfg.Search.SnippetLimit = def.Search.SnippetLimit
	}
	if cfg.Generation.Endpoint == "" {
		cfg.Generation.Endpoint = def.Generation.Endpoint
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = def.Generation.Model
	}
	if cfg.HTTP.TimeoutSeconds < 0 {
		cfg.HTTP.TimeoutSeconds = 0
	}
	if cfg.History.Path == "" {
		cfg.History.Path = def.History.Path
	}
	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.History.Backend = domain.HistoryBackend(strings.ToLower(string(cfg.History.Backend)))
	if cfg.History.Backend == "" {
		cfg.History.Backend = def.History.Backend
	}
	if cfg.Post.MaxChars <= 0 {
		cfg.Post.MaxChars = def.Post.MaxChars
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
