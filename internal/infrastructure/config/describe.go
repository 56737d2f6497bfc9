package config

import (
	"gopkg.in/yaml.v3"

	"github.com/doeshing/trendpost/internal/domain"
)

type describedConfig struct {
	domain.Config `yaml:",inline"`
	Credentials   map[string]string `yaml:"credentials"`
}

// Describe renders cfg as YAML with the credentials masked.
func Describe(cfg domain.Config) ([]byte, error) {
	return yaml.Marshal(describedConfig{
		Config: cfg,
		Credentials: map[string]string{
			domain.EnvSearchAPIKey:     mask(cfg.Credentials.SearchAPIKey),
			domain.EnvSearchContextID:  mask(cfg.Credentials.SearchContextID),
			domain.EnvGenerationAPIKey: mask(cfg.Credentials.GenerationAPIKey),
		},
	})
}

func mask(secret string) string {
	switch {
	case secret == "":
		return "(unset)"
	case len(secret) <= 4:
		return "****"
	default:
		return secret[:2] + "****" + secret[len(secret)-2:]
	}
}
