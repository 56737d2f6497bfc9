package domain

// HistoryBackend selects the history store implementation.
type HistoryBackend string

const (
	HistoryBackendJSON   HistoryBackend = "json"
	HistoryBackendSQLite HistoryBackend = "sqlite"
)

// Config mirrors ~/.trendpost/config.yaml. Credentials never live in the
// file; they are read from the environment into Credentials.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Search              SearchSettings     `yaml:"search"`
	Generation          GenerationSettings `yaml:"generation"`
	History             HistorySettings    `yaml:"history"`
	Post                PostSettings       `yaml:"post"`
	HTTP                HTTPSettings       `yaml:"http"`
	Credentials         Credentials        `yaml:"-"`
}

// SearchSettings configures the web search collaborator.
type SearchSettings struct {
	Endpoint     string `yaml:"endpoint"`
	SnippetLimit int    `yaml:"snippet_limit"`
}

// GenerationSettings configures the generative-text collaborator.
type GenerationSettings struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// HistorySettings configures where generations are recorded.
type HistorySettings struct {
	Path    string         `yaml:"path"`
	Backend HistoryBackend `yaml:"backend"`
}

// PostSettings shapes the prompt.
type PostSettings struct {
	MaxChars int `yaml:"max_chars"`
}

// HTTPSettings applies to both API clients.
type HTTPSettings struct {
	// TimeoutSeconds bounds each request; 0 disables the limit.
	TimeoutSeconds int `yaml:"timeout"`
}

// Credentials are the three secrets supplied through the environment.
type Credentials struct {
	SearchAPIKey     string
	SearchContextID  string
	GenerationAPIKey string
}
