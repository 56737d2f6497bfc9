package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for the history file (rw-r--r--)
	FilePermissions = 0o644
)

// Fallback texts returned in place of real data.
const (
	// SentinelNoResults replaces search snippets when nothing usable came back.
	SentinelNoResults = "no recent results"
	// PlaceholderGenerationFailed replaces generated text when generation fails.
	PlaceholderGenerationFailed = "content generation failed"
)

// Limit constants
const (
	// DefaultSnippetLimit caps the joined search snippets, in characters.
	DefaultSnippetLimit = 500
	// DefaultPostMaxChars is the post length requested from the model.
	DefaultPostMaxChars = 344
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Defaults for the external collaborators.
const (
	DefaultSearchEndpoint     = "https://www.googleapis.com/customsearch/v1"
	DefaultGenerationEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGenerationModel    = "gemini-2.5-flash"
	DefaultHistoryFile        = "historico.json"
	DefaultHistoryBackend     = HistoryBackendJSON
	// DefaultTopic is used when the CLI is invoked without a topic.
	DefaultTopic = "current news Rio Grande do Sul"
)

// Environment variables carrying credentials.
const (
	EnvSearchAPIKey     = "GOOGLE_API_KEY"
	EnvSearchContextID  = "GOOGLE_CX"
	EnvGenerationAPIKey = "GEMINI_API_KEY"
	EnvConfigPath       = "TRENDPOST_CONFIG"
	EnvDebug            = "TRENDPOST_DEBUG"
)

// Time formats
const (
	// TimestampFormat matches ISO-8601 with millisecond precision in UTC.
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
)
