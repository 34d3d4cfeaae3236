package relay

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default wiring used when neither the config file nor the environment
// says otherwise.
const (
	DefaultListenAddr      = ":8080"
	DefaultUpstreamURL     = "https://openrouter.ai/api/v1"
	DefaultModel           = "openai/gpt-3.5-turbo"
	DefaultAssistantURL    = "https://api.groq.com/openai/v1"
	DefaultAssistantModel  = "llama-3.1-8b-instant"
	DefaultRequestTimeout  = 2 * time.Minute
	DefaultBodyLimit       = 1 << 20 // 1 MiB
	DefaultRequestsPerMin  = 60
	DefaultAllowOrigins    = "*"
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

// ProviderConfig identifies one upstream: a base URL and a bearer
// credential. Credentials come from the environment only and are never
// written to logs.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

// Config is the relay configuration, constructed once at startup and
// shared read-only across all requests.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// Environment selects error verbosity: "production" hides upstream
	// detail from callers, anything else exposes it.
	Environment string

	// Upstream is the completion/model-catalog provider.
	Upstream ProviderConfig

	// Assistant is the secondary provider used for summarization and
	// follow-up suggestions.
	Assistant ProviderConfig

	// DefaultModel is used when a request omits the model field.
	DefaultModel string

	// AssistantModel is the fixed model for auxiliary text operations.
	AssistantModel string

	// RequestTimeout bounds each outbound upstream call.
	RequestTimeout time.Duration

	// BodyLimit caps inbound JSON body size in bytes.
	BodyLimit int

	// RequestsPerMinute is the per-client inbound rate limit.
	RequestsPerMinute int

	// AllowOrigins is the CORS allow-list handed to the HTTP layer.
	AllowOrigins string
}

// Production reports whether the relay runs in production mode.
func (c Config) Production() bool {
	return c.Environment == EnvironmentProduction
}

// Validate checks that the configuration can serve requests.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL must not be empty")
	}
	if c.Upstream.APIKey == "" {
		return fmt.Errorf("upstream API key must be provided (set OPENROUTER_API_KEY)")
	}
	if c.DefaultModel == "" {
		return fmt.Errorf("default model must not be empty")
	}
	return nil
}

// fileConfig is the optional TOML configuration file. Credentials are
// deliberately absent: they are accepted from the environment only.
type fileConfig struct {
	ListenAddr        string `toml:"listen_addr"`
	Environment       string `toml:"environment"`
	UpstreamURL       string `toml:"upstream_url"`
	AssistantURL      string `toml:"assistant_url"`
	DefaultModel      string `toml:"default_model"`
	AssistantModel    string `toml:"assistant_model"`
	RequestTimeoutSec int    `toml:"request_timeout_seconds"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	AllowOrigins      string `toml:"allow_origins"`
}

// LoadConfig builds the configuration from defaults, an optional TOML
// file at path (skipped when path is empty or the file does not exist),
// and environment variables, in increasing priority.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ListenAddr:        DefaultListenAddr,
		Environment:       EnvironmentDevelopment,
		Upstream:          ProviderConfig{BaseURL: DefaultUpstreamURL},
		Assistant:         ProviderConfig{BaseURL: DefaultAssistantURL},
		DefaultModel:      DefaultModel,
		AssistantModel:    DefaultAssistantModel,
		RequestTimeout:    DefaultRequestTimeout,
		BodyLimit:         DefaultBodyLimit,
		RequestsPerMinute: DefaultRequestsPerMin,
		AllowOrigins:      DefaultAllowOrigins,
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			var fc fileConfig
			if _, err := toml.DecodeFile(path, &fc); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
			applyFile(&cfg, fc)
		}
	}

	applyEnv(&cfg)

	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.UpstreamURL != "" {
		cfg.Upstream.BaseURL = fc.UpstreamURL
	}
	if fc.AssistantURL != "" {
		cfg.Assistant.BaseURL = fc.AssistantURL
	}
	if fc.DefaultModel != "" {
		cfg.DefaultModel = fc.DefaultModel
	}
	if fc.AssistantModel != "" {
		cfg.AssistantModel = fc.AssistantModel
	}
	if fc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(fc.RequestTimeoutSec) * time.Second
	}
	if fc.RequestsPerMinute > 0 {
		cfg.RequestsPerMinute = fc.RequestsPerMinute
	}
	if fc.AllowOrigins != "" {
		cfg.AllowOrigins = fc.AllowOrigins
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := os.Getenv("ASSISTANT_BASE_URL"); v != "" {
		cfg.Assistant.BaseURL = v
	}
	if v := os.Getenv("ASSISTANT_API_KEY"); v != "" {
		cfg.Assistant.APIKey = v
	}
	if v := os.Getenv("DEFAULT_MODEL"); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv("ASSISTANT_MODEL"); v != "" {
		cfg.AssistantModel = v
	}
}
