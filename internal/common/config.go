package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Logging     LoggingConfig   `toml:"logging"`
	Documents   DocumentsConfig `toml:"documents"`
	VectorStore VectorConfig    `toml:"vectorstore"`
	Ingest      IngestConfig    `toml:"ingest"`
	LLM         LLMConfig       `toml:"llm"`
	Retrieval   RetrievalConfig `toml:"retrieval"`
	Sessions    SessionsConfig  `toml:"sessions"`
	Storage     StorageConfig   `toml:"storage"`
	Channels    ChannelsConfig  `toml:"channels"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// DocumentsConfig locates the per-domain source document directories:
// {root}/{domain}/*.pdf|*.txt
type DocumentsConfig struct {
	Root string `toml:"root" validate:"required"`
}

// VectorConfig locates the persisted per-domain vector collections:
// {root}/{domain}_index
type VectorConfig struct {
	Root string `toml:"root" validate:"required"`
}

type IngestConfig struct {
	ChunkSize    int    `toml:"chunk_size" validate:"gt=0"`
	ChunkOverlap int    `toml:"chunk_overlap" validate:"gte=0"`
	Schedule     string `toml:"schedule"` // cron format, re-ingests all domains
	Enabled      bool   `toml:"enabled"`  // enable scheduled re-ingestion
}

// LLMConfig contains hosted model configuration. API keys resolve KV
// storage first, then these values (which env vars override).
type LLMConfig struct {
	Provider        string  `toml:"provider" validate:"oneof=gemini claude"` // chat provider; embeddings are always Gemini
	GoogleAPIKey    string  `toml:"google_api_key"`
	AnthropicAPIKey string  `toml:"anthropic_api_key"`
	EmbedModel      string  `toml:"embed_model"`
	ChatModel       string  `toml:"chat_model"`
	EmbedDimension  int     `toml:"embed_dimension" validate:"gt=0"`
	Temperature     float32 `toml:"temperature"`
	Timeout         string  `toml:"timeout"`    // per-call timeout as duration string
	RateLimit       string  `toml:"rate_limit"` // minimum interval between hosted calls
}

type RetrievalConfig struct {
	TopK         int    `toml:"top_k" validate:"gt=0"`
	QueryTimeout string `toml:"query_timeout"` // bound on the retrieve+generate path
}

type SessionsConfig struct {
	TTL           string `toml:"ttl"`            // idle lifetime before eviction
	SweepInterval string `toml:"sweep_interval"` // how often the sweeper runs
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// ChannelsConfig holds per-transport credentials and the externally
// reachable base URL telephony platforms call back on.
type ChannelsConfig struct {
	PublicURL string       `toml:"public_url"`
	Exotel    ExotelConfig `toml:"exotel"`
	Twilio    TwilioConfig `toml:"twilio"`
}

type ExotelConfig struct {
	AppID     string `toml:"app_id"`
	AppSecret string `toml:"app_secret"`
}

type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here; only user-facing settings
// should be exposed in nyaya.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Documents: DocumentsConfig{
			Root: "./data",
		},
		VectorStore: VectorConfig{
			Root: "./vectorstores",
		},
		Ingest: IngestConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			Schedule:     "0 3 * * *", // nightly, only when enabled
			Enabled:      false,
		},
		LLM: LLMConfig{
			Provider:       "gemini",
			EmbedModel:     "gemini-embedding-001",
			ChatModel:      "gemini-2.0-flash",
			EmbedDimension: 768,
			Temperature:    0.2,
			Timeout:        "60s",
			RateLimit:      "1s",
		},
		Retrieval: RetrievalConfig{
			TopK:         4,
			QueryTimeout: "30s",
		},
		Sessions: SessionsConfig{
			TTL:           "30m",
			SweepInterval: "1m",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/db",
			},
		},
		Channels: ChannelsConfig{
			PublicURL: "http://localhost:8080",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> env. Later files override earlier files; environment
// variables override everything but CLI flags.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints plus the cross-field rules the
// validator tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("invalid configuration: chunk_overlap (%d) must be smaller than chunk_size (%d)", c.Ingest.ChunkOverlap, c.Ingest.ChunkSize)
	}

	for _, field := range []struct {
		name, value string
	}{
		{"llm.timeout", c.LLM.Timeout},
		{"llm.rate_limit", c.LLM.RateLimit},
		{"retrieval.query_timeout", c.Retrieval.QueryTimeout},
		{"sessions.ttl", c.Sessions.TTL},
		{"sessions.sweep_interval", c.Sessions.SweepInterval},
	} {
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("invalid configuration: %s %q is not a duration: %w", field.name, field.value, err)
		}
	}

	return nil
}

// Duration parses a duration config value that Validate already checked.
func Duration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NYAYA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("NYAYA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("NYAYA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("NYAYA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("NYAYA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Paths
	if root := os.Getenv("NYAYA_DOCUMENTS_ROOT"); root != "" {
		config.Documents.Root = root
	}
	if root := os.Getenv("NYAYA_VECTORSTORE_ROOT"); root != "" {
		config.VectorStore.Root = root
	}
	if path := os.Getenv("NYAYA_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	// LLM configuration. GOOGLE_API_KEY/ANTHROPIC_API_KEY are the
	// conventional provider variables; NYAYA_-prefixed ones win.
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		config.LLM.GoogleAPIKey = key
	}
	if key := os.Getenv("NYAYA_GOOGLE_API_KEY"); key != "" {
		config.LLM.GoogleAPIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.LLM.AnthropicAPIKey = key
	}
	if key := os.Getenv("NYAYA_ANTHROPIC_API_KEY"); key != "" {
		config.LLM.AnthropicAPIKey = key
	}
	if provider := os.Getenv("NYAYA_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}

	// Channels
	if url := os.Getenv("NYAYA_PUBLIC_URL"); url != "" {
		config.Channels.PublicURL = url
	}
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		config.Channels.Twilio.AccountSID = sid
	}
	if token := os.Getenv("TWILIO_AUTH_TOKEN"); token != "" {
		config.Channels.Twilio.AuthToken = token
	}
	if id := os.Getenv("EXOTEL_APP_ID"); id != "" {
		config.Channels.Exotel.AppID = id
	}
	if secret := os.Getenv("EXOTEL_APP_SECRET"); secret != "" {
		config.Channels.Exotel.AppSecret = secret
	}
}
