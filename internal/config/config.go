package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Providers ProvidersConfig
	Storage   StorageConfig
	Fact      FactConfig
	Assistant AssistantConfig
	Auth      AuthConfig
	Secrets   SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ProvidersConfig holds the upstream API endpoints
type ProvidersConfig struct {
	Position PositionConfig
	Geocoder GeocoderConfig
}

// PositionConfig configures the ISS position source
type PositionConfig struct {
	URL     string
	Timeout time.Duration
}

// GeocoderConfig configures the reverse geocoder
type GeocoderConfig struct {
	Backend  string // bigdatacloud, nominatim
	URL      string
	Language string
	Timeout  time.Duration
}

// StorageConfig selects and configures the history and feedback backend
type StorageConfig struct {
	Driver   string // sqlite, dynamodb
	SQLite   SQLiteConfig
	DynamoDB DynamoDBConfig
}

// SQLiteConfig holds the local database settings
type SQLiteConfig struct {
	Path string
}

// DynamoDBConfig holds the DynamoDB table settings
type DynamoDBConfig struct {
	Region         string
	Endpoint       string // optional, for local DynamoDB
	LocationsTable string `mapstructure:"locations_table"`
	FeedbackTable  string `mapstructure:"feedback_table"`
}

// FactConfig configures the fact generator. PromptSource is file://path, a
// plain path or s3://bucket/key.
type FactConfig struct {
	Provider     string        `mapstructure:"provider"` // gemini, openai, ollama
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"`
	APIKeySecret string        `mapstructure:"api_key_secret"`
	Temperature  float32       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	MaxWords     int           `mapstructure:"max_words"`
	PromptSource string        `mapstructure:"prompt_source"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// AssistantConfig configures the query assistant
type AssistantConfig struct {
	PolicyFile string `mapstructure:"policy_file"`
}

// AuthConfig names the secrets holding the API keys of the protected routes
type AuthConfig struct {
	ESPKeySecret      string `mapstructure:"esp_key_secret"`
	WebKeySecret      string `mapstructure:"web_key_secret"`
	FeedbackKeySecret string `mapstructure:"feedback_key_secret"`
}

// SecretsConfig configures secret resolution
type SecretsConfig struct {
	Dir string
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.iss-sky-scanner")

	return load(v)
}

// LoadFile reads configuration from the given file and environment variables
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Read from environment variables, e.g. ISS_SKY_SCANNER_STORAGE_DRIVER
	v.SetEnvPrefix("ISS_SKY_SCANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("providers.position.url", "http://api.open-notify.org/iss-now.json")
	v.SetDefault("providers.position.timeout", 10*time.Second)
	v.SetDefault("providers.geocoder.backend", "bigdatacloud")
	v.SetDefault("providers.geocoder.url", "")
	v.SetDefault("providers.geocoder.language", "en")
	v.SetDefault("providers.geocoder.timeout", 10*time.Second)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite.path", "./data/iss.db")
	v.SetDefault("storage.dynamodb.region", "us-east-1")
	v.SetDefault("storage.dynamodb.endpoint", "")
	v.SetDefault("storage.dynamodb.locations_table", "iss_loc_history")
	v.SetDefault("storage.dynamodb.feedback_table", "iss_sky_scanner_feedback")

	v.SetDefault("fact.provider", "gemini")
	v.SetDefault("fact.model", "gemini-2.0-flash")
	v.SetDefault("fact.base_url", "")
	v.SetDefault("fact.api_key_secret", "gemini-api-key")
	v.SetDefault("fact.temperature", 0.7)
	v.SetDefault("fact.max_tokens", 150)
	v.SetDefault("fact.max_words", 12)
	v.SetDefault("fact.prompt_source", "")
	v.SetDefault("fact.timeout", 30*time.Second)

	v.SetDefault("assistant.policy_file", "")

	v.SetDefault("auth.esp_key_secret", "esp-api-key")
	v.SetDefault("auth.web_key_secret", "web-api-key")
	v.SetDefault("auth.feedback_key_secret", "feedback-api-key")

	v.SetDefault("secrets.dir", "")
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch strings.ToLower(c.Providers.Geocoder.Backend) {
	case "bigdatacloud", "nominatim":
	default:
		return fmt.Errorf("invalid geocoder backend %q: must be bigdatacloud or nominatim", c.Providers.Geocoder.Backend)
	}

	switch strings.ToLower(c.Storage.Driver) {
	case "sqlite", "dynamodb":
	default:
		return fmt.Errorf("invalid storage driver %q: must be sqlite or dynamodb", c.Storage.Driver)
	}

	switch strings.ToLower(c.Fact.Provider) {
	case "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("invalid fact provider %q: must be gemini, openai or ollama", c.Fact.Provider)
	}

	if c.Fact.MaxWords <= 0 {
		return fmt.Errorf("fact.max_words must be positive, got %d", c.Fact.MaxWords)
	}

	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo is NewLogger writing to w
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
