// Package config provides application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Classifier provider names.
const (
	ProviderRules  = "rules"
	ProviderOpenAI = "openai"
)

// Server holds the HTTP server configuration.
type Server struct {
	Host                   string `json:"host" yaml:"host"`
	Port                   int    `json:"port" yaml:"port"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
	MaxUploadSizeMB        int    `json:"max_upload_size_mb" yaml:"max_upload_size_mb"`
}

// Processing holds analysis pipeline configuration.
type Processing struct {
	// TaskTimeoutSeconds limits one analysis run; 0 means no limit.
	TaskTimeoutSeconds int `json:"task_timeout_seconds" yaml:"task_timeout_seconds"`
	CacheTTLMinutes    int `json:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
	ReportTTLHours     int `json:"report_ttl_hours" yaml:"report_ttl_hours"`
}

// Classifier holds the sentiment/toxicity classifier configuration. The
// provider is selected here once; analyzers receive the strategy injected.
type Classifier struct {
	Provider          string  `json:"provider" yaml:"provider"`
	APIKey            string  `json:"api_key" yaml:"api_key"`
	Model             string  `json:"model" yaml:"model"`
	BatchSize         int     `json:"batch_size" yaml:"batch_size"`
	ToxicityThreshold float64 `json:"toxicity_threshold" yaml:"toxicity_threshold"`
}

// WordCloud holds word-cloud rendering configuration. An empty FontPath
// disables the word cloud.
type WordCloud struct {
	FontPath string `json:"font_path" yaml:"font_path"`
	Width    int    `json:"width" yaml:"width"`
	Height   int    `json:"height" yaml:"height"`
	MaxWords int    `json:"max_words" yaml:"max_words"`
}

// Logging holds logging configuration.
type Logging struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// Config holds the application configuration.
type Config struct {
	Server     Server     `json:"server" yaml:"server"`
	Processing Processing `json:"processing" yaml:"processing"`
	Classifier Classifier `json:"classifier" yaml:"classifier"`
	WordCloud  WordCloud  `json:"wordcloud" yaml:"wordcloud"`
	Logging    Logging    `json:"logging" yaml:"logging"`
}

// LoadConfig loads the application configuration from config.yml when
// present, falling back to environment variables (optionally from .env).
func LoadConfig() (*Config, error) {
	// Missing .env is fine; environment variables or config.yml apply.
	_ = godotenv.Load()

	cfg, err := loadFromYAML("config.yml")
	if err != nil {
		cfg = loadFromEnv()
	}

	cfg.applyDefaults()
	return cfg, nil
}

// loadFromYAML loads the configuration from a YAML file.
func loadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml config: %w", err)
	}
	return &cfg, nil
}

// loadFromEnv builds the configuration from environment variables.
func loadFromEnv() *Config {
	return &Config{
		Server: Server{
			Host:                   getEnv("SERVER_HOST", DefaultServerHost),
			Port:                   getEnvInt("SERVER_PORT", DefaultServerPort),
			ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", int(DefaultShutdownTimeout.Seconds())),
			MaxUploadSizeMB:        getEnvInt("MAX_UPLOAD_SIZE_MB", DefaultMaxUploadSizeMB),
		},
		Processing: Processing{
			TaskTimeoutSeconds: getEnvInt("TASK_TIMEOUT_SECONDS", int(DefaultTaskTimeout.Seconds())),
			CacheTTLMinutes:    getEnvInt("CACHE_TTL_MINUTES", int(DefaultCacheTTL.Minutes())),
			ReportTTLHours:     getEnvInt("REPORT_TTL_HOURS", int(DefaultReportTTL.Hours())),
		},
		Classifier: Classifier{
			Provider:  getEnv("CLASSIFIER_PROVIDER", DefaultClassifierProvider),
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("CLASSIFIER_MODEL", DefaultClassifierModel),
			BatchSize: getEnvInt("CLASSIFIER_BATCH_SIZE", DefaultBatchSize),
		},
		WordCloud: WordCloud{
			FontPath: getEnv("WORDCLOUD_FONT_PATH", ""),
		},
		Logging: Logging{
			Level: getEnv("LOG_LEVEL", DefaultLogLevel),
		},
	}
}

// applyDefaults fills unset values so a partial config.yml still works.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = int(DefaultShutdownTimeout.Seconds())
	}
	if c.Server.MaxUploadSizeMB == 0 {
		c.Server.MaxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	if c.Processing.CacheTTLMinutes == 0 {
		c.Processing.CacheTTLMinutes = int(DefaultCacheTTL.Minutes())
	}
	if c.Processing.ReportTTLHours == 0 {
		c.Processing.ReportTTLHours = int(DefaultReportTTL.Hours())
	}
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = DefaultClassifierProvider
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = DefaultClassifierModel
	}
	if c.Classifier.BatchSize == 0 {
		c.Classifier.BatchSize = DefaultBatchSize
	}
	if c.Classifier.ToxicityThreshold == 0 {
		c.Classifier.ToxicityThreshold = DefaultToxicityThreshold
	}
	if c.WordCloud.Width == 0 {
		c.WordCloud.Width = DefaultWordCloudWidth
	}
	if c.WordCloud.Height == 0 {
		c.WordCloud.Height = DefaultWordCloudHeight
	}
	if c.WordCloud.MaxWords == 0 {
		c.WordCloud.MaxWords = DefaultWordCloudMaxWords
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Address returns the server address as "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ShutdownTimeout returns the graceful shutdown window.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// TaskTimeout returns the per-run time limit; 0 means unlimited.
func (c *Config) TaskTimeout() time.Duration {
	return time.Duration(c.Processing.TaskTimeoutSeconds) * time.Second
}

// CacheTTL returns how long a cached report stays valid.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Processing.CacheTTLMinutes) * time.Minute
}

// ReportTTL returns how long a finished report is retrievable.
func (c *Config) ReportTTL() time.Duration {
	return time.Duration(c.Processing.ReportTTLHours) * time.Hour
}

// MaxUploadSize returns the upload limit in bytes.
func (c *Config) MaxUploadSize() int64 {
	return int64(c.Server.MaxUploadSizeMB) << 20
}

// Validate checks whether the configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number (1-65535)")
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server.shutdown_timeout_seconds must be positive")
	}
	if c.Server.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("server.max_upload_size_mb must be positive")
	}

	if c.Processing.TaskTimeoutSeconds < 0 {
		return fmt.Errorf("processing.task_timeout_seconds must be non-negative (0 for no limit)")
	}
	if c.Processing.CacheTTLMinutes <= 0 {
		return fmt.Errorf("processing.cache_ttl_minutes must be positive")
	}
	if c.Processing.ReportTTLHours <= 0 {
		return fmt.Errorf("processing.report_ttl_hours must be positive")
	}

	switch c.Classifier.Provider {
	case ProviderRules:
	case ProviderOpenAI:
		if c.Classifier.APIKey == "" {
			return fmt.Errorf("classifier.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("classifier.provider must be one of: %s, %s", ProviderRules, ProviderOpenAI)
	}
	if c.Classifier.BatchSize <= 0 {
		return fmt.Errorf("classifier.batch_size must be positive")
	}
	if c.Classifier.ToxicityThreshold <= 0 || c.Classifier.ToxicityThreshold >= 1 {
		return fmt.Errorf("classifier.toxicity_threshold must be between 0 and 1 exclusive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	return nil
}

// getEnv fetches an environment variable or the default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt fetches an integer environment variable; unparseable or unset
// values yield the default.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
