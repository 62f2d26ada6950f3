package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func TestConfig_Defaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, ProviderRules, cfg.Classifier.Provider)
	assert.Equal(t, DefaultBatchSize, cfg.Classifier.BatchSize)
	assert.InDelta(t, DefaultToxicityThreshold, cfg.Classifier.ToxicityThreshold, 1e-9)
	assert.Equal(t, DefaultWordCloudWidth, cfg.WordCloud.Width)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)

	require.NoError(t, cfg.Validate())
}

func TestConfig_Accessors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9090
	cfg.Server.MaxUploadSizeMB = 2
	cfg.Processing.TaskTimeoutSeconds = 30

	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
	assert.Equal(t, int64(2<<20), cfg.MaxUploadSize())
	assert.Equal(t, 30*time.Second, cfg.TaskTimeout())
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
	assert.Equal(t, DefaultReportTTL, cfg.ReportTTL())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "negative task timeout",
			mutate:  func(c *Config) { c.Processing.TaskTimeoutSeconds = -1 },
			wantErr: "task_timeout_seconds",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Classifier.Provider = "anthic" },
			wantErr: "classifier.provider",
		},
		{
			name:    "openai without api key",
			mutate:  func(c *Config) { c.Classifier.Provider = ProviderOpenAI },
			wantErr: "api_key",
		},
		{
			name: "openai with api key",
			mutate: func(c *Config) {
				c.Classifier.Provider = ProviderOpenAI
				c.Classifier.APIKey = "sk-test"
			},
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.Classifier.ToxicityThreshold = 1.5 },
			wantErr: "toxicity_threshold",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CLASSIFIER_PROVIDER", "rules")
	t.Setenv("CLASSIFIER_BATCH_SIZE", "not-a-number")

	cfg := loadFromEnv()
	cfg.applyDefaults()

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, ProviderRules, cfg.Classifier.Provider)
	// unparseable values fall back to the default
	assert.Equal(t, DefaultBatchSize, cfg.Classifier.BatchSize)
}
