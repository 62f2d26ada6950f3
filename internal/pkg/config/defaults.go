package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxUploadSizeMB = 10
	DefaultCleanupInterval = 1 * time.Hour

	// Processing defaults
	DefaultTaskTimeout = 600 * time.Second
	DefaultCacheTTL    = 60 * time.Minute
	DefaultReportTTL   = 24 * time.Hour

	// Classifier defaults
	DefaultClassifierProvider = ProviderRules
	DefaultClassifierModel    = "gpt-4o-mini"
	DefaultBatchSize          = 100
	DefaultToxicityThreshold  = 0.7

	// Word cloud defaults
	DefaultWordCloudWidth    = 800
	DefaultWordCloudHeight   = 400
	DefaultWordCloudMaxWords = 100

	// Logging defaults
	DefaultLogLevel = "info"
)
