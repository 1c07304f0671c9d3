// Package config loads bot settings from environment variables with an
// optional config.yaml overlay. The bot token is the single required secret
// and comes from the environment only.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable keys
const (
	EnvToken         = "TELEGRAM_BOT_TOKEN"
	EnvLogLevel      = "YTBOT_LOG_LEVEL"
	EnvLogFormat     = "YTBOT_LOG_FORMAT"
	EnvLogFile       = "YTBOT_LOG_FILE"
	EnvHealthPort    = "YTBOT_HEALTH_PORT"
	EnvDownloadDir   = "YTBOT_DOWNLOAD_DIR"
	EnvMaxFileSize   = "YTBOT_MAX_FILE_SIZE"
	EnvSessionTTL    = "YTBOT_SESSION_TTL"
	EnvSweepInterval = "YTBOT_SWEEP_INTERVAL"
	EnvSocketTimeout = "YTBOT_SOCKET_TIMEOUT"
	EnvRetries       = "YTBOT_RETRIES"
	EnvUploadTimeout = "YTBOT_UPLOAD_TIMEOUT"
	EnvConfigFile    = "YTBOT_CONFIG"
)

// Default values
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogFile       = "bot.log"
	DefaultHealthPort    = 8000
	DefaultDownloadDir   = "downloads"
	DefaultMaxFileSize   = 2_097_152_000 // 2GB, the Telegram upload ceiling
	DefaultSessionTTL    = time.Hour
	DefaultSweepInterval = time.Hour
	DefaultSocketTimeout = 30 * time.Second
	DefaultRetries       = 3
	DefaultUploadTimeout = 5 * time.Minute
	DefaultConfigFile    = "config.yaml"
)

// Config holds all runtime settings for the bot.
type Config struct {
	// Token authenticates the bot against the Telegram API. Required.
	Token string

	// Logging
	LogLevel  slog.Level
	LogFormat string // json or text
	LogFile   string // log file path, empty disables file logging

	// Liveness endpoint
	HealthPort int

	// Download lifecycle
	DownloadDir string
	MaxFileSize int64 // artifact byte cap

	// Session store
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Resolver network behavior
	SocketTimeout time.Duration
	Retries       int

	// Transport timeout for large media uploads
	UploadTimeout time.Duration
}

// fileConfig is the optional config.yaml overlay. Only set fields override;
// the token deliberately has no yaml home.
type fileConfig struct {
	LogLevel      *string `yaml:"log_level"`
	LogFormat     *string `yaml:"log_format"`
	LogFile       *string `yaml:"log_file"`
	HealthPort    *int    `yaml:"health_port"`
	DownloadDir   *string `yaml:"download_dir"`
	MaxFileSizeMB *int64  `yaml:"max_size_mb"`
	SessionTTL    *string `yaml:"session_ttl"`
	SweepInterval *string `yaml:"sweep_interval"`
	SocketTimeout *string `yaml:"socket_timeout"`
	Retries       *int    `yaml:"retries"`
	UploadTimeout *string `yaml:"upload_timeout"`
}

// Load reads the configuration from the environment, then applies the
// optional yaml overlay. A missing or empty bot token is an error: the
// process must not start without it.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.Token = os.Getenv(EnvToken)
	if cfg.Token == "" {
		return nil, fmt.Errorf("%s is not set", EnvToken)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault(EnvLogLevel, DefaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	cfg.LogFormat = getEnvDefault(EnvLogFormat, DefaultLogFormat)
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("%s: invalid format %q, expected json or text", EnvLogFormat, cfg.LogFormat)
	}

	cfg.LogFile = getEnvDefault(EnvLogFile, DefaultLogFile)

	cfg.HealthPort, err = getEnvInt(EnvHealthPort, DefaultHealthPort)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvHealthPort, err)
	}

	cfg.DownloadDir = getEnvDefault(EnvDownloadDir, DefaultDownloadDir)

	cfg.MaxFileSize, err = getEnvInt64(EnvMaxFileSize, DefaultMaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvMaxFileSize, err)
	}

	cfg.SessionTTL, err = getEnvDuration(EnvSessionTTL, DefaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvSessionTTL, err)
	}

	cfg.SweepInterval, err = getEnvDuration(EnvSweepInterval, DefaultSweepInterval)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvSweepInterval, err)
	}

	cfg.SocketTimeout, err = getEnvDuration(EnvSocketTimeout, DefaultSocketTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvSocketTimeout, err)
	}

	cfg.Retries, err = getEnvInt(EnvRetries, DefaultRetries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvRetries, err)
	}

	cfg.UploadTimeout, err = getEnvDuration(EnvUploadTimeout, DefaultUploadTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvUploadTimeout, err)
	}

	if err := applyFileOverlay(cfg, getEnvDefault(EnvConfigFile, DefaultConfigFile)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFileOverlay merges config.yaml into cfg when the file exists. An
// absent file is not an error; a malformed one is.
func applyFileOverlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.LogLevel != nil {
		if cfg.LogLevel, err = parseLogLevel(*fc.LogLevel); err != nil {
			return fmt.Errorf("%s: log_level: %w", path, err)
		}
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.HealthPort != nil {
		cfg.HealthPort = *fc.HealthPort
	}
	if fc.DownloadDir != nil {
		cfg.DownloadDir = *fc.DownloadDir
	}
	if fc.MaxFileSizeMB != nil {
		cfg.MaxFileSize = *fc.MaxFileSizeMB * 1024 * 1024
	}
	if fc.Retries != nil {
		cfg.Retries = *fc.Retries
	}

	durations := []struct {
		raw  *string
		dst  *time.Duration
		name string
	}{
		{fc.SessionTTL, &cfg.SessionTTL, "session_ttl"},
		{fc.SweepInterval, &cfg.SweepInterval, "sweep_interval"},
		{fc.SocketTimeout, &cfg.SocketTimeout, "socket_timeout"},
		{fc.UploadTimeout, &cfg.UploadTimeout, "upload_timeout"},
	}
	for _, d := range durations {
		if d.raw == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.raw)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", path, d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
