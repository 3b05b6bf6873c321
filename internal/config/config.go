package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Upload    UploadConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// ExtractorConfig holds settings for the upstream invoice extraction service.
type ExtractorConfig struct {
	URL         string `mapstructure:"url"`
	AccessToken string `mapstructure:"access_token"`
	Email       string `mapstructure:"email"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxRetries  int    `mapstructure:"max_retries"`
}

// UploadConfig holds file upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the IPS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Extractor defaults
	v.SetDefault("extractor.url", "")
	v.SetDefault("extractor.access_token", "")
	v.SetDefault("extractor.email", "")
	v.SetDefault("extractor.timeout_secs", 120)
	v.SetDefault("extractor.max_retries", 2)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "IPS_SERVER_PORT",
		"server.read_timeout":    "IPS_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "IPS_SERVER_WRITE_TIMEOUT",
		"server.environment":     "IPS_SERVER_ENVIRONMENT",
		"extractor.url":          "IPS_EXTRACTOR_URL",
		"extractor.access_token": "IPS_EXTRACTOR_ACCESS_TOKEN",
		"extractor.email":        "IPS_EXTRACTOR_EMAIL",
		"extractor.timeout_secs": "IPS_EXTRACTOR_TIMEOUT_SECS",
		"extractor.max_retries":  "IPS_EXTRACTOR_MAX_RETRIES",
		"upload.max_file_size_mb": "IPS_UPLOAD_MAX_FILE_SIZE_MB",
		"log.level":              "IPS_LOG_LEVEL",
		"log.format":             "IPS_LOG_FORMAT",
		"cors.allowed_origins":   "IPS_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if IPS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("IPS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Extractor = ExtractorConfig{
		URL:         v.GetString("extractor.url"),
		AccessToken: v.GetString("extractor.access_token"),
		Email:       v.GetString("extractor.email"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
		MaxRetries:  v.GetInt("extractor.max_retries"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
