package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/store"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values come from an optional config.yaml, overridden by environment
// variables (server.port -> SERVER_PORT, mongo.uri -> MONGO_URI, ...).
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	CORS     CORSConfig
	Import   ImportConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ImportConfig struct {
	MaxUploadMB int
}

// Store converts the mongo section into connection settings
func (m MongoConfig) Store() store.Config {
	return store.Config{
		URI:            m.URI,
		Database:       m.Database,
		ConnectTimeout: time.Duration(m.ConnectTimeout) * time.Second,
	}
}

func setDefaults(v *viper.Viper) {
	def := store.DefaultConfig()

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 30)
	v.SetDefault("mongo.uri", def.URI)
	v.SetDefault("mongo.database", def.Database)
	v.SetDefault("mongo.connect_timeout", int(def.ConnectTimeout/time.Second))
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("import.max_upload_mb", 32)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from configDir/config.yaml (if present) and the
// environment. An empty configDir skips the file entirely.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			Host:            v.GetString("server.host"),
			ReadTimeout:     v.GetInt("server.read_timeout"),
			WriteTimeout:    v.GetInt("server.write_timeout"),
			ShutdownTimeout: v.GetInt("server.shutdown_timeout"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("mongo.uri"),
			Database:       v.GetString("mongo.database"),
			ConnectTimeout: v.GetInt("mongo.connect_timeout"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		},
		Import: ImportConfig{
			MaxUploadMB: v.GetInt("import.max_upload_mb"),
		},
		LogLevel: v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}

	if c.Import.MaxUploadMB <= 0 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_MB must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// splitList flattens comma separated entries, as environment variables
// arrive as a single string
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
