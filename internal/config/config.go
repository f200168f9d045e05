// Package config loads application settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Defaults.
const (
	DefaultAddr       = "127.0.0.1:8080"
	DefaultSQLitePath = "spotifyMusic.db"
	DefaultLogLevel   = "info"
)

// Common errors.
var (
	ErrUnknownDriver           = errors.New("unknown storage driver")
	ErrMissingDatabaseURL      = errors.New("missing DATABASE_URL for postgres storage")
	ErrMissingSpotifyCreds     = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET environment variable")
	ErrMissingMinioCredentials = errors.New("missing MINIO_ENDPOINT, MINIO_ACCESS_KEY or MINIO_SECRET_KEY")
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Minio   MinioConfig   `yaml:"minio"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects and locates the song store.
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// SpotifyConfig holds client credentials for the playlist importer.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// MinioConfig locates the bucket charts are exported to.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: DefaultSQLitePath,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Minio: MinioConfig{Bucket: "mood-explorer-charts"},
	}
}

// Load builds a Config. path names an optional YAML file; an empty path skips
// it, a missing file at a given path is an error. A .env file in the working
// directory is loaded if present and never overrides variables already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "ADDR")
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.SQLitePath, "SQLITE_PATH")
	setString(&cfg.Storage.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.Spotify.ClientID, "SPOTIFY_ID")
	setString(&cfg.Spotify.ClientSecret, "SPOTIFY_SECRET")
	setString(&cfg.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Minio.Bucket, "MINIO_BUCKET")
	setString(&cfg.Minio.Region, "MINIO_REGION")
	setBool(&cfg.Minio.UseSSL, "MINIO_USE_SSL")
}

// setString overwrites dst when key is set and non-empty.
func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// setBool overwrites dst when key parses as a bool.
func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate checks the storage settings every command needs.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		return nil
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}
}

// RequireSpotify checks that Spotify client credentials are present.
func (c *Config) RequireSpotify() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return ErrMissingSpotifyCreds
	}
	return nil
}

// RequireMinio checks that MinIO connection settings are present.
func (c *Config) RequireMinio() error {
	if c.Minio.Endpoint == "" || c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
		return ErrMissingMinioCredentials
	}
	return nil
}
