// Package config loads application settings from an optional config file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Blob backends
const (
	BlobBackendDisk = "disk"
	BlobBackendS3   = "s3"
)

// Config is the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Frontend FrontendConfig `mapstructure:"frontend"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Blob     BlobConfig     `mapstructure:"blob"`
	Chrome   ChromeConfig   `mapstructure:"chrome"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Log      LogConfig      `mapstructure:"log"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Admin    AdminConfig    `mapstructure:"admin"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Password PasswordConfig `mapstructure:"password"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type FrontendConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig enables shared rate-limit counters when Address is set
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type BlobConfig struct {
	Backend  string `mapstructure:"backend"`
	Dir      string `mapstructure:"dir"`
	BaseURL  string `mapstructure:"base_url"`
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Region string `mapstructure:"s3_region"`
}

type ChromeConfig struct {
	Path string `mapstructure:"path"`
}

type PDFConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeminiConfig configures the optional writing assistant
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AdminConfig is the account created by the seed command
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

var defaults = map[string]any{
	"server.port":          8080,
	"database.url":         "",
	"frontend.url":         "http://localhost:3000",
	"redis.address":        "",
	"redis.password":       "",
	"redis.db":             0,
	"blob.backend":         BlobBackendDisk,
	"blob.dir":             "uploads",
	"blob.base_url":        "/uploads",
	"blob.s3_bucket":       "",
	"blob.s3_region":       "us-east-1",
	"chrome.path":          "",
	"pdf.timeout":          "60s",
	"log.level":            "info",
	"log.format":           "json",
	"gemini.api_key":       "",
	"gemini.model":         "gemini-2.5-flash",
	"admin.name":           "Admin",
	"admin.email":          "admin@resumebuilder.com",
	"admin.password":       "",
	"jwt.secret":           "",
	"jwt.expiration_hours": DefaultJWTExpirationHours,
	"password.bcrypt_cost": DefaultBcryptCost,
	"password.pepper":      "",
}

// envAliases binds keys to environment names that differ from the
// upper-snake form of the key.
var envAliases = map[string][]string{
	"server.port":          {"SERVER_PORT", "PORT"},
	"password.bcrypt_cost": {"PASSWORD_BCRYPT_COST", "BCRYPT_COST"},
}

// Load reads configuration. When configFile is empty, config.yaml is looked up
// in the working directory and ./configs; a missing file is not an error.
// Environment variables override file values.
func Load(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found in the working directory or the
// module root. Existing environment variables win.
func loadEnvFile() {
	paths := []string{".env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if godotenv.Load(path) == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks values that are invalid regardless of the command being run
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Blob.Backend {
	case BlobBackendDisk:
		if c.Blob.Dir == "" {
			return fmt.Errorf("blob.dir is required for the disk backend")
		}
	case BlobBackendS3:
		if c.Blob.S3Bucket == "" {
			return fmt.Errorf("blob.s3_bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown blob.backend %q (want %s or %s)", c.Blob.Backend, BlobBackendDisk, BlobBackendS3)
	}
	if c.PDF.Timeout <= 0 {
		return fmt.Errorf("pdf.timeout must be positive, got %s", c.PDF.Timeout)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	return nil
}

// RequireDatabase reports an error when no database URL is configured
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}

// ValidateServe checks the settings the API server cannot start without
func (c *Config) ValidateServe() error {
	if err := c.RequireDatabase(); err != nil {
		return err
	}
	return c.JWT.Validate()
}
