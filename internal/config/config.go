package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"secure-calculator/internal/auth"
	"secure-calculator/internal/storage"
)

// Config holds the configuration for the calculator service.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the store configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Server holds the HTTP API configuration.
	Server *ServerConfig `yaml:"server" mapstructure:"server"`
	// Auth holds the credential and session configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
}

// DatabaseConfig holds the store configuration.
type DatabaseConfig struct {
	// Path is the SQLite file holding users and history.
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	// Listen is the address the API listens on.
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// AuthConfig holds the credential and session configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required to serve the API.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	// PasswordScheme is plaintext (default) or bcrypt.
	PasswordScheme string `yaml:"password_scheme" mapstructure:"password_scheme"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it searches the default locations and falls back to defaults
// when no file exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("CALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("database.path", storage.DefaultPath)
	v.SetDefault("server.listen", "127.0.0.1:8080")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", auth.DefaultTokenTTL)
	v.SetDefault("auth.password_scheme", auth.SchemePlaintext)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Server == nil || c.Server.Listen == "" {
		return fmt.Errorf("server listen address is required")
	}
	if c.Auth == nil {
		return fmt.Errorf("missing auth config")
	}
	if _, err := auth.CodecFor(c.Auth.PasswordScheme); err != nil {
		return err
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}
	if c.Auth.PasswordScheme == auth.SchemePlaintext {
		log.Debug("passwords are stored in plaintext, set auth.password_scheme to bcrypt to hash them")
	}
	return nil
}
