// Package config loads the runtime configuration from a config file
// and the environment. Every value has a default so that the backend
// starts without any configuration at all.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"` // Address to bind to, e.g. ":8080"
	Mode    string `mapstructure:"mode"`    // gin mode: debug, release or test
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type ReportConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Report   ReportConfig   `mapstructure:"report"`
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpireHours) * time.Hour
}

// CacheTTL returns the report cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Report.CacheTTLSeconds) * time.Second
}

// Load reads the configuration from the given file path. If path is
// empty, it looks for config.yaml in the working directory and falls
// back to the defaults when there is none.
//
// Environment variables override the file, e.g. CENTSIBLE_SERVER_ADDRESS
// or CENTSIBLE_JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/centsible.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("cors.allow_origins", []string{})
	v.SetDefault("report.cache_ttl_seconds", 60)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("CENTSIBLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine, anything else is not
		var notFound viper.ConfigFileNotFoundError
		if !(path == "" && errors.As(err, &notFound)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &c, nil
}
