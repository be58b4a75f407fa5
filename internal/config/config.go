// Package config loads lifeassist settings from ~/.lifeassist/config.yaml,
// with LIFEASSIST_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	dirName    = ".lifeassist"
	configName = "config"
	configType = "yaml"
	envPrefix  = "LIFEASSIST"
)

// Push driver names.
const (
	PushDriverConsole = "console"
	PushDriverHTTP    = "http"
)

// Config is the full lifeassist configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Push     PushConfig     `mapstructure:"push"`
	Server   ServerConfig   `mapstructure:"server"`
	Identity IdentityConfig `mapstructure:"identity"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SweepConfig controls the session expiry job.
type SweepConfig struct {
	Schedule        string        `mapstructure:"schedule"`         // cron spec, e.g. "@every 5m"
	ExpiryThreshold time.Duration `mapstructure:"expiry_threshold"` // age at which unfinished sessions expire
}

type PushConfig struct {
	Driver    string        `mapstructure:"driver"` // "console" or "http"
	Endpoint  string        `mapstructure:"endpoint"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// IdentityConfig holds the locally configured user (public key) used when
// no --user flag is given.
type IdentityConfig struct {
	UserID string `mapstructure:"user_id"`
}

// Dir returns ~/.lifeassist.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v)
	// Defaults are plain values; decoding them cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	dbPath := "lifeassist.db"
	if dir, err := Dir(); err == nil {
		dbPath = filepath.Join(dir, "lifeassist.db")
	}
	v.SetDefault("database.path", dbPath)
	v.SetDefault("sweep.schedule", "@every 5m")
	v.SetDefault("sweep.expiry_threshold", "16h")
	v.SetDefault("push.driver", PushDriverConsole)
	v.SetDefault("push.endpoint", "")
	v.SetDefault("push.auth_token", "")
	v.SetDefault("push.timeout", "10s")
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("identity.user_id", "")
}

// Load reads the config file at path (or the default location when path is
// empty). A missing file is not an error: defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Sweep.ExpiryThreshold <= 0 {
		return fmt.Errorf("sweep.expiry_threshold must be positive (got %s)", c.Sweep.ExpiryThreshold)
	}
	switch c.Push.Driver {
	case PushDriverConsole:
	case PushDriverHTTP:
		if c.Push.Endpoint == "" {
			return fmt.Errorf("push.endpoint is required when push.driver is %q", PushDriverHTTP)
		}
	default:
		return fmt.Errorf("unknown push.driver %q", c.Push.Driver)
	}
	return nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.Set("database.path", cfg.Database.Path)
	v.Set("sweep.schedule", cfg.Sweep.Schedule)
	v.Set("sweep.expiry_threshold", cfg.Sweep.ExpiryThreshold.String())
	v.Set("push.driver", cfg.Push.Driver)
	v.Set("push.endpoint", cfg.Push.Endpoint)
	v.Set("push.auth_token", cfg.Push.AuthToken)
	v.Set("push.timeout", cfg.Push.Timeout.String())
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("identity.user_id", cfg.Identity.UserID)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
