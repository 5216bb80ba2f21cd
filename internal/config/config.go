package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Git backend selection values.
const (
	BackendAuto   = "auto"
	BackendCLI    = "cli"
	BackendNative = "native"
)

type Config struct {
	File   string     `mapstructure:"file"   validate:"required"`
	Marker string     `mapstructure:"marker" validate:"required"`
	Git    GitConfig  `mapstructure:"git"`
	Lock   LockConfig `mapstructure:"lock"`
}

// GitConfig configures how the repository is described.
type GitConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=auto cli native"`
	Abbrev  int           `mapstructure:"abbrev"  validate:"min=6,max=40"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// LockConfig configures the target file lock.
type LockConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

var validate = validator.New()

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		File:   "plugin.cfg",
		Marker: "version=",
		Git: GitConfig{
			Backend: BackendAuto,
			Abbrev:  6,
			Timeout: 10 * time.Second,
		},
		Lock: LockConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	// A marker containing whitespace can never match a line prefix
	if strings.ContainsAny(c.Marker, " \t\r\n") {
		return fmt.Errorf("marker cannot contain whitespace: %q", c.Marker)
	}
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".verstamp")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("VERSTAMP")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	if err := viper.BindEnv("file", "VERSTAMP_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind file env: %w", err)
	}
	if err := viper.BindEnv("marker", "VERSTAMP_MARKER"); err != nil {
		return nil, fmt.Errorf("failed to bind marker env: %w", err)
	}
	if err := viper.BindEnv("git.backend", "VERSTAMP_GIT_BACKEND"); err != nil {
		return nil, fmt.Errorf("failed to bind git.backend env: %w", err)
	}
	if err := viper.BindEnv("git.abbrev", "VERSTAMP_GIT_ABBREV"); err != nil {
		return nil, fmt.Errorf("failed to bind git.abbrev env: %w", err)
	}
	if err := viper.BindEnv("git.timeout", "VERSTAMP_GIT_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("failed to bind git.timeout env: %w", err)
	}
	if err := viper.BindEnv("lock.timeout", "VERSTAMP_LOCK_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("failed to bind lock.timeout env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("file", defaults.File)
	viper.SetDefault("marker", defaults.Marker)
	viper.SetDefault("git.backend", defaults.Git.Backend)
	viper.SetDefault("git.abbrev", defaults.Git.Abbrev)
	viper.SetDefault("git.timeout", defaults.Git.Timeout)
	viper.SetDefault("lock.timeout", defaults.Lock.Timeout)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
