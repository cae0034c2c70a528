package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/cadence/internal/errors"
)

// envPrefix is the environment variable prefix for every config key.
const envPrefix = "CADENCE"

// newViperInstance creates a new Viper instance with the CADENCE_ environment
// prefix, key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// A missing config file is not an error.
//
// The logger is taken from ctx via zerolog.Ctx.
func Load(ctx context.Context) (*Config, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		// No home directory: defaults and environment still apply.
		path = ""
	}
	cfg, err := LoadFromPaths(ctx, path)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Int("goals.tasks", cfg.Goals.Tasks).
		Int("goals.habits", cfg.Goals.Habits).
		Int("goals.focus_minutes", cfg.Goals.FocusMinutes).
		Str("calendar.timezone", cfg.Calendar.Timezone).
		Dur("storage.lock_timeout", cfg.Storage.LockTimeout).
		Msg("configuration loaded")
	return cfg, nil
}

// LoadFromPaths loads configuration from a specific config file path.
// An empty path, or a path that does not exist, skips the file layer.
func LoadFromPaths(_ context.Context, configPath string) (*Config, error) {
	v := newViperInstance()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config: %s", configPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("goals.tasks", d.Goals.Tasks)
	v.SetDefault("goals.habits", d.Goals.Habits)
	v.SetDefault("goals.focus_minutes", d.Goals.FocusMinutes)

	v.SetDefault("calendar.timezone", d.Calendar.Timezone)

	v.SetDefault("storage.data_file", d.Storage.DataFile)
	v.SetDefault("storage.lock_timeout", d.Storage.LockTimeout.String())
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
