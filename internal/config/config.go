package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/class-schedule/internal/render"
	"github.com/username/class-schedule/internal/schedule"
)

// EnvPrefix prefixes environment overrides, e.g. CLASS_SCHEDULE_REGISTRY_SOURCE
const EnvPrefix = "CLASS_SCHEDULE"

// Config represents application configuration
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Fallback FallbackConfig `mapstructure:"fallback"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// RegistryConfig represents the holiday registry document
type RegistryConfig struct {
	Source  string `mapstructure:"source"`  // file path or http(s) URL; empty disables holidays
	Section string `mapstructure:"section"` // top-level heading holding the holidays
	Strict  bool   `mapstructure:"strict"`  // fail on duplicate dates instead of first-match-wins
	Timeout string `mapstructure:"timeout"` // HTTP fetch timeout
}

// FallbackConfig represents the builtin holiday calendar used when the registry fails
type FallbackConfig struct {
	Country  string `mapstructure:"country"` // "" disables the fallback
	Observed bool   `mapstructure:"observed"`
}

// ScheduleConfig represents schedule defaults
type ScheduleConfig struct {
	Weekdays    string            `mapstructure:"weekdays"`
	RepeatMonth bool              `mapstructure:"repeat_month"`
	Locale      string            `mapstructure:"locale"`
	Names       map[string]string `mapstructure:"names"` // translation overrides, English name -> label
}

// OutputConfig represents rendering options
type OutputConfig struct {
	Format  string         `mapstructure:"format"`
	Columns render.Columns `mapstructure:"columns"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing file is not an error when
// no explicit path was given; every key has a default.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.class-schedule")
		v.AddConfigPath("/etc/class-schedule")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			Section: "Feriados",
			Timeout: "10s",
		},
		Schedule: ScheduleConfig{
			Locale: schedule.LocaleSpanish,
		},
		Output: OutputConfig{
			Format:  render.FormatOrg,
			Columns: render.DefaultColumns,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("registry.source", d.Registry.Source)
	v.SetDefault("registry.section", d.Registry.Section)
	v.SetDefault("registry.strict", d.Registry.Strict)
	v.SetDefault("registry.timeout", d.Registry.Timeout)
	v.SetDefault("fallback.country", d.Fallback.Country)
	v.SetDefault("fallback.observed", d.Fallback.Observed)
	v.SetDefault("schedule.weekdays", d.Schedule.Weekdays)
	v.SetDefault("schedule.repeat_month", d.Schedule.RepeatMonth)
	v.SetDefault("schedule.locale", d.Schedule.Locale)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.columns.number", d.Output.Columns.Number)
	v.SetDefault("output.columns.month", d.Output.Columns.Month)
	v.SetDefault("output.columns.day", d.Output.Columns.Day)
	v.SetDefault("output.columns.weekday", d.Output.Columns.Weekday)
	v.SetDefault("output.columns.note", d.Output.Columns.Note)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Registry.Section) == "" {
		return fmt.Errorf("registry.section must not be empty")
	}
	if c.Registry.Timeout != "" {
		if _, err := time.ParseDuration(c.Registry.Timeout); err != nil {
			return fmt.Errorf("registry.timeout: %w", err)
		}
	}

	switch strings.ToLower(c.Fallback.Country) {
	case "", "us":
	default:
		return fmt.Errorf("fallback.country must be empty or 'us', got '%s'", c.Fallback.Country)
	}

	switch strings.ToLower(c.Schedule.Locale) {
	case schedule.LocaleSpanish, schedule.LocaleEnglish:
	default:
		return fmt.Errorf("schedule.locale must be '%s' or '%s', got '%s'",
			schedule.LocaleSpanish, schedule.LocaleEnglish, c.Schedule.Locale)
	}

	if !isFormat(c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got '%s'",
			strings.Join(render.Formats, ", "), c.Output.Format)
	}

	return nil
}

func isFormat(format string) bool {
	for _, f := range render.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// GetTimeout returns the registry fetch timeout
func (c *RegistryConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Registry.Source = os.ExpandEnv(c.Registry.Source)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
