package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/class-schedule/internal/config"
	"github.com/username/class-schedule/internal/holiday"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     = zap.NewNop()
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "class-schedule",
		Short:         "Class session schedule generator",
		Long:          "Generate a table of class sessions between two dates on chosen weekdays, skipping registered holidays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger("info") // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.Level)
			} else {
				initLogger("info")
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml, $HOME/.class-schedule, /etc/class-schedule)")

	root.AddCommand(generateCmd())
	root.AddCommand(holidaysCmd())

	return root
}

// loadConfig loads the config and applies the registry flag shared by subcommands
func loadConfig(registry string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if registry != "" {
		cfg.Registry.Source = registry
	}

	return cfg, nil
}

// initializeRegistry builds the registry for the configured source, or nil when none is set
func initializeRegistry(cfg *config.Config) *holiday.Registry {
	if cfg.Registry.Source == "" {
		return nil
	}

	source := holiday.NewSource(cfg.Registry.Source, cfg.Registry.GetTimeout(), logger)
	return holiday.NewRegistry(source, holiday.RegistryOptions{
		Section: cfg.Registry.Section,
		Strict:  cfg.Registry.Strict,
	}, logger)
}

// initializeResolver wires registry, fallback calendar and per-run cache.
// It returns nil when neither a registry nor a fallback is configured.
func initializeResolver(cfg *config.Config) (holiday.Resolver, error) {
	var resolver holiday.Resolver

	if registry := initializeRegistry(cfg); registry != nil {
		logger.Info("Using holiday registry",
			zap.String("source", cfg.Registry.Source),
			zap.String("section", cfg.Registry.Section))
		resolver = registry
	}

	if country := strings.TrimSpace(cfg.Fallback.Country); country != "" {
		builtin, err := holiday.NewBuiltin(country, cfg.Fallback.Observed)
		if err != nil {
			return nil, err
		}

		if resolver == nil {
			logger.Info("Using builtin holiday calendar", zap.String("country", country))
			resolver = builtin
		} else {
			logger.Info("Builtin holiday calendar configured as fallback", zap.String("country", country))
			resolver = holiday.NewComposite(resolver, builtin, logger)
		}
	}

	if resolver == nil {
		logger.Warn("No holiday registry configured, every matching date is a session")
		return nil, nil
	}

	return holiday.NewCache(resolver, logger), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
