// Package main is the entry point for TuxTray, a tray mascot whose animation
// follows host load. It resolves configuration, sets up the sampler and the
// animation engine, and runs the scheduler until interrupted.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Guliveer/tuxtray/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	flagMode   string
	flagSkin   string
	flagLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "tuxtray",
	Short: "Animated system monitor for the tray",
	Long: `TuxTray shows a small animated mascot whose mood follows CPU, memory
and network load. Running without a subcommand starts the animation loop.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTray,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: auto-discover)")
	pf.StringVar(&flagMode, "mode", "", "Animation mode: emotion, cpu, ram or network")
	pf.StringVar(&flagSkin, "skin", "", "Skin to display")
	pf.StringVar(&flagLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd, sampleCmd, infoCmd, skinsCmd, setupCmd, autostartCmd, versionCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("tuxtray {{.Version}}\n")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tuxtray %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the layered configuration and the config file it was
// read from ("" when none exists).
func loadConfig() (*config.Config, string, error) {
	cli := config.CLIOverrides{Mode: flagMode, Skin: flagSkin, LogLevel: flagLevel}

	path := configPath
	if path == "" {
		path = config.Locate()
	}
	cfg, err := config.LoadLayered(cli, embeddedConfig, path)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// initLogger creates a zap logger based on the configuration.
// It outputs to both console (human-readable) and optionally a JSON log file.
// Console output goes to stderr so that command output on stdout stays clean.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
