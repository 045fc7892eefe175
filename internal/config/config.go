// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Guliveer/tuxtray/internal/animation"
	"github.com/Guliveer/tuxtray/internal/classifier"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "500ms", "16ms", "1s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all application configuration.
type Config struct {
	Settings   SettingsConfig                `yaml:"settings"`
	Thresholds classifier.Thresholds         `yaml:"thresholds"`
	Skins      map[string]animation.SkinSpec `yaml:"skins"`
	Animation  AnimationConfig               `yaml:"animation"`
	Logging    LoggingConfig                 `yaml:"logging"`
	Metrics    MetricsConfig                 `yaml:"metrics"`
}

// SettingsConfig holds user-facing behaviour settings.
type SettingsConfig struct {
	PollInterval   Duration `yaml:"poll_interval"`
	AnimationMode  string   `yaml:"animation_mode"`
	CurrentSkin    string   `yaml:"current_skin"`
	TrayIconSize   int      `yaml:"tray_icon_size"`
	EmotionEnabled bool     `yaml:"emotion_enabled"`
}

// AnimationConfig holds frame clock and asset settings.
type AnimationConfig struct {
	AssetsDir      string   `yaml:"assets_dir"`
	RenderInterval Duration `yaml:"render_interval"`
	HonorLoopFlag  bool     `yaml:"honor_loop_flag"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig holds the optional Prometheus endpoint. An empty Listen
// address disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			PollInterval:   Duration{500 * time.Millisecond},
			AnimationMode:  string(classifier.ModeEmotion),
			CurrentSkin:    "default",
			TrayIconSize:   32,
			EmotionEnabled: true,
		},
		Thresholds: classifier.DefaultThresholds(),
		Skins:      map[string]animation.SkinSpec{},
		Animation: AnimationConfig{
			AssetsDir:      "./assets",
			RenderInterval: Duration{16 * time.Millisecond},
			HonorLoopFlag:  false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Mode returns the effective classification mode. Emotion mode falls back
// to cpu when the emotion system is disabled.
func (c *Config) Mode() classifier.Mode {
	mode, err := classifier.ParseMode(c.Settings.AnimationMode)
	if err != nil {
		return classifier.ModeCPU
	}
	return c.Settings.Effective(mode)
}

// Effective maps a requested mode onto the one that will actually run.
func (s SettingsConfig) Effective(mode classifier.Mode) classifier.Mode {
	if mode == classifier.ModeEmotion && !s.EmotionEnabled {
		return classifier.ModeCPU
	}
	return mode
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	Mode     string
	Skin     string
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where a config is written when none was found.
func DefaultPath() string {
	return configSearchPaths()[0]
}

// LoadBase decodes the embedded bytes and then the file at path over the
// defaults. Environment and CLI overrides are not applied, so the result is
// what a user's saved preferences look like. A missing file is skipped.
func LoadBase(embedded []byte, path string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}

	cfg, err := LoadBase(embedded, filePath)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if cli.Mode != "" {
		cfg.Settings.AnimationMode = cli.Mode
	}
	if cli.Skin != "" {
		cfg.Settings.CurrentSkin = cli.Skin
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// SavePath returns where settings loaded from found should be written back.
// A missing or unwritable file (for example the system-wide one) falls back
// to the per-user DefaultPath.
func SavePath(found string) string {
	if found == "" || !writable(found) {
		return DefaultPath()
	}
	return found
}

func writable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return os.IsNotExist(err)
	}
	f.Close()
	return true
}

// Selections are the settings changed while the application runs. Empty
// fields are left as they are on disk.
type Selections struct {
	Mode string
	Skin string
}

// SaveSelections reloads the saved preferences from src (without env or
// CLI overrides), applies sel and writes the result to dst.
func SaveSelections(embedded []byte, src, dst string, sel Selections) error {
	cfg, err := LoadBase(embedded, src)
	if err != nil {
		return err
	}
	if sel.Mode != "" {
		cfg.Settings.AnimationMode = sel.Mode
	}
	if sel.Skin != "" {
		cfg.Settings.CurrentSkin = sel.Skin
	}
	return WriteConfig(cfg, dst)
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if mode := os.Getenv("TUXTRAY_MODE"); mode != "" {
		cfg.Settings.AnimationMode = mode
	}
	if skin := os.Getenv("TUXTRAY_SKIN"); skin != "" {
		cfg.Settings.CurrentSkin = skin
	}
	if level := os.Getenv("TUXTRAY_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if addr := os.Getenv("TUXTRAY_METRICS_ADDR"); addr != "" {
		cfg.Metrics.Listen = addr
	}
}

// Validate checks that the configuration can drive the engine.
func (c *Config) Validate() error {
	if c.Settings.PollInterval.Duration <= 0 {
		return fmt.Errorf("poll interval must be positive (got: %s)", c.Settings.PollInterval.Duration)
	}
	if c.Animation.RenderInterval.Duration <= 0 {
		return fmt.Errorf("render interval must be positive (got: %s)", c.Animation.RenderInterval.Duration)
	}
	if _, err := classifier.ParseMode(c.Settings.AnimationMode); err != nil {
		return err
	}
	if c.Settings.CurrentSkin == "" {
		return fmt.Errorf("current skin is required")
	}
	return nil
}
