package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Guliveer/tuxtray/internal/classifier"
)

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	embedded := []byte("settings:\n  animation_mode: ram\n  current_skin: embedded")
	t.Setenv("TUXTRAY_MODE", "network")
	cli := CLIOverrides{Mode: "cpu", Skin: "cli"}

	cfg, err := LoadLayered(cli, embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.AnimationMode != "cpu" {
		t.Errorf("AnimationMode = %q, want CLI override", cfg.Settings.AnimationMode)
	}
	if cfg.Settings.CurrentSkin != "cli" {
		t.Errorf("CurrentSkin = %q, want CLI override", cfg.Settings.CurrentSkin)
	}
}

func TestLoadLayered_EnvOverridesEmbed(t *testing.T) {
	embedded := []byte("settings:\n  animation_mode: ram\n  current_skin: embedded")
	t.Setenv("TUXTRAY_MODE", "network")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.AnimationMode != "network" {
		t.Errorf("AnimationMode = %q, want env override", cfg.Settings.AnimationMode)
	}
	if cfg.Settings.CurrentSkin != "embedded" {
		t.Errorf("CurrentSkin = %q, want embedded value", cfg.Settings.CurrentSkin)
	}
}

func TestLoadLayered_FileOverridesEmbed(t *testing.T) {
	embedded := []byte("skins:\n  default:\n    name: Classic\n    animations:\n      calm: {fps: 8}\n")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("skins:\n  ninja:\n    name: Ninja\nsettings:\n  current_skin: ninja\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(CLIOverrides{}, embedded, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.CurrentSkin != "ninja" {
		t.Errorf("CurrentSkin = %q, want file value", cfg.Settings.CurrentSkin)
	}
	if _, ok := cfg.Skins["default"]; !ok {
		t.Error("embedded skin was dropped by the file layer")
	}
	if cfg.Skins["default"].Animations["calm"].FPS != 8 {
		t.Errorf("calm fps = %d, want 8", cfg.Skins["default"].Animations["calm"].FPS)
	}
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.PollInterval.Duration != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms default", cfg.Settings.PollInterval.Duration)
	}
	if cfg.Animation.RenderInterval.Duration != 16*time.Millisecond {
		t.Errorf("RenderInterval = %v, want 16ms default", cfg.Animation.RenderInterval.Duration)
	}
	if cfg.Mode() != classifier.ModeEmotion {
		t.Errorf("Mode = %q, want emotion", cfg.Mode())
	}
}

func TestLoadBase_PartialThresholdsKeepDefaults(t *testing.T) {
	data := []byte(`
thresholds:
  cpu:
    walk: 95
  emotion:
    overloaded:
      cpu_critical: 99
`)
	cfg, err := LoadBase(data, "")
	if err != nil {
		t.Fatal(err)
	}
	th := cfg.Thresholds
	if th.CPU.Walk != 95 || th.CPU.Idle != 30 {
		t.Errorf("cpu tier = %+v, want walk 95 idle 30", th.CPU)
	}
	if th.Emotion.Overloaded.CPUCritical != 99 {
		t.Errorf("cpu_critical = %v, want 99", th.Emotion.Overloaded.CPUCritical)
	}
	if th.Emotion.Overloaded.AnyCriticalThreshold != 85 {
		t.Errorf("any_critical_threshold = %v, want default 85", th.Emotion.Overloaded.AnyCriticalThreshold)
	}
	if th.Emotion.Busy.NetworkScale != 10 {
		t.Errorf("network_scale = %v, want default 10", th.Emotion.Busy.NetworkScale)
	}
}

func TestLoadBase_InvalidDuration(t *testing.T) {
	if _, err := LoadBase([]byte("settings:\n  poll_interval: soon\n"), ""); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}

func TestLoadBase_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadBase(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.CurrentSkin != "default" {
		t.Errorf("CurrentSkin = %q, want default", cfg.Settings.CurrentSkin)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		mode    string
		enabled bool
		want    classifier.Mode
	}{
		{"emotion", true, classifier.ModeEmotion},
		{"emotion", false, classifier.ModeCPU},
		{"ram", false, classifier.ModeRAM},
		{"bogus", true, classifier.ModeCPU},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Settings.AnimationMode = tt.mode
		cfg.Settings.EmotionEnabled = tt.enabled
		if got := cfg.Mode(); got != tt.want {
			t.Errorf("Mode(%q, enabled=%v) = %q, want %q", tt.mode, tt.enabled, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Settings.PollInterval = Duration{0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero poll interval")
	}

	cfg = DefaultConfig()
	cfg.Settings.AnimationMode = "gpu"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Settings.CurrentSkin = "ninja"
	cfg.Settings.PollInterval = Duration{time.Second}

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadBase(nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Settings.CurrentSkin != "ninja" {
		t.Errorf("CurrentSkin = %q, want ninja", loaded.Settings.CurrentSkin)
	}
	if loaded.Settings.PollInterval.Duration != time.Second {
		t.Errorf("PollInterval = %v, want 1s", loaded.Settings.PollInterval.Duration)
	}
}

func TestLoadBase_IgnoresEnv(t *testing.T) {
	t.Setenv("TUXTRAY_MODE", "network")
	t.Setenv("TUXTRAY_METRICS_ADDR", "127.0.0.1:9100")

	cfg, err := LoadBase(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.AnimationMode != "emotion" {
		t.Errorf("AnimationMode = %q, want default emotion", cfg.Settings.AnimationMode)
	}
	if cfg.Metrics.Listen != "" {
		t.Errorf("Metrics.Listen = %q, want empty", cfg.Metrics.Listen)
	}
}

func TestSaveSelections_DropsRunOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	user := "settings:\n  animation_mode: emotion\n  current_skin: ninja\nlogging:\n  level: info\n"
	if err := os.WriteFile(path, []byte(user), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TUXTRAY_METRICS_ADDR", "127.0.0.1:9100")

	running, err := LoadLayered(CLIOverrides{Mode: "cpu", LogLevel: "debug"}, nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if running.Settings.AnimationMode != "cpu" || running.Logging.Level != "debug" {
		t.Fatalf("overrides not applied: %+v %+v", running.Settings, running.Logging)
	}

	if err := SaveSelections(nil, path, path, Selections{}); err != nil {
		t.Fatal(err)
	}

	saved, err := LoadBase(nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Settings.AnimationMode != "emotion" {
		t.Errorf("saved mode = %q, want emotion", saved.Settings.AnimationMode)
	}
	if saved.Logging.Level != "info" {
		t.Errorf("saved level = %q, want info", saved.Logging.Level)
	}
	if saved.Metrics.Listen != "" {
		t.Errorf("saved metrics listen = %q, want empty", saved.Metrics.Listen)
	}
	if saved.Settings.CurrentSkin != "ninja" {
		t.Errorf("saved skin = %q, want ninja", saved.Settings.CurrentSkin)
	}
}

func TestSaveSelections_AppliesRuntimeChanges(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "system.yaml")
	dst := filepath.Join(dir, "user", "config.yaml")
	if err := os.WriteFile(src, []byte("settings:\n  tray_icon_size: 48\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := SaveSelections(nil, src, dst, Selections{Mode: "ram", Skin: "pirate"}); err != nil {
		t.Fatal(err)
	}

	saved, err := LoadBase(nil, dst)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Settings.AnimationMode != "ram" || saved.Settings.CurrentSkin != "pirate" {
		t.Errorf("saved settings = %+v", saved.Settings)
	}
	if saved.Settings.TrayIconSize != 48 {
		t.Errorf("TrayIconSize = %d, want 48 from source file", saved.Settings.TrayIconSize)
	}
}

func TestSavePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		found string
		want  string
	}{
		{"nothing found", "", DefaultPath()},
		{"writable file", file, file},
		{"not yet created", filepath.Join(dir, "new.yaml"), filepath.Join(dir, "new.yaml")},
		{"not writable", dir, DefaultPath()},
	}
	for _, tt := range tests {
		if got := SavePath(tt.found); got != tt.want {
			t.Errorf("%s: SavePath(%q) = %q, want %q", tt.name, tt.found, got, tt.want)
		}
	}
}
