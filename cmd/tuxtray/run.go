package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Guliveer/tuxtray/internal/animation"
	"github.com/Guliveer/tuxtray/internal/autostart"
	"github.com/Guliveer/tuxtray/internal/classifier"
	"github.com/Guliveer/tuxtray/internal/collector"
	"github.com/Guliveer/tuxtray/internal/config"
	"github.com/Guliveer/tuxtray/internal/metrics"
	"github.com/Guliveer/tuxtray/internal/platform"
	"github.com/Guliveer/tuxtray/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the animation loop (default)",
	RunE:  runTray,
}

func runTray(cmd *cobra.Command, args []string) error {
	cfg, sourcePath, err := loadConfig()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	plat := platform.New()
	if err := plat.SetProcessName(autostart.AppName); err != nil {
		logger.Debug("Could not set process name", zap.Error(err))
	}
	if !plat.HasDisplay() {
		logger.Warn("No graphical session detected, frames will only be logged")
	}

	logger.Info("Starting TuxTray",
		zap.String("version", version),
		zap.String("platform", plat.Name()),
		zap.String("mode", string(cfg.Mode())),
		zap.String("skin", cfg.Settings.CurrentSkin))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host := collector.NewHostSource()
	if info, err := host.SystemInfo(ctx); err == nil {
		logger.Info("Host detected",
			zap.String("platform", info.Platform),
			zap.String("version", info.PlatformVersion),
			zap.Int("cpus", info.CPUCount),
			zap.Uint64("memory_total", info.MemoryTotal))
	} else {
		logger.Warn("Could not read host info", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	sampler := collector.NewSampler(host, logger.Named("collector"), collector.WithFailureRecorder(m))

	loader := animation.NewFSLoader(cfg.Animation.AssetsDir, cfg.Skins, logger.Named("loader"))
	engine := animation.NewEngine(loader, logger.Named("animation"),
		animation.WithHoldLastFrame(cfg.Animation.HonorLoopFlag))
	engine.OnFrameChanged(func(f animation.Frame) {
		logger.Debug("Frame changed",
			zap.String("state", engine.ActiveState()),
			zap.String("frame", f.Name))
	})
	if !engine.SetActiveSkin(cfg.Settings.CurrentSkin) {
		logger.Warn("Configured skin unavailable, running without animation",
			zap.String("skin", cfg.Settings.CurrentSkin),
			zap.String("assets_dir", cfg.Animation.AssetsDir))
	}

	sched := scheduler.New(sampler, engine, scheduler.Config{
		PollInterval:   cfg.Settings.PollInterval.Duration,
		RenderInterval: cfg.Animation.RenderInterval.Duration,
		Mode:           cfg.Mode(),
		Thresholds:     cfg.Thresholds,
	}, m, logger.Named("scheduler"))

	var tooltip string
	sched.OnUpdate(func(u scheduler.Update) {
		if u.Summary != tooltip {
			tooltip = u.Summary
			logger.Debug("Tooltip updated", zap.String("text", tooltip))
		}
	})

	serverDone := make(chan struct{})
	if cfg.Metrics.Listen != "" {
		settings := cfg.Settings
		srv := metrics.NewServer(cfg.Metrics.Listen, reg, metrics.Handlers{
			Status: func() interface{} { return sched.Last() },
			SetMode: func(s string) error {
				mode, err := classifier.ParseMode(s)
				if err != nil {
					return err
				}
				sched.SetMode(settings.Effective(mode))
				return nil
			},
		}, logger.Named("metrics"))
		go func() {
			defer close(serverDone)
			if err := srv.Run(ctx); err != nil {
				logger.Error("Metrics endpoint failed", zap.Error(err))
			}
		}()
	} else {
		close(serverDone)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					skin := engine.ActiveSkin()
					logger.Info("Reloading skin", zap.String("skin", skin))
					if engine.ReloadSkin(skin) {
						sched.Refresh()
					}
					continue
				}
				logger.Info("Received signal, shutting down",
					zap.String("signal", sig.String()))
				cancel()
				return
			}
		}
	}()

	logger.Info("TuxTray running",
		zap.Duration("poll_interval", cfg.Settings.PollInterval.Duration),
		zap.Duration("render_interval", cfg.Animation.RenderInterval.Duration))
	sched.Start(ctx)
	cancel()
	<-serverDone

	persistConfig(cfg, sourcePath, sched.Mode(), engine.ActiveSkin(), logger)
	logger.Info("TuxTray stopped")
	return nil
}

// persistConfig writes the selections made at runtime back to disk. Only
// values that changed while running are recorded; the rest of the file is
// re-read without this run's env and CLI overrides. A system-wide source
// file is saved to the per-user path instead.
func persistConfig(cfg *config.Config, sourcePath string, mode classifier.Mode, skin string, logger *zap.Logger) {
	var sel config.Selections
	if mode != cfg.Mode() {
		sel.Mode = string(mode)
	}
	if skin != "" && skin != cfg.Settings.CurrentSkin {
		sel.Skin = skin
	}

	dst := config.SavePath(sourcePath)
	if err := config.SaveSelections(embeddedConfig, sourcePath, dst, sel); err != nil {
		logger.Warn("Could not save configuration", zap.String("path", dst), zap.Error(err))
		return
	}
	logger.Debug("Configuration saved", zap.String("path", dst))
}
