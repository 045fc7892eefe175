package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Guliveer/tuxtray/internal/animation"
	"github.com/Guliveer/tuxtray/internal/classifier"
	"github.com/Guliveer/tuxtray/internal/collector"
	"github.com/Guliveer/tuxtray/internal/models"
	"github.com/Guliveer/tuxtray/internal/scheduler"
)

var (
	jsonOutput  bool
	sampleCount int
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print telemetry samples and their classification",
	Long: `Take a few samples at the configured poll interval and print each one
with its state in the active mode and the emotion analysis. The first sample
always reports 0 KB/s because the network rate needs a baseline.`,
	RunE: runSample,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show host information",
	RunE:  runInfo,
}

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "List configured skins and their states",
	RunE:  runSkins,
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 2, "Number of samples to take")
	sampleCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON lines instead of text")
	infoCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
}

// sampleReport is one line of `tuxtray sample` output.
type sampleReport struct {
	Sample   models.TelemetrySample `json:"sample"`
	Mode     classifier.Mode        `json:"mode"`
	State    classifier.State       `json:"state"`
	Analysis models.Analysis        `json:"analysis"`
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger := initLogger(cfg)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := collector.NewSampler(collector.NewHostSource(), logger)
	mode := cfg.Mode()
	out := cmd.OutOrStdout()

	for i := 0; i < sampleCount; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(cfg.Settings.PollInterval.Duration):
			}
		}
		s := sampler.Sample(ctx)
		r := sampleReport{
			Sample:   s,
			Mode:     mode,
			State:    classifier.Classify(s, cfg.Thresholds, mode),
			Analysis: classifier.Analyze(s, cfg.Thresholds),
		}
		if err := writeSample(out, r); err != nil {
			return err
		}
	}
	return nil
}

func writeSample(w io.Writer, r sampleReport) error {
	if jsonOutput {
		return json.NewEncoder(w).Encode(r)
	}
	_, err := fmt.Fprintf(w, "%-8s %-20s cpu=%.1f%% ram=%.1f%% net=%.1fKB/s  %s\n",
		r.State,
		scheduler.Summary(r.Sample, r.Analysis, r.Mode),
		r.Sample.CPUPercent, r.Sample.RAMPercent, r.Sample.NetworkKbps,
		r.Analysis.Description)
	return err
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	info, err := collector.NewHostSource().SystemInfo(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(out, "Platform:  %s %s\n", info.Platform, info.PlatformVersion)
	fmt.Fprintf(out, "Arch:      %s\n", info.KernelArch)
	fmt.Fprintf(out, "CPUs:      %d\n", info.CPUCount)
	fmt.Fprintf(out, "Memory:    %.1f GiB\n", float64(info.MemoryTotal)/(1<<30))
	fmt.Fprintf(out, "Uptime:    %s\n", time.Duration(info.UptimeSeconds)*time.Second)
	return nil
}

func runSkins(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger := initLogger(cfg)
	defer logger.Sync()

	loader := animation.NewFSLoader(cfg.Animation.AssetsDir, cfg.Skins, logger)
	engine := animation.NewEngine(loader, logger)

	names := loader.Skins()
	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := cmd.OutOrStdout()
	for _, id := range ids {
		marker := " "
		if id == cfg.Settings.CurrentSkin {
			marker = "*"
		}
		states := "unavailable"
		if engine.SetActiveSkin(id) {
			states = strings.Join(engine.States(id), ", ")
		}
		fmt.Fprintf(out, "%s %-12s %-20s %s\n", marker, id, names[id], states)
	}
	return nil
}
