package scheduler

import (
	"fmt"
	"strings"

	"github.com/Guliveer/tuxtray/internal/classifier"
	"github.com/Guliveer/tuxtray/internal/models"
)

// Summary renders the one-line tooltip text for mode.
func Summary(sample models.TelemetrySample, analysis models.Analysis, mode classifier.Mode) string {
	switch mode {
	case classifier.ModeEmotion:
		return fmt.Sprintf("Mood: %s (%.1f%% stress)", title(analysis.State), analysis.OverallStress)
	case classifier.ModeCPU:
		return fmt.Sprintf("CPU: %.1f%%", sample.CPUPercent)
	case classifier.ModeRAM:
		return fmt.Sprintf("RAM: %.1f%%", sample.RAMPercent)
	case classifier.ModeNetwork:
		return fmt.Sprintf("Network: %.1f KB/s", sample.NetworkKbps)
	default:
		return "Monitoring..."
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
