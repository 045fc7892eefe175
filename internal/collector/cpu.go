// CPU load reading: non-blocking gopsutil call plus the sampler's
// last-known-good fallback.
package collector

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"
)

var errNoCPUReading = errors.New("cpu percent returned no values")

// CPUPercent returns overall CPU usage since the previous call. The interval
// is zero, so the call never sleeps; the very first call reports 0.
func (h *HostSource) CPUPercent(ctx context.Context) (float64, error) {
	overall, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(overall) == 0 {
		return 0, errNoCPUReading
	}
	return overall[0], nil
}

// sampleCPU returns the current load, or the last non-zero reading when the
// source fails or reports 0 (cold start).
func (s *Sampler) sampleCPU(ctx context.Context) float64 {
	v, err := s.source.CPUPercent(ctx)
	if err != nil {
		s.reportFailure("cpu", err)
		return s.lastCPU
	}
	if v > 0 {
		s.lastCPU = v
	}
	s.logger.Debug("CPU sampled", zap.Float64("raw", v), zap.Float64("reported", s.lastCPU))
	return s.lastCPU
}
