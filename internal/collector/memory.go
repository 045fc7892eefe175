// RAM pressure reading: direct percentage, no caching.
package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryPercent returns the share of physical memory in use.
func (h *HostSource) MemoryPercent(ctx context.Context) (float64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return v.UsedPercent, nil
}

func (s *Sampler) sampleRAM(ctx context.Context) float64 {
	v, err := s.source.MemoryPercent(ctx)
	if err != nil {
		s.reportFailure("ram", err)
		return 0
	}
	return v
}
