// Host description: platform, CPU count, memory size and uptime.
// Used for startup diagnostics and the info command.
package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Guliveer/tuxtray/internal/models"
)

// SystemInfo describes the local host. Host identity is required; CPU count
// and memory size are best-effort and left zero when unavailable.
func (h *HostSource) SystemInfo(ctx context.Context) (models.SystemInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return models.SystemInfo{}, fmt.Errorf("reading host info: %w", err)
	}

	result := models.SystemInfo{
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelArch:      info.KernelArch,
		UptimeSeconds:   info.Uptime,
	}
	if result.Platform == "" {
		result.Platform = info.OS
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		result.CPUCount = n
	}
	if v, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		result.MemoryTotal = v.Total
	}

	return result, nil
}
