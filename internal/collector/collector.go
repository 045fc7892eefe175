// Package collector samples host resource usage for the classifier.
// The OS-facing reads sit behind the Source interface so the Sampler's
// degradation and rate logic can be exercised without a real host.
package collector

import "context"

// Source is the OS metrics collaborator. Every method must be non-blocking.
type Source interface {
	// CPUPercent returns the instantaneous processor load (0-100). A cold
	// first call may legitimately report 0.
	CPUPercent(ctx context.Context) (float64, error)

	// MemoryPercent returns the share of physical memory in use (0-100).
	MemoryPercent(ctx context.Context) (float64, error)

	// NetCounters returns cumulative bytes sent and received across all
	// interfaces. Counters are monotonically non-decreasing.
	NetCounters(ctx context.Context) (sent, recv uint64, err error)
}

// HostSource reads metrics from the local host through gopsutil.
type HostSource struct{}

// NewHostSource creates a Source backed by gopsutil.
func NewHostSource() *HostSource {
	return &HostSource{}
}
