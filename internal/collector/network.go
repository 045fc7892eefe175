// Network throughput: KB/s derived from successive cumulative byte counters.
package collector

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v3/net"
)

// errNoCounters is returned when the OS reports no network counters at all.
var errNoCounters = errors.New("no network counters reported")

// NetCounters returns the all-interface cumulative byte counters.
func (h *HostSource) NetCounters(ctx context.Context) (uint64, uint64, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	return totalCounters(counters)
}

// totalCounters extracts the aggregate entry. An empty list is an error so
// that the sampler drops its baseline instead of recording zeros.
func totalCounters(counters []net.IOCountersStat) (uint64, uint64, error) {
	if len(counters) == 0 {
		return 0, 0, errNoCounters
	}
	return counters[0].BytesSent, counters[0].BytesRecv, nil
}

// netBaseline is the previous counter reading used to derive a rate.
type netBaseline struct {
	sent uint64
	recv uint64
	at   time.Time
}

// sampleNetwork returns combined upload+download throughput in KB/s.
// The baseline is replaced on every successful read, including reads whose
// elapsed time is degenerate, so the next rate never spans a stale interval.
// A failed read clears the baseline.
func (s *Sampler) sampleNetwork(ctx context.Context, now time.Time) float64 {
	sent, recv, err := s.source.NetCounters(ctx)
	if err != nil {
		s.baseline = nil
		s.reportFailure("network", err)
		return 0
	}

	prev := s.baseline
	s.baseline = &netBaseline{sent: sent, recv: recv, at: now}

	if prev == nil {
		return 0
	}
	elapsed := now.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return 0
	}

	delta := counterDelta(prev.sent, sent) + counterDelta(prev.recv, recv)
	return delta / 1024 / elapsed
}

// counterDelta returns cur-prev, or 0 if the counter went backwards
// (interface reset or wraparound).
func counterDelta(prev, cur uint64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur - prev)
}
