package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalCounters(t *testing.T) {
	sent, recv, err := totalCounters([]net.IOCountersStat{{Name: "all", BytesSent: 2048, BytesRecv: 4096}})
	require.NoError(t, err)
	assert.Equal(t, uint64(2048), sent)
	assert.Equal(t, uint64(4096), recv)
}

func TestTotalCounters_EmptyIsAnError(t *testing.T) {
	_, _, err := totalCounters(nil)
	assert.True(t, errors.Is(err, errNoCounters))
}

func TestSample_MissingCountersDoNotSpike(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	src := &fakeSource{
		cpu: []float64{10},
		net: []netReading{
			{sent: 1 << 30, recv: 1 << 30},
			{err: errNoCounters},
			{sent: 1 << 30, recv: 1<<30 + 1024},
			{sent: 1 << 30, recv: 1<<30 + 2048},
		},
	}
	s := NewSampler(src, nil,
		WithClock(stepClock(t0, t0.Add(time.Second), t0.Add(2*time.Second), t0.Add(3*time.Second))))

	var rates []float64
	for i := 0; i < 4; i++ {
		rates = append(rates, s.Sample(context.Background()).NetworkKbps)
	}
	assert.Equal(t, []float64{0, 0, 0, 1}, rates)
}
