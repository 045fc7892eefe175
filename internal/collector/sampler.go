package collector

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Guliveer/tuxtray/internal/models"
)

const (
	// failureLogInterval bounds how often a persistently failing source is
	// logged at warn level. Polling runs at ~2 Hz, so every failure would
	// otherwise produce a line.
	failureLogInterval = 30 * time.Second
	failureLogBurst    = 3
)

// FailureRecorder receives one call per failed metric read.
type FailureRecorder interface {
	SamplerFailure(metric string)
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithClock overrides the time source used for sample timestamps and
// network rate computation.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// WithFailureRecorder registers a recorder for failed reads.
func WithFailureRecorder(r FailureRecorder) Option {
	return func(s *Sampler) { s.failures = r }
}

// Sampler produces TelemetrySamples. It owns the last good CPU reading and
// the network baseline; nothing else reads or writes them.
type Sampler struct {
	source   Source
	logger   *zap.Logger
	failures FailureRecorder
	limiter  *rate.Limiter
	now      func() time.Time

	mu       sync.Mutex
	lastCPU  float64
	baseline *netBaseline
}

// NewSampler creates a Sampler reading from source. A nil logger disables
// logging.
func NewSampler(source Source, logger *zap.Logger, opts ...Option) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sampler{
		source:  source,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(failureLogInterval), failureLogBurst),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample reads all metrics once. It never fails: each metric degrades to a
// safe value on error and the failure is logged.
func (s *Sampler) Sample(ctx context.Context) models.TelemetrySample {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	return models.TelemetrySample{
		CPUPercent:  s.sampleCPU(ctx),
		RAMPercent:  s.sampleRAM(ctx),
		NetworkKbps: s.sampleNetwork(ctx, now),
		CapturedAt:  now,
	}
}

// reportFailure logs and counts a failed read. Must be called with s.mu held.
func (s *Sampler) reportFailure(metric string, err error) {
	if s.failures != nil {
		s.failures.SamplerFailure(metric)
	}
	if s.limiter.Allow() {
		s.logger.Warn("Metric read failed, using fallback value",
			zap.String("metric", metric),
			zap.Error(err))
		return
	}
	s.logger.Debug("Metric read failed",
		zap.String("metric", metric),
		zap.Error(err))
}
