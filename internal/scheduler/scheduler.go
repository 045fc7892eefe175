// Package scheduler ties the poll and render clocks together. A single
// goroutine selects over both tickers, so sampling, classification and frame
// advancement never run concurrently with each other.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/tuxtray/internal/classifier"
	"github.com/Guliveer/tuxtray/internal/metrics"
	"github.com/Guliveer/tuxtray/internal/models"
)

// Sampler produces one telemetry sample per call.
type Sampler interface {
	Sample(ctx context.Context) models.TelemetrySample
}

// Animator is the part of the animation engine the scheduler drives.
type Animator interface {
	SetActiveState(name string) bool
	ActiveState() string
	Advance() bool
	Start() bool
}

// Update is passed to the OnUpdate callback after every poll.
type Update struct {
	Sample   models.TelemetrySample `json:"sample"`
	Mode     classifier.Mode        `json:"mode"`
	State    string                 `json:"state"`
	Analysis models.Analysis        `json:"analysis"`
	Summary  string                 `json:"summary"`
}

// Config holds the scheduler's timing and classification inputs.
type Config struct {
	PollInterval   time.Duration
	RenderInterval time.Duration
	Mode           classifier.Mode
	Thresholds     classifier.Thresholds
}

// Scheduler runs the poll and render tasks.
type Scheduler struct {
	sampler  Sampler
	animator Animator
	cfg      Config
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu         sync.Mutex
	mode       classifier.Mode
	lastFailed string
	last       Update

	refresh  chan struct{}
	onUpdate func(Update)
}

// New creates a Scheduler. A nil metrics value records into a private
// registry.
func New(sampler Sampler, animator Animator, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Scheduler{
		sampler:  sampler,
		animator: animator,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		mode:     cfg.Mode,
		refresh:  make(chan struct{}, 1),
	}
}

// OnUpdate sets the callback invoked after every poll, typically to refresh
// a tooltip. It runs on the scheduler goroutine.
func (s *Scheduler) OnUpdate(fn func(Update)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// SetMode switches the classification mode and requests an immediate poll.
func (s *Scheduler) SetMode(mode classifier.Mode) {
	s.mu.Lock()
	changed := s.mode != mode
	s.mode = mode
	s.lastFailed = ""
	s.mu.Unlock()

	if !changed {
		return
	}
	s.logger.Info("Animation mode changed", zap.String("mode", string(mode)))
	s.requestPoll()
}

// Refresh forgets labels the skin could not show and requests an immediate
// poll. Call it after the animator's skin was reloaded or switched.
func (s *Scheduler) Refresh() {
	s.mu.Lock()
	s.lastFailed = ""
	s.mu.Unlock()
	s.requestPoll()
}

func (s *Scheduler) requestPoll() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Mode returns the current classification mode.
func (s *Scheduler) Mode() classifier.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Last returns the result of the most recent poll.
func (s *Scheduler) Last() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Start runs both tasks until ctx is cancelled. When it returns, both
// tickers are stopped and no further tick will fire, so callers can persist
// state safely afterwards.
func (s *Scheduler) Start(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	pollTicker := time.NewTicker(s.cfg.PollInterval)
	renderTicker := time.NewTicker(s.cfg.RenderInterval)

	defer pollTicker.Stop()
	defer renderTicker.Stop()

	s.animator.Start()

	// Do an initial poll immediately
	s.Poll(ctx)

	for {
		// Shutdown wins over any tick that is ready at the same time.
		if ctx.Err() != nil {
			s.logger.Debug("Scheduler stopped")
			return
		}
		select {
		case <-ctx.Done():
			s.logger.Debug("Scheduler stopped")
			return
		case <-pollTicker.C:
			s.Poll(ctx)
		case <-s.refresh:
			s.Poll(ctx)
		case <-renderTicker.C:
			s.render()
		}
	}
}

// Poll performs one sample, classify and state-switch cycle.
func (s *Scheduler) Poll(ctx context.Context) Update {
	sample := s.sampler.Sample(ctx)
	mode := s.Mode()

	state := string(classifier.Classify(sample, s.cfg.Thresholds, mode))
	analysis := classifier.Analyze(sample, s.cfg.Thresholds)

	s.metrics.ObserveSample(sample, analysis.OverallStress)
	s.metrics.ObserveState(string(mode), state)

	s.applyState(state)

	u := Update{
		Sample:   sample,
		Mode:     mode,
		State:    state,
		Analysis: analysis,
		Summary:  Summary(sample, analysis, mode),
	}

	s.mu.Lock()
	s.last = u
	fn := s.onUpdate
	s.mu.Unlock()

	s.logger.Debug("Polled system state",
		zap.String("mode", string(mode)),
		zap.String("state", state),
		zap.Float64("cpu", sample.CPUPercent),
		zap.Float64("ram", sample.RAMPercent),
		zap.Float64("network_kbps", sample.NetworkKbps))

	if fn != nil {
		fn(u)
	}
	return u
}

// applyState switches the animation when the label changed. A label the
// skin cannot show is not retried until a different label comes along or
// Refresh is called.
func (s *Scheduler) applyState(state string) {
	if state == s.animator.ActiveState() {
		return
	}
	s.mu.Lock()
	skip := state == s.lastFailed
	s.mu.Unlock()
	if skip {
		return
	}

	ok := s.animator.SetActiveState(state)

	s.mu.Lock()
	if ok {
		s.lastFailed = ""
	} else {
		s.lastFailed = state
	}
	s.mu.Unlock()

	if ok {
		s.logger.Info("State changed", zap.String("state", state))
	}
}

func (s *Scheduler) render() {
	if s.animator.Advance() {
		s.metrics.FramesRendered.Inc()
	}
}
