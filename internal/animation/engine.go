// Package animation drives the frame clock of the tray mascot. Skins are
// loaded lazily through a Loader; the active sequence advances on a fast
// render tick, throttled by its own fps, independently of how often the
// display is refreshed.
package animation

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// startupStates is tried in order when Start finds no active sequence.
// Emotion names come first, then the legacy vocabulary.
var startupStates = []string{"calm", "active", "idle"}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithHoldLastFrame makes sequences whose loop flag is false stop on their
// final frame. Disabled by default: every sequence wraps.
func WithHoldLastFrame(hold bool) EngineOption {
	return func(e *Engine) { e.holdLast = hold }
}

// Engine owns the skin catalog and the active sequence. All methods are safe
// for concurrent use; the active sequence is only replaced wholesale.
type Engine struct {
	loader   Loader
	logger   *zap.Logger
	now      func() time.Time
	holdLast bool

	mu      sync.Mutex
	catalog map[string]map[string]*Sequence
	skin    string
	state   string
	active  *Sequence
	onFrame func(Frame)
}

// NewEngine creates an Engine with an empty catalog.
func NewEngine(loader Loader, logger *zap.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		loader:  loader,
		logger:  logger,
		now:     time.Now,
		catalog: make(map[string]map[string]*Sequence),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnFrameChanged sets the display callback. It is invoked outside the
// engine lock with the newly visible frame.
func (e *Engine) OnFrameChanged(fn func(Frame)) {
	e.mu.Lock()
	e.onFrame = fn
	e.mu.Unlock()
}

// SetActiveSkin switches to skin name, loading it on first use. On failure
// nothing changes. On success the current state is re-applied if the new
// skin has it, otherwise the startup fallback runs.
func (e *Engine) SetActiveSkin(name string) bool {
	e.mu.Lock()
	if name == e.skin && e.active != nil {
		e.mu.Unlock()
		return true
	}
	_, loaded := e.catalog[name]
	e.mu.Unlock()

	if !loaded {
		seqs, ok := e.load(name)
		if !ok {
			return false
		}
		e.mu.Lock()
		e.catalog[name] = seqs
		e.mu.Unlock()
	}

	e.mu.Lock()
	e.skin = name
	state := e.state
	e.active = nil
	e.mu.Unlock()

	e.logger.Info("Skin activated", zap.String("skin", name))
	if state != "" && e.SetActiveState(state) {
		return true
	}
	e.Start()
	return true
}

// ReloadSkin drops a skin from the cache and loads it again. If it is the
// active skin, the current state is re-applied from the fresh sequences.
func (e *Engine) ReloadSkin(name string) bool {
	seqs, ok := e.load(name)
	if !ok {
		return false
	}

	e.mu.Lock()
	e.catalog[name] = seqs
	isActive := name == e.skin
	state := e.state
	if isActive {
		e.active = nil
	}
	e.mu.Unlock()

	if isActive && (state == "" || !e.SetActiveState(state)) {
		e.Start()
	}
	return true
}

// load asks the loader for a skin and keeps only non-empty sequences.
func (e *Engine) load(name string) (map[string]*Sequence, bool) {
	assets, err := e.loader.LoadSkin(name)
	if err != nil {
		e.logger.Warn("Failed to load skin", zap.String("skin", name), zap.Error(err))
		return nil, false
	}

	seqs := make(map[string]*Sequence, len(assets))
	for state, a := range assets {
		if len(a.Frames) == 0 {
			e.logger.Warn("No frames loaded for state",
				zap.String("skin", name),
				zap.String("state", state))
			continue
		}
		seqs[state] = newSequence(state, a)
	}
	if len(seqs) == 0 {
		e.logger.Warn("Skin has no usable animations, discarding", zap.String("skin", name))
		return nil, false
	}

	e.logger.Info("Loaded skin",
		zap.String("skin", name),
		zap.Int("animations", len(seqs)))
	return seqs, true
}

// SetActiveState switches to the named sequence of the current skin,
// resetting it and emitting its first frame. Unknown names leave the active
// sequence untouched.
func (e *Engine) SetActiveState(name string) bool {
	e.mu.Lock()
	seqs, ok := e.catalog[e.skin]
	if !ok {
		e.mu.Unlock()
		return false
	}
	seq, ok := seqs[name]
	if !ok {
		skin := e.skin
		e.mu.Unlock()
		e.logger.Warn("Animation not found in skin",
			zap.String("state", name),
			zap.String("skin", skin))
		return false
	}

	seq.reset(e.now())
	e.active = seq
	e.state = name
	frame := seq.current()
	fn := e.onFrame
	e.mu.Unlock()

	e.logger.Debug("Animation state changed", zap.String("state", name))
	if fn != nil {
		fn(frame)
	}
	return true
}

// Start activates the first available startup state if nothing is active.
// It reports whether a sequence is active afterwards.
func (e *Engine) Start() bool {
	e.mu.Lock()
	active := e.active != nil
	e.mu.Unlock()
	if active {
		return true
	}

	for _, name := range startupStates {
		if e.SetActiveState(name) {
			return true
		}
	}
	// Skins that only ship other states still get animated.
	if states := e.States(""); len(states) > 0 && e.SetActiveState(states[0]) {
		return true
	}
	e.logger.Warn("No animations available")
	return false
}

// Advance moves the active sequence forward by one frame when it is due and
// reports whether the visible frame changed.
func (e *Engine) Advance() bool {
	e.mu.Lock()
	if e.active == nil || !e.active.advance(e.now(), e.holdLast) {
		e.mu.Unlock()
		return false
	}
	frame := e.active.current()
	fn := e.onFrame
	e.mu.Unlock()

	if fn != nil {
		fn(frame)
	}
	return true
}

// CurrentFrame returns the visible frame, or the placeholder if nothing is
// active.
func (e *Engine) CurrentFrame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return Frame{}
	}
	return e.active.current()
}

// ActiveSkin returns the current skin identifier.
func (e *Engine) ActiveSkin() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skin
}

// ActiveState returns the name of the active sequence, or "" if none.
func (e *Engine) ActiveState() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ""
	}
	return e.state
}

// Skins returns the loaded skin identifiers, sorted.
func (e *Engine) Skins() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.catalog))
	for name := range e.catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// States returns the sorted state names of a loaded skin; an empty skin
// name means the active one.
func (e *Engine) States(skin string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if skin == "" {
		skin = e.skin
	}
	seqs := e.catalog[skin]
	out := make([]string, 0, len(seqs))
	for name := range seqs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
