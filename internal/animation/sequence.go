package animation

import "time"

// fallbackFrameDuration is used when a sequence declares fps <= 0 (~24 fps).
const fallbackFrameDuration = 42 * time.Millisecond

// Frame is an opaque, already decoded and scaled frame handle. The zero
// value is the placeholder returned when nothing is active.
type Frame struct {
	Name string
	Data []byte
}

// IsEmpty reports whether f is the placeholder frame.
func (f Frame) IsEmpty() bool {
	return f.Name == "" && len(f.Data) == 0
}

// Sequence is the timed frame list of one state within one skin.
type Sequence struct {
	name        string
	frames      []Frame
	fps         int
	loop        bool
	index       int
	lastAdvance time.Time
}

func newSequence(name string, assets SequenceAssets) *Sequence {
	return &Sequence{
		name:   name,
		frames: assets.Frames,
		fps:    assets.FPS,
		loop:   assets.Loop,
	}
}

// Name returns the state this sequence animates.
func (s *Sequence) Name() string { return s.name }

// Len returns the number of frames.
func (s *Sequence) Len() int { return len(s.frames) }

// Index returns the current frame index.
func (s *Sequence) Index() int { return s.index }

// Loop returns the declared loop flag.
func (s *Sequence) Loop() bool { return s.loop }

// FrameDuration is how long each frame stays on screen.
func (s *Sequence) FrameDuration() time.Duration {
	if s.fps <= 0 {
		return fallbackFrameDuration
	}
	return time.Duration(1000/s.fps) * time.Millisecond
}

func (s *Sequence) reset(now time.Time) {
	s.index = 0
	s.lastAdvance = now
}

// advance moves to the next frame if a full frame duration has elapsed.
// The index wraps modulo the length. With holdLast set, a sequence whose
// loop flag is false stops on its final frame instead.
func (s *Sequence) advance(now time.Time, holdLast bool) bool {
	if len(s.frames) == 0 {
		return false
	}
	if now.Sub(s.lastAdvance) < s.FrameDuration() {
		return false
	}
	if holdLast && !s.loop && s.index == len(s.frames)-1 {
		return false
	}
	s.index = (s.index + 1) % len(s.frames)
	s.lastAdvance = now
	return true
}

func (s *Sequence) current() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	return s.frames[s.index]
}
