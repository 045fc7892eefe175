//go:build !linux

// Stub Platform implementation for macOS and Windows, where the tray host
// owns the process name and a display is always present.
package platform

// StubPlatform is a no-op Platform for non-Linux operating systems.
type StubPlatform struct{}

// New creates a stub platform instance.
func New() Platform {
	return &StubPlatform{}
}

// Name returns the platform identifier.
func (p *StubPlatform) Name() string { return "stub" }

// SetProcessName is a no-op.
func (p *StubPlatform) SetProcessName(string) error { return nil }

// HasDisplay always reports true.
func (p *StubPlatform) HasDisplay() bool { return true }
