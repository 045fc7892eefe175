// Package platform provides an OS abstraction layer for the few process-level
// tweaks gopsutil does not cover.
package platform

// Platform provides OS-specific process integration.
type Platform interface {
	// SetProcessName renames the running process as seen by ps and top.
	// Platforms without support return nil and do nothing.
	SetProcessName(name string) error

	// HasDisplay reports whether a graphical session is reachable.
	HasDisplay() bool

	// Name returns the platform name (linux, stub).
	Name() string
}
