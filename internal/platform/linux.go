//go:build linux

package platform

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxCommLen is the kernel's TASK_COMM_LEN minus the terminating NUL.
const maxCommLen = 15

// LinuxPlatform implements Platform using prctl(2).
type LinuxPlatform struct {
	getenv func(string) string
}

// New creates a Linux platform instance.
func New() Platform {
	return &LinuxPlatform{getenv: os.Getenv}
}

// Name returns the platform identifier.
func (p *LinuxPlatform) Name() string { return "linux" }

// SetProcessName sets the thread comm name. Names longer than the kernel
// limit are truncated.
func (p *LinuxPlatform) SetProcessName(name string) error {
	b := commName(name)
	if err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&b[0])), 0, 0, 0); err != nil {
		return fmt.Errorf("prctl PR_SET_NAME: %w", err)
	}
	return nil
}

// HasDisplay checks for an X11 or Wayland session.
func (p *LinuxPlatform) HasDisplay() bool {
	return p.getenv("DISPLAY") != "" || p.getenv("WAYLAND_DISPLAY") != ""
}

func commName(name string) []byte {
	if len(name) > maxCommLen {
		name = name[:maxCommLen]
	}
	b := make([]byte, len(name)+1)
	copy(b, name)
	return b
}
