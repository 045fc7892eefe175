// Package autostart registers the tray application to start at user login.
// A tray icon needs the user's graphical session, so only per-user
// mechanisms are supported.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the identifier used for every autostart entry.
const AppName = "tuxtray"

// Manager provides platform-specific autostart installation.
type Manager interface {
	IsInstalled() (bool, error)
	Install(execPath string) error
	Uninstall() error
	// Location describes where the entry lives (a file path or registry key).
	Location() string
}

// ResolveExecutable returns the absolute, symlink-free path of the running
// binary, suitable for an autostart entry.
func ResolveExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return exe, nil
	}
	return resolved, nil
}

// fileExists reports whether path exists, wrapping unexpected stat errors.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return true, nil
}
