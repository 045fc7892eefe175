//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`
	valueName  = "TuxTray"
)

// windowsManager implements Manager with a value under the current user's
// Run key.
type windowsManager struct{}

// New returns a Manager that uses HKCU\...\Run.
func New() Manager {
	return &windowsManager{}
}

// Location returns the registry key holding the entry.
func (w *windowsManager) Location() string {
	return `HKCU\` + runKeyPath + `\` + valueName
}

// IsInstalled checks whether the Run value exists.
func (w *windowsManager) IsInstalled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetStringValue(valueName)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading Run value: %w", err)
	}
	return true, nil
}

// Install registers the binary to run at login.
func (w *windowsManager) Install(execPath string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(valueName, fmt.Sprintf(`"%s" run`, execPath)); err != nil {
		return fmt.Errorf("writing Run value: %w", err)
	}
	return nil
}

// Uninstall removes the Run value. A missing value is not an error.
func (w *windowsManager) Uninstall() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening Run key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(valueName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("deleting Run value: %w", err)
	}
	return nil
}
