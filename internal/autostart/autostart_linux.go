//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// desktopTemplate is the XDG autostart entry written during installation.
// The placeholder {execPath} is replaced with the actual binary path.
const desktopTemplate = `[Desktop Entry]
Type=Application
Name=TuxTray
Comment=Animated system monitor in the tray
Exec="{execPath}" run
Icon=tuxtray
Terminal=false
X-GNOME-Autostart-enabled=true
`

// linuxManager implements Manager with an XDG autostart desktop entry.
type linuxManager struct {
	path string
}

// New returns a Manager writing to $XDG_CONFIG_HOME/autostart, or
// ~/.config/autostart when the variable is unset.
func New() Manager {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return NewInDir(filepath.Join(dir, "autostart"))
}

// NewInDir returns a Manager that keeps its desktop entry in dir.
func NewInDir(dir string) Manager {
	return &linuxManager{path: filepath.Join(dir, AppName+".desktop")}
}

// Location returns the desktop entry path.
func (l *linuxManager) Location() string { return l.path }

// IsInstalled checks whether the desktop entry exists.
func (l *linuxManager) IsInstalled() (bool, error) {
	return fileExists(l.path)
}

// Install writes the desktop entry with the binary path substituted.
func (l *linuxManager) Install(execPath string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating autostart directory: %w", err)
	}
	entry := strings.ReplaceAll(desktopTemplate, "{execPath}", execPath)
	if err := os.WriteFile(l.path, []byte(entry), 0644); err != nil {
		return fmt.Errorf("writing desktop entry: %w", err)
	}
	return nil
}

// Uninstall removes the desktop entry. A missing entry is not an error.
func (l *linuxManager) Uninstall() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing desktop entry: %w", err)
	}
	return nil
}
