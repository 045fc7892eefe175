//go:build darwin

package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const agentLabel = "io.github.guliveer.tuxtray"

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{label}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{execPath}</string>
        <string>run</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>ProcessType</key>
    <string>Interactive</string>
</dict>
</plist>
`

// darwinManager implements Manager with a per-user LaunchAgent.
type darwinManager struct {
	plistPath string
}

// New returns a Manager writing to ~/Library/LaunchAgents.
func New() Manager {
	home, _ := os.UserHomeDir()
	return &darwinManager{
		plistPath: filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"),
	}
}

// Location returns the LaunchAgent plist path.
func (d *darwinManager) Location() string { return d.plistPath }

func (d *darwinManager) IsInstalled() (bool, error) {
	return fileExists(d.plistPath)
}

func (d *darwinManager) Install(execPath string) error {
	if err := os.MkdirAll(filepath.Dir(d.plistPath), 0755); err != nil {
		return fmt.Errorf("creating LaunchAgents directory: %w", err)
	}
	plist := strings.ReplaceAll(plistTemplate, "{execPath}", execPath)
	plist = strings.ReplaceAll(plist, "{label}", agentLabel)
	if err := os.WriteFile(d.plistPath, []byte(plist), 0644); err != nil {
		return fmt.Errorf("creating plist: %w", err)
	}
	if err := exec.Command("launchctl", "load", "-w", d.plistPath).Run(); err != nil {
		return fmt.Errorf("loading plist: %w", err)
	}
	return nil
}

func (d *darwinManager) Uninstall() error {
	_ = exec.Command("launchctl", "unload", d.plistPath).Run()
	if err := os.Remove(d.plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing plist: %w", err)
	}
	return nil
}
