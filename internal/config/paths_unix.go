//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".config", "tuxtray", "config.yaml"),
		"/etc/tuxtray/config.yaml",
	}
}
