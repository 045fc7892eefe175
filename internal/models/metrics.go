// Package models defines the value types passed between the sampler, the
// classifier and the orchestrator. Values are created fresh on every poll
// and never mutated after construction.
package models

import "time"

// TelemetrySample is a single point-in-time snapshot of host resource usage.
type TelemetrySample struct {
	CPUPercent  float64   `json:"cpu_percent"`
	RAMPercent  float64   `json:"ram_percent"`
	NetworkKbps float64   `json:"network_kbps"`
	CapturedAt  time.Time `json:"captured_at"`
}

// ResourceLevels holds per-metric stress normalized to 0-100.
type ResourceLevels struct {
	CPU     float64 `json:"cpu"`
	RAM     float64 `json:"ram"`
	Network float64 `json:"network"`
}

// Analysis is the detailed result of classifying a sample in emotion mode.
type Analysis struct {
	State           string         `json:"state"`
	OverallStress   float64        `json:"overall_stress"`
	ResourceLevels  ResourceLevels `json:"resource_levels"`
	ActiveStressors []string       `json:"active_stressors"`
	Description     string         `json:"description"`
}

// SystemInfo describes the host the sampler runs on.
type SystemInfo struct {
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelArch      string `json:"kernel_arch"`
	CPUCount        int    `json:"cpu_count"`
	MemoryTotal     uint64 `json:"memory_total"`
	UptimeSeconds   uint64 `json:"uptime_seconds"`
}
