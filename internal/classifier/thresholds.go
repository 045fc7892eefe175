package classifier

// Tier holds the two cutoffs of a legacy single-metric mode.
type Tier struct {
	Idle float64 `yaml:"idle"`
	Walk float64 `yaml:"walk"`
}

// NetworkTier is the network flavour of Tier, expressed in KB/s.
type NetworkTier struct {
	IdleKbps float64 `yaml:"idle_kbps"`
	WalkKbps float64 `yaml:"walk_kbps"`
}

// CalmThresholds are upper bounds that must all hold for the calm state.
type CalmThresholds struct {
	CPUMax         float64 `yaml:"cpu_max"`
	RAMMax         float64 `yaml:"ram_max"`
	NetworkMaxKbps float64 `yaml:"network_max_kbps"`
	Description    string  `yaml:"description,omitempty"`
}

// ActiveThresholds only carries display metadata: active is the fallback
// state and has no cutoffs of its own.
type ActiveThresholds struct {
	Description string `yaml:"description,omitempty"`
}

// BusyThresholds define the single-resource rule.
type BusyThresholds struct {
	SingleResourceThreshold float64 `yaml:"single_resource_threshold"`
	// NetworkScale multiplies SingleResourceThreshold before comparing it to
	// network throughput in KB/s. It is an empirical factor, not a unit
	// conversion.
	NetworkScale float64 `yaml:"network_scale"`
	Description  string  `yaml:"description,omitempty"`
}

// StressedThresholds define the "two or more resources high" rule. The same
// cutoffs drive the active stressor list of an Analysis.
type StressedThresholds struct {
	CPUHigh         float64 `yaml:"cpu_high"`
	RAMHigh         float64 `yaml:"ram_high"`
	NetworkHighKbps float64 `yaml:"network_high_kbps"`
	Description     string  `yaml:"description,omitempty"`
}

// OverloadedThresholds define the highest priority rule.
type OverloadedThresholds struct {
	CPUCritical          float64 `yaml:"cpu_critical"`
	RAMCritical          float64 `yaml:"ram_critical"`
	NetworkCriticalKbps  float64 `yaml:"network_critical_kbps"`
	AnyCriticalThreshold float64 `yaml:"any_critical_threshold"`
	Description          string  `yaml:"description,omitempty"`
}

// EmotionThresholds is the composite five-state configuration.
type EmotionThresholds struct {
	Calm       CalmThresholds       `yaml:"calm"`
	Active     ActiveThresholds     `yaml:"active"`
	Busy       BusyThresholds       `yaml:"busy"`
	Stressed   StressedThresholds   `yaml:"stressed"`
	Overloaded OverloadedThresholds `yaml:"overloaded"`
}

// Thresholds groups every cutoff the classifier knows about. Values are
// plain bounds; overlapping or contradictory settings are legal and are
// resolved by rule order alone.
type Thresholds struct {
	CPU     Tier              `yaml:"cpu"`
	RAM     Tier              `yaml:"ram"`
	Network NetworkTier       `yaml:"network"`
	Emotion EmotionThresholds `yaml:"emotion"`
}

// DefaultThresholds returns the built-in cutoffs. Configuration is decoded on
// top of this value, so any field the user leaves out keeps its default.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPU:     Tier{Idle: 30, Walk: 80},
		RAM:     Tier{Idle: 40, Walk: 85},
		Network: NetworkTier{IdleKbps: 100, WalkKbps: 1000},
		Emotion: EmotionThresholds{
			Calm: CalmThresholds{
				CPUMax:         20,
				RAMMax:         30,
				NetworkMaxKbps: 50,
				Description:    "System is relaxed",
			},
			Active: ActiveThresholds{
				Description: "Normal activity",
			},
			Busy: BusyThresholds{
				SingleResourceThreshold: 60,
				NetworkScale:            10,
				Description:             "One resource is working hard",
			},
			Stressed: StressedThresholds{
				CPUHigh:         70,
				RAMHigh:         75,
				NetworkHighKbps: 800,
				Description:     "Several resources are under pressure",
			},
			Overloaded: OverloadedThresholds{
				CPUCritical:          90,
				RAMCritical:          90,
				NetworkCriticalKbps:  2000,
				AnyCriticalThreshold: 85,
				Description:          "System is at its limits",
			},
		},
	}
}
