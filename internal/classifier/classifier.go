// Package classifier maps a telemetry sample onto a discrete animation state.
// Classification is a pure function of the sample and a Thresholds value:
// it never fails and never caches anything between calls.
package classifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/Guliveer/tuxtray/internal/models"
)

// Mode selects which metrics drive classification.
type Mode string

const (
	ModeCPU     Mode = "cpu"
	ModeRAM     Mode = "ram"
	ModeNetwork Mode = "network"
	ModeEmotion Mode = "emotion"
)

// Modes lists every supported mode in menu order.
var Modes = []Mode{ModeEmotion, ModeCPU, ModeRAM, ModeNetwork}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown animation mode %q", s)
}

// State is a classification label. Legacy modes and emotion mode use
// disjoint vocabularies that share one animation catalog.
type State string

const (
	StateIdle State = "idle"
	StateWalk State = "walk"
	StateRun  State = "run"

	StateCalm       State = "calm"
	StateActive     State = "active"
	StateBusy       State = "busy"
	StateStressed   State = "stressed"
	StateOverloaded State = "overloaded"
)

// minHighResources is how many metrics must be high at once for "stressed".
const minHighResources = 2

// networkStressDivisor brings KB/s into the 0-100 stress range.
const networkStressDivisor = 20

// Classify returns the state for sample under mode. Unknown modes yield idle.
func Classify(sample models.TelemetrySample, t Thresholds, mode Mode) State {
	switch mode {
	case ModeEmotion:
		return classifyEmotion(sample, t.Emotion)
	case ModeCPU:
		return classifyTier(sample.CPUPercent, t.CPU.Idle, t.CPU.Walk)
	case ModeRAM:
		return classifyTier(sample.RAMPercent, t.RAM.Idle, t.RAM.Walk)
	case ModeNetwork:
		return classifyTier(sample.NetworkKbps, t.Network.IdleKbps, t.Network.WalkKbps)
	default:
		return StateIdle
	}
}

func classifyTier(usage, idle, walk float64) State {
	switch {
	case usage >= walk:
		return StateRun
	case usage >= idle:
		return StateWalk
	default:
		return StateIdle
	}
}

// rule is one predicate of the emotion cascade.
type rule struct {
	state State
	match func(s models.TelemetrySample, t EmotionThresholds) bool
}

// emotionRules is evaluated top to bottom; the first match wins.
var emotionRules = []rule{
	{StateOverloaded, isOverloaded},
	{StateStressed, isStressed},
	{StateBusy, isBusy},
	{StateCalm, isCalm},
}

func classifyEmotion(s models.TelemetrySample, t EmotionThresholds) State {
	for _, r := range emotionRules {
		if r.match(s, t) {
			return r.state
		}
	}
	return StateActive
}

func isOverloaded(s models.TelemetrySample, t EmotionThresholds) bool {
	o := t.Overloaded
	return s.CPUPercent >= o.CPUCritical ||
		s.RAMPercent >= o.RAMCritical ||
		s.NetworkKbps >= o.NetworkCriticalKbps ||
		s.CPUPercent >= o.AnyCriticalThreshold ||
		s.RAMPercent >= o.AnyCriticalThreshold
}

func isStressed(s models.TelemetrySample, t EmotionThresholds) bool {
	return len(highResources(s, t.Stressed, func(v, cut float64) bool { return v >= cut })) >= minHighResources
}

func isBusy(s models.TelemetrySample, t EmotionThresholds) bool {
	single := t.Busy.SingleResourceThreshold
	return s.CPUPercent >= single ||
		s.RAMPercent >= single ||
		s.NetworkKbps >= single*t.Busy.NetworkScale
}

func isCalm(s models.TelemetrySample, t EmotionThresholds) bool {
	c := t.Calm
	return s.CPUPercent <= c.CPUMax &&
		s.RAMPercent <= c.RAMMax &&
		s.NetworkKbps <= c.NetworkMaxKbps
}

// highResources returns the names of the metrics for which cmp(value, high)
// holds, in cpu, ram, network order.
func highResources(s models.TelemetrySample, t StressedThresholds, cmp func(v, cut float64) bool) []string {
	var names []string
	if cmp(s.CPUPercent, t.CPUHigh) {
		names = append(names, string(ModeCPU))
	}
	if cmp(s.RAMPercent, t.RAMHigh) {
		names = append(names, string(ModeRAM))
	}
	if cmp(s.NetworkKbps, t.NetworkHighKbps) {
		names = append(names, string(ModeNetwork))
	}
	return names
}

// Analyze classifies sample in emotion mode and adds stress metrics for
// tooltips and diagnostics. Active stressors use the same "high" cutoffs as
// the stressed rule, compared strictly.
func Analyze(sample models.TelemetrySample, t Thresholds) models.Analysis {
	state := classifyEmotion(sample, t.Emotion)

	levels := models.ResourceLevels{
		CPU:     math.Min(100, sample.CPUPercent),
		RAM:     math.Min(100, sample.RAMPercent),
		Network: math.Min(100, sample.NetworkKbps/networkStressDivisor),
	}
	overall := (levels.CPU + levels.RAM + levels.Network) / 3

	stressors := highResources(sample, t.Emotion.Stressed, func(v, cut float64) bool { return v > cut })
	if stressors == nil {
		stressors = []string{}
	}

	return models.Analysis{
		State:         string(state),
		OverallStress: round1(overall),
		ResourceLevels: models.ResourceLevels{
			CPU:     round1(levels.CPU),
			RAM:     round1(levels.RAM),
			Network: round1(levels.Network),
		},
		ActiveStressors: stressors,
		Description:     describe(state, t.Emotion),
	}
}

func describe(state State, t EmotionThresholds) string {
	var d string
	switch state {
	case StateCalm:
		d = t.Calm.Description
	case StateActive:
		d = t.Active.Description
	case StateBusy:
		d = t.Busy.Description
	case StateStressed:
		d = t.Stressed.Description
	case StateOverloaded:
		d = t.Overloaded.Description
	}
	if d == "" {
		d = fmt.Sprintf("System in %s state", state)
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
