package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/tuxtray/internal/models"
)

func sample(cpu, ram, network float64) models.TelemetrySample {
	return models.TelemetrySample{CPUPercent: cpu, RAMPercent: ram, NetworkKbps: network}
}

func TestClassifyEmotion_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		sample models.TelemetrySample
		want   State
	}{
		{"cpu critical", sample(95, 10, 5), StateOverloaded},
		{"ram critical", sample(10, 91, 5), StateOverloaded},
		{"network critical", sample(10, 10, 2000), StateOverloaded},
		{"any critical cpu", sample(86, 10, 5), StateOverloaded},
		{"any critical ram", sample(10, 85, 5), StateOverloaded},
		{"cpu and ram high", sample(75, 80, 5), StateStressed},
		{"cpu and network high", sample(70, 10, 800), StateStressed},
		{"single cpu high", sample(65, 10, 5), StateBusy},
		{"single ram high", sample(10, 60, 5), StateBusy},
		{"network over scaled threshold", sample(10, 10, 600), StateBusy},
		{"all low", sample(15, 20, 10), StateCalm},
		{"calm bounds inclusive", sample(20, 30, 50), StateCalm},
		{"moderate", sample(40, 40, 5), StateActive},
		{"network just above calm", sample(10, 10, 51), StateActive},
	}

	th := DefaultThresholds()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sample, th, ModeEmotion))
		})
	}
}

func TestClassifyEmotion_CascadeOrderWinsOverContradictoryConfig(t *testing.T) {
	th := DefaultThresholds()
	// Calm bounds wide enough to also accept the sample.
	th.Emotion.Calm = CalmThresholds{CPUMax: 100, RAMMax: 100, NetworkMaxKbps: 10000}

	assert.Equal(t, StateOverloaded, Classify(sample(95, 10, 5), th, ModeEmotion))
	assert.Equal(t, StateStressed, Classify(sample(75, 80, 5), th, ModeEmotion))
	assert.Equal(t, StateBusy, Classify(sample(65, 10, 5), th, ModeEmotion))
	assert.Equal(t, StateCalm, Classify(sample(40, 40, 5), th, ModeEmotion))
}

func TestClassifyEmotion_NetworkScaleIsConfigurable(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, StateActive, Classify(sample(10, 10, 100), th, ModeEmotion))

	th.Emotion.Busy.NetworkScale = 1
	assert.Equal(t, StateBusy, Classify(sample(10, 10, 100), th, ModeEmotion))
}

func TestClassifyEmotion_AlwaysReturnsKnownState(t *testing.T) {
	valid := map[State]bool{
		StateCalm: true, StateActive: true, StateBusy: true,
		StateStressed: true, StateOverloaded: true,
	}
	th := DefaultThresholds()
	for cpu := 0.0; cpu <= 100; cpu += 5 {
		for ram := 0.0; ram <= 100; ram += 5 {
			for _, network := range []float64{0, 40, 300, 700, 900, 2500} {
				got := Classify(sample(cpu, ram, network), th, ModeEmotion)
				require.True(t, valid[got], "unexpected state %q", got)
			}
		}
	}
}

func TestClassifyLegacy(t *testing.T) {
	th := DefaultThresholds()
	th.CPU = Tier{Idle: 30, Walk: 80}

	tests := []struct {
		name   string
		mode   Mode
		sample models.TelemetrySample
		want   State
	}{
		{"cpu walk", ModeCPU, sample(50, 0, 0), StateWalk},
		{"cpu idle", ModeCPU, sample(29.9, 0, 0), StateIdle},
		{"cpu idle boundary", ModeCPU, sample(30, 0, 0), StateWalk},
		{"cpu run boundary", ModeCPU, sample(80, 0, 0), StateRun},
		{"ram idle", ModeRAM, sample(99, 39, 0), StateIdle},
		{"ram run", ModeRAM, sample(0, 90, 0), StateRun},
		{"network walk", ModeNetwork, sample(0, 0, 500), StateWalk},
		{"network run", ModeNetwork, sample(0, 0, 1000), StateRun},
		{"unknown mode", Mode("gpu"), sample(100, 100, 100000), StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sample, th, tt.mode))
		})
	}
}

func TestClassifyLegacy_MonotonicInUsage(t *testing.T) {
	rank := map[State]int{StateIdle: 0, StateWalk: 1, StateRun: 2}
	th := DefaultThresholds()

	for _, mode := range []Mode{ModeCPU, ModeRAM, ModeNetwork} {
		prev := -1
		for usage := 0.0; usage <= 2000; usage += 0.5 {
			got := rank[Classify(sample(usage, usage, usage), th, mode)]
			require.GreaterOrEqual(t, got, prev, "mode %s went backwards at %.1f", mode, usage)
			prev = got
		}
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze(sample(75, 80, 900), DefaultThresholds())

	assert.Equal(t, string(StateStressed), a.State)
	assert.Equal(t, 66.7, a.OverallStress)
	assert.Equal(t, models.ResourceLevels{CPU: 75, RAM: 80, Network: 45}, a.ResourceLevels)
	assert.Equal(t, []string{"cpu", "ram", "network"}, a.ActiveStressors)
	assert.Equal(t, "Several resources are under pressure", a.Description)
}

func TestAnalyze_CapsLevels(t *testing.T) {
	a := Analyze(sample(150, 100, 5000), DefaultThresholds())

	assert.Equal(t, models.ResourceLevels{CPU: 100, RAM: 100, Network: 100}, a.ResourceLevels)
	assert.Equal(t, 100.0, a.OverallStress)
	assert.Equal(t, string(StateOverloaded), a.State)
}

func TestAnalyze_StressorsFollowConfiguredHighCutoffs(t *testing.T) {
	th := DefaultThresholds()

	a := Analyze(sample(70, 10, 5), th)
	assert.Empty(t, a.ActiveStressors, "cutoff is exclusive")
	assert.NotNil(t, a.ActiveStressors)

	th.Emotion.Stressed.CPUHigh = 50
	a = Analyze(sample(55, 10, 5), th)
	assert.Equal(t, []string{"cpu"}, a.ActiveStressors)
}

func TestAnalyze_DescriptionFallback(t *testing.T) {
	th := DefaultThresholds()
	th.Emotion.Calm.Description = ""

	a := Analyze(sample(1, 1, 1), th)
	assert.Equal(t, "System in calm state", a.Description)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"emotion", ModeEmotion, false},
		{"CPU", ModeCPU, false},
		{" ram ", ModeRAM, false},
		{"network", ModeNetwork, false},
		{"gpu", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}
