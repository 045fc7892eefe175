package animation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrSkinNotFound is returned when a skin has no asset directory.
	ErrSkinNotFound = errors.New("skin not found")
	// ErrNoSkinConfig is returned when a skin has no animation metadata.
	ErrNoSkinConfig = errors.New("no configuration for skin")
)

// SequenceAssets is what the asset collaborator supplies for one state.
type SequenceAssets struct {
	Frames []Frame
	FPS    int
	Loop   bool
}

// Loader is the asset-loading collaborator. LoadSkin returns every state of
// a skin; states with no frames may be present and are skipped by the engine.
type Loader interface {
	LoadSkin(name string) (map[string]SequenceAssets, error)
}

// AnimationSpec is the per-state metadata of a skin.
type AnimationSpec struct {
	FPS  int   `yaml:"fps"`
	Loop *bool `yaml:"loop,omitempty"`
}

// LoopEnabled returns the loop flag, which defaults to true.
func (a AnimationSpec) LoopEnabled() bool {
	return a.Loop == nil || *a.Loop
}

// SkinSpec describes a skin: its display name and its states.
type SkinSpec struct {
	Name       string                   `yaml:"name"`
	Animations map[string]AnimationSpec `yaml:"animations"`
}

// FSLoader reads frames from <root>/skins/<skin>/<state>/*.png. Files are
// returned as raw bytes in lexical order; decoding and scaling belong to the
// display layer.
type FSLoader struct {
	root   string
	skins  map[string]SkinSpec
	logger *zap.Logger
}

// NewFSLoader creates a loader over the assets directory root.
func NewFSLoader(root string, skins map[string]SkinSpec, logger *zap.Logger) *FSLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FSLoader{root: root, skins: skins, logger: logger}
}

// LoadSkin implements Loader.
func (l *FSLoader) LoadSkin(name string) (map[string]SequenceAssets, error) {
	skinPath := filepath.Join(l.root, "skins", name)
	if info, err := os.Stat(skinPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSkinNotFound, skinPath)
	}

	spec, ok := l.skins[name]
	if !ok || len(spec.Animations) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSkinConfig, name)
	}

	result := make(map[string]SequenceAssets, len(spec.Animations))
	for state, anim := range spec.Animations {
		frames, err := l.loadFrames(filepath.Join(skinPath, state))
		if err != nil {
			l.logger.Warn("Failed to load animation frames",
				zap.String("skin", name),
				zap.String("state", state),
				zap.Error(err))
			continue
		}
		l.logger.Debug("Loaded animation frames",
			zap.String("skin", name),
			zap.String("state", state),
			zap.Int("frames", len(frames)))
		result[state] = SequenceAssets{
			Frames: frames,
			FPS:    anim.FPS,
			Loop:   anim.LoopEnabled(),
		}
	}
	return result, nil
}

// Skins returns the configured skin identifiers mapped to display names.
// Skins without a name are shown by their capitalised identifier.
func (l *FSLoader) Skins() map[string]string {
	out := make(map[string]string, len(l.skins))
	for id, spec := range l.skins {
		name := spec.Name
		if name == "" && id != "" {
			name = strings.ToUpper(id[:1]) + id[1:]
		}
		out[id] = name
	}
	return out
}

func (l *FSLoader) loadFrames(dir string) ([]Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	frames := make([]Frame, 0, len(names))
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			l.logger.Warn("Could not read frame", zap.String("file", n), zap.Error(err))
			continue
		}
		if len(data) == 0 {
			continue
		}
		frames = append(frames, Frame{Name: n, Data: data})
	}
	return frames, nil
}
