package animation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrame(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestFSLoader_LoadSkin(t *testing.T) {
	root := t.TempDir()
	skin := filepath.Join(root, "skins", "default")
	writeFrame(t, filepath.Join(skin, "calm", "frame_002.png"), "two")
	writeFrame(t, filepath.Join(skin, "calm", "frame_001.png"), "one")
	writeFrame(t, filepath.Join(skin, "calm", "notes.txt"), "ignored")
	writeFrame(t, filepath.Join(skin, "calm", "empty.png"), "")
	writeFrame(t, filepath.Join(skin, "run", "0001.PNG"), "run")

	noLoop := false
	loader := NewFSLoader(root, map[string]SkinSpec{
		"default": {
			Name: "Classic Tux",
			Animations: map[string]AnimationSpec{
				"calm":    {FPS: 8},
				"run":     {FPS: 24, Loop: &noLoop},
				"missing": {FPS: 12},
			},
		},
	}, nil)

	assets, err := loader.LoadSkin("default")
	require.NoError(t, err)

	require.Contains(t, assets, "calm")
	calm := assets["calm"]
	require.Len(t, calm.Frames, 2)
	assert.Equal(t, "frame_001.png", calm.Frames[0].Name)
	assert.Equal(t, []byte("one"), calm.Frames[0].Data)
	assert.Equal(t, 8, calm.FPS)
	assert.True(t, calm.Loop, "loop defaults to true")

	require.Contains(t, assets, "run")
	assert.False(t, assets["run"].Loop)
	assert.Len(t, assets["run"].Frames, 1)

	assert.NotContains(t, assets, "missing", "states without a directory are skipped")
}

func TestFSLoader_Errors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "skins", "unconfigured"), 0o755))

	loader := NewFSLoader(root, map[string]SkinSpec{}, nil)

	_, err := loader.LoadSkin("absent")
	assert.True(t, errors.Is(err, ErrSkinNotFound))

	_, err = loader.LoadSkin("unconfigured")
	assert.True(t, errors.Is(err, ErrNoSkinConfig))
}

func TestFSLoader_Skins(t *testing.T) {
	loader := NewFSLoader("", map[string]SkinSpec{
		"default": {Name: "Classic Tux"},
		"ninja":   {},
	}, nil)

	assert.Equal(t, map[string]string{"default": "Classic Tux", "ninja": "Ninja"}, loader.Skins())
}

func TestEngineWithFSLoader(t *testing.T) {
	root := t.TempDir()
	writeFrame(t, filepath.Join(root, "skins", "default", "idle", "01.png"), "x")

	loader := NewFSLoader(root, map[string]SkinSpec{
		"default": {Animations: map[string]AnimationSpec{"idle": {FPS: 4}}},
	}, nil)
	e := NewEngine(loader, nil)

	require.True(t, e.SetActiveSkin("default"))
	assert.Equal(t, "idle", e.ActiveState())
	assert.Equal(t, "01.png", e.CurrentFrame().Name)
}
