package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/testhelpers"
)

func TestLoad(t *testing.T) {
	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)

		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(scene.Dir, "config.json"), cfg.Path())
		require.Zero(t, cfg.AutosaveInterval())
		require.Equal(t, DefaultAutosavePath, cfg.AutosaveDir())
		require.Equal(t, DefaultAutosaveKeep, cfg.AutosaveMaxKeep())
		require.False(t, cfg.AutosaveToGit())
		require.False(t, cfg.BaseFrame())
		require.Equal(t, DefaultKeymap, cfg.KeymapPath())
		_, _, ok, err := cfg.Guides()
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("reads values written by Save", func(t *testing.T) {
		testhelpers.NewScene(t, nil)

		cfg, err := Load("")
		require.NoError(t, err)
		require.NoError(t, cfg.Set("autosave_interval_s", "30"))
		require.NoError(t, cfg.Set("default_color", "208 on 17"))
		require.NoError(t, cfg.Set("guide_xy", "80 24"))
		require.NoError(t, cfg.Set("add_baseframe", "true"))
		require.NoError(t, cfg.Set("bindings.ctrl+g", "group"))
		require.NoError(t, cfg.Save())

		cfg, err = Load("")
		require.NoError(t, err)
		require.Equal(t, 30*time.Second, cfg.AutosaveInterval())
		require.Equal(t, "208 on 17", cfg.Color())
		require.True(t, cfg.BaseFrame())
		x, y, ok, err := cfg.Guides()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []int{80, 24}, []int{x, y})

		v, err := cfg.Get("bindings.ctrl+g")
		require.NoError(t, err)
		require.Equal(t, "group", v)
	})

	t.Run("rejects malformed files and values", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := filepath.Join(scene.Dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
		_, err := Load(path)
		require.Error(t, err)

		cfg, err := Load("")
		require.NoError(t, err)
		require.Error(t, cfg.Set("autosave_keep", "lots"))
		require.Error(t, cfg.Set("no_such_key", "1"))
		_, err = cfg.Get("no_such_key")
		require.Error(t, err)

		require.NoError(t, cfg.Set("guide_xy", "80"))
		_, _, _, err = cfg.Guides()
		require.Error(t, err)
	})
}

func TestKeymap(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	path := filepath.Join(scene.Dir, "keymap.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"keypress":"a","box":"┌","script":"𝒶"}`+"\n"+
			`{"keypress":"b","box":"┐"}`+"\n"), 0600))

	km, err := LoadKeymap(path)
	require.NoError(t, err)
	require.Equal(t, []string{RandomLayer, "box", "script"}, km.Layers)

	km.Rotate(1)
	require.Equal(t, "box", km.Active())
	require.Equal(t, "┌", km.Lookup("a"))
	require.Equal(t, "z", km.Lookup("z"))

	km.Rotate(1)
	require.Equal(t, "b", km.Lookup("b"))

	km.Rotate(-2)
	require.Equal(t, RandomLayer, km.Active())
	require.Contains(t, []string{"┌", "𝒶"}, km.Lookup("a"))

	_, err = LoadKeymap(filepath.Join(scene.Dir, "missing.jsonl"))
	require.Error(t, err)
}
