package autosave

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/testhelpers"
)

func TestDrawingName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "cat", DrawingName("/tmp/art/cat.ddw"))
	require.Equal(t, "my_cat", DrawingName("my cat.ddw"))
	require.Equal(t, UntitledName, DrawingName(""))
}

func TestSnapshotFilename(t *testing.T) {
	t.Parallel()
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	filename := snapshotFilename("big-cat", ts)
	require.Equal(t, "big-cat-20260304T050607.ddw", filename)

	name, parsed, err := parseSnapshotFilename(filename)
	require.NoError(t, err)
	require.Equal(t, "big-cat", name)
	require.True(t, ts.Equal(parsed))

	_, _, err = parseSnapshotFilename("cat.json")
	require.Error(t, err)
	_, _, err = parseSnapshotFilename("cat-notatime.ddw")
	require.Error(t, err)
}

func TestSaverDue(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s := &Saver{Interval: 0}
	s.Reset(start)
	require.False(t, s.Due(start.Add(time.Hour)), "disabled saver is never due")

	s.Interval = time.Minute
	require.False(t, s.Due(start.Add(30*time.Second)))
	require.True(t, s.Due(start.Add(time.Minute)))
}

func TestSaveAndPrune(t *testing.T) {
	s := testhelpers.NewScene(t, testhelpers.Records(`{"type":"","x":1,"y":2,"text":"a"}`))
	dir := filepath.Join(s.Dir, "autosave")
	saver := &Saver{Dir: dir, Interval: time.Minute, Keep: 2}

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local)
	for i := range 3 {
		_, err := saver.Save(s.Store, "cat", start.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}
	_, err := saver.Save(s.Store, "dog", start)
	require.NoError(t, err)

	snaps, err := List(dir, "cat")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, "cat-20260101T120200", snaps[0].ID)
	require.Equal(t, "cat-20260101T120100", snaps[1].ID)

	all, err := List(dir, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	found, err := Find(dir, "dog-20260101T120000")
	require.NoError(t, err)
	store, err := Load(found)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	_, err = Find(dir, "nope")
	require.Error(t, err)
}

func TestListMissingDir(t *testing.T) {
	t.Parallel()
	snaps, err := List(filepath.Join(t.TempDir(), "missing"), "")
	require.NoError(t, err)
	require.Empty(t, snaps)
}

func TestSaveCommitsToGit(t *testing.T) {
	s := testhelpers.NewScene(t, testhelpers.Records(`{"x":0,"y":0,"text":"x"}`))
	dir := filepath.Join(s.Dir, "autosave")
	saver := &Saver{Dir: dir, Interval: time.Minute, Keep: 1, Git: true}

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local)
	first, err := saver.Save(s.Store, "cat", start)
	require.NoError(t, err)
	_, err = saver.Save(s.Store, "cat", start.Add(time.Minute))
	require.NoError(t, err)

	_, err = os.Stat(first.Path)
	require.True(t, os.IsNotExist(err), "oldest snapshot is pruned from disk")

	commits, err := History(dir, 0)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "autosave cat", commits[0].Subject)

	store, err := LoadRevision(dir, commits[1].Hash, filepath.Base(first.Path))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
}

func TestFormatAge(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "just now", formatAge(now.Add(-10*time.Second), now))
	require.Equal(t, "1 minute ago", formatAge(now.Add(-time.Minute), now))
	require.Equal(t, "5 minutes ago", formatAge(now.Add(-5*time.Minute), now))
	require.Equal(t, "3 hours ago", formatAge(now.Add(-3*time.Hour), now))
	require.Equal(t, "1 day ago", formatAge(now.Add(-25*time.Hour), now))
}
