package autosave

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/git"
	"darkdraw.dev/ddw/internal/runtime"
)

const (
	snapshotExt     = ".ddw"
	timestampLayout = "20060102T150405"
	// UntitledName names snapshots of drawings that were never saved
	UntitledName = "untitled"
)

// Snapshot describes one autosave file
type Snapshot struct {
	ID          string // file name without extension
	Path        string
	Name        string // drawing the snapshot was taken of
	Timestamp   time.Time
	DisplayName string
}

// Saver writes snapshots every Interval
type Saver struct {
	Dir      string
	Interval time.Duration
	Keep     int
	Git      bool

	last time.Time
}

// New returns a saver configured from cfg with its clock started now
func New(cfg *config.Config) *Saver {
	s := &Saver{
		Dir:      cfg.AutosaveDir(),
		Interval: cfg.AutosaveInterval(),
		Keep:     cfg.AutosaveMaxKeep(),
		Git:      cfg.AutosaveToGit(),
	}
	s.Reset(time.Now())
	return s
}

// Enabled reports whether autosave is switched on
func (s *Saver) Enabled() bool {
	return s.Interval > 0
}

// Reset restarts the interval at now
func (s *Saver) Reset(now time.Time) {
	s.last = now
}

// Due reports whether a snapshot should be taken at now
func (s *Saver) Due(now time.Time) bool {
	return s.Enabled() && now.Sub(s.last) >= s.Interval
}

// DrawingName returns the name snapshots of the drawing at path are filed
// under
func DrawingName(path string) string {
	if path == "" {
		return UntitledName
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		return UntitledName
	}
	return name
}

func snapshotFilename(name string, ts time.Time) string {
	return fmt.Sprintf("%s-%s%s", name, ts.Format(timestampLayout), snapshotExt)
}

// parseSnapshotFilename splits a snapshot file name into drawing name and
// timestamp
func parseSnapshotFilename(filename string) (string, time.Time, error) {
	base, ok := strings.CutSuffix(filename, snapshotExt)
	if !ok {
		return "", time.Time{}, fmt.Errorf("invalid snapshot filename: %s", filename)
	}
	i := strings.LastIndex(base, "-")
	if i <= 0 {
		return "", time.Time{}, fmt.Errorf("invalid snapshot filename format: %s", filename)
	}
	ts, err := time.ParseInLocation(timestampLayout, base[i+1:], time.Local)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return base[:i], ts, nil
}

// Save writes a snapshot of store and prunes old snapshots of the same
// drawing. The interval restarts whether or not the write succeeds.
func (s *Saver) Save(store *engine.Store, name string, now time.Time) (Snapshot, error) {
	s.last = now
	if name == "" {
		name = UntitledName
	}

	var buf bytes.Buffer
	if err := store.Save(&buf); err != nil {
		return Snapshot{}, err
	}
	if err := os.MkdirAll(s.Dir, 0750); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create autosave directory: %w", err)
	}
	filename := snapshotFilename(name, now)
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return Snapshot{}, fmt.Errorf("failed to write snapshot: %w", err)
	}

	removed, err := s.enforceMaxKeep(name)
	if err != nil {
		return Snapshot{}, err
	}
	if s.Git {
		if err := s.commit(path, removed, name, now); err != nil {
			return Snapshot{}, err
		}
	}

	return Snapshot{
		ID:          strings.TrimSuffix(filename, snapshotExt),
		Path:        path,
		Name:        name,
		Timestamp:   now,
		DisplayName: formatSnapshotDisplay(name, now, now),
	}, nil
}

// enforceMaxKeep removes the oldest snapshots of name beyond Keep and
// returns their paths
func (s *Saver) enforceMaxKeep(name string) ([]string, error) {
	if s.Keep <= 0 {
		return nil, nil
	}
	snaps, err := List(s.Dir, name)
	if err != nil {
		return nil, err
	}
	if len(snaps) <= s.Keep {
		return nil, nil
	}

	var removed []string
	for _, snap := range snaps[s.Keep:] {
		if err := os.Remove(snap.Path); err != nil {
			continue
		}
		removed = append(removed, snap.Path)
	}
	return removed, nil
}

func (s *Saver) commit(path string, removed []string, name string, now time.Time) error {
	repo, err := git.OpenOrInitRepository(s.Dir)
	if err != nil {
		return err
	}
	if err := repo.RemoveFiles(removed); err != nil {
		return err
	}
	_, err = repo.CommitFiles([]string{path}, git.CommitOptions{
		Message: fmt.Sprintf("autosave %s", name),
		When:    now,
	})
	return err
}

// Tick takes a snapshot of the drawing in ctx when one is due. Failures are
// logged and otherwise ignored.
func (s *Saver) Tick(ctx *runtime.Context, now time.Time) {
	if !s.Due(now) {
		return
	}
	snap, err := s.Save(ctx.Store, DrawingName(ctx.Path), now)
	if err != nil {
		ctx.Splog.Warn("autosave failed: %v", err)
		return
	}
	ctx.Splog.Debug("autosaved %s", snap.Path)
}

// List returns the snapshots in dir, newest first. A non-empty name limits
// the list to snapshots of that drawing.
func List(dir, name string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read autosave directory: %w", err)
	}

	now := time.Now()
	snaps := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != snapshotExt {
			continue
		}
		drawing, ts, err := parseSnapshotFilename(entry.Name())
		if err != nil {
			continue
		}
		if name != "" && drawing != name {
			continue
		}
		snaps = append(snaps, Snapshot{
			ID:          strings.TrimSuffix(entry.Name(), snapshotExt),
			Path:        filepath.Join(dir, entry.Name()),
			Name:        drawing,
			Timestamp:   ts,
			DisplayName: formatSnapshotDisplay(drawing, ts, now),
		})
	}

	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].Timestamp.Equal(snaps[j].Timestamp) {
			return snaps[i].Timestamp.After(snaps[j].Timestamp)
		}
		return snaps[i].ID > snaps[j].ID
	})
	return snaps, nil
}

// Find returns the snapshot with the given id
func Find(dir, id string) (Snapshot, error) {
	snaps, err := List(dir, "")
	if err != nil {
		return Snapshot{}, err
	}
	for _, snap := range snaps {
		if snap.ID == id {
			return snap, nil
		}
	}
	return Snapshot{}, fmt.Errorf("snapshot %s not found", id)
}

// Load reads a snapshot into a new store
func Load(snap Snapshot) (*engine.Store, error) {
	f, err := os.Open(snap.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	store := engine.NewStore()
	if err := store.Load(f); err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", snap.ID, err)
	}
	return store, nil
}

// History returns the git history of the autosave directory, newest first
func History(dir string, limit int) ([]git.CommitInfo, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return nil, nil
	}
	repo, err := git.OpenRepository(dir)
	if err != nil {
		return nil, err
	}
	return repo.Log(limit)
}

// LoadRevision reads the snapshot file committed at hash into a new store
func LoadRevision(dir, hash, file string) (*engine.Store, error) {
	repo, err := git.OpenRepository(dir)
	if err != nil {
		return nil, err
	}
	h, err := repo.Resolve(hash)
	if err != nil {
		return nil, err
	}
	data, err := repo.ReadFile(h, file)
	if err != nil {
		return nil, err
	}
	store := engine.NewStore()
	if err := store.Load(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to load %s at %s: %w", file, hash, err)
	}
	return store, nil
}

// formatSnapshotDisplay creates a human-readable description of a snapshot
func formatSnapshotDisplay(name string, ts, now time.Time) string {
	return fmt.Sprintf("%s at %s (%s)", name, ts.Format("2006-01-02 15:04:05"), formatAge(ts, now))
}

// formatAge describes how long before now t was
func formatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
