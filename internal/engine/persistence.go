package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"darkdraw.dev/ddw/internal/scene"
)

// Load replaces the contents of the store with the record stream read from
// r. On error the store is left unchanged.
func (s *Store) Load(r io.Reader) error {
	trees, err := scene.DecodeAll(r)
	if err != nil {
		return err
	}
	return s.LoadTrees(trees)
}

// LoadTrees replaces the contents of the store with trees
func (s *Store) LoadTrees(trees []*scene.Tree) error {
	fresh := NewStore()
	fresh.log.max = s.log.max
	for _, t := range trees {
		if _, err := fresh.AddTree(t); err != nil {
			return fmt.Errorf("failed to load element: %w", err)
		}
	}
	fresh.log.done = nil
	fresh.modified = false
	*s = *fresh
	return nil
}

// Save writes every top-level row, with nested children, to w
func (s *Store) Save(w io.Writer) error {
	enc := scene.NewEncoder(w)
	for _, id := range s.rows {
		if err := enc.Encode(s.Tree(id)); err != nil {
			return fmt.Errorf("failed to encode element: %w", err)
		}
	}
	return nil
}

// Open loads a drawing file. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := NewStore()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open drawing: %w", err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// SaveFile writes the drawing to path and clears the modified flag
func (s *Store) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write drawing: %w", err)
	}
	s.modified = false
	return nil
}
