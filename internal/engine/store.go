// Package engine provides the scene store: an arena of elements addressed by
// stable ids, the ordered list of top-level rows, the selection set and the
// undo log every structural or attribute change is recorded in.
package engine

import (
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// Store owns every element of a drawing.
//
// Slots are never reused: an id stays valid for the lifetime of the store,
// so the selection and the undo log can hold ids across structural edits.
// A slot is live when it is attached to the top-level rows or to a live
// group.
type Store struct {
	nodes    []scene.Node
	parent   []scene.ID
	attached []bool
	byNode   map[scene.Node]scene.ID

	rows     []scene.ID
	selected map[scene.ID]struct{}
	log      undoLog
	modified bool
}

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset discards every element, the selection and the undo history
func (s *Store) Reset() {
	s.nodes = []scene.Node{nil}
	s.parent = []scene.ID{0}
	s.attached = []bool{false}
	s.byNode = make(map[scene.Node]scene.ID)
	s.rows = nil
	s.selected = make(map[scene.ID]struct{})
	s.log = undoLog{max: DefaultMaxUndoStackDepth}
	s.modified = false
}

// Get returns the element stored at id, or nil for an unknown id
func (s *Store) Get(id scene.ID) scene.Node {
	if !s.valid(id) {
		return nil
	}
	return s.nodes[id]
}

// Live reports whether id is reachable from the top-level rows
func (s *Store) Live(id scene.ID) bool {
	for s.valid(id) && s.attached[id] {
		p := s.parent[id]
		if p == 0 {
			return true
		}
		id = p
	}
	return false
}

// Rows returns the top-level rows in z-order, bottom first
func (s *Store) Rows() []scene.ID {
	return append([]scene.ID(nil), s.rows...)
}

// Len returns the number of top-level rows
func (s *Store) Len() int {
	return len(s.rows)
}

// Parent returns the group containing id, or 0 for top-level rows
func (s *Store) Parent(id scene.ID) scene.ID {
	if !s.valid(id) {
		return 0
	}
	return s.parent[id]
}

// Children returns the child ids of a group
func (s *Store) Children(id scene.ID) []scene.ID {
	g, ok := s.Get(id).(*scene.Group)
	if !ok {
		return nil
	}
	return append([]scene.ID(nil), g.Rows...)
}

// Index returns the position of id within its container, or -1
func (s *Store) Index(id scene.ID) int {
	if !s.valid(id) || !s.attached[id] {
		return -1
	}
	for i, c := range *s.childList(s.parent[id]) {
		if c == id {
			return i
		}
	}
	return -1
}

// Top returns the top-level ancestor of id
func (s *Store) Top(id scene.ID) scene.ID {
	for s.valid(id) && s.parent[id] != 0 {
		id = s.parent[id]
	}
	return id
}

// Origin returns the absolute origin of the container holding id
func (s *Store) Origin(id scene.ID) (x, y int) {
	for p := s.Parent(id); p != 0; p = s.Parent(p) {
		b := s.nodes[p].Common()
		x += b.X
		y += b.Y
	}
	return x, y
}

// Position returns the absolute position of id
func (s *Store) Position(id scene.ID) (x, y int) {
	n := s.Get(id)
	if n == nil {
		return 0, 0
	}
	ox, oy := s.Origin(id)
	b := n.Common()
	return ox + b.X, oy + b.Y
}

// Frames returns the top-level frame markers in order
func (s *Store) Frames() []*scene.Frame {
	var frames []*scene.Frame
	for _, id := range s.rows {
		if f, ok := s.nodes[id].(*scene.Frame); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// FrameIndex returns the row index of the frame with the given id, or -1
func (s *Store) FrameIndex(frameID string) int {
	for i, id := range s.rows {
		if f, ok := s.nodes[id].(*scene.Frame); ok && f.ID == frameID {
			return i
		}
	}
	return -1
}

// Groups indexes every live group, nested ones included, by group id
func (s *Store) Groups() map[string]scene.ID {
	groups := make(map[string]scene.ID)
	s.Walk(s.rows, func(v Visit) bool {
		if g, ok := v.Node.(*scene.Group); ok {
			groups[g.ID] = v.ID
		}
		return true
	})
	return groups
}

// Group returns the live group with the given id
func (s *Store) Group(groupID string) (scene.ID, *scene.Group, error) {
	id, ok := s.Groups()[groupID]
	if !ok {
		return 0, nil, errors.ErrGroupNotFound
	}
	return id, s.nodes[id].(*scene.Group), nil
}

// Modified reports whether the store changed since it was loaded or saved
func (s *Store) Modified() bool {
	return s.modified
}

// SetModified overrides the modified flag
func (s *Store) SetModified(v bool) {
	s.modified = v
}

// Tree returns a detached deep copy of id and its descendants
func (s *Store) Tree(id scene.ID) *scene.Tree {
	n := s.Get(id)
	if n == nil {
		return nil
	}
	t := &scene.Tree{Node: n.Clone()}
	if g, ok := n.(*scene.Group); ok {
		t.Node.(*scene.Group).Rows = nil
		for _, c := range g.Rows {
			t.Children = append(t.Children, s.Tree(c))
		}
	}
	return t
}

// AbsoluteTree returns Tree(id) with the root moved to its absolute position
func (s *Store) AbsoluteTree(id scene.ID) *scene.Tree {
	t := s.Tree(id)
	if t == nil {
		return nil
	}
	x, y := s.Position(id)
	b := t.Node.Common()
	b.X, b.Y = x, y
	return t
}

func (s *Store) valid(id scene.ID) bool {
	return id > 0 && int(id) < len(s.nodes)
}

// childList returns the container slice for parent: the top-level rows for
// 0, otherwise the group's child list.
func (s *Store) childList(parent scene.ID) *[]scene.ID {
	if parent == 0 {
		return &s.rows
	}
	return &s.nodes[parent].(*scene.Group).Rows
}
