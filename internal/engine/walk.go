package engine

import (
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// Visit describes one element reached by Walk
type Visit struct {
	ID   scene.ID
	Node scene.Node
	// X and Y are absolute coordinates
	X, Y int
	// Parents lists the enclosing elements from the walk root down,
	// excluding the element itself.
	Parents []scene.ID
}

// Top returns the outermost element of the walk path
func (v Visit) Top() scene.ID {
	if len(v.Parents) > 0 {
		return v.Parents[0]
	}
	return v.ID
}

// Walk visits ids and their owned descendants depth-first in z-order.
// Refs are not followed. Returning false from fn skips the subtree.
func (s *Store) Walk(ids []scene.ID, fn func(v Visit) bool) {
	for _, id := range ids {
		if !s.valid(id) {
			continue
		}
		ox, oy := s.Origin(id)
		s.walk(id, ox, oy, nil, fn)
	}
}

func (s *Store) walk(id scene.ID, ox, oy int, parents []scene.ID, fn func(v Visit) bool) {
	n := s.nodes[id]
	b := n.Common()
	v := Visit{ID: id, Node: n, X: ox + b.X, Y: oy + b.Y, Parents: parents}
	if !fn(v) {
		return
	}
	g, ok := n.(*scene.Group)
	if !ok {
		return
	}
	path := append(append([]scene.ID(nil), parents...), id)
	for _, c := range g.Rows {
		s.walk(c, v.X, v.Y, path, fn)
	}
}

// CheckCycle follows groups and refs below id and reports a group that is
// reached again while it is being resolved. Missing refs are ignored here;
// the compositor reports them.
func (s *Store) CheckCycle(id scene.ID) error {
	return s.checkCycle(id, s.Groups(), nil)
}

func (s *Store) checkCycle(id scene.ID, groups map[string]scene.ID, path []string) error {
	switch n := s.nodes[id].(type) {
	case *scene.Group:
		for _, p := range path {
			if p == n.ID {
				return errors.NewCyclicRefError(n.ID, path)
			}
		}
		path = append(path, n.ID)
		for _, c := range n.Rows {
			if err := s.checkCycle(c, groups, path); err != nil {
				return err
			}
		}
	case *scene.Ref:
		target, ok := groups[n.Ref]
		if !ok {
			return nil
		}
		return s.checkCycle(target, groups, path)
	}
	return nil
}
