package engine

import (
	"fmt"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// AddRow appends n to the top of the drawing
func (s *Store) AddRow(n scene.Node) (scene.ID, error) {
	return s.InsertTree(0, len(s.rows), &scene.Tree{Node: n})
}

// InsertRow inserts n into the top-level rows at index
func (s *Store) InsertRow(index int, n scene.Node) (scene.ID, error) {
	return s.InsertTree(0, index, &scene.Tree{Node: n})
}

// AddTree appends a detached tree to the top-level rows
func (s *Store) AddTree(t *scene.Tree) (scene.ID, error) {
	return s.InsertTree(0, len(s.rows), t)
}

// AppendChild appends a detached tree to the children of group
func (s *Store) AppendChild(group scene.ID, t *scene.Tree) (scene.ID, error) {
	g, ok := s.Get(group).(*scene.Group)
	if !ok {
		return 0, fmt.Errorf("element %d is not a group", group)
	}
	return s.InsertTree(group, len(g.Rows), t)
}

// InsertTree places the nodes of t into the arena and attaches the root to
// parent at index. Every node must be new to the store, and group ids must
// not collide with live groups.
func (s *Store) InsertTree(parent scene.ID, index int, t *scene.Tree) (scene.ID, error) {
	if parent != 0 {
		if _, ok := s.Get(parent).(*scene.Group); !ok {
			return 0, fmt.Errorf("element %d is not a group", parent)
		}
	}
	if err := s.checkInsertable(t); err != nil {
		return 0, err
	}

	id := s.alloc(t)
	s.attach(parent, index, id)
	s.record("add", attachOp{parent: parent, index: s.Index(id), id: id})
	return id, nil
}

func (s *Store) checkInsertable(t *scene.Tree) error {
	groups := s.Groups()
	seen := make(map[scene.Node]bool)
	var check func(t *scene.Tree) error
	check = func(t *scene.Tree) error {
		if t.Node == nil {
			return fmt.Errorf("nil element")
		}
		if _, ok := s.byNode[t.Node]; ok || seen[t.Node] {
			return errors.ErrDuplicateRow
		}
		seen[t.Node] = true
		if g, ok := t.Node.(*scene.Group); ok {
			if _, taken := groups[g.ID]; taken {
				return errors.NewDuplicateGroupError(g.ID)
			}
			groups[g.ID] = 0
		}
		for _, c := range t.Children {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(t)
}

// alloc stores the tree's nodes in fresh slots, wiring group children
// directly, and returns the root id unattached.
func (s *Store) alloc(t *scene.Tree) scene.ID {
	id := scene.ID(len(s.nodes))
	s.nodes = append(s.nodes, t.Node)
	s.parent = append(s.parent, 0)
	s.attached = append(s.attached, false)
	s.byNode[t.Node] = id

	if g, ok := t.Node.(*scene.Group); ok {
		g.Rows = nil
		for _, c := range t.Children {
			cid := s.alloc(c)
			s.attach(id, len(g.Rows), cid)
		}
	}
	return id
}

// DeleteBy removes every top-level row matching pred and returns their ids
// as one undo entry.
func (s *Store) DeleteBy(pred func(id scene.ID, n scene.Node) bool) []scene.ID {
	var deleted []scene.ID
	_ = s.Batch("delete", func() error {
		for i := len(s.rows) - 1; i >= 0; i-- {
			id := s.rows[i]
			if !pred(id, s.nodes[id]) {
				continue
			}
			s.detach(id)
			s.record("delete", detachOp{parent: 0, index: i, id: id})
			deleted = append(deleted, id)
		}
		return nil
	})
	s.pruneSelection()
	return deleted
}

// Delete removes the given top-level rows
func (s *Store) Delete(ids ...scene.ID) []scene.ID {
	set := make(map[scene.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return s.DeleteBy(func(id scene.ID, _ scene.Node) bool { return set[id] })
}

// Remove detaches id from whatever container holds it
func (s *Store) Remove(id scene.ID) error {
	if !s.valid(id) || !s.attached[id] {
		return fmt.Errorf("element %d is not attached", id)
	}
	parent, index := s.parent[id], s.Index(id)
	s.detach(id)
	s.record("remove", detachOp{parent: parent, index: index, id: id})
	s.pruneSelection()
	return nil
}

// Move reattaches an attached element under parent at index, keeping its id
func (s *Store) Move(id, parent scene.ID, index int) error {
	if parent != 0 {
		if _, ok := s.Get(parent).(*scene.Group); !ok {
			return fmt.Errorf("element %d is not a group", parent)
		}
	}
	return s.Batch("move", func() error {
		if err := s.Remove(id); err != nil {
			return err
		}
		s.attach(parent, index, id)
		s.record("move", attachOp{parent: parent, index: s.Index(id), id: id})
		return nil
	})
}

// Mutate applies fn to a copy of the element at id and records the change.
// Group child lists are owned by the store and cannot be changed this way.
func (s *Store) Mutate(id scene.ID, fn func(n scene.Node)) error {
	before := s.Get(id)
	if before == nil {
		return fmt.Errorf("no element %d", id)
	}
	after := before.Clone()
	fn(after)
	if g, ok := after.(*scene.Group); ok {
		g.Rows = before.(*scene.Group).Rows
	}
	s.setNode(id, after)
	s.record("edit", replaceOp{id: id, before: before, after: after})
	return nil
}

func (s *Store) setNode(id scene.ID, n scene.Node) {
	if g, ok := n.(*scene.Group); ok {
		if cur, ok := s.nodes[id].(*scene.Group); ok {
			g.Rows = cur.Rows
		}
	}
	s.nodes[id] = n
	s.byNode[n] = id
}

func (s *Store) attach(parent scene.ID, index int, id scene.ID) {
	list := s.childList(parent)
	index = max(0, min(index, len(*list)))
	*list = append(*list, 0)
	copy((*list)[index+1:], (*list)[index:])
	(*list)[index] = id
	s.parent[id] = parent
	s.attached[id] = true
}

func (s *Store) detach(id scene.ID) {
	list := s.childList(s.parent[id])
	for i, c := range *list {
		if c == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
	s.attached[id] = false
}
