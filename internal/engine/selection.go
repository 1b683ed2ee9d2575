package engine

import (
	"darkdraw.dev/ddw/internal/scene"
)

// Select adds ids to the selection
func (s *Store) Select(ids ...scene.ID) {
	for _, id := range ids {
		if s.Live(id) {
			s.selected[id] = struct{}{}
		}
	}
}

// Unselect removes ids from the selection
func (s *Store) Unselect(ids ...scene.ID) {
	for _, id := range ids {
		delete(s.selected, id)
	}
}

// Toggle flips the selection state of ids
func (s *Store) Toggle(ids ...scene.ID) {
	for _, id := range ids {
		if s.IsSelected(id) {
			delete(s.selected, id)
		} else {
			s.Select(id)
		}
	}
}

// ClearSelection unselects everything
func (s *Store) ClearSelection() {
	s.selected = make(map[scene.ID]struct{})
}

// IsSelected reports whether id is selected
func (s *Store) IsSelected(id scene.ID) bool {
	_, ok := s.selected[id]
	return ok
}

// NumSelected returns the number of selected elements
func (s *Store) NumSelected() int {
	return len(s.selected)
}

// Selected returns the selected elements in depth-first store order
func (s *Store) Selected() []scene.ID {
	if len(s.selected) == 0 {
		return nil
	}
	var ids []scene.ID
	s.Walk(s.rows, func(v Visit) bool {
		if s.IsSelected(v.ID) {
			ids = append(ids, v.ID)
		}
		return true
	})
	return ids
}

// SelectedBox returns the bounding box of the selection as x1, y1, x2, y2
// with x2 and y2 exclusive.
func (s *Store) SelectedBox() (x1, y1, x2, y2 int) {
	return s.BoundingBox(s.Selected())
}

// BoundingBox returns the absolute bounds of ids as x1, y1, x2, y2 with x2
// and y2 exclusive.
func (s *Store) BoundingBox(ids []scene.ID) (x1, y1, x2, y2 int) {
	trees := make([]*scene.Tree, 0, len(ids))
	for _, id := range ids {
		if t := s.AbsoluteTree(id); t != nil {
			trees = append(trees, t)
		}
	}
	return BoundingBox(trees)
}

// BoundingBox returns the bounds of the tree roots as x1, y1, x2, y2 with x2
// and y2 exclusive. Floating roots count as the origin.
func BoundingBox(trees []*scene.Tree) (x1, y1, x2, y2 int) {
	first := true
	for _, t := range trees {
		b := t.Node.Common()
		w, h := scene.Extent(t.Node)
		if first {
			x1, y1, x2, y2 = b.X, b.Y, b.X+w, b.Y+h
			first = false
			continue
		}
		x1 = min(x1, b.X)
		y1 = min(y1, b.Y)
		x2 = max(x2, b.X+w)
		y2 = max(y2, b.Y+h)
	}
	return x1, y1, x2, y2
}

func (s *Store) pruneSelection() {
	for id := range s.selected {
		if !s.Live(id) {
			delete(s.selected, id)
		}
	}
}
