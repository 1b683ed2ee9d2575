package engine

import (
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

const (
	// DefaultMaxUndoStackDepth is the default number of undo entries we keep
	DefaultMaxUndoStackDepth = 100
)

// op is one recorded change with its inverse
type op interface {
	undo(s *Store)
	redo(s *Store)
}

// attachOp records an element attached to a container
type attachOp struct {
	parent scene.ID
	index  int
	id     scene.ID
}

func (o attachOp) undo(s *Store) { s.detach(o.id) }
func (o attachOp) redo(s *Store) { s.attach(o.parent, o.index, o.id) }

// detachOp records an element removed from a container
type detachOp struct {
	parent scene.ID
	index  int
	id     scene.ID
}

func (o detachOp) undo(s *Store) { s.attach(o.parent, o.index, o.id) }
func (o detachOp) redo(s *Store) { s.detach(o.id) }

// replaceOp records an attribute change as the previous and next values
type replaceOp struct {
	id            scene.ID
	before, after scene.Node
}

func (o replaceOp) undo(s *Store) { s.setNode(o.id, o.before) }
func (o replaceOp) redo(s *Store) { s.setNode(o.id, o.after) }

// entry is one undoable unit: a single change or a whole batch
type entry struct {
	label string
	ops   []op
}

type undoLog struct {
	done    []*entry
	undone  []*entry
	pending *entry
	max     int
}

// record appends op to the open batch, or logs it as its own entry
func (s *Store) record(label string, o op) {
	s.modified = true
	if s.log.pending != nil {
		s.log.pending.ops = append(s.log.pending.ops, o)
		return
	}
	s.push(&entry{label: label, ops: []op{o}})
}

func (s *Store) push(e *entry) {
	s.log.done = append(s.log.done, e)
	s.log.undone = nil
	if s.log.max > 0 && len(s.log.done) > s.log.max {
		s.log.done = s.log.done[len(s.log.done)-s.log.max:]
	}
}

// Batch runs fn as one undoable unit labelled label. If fn returns an
// error every change it made is reverted and nothing is logged. Nested
// batches join the outermost one.
func (s *Store) Batch(label string, fn func() error) error {
	if s.log.pending != nil {
		return fn()
	}

	s.log.pending = &entry{label: label}
	wasModified := s.modified
	err := fn()
	e := s.log.pending
	s.log.pending = nil

	if err != nil {
		for i := len(e.ops) - 1; i >= 0; i-- {
			e.ops[i].undo(s)
		}
		s.modified = wasModified
		s.pruneSelection()
		return err
	}
	if len(e.ops) > 0 {
		s.push(e)
	}
	return nil
}

// InBatch reports whether a batch is open
func (s *Store) InBatch() bool {
	return s.log.pending != nil
}

// Undo reverts the most recent entry and returns its label
func (s *Store) Undo() (string, error) {
	n := len(s.log.done)
	if n == 0 {
		return "", errors.ErrNothingToUndo
	}
	e := s.log.done[n-1]
	s.log.done = s.log.done[:n-1]
	for i := len(e.ops) - 1; i >= 0; i-- {
		e.ops[i].undo(s)
	}
	s.log.undone = append(s.log.undone, e)
	s.modified = true
	s.pruneSelection()
	return e.label, nil
}

// Redo reapplies the most recently undone entry and returns its label
func (s *Store) Redo() (string, error) {
	n := len(s.log.undone)
	if n == 0 {
		return "", errors.ErrNothingToRedo
	}
	e := s.log.undone[n-1]
	s.log.undone = s.log.undone[:n-1]
	for _, o := range e.ops {
		o.redo(s)
	}
	s.log.done = append(s.log.done, e)
	s.modified = true
	s.pruneSelection()
	return e.label, nil
}

// UndoDepth returns the number of entries that can be undone
func (s *Store) UndoDepth() int {
	return len(s.log.done)
}

// History returns the labels of undoable entries, newest first
func (s *Store) History() []string {
	labels := make([]string, 0, len(s.log.done))
	for i := len(s.log.done) - 1; i >= 0; i-- {
		labels = append(labels, s.log.done[i].label)
	}
	return labels
}

// SetMaxUndoDepth bounds the undo log. Zero means unbounded.
func (s *Store) SetMaxUndoDepth(n int) {
	s.log.max = n
}
