// Package scene defines the element model of a drawing: glyphs, groups,
// refs and frame markers, plus the line-oriented record format they are
// stored in.
package scene

import "fmt"

// ID addresses an element slot in a store arena. The zero ID is never
// assigned to an element.
type ID uint32

// Kind discriminates the element variants
type Kind int

const (
	KindGlyph Kind = iota
	KindGroup
	KindRef
	KindFrame
)

// String returns the wire name of the kind. Glyphs have an empty type.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindRef:
		return "ref"
	case KindFrame:
		return "frame"
	default:
		return ""
	}
}

// ParseKind converts a wire type name into a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "":
		return KindGlyph, nil
	case "group":
		return KindGroup, nil
	case "ref":
		return KindRef, nil
	case "frame":
		return KindFrame, nil
	}
	return KindGlyph, fmt.Errorf("unknown element type %q", s)
}

// Base holds the fields shared by every element variant.
type Base struct {
	X, Y int
	// Floating is set for records that had no position. They are placed at
	// the cursor when pasted.
	Floating bool
	Tags     TagSet
	Frames   FrameSet
	// Path is the dotted list of ancestor group ids written by degroup.
	Path string
}

func (b Base) clone() Base {
	b.Tags = b.Tags.Clone()
	b.Frames = b.Frames.Clone()
	return b
}

// Node is one element of the scene
type Node interface {
	Kind() Kind
	Common() *Base
	// Clone returns a copy that shares nothing mutable with the receiver.
	Clone() Node
}

// Glyph is a colored run of text occupying one or more cells
type Glyph struct {
	Base
	Text  string
	Color string
}

func (g *Glyph) Kind() Kind    { return KindGlyph }
func (g *Glyph) Common() *Base { return &g.Base }

// Clone returns a copy of the glyph
func (g *Glyph) Clone() Node {
	c := *g
	c.Base = g.Base.clone()
	return &c
}

// Width returns the number of cells the glyph occupies
func (g *Glyph) Width() int {
	return DisplayWidth(g.Text)
}

// Group owns child elements positioned relative to its origin
type Group struct {
	Base
	ID   string
	W, H int
	// Rows lists the children in z-order. It is maintained by the store and
	// is nil on detached groups, whose children live in Tree.Children.
	Rows []ID
}

func (g *Group) Kind() Kind    { return KindGroup }
func (g *Group) Common() *Base { return &g.Base }

// Clone returns a copy of the group, including its child list
func (g *Group) Clone() Node {
	c := *g
	c.Base = g.Base.clone()
	if g.Rows != nil {
		c.Rows = append([]ID(nil), g.Rows...)
	}
	return &c
}

// Ref instances the group named Ref at its offset
type Ref struct {
	Base
	Ref string
}

func (r *Ref) Kind() Kind    { return KindRef }
func (r *Ref) Common() *Base { return &r.Base }

// Clone returns a copy of the ref
func (r *Ref) Clone() Node {
	c := *r
	c.Base = r.Base.clone()
	return &c
}

// Frame is an animation keyframe marker. It is never rendered.
type Frame struct {
	Base
	ID         string
	DurationMS int
}

func (f *Frame) Kind() Kind    { return KindFrame }
func (f *Frame) Common() *Base { return &f.Base }

// Clone returns a copy of the frame
func (f *Frame) Clone() Node {
	c := *f
	c.Base = f.Base.clone()
	return &c
}

// Tree is a detached element together with its owned children. Clipboard
// pages and the record stream both carry trees.
type Tree struct {
	Node     Node
	Children []*Tree
}

// Clone deep-copies the tree
func (t *Tree) Clone() *Tree {
	c := &Tree{Node: t.Node.Clone()}
	if g, ok := c.Node.(*Group); ok {
		g.Rows = nil
	}
	for _, ch := range t.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// Walk visits the tree depth-first with absolute offsets. Returning false
// from fn prunes the subtree.
func (t *Tree) Walk(x, y int, fn func(t *Tree, x, y int) bool) {
	b := t.Node.Common()
	ax, ay := x+b.X, y+b.Y
	if !fn(t, ax, ay) {
		return
	}
	for _, ch := range t.Children {
		ch.Walk(ax, ay, fn)
	}
}

// GroupID returns the id of a group tree, or "" for other kinds
func (t *Tree) GroupID() string {
	if g, ok := t.Node.(*Group); ok {
		return g.ID
	}
	return ""
}

// Text returns the glyph text of the tree root, or "" for other kinds
func (t *Tree) Text() string {
	if g, ok := t.Node.(*Glyph); ok {
		return g.Text
	}
	return ""
}

// Extent returns the width and height the root occupies, used for bounding
// boxes. Groups use their recorded size; glyphs their display width.
func Extent(n Node) (w, h int) {
	switch v := n.(type) {
	case *Glyph:
		return v.Width(), 1
	case *Group:
		return max(v.W, 1), max(v.H, 1)
	default:
		return 1, 1
	}
}
