package runtime

import (
	"fmt"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// ClipboardPages is the number of clipboard pages
const ClipboardPages = 11

// PasteMode controls what paste and fill copy
type PasteMode string

// Paste modes
const (
	PasteAll   PasteMode = "all"
	PasteChar  PasteMode = "char"
	PasteColor PasteMode = "color"
)

var pasteModes = []PasteMode{PasteAll, PasteChar, PasteColor}

// Next returns the following paste mode in rotation
func (m PasteMode) Next() PasteMode {
	for i, p := range pasteModes {
		if p == m {
			return pasteModes[(i+1)%len(pasteModes)]
		}
	}
	return PasteAll
}

// Mode is the editor input mode
type Mode string

const (
	ModeNormal Mode = ""
	ModeLine   Mode = "linedraw"
)

// Visibility selects the side panel
type Visibility int

const (
	ShowNothing Visibility = iota
	ShowTags
	ShowClipboard
)

// Next cycles nothing, tags, clipboard
func (v Visibility) Next() Visibility {
	return (v + 1) % 3
}

// DefaultBoxChars holds the box tool's horizontal and vertical edges
// followed by the top-left, top-right, bottom-left and bottom-right corners
var DefaultBoxChars = [6]string{"─", "│", "┌", "┐", "└", "┘"}

// Session is the per-document editing state
type Session struct {
	Clipboard    [ClipboardPages][]*scene.Tree
	Page         int
	DefaultColor string
	PasteMode    PasteMode
	AddBaseFrame bool
	Mode         Mode
	LinePoints   [][2]int
	BoxChars     [6]string
	DisabledTags scene.TagSet
	Visibility   Visibility
}

// NewSession returns a fresh session
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset restores the state of a new document. The clipboard survives.
func (s *Session) Reset() {
	s.PasteMode = PasteAll
	s.Mode = ModeNormal
	s.LinePoints = nil
	s.BoxChars = DefaultBoxChars
	s.DisabledTags = nil
	s.Visibility = ShowNothing
}

// ClipboardRows returns the current clipboard page
func (s *Session) ClipboardRows() []*scene.Tree {
	return s.Clipboard[s.Page]
}

// RequireClipboard returns the current page or ErrEmptyClipboard
func (s *Session) RequireClipboard() ([]*scene.Tree, error) {
	rows := s.ClipboardRows()
	if len(rows) == 0 {
		return nil, errors.ErrEmptyClipboard
	}
	return rows, nil
}

// SetClipboard replaces the current page with detached copies of rows
func (s *Session) SetClipboard(rows []*scene.Tree) {
	page := make([]*scene.Tree, len(rows))
	for i, r := range rows {
		page[i] = r.Clone()
	}
	s.Clipboard[s.Page] = page
}

// CyclePage moves n pages forward, wrapping around
func (s *Session) CyclePage(n int) {
	s.Page = ((s.Page+n)%ClipboardPages + ClipboardPages) % ClipboardPages
}

// Palette returns clipboard slot n of the current page
func (s *Session) Palette(n int) (*scene.Tree, error) {
	rows := s.ClipboardRows()
	if n < 0 || n >= len(rows) {
		return nil, fmt.Errorf("no clipboard item %d: %w", n+1, errors.ErrEmptyClipboard)
	}
	return rows[n], nil
}

// ToggleTag enables or disables drawing of tag
func (s *Session) ToggleTag(tag string) {
	s.DisabledTags = s.DisabledTags.Toggle(tag)
}

// EnableAllTags re-enables every tag
func (s *Session) EnableAllTags() {
	s.DisabledTags = nil
}

// BoxChar builds a clipboard-style glyph for ch in the default color
func (s *Session) BoxChar(ch string) *scene.Tree {
	return &scene.Tree{Node: &scene.Glyph{Text: ch, Color: s.DefaultColor}}
}
