package scene

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ddwerrors "darkdraw.dev/ddw/internal/errors"
)

// Record is the wire form of one element: one JSON object per line, with
// nested rows for group children. Absent fields decode to zero values.
type Record struct {
	Type       string    `json:"type,omitempty"`
	X          *int      `json:"x,omitempty"`
	Y          *int      `json:"y,omitempty"`
	Text       string    `json:"text,omitempty"`
	Color      string    `json:"color,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Group      string    `json:"group,omitempty"`
	Frame      string    `json:"frame,omitempty"`
	ID         string    `json:"id,omitempty"`
	Ref        string    `json:"ref,omitempty"`
	W          int       `json:"w,omitempty"`
	H          int       `json:"h,omitempty"`
	DurationMS int       `json:"duration_ms,omitempty"`
	Rows       []*Record `json:"rows,omitempty"`
}

// ToTree converts the record into a detached element tree
func (r *Record) ToTree() (*Tree, error) {
	kind, err := ParseKind(r.Type)
	if err != nil {
		return nil, err
	}

	base := Base{
		Tags:   TagSet(r.Tags).Clone(),
		Frames: ParseFrameSet(r.Frame),
		Path:   r.Group,
	}
	if r.X != nil {
		base.X = *r.X
	}
	if r.Y != nil {
		base.Y = *r.Y
	}
	base.Floating = r.X == nil && r.Y == nil

	t := &Tree{}
	switch kind {
	case KindGlyph:
		t.Node = &Glyph{Base: base, Text: r.Text, Color: r.Color}
	case KindGroup:
		t.Node = &Group{Base: base, ID: r.ID, W: r.W, H: r.H}
	case KindRef:
		t.Node = &Ref{Base: base, Ref: r.Ref}
	case KindFrame:
		t.Node = &Frame{Base: base, ID: r.ID, DurationMS: r.DurationMS}
	}

	for _, child := range r.Rows {
		ct, err := child.ToTree()
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, ct)
	}
	return t, nil
}

// NewRecord converts a detached tree into its wire form
func NewRecord(t *Tree) *Record {
	b := t.Node.Common()
	r := &Record{
		Type:  t.Node.Kind().String(),
		Tags:  b.Tags.Clone(),
		Group: b.Path,
		Frame: b.Frames.String(),
	}
	if !b.Floating {
		x, y := b.X, b.Y
		r.X, r.Y = &x, &y
	}

	switch n := t.Node.(type) {
	case *Glyph:
		r.Text, r.Color = n.Text, n.Color
	case *Group:
		r.ID, r.W, r.H = n.ID, n.W, n.H
	case *Ref:
		r.Ref = n.Ref
	case *Frame:
		r.ID, r.DurationMS = n.ID, n.DurationMS
	}

	for _, ch := range t.Children {
		r.Rows = append(r.Rows, NewRecord(ch))
	}
	return r
}

// Decoder reads a line-per-record element stream
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Decoder{scanner: s}
}

// Next returns the next element tree, or io.EOF at the end of the stream.
// Blank lines are skipped.
func (d *Decoder) Next() (*Tree, error) {
	for d.scanner.Scan() {
		d.line++
		line := strings.TrimSpace(d.scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, ddwerrors.NewDecodeError(d.line, err)
		}
		t, err := rec.ToTree()
		if err != nil {
			return nil, ddwerrors.NewDecodeError(d.line, err)
		}
		return t, nil
	}
	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return nil, io.EOF
}

// DecodeAll reads every tree in the stream
func DecodeAll(r io.Reader) ([]*Tree, error) {
	d := NewDecoder(r)
	var out []*Tree
	for {
		t, err := d.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}

// Encoder writes a line-per-record element stream
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{enc: enc}
}

// Encode writes one tree as a single line
func (e *Encoder) Encode(t *Tree) error {
	return e.enc.Encode(NewRecord(t))
}
