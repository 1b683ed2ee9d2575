package scene

import (
	"slices"
	"strings"
)

// FrameSet is the ordered set of frame ids an element is scoped to. An
// empty set means the element shows under every frame.
type FrameSet []string

// ParseFrameSet reads the space separated wire form
func ParseFrameSet(s string) FrameSet {
	var fs FrameSet
	for _, id := range strings.Fields(s) {
		fs = fs.Add(id)
	}
	return fs
}

// String returns the space separated wire form
func (fs FrameSet) String() string {
	return strings.Join(fs, " ")
}

// Empty reports whether the set has no frames
func (fs FrameSet) Empty() bool {
	return len(fs) == 0
}

// Has reports whether id is in the set
func (fs FrameSet) Has(id string) bool {
	return slices.Contains(fs, id)
}

// Add returns the set with id appended if absent
func (fs FrameSet) Add(id string) FrameSet {
	if id == "" || fs.Has(id) {
		return fs
	}
	return append(fs, id)
}

// Intersects reports whether any id is shared with other
func (fs FrameSet) Intersects(other FrameSet) bool {
	for _, id := range fs {
		if other.Has(id) {
			return true
		}
	}
	return false
}

// Equal compares two sets ignoring order
func (fs FrameSet) Equal(other FrameSet) bool {
	if len(fs) != len(other) {
		return false
	}
	for _, id := range fs {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (fs FrameSet) Clone() FrameSet {
	if fs == nil {
		return nil
	}
	return slices.Clone(fs)
}

// VisibleIn reports whether an element scoped to fs shows under the active
// frames. Unscoped elements always show; scoped ones need a shared id.
func (fs FrameSet) VisibleIn(active FrameSet) bool {
	if fs.Empty() {
		return true
	}
	return fs.Intersects(active)
}

// TagSet is an ordered set of tags
type TagSet []string

// ParseTags splits a whitespace separated tag string
func ParseTags(s string) TagSet {
	var ts TagSet
	for _, t := range strings.Fields(s) {
		ts = ts.Add(t)
	}
	return ts
}

// Has reports whether tag is in the set
func (ts TagSet) Has(tag string) bool {
	return slices.Contains(ts, tag)
}

// Add returns the set with tag appended if absent
func (ts TagSet) Add(tag string) TagSet {
	if tag == "" || ts.Has(tag) {
		return ts
	}
	return append(ts, tag)
}

// Remove returns the set without tag
func (ts TagSet) Remove(tag string) TagSet {
	out := ts[:0:0]
	for _, t := range ts {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// Toggle adds tag when absent and removes it otherwise
func (ts TagSet) Toggle(tag string) TagSet {
	if ts.Has(tag) {
		return ts.Remove(tag)
	}
	return ts.Add(tag)
}

// Any reports whether any tag is shared with other
func (ts TagSet) Any(other TagSet) bool {
	for _, t := range ts {
		if other.Has(t) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (ts TagSet) Clone() TagSet {
	if ts == nil {
		return nil
	}
	return slices.Clone(ts)
}
