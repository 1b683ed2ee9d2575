// Package animation tracks the current frame of a drawing and drives
// autoplay: a queue of frames, each shown for its duration, that loops back
// to the first frame when exhausted.
package animation

import (
	"fmt"
	"time"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// DefaultIdle is the host loop's wake-up interval while not playing
const DefaultIdle = 100 * time.Millisecond

// entry is one queued frame; start is zero until the frame is first shown
type entry struct {
	start time.Time
	frame *scene.Frame
}

// Player holds the frame list, the current index and the autoplay queue.
// It is idle when the queue is empty and playing otherwise.
type Player struct {
	frames []*scene.Frame
	index  int
	queue  []*entry
	idle   time.Duration
	loops  int
}

// NewPlayer creates an idle player
func NewPlayer() *Player {
	return &Player{idle: DefaultIdle}
}

// SetFrames replaces the frame list and clamps the current index. While
// playing, queued entries follow their frames by id into the new list and
// entries whose frame is gone are dropped; playback stops when none remain.
func (p *Player) SetFrames(frames []*scene.Frame) {
	p.frames = frames
	p.Clamp()
	if !p.Playing() {
		return
	}

	byID := make(map[string]int, len(frames))
	for i, f := range frames {
		byID[f.ID] = i
	}
	queue := p.queue[:0]
	for _, e := range p.queue {
		if i, ok := byID[e.frame.ID]; ok {
			e.frame = frames[i]
			queue = append(queue, e)
		}
	}
	p.queue = queue
	if len(p.queue) == 0 {
		p.Stop()
		return
	}
	p.index = byID[p.queue[0].frame.ID]
	p.idle = p.headDuration()
}

// Frames returns the frame list
func (p *Player) Frames() []*scene.Frame {
	return p.frames
}

// Len returns the number of frames
func (p *Player) Len() int {
	return len(p.frames)
}

// Clamp keeps the current index within the frame list
func (p *Player) Clamp() {
	p.index = max(0, min(p.index, len(p.frames)-1))
}

// Index returns the current frame index
func (p *Player) Index() int {
	return p.index
}

// Current returns the frame being shown, or nil for a drawing without frames
func (p *Player) Current() *scene.Frame {
	if p.Playing() {
		return p.queue[0].frame
	}
	if p.index < len(p.frames) {
		return p.frames[p.index]
	}
	return nil
}

// Active returns the active frame set for compositing
func (p *Player) Active() scene.FrameSet {
	if f := p.Current(); f != nil {
		return scene.FrameSet{f.ID}
	}
	return nil
}

// Playing reports whether autoplay is running
func (p *Player) Playing() bool {
	return len(p.queue) > 0
}

// Loops returns how many times autoplay wrapped back to the first frame
func (p *Player) Loops() int {
	return p.loops
}

// Start queues every frame for playback from the first one
func (p *Player) Start() {
	if len(p.frames) == 0 {
		return
	}
	p.queue = p.queue[:0]
	for _, f := range p.frames {
		p.queue = append(p.queue, &entry{frame: f})
	}
	p.index = 0
	p.idle = p.headDuration()
}

// Stop clears the queue and restores the default wake-up interval
func (p *Player) Stop() {
	p.queue = nil
	p.idle = DefaultIdle
}

// Advance is called once per draw with the current time and returns the
// frame to show. The head frame is timed from its first Advance; once its
// duration has passed the next frame takes over, and an exhausted queue is
// refilled from the first frame.
func (p *Player) Advance(now time.Time) *scene.Frame {
	if !p.Playing() {
		return p.Current()
	}

	head := p.queue[0]
	switch {
	case head.start.IsZero():
		head.start = now
	case now.Sub(head.start) > frameDuration(head.frame):
		p.queue = p.queue[1:]
		if len(p.queue) == 0 {
			for _, f := range p.frames {
				p.queue = append(p.queue, &entry{frame: f})
			}
			if len(p.queue) == 0 {
				p.Stop()
				return p.Current()
			}
			p.index = 0
			p.loops++
		} else {
			p.index = min(p.index+1, max(len(p.frames)-1, 0))
		}
		p.queue[0].start = now
		p.idle = p.headDuration()
	}
	return p.queue[0].frame
}

// Timeout returns how long the host loop may wait for input before the
// next Advance is due
func (p *Player) Timeout() time.Duration {
	return p.idle
}

func (p *Player) headDuration() time.Duration {
	if len(p.queue) == 0 {
		return DefaultIdle
	}
	return max(frameDuration(p.queue[0].frame), time.Millisecond)
}

func frameDuration(f *scene.Frame) time.Duration {
	return time.Duration(f.DurationMS) * time.Millisecond
}

// Next moves to the following frame
func (p *Player) Next() error {
	if len(p.frames) == 0 {
		return errors.ErrNoFrames
	}
	if p.index >= len(p.frames)-1 {
		return errors.ErrLastFrame
	}
	p.index++
	return nil
}

// Prev moves to the preceding frame
func (p *Player) Prev() error {
	if len(p.frames) == 0 {
		return errors.ErrNoFrames
	}
	if p.index <= 0 {
		return errors.ErrFirstFrame
	}
	p.index--
	return nil
}

// First moves to the first frame
func (p *Player) First() {
	p.index = 0
}

// Last moves to the last frame
func (p *Player) Last() {
	p.index = max(len(p.frames)-1, 0)
}

// Seek moves to index i, clamped to the frame list
func (p *Player) Seek(i int) {
	p.index = i
	p.Clamp()
}

// Describe returns a status line for the current frame, or "" without frames
func (p *Player) Describe() string {
	f := p.Current()
	if f == nil {
		return ""
	}
	return fmt.Sprintf("Frame %s %d/%d", f.ID, p.index, len(p.frames)-1)
}
