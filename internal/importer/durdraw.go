package importer

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// fallbackFrameMS is used when a movie has neither frame delays nor a
// frame rate
const fallbackFrameMS = 100

// durdraw numbers its 16 colors differently from the terminal palette
var (
	durdraw16FG = map[int]int{
		0: 0, 1: 0, 2: 4, 3: 2, 4: 6, 5: 1, 6: 5, 7: 3, 8: 7,
		9: 8, 10: 12, 11: 10, 12: 14, 13: 9, 14: 13, 15: 11, 16: 15,
	}
	durdraw16BG = map[int]int{
		0: 0, 1: 4, 2: 2, 3: 6, 4: 1, 5: 5, 6: 3, 7: 7, 8: 0,
	}
)

type durFile struct {
	Movie durMovie `json:"DurMovie"`
}

type durMovie struct {
	Framerate   float64    `json:"framerate"`
	ColorFormat string     `json:"colorFormat"`
	Frames      []durFrame `json:"frames"`
}

type durFrame struct {
	FrameNumber int       `json:"frameNumber"`
	Delay       float64   `json:"delay"`
	Contents    []string  `json:"contents"`
	ColorMap    [][][]int `json:"colorMap"`
}

// duration returns how long the frame shows in milliseconds
func (f durFrame) duration(framerate float64) int {
	switch {
	case f.Delay != 0:
		return int(f.Delay * 1000)
	case framerate > 0:
		return int(math.Floor(1000 / framerate))
	}
	return fallbackFrameMS
}

// color returns the fg and bg of cell x, y in the terminal palette
func (m durMovie) color(f durFrame, x, y int) (fg, bg int, err error) {
	fg, bg = defaultFG, defaultBG
	if x < len(f.ColorMap) && y < len(f.ColorMap[x]) && len(f.ColorMap[x][y]) >= 2 {
		fg, bg = f.ColorMap[x][y][0], f.ColorMap[x][y][1]
	}
	if m.ColorFormat != "16" {
		return fg, bg, nil
	}
	mfg, ok := durdraw16FG[fg]
	if !ok {
		return 0, 0, fmt.Errorf("frame %d cell %d,%d: foreground %d: %w", f.FrameNumber, x, y, fg, errors.ErrInvalidInput)
	}
	mbg, ok := durdraw16BG[bg]
	if !ok {
		return 0, 0, fmt.Errorf("frame %d cell %d,%d: background %d: %w", f.FrameNumber, x, y, bg, errors.ErrInvalidInput)
	}
	return mfg, mbg, nil
}

// Durdraw reads a gzipped durdraw movie and returns a frame marker for each
// frame followed by the frame's non-blank cells
func Durdraw(r io.Reader) ([]*scene.Tree, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("not a durdraw file: %w", err)
	}
	defer func() { _ = zr.Close() }()

	var dur durFile
	if err := json.NewDecoder(zr).Decode(&dur); err != nil {
		return nil, fmt.Errorf("failed to parse durdraw movie: %w", err)
	}
	movie := dur.Movie

	var trees []*scene.Tree
	for _, f := range movie.Frames {
		id := strconv.Itoa(f.FrameNumber)
		trees = append(trees, &scene.Tree{Node: &scene.Frame{ID: id, DurationMS: f.duration(movie.Framerate)}})

		for y, line := range f.Contents {
			for x, ch := range []rune(line) {
				fg, bg, err := movie.color(f, x, y)
				if err != nil {
					return nil, err
				}
				if ch == ' ' && bg == 0 {
					continue
				}
				g := &scene.Glyph{
					Base:  scene.Base{X: x, Y: y, Frames: scene.FrameSet{id}},
					Text:  string(ch),
					Color: fmt.Sprintf("%d on %d", fg, bg),
				}
				trees = append(trees, &scene.Tree{Node: g})
			}
		}
	}
	return trees, nil
}
