package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

const framesOneTwo = `{"type":"frame","id":"1","duration_ms":100}
{"type":"frame","id":"2","duration_ms":100}`

func lastRow(s *scenario.Scenario) scene.Node {
	rows := s.Context.Store.Rows()
	return s.Context.Store.Get(rows[len(rows)-1])
}

func TestFillChars(t *testing.T) {
	t.Run("fills every cell of the box", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"text":"x"}`)
		ctx := s.Context

		err := actions.FillChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(2, 1, 3, 1), 0)
		require.NoError(t, err)
		s.ExpectRows(3).ExpectText("", "  xxx")
		for i, id := range ctx.Store.Rows() {
			x, y := ctx.Store.Position(id)
			require.Equal(t, 2+i, x)
			require.Equal(t, 1, y)
		}
	})

	t.Run("advances by the width of wide glyphs", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"text":"ab"}`)
		ctx := s.Context

		require.NoError(t, actions.FillChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(0, 0, 4, 2), 0))
		s.ExpectRows(4).ExpectText("abab", "abab")
	})

	t.Run("empty clipboard leaves the drawing alone", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		ctx := s.Context

		err := actions.FillChars(ctx, nil, cursor.NewBox(0, 0, 3, 1), 0)
		require.ErrorIs(t, err, errors.ErrEmptyClipboard)
		s.ExpectRows(0)
		require.Zero(t, ctx.Store.UndoDepth())
	})

	t.Run("zero-width glyphs stop at the iteration cap", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"text":"\u0301"}`)
		ctx := s.Context

		require.NoError(t, actions.FillChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(0, 0, 3, 2), 0))
		require.Equal(t, 10000, ctx.Store.Len())
		require.Equal(t, 1, ctx.Store.UndoDepth())
	})

	t.Run("a box without area adds nothing", func(t *testing.T) {
		for _, box := range []cursor.Box{cursor.NewBox(4, 4, 0, 3), cursor.NewBox(4, 4, 3, 0)} {
			s := scenario.NewScenario(t, nil).Clip(`{"text":"x"}`)
			ctx := s.Context

			require.NoError(t, actions.FillChars(ctx, ctx.Session.ClipboardRows(), box, 0))
			s.ExpectRows(0)
			require.Zero(t, ctx.Store.UndoDepth())
		}
	})

	t.Run("color mode recolors what is there", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"x":0,"y":0,"text":"a","color":"red"}`,
			`{"x":1,"y":0,"text":"b","color":"red"}`,
		)).Clip(`{"text":"z","color":"blue"}`)
		ctx := s.Context
		ctx.Session.PasteMode = runtime.PasteColor

		require.NoError(t, actions.FillChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(0, 0, 2, 1), 0))
		s.ExpectRows(2).ExpectText("ab")
		for _, id := range ctx.Store.Rows() {
			require.Equal(t, "blue", ctx.Store.Get(id).(*scene.Glyph).Color)
		}
	})
}

func TestPasteChars(t *testing.T) {
	t.Run("moves the clipboard to the box corner", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(
			`{"x":10,"y":10,"text":"a"}`,
			`{"x":11,"y":11,"text":"b"}`,
		)
		ctx := s.Context

		require.NoError(t, actions.PasteChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(1, 0, 1, 1), 0))
		s.ExpectText(" a", "  b")
	})

	t.Run("char mode takes the default color", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"x":0,"y":0,"text":"a","color":"red"}`)
		ctx := s.Context
		ctx.Session.PasteMode = runtime.PasteChar
		ctx.Session.DefaultColor = "green"

		require.NoError(t, actions.PasteChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(0, 0, 1, 1), 0))
		require.Equal(t, "green", lastRow(s).(*scene.Glyph).Color)
	})

	t.Run("pasted groups get fresh ids", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"type":"group","id":"cat","x":0,"y":0,"rows":[{"x":0,"y":0,"text":"c"}]}`,
		)).Clip(`{"type":"group","id":"cat","x":0,"y":0,"rows":[{"x":0,"y":0,"text":"c"}]}`)
		ctx := s.Context

		require.NoError(t, actions.PasteChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(3, 0, 1, 1), 0))
		require.Contains(t, ctx.Store.Groups(), "cat")
		require.Contains(t, ctx.Store.Groups(), "cat-2")
	})
}

func TestPasteFrameRules(t *testing.T) {
	tests := []struct {
		name     string
		clip     string
		baseMode bool
		want     scene.FrameSet
	}{
		{
			name: "single frame source lands on the current frame",
			clip: `{"x":0,"y":0,"text":"z","frame":"1"}`,
			want: scene.FrameSet{"2"},
		},
		{
			name: "unknown frame drops frame scoping",
			clip: `{"x":0,"y":0,"text":"z","frame":"9"}`,
			want: nil,
		},
		{
			name: "unscoped source stays unscoped",
			clip: `{"x":0,"y":0,"text":"z"}`,
			want: nil,
		},
		{
			name:     "base frame mode drops frame scoping",
			clip:     `{"x":0,"y":0,"text":"z","frame":"1"}`,
			baseMode: true,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scenario.NewScenario(t, testhelpers.Records(framesOneTwo)).Clip(tt.clip).Seek(1)
			ctx := s.Context
			ctx.Session.AddBaseFrame = tt.baseMode
			require.Equal(t, "2", ctx.CurrentFrameID())

			require.NoError(t, actions.PasteChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(4, 0, 1, 1), 0))
			got := lastRow(s).Common().Frames
			if tt.want == nil {
				require.True(t, got.Empty(), "frames: %v", got)
			} else {
				require.Equal(t, tt.want, got)
			}
		})
	}

	t.Run("multi-frame source keeps its frames", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(framesOneTwo)).Clip(
			`{"x":0,"y":0,"text":"a","frame":"1"}`,
			`{"x":1,"y":0,"text":"b","frame":"2"}`,
		)
		ctx := s.Context

		require.NoError(t, actions.PasteChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(0, 3, 1, 1), 0))
		require.Equal(t, scene.FrameSet{"2"}, lastRow(s).Common().Frames)
	})
}

func TestPasteSpecial(t *testing.T) {
	t.Run("instances clipboard groups as refs", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"type":"group","id":"cat","x":0,"y":0,"rows":[{"x":0,"y":0,"text":"c"}]}`,
		)).Clip(`{"type":"group","id":"cat","x":0,"y":0}`).Cursor(4, 0, 1, 1)
		ctx := s.Context

		require.NoError(t, actions.PasteSpecial(ctx))
		ref, ok := lastRow(s).(*scene.Ref)
		require.True(t, ok)
		require.Equal(t, "cat", ref.Ref)
		s.ExpectText("c   c")
	})

	t.Run("missing group is an error", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"type":"group","id":"ghost","x":0,"y":0}`)
		err := actions.PasteSpecial(s.Context)
		require.ErrorIs(t, err, errors.ErrRefNotFound)
		s.ExpectRows(0)
	})
}

func TestCyclePasteMode(t *testing.T) {
	s := scenario.NewScenario(t, nil)
	require.Equal(t, runtime.PasteChar, actions.CyclePasteMode(s.Context))
	require.Equal(t, runtime.PasteColor, actions.CyclePasteMode(s.Context))
	require.Equal(t, runtime.PasteAll, actions.CyclePasteMode(s.Context))
}
