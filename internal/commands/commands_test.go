package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestTable(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands.All() {
		spec := c.Spec()
		require.True(t, c.Valid(), "command %d has no spec", int(c))
		require.NotEmpty(t, spec.Help, spec.Name)
		require.False(t, seen[spec.Name], "duplicate name %s", spec.Name)
		seen[spec.Name] = true

		found, ok := commands.Lookup(spec.Name)
		require.True(t, ok)
		require.Equal(t, c, found)
		require.Equal(t, spec.Name, c.String())
	}

	for _, c := range []commands.Command{commands.Quit, commands.TypingMode, commands.LoadKeymap, commands.ExecLongname} {
		require.Nil(t, c.Spec().Run, c.String())
	}
	_, ok := commands.Lookup("no-such-command")
	require.False(t, ok)
}

func TestDefaultBindings(t *testing.T) {
	b := commands.DefaultBindings()

	for keys, binding := range b {
		require.True(t, binding.Command.Valid(), keys)
		require.False(t, b.IsPrefix(keys), "%q is bound and also starts a longer sequence", keys)
	}

	binding, ok := b.Lookup("g z (")
	require.True(t, ok)
	require.Equal(t, commands.DegroupSelectedPerm, binding.Command)

	binding, ok = b.Lookup("0 3")
	require.True(t, ok)
	require.Equal(t, commands.Binding{Command: commands.ToggleEnabledGroup, Arg: "3"}, binding)

	require.True(t, b.IsPrefix("g"))
	require.True(t, b.IsPrefix("g z"))
	require.False(t, b.IsPrefix("p"))
	require.Equal(t, []string{"f"}, b.Keys(commands.FillChars))
}

func TestNewBindings(t *testing.T) {
	b, err := commands.NewBindings(map[string]string{
		"ctrl+t":  "fill-chars",
		"x":       "",
		"q":       "bogus",
		"  z  F ": "paste-char 3",
	})
	require.ErrorIs(t, err, errors.ErrInvalidInput)
	require.Contains(t, err.Error(), "bogus")

	binding, ok := b.Lookup("ctrl+t")
	require.True(t, ok)
	require.Equal(t, commands.FillChars, binding.Command)

	_, ok = b.Lookup("x")
	require.False(t, ok)

	binding, _ = b.Lookup("q")
	require.Equal(t, commands.Quit, binding.Command, "bad overrides keep the default")

	binding, _ = b.Lookup("z F")
	require.Equal(t, commands.Binding{Command: commands.PasteCharN, Arg: "3"}, binding)
}

func TestDispatch(t *testing.T) {
	t.Run("runs the handler and reports its status", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Cursor(0, 0, 3, 1).Clip(`{"text":"x"}`)

		status, err := commands.Dispatch(s.Context, commands.FillChars, "")
		require.NoError(t, err)
		require.Equal(t, "filled 3 cells", status)
		s.ExpectText("xxx")

		status, err = commands.DispatchName(s.Context, "undo", "")
		require.NoError(t, err)
		require.Equal(t, "undid fill", status)
		s.ExpectText()
	})

	t.Run("checks preconditions first", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		ctx := s.Context

		_, err := commands.Dispatch(ctx, commands.PasteChars, "")
		require.ErrorIs(t, err, errors.ErrEmptyClipboard)
		_, err = commands.Dispatch(ctx, commands.DeleteSelected, "")
		require.ErrorIs(t, err, errors.ErrEmptySelection)
		_, err = commands.Dispatch(ctx, commands.NextFrame, "")
		require.ErrorIs(t, err, errors.ErrNoFrames)
		_, err = commands.Dispatch(ctx, commands.AddInput, "  ")
		require.ErrorIs(t, err, errors.ErrInvalidInput)
		_, err = commands.Dispatch(ctx, commands.DeleteCursor, "")
		require.ErrorIs(t, err, errors.ErrNothingUnderCursor)
		require.Zero(t, ctx.Store.UndoDepth())
	})

	t.Run("editor commands are refused", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		_, err := commands.Dispatch(s.Context, commands.Quit, "")
		require.ErrorIs(t, err, commands.ErrEditorCommand)
		_, err = commands.DispatchName(s.Context, "frobnicate", "")
		require.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("input commands", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		ctx := s.Context

		_, err := commands.Dispatch(ctx, commands.AddInput, "hi")
		require.NoError(t, err)
		s.ExpectText("hi")
		require.Equal(t, 2, ctx.Cursor.X1)

		_, err = commands.Dispatch(ctx, commands.ClickCursor, "0,0")
		require.NoError(t, err)
		_, err = commands.Dispatch(ctx, commands.TagCursor, "word")
		require.NoError(t, err)
		status, err := commands.Dispatch(ctx, commands.SelectTag, "word")
		require.NoError(t, err)
		require.Equal(t, "selected 1", status)

		_, err = commands.Dispatch(ctx, commands.ClickCursor, "nowhere")
		require.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("bound arguments", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"text":"a"}`, `{"text":"b"}`)
		binding, ok := commands.DefaultBindings().Lookup("f2")
		require.True(t, ok)

		_, err := commands.Dispatch(s.Context, binding.Command, binding.Arg)
		require.NoError(t, err)
		s.ExpectText("b")
	})

	t.Run("cursor and session commands", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(`{"x":4,"y":2,"text":"o"}`))
		ctx := s.Context

		_, err := commands.Dispatch(ctx, commands.GoLeft, "")
		require.NoError(t, err)
		require.Equal(t, 0, ctx.Cursor.X1)
		_, err = commands.Dispatch(ctx, commands.GoRightObj, "")
		require.Error(t, err, "nothing on row 0")
		_, err = commands.Dispatch(ctx, commands.GoBottom, "")
		require.NoError(t, err)
		require.Equal(t, 2, ctx.Cursor.Y1)
		_, err = commands.Dispatch(ctx, commands.GoRightObj, "")
		require.NoError(t, err)
		require.Equal(t, 4, ctx.Cursor.X1)

		status, err := commands.Dispatch(ctx, commands.ShowChar, "")
		require.NoError(t, err)
		require.Contains(t, status, "<o> U+006F")

		status, err = commands.Dispatch(ctx, commands.CyclePasteMode, "")
		require.NoError(t, err)
		require.Equal(t, "paste mode char", status)
		require.Equal(t, runtime.PasteChar, ctx.Session.PasteMode)

		_, err = commands.Dispatch(ctx, commands.SetClipboardPage, "11")
		require.ErrorIs(t, err, errors.ErrInvalidInput)
		status, err = commands.Dispatch(ctx, commands.CyclePaletteDown, "")
		require.NoError(t, err)
		require.Equal(t, "clipboard page 10", status)
	})

	t.Run("line drawing", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"text":"-"}`)
		ctx := s.Context

		_, err := commands.Dispatch(ctx, commands.NextPoint, "")
		require.ErrorIs(t, err, errors.ErrInvalidInput)

		status, err := commands.Dispatch(ctx, commands.LineDrawingMode, "")
		require.NoError(t, err)
		require.Equal(t, "line drawing on", status)
		_, err = commands.Dispatch(ctx, commands.NextPoint, "")
		require.NoError(t, err)
		ctx.Cursor.MoveTo(3, 0)
		_, err = commands.Dispatch(ctx, commands.NextPoint, "")
		require.NoError(t, err)
		s.ExpectText("----")
	})
}
