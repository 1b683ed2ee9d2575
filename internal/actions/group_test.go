package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestGroupSelected(t *testing.T) {
	t.Run("groups at the bounding box and rebases children", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"x":1,"y":1,"text":"a"}`,
			`{"x":3,"y":2,"text":"bb"}`,
		)).SelectAll()
		ctx := s.Context
		before := s.Text()

		gid, err := actions.GroupSelected(ctx, "Big Cat")
		require.NoError(t, err)
		s.ExpectRows(1)
		require.Equal(t, before, s.Text())

		g := ctx.Store.Get(gid).(*scene.Group)
		require.Equal(t, "Big-Cat", g.ID)
		require.Equal(t, 1, g.X)
		require.Equal(t, 1, g.Y)
		require.Equal(t, 4, g.W)
		require.Equal(t, 2, g.H)

		kids := ctx.Store.Children(gid)
		require.Len(t, kids, 2)
		require.Equal(t, 0, ctx.Store.Get(kids[0]).Common().X)
		require.Equal(t, 2, ctx.Store.Get(kids[1]).Common().X)
		require.Equal(t, []scene.ID{gid}, ctx.Store.Selected())
	})

	t.Run("empty selection", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(`{"x":1,"y":1,"text":"a"}`))
		_, err := actions.GroupSelected(s.Context, "cat")
		require.ErrorIs(t, err, errors.ErrEmptySelection)
	})

	t.Run("duplicate name", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"type":"group","id":"cat","x":0,"y":0}`,
			`{"x":1,"y":1,"text":"a"}`,
		))
		s.Context.Store.Select(s.Context.Store.Rows()[1])
		_, err := actions.GroupSelected(s.Context, "cat")
		require.ErrorIs(t, err, errors.ErrDuplicateGroup)
		s.ExpectRows(2)
	})

	t.Run("random name when none is given", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(`{"x":1,"y":1,"text":"a"}`)).SelectAll()
		gid, err := actions.GroupSelected(s.Context, "")
		require.NoError(t, err)
		require.NotEmpty(t, s.Context.Store.Get(gid).(*scene.Group).ID)
	})
}

func TestDegroupAllRoundTrip(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":1,"y":1,"text":"a"}`,
		`{"x":3,"y":2,"text":"b"}`,
	)).SelectAll()
	ctx := s.Context
	before := s.Saved()

	_, err := actions.GroupSelected(ctx, "cat")
	require.NoError(t, err)

	lifted, err := actions.DegroupAll(ctx, ctx.Store.Rows())
	require.NoError(t, err)
	require.Len(t, lifted, 2)
	require.Empty(t, ctx.Store.Groups())
	require.Equal(t, before, s.Saved())
}

func TestDegroupAndRegroup(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"type":"group","id":"outer","x":2,"y":2,"rows":[{"type":"group","id":"inner","x":1,"y":0,"rows":[{"x":0,"y":1,"text":"c"}]},{"x":0,"y":0,"text":"o"}]}`,
	))
	ctx := s.Context
	before := s.Text()

	lifted, err := actions.Degroup(ctx, ctx.Store.Rows())
	require.NoError(t, err)
	require.Len(t, lifted, 3)
	require.Equal(t, before, s.Text())

	paths := map[string]string{}
	for _, id := range lifted {
		n := ctx.Store.Get(id)
		key := n.Kind().String()
		if g, ok := n.(*scene.Glyph); ok {
			key = g.Text
		}
		paths[key] = n.Common().Path
	}
	require.Equal(t, map[string]string{"group": "outer", "c": "outer.inner", "o": "outer"}, paths)

	require.NoError(t, actions.Regroup(ctx, lifted))
	require.Equal(t, before, s.Text())
	s.ExpectRows(1)
	_, outer, err := ctx.Store.Group("outer")
	require.NoError(t, err)
	require.Len(t, outer.Rows, 2)
}

func TestDegroupRejectsRefs(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"type":"group","id":"cat","x":0,"y":0,"rows":[{"x":0,"y":0,"text":"c"}]}`,
		`{"type":"ref","ref":"cat","x":5,"y":0}`,
	))
	ctx := s.Context

	_, err := actions.Degroup(ctx, ctx.Store.Rows())
	require.ErrorIs(t, err, errors.ErrDegroupRef)
	require.Zero(t, ctx.Store.UndoDepth())
	s.ExpectRows(2)
}

func TestFlipIsInvolution(t *testing.T) {
	for _, axis := range []actions.Axis{actions.Horizontal, actions.Vertical} {
		t.Run(axis.String(), func(t *testing.T) {
			s := scenario.NewScenario(t, testhelpers.Records(
				`{"x":0,"y":0,"text":"a"}`,
				`{"x":2,"y":1,"text":"b"}`,
			))
			ctx := s.Context
			before := s.Saved()
			box := cursor.NewBox(0, 0, 3, 2)

			require.NoError(t, actions.Flip(ctx, box, ctx.Store.Rows(), axis))
			require.NotEqual(t, before, s.Saved())
			require.NoError(t, actions.Flip(ctx, box, ctx.Store.Rows(), axis))
			require.Equal(t, before, s.Saved())
		})
	}

	t.Run("horizontal positions", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"x":0,"y":0,"text":"a"}`,
			`{"x":2,"y":1,"text":"b"}`,
		))
		require.NoError(t, actions.Flip(s.Context, cursor.NewBox(0, 0, 3, 2), s.Context.Store.Rows(), actions.Horizontal))
		s.ExpectText("  a", "b")
	})
}

func TestMirrorSwapsGlyphs(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"╭"}`,
		`{"x":1,"y":0,"text":"─"}`,
	))
	require.NoError(t, actions.Mirror(s.Context, cursor.NewBox(0, 0, 2, 1), s.Context.Store.Rows(), actions.Horizontal))
	s.ExpectText("─╮")
}
