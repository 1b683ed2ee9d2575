// Package runtime provides the editing context shared by actions and
// commands.
//
// It bundles the drawing store, the per-document session (clipboard pages,
// default color, paste mode), the cursor, the animation player and the
// composited cache, replacing the ambient globals an editor would otherwise
// reach for.
package runtime
