// Package actions provides the editing operations behind ddw commands.
//
// Each action mutates the drawing held by a runtime.Context: placing and
// editing text, paste and fill, line and curve drawing, grouping, flipping,
// tagging, coloring and frame management.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the Store, Session, Cursor and Splog
//   - Preconditions are checked before anything changes; a rejected action leaves the store untouched
//   - Every mutating action runs inside Store.Batch so it undoes as one step
//   - Actions recomposite the drawing before returning
//
// Dependencies:
//   - engine: scene store, selection and undo log
//   - compositor: the per-cell cache actions address elements through
//   - runtime: session state (clipboard, default color, paste mode)
package actions
