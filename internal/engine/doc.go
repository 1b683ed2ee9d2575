// Package engine holds the drawing: the id-indexed scene graph, its
// top-level row order, the selection and the undo history.
//
// Every mutation is recorded as an inverse operation inside a Batch, so a
// failed edit rolls back and a finished one can be undone and redone as a
// unit. The store reads and writes the JSONL drawing format.
package engine
