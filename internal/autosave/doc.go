// Package autosave writes timed snapshots of the drawing being edited.
//
// Snapshots are plain drawing files named after the drawing and the time
// they were taken. Only the newest few per drawing are kept. When enabled,
// each snapshot is also committed to a git repository in the autosave
// directory so pruned snapshots can still be recovered.
package autosave
