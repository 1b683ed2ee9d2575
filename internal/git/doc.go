// Package git keeps drawing history in a git repository.
//
// It wraps go-git and provides a Go-friendly interface for:
//   - Opening or creating the history repository
//   - Committing snapshot files
//   - Listing commits and reading files back from them
//
// No git binary is needed.
package git
