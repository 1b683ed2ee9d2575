package git

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	Message string
	// When defaults to now
	When time.Time
	// Author defaults to "ddw"
	Author string
	Email  string
}

func (o CommitOptions) signature() *object.Signature {
	sig := &object.Signature{Name: o.Author, Email: o.Email, When: o.When}
	if sig.Name == "" {
		sig.Name = "ddw"
	}
	if sig.Email == "" {
		sig.Email = "ddw@localhost"
	}
	if sig.When.IsZero() {
		sig.When = time.Now()
	}
	return sig
}

// CommitFiles stages the given files (absolute or relative to the
// repository root) and commits them
func (r *Repository) CommitFiles(paths []string, opts CommitOptions) (plumbing.Hash, error) {
	wt, err := r.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get worktree: %w", err)
	}
	for _, p := range paths {
		rel, err := r.relative(p)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if _, err := wt.Add(rel); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to stage %s: %w", rel, err)
		}
	}

	sig := opts.signature()
	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: false,
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to commit: %w", err)
	}
	return hash, nil
}

// RemoveFiles stages the deletion of files already gone from the worktree
func (r *Repository) RemoveFiles(paths []string) error {
	wt, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	for _, p := range paths {
		rel, err := r.relative(p)
		if err != nil {
			return err
		}
		if _, err := wt.Remove(rel); err != nil {
			return fmt.Errorf("failed to unstage %s: %w", rel, err)
		}
	}
	return nil
}

func (r *Repository) relative(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p), nil
	}
	rel, err := filepath.Rel(r.path, p)
	if err != nil {
		return "", fmt.Errorf("%s is outside %s: %w", p, r.path, err)
	}
	return filepath.ToSlash(rel), nil
}

// ReadFile returns the content of path as of commit hash
func (r *Repository) ReadFile(hash plumbing.Hash, path string) ([]byte, error) {
	commit, err := r.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}
	rel, err := r.relative(path)
	if err != nil {
		return nil, err
	}
	f, err := commit.File(rel)
	if err != nil {
		return nil, fmt.Errorf("%s not in commit %s: %w", rel, hash.String()[:7], err)
	}
	rd, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rd.Close() }()
	return io.ReadAll(rd)
}
