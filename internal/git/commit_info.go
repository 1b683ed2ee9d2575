package git

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CommitInfo describes one commit of the history
type CommitInfo struct {
	Hash    string
	Subject string
	When    time.Time
	// Files lists the paths the commit added or changed
	Files []string
}

// ShortHash returns the abbreviated commit hash
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Log returns up to limit commits reachable from HEAD, newest first. A
// limit of zero returns them all.
func (r *Repository) Log(limit int) ([]CommitInfo, error) {
	head, err := r.HeadHash()
	if err != nil {
		return nil, err
	}
	if head.IsZero() {
		return nil, nil
	}

	iter, err := r.Repository.Log(&git.LogOptions{From: head})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var out []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(out) >= limit {
			return storer.ErrStop
		}
		info := CommitInfo{
			Hash:    c.Hash.String(),
			Subject: strings.SplitN(c.Message, "\n", 2)[0],
			When:    c.Author.When,
		}
		if stats, err := c.Stats(); err == nil {
			for _, s := range stats {
				info.Files = append(info.Files, s.Name)
			}
		}
		out = append(out, info)
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return out, nil
}
