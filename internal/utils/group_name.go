package utils

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxGroupNameLength bounds generated and sanitized group ids
	MaxGroupNameLength = 64

	// DefaultWordsFile is the word list random group names are drawn from
	DefaultWordsFile = "/usr/share/dict/words"
)

var (
	// GroupNameReplaceRegex matches characters that are not valid in group ids.
	// Dots separate path components after a degroup, so they are replaced too.
	GroupNameReplaceRegex = regexp.MustCompile(`[^-_a-zA-Z0-9]+`)

	hyphenRegex = regexp.MustCompile(`-+`)
	wordRegex   = regexp.MustCompile(`^[a-z]{3,7}$`)
)

// SanitizeGroupName replaces characters that can't appear in a group id
func SanitizeGroupName(name string) string {
	name = GroupNameReplaceRegex.ReplaceAllString(strings.TrimSpace(name), "-")
	name = hyphenRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if len(name) > MaxGroupNameLength {
		name = strings.TrimSuffix(name[:MaxGroupNameLength], "-")
	}
	return name
}

// LoadWords reads the short lowercase words of a word list
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); wordRegex.MatchString(w) {
			words = append(words, w)
		}
	}
	return words, sc.Err()
}

// RandomGroupName picks a word from the word list at path. Without a usable
// list it falls back to a short random id.
func RandomGroupName(path string) string {
	if path == "" {
		path = DefaultWordsFile
	}
	if words, err := LoadWords(path); err == nil && len(words) > 0 {
		return words[rand.IntN(len(words))]
	}
	return "g" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// UniqueGroupName returns name, or name with the smallest numeric suffix
// that is not taken
func UniqueGroupName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
