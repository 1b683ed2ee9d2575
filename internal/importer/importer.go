// Package importer turns foreign art formats into drawing records: escape
// coded text (.ans) and durdraw movies (.dur).
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// Format is a supported input format
type Format string

const (
	FormatANSI    Format = "ansi"
	FormatDurdraw Format = "dur"
)

// Formats lists the supported formats
var Formats = []Format{FormatANSI, FormatDurdraw}

// ParseFormat accepts a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ans", "ansi", "txt":
		return FormatANSI, nil
	case "dur", "durdraw":
		return FormatDurdraw, nil
	}
	return "", fmt.Errorf("unknown format %q: %w", name, errors.ErrInvalidInput)
}

// DetectFormat picks the format from a file extension
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("can't tell the format of %s: %w", path, errors.ErrInvalidInput)
	}
	return ParseFormat(ext)
}

// Read decodes r in format f
func Read(r io.Reader, f Format) ([]*scene.Tree, error) {
	switch f {
	case FormatANSI:
		return ANSI(r)
	case FormatDurdraw:
		return Durdraw(r)
	}
	return nil, fmt.Errorf("unknown format %q: %w", f, errors.ErrInvalidInput)
}

// ReadFile decodes the file at path. An empty format is detected from the
// extension.
func ReadFile(path string, f Format) ([]*scene.Tree, error) {
	if f == "" {
		var err error
		if f, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	trees, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trees, nil
}

// Write encodes trees as drawing records
func Write(w io.Writer, trees []*scene.Tree) error {
	enc := scene.NewEncoder(w)
	for _, t := range trees {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}

// OutputPath returns the drawing path next to an imported file
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".ddw"
}
