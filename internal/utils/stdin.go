package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// StdinPath is the file argument that reads standard input
const StdinPath = "-"

// ReadFromStdin reads all content from standard input. A terminal yields
// nothing rather than blocking.
func ReadFromStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}

	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, nil
	}

	// If it's a regular file and it's empty, return empty (don't block)
	if stat.Mode().IsRegular() && stat.Size() == 0 {
		return nil, nil
	}

	return io.ReadAll(os.Stdin)
}

// OpenInput opens path for reading, or standard input for "-"
func OpenInput(path string) (io.ReadCloser, error) {
	if path != StdinPath {
		return os.Open(path)
	}
	data, err := ReadFromStdin()
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
