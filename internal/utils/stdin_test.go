package utils

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenInputFromStdin(t *testing.T) {
	t.Setenv("DDW_TEST_NO_INTERACTIVE", "1")

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r

	expected := `{"x":1,"y":2,"text":"a"}` + "\n"
	go func() {
		_, _ = w.Write([]byte(expected))
		_ = w.Close()
	}()

	rc, err := OpenInput(StdinPath)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, expected, string(data))
	require.NoError(t, rc.Close())
}
