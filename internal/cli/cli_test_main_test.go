package cli_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}

// getDdwBinary returns the path to the pre-built ddw binary.
func getDdwBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build ddw binary: %v", err)
		}
		t.Fatal("ddw binary not built")
	}
	return binaryPath
}

// ddw runs the binary in the scene directory and returns its stdout
func ddw(t *testing.T, scene *testhelpers.Scene, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getDdwBinary(t), args...)
	cmd.Dir = scene.Dir
	out, err := cmd.Output()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return string(out) + string(exitErr.Stderr), err
	}
	return string(out), err
}

// mustDdw is ddw failing the test on error
func mustDdw(t *testing.T, scene *testhelpers.Scene, args ...string) string {
	t.Helper()
	out, err := ddw(t, scene, args...)
	require.NoError(t, err, "ddw %v failed: %s", args, out)
	return out
}
