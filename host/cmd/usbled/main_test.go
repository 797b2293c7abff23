package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.toml")))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestPortsListsExplicitPorts(t *testing.T) {
	out, errOut, err := runRoot(t, "ports", "--ports", "COM7,COM9")
	require.NoError(t, err)
	assert.Equal(t, "COM7\nCOM9\n", out)
	assert.Empty(t, errOut)
}

func TestRejectsBadTransport(t *testing.T) {
	out, errOut, err := runRoot(t, "ports", "--transport", "bluetooth")
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "Error: unknown transport \"bluetooth\" (want serial or usb)\n", errOut)
}

func TestToggleRejectsZeroTimes(t *testing.T) {
	_, errOut, err := runRoot(t, "toggle", "--times", "0", "--ports", "COM7")
	assert.Error(t, err)
	assert.Equal(t, "Error: --times must be at least 1\n", errOut)
}
