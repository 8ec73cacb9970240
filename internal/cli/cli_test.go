package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCase = `<testcase>
  <node name="root" size="0x8" title="minor"/>
  <tokens>
    <title node="root" nl="true"/>
  </tokens>
</testcase>
`

func writeCase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.xml")
	require.NoError(t, os.WriteFile(path, []byte(minimalCase), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDumpRendersListing(t *testing.T) {
	out, err := execute(t, "dump", writeCase(t))
	require.NoError(t, err)
	assert.Contains(t, out, "root:")
	assert.Contains(t, out, "[0x0, 0x8)")
}

func TestDumpReverseMatchesForward(t *testing.T) {
	path := writeCase(t)
	forward, err := execute(t, "dump", path)
	require.NoError(t, err)
	backward, err := execute(t, "dump", "--reverse", path)
	require.NoError(t, err)
	assert.Equal(t, forward, backward)
}

func TestDumpMissingFileFails(t *testing.T) {
	_, err := execute(t, "dump", filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}

func TestDumpRespectsConfigIndent(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent = \"....\"\n"), 0o644))

	out, err := execute(t, "dump", "--config", cfgPath, writeCase(t))
	require.NoError(t, err)
	assert.Contains(t, out, "....")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hexlist test")
}
