package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/markerstub/internal/doctree"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLIRun(t *testing.T) {
	input := writeInput(t, "col1|col2\nplain text\n")
	out := filepath.Join(t.TempDir(), "out")

	stdout, stderr, err := execute(t, "--in", input, "--out", out)
	require.NoError(t, err)
	assert.Equal(t, `{"blocks": 2, "engine": "marker-stub", "images": 1, "use_llm": 0, "version": "marker-stub-1.0.0"}`+"\n", stdout)
	assert.Equal(t, "marker_stub: deterministic mode\n", stderr)

	for _, name := range doctree.RequiredFiles {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.FileExists(t, filepath.Join(out, doctree.ImagesDir, doctree.ImageFile))
}

func TestCLIRun_UseLLMEqualsForm(t *testing.T) {
	input := writeInput(t, "x\n")
	stdout, _, err := execute(t, "--in="+input, "--out="+t.TempDir(), "--use_llm=1")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"use_llm": 1`)

	stdout, _, err = execute(t, "--in", input, "--out", t.TempDir(), "--use_llm", "true")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"use_llm": 0`)
}

func TestCLIMissingArgs(t *testing.T) {
	stdout, stderr, err := execute(t, "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
	assert.Contains(t, stdout+stderr, "Usage:")

	_, _, err = execute(t, "--in", "x.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"out"`)
}

func TestCLIUnreadableInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	stdout, stderr, err := execute(t, "--in", filepath.Join(t.TempDir(), "nope.txt"), "--out", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
	assert.NotContains(t, stdout+stderr, "Usage:")
	assert.NotContains(t, stdout, "engine")
	assert.NoDirExists(t, out)
}

func TestCLIRejectsPositionalArgs(t *testing.T) {
	_, _, err := execute(t, "--in", "a", "--out", "b", "extra")
	assert.Error(t, err)
}

func TestCLIVerify(t *testing.T) {
	input := writeInput(t, "col1|col2\nplain text\n")
	out := t.TempDir()
	_, _, err := execute(t, "--in", input, "--out", out)
	require.NoError(t, err)

	stdout, _, err := execute(t, "verify", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "blocks: 2")
	assert.Contains(t, stdout, "ok")
}

func TestCLIVerify_ReportsProblems(t *testing.T) {
	input := writeInput(t, "one\ntwo\n")
	out := t.TempDir()
	_, _, err := execute(t, "--in", input, "--out", out)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(out, doctree.ChunksJSONFile), []byte("[]\n"), 0o644))

	stdout, _, err := execute(t, "verify", "--out", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVerifyFailed)
	assert.Contains(t, stdout, "0 chunks but 2 blocks")
}

func TestCLIVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test")
}
