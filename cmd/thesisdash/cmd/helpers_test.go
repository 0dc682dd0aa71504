package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const chapterOne = `# Introduction

This chapter introduces delirium in older surgical patients.

Participants were recruited from three intensive care units.
`

// setupProject creates an isolated project with a manuscript directory and
// makes it the working directory.
func setupProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range []string{"THESISDASH_MANUSCRIPT", "THESISDASH_OUTPUT", "THESISDASH_DOCX", "THESISDASH_LOG_LEVEL"} {
		t.Setenv(env, "")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".thesisdash.yaml"), []byte("version: 1\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "manuscript"), 0o755))
	t.Chdir(dir)
	return dir
}

func writeChapter(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manuscript", name), []byte(content), 0o644))
}

// runCLI executes the root command with args.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = execute(cmd)
	return outBuf.String(), errBuf.String(), err
}
