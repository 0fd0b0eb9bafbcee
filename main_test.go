package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMain(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	expandCommand = ExpandCommand{}
	distributeCommand = DistributeCommand{}

	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	code := run(args)
	return code, out.String(), errOut.String()
}

func TestExpandCommand(t *testing.T) {
	code, out, errOut := runMain(t, "qexec", "expand", "prog", "-a", "[1,2]", "[x,y]")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "prog -a 1 x\nprog -a 1 y\nprog -a 2 x\nprog -a 2 y\n", out)
}

func TestExpandSymlinkName(t *testing.T) {
	code, out, errOut := runMain(t, "/usr/local/bin/cmd_expand", "--link", "prog", "--json", "-a", "[1,2]", "-b", "[x]")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, `["prog -a 1 -b x","prog -a 2 -b x"]`+"\n", out)
}

func TestExpandErrors(t *testing.T) {
	for _, args := range [][]string{
		{"cmd_expand", "prog", "-a"},
		{"cmd_expand", "prog", "-a", "--json"},
		{"cmd_expand", "--quote"},
		{"cmd_expand", "prog", "[1,2]", "[,]"},
		{"cmd_expand", "prog", "[file:/does/not/exist]"},
	} {
		code, out, errOut := runMain(t, args...)
		assert.Equal(t, 1, code, "%v", args)
		assert.Empty(t, out, "%v", args)
		assert.Contains(t, errOut, "Error: ", "%v", args)
	}
}

func TestExpandHelp(t *testing.T) {
	for _, args := range [][]string{
		{"cmd_expand", "-h"},
		{"cmd_expand", "prog", "-a", "[1,2]", "--help"},
		{"qexec", "expand", "prog", "-a", "-h"},
	} {
		code, out, errOut := runMain(t, args...)
		assert.Equal(t, 0, code, "%v", args)
		assert.Contains(t, out, "Usage:", "%v", args)
		assert.Empty(t, errOut, "%v", args)
	}
}

func TestExpandOptionStartingWithH(t *testing.T) {
	code, out, errOut := runMain(t, "cmd_expand", "prog", "-hemi", "[lh,rh]")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "prog -hemi lh\nprog -hemi rh\n", out)

	code, out, errOut = runMain(t, "qexec", "expand", "recon-all", "-hippocampal-subfields-T1", "[1,2]")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "recon-all -hippocampal-subfields-T1 1\nrecon-all -hippocampal-subfields-T1 2\n", out)
}

func TestExpandHelpKeepsValueSpecLines(t *testing.T) {
	code, out, _ := runMain(t, "cmd_expand", "--help")
	require.Equal(t, 0, code)
	for _, line := range []string{
		"[a,b,c] is a comma separated list.",
		"[df:COL:PATH] gives column COL of the CSV file PATH.",
		"--json prints a JSON array instead of one command per line.",
	} {
		assert.Contains(t, out, "\n"+line+"\n")
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runMain(t, "qexec", "submit", "job.sh")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: `submit' not supported")
}

func TestMissingCommand(t *testing.T) {
	code, out, errOut := runMain(t, "qexec")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(errOut, "Error: "), errOut)
	assert.Contains(t, errOut, "Usage:")
}

func writeCommands(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

func TestDistributeDryRun(t *testing.T) {
	path := writeCommands(t, "prog 0\nprog 1\nprog 2\nprog 3\nprog 4\n")
	t.Setenv("SLURM_ARRAY_TASK_ID", "2")

	code, out, errOut := runMain(t, "qexec", "distribute", "--dry-run", "-n", "2", path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "prog 4\n", out)
}

func TestDistributeFirstTask(t *testing.T) {
	path := writeCommands(t, `["prog 0","prog 1","prog 2"]`)

	code, out, errOut := runMain(t, "command_distributor", "--dry-run", "--task-id", "6", "--first-task", "5", path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "prog 1\n", out)
}

func TestDistributeRun(t *testing.T) {
	path := writeCommands(t, "echo one\necho two\necho three\n")
	t.Setenv("SLURM_ARRAY_TASK_ID", "0")

	code, out, errOut := runMain(t, "qexec", "distribute", "-n", "3", "--summary", path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "one\ntwo\nthree\n", out)
	assert.Contains(t, errOut, "COMMAND")
	assert.Contains(t, errOut, "echo three")
}

func TestDistributeFailure(t *testing.T) {
	path := writeCommands(t, "exit 4\n")
	t.Setenv("SLURM_ARRAY_TASK_ID", "0")

	code, _, errOut := runMain(t, "qexec", "distribute", "--shell", "/bin/sh", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: distribute: 1 of 1 commands failed")
}

func TestDistributeErrors(t *testing.T) {
	path := writeCommands(t, "prog 0\n")
	t.Setenv("SLURM_ARRAY_TASK_ID", "0")

	for _, args := range [][]string{
		{"qexec", "distribute"},
		{"qexec", "distribute", "--task-id", "1", path},
		{"qexec", "distribute", "-j", "0", path},
		{"qexec", "distribute", filepath.Join(t.TempDir(), "missing.txt")},
	} {
		code, _, errOut := runMain(t, args...)
		assert.Equal(t, 1, code, "%v", args)
		assert.Contains(t, errOut, "Error: distribute:", "%v", args)
	}
}
