package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"qexec", []string{"/usr/bin/qexec", "expand", "prog"}, []string{"expand", "prog"}},
		{"cmd_expand symlink", []string{"/opt/bin/cmd_expand", "prog", "-a", "[1,2]"}, []string{"expand", "prog", "-a", "[1,2]"}},
		{"expand symlink", []string{"expand", "--json", "prog"}, []string{"expand", "--json", "prog"}},
		{"command_distributor symlink", []string{"./command_distributor", "cmds.txt"}, []string{"distribute", "cmds.txt"}},
		{"no arguments", []string{"qexec"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PreprocessArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := PreprocessArgs(nil)
	assert.Error(t, err)
}

func TestCreateHelpErr(t *testing.T) {
	err := CreateHelpErr()
	var flagsErr *flags.Error
	require.ErrorAs(t, err, &flagsErr)
	assert.Equal(t, flags.ErrHelp, flagsErr.Type)
}

func TestFileExist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	assert.True(t, FileExist(path))
	assert.False(t, FileExist(dir))
	assert.False(t, FileExist(filepath.Join(dir, "missing.txt")))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, [][]string{
		{"index", "command"},
		{"0", "prog -a 1"},
	})
	out := buf.String()
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "COMMAND")
	assert.Contains(t, out, "prog -a 1")

	buf.Reset()
	PrintTable(&buf, nil)
	assert.Empty(t, buf.String())
}
