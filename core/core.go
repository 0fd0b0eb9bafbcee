package core

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

const QexecCommand = "qexec"

// qexec commands
const (
	ExpandName     = "expand"
	DistributeName = "distribute"
)

// Program names that run a qexec command directly when the binary is
// installed as a symlink.
var commandAliases = map[string]string{
	"cmd_expand":          ExpandName,
	"expand":              ExpandName,
	"command_distributor": DistributeName,
	"distribute":          DistributeName,
}

// PreprocessArgs drops the program name from os.Args style arguments.
// Known symlink names are replaced with the matching qexec command.
func PreprocessArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("qexec: missing program name")
	}
	if command, ok := commandAliases[filepath.Base(args[0])]; ok {
		return append([]string{command}, args[1:]...), nil
	}
	return args[1:], nil
}

func CreateHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}

// FileExist reports whether filename exists and is not a directory.
func FileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
