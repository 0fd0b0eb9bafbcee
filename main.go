package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"qexec.io/core"
)

// Unknown options are handed to the active command untouched; expand reads
// them as named options of the command template.
var parser = flags.NewNamedParser(core.QexecCommand, flags.IgnoreUnknown)

// Streams used by the commands, swapped in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func printHelp(w io.Writer, parser *flags.Parser) {
	// Print help for active command
	root := parser.Command
	defer func() { parser.Command = root }()
	if parser.Command.Active != nil {
		parser.Command = parser.Command.Active
	}
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Fprintln(w, b.String())
}

func run(osArgs []string) int {
	var err error
	args := []string{}
	if args, err = core.PreprocessArgs(osArgs); err != nil {
		goto errHandler
	}
	if _, err = parser.ParseArgs(args); err != nil {
		goto errHandler
	}
	return 0
errHandler:
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp {
			printHelp(stdout, parser)
			return 0
		} else if flagsErr.Type == flags.ErrCommandRequired ||
			flagsErr.Type == flags.ErrRequired {
			fmt.Fprintln(stderr, "Error: "+flagsErr.Message)
			printHelp(stderr, parser)
			return 1
		} else if flagsErr.Type == flags.ErrUnknownCommand {
			fmt.Fprintf(stderr, "Error: `%v' not supported\n", args[0])
			return 1
		}
		fmt.Fprintln(stderr, "Error: "+flagsErr.Error())
		return 1

	default:
		fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
}

func main() {
	os.Exit(run(os.Args))
}
