// Package expand turns a base command and a set of bracketed value specs
// into the list of concrete command lines fed to array jobs.
//
// A value spec is either a literal token or a bracketed spec:
//
//	[a,b,c]          comma separated list
//	[1..4] [4:1]     inclusive integer range, ascending or descending
//	[file:PATH]      one value per non-blank line of PATH
//	[df:COL:PATH]    values of column COL of the CSV file PATH
//	[glob:PATTERN]   sorted filesystem matches of PATTERN
//
// Arguments are combined as a cross product, or position by position with
// --link. The whole product is built in memory; its size is not capped.
package expand

import (
	"io"

	"qexec.io/logger"
)

// Usage is the long help of the expand command. go-flags trims every line
// of it, so nothing here relies on indentation.
const Usage = `Expand a command template into one command line per combination.

usage: expand [--link] [--quote] [--json] [-h|--help] <base_command> [args...]

The first token that is not a flag is the base command.
Any other token starting with '-' is a named option.
A named option takes the next token as its value spec.
Remaining tokens are positional value specs.

--link pairs values by position and repeats the last value of short lists.
--quote shell quotes every token of the rendered commands.
--json prints a JSON array instead of one command per line.

A value spec is a literal value or one of:
[a,b,c] is a comma separated list.
[1..3] or [3:1] is an inclusive integer range.
[file:PATH] gives the non-blank lines of PATH.
[df:COL:PATH] gives column COL of the CSV file PATH.
[glob:PAT] gives the files matching PAT, sorted.`

// Resolve expands every option and positional value spec, named options
// first. It fails if any argument ends up with no values.
func Resolve(inv Invocation) ([]Argument, error) {
	args := make([]Argument, 0, len(inv.Options)+len(inv.Positional))
	for _, opt := range inv.Options {
		values, err := ExpandValue(opt.Spec)
		if err != nil {
			return nil, err
		}
		logger.DebugPrintf("expand: %s %q resolved to %d values", opt.Name, opt.Spec, len(values))
		args = append(args, Argument{Name: opt.Name, Values: values})
	}
	for i, spec := range inv.Positional {
		values, err := ExpandValue(spec)
		if err != nil {
			return nil, err
		}
		logger.DebugPrintf("expand: positional %d %q resolved to %d values", i, spec, len(values))
		args = append(args, Argument{Values: values})
	}

	for _, arg := range args {
		if len(arg.Values) == 0 {
			return nil, &Error{
				Kind: SemanticError,
				Msg:  "One of the provided arguments expanded to zero values.",
			}
		}
	}
	return args, nil
}

// Expand parses tokens and renders every resulting command line. When the
// tokens ask for help the returned Invocation has Help set and no commands.
func Expand(tokens []string) (Invocation, []string, error) {
	inv, err := Parse(tokens)
	if err != nil || inv.Help {
		return inv, nil, err
	}
	logger.DebugObj("expand invocation", inv)

	args, err := Resolve(inv)
	if err != nil {
		return inv, nil, err
	}

	tuples := Compose(inv.Mode, args)
	commands := make([]string, 0, len(tuples))
	for _, tuple := range tuples {
		commands = append(commands, Render(inv.Base, tuple, inv.Output.Quote))
	}
	logger.InfoPrintf("expand: %d commands (%s)", len(commands), inv.Mode)
	return inv, commands, nil
}

// Run expands tokens and writes the result to w. Nothing is written when
// expansion fails or help was requested.
func Run(w io.Writer, tokens []string) (Invocation, error) {
	inv, commands, err := Expand(tokens)
	if err != nil || inv.Help {
		return inv, err
	}
	return inv, Write(w, commands, inv.Output.Format)
}
