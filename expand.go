package main

import (
	"qexec.io/core"
	"qexec.io/expand"
)

// No options are declared here. go-flags would read -hemi as the short
// cluster -h -e -m -i, so every token, -h and --help included, reaches the
// expansion grammar in command line order.
type ExpandCommand struct{}

var expandCommand ExpandCommand

func (x *ExpandCommand) Execute(args []string) error {
	inv, err := expand.Run(stdout, args)
	if err != nil {
		return err
	}
	if inv.Help {
		return core.CreateHelpErr()
	}
	return nil
}

func init() {
	parser.AddCommand(core.ExpandName,
		"Expand a command template",
		expand.Usage,
		&expandCommand)
}
