package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"qexec.io/core"
	"qexec.io/dispatch"
	"qexec.io/logger"
)

type DistributeCommand struct {
	Help      bool   `short:"h" long:"help" description:"Show this help message"`
	Jobs      int    `short:"j" long:"jobs" description:"Number of commands run at the same time" default:"1"`
	PerTask   int    `short:"n" long:"per-task" description:"Number of commands assigned to each array task" default:"1"`
	TaskID    int    `long:"task-id" env:"SLURM_ARRAY_TASK_ID" description:"Array task index" default:"0"`
	FirstTask int    `long:"first-task" description:"Index of the first array task" default:"0"`
	Shell     string `long:"shell" description:"Run every command with SHELL -c instead of executing it directly"`
	DryRun    bool   `long:"dry-run" description:"Print the selected commands without running them"`
	Summary   bool   `long:"summary" description:"Print a result table to stderr"`
	Args      struct {
		ListFile string `positional-arg-name:"list_file" description:"command list written by expand"`
	} `positional-args:"true"`
}

var distributeCommand DistributeCommand

func (x *DistributeCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	if x.Args.ListFile == "" {
		return errors.New("distribute: missing command list file")
	}
	if len(args) > 0 {
		return errors.New("distribute: unexpected arguments: " + strings.Join(args, " "))
	}
	if x.Jobs < 1 {
		return fmt.Errorf("distribute: --jobs must be positive, got %d", x.Jobs)
	}

	commands, err := dispatch.ReadList(x.Args.ListFile)
	if err != nil {
		return err
	}
	task := x.TaskID - x.FirstTask
	tasks, err := dispatch.Slice(commands, task, x.PerTask)
	if err != nil {
		return err
	}
	logger.InfoPrintf("distribute: task %d of %d runs %d commands",
		task, dispatch.TaskCount(len(commands), x.PerTask), len(tasks))
	if len(tasks) < x.PerTask {
		logger.WarningPrintf("distribute: task %d gets %d of %d commands",
			task, len(tasks), x.PerTask)
	}
	logger.InfoObj("distribute tasks", tasks)

	if x.DryRun {
		for _, t := range tasks {
			fmt.Fprintln(stdout, t.Command)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	results, err := dispatch.Run(ctx, tasks, dispatch.Options{
		Jobs:   x.Jobs,
		Shell:  x.Shell,
		Stdout: stdout,
		Stderr: stderr,
	})
	if x.Summary {
		core.PrintTable(stderr, dispatch.SummaryRows(results))
	}
	return err
}

func init() {
	parser.AddCommand(core.DistributeName,
		"Run the commands of one array task",
		"Read a command list written by expand and run the commands that belong to one array task, "+
			"at most --jobs at a time. The task index defaults to $SLURM_ARRAY_TASK_ID.",
		&distributeCommand)
}
