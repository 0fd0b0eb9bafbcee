package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/mattn/go-shellwords"
	"golang.org/x/sync/errgroup"

	"qexec.io/logger"
)

// exit code reported for commands that could not be started
const ExitNotRun = 127

type Options struct {
	// Jobs is the number of commands in flight, at least 1.
	Jobs int
	// Shell runs each command as `Shell -c line`. When empty the line is
	// split into words and executed directly.
	Shell  string
	Stdout io.Writer
	Stderr io.Writer
}

type Result struct {
	Task
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// lockedWriter serialises writes from concurrently running commands.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func newLockedWriter(w io.Writer) *lockedWriter {
	if w == nil {
		w = io.Discard
	}
	return &lockedWriter{w: w}
}

// Run executes tasks with at most opts.Jobs commands at a time. A failing
// command does not stop the others. Results are in task order.
func Run(ctx context.Context, tasks []Task, opts Options) ([]Result, error) {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	stdout := newLockedWriter(opts.Stdout)
	stderr := newLockedWriter(opts.Stderr)

	results := make([]Result, len(tasks))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, task := range tasks {
		group.Go(func() error {
			results[i] = execute(ctx, task, opts.Shell, stdout, stderr)
			return nil
		})
	}
	group.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if ctx.Err() != nil {
		logger.CriticalPrintf("distribute: interrupted, %d of %d commands did not complete", failed, len(tasks))
	}
	if failed > 0 {
		return results, fmt.Errorf("distribute: %d of %d commands failed", failed, len(tasks))
	}
	return results, nil
}

func command(ctx context.Context, line, shell string) (*exec.Cmd, error) {
	if shell != "" {
		return exec.CommandContext(ctx, shell, "-c", line), nil
	}
	parser := shellwords.NewParser()
	parser.ParseEnv = true
	argv, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("distribute: cannot split %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("distribute: empty command")
	}
	return exec.CommandContext(ctx, argv[0], argv[1:]...), nil
}

func execute(ctx context.Context, task Task, shell string, stdout, stderr io.Writer) (res Result) {
	res.Task = task
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.ExitCode = ExitNotRun
		res.Err = err
		return res
	}
	cmd, err := command(ctx, task.Command, shell)
	if err != nil {
		res.ExitCode = ExitNotRun
		res.Err = err
		logger.ErrorPrintf("%v", err)
		return res
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.DebugPrintf("distribute: [%d] start %s", task.Index, task.Command)
	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = ExitNotRun
		}
		res.Err = err
		logger.ErrorPrintf("distribute: [%d] %s: %v", task.Index, task.Command, err)
		return res
	}
	logger.DebugPrintf("distribute: [%d] done in %s", task.Index, time.Since(start))
	return res
}

// SummaryRows lays results out for core.PrintTable.
func SummaryRows(results []Result) [][]string {
	rows := [][]string{{"INDEX", "EXIT", "DURATION", "COMMAND"}}
	for _, res := range results {
		rows = append(rows, []string{
			strconv.Itoa(res.Index),
			strconv.Itoa(res.ExitCode),
			res.Duration.Round(time.Millisecond).String(),
			res.Command,
		})
	}
	return rows
}
