// Package dispatch runs the share of an expanded command list that belongs
// to one array task.
package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"qexec.io/core"
)

// Task is one command line and its 0-based position in the full list.
type Task struct {
	Index   int    `json:"index"`
	Command string `json:"command"`
}

// ReadList loads a command list written by expand. A file starting with '['
// that decodes as a JSON string array is read as such; anything else is one
// command per non-blank line.
func ReadList(path string) ([]string, error) {
	if !core.FileExist(path) {
		return nil, fmt.Errorf("distribute: command file does not exist: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("distribute: cannot read %s: %w", path, err)
	}

	var commands []string
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &commands); err != nil {
			commands = nil
		}
	}
	if commands == nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(strings.TrimRight(line, "\r"))
			if line != "" {
				commands = append(commands, line)
			}
		}
	}

	if len(commands) == 0 {
		return nil, errors.New("distribute: no commands in " + path)
	}
	return commands, nil
}

// Slice returns the commands of array task number task when every task
// runs perTask consecutive commands. The last task may get fewer.
func Slice(commands []string, task, perTask int) ([]Task, error) {
	if perTask < 1 {
		return nil, errors.New("distribute: commands per task must be positive, got " + strconv.Itoa(perTask))
	}
	if task < 0 {
		return nil, errors.New("distribute: task index must not be negative, got " + strconv.Itoa(task))
	}
	start := task * perTask
	if start >= len(commands) {
		return nil, fmt.Errorf("distribute: task %d is out of range for %d commands (%d per task)",
			task, len(commands), perTask)
	}
	end := start + perTask
	if end > len(commands) {
		end = len(commands)
	}

	tasks := make([]Task, 0, end-start)
	for i := start; i < end; i++ {
		tasks = append(tasks, Task{Index: i, Command: commands[i]})
	}
	return tasks, nil
}

// TaskCount is the number of array tasks needed to cover n commands.
func TaskCount(n, perTask int) int {
	if perTask < 1 || n < 1 {
		return 0
	}
	return (n + perTask - 1) / perTask
}
