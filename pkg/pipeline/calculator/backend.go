package calculator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

var ErrCommandMustBeSet = errors.New("command must be set")

// Job describes one backend execution.
type Job struct {
	Stage      string
	Parameters Parameters
	InputPath  string
	OutputPath string
}

// Backend executes the numerical computation of a stage.
type Backend interface {
	Execute(ctx context.Context, job Job) error
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, job Job) error

func (f BackendFunc) Execute(ctx context.Context, job Job) error {
	return f(ctx, job)
}

// CommandBackend runs an external simulation program.
//
// The program is called with the configured arguments followed by
// "--input <input path> --output <output path>" and one "--key=value" flag per parameter, sorted by key.
// The "command" parameter, when set, replaces Command.
type CommandBackend struct {
	Command string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Execute runs the program and waits for it to finish. The process is killed when ctx is cancelled.
func (b *CommandBackend) Execute(ctx context.Context, job Job) error {
	command := job.Parameters.Command(b.Command)
	if command == "" {
		return ErrCommandMustBeSet
	}

	cmd := exec.CommandContext(ctx, command, b.arguments(job)...) //nolint:gosec // the command comes from the stage parameters
	cmd.Stdout = writerOr(b.Stdout, os.Stdout)
	cmd.Stderr = writerOr(b.Stderr, os.Stderr)

	err := cmd.Run()
	if err != nil {
		return errors.Wrapf(err, "unable to run %s", command)
	}

	return nil
}

func (b *CommandBackend) arguments(job Job) []string {
	args := make([]string, 0, len(b.Args)+4+len(job.Parameters))
	args = append(args, b.Args...)
	args = append(args, "--input", job.InputPath, "--output", job.OutputPath)
	for _, key := range job.Parameters.Keys() {
		if key == commandKey {
			continue
		}
		args = append(args, fmt.Sprintf("--%s=%v", key, job.Parameters[key]))
	}

	return args
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}

	return fallback
}

var _ Backend = (*CommandBackend)(nil)
