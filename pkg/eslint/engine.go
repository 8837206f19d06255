package eslint

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Engine lints text as if it were the contents of a file.
type Engine interface {
	// Lint runs the linter over text, resolving configuration as if the text were the
	// file at path. Failures of the linter itself are returned as *LintError.
	Lint(ctx context.Context, text, path string) (*Report, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, text, path string) (*Report, error)

// Lint implements Engine.
func (f EngineFunc) Lint(ctx context.Context, text, path string) (*Report, error) {
	return f(ctx, text, path)
}

// Exit codes of the ESLint CLI.
const (
	exitProblemsFound = 1
)

// ExecEngine runs an ESLint executable with --stdin and the json formatter.
type ExecEngine struct {
	// Bin is the path to the eslint executable.
	Bin string

	// Dir is the working directory for the process.
	Dir string

	// Args are extra arguments appended to every invocation.
	Args []string
}

// NewExecEngine creates an ExecEngine.
func NewExecEngine(bin, dir string, args []string) *ExecEngine {
	return &ExecEngine{Bin: bin, Dir: dir, Args: args}
}

// Lint implements Engine.
func (e *ExecEngine) Lint(ctx context.Context, text, path string) (*Report, error) {
	args := make([]string, 0, len(e.Args)+5)
	args = append(args, "--stdin", "--format", "json")
	if path != "" {
		args = append(args, "--stdin-filename", path)
	}
	args = append(args, e.Args...)

	cmd := exec.CommandContext(ctx, e.Bin, args...)
	cmd.Dir = e.Dir
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != exitProblemsFound {
			return nil, parseFailure(stderr.String(), err)
		}
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return &Report{}, nil
	}
	report, err := DecodeReport(out)
	if err != nil {
		return nil, &LintError{Message: err.Error(), Err: err}
	}
	return report, nil
}
