package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command and captures both output streams.
// Stderr is returned even on failure so callers can surface tool diagnostics.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		Stdout: stdout.String(),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		return out, fmt.Errorf("command %q failed: %w", name, err)
	}

	return out, nil
}

// LookPath reports whether the named binary is available on PATH.
func (e *implExecutor) LookPath(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("binary %q not found: %w", name, err)
	}
	return nil
}
