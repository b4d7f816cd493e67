package executor

import "context"

// Output holds the captured streams of a finished command.
type Output struct {
	Stdout string
	Stderr string
}

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (Output, error)
	LookPath(name string) error
}
