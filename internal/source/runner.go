package source

import (
	"context"
	"os/exec"
)

// Runner abstracts subprocess execution.
// This abstraction allows us to test the source without playerctl installed.
//
//go:generate mockgen -destination=mocks/runner_mock.go -package=mocks github.com/gcolonna/nowpane/internal/source Runner
type Runner interface {
	// Run executes the command and returns its stdout
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner is the real implementation using os/exec
type ExecRunner struct{}

// NewExecRunner creates a runner that executes real commands
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and returns its stdout
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}
