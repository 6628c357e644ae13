package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

type Result struct {
	Stdout []byte
	Stderr []byte
}

// CombinedOutput joins stderr and stdout for error messages.
func (r Result) CombinedOutput() string {
	return strings.TrimSpace(string(r.Stderr) + string(r.Stdout))
}

// Exec runs commands with os/exec. The process is killed when ctx is done.
type Exec struct{}

func (Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}

// LookPath reports whether the named binary can be found.
func LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}
