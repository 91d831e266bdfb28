package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tim-timman/git-tools/internal/log"
)

// Capture holds the outcome of a captured command execution.
// A command that started and exited (with any status) produces a Capture;
// a command that could not be started produces an error instead.
type Capture struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// RunContext executes a command and returns stderr in the error message if it
// fails. The command is logged in verbose mode. An empty dir runs the command
// in the current working directory.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}
		return err
	}
	return nil
}

// OutputContext executes a command and returns stdout, with stderr in the
// error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stderr bytes.Buffer
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return out, nil
}

// CaptureContext executes a command with dir as its working directory and
// captures stdout and stderr separately. A non-zero exit status is not an
// error: the status is reported in the Capture. The returned error is non-nil
// only when the command could not be started or the context was canceled.
func CaptureContext(ctx context.Context, dir, name string, args ...string) (*Capture, error) {
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	cap := &Capture{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Never started (binary missing, dir unusable, context canceled).
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		cap.ExitCode = exitErr.ExitCode()
	}
	return cap, nil
}
