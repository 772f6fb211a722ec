// Package gitexec runs the git binary. Every process spawned by intentsrc goes through here.
package gitexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultCommand is the git binary looked up on PATH.
const DefaultCommand = "git"

// ExecError is returned when git exits with a non-zero status or cannot be started.
type ExecError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("failed executing git %v: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("failed executing git %v: %v: %v", strings.Join(e.Args, " "), e.Err, msg)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Exec runs git and returns the buffered stdout.
func Exec(ctx context.Context, gitCommand string, repoDir string, args []string) (io.ReadCloser, error) {
	buf := bytes.NewBuffer(nil)
	err := ExecIntoWriter(ctx, buf, gitCommand, repoDir, args)
	if err != nil {
		return nil, err
	}
	return noopReadCloser{buf}, nil
}

// Output runs git and returns stdout as bytes.
func Output(ctx context.Context, gitCommand string, repoDir string, args ...string) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	err := ExecIntoWriter(ctx, buf, gitCommand, repoDir, args)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExecIntoWriter runs git writing stdout into wr. The process is killed when ctx is done.
func ExecIntoWriter(ctx context.Context, wr io.Writer, gitCommand string, repoDir string, args []string) error {
	stderr := bytes.NewBuffer(nil)
	c := exec.CommandContext(ctx, gitCommand, args...)
	c.Dir = repoDir
	c.Stderr = stderr
	c.Stdout = wr
	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ExecError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// ExecPiped starts git and streams its stdout. Close waits for the process and reports its exit error.
func ExecPiped(ctx context.Context, gitCommand string, repoDir string, args []string) (io.ReadCloser, error) {
	stderr := bytes.NewBuffer(nil)
	c := exec.CommandContext(ctx, gitCommand, args...)
	c.Dir = repoDir
	c.Stderr = stderr
	out, err := c.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := c.Start(); err != nil {
		return nil, &ExecError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return &pipedReadCloser{ReadCloser: out, cmd: c, args: args, stderr: stderr}, nil
}

type pipedReadCloser struct {
	io.ReadCloser
	cmd    *exec.Cmd
	args   []string
	stderr *bytes.Buffer
}

func (s *pipedReadCloser) Close() error {
	// drain so git does not block on a full pipe before exiting
	_, _ = io.Copy(io.Discard, s.ReadCloser)
	if err := s.cmd.Wait(); err != nil {
		return &ExecError{Args: s.args, Stderr: s.stderr.String(), Err: err}
	}
	return nil
}

type noopReadCloser struct {
	io.Reader
}

func (noopReadCloser) Close() error {
	return nil
}
