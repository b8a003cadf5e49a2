package osutil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// Runner runs external programs.
//
// note: fault injection point
type Runner interface {
	// Run runs a program to completion.
	Run(ctx context.Context, name string, args ...string) error
	// Output runs a program to completion and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start starts a program in its own session and does not wait for it.
	Start(name string, args ...string) error
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

func commandError(name string, args []string, err error, stderr *bytes.Buffer) error {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return commandError(name, args, err, &stderr)
	}
	return nil
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, commandError(name, args, err, &stderr)
	}
	return out, nil
}

func (ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	// stdout and stderr are left nil so they go to /dev/null
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	err := cmd.Start()
	if err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

// Call is a single invocation captured by RecordingRunner.
type Call struct {
	Name string
	Args []string
	// Detached is true for calls made through Start.
	Detached bool
}

func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// RecordingRunner records every call instead of running it.
type RecordingRunner struct {
	Calls []Call
	// Outputs maps a program name to what Output returns for it.
	Outputs map[string][]byte
	// Err is returned from every call when set.
	Err error
}

func (r *RecordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
	return r.Err
}

func (r *RecordingRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Outputs[name], nil
}

func (r *RecordingRunner) Start(name string, args ...string) error {
	r.Calls = append(r.Calls, Call{Name: name, Args: args, Detached: true})
	return r.Err
}

// Lines returns every recorded call formatted as a command line.
func (r *RecordingRunner) Lines() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}
