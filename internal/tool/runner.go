// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool runs the host-installed scene converter and captures its
// output streams.
package tool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
)

const (
	// DefaultName is the converter binary looked up on PATH.
	DefaultName = "usd2gltf"
	// DefaultOutputFlag precedes the output path on the converter's command line.
	DefaultOutputFlag = "-o"
)

// ErrNotFound is returned when the converter binary cannot be located or
// started because it does not exist.
var ErrNotFound = errors.New("tool not found")

// ExitError reports a converter run that finished with a non-zero status.
type ExitError struct {
	Tool   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

type exitCoder interface {
	ExitCode() int
}

// Output holds the text captured from one converter run.
type Output struct {
	Stdout string
	Stderr string
}

// Tool converts one scene file by running an external program.
type Tool interface {
	// Name returns the executable name (e.g. "usd2gltf").
	Name() string

	// Available reports whether the executable resolves on PATH.
	Available() bool

	// Run converts input into output and blocks until the program exits.
	// Captured streams are returned even when the program fails.
	Run(input, output string) (Output, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Runner implements Tool for a converter that takes the input path as a
// positional argument and the output path after a flag.
type Runner struct {
	bin        string
	outputFlag string
	exec       executor
}

var defaultExec = &osExecutor{}

// New returns a Runner for the named binary. Empty arguments fall back to
// DefaultName and DefaultOutputFlag.
func New(name, outputFlag string) *Runner {
	return newRunner(name, outputFlag, defaultExec)
}

func newRunner(name, outputFlag string, exec executor) *Runner {
	if name == "" {
		name = DefaultName
	}
	if outputFlag == "" {
		outputFlag = DefaultOutputFlag
	}
	return &Runner{bin: name, outputFlag: outputFlag, exec: exec}
}

func (r *Runner) Name() string { return r.bin }

func (r *Runner) Available() bool {
	_, err := r.exec.LookPath(r.bin)
	return err == nil
}

// Args returns the command line arguments passed to the binary.
func (r *Runner) Args(input, output string) []string {
	return []string{input, r.outputFlag, output}
}

func (r *Runner) Run(input, output string) (Output, error) {
	path, err := r.exec.LookPath(r.bin)
	if err != nil {
		return Output{}, r.startError(err)
	}

	var stdout, stderr bytes.Buffer
	err = r.exec.Run(path, r.Args(input, output), &stdout, &stderr)
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	// *exec.ExitError satisfies exitCoder.
	var exitErr exitCoder
	switch {
	case errors.As(err, &exitErr):
		return out, &ExitError{Tool: r.bin, Code: exitErr.ExitCode(), Stderr: out.Stderr}
	default:
		return out, r.startError(err)
	}
}

// startError maps a failure to resolve or start the binary. Only a binary that
// does not exist counts as ErrNotFound; anything else (permission denied,
// exec.ErrDot) is a start failure.
func (r *Runner) startError(err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, r.bin, err)
	}
	return fmt.Errorf("starting %s: %w", r.bin, err)
}
