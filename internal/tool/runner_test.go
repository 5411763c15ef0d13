// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool  // binary -> whether LookPath succeeds
	lookPathErrs  map[string]error // binary -> error LookPath returns instead
	runFunc       func(name string, args []string, stdout, stderr io.Writer) error

	calls   int
	gotName string
	gotArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if err, ok := m.lookPathErrs[file]; ok {
		return "./" + file, err
	}
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", fmt.Errorf("exec: %q: %w", file, exec.ErrNotFound)
}

func (m *mockExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	m.calls++
	m.gotName = name
	m.gotArgs = args
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

// exitStatus mimics *exec.ExitError without spawning a process.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitStatus) ExitCode() int { return int(e) }

func TestNew_Defaults(t *testing.T) {
	r := New("", "")
	assert.Equal(t, DefaultName, r.Name())
	assert.Equal(t, []string{"in.usd", "-o", "out.glb"}, r.Args("in.usd", "out.glb"))

	r = New("usdcat", "--out")
	assert.Equal(t, "usdcat", r.Name())
	assert.Equal(t, []string{"in.usd", "--out", "out.usdz"}, r.Args("in.usd", "out.usdz"))
}

func TestAvailable(t *testing.T) {
	tests := []struct {
		name string
		bins map[string]bool
		want bool
	}{
		{name: "on PATH", bins: map[string]bool{"usd2gltf": true}, want: true},
		{name: "missing", bins: map[string]bool{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRunner("usd2gltf", "-o", &mockExecutor{availableBins: tt.bins})
			assert.Equal(t, tt.want, r.Available())
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		bins       map[string]bool
		lookErrs   map[string]error
		runFunc    func(string, []string, io.Writer, io.Writer) error
		wantOut    Output
		wantCalls  int
		wantErr    error
		wantExit   int
		wantStderr string
	}{
		{
			name: "success captures stdout",
			bins: map[string]bool{"usd2gltf": true},
			runFunc: func(_ string, _ []string, stdout, _ io.Writer) error {
				_, _ = io.WriteString(stdout, "OK\n")
				return nil
			},
			wantOut:   Output{Stdout: "OK\n"},
			wantCalls: 1,
		},
		{
			name: "non-zero exit returns ExitError with stderr",
			bins: map[string]bool{"usd2gltf": true},
			runFunc: func(_ string, _ []string, _, stderr io.Writer) error {
				_, _ = io.WriteString(stderr, "bad prim path\n")
				return exitStatus(2)
			},
			wantOut:    Output{Stderr: "bad prim path\n"},
			wantCalls:  1,
			wantExit:   2,
			wantStderr: "bad prim path\n",
		},
		{
			name:      "missing binary never runs",
			bins:      map[string]bool{},
			wantCalls: 0,
			wantErr:   ErrNotFound,
		},
		{
			name:      "binary not executable is a start failure",
			lookErrs:  map[string]error{"usd2gltf": &exec.Error{Name: "usd2gltf", Err: fs.ErrPermission}},
			wantCalls: 0,
			wantErr:   fs.ErrPermission,
		},
		{
			name:      "binary only in current directory is a start failure",
			lookErrs:  map[string]error{"usd2gltf": &exec.Error{Name: "usd2gltf", Err: exec.ErrDot}},
			wantCalls: 0,
			wantErr:   exec.ErrDot,
		},
		{
			name: "binary vanishes before start",
			bins: map[string]bool{"usd2gltf": true},
			runFunc: func(string, []string, io.Writer, io.Writer) error {
				return &fs.PathError{Op: "fork/exec", Path: "/usr/bin/usd2gltf", Err: fs.ErrNotExist}
			},
			wantCalls: 1,
			wantErr:   ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockExecutor{availableBins: tt.bins, lookPathErrs: tt.lookErrs, runFunc: tt.runFunc}
			r := newRunner("usd2gltf", "-o", m)

			out, err := r.Run("a.usd", "a.glb")
			assert.Equal(t, tt.wantCalls, m.calls)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if !errors.Is(tt.wantErr, ErrNotFound) {
					assert.NotErrorIs(t, err, ErrNotFound)
					assert.Contains(t, err.Error(), "starting usd2gltf")
				}
			case tt.wantExit != 0:
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tt.wantExit, exitErr.Code)
				assert.Equal(t, tt.wantStderr, exitErr.Stderr)
				assert.Equal(t, "usd2gltf", exitErr.Tool)
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestRun_PassesResolvedPathAndArgs(t *testing.T) {
	m := &mockExecutor{availableBins: map[string]bool{"usd2gltf": true}}
	r := newRunner("usd2gltf", "-o", m)

	_, err := r.Run("Scenes/robot.usd", "Scenes/robot.glb")
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/usd2gltf", m.gotName)
	assert.Equal(t, []string{"Scenes/robot.usd", "-o", "Scenes/robot.glb"}, m.gotArgs)
}

func TestRun_StartFailureIsWrapped(t *testing.T) {
	m := &mockExecutor{
		availableBins: map[string]bool{"usd2gltf": true},
		runFunc: func(string, []string, io.Writer, io.Writer) error {
			return &fs.PathError{Op: "fork/exec", Path: "/usr/bin/usd2gltf", Err: fs.ErrPermission}
		},
	}
	r := newRunner("usd2gltf", "-o", m)

	_, err := r.Run("a.usd", "a.glb")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "starting usd2gltf")
}
