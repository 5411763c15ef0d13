// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert converts one USD scene to glTF by invoking an external tool
// and reports the outcome as console text.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/scene-convert/internal/tool"
	"github.com/pdiddy/scene-convert/pkg/types"
)

// now is overridden in tests.
var now = time.Now

// ConvertScene runs t once to convert input into output, printing the outcome
// to w. A missing input short-circuits before any process is started. The
// returned record describes the attempt; none of the outcomes is an error.
func ConvertScene(t tool.Tool, input, output string, w io.Writer) types.Conversion {
	c := types.Conversion{
		Input:     input,
		Output:    output,
		Tool:      t.Name(),
		StartedAt: now().UTC(),
	}

	if _, err := os.Stat(input); err != nil {
		fmt.Fprintf(w, "Input USD file not found: %s\n", input)
		c.Status = types.ConversionInputMissing
		return c
	}

	start := now()
	out, err := t.Run(input, output)
	c.Duration = now().Sub(start)
	c.Stdout = out.Stdout
	c.Stderr = out.Stderr

	var exitErr *tool.ExitError
	switch {
	case err == nil:
		fmt.Fprintln(w, out.Stdout)
		fmt.Fprintf(w, "Conversion successful: %s\n", output)
		c.Status = types.ConversionDone
		if fi, statErr := os.Stat(output); statErr == nil {
			c.OutputBytes = fi.Size()
		}
	case errors.As(err, &exitErr):
		fmt.Fprintf(w, "Error during conversion: %s\n", exitErr.Stderr)
		c.Status = types.ConversionFailed
	case errors.Is(err, tool.ErrNotFound):
		fmt.Fprintf(w, "%s tool not found. Please install it and add it to your PATH.\n", t.Name())
		c.Status = types.ConversionToolMissing
	default:
		fmt.Fprintf(w, "Error during conversion: %v\n", err)
		c.Status = types.ConversionFailed
		if c.Stderr == "" {
			c.Stderr = err.Error()
		}
	}
	return c
}

// Summary renders a one-line description of c for verbose output.
func Summary(c types.Conversion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s -> %s (%s", c.Status, c.Input, c.Output, c.Tool)
	if c.Duration > 0 {
		fmt.Fprintf(&b, ", %s", c.Duration.Round(time.Millisecond))
	}
	b.WriteString(")")
	return b.String()
}
