// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records shared between the converter, the history
// store and the CLI.
package types

import "time"

// ConversionStatus is the terminal outcome of one conversion attempt.
type ConversionStatus string

const (
	ConversionDone         ConversionStatus = "converted"
	ConversionFailed       ConversionStatus = "failed"
	ConversionToolMissing  ConversionStatus = "tool-missing"
	ConversionInputMissing ConversionStatus = "input-missing"
)

// Conversion records one attempt to convert a scene file.
type Conversion struct {
	// ID is the history row ID; zero until the attempt is recorded.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Input is the USD scene path as supplied by the caller.
	Input string `json:"input" yaml:"input"`

	// Output is the destination path handed to the tool.
	Output string `json:"output" yaml:"output"`

	// Tool is the executable name that was (or would have been) invoked.
	Tool string `json:"tool" yaml:"tool"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Stdout and Stderr hold the text captured from the tool.
	Stdout string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty" yaml:"stderr,omitempty"`

	// StartedAt is when the attempt began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is how long the tool ran. Zero when it never started.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// OutputBytes is the size of the output file after a successful run, or
	// zero when the file was not found.
	OutputBytes int64 `json:"output_bytes,omitempty" yaml:"output_bytes,omitempty"`
}

// Succeeded reports whether the tool produced its output.
func (c Conversion) Succeeded() bool {
	return c.Status == ConversionDone
}
