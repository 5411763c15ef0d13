// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportEntry is the YAML shape of one recorded attempt.
type ExportEntry struct {
	ID          int64  `yaml:"id"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Tool        string `yaml:"tool"`
	Status      string `yaml:"status"`
	StartedAt   string `yaml:"started_at"`
	DurationMS  int64  `yaml:"duration_ms"`
	OutputBytes int64  `yaml:"output_bytes,omitempty"`
	Stderr      string `yaml:"stderr,omitempty"`
}

// ExportYAML writes every recorded attempt to w as a YAML sequence, newest first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	conversions, err := s.query(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(conversions))
	for i, c := range conversions {
		entries[i] = ExportEntry{
			ID:          c.ID,
			Input:       c.Input,
			Output:      c.Output,
			Tool:        c.Tool,
			Status:      string(c.Status),
			StartedAt:   c.StartedAt.UTC().Format(time.RFC3339),
			DurationMS:  c.Duration.Milliseconds(),
			OutputBytes: c.OutputBytes,
			Stderr:      c.Stderr,
		}
	}

	return writeExport(w, entries)
}

// ExportNone writes an empty export, for when no history database exists.
func ExportNone(w io.Writer) error {
	return writeExport(w, []ExportEntry{})
}

func writeExport(w io.Writer, entries []ExportEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
