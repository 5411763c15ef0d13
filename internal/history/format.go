// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/scene-convert/pkg/types"
)

// WriteTable prints conversions as a fixed-width table with relative start
// times and human-readable output sizes.
func WriteTable(w io.Writer, conversions []types.Conversion, now time.Time) {
	if len(conversions) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-14s  %-16s  %-40s  %-8s  %s\n",
		"ID", "Status", "When", "Input", "Size", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, c := range conversions {
		size := "-"
		if c.OutputBytes > 0 {
			size = humanize.Bytes(uint64(c.OutputBytes))
		}
		fmt.Fprintf(w, "%-5d  %-14s  %-16s  %-40s  %-8s  %s\n",
			c.ID, c.Status, humanize.RelTime(c.StartedAt, now, "ago", "from now"),
			truncate(c.Input, 40), size, c.Output)
	}
}

// truncate keeps the tail of s within n bytes, prefixed with "...". The cut
// lands on a rune boundary, so the result may be a few bytes shorter than n.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n + 3
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return "..." + s[i:]
}

// Counts tallies conversions by status.
func Counts(conversions []types.Conversion) map[types.ConversionStatus]int {
	counts := make(map[types.ConversionStatus]int)
	for _, c := range conversions {
		counts[c.Status]++
	}
	return counts
}
