// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scene-convert/internal/history"
	"github.com/pdiddy/scene-convert/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded conversion attempts",
	Long: `History reads the local SQLite database written by convert --record
(or history.enabled in the config file).`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversion attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		return listHistory(cmd.Context(), cfg.History, limit, cmd.OutOrStdout(), time.Now())
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all recorded attempts as YAML to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return exportHistory(cmd.Context(), cfg.History, cmd.OutOrStdout())
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum number of attempts to list (default: history.max_results)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

// listHistory prints recorded attempts. A missing database is reported as an
// empty history and is not created.
func listHistory(ctx context.Context, cfg types.HistoryConfig, limit int, w io.Writer, now time.Time) error {
	if !history.Exists(cfg) {
		writeHistory(w, nil, now)
		return nil
	}

	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	conversions, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	writeHistory(w, conversions, now)
	return nil
}

// exportHistory writes every recorded attempt as YAML without creating a
// missing database.
func exportHistory(ctx context.Context, cfg types.HistoryConfig, w io.Writer) error {
	if !history.Exists(cfg) {
		return history.ExportNone(w)
	}

	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ExportYAML(ctx, w)
}

// writeHistory prints the table followed by per-status totals.
func writeHistory(w io.Writer, conversions []types.Conversion, now time.Time) {
	history.WriteTable(w, conversions, now)
	if len(conversions) == 0 {
		return
	}

	counts := history.Counts(conversions)
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	fmt.Fprintf(w, "\n%d attempt(s):", len(conversions))
	for _, s := range statuses {
		fmt.Fprintf(w, " %s=%d", s, counts[types.ConversionStatus(s)])
	}
	fmt.Fprintln(w)
}
