// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scene-convert/internal/convert"
	"github.com/pdiddy/scene-convert/internal/history"
	"github.com/pdiddy/scene-convert/internal/tool"
	"github.com/pdiddy/scene-convert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.usd] [output.glb]",
	Short: "Convert a USD scene to glTF/GLB",
	Long: `Convert runs usd2gltf once on a USD scene. With no arguments it converts
the configured example pair (Scenes/universalrobots-ur3e.usd). With one
argument the output is written next to the input with a .glb extension.

Every outcome is reported on stdout and, unless --strict is set, the command
exits 0 whether or not the conversion succeeded.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output-flag", "", "flag that precedes the output path (default: -o)")
	convertCmd.Flags().Bool("strict", false, "exit non-zero unless the conversion succeeds")
	convertCmd.Flags().Bool("record", false, "record the attempt in the conversion history")
	convertCmd.Flags().BoolP("verbose", "v", false, "print a summary of the attempt to stderr")

	_ = viper.BindPFlag("conversion.output_flag", convertCmd.Flags().Lookup("output-flag"))
	_ = viper.BindPFlag("conversion.strict", convertCmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("history.enabled", convertCmd.Flags().Lookup("record"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	return convertScene(cmd.Context(), cfg, args, verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// convertScene runs one conversion, records it when history is enabled and
// applies the strict exit policy.
func convertScene(ctx context.Context, cfg types.Config, args []string, verbose bool, stdout, stderr io.Writer) error {
	input, output := scenePaths(cfg.Conversion, args)

	t := tool.New(cfg.Conversion.Tool, cfg.Conversion.OutputFlag)
	c := convert.ConvertScene(t, input, output, stdout)

	if verbose {
		fmt.Fprintln(stderr, convert.Summary(c))
	}

	if cfg.History.Enabled {
		id, err := recordConversion(ctx, cfg.History, c)
		switch {
		case err != nil:
			fmt.Fprintf(stderr, "warning: %v\n", err)
		case verbose:
			fmt.Fprintf(stderr, "recorded as #%d in %s\n", id, cfg.History.Dir)
		}
	}

	if cfg.Conversion.Strict && !c.Succeeded() {
		return fmt.Errorf("conversion of %s: %s", input, c.Status)
	}
	return nil
}

// scenePaths picks the input and output paths from the positional arguments,
// falling back to the configured pair.
func scenePaths(cfg types.ConversionConfig, args []string) (input, output string) {
	switch len(args) {
	case 2:
		return args[0], args[1]
	case 1:
		return args[0], strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".glb"
	default:
		return cfg.Input, cfg.Output
	}
}

func recordConversion(ctx context.Context, cfg types.HistoryConfig, c types.Conversion) (int64, error) {
	store, err := history.NewStore(cfg)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.Record(ctx, c)
}
