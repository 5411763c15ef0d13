package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scene-convert/internal/tool"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the converter tool is installed",
	Long: `Check looks up the configured converter (usd2gltf by default) on PATH
and reports whether convert will be able to run it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return checkTool(tool.New(cfg.Conversion.Tool, cfg.Conversion.OutputFlag), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkTool(t tool.Tool, w io.Writer) error {
	if !t.Available() {
		fmt.Fprintf(w, "%s tool not found. Please install it and add it to your PATH.\n", t.Name())
		return fmt.Errorf("%s: %w", t.Name(), tool.ErrNotFound)
	}
	fmt.Fprintf(w, "%s found on PATH\n", t.Name())
	return nil
}
