// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scene-convert CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scene-convert/internal/tool"
	"github.com/pdiddy/scene-convert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultInput      = "Scenes/universalrobots-ur3e.usd"
	defaultOutput     = "Scenes/universalrobots-ur3e.glb"
	defaultHistoryDir = ".scene-convert"
)

// rootCmd is the base command for the scene-convert CLI.
var rootCmd = &cobra.Command{
	Use:   "scene-convert",
	Short: "Convert USD scenes to glTF with usd2gltf",
	Long: `scene-convert wraps the usd2gltf tool to turn a USD scene into a glTF or
GLB file. The conversion itself is done entirely by usd2gltf, which must be
installed and on PATH; scene-convert checks the input, runs the tool once,
and reports what happened.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scene-convert.yaml or ~/.config/scene-convert/config.yaml)")
	rootCmd.PersistentFlags().String("tool", "", "converter executable (default: usd2gltf)")
	rootCmd.PersistentFlags().String("history-dir", "", "directory for the conversion history database (default: .scene-convert)")

	_ = viper.BindPFlag("conversion.tool", rootCmd.PersistentFlags().Lookup("tool"))
	_ = viper.BindPFlag("history.dir", rootCmd.PersistentFlags().Lookup("history-dir"))

	setDefaults(viper.GetViper())
}

// setDefaults registers the built-in configuration values on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("conversion.tool", tool.DefaultName)
	v.SetDefault("conversion.output_flag", tool.DefaultOutputFlag)
	v.SetDefault("conversion.input", defaultInput)
	v.SetDefault("conversion.output", defaultOutput)
	v.SetDefault("conversion.strict", false)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.dir", defaultHistoryDir)
	v.SetDefault("history.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scene-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scene-convert"))
		}
	}

	viper.SetEnvPrefix("SCENE_CONVERT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, file and default settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
