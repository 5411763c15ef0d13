// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for a single scene conversion.
type ConversionConfig struct {
	// Tool is the external converter executable, resolved on PATH (default "usd2gltf").
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// OutputFlag designates the output path on the tool's command line (default "-o").
	OutputFlag string `json:"output_flag" yaml:"output_flag" mapstructure:"output_flag"`

	// Input is the USD scene to convert when no path is given on the command line.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the glTF/GLB destination when no path is given on the command line.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Strict turns any outcome other than a successful conversion into a
	// non-zero process exit.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// HistoryConfig holds settings for the optional conversion history.
type HistoryConfig struct {
	// Enabled records every attempt made by the convert command.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir holds the history database (e.g. ".scene-convert/").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of records listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
}
