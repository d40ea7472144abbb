package list

import (
	"fmt"
	"slices"
)

// OutputFormat controls how the project list is rendered.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTOML  OutputFormat = "toml"
)

var validFormats = []OutputFormat{FormatText, FormatTable, FormatJSON, FormatYAML, FormatTOML}

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	f := OutputFormat(s)
	if !slices.Contains(validFormats, f) {
		return "", fmt.Errorf("unknown format %q (valid: text, table, json, yaml, toml)", s)
	}
	return f, nil
}

// entry is the serialised form of one project.
type entry struct {
	Name      string `yaml:"name" toml:"name"`
	Version   string `yaml:"version,omitempty" toml:"version,omitempty"`
	Versioned bool   `yaml:"versioned" toml:"versioned"`
	Marker    string `yaml:"marker" toml:"marker"`
}

// document is the top-level serialised list.
type document struct {
	Root     string  `yaml:"root" toml:"root"`
	Projects []entry `yaml:"projects" toml:"projects"`
}
