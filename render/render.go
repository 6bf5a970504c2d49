// Package render turns a parsed schedule into something people read: the
// filterable HTML page, or a YAML dump of the model for checking a sheet.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Nydauron/scvl2html/schedule"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatHTML, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be html or yaml)", name)
	}
}

func Write(w io.Writer, s *schedule.Schedule, format Format) error {
	switch format {
	case FormatYAML:
		return YAML(w, s)
	case FormatHTML:
		return HTML(w, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func YAML(w io.Writer, s *schedule.Schedule) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}
