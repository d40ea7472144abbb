package list

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/printer"
)

// Formatter renders discovered projects.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a Formatter for format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// Format renders projects found under root.
func (f *Formatter) Format(root string, projects []discovery.Project) (string, error) {
	doc := toDocument(root, projects)
	switch f.format {
	case FormatTable:
		return formatTable(doc), nil
	case FormatJSON:
		return formatJSON(doc)
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		return string(out), err
	case FormatTOML:
		out, err := toml.Marshal(doc)
		return string(out), err
	default:
		return formatText(doc), nil
	}
}

func toDocument(root string, projects []discovery.Project) document {
	doc := document{Root: root, Projects: make([]entry, 0, len(projects))}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, entry{
			Name:      p.Name,
			Version:   p.Version,
			Versioned: p.Versioned,
			Marker:    p.MarkerPath,
		})
	}
	return doc
}

func formatText(doc document) string {
	var sb strings.Builder
	sb.WriteString(printer.Info("Projects in " + doc.Root))
	sb.WriteString("\n")

	if len(doc.Projects) == 0 {
		sb.WriteString(printer.Faint("  (none)"))
		sb.WriteString("\n")
		return sb.String()
	}
	for _, e := range doc.Projects {
		if e.Versioned {
			fmt.Fprintf(&sb, "  %s %s %s\n", printer.Success("✓"), e.Name, printer.Faint("("+e.Version+")"))
		} else {
			fmt.Fprintf(&sb, "  %s %s %s\n", printer.Faint("-"), e.Name, printer.Faint("(no version marker)"))
		}
	}
	return sb.String()
}

func formatTable(doc document) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Project", "Version", "Marker"})
	for _, e := range doc.Projects {
		version := e.Version
		if !e.Versioned {
			version = "-"
		}
		t.AppendRow(table.Row{e.Name, version, e.Marker})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render() + "\n"
}

// formatJSON assembles the document field by field so key order is stable.
func formatJSON(doc document) (string, error) {
	out, err := sjson.Set(`{}`, "root", doc.Root)
	if err != nil {
		return "", err
	}
	out, err = sjson.SetRaw(out, "projects", "[]")
	if err != nil {
		return "", err
	}
	for i, e := range doc.Projects {
		prefix := "projects." + strconv.Itoa(i) + "."
		fields := []struct {
			key string
			val any
		}{
			{"name", e.Name},
			{"version", e.Version},
			{"versioned", e.Versioned},
			{"marker", e.Marker},
		}
		for _, fv := range fields {
			if out, err = sjson.Set(out, prefix+fv.key, fv.val); err != nil {
				return "", err
			}
		}
	}
	return out + "\n", nil
}
