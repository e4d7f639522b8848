package symfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml and yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "pretty":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Options tune text output.
type Options struct {
	Color bool
	// Width truncates text lines; zero disables truncation.
	Width int
}

// Output is the document root for structured encodings.
type Output struct {
	Units []UnitView `json:"units" yaml:"units"`
}

var (
	pathColor   = color.New(color.FgCyan, color.Bold)
	kindColor   = color.New(color.FgYellow)
	renameColor = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

// Write encodes units to w.
func Write(w io.Writer, format Format, units []UnitView, opts Options) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Output{Units: units})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Output{Units: units}); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		p := &printer{w: w, opts: opts}
		for i := range units {
			p.unit(&units[i])
		}
		return p.err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

type printer struct {
	w    io.Writer
	opts Options
	err  error
}

func (p *printer) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func (p *printer) line(indent int, format string, args ...any) {
	if p.err != nil {
		return
	}
	text := strings.Repeat("  ", indent) + fmt.Sprintf(format, args...)
	if p.opts.Width > 0 && !p.opts.Color {
		text = runewidth.Truncate(text, p.opts.Width, "…")
	}
	_, p.err = fmt.Fprintln(p.w, text)
}

func (p *printer) unit(u *UnitView) {
	p.line(0, "%s", p.paint(pathColor, u.Path))
	if len(u.Symbols) > 0 {
		p.line(1, "symbols:")
		for _, s := range u.Symbols {
			p.symbol(&s)
		}
	}
	if u.Scopes != nil {
		p.line(1, "scopes:")
		p.scope(u.Scopes, 2)
	}
	if len(u.Renames) > 0 {
		p.line(1, "renames:")
		for _, r := range u.Renames {
			p.line(2, "%-8s %s -> %s", p.paint(kindColor, r.Kind), r.From, p.paint(renameColor, r.To))
		}
	}
	if u.Timing != nil && len(u.Timing.Phases) > 0 {
		p.line(1, "timings (%.2fms):", u.Timing.TotalMS)
		for _, ph := range u.Timing.Phases {
			p.line(2, "%-10s %8.2fms %s", ph.Name, ph.DurationMS, p.paint(dimColor, ph.Note))
		}
	}
	for _, d := range u.Diagnostics {
		p.line(1, "%s", d)
	}
}

func (p *printer) symbol(s *SymbolView) {
	name := s.Name
	if s.Original != "" {
		name = fmt.Sprintf("%s (was %s)", s.Name, s.Original)
	}
	extra := ""
	if s.Qualified != "" {
		extra = " " + s.Qualified
	}
	if len(s.Flags) > 0 {
		extra += " [" + strings.Join(s.Flags, ",") + "]"
	}
	p.line(2, "#%-3d %-8s %s %s%s", s.ID, p.paint(kindColor, s.Kind), name,
		p.paint(dimColor, fmt.Sprintf("scope#%d %s", s.Scope, s.Binding)), extra)
}

func (p *printer) scope(s *ScopeView, indent int) {
	head := fmt.Sprintf("scope#%d %s", s.ID, p.paint(kindColor, s.Kind))
	if s.Owner != "" {
		head += " " + s.Owner
	}
	if len(s.Names) > 0 {
		head += " {" + strings.Join(s.Names, ", ") + "}"
	}
	p.line(indent, "%s", head)
	for i := range s.Children {
		p.scope(&s.Children[i], indent+1)
	}
}
