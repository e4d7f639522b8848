package diag

import (
	"strings"

	"xlate/internal/source"
)

// FormatShort renders one line per diagnostic:
//
//	<severity> <ID> <path>:<span> <message>
//
// pathOf maps file IDs to display paths; nil falls back to the span text.
func FormatShort(items []Diagnostic, pathOf func(source.FileID) string, includeNotes bool) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	line := func(sev, id string, sp source.Span, msg string) {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(sev)
		sb.WriteByte(' ')
		sb.WriteString(id)
		sb.WriteByte(' ')
		sb.WriteString(location(sp, pathOf))
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(strings.Fields(msg), " "))
	}
	for _, d := range items {
		line(d.Severity.Label(), d.Code.ID(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			line("note", d.Code.ID(), n.Span, n.Msg)
		}
	}
	return sb.String()
}

func location(sp source.Span, pathOf func(source.FileID) string) string {
	if pathOf == nil || !sp.File.IsValid() {
		return sp.String()
	}
	path := pathOf(sp.File)
	if path == "" {
		return sp.String()
	}
	return path
}
