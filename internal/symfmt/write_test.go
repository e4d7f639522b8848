package symfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"xlate/internal/config"
	"xlate/internal/driver"
	"xlate/internal/model"
)

func sampleView(t *testing.T) UnitView {
	t.Helper()
	m := model.Sample()
	res, err := driver.Run(context.Background(), m, 1, driver.Options{Config: config.Default(), Timings: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer res.Close()
	return FromResult(res, Select{Symbols: true, Scopes: true, Renames: true, Timing: true})
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatText, "JSON": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestFromResultSections(t *testing.T) {
	view := sampleView(t)
	if view.Path != "com/ex/Circle.java" {
		t.Fatalf("path = %q", view.Path)
	}
	if len(view.Symbols) == 0 || view.Scopes == nil || view.Timing == nil {
		t.Fatalf("missing sections: %+v", view)
	}
	if view.Scopes.Kind != "global" {
		t.Fatalf("root scope kind = %q", view.Scopes.Kind)
	}
	found := false
	for _, r := range view.Renames {
		if r.From == "Circle" && r.To == "ComExCircle" {
			found = true
		}
	}
	if !found {
		t.Fatalf("rename Circle missing: %+v", view.Renames)
	}
	for _, s := range view.Symbols {
		if s.Name == "ComExCircle" && s.Original != "Circle" {
			t.Fatalf("original not reported: %+v", s)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	view := sampleView(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, []UnitView{view}, Options{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(out.Units) != 1 || len(out.Units[0].Symbols) != len(view.Symbols) {
		t.Fatalf("unexpected json document: %s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	view := sampleView(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, []UnitView{view}, Options{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out Output
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Units) != 1 || out.Units[0].Path != view.Path {
		t.Fatalf("unexpected yaml document:\n%s", buf.String())
	}
}

func TestWriteText(t *testing.T) {
	view := sampleView(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, []UnitView{view}, Options{Width: 60}); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"com/ex/Circle.java", "symbols:", "scopes:", "renames:", "Circle -> ComExCircle"} {
		if !strings.Contains(text, want) {
			t.Fatalf("text output missing %q:\n%s", want, text)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if w := len([]rune(line)); w > 60 {
			t.Fatalf("line exceeds width (%d): %q", w, line)
		}
	}
}
