package diag

import (
	"testing"

	"xlate/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	later := NewError(SymInvariantViolation, source.Span{File: 1, Start: 10, End: 12}, "later")
	earlier := New(SevWarning, SymUnsupportedFreeFunction, source.Span{File: 1, Start: 1, End: 2}, "earlier")

	if !bag.Add(later) || !bag.Add(earlier) {
		t.Fatalf("expected both diagnostics to fit")
	}
	if bag.Add(earlier) {
		t.Fatalf("bag accepted a diagnostic past its limit")
	}

	bag.Sort()
	if bag.Items()[0].Message != "earlier" {
		t.Fatalf("sort did not order by span start")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("severity predicates wrong")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 2, Start: 3, End: 4}

	ReportWarning(r, SymUnsupportedFreeFunction, sp, "free function f").Emit()
	ReportWarning(r, SymUnsupportedFreeFunction, sp, "free function f").Emit()
	ReportWarning(r, SymUnsupportedFreeFunction, sp, "free function g").Emit()

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("suppressed = %d, want 1", r.Suppressed())
	}
}

func TestNilReporterBuilder(t *testing.T) {
	// must not panic
	ReportError(nil, SymInvariantViolation, source.Span{}, "dropped").WithNote(source.Span{}, "note").Emit()
}

func TestFormatShort(t *testing.T) {
	items := []Diagnostic{
		New(SevWarning, SymUnsupportedFreeFunction, source.Span{File: 1, Start: 0, End: 1}, "method  main\nhas no type").
			WithNote(source.Span{}, "declared here"),
	}
	paths := func(id source.FileID) string {
		if id == 1 {
			return "Main.java"
		}
		return ""
	}
	want := "warning SYM3001 Main.java method main has no type\n" +
		"note SYM3001 <synthetic> declared here"
	if got := FormatShort(items, paths, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}
