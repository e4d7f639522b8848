package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.Track("resolve", func() string { return "9 symbols" })
	idx := timer.Begin("rename")
	timer.End(idx, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "resolve" || report.Phases[0].Note != "9 symbols" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	if _, ok := timer.Duration("rename"); !ok {
		t.Fatalf("rename phase not found")
	}
	if _, ok := timer.Duration("missing"); ok {
		t.Fatalf("unexpected phase")
	}
	summary := timer.Summary()
	if !strings.Contains(summary, "// 9 symbols") || !strings.Contains(summary, "total") {
		t.Fatalf("summary:\n%s", summary)
	}
	if got := NewTimer().Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Fatalf("empty timer report = %+v", got)
	}
}
