package ui

import (
	"strings"
	"testing"

	"xlate/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	m := NewProgressModel("resolve", []string{"a.java", "b.java"}, nil).(*progressModel)

	m.applyEvent(driver.Event{Unit: "a.java", Stage: driver.StageResolve, Status: driver.StatusWorking})
	if m.items[0].status != "resolving" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{Unit: "a.java", Stage: driver.StageValidate, Status: driver.StatusDone})
	m.applyEvent(driver.Event{Unit: "b.java", Stage: driver.StageLoad, Status: driver.StatusError})
	// late events after a final one are ignored
	m.applyEvent(driver.Event{Unit: "a.java", Stage: driver.StageLoad, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{Unit: "unknown.java", Status: driver.StatusDone})

	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Fatalf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if m.failed != 1 {
		t.Fatalf("failed = %d", m.failed)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v", got)
	}
	m.done = true
	if view := m.View(); !strings.Contains(view, "1 failed") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("com/example/VeryLongName.java", 10); got != "com/exa..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
