package driver

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/config"
	"xlate/internal/diag"
	"xlate/internal/model"
	"xlate/internal/source"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) final(unit string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Unit == unit {
			return s.events[i], true
		}
	}
	return Event{}, false
}

func TestRunAllSample(t *testing.T) {
	m := model.Sample()
	sink := &recordingSink{}
	cfg := config.Default()
	cfg.Resolve.Queue = []string{"java.lang.Runnable", "com.ex.Missing"}

	results, err := RunAll(context.Background(), m, Options{Config: cfg, Jobs: 2, Timings: true, Progress: sink})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != len(m.Units) {
		t.Fatalf("results = %d, want %d", len(results), len(m.Units))
	}
	for i, res := range results {
		if res.Path != m.Units[i].Path {
			t.Fatalf("result %d path %q, want %q", i, res.Path, m.Units[i].Path)
		}
		if res.Bag.HasErrors() {
			t.Fatalf("%s: unexpected errors:\n%s", res.Path, diag.FormatShort(res.Bag.Items(), nil, true))
		}
		found := false
		for _, d := range res.Bag.Items() {
			if d.Code == diag.SymUnknownQueuedName {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: missing unknown queued name warning", res.Path)
		}
		runnable, _ := m.Universe.FindType("java.lang.Runnable")
		if _, ok := res.Context.SymbolOf(binding.TypeRef(runnable)); !ok {
			t.Fatalf("%s: queued Runnable not resolved", res.Path)
		}
		if len(res.Timing.Phases) != len(Stages) {
			t.Fatalf("%s: phases = %d, want %d", res.Path, len(res.Timing.Phases), len(Stages))
		}
		evt, ok := sink.final(res.Path)
		if !ok || evt.Status != StatusDone {
			t.Fatalf("%s: final event %+v", res.Path, evt)
		}
		res.Close()
	}

	circle := results[1]
	renamed := map[string]string{}
	for _, r := range circle.Renames {
		renamed[r.From] = r.To
	}
	for from, to := range map[string]string{
		"Circle":     "ComExCircle",
		"initialize": "initialize_",
		"in":         "inArg",
		"id":         "id_",
	} {
		if renamed[from] != to {
			t.Fatalf("rename %q = %q, want %q", from, renamed[from], to)
		}
	}
}

func TestRunBadUnit(t *testing.T) {
	m := model.New()
	m.Units = append(m.Units, model.UnitData{Path: "broken.java", Nodes: []ast.Node{{Kind: ast.NodeStmt}}})

	res, err := Run(context.Background(), m, 0, Options{Config: config.Default()})
	if err == nil {
		t.Fatalf("expected load error")
	}
	if !res.Bag.HasErrors() || res.Bag.Items()[0].Code != diag.ModelBadUnit {
		t.Fatalf("expected ModelBadUnit diagnostic")
	}
}

func TestRunRecoversFatal(t *testing.T) {
	m := model.New()
	u := m.Universe
	intT := u.AddPrimitive("int")
	stray := u.AddVar(binding.VarRecord{Name: "stray", Type: intT})
	unit := ast.NewUnit("Stray.java", source.FileID(1))
	unit.Add(unit.Root(), ast.NodeVarDecl, binding.VarRef(stray))
	m.AddUnit(unit)

	_, err := RunAll(context.Background(), m, Options{Config: config.Default()})
	pe, ok := FirstPanic(err)
	if !ok {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if pe.Unit != "Stray.java" || len(pe.Stack) == 0 {
		t.Fatalf("unexpected panic error %+v", pe)
	}
}

func TestRunWarnsOnUnboundDeclaration(t *testing.T) {
	m := model.New()
	unit := ast.NewUnit("Odd.java", source.FileID(1))
	n := unit.Add(unit.Root(), ast.NodeTypeDecl, binding.NoRef)
	unit.Node(n).Label = "Odd"
	m.AddUnit(unit)

	res, err := Run(context.Background(), m, 0, Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer res.Close()
	if !res.Bag.HasWarnings() || res.Bag.Items()[0].Code != diag.SymMissingDeclaration {
		t.Fatalf("expected SymMissingDeclaration, got %s", diag.FormatShort(res.Bag.Items(), nil, false))
	}
}

func TestRunRecoversCyclicSupertypes(t *testing.T) {
	m := model.New()
	u := m.Universe
	a := u.AddClass("com.ex", "A", binding.NoTypeID)
	b := u.AddClass("com.ex", "B", a)
	u.Type(a).Super = b
	unit := ast.NewUnit("A.java", source.FileID(1))
	unit.Add(unit.Root(), ast.NodeTypeDecl, binding.TypeRef(a))
	m.AddUnit(unit)

	_, err := Run(context.Background(), m, 0, Options{Config: config.Default()})
	pe, ok := FirstPanic(err)
	if !ok {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if !strings.Contains(fmt.Sprint(pe.Value), "cyclic supertype chain") {
		t.Fatalf("unexpected panic value %v", pe.Value)
	}
}

func TestRunRejectsSelfRootedUnit(t *testing.T) {
	m := model.New()
	m.Units = append(m.Units, model.UnitData{
		Path:  "Loop.java",
		Nodes: []ast.Node{{Kind: ast.NodeUnit, Parent: 1, Children: []ast.NodeID{1}}},
	})
	res, err := Run(context.Background(), m, 0, Options{Config: config.Default()})
	if err == nil {
		t.Fatalf("expected load error")
	}
	if _, fatal := FirstPanic(err); fatal {
		t.Fatalf("malformed tree should fail to load, not panic: %v", err)
	}
	if res.Bag.Items()[0].Code != diag.ModelBadUnit {
		t.Fatalf("expected ModelBadUnit diagnostic")
	}
}
