package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID should map to empty string, got %q ok=%v", s, ok)
	}

	first := interner.Intern("Foo")
	if first == NoStringID {
		t.Fatalf("non-empty string must not intern to NoStringID")
	}
	if again := interner.Intern("Foo"); again != first {
		t.Fatalf("expected stable ID, got %d and %d", first, again)
	}
	other := interner.Intern("Bar")
	if other == first {
		t.Fatalf("distinct strings share ID %d", other)
	}
	if got := interner.MustLookup(other); got != "Bar" {
		t.Fatalf("lookup returned %q", got)
	}
	if interner.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", interner.Len())
	}
}

func TestInternerUnknownID(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Lookup(StringID(42)); ok {
		t.Fatalf("expected lookup of unknown ID to fail")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustLookup should panic on unknown ID")
		}
	}()
	interner.MustLookup(StringID(42))
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("unexpected cover %v", got)
	}
	if other := a.Cover(Span{File: 2, Start: 0, End: 100}); other != a {
		t.Fatalf("cover across files should be a no-op, got %v", other)
	}
	if (Span{}).String() != "<synthetic>" {
		t.Fatalf("zero span should render as synthetic")
	}
}
