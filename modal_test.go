package cells

import "testing"

type stubRenderable struct {
	name  string
	dirty bool
}

func (s *stubRenderable) Render(buf *Buffer, width, height int) {}
func (s *stubRenderable) MarkDirty()                             { s.dirty = true }
func (s *stubRenderable) IsDirty() bool                          { return s.dirty }

func TestModalStack_PushPopOrdering(t *testing.T) {
	s := NewModalStack()

	m1 := NewModal[int](&stubRenderable{name: "first"})
	Push(s, m1, "field-1", -1)

	m2 := NewModal[int](&stubRenderable{name: "second"})
	Push(s, m2, "field-2", -1)

	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", s.Depth())
	}
	if top, ok := s.Top().(*stubRenderable); !ok || top.name != "second" {
		t.Errorf("Top() = %v, want second", s.Top())
	}

	restore, ok := s.Pop()
	if !ok || restore != "field-2" {
		t.Errorf("Pop() = (%q, %v), want (field-2, true)", restore, ok)
	}
	if top, ok := s.Top().(*stubRenderable); !ok || top.name != "first" {
		t.Errorf("Top() after pop = %v, want first", s.Top())
	}
}

func TestModalStack_OverlaysBottommostFirst(t *testing.T) {
	s := NewModalStack()
	m1 := NewModal[int](&stubRenderable{name: "bottom"})
	Push(s, m1, "", -1)
	m2 := NewModal[int](&stubRenderable{name: "top"})
	Push(s, m2, "", -1)

	overlays := s.Overlays()
	if len(overlays) != 2 {
		t.Fatalf("Overlays() len = %d, want 2", len(overlays))
	}
	if overlays[0].(*stubRenderable).name != "bottom" || overlays[1].(*stubRenderable).name != "top" {
		t.Errorf("Overlays() order = %v, want [bottom, top]", overlays)
	}
}

func TestModal_ResolveIsIdempotent(t *testing.T) {
	m := NewModal[string](&stubRenderable{})
	m.Resolve("first")
	m.Resolve("second") // should be a no-op

	if got := m.Await(); got != "first" {
		t.Errorf("Await() = %q, want %q", got, "first")
	}
}

func TestModalStack_PopForceResolvesUnresolvedModal(t *testing.T) {
	s := NewModalStack()
	m := NewModal[int](&stubRenderable{})
	Push(s, m, "prev", -1)

	s.Pop()

	if got := m.Await(); got != -1 {
		t.Errorf("Await() after forced Pop = %d, want fallback -1", got)
	}
}

func TestModalStack_PopOnEmptyStack(t *testing.T) {
	s := NewModalStack()
	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack should return ok = false")
	}
	if s.Top() != nil {
		t.Error("Top() on empty stack should be nil")
	}
	if s.IsOpen() {
		t.Error("IsOpen() on empty stack should be false")
	}
}

func TestModalStack_IsOpenAndDepth(t *testing.T) {
	s := NewModalStack()
	if s.IsOpen() {
		t.Error("new stack should not be open")
	}

	m := NewModal[int](&stubRenderable{})
	Push(s, m, "", 0)
	if !s.IsOpen() || s.Depth() != 1 {
		t.Errorf("IsOpen()/Depth() = %v/%d, want true/1", s.IsOpen(), s.Depth())
	}
}
