package cells

import "sync"

// Modal is a renderable, focus-exclusive overlay pushed onto an instance's
// ModalStack. T is the type of result the modal resolves with when closed.
type Modal[T any] struct {
	Root    Renderable
	resolve chan T
	once    sync.Once
}

// NewModal wraps a root element as a modal. Callers obtain the result by
// calling Await.
func NewModal[T any](root Renderable) *Modal[T] {
	return &Modal[T]{Root: root, resolve: make(chan T, 1)}
}

// Resolve closes the modal with result v. Only the first call has effect;
// subsequent calls are no-ops, matching "closing a modal resolves the
// awaiting caller exactly once."
func (m *Modal[T]) Resolve(v T) {
	m.once.Do(func() {
		m.resolve <- v
	})
}

// Await blocks until the modal is resolved and returns its result. Must
// not be called from the frame-loop goroutine (it would deadlock); use it
// from an async handler instead.
func (m *Modal[T]) Await() T {
	return <-m.resolve
}

// modalEntry type-erases a Modal[T] so heterogeneous modal types can share
// one stack.
type modalEntry struct {
	root     Renderable
	resolver func() // closes over the concrete Modal[T] and its zero-value fallback
}

// ModalStack holds the nested modals open for one app instance. While
// non-empty, the topmost modal is the exclusive input target; closing it
// returns focus to whatever was focused before it opened.
type ModalStack struct {
	mu            sync.Mutex
	entries       []modalEntry
	savedFocusIDs []string
}

// NewModalStack creates an empty stack.
func NewModalStack() *ModalStack {
	return &ModalStack{}
}

// Push opens modal atop the stack, saving the given previously-focused id
// so Pop can restore it. Returns a cancel func that force-resolves the
// modal with the given fallback if the stack is torn down (e.g. instance
// close) before the modal resolves itself.
func Push[T any](s *ModalStack, modal *Modal[T], previousFocusID string, fallback T) (cancel func()) {
	s.mu.Lock()
	s.entries = append(s.entries, modalEntry{
		root:     modal.Root,
		resolver: func() { modal.Resolve(fallback) },
	})
	s.savedFocusIDs = append(s.savedFocusIDs, previousFocusID)
	s.mu.Unlock()

	return func() { modal.Resolve(fallback) }
}

// Pop closes the topmost modal, force-resolving it with its registered
// fallback if it has not already resolved itself, and returns the focus id
// that was active before it opened.
func (s *ModalStack) Pop() (restoreFocusID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	if n == 0 {
		return "", false
	}
	top := s.entries[n-1]
	s.entries = s.entries[:n-1]
	restoreFocusID = s.savedFocusIDs[n-1]
	s.savedFocusIDs = s.savedFocusIDs[:n-1]

	top.resolver()
	return restoreFocusID, true
}

// Top returns the topmost modal's root, for rendering, or nil if the stack
// is empty.
func (s *ModalStack) Top() Renderable {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].root
}

// Overlays returns every open modal's root, bottommost first, for
// compositing atop the instance's normal view.
func (s *ModalStack) Overlays() []Renderable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Renderable, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.root
	}
	return out
}

// IsOpen reports whether any modal is currently open.
func (s *ModalStack) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) > 0
}

// Depth returns the number of currently-open modals.
func (s *ModalStack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
