package cells

import "sync"

// ResourceState tags which variant a Resource currently holds.
type ResourceState uint8

const (
	ResourceIdle ResourceState = iota
	ResourceLoading
	ResourceProgress
	ResourceReady
	ResourceError
)

// ResourceErrorInfo carries a machine-readable kind plus a human message for
// the Error variant.
type ResourceErrorInfo struct {
	Kind    string
	Message string
}

// Resource is a change-tracked cell for async operations: idle, loading,
// reporting progress, ready with a value, or failed with an error. Like
// State, every transition marks the owning app dirty, and Resource is safe
// to mutate from both synchronous handlers and background goroutines.
type Resource[T any] struct {
	mu       sync.RWMutex
	state    ResourceState
	value    T
	current  int
	total    int
	hasTotal bool
	message  string
	err      ResourceErrorInfo
	app      *App
}

// NewResource creates an idle resource.
func NewResource[T any]() *Resource[T] {
	app := DefaultApp()
	if app == nil {
		panic("tui.NewResource requires a default app; call SetDefaultApp or use NewResourceForApp")
	}
	return NewResourceForApp[T](app)
}

// NewResourceForApp creates an idle resource bound to the provided app.
func NewResourceForApp[T any](app *App) *Resource[T] {
	if app == nil {
		panic("tui: nil app in NewResourceForApp")
	}
	return &Resource[T]{app: app}
}

// State returns the resource's current variant.
func (r *Resource[T]) State() ResourceState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Value returns the value set by the last SetReady, and whether the
// resource is currently Ready. A stale value (from before a subsequent
// SetLoading/SetError) is never returned once the state has moved on.
func (r *Resource[T]) Value() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state != ResourceReady {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Progress returns the current/total/message set by the last SetProgress,
// and whether the resource is currently in the Progress state. total is
// reported via hasTotal since it is optional.
func (r *Resource[T]) Progress() (current, total int, hasTotal bool, message string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.total, r.hasTotal, r.message, r.state == ResourceProgress
}

// Err returns the error info set by the last SetError, and whether the
// resource is currently in the Error state.
func (r *Resource[T]) Err() (ResourceErrorInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err, r.state == ResourceError
}

// SetIdle resets the resource to its initial, empty state.
func (r *Resource[T]) SetIdle() {
	r.transition(func() {
		r.state = ResourceIdle
	})
}

// SetLoading marks the resource as in flight with no progress detail yet.
func (r *Resource[T]) SetLoading() {
	r.transition(func() {
		r.state = ResourceLoading
	})
}

// SetProgress reports partial completion. total is optional; pass
// hasTotal=false when the size of the work is unknown.
func (r *Resource[T]) SetProgress(current, total int, hasTotal bool, message string) {
	r.transition(func() {
		r.state = ResourceProgress
		r.current = current
		r.total = total
		r.hasTotal = hasTotal
		r.message = message
	})
}

// SetReady stores the resource's final value.
func (r *Resource[T]) SetReady(v T) {
	r.transition(func() {
		r.state = ResourceReady
		r.value = v
	})
}

// SetError marks the resource as failed. The error never propagates past
// the handler that calls SetError; callers observe it via Err().
func (r *Resource[T]) SetError(kind, message string) {
	r.transition(func() {
		r.state = ResourceError
		r.err = ResourceErrorInfo{Kind: kind, Message: message}
	})
}

func (r *Resource[T]) transition(mutate func()) {
	app := r.resolveApp()
	r.mu.Lock()
	mutate()
	r.mu.Unlock()
	app.MarkDirty()
}

func (r *Resource[T]) resolveApp() *App {
	r.mu.RLock()
	app := r.app
	r.mu.RUnlock()
	if app != nil {
		return app
	}
	app = DefaultApp()
	if app == nil {
		panic("tui.Resource used without app context; use NewResourceForApp or SetDefaultApp")
	}
	r.mu.Lock()
	if r.app == nil {
		r.app = app
	}
	r.mu.Unlock()
	return app
}
