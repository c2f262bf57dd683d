package cells

import (
	"context"
	"sync"
	"time"
)

// ConcurrencyDiscipline governs how repeated invocations of the same async
// handler interact.
type ConcurrencyDiscipline uint8

const (
	// Supersede cancels a still-running previous call and starts immediately.
	Supersede ConcurrencyDiscipline = iota
	// Queue runs calls one at a time, FIFO, in arrival order.
	Queue
	// Debounce delays execution until dt has elapsed with no further calls.
	Debounce
)

// AsyncHandler is a handler body invoked on the task pool. It receives a
// context carrying the invocation's cancellation token; handlers that spawn
// long-running awaits should check ctx.Err() (or select on ctx.Done()) at
// cooperative checkpoints.
type AsyncHandler func(ctx context.Context)

// HandlerOutcome reports how one invocation of an async handler ended.
// Tests use this to assert dispatch-discipline behavior without racing on
// handler side effects directly.
type HandlerOutcome uint8

const (
	OutcomeCompleted HandlerOutcome = iota
	OutcomeCancelled
)

// AsyncDispatcher schedules async handlers under one of three concurrency
// disciplines, owning the cancellation token for each invocation. One
// AsyncDispatcher is owned by one app instance. Handler bodies run on the
// goroutine that calls Invoke (App.InvokeAsync starts one per call), so the
// dispatcher does not keep them from running alongside the frame loop.
type AsyncDispatcher struct {
	mu       sync.Mutex
	handlers map[string]*dispatchSlot
	onDone   func(name string, outcome HandlerOutcome)
}

// dispatchSlot holds the per-handler-name scheduling state.
type dispatchSlot struct {
	discipline ConcurrencyDiscipline
	debounceDt time.Duration

	cancel    context.CancelFunc // of the currently-running (or pending) call
	running   bool
	queue     []func()   // pending bodies for Queue discipline
	debTimer  *time.Timer
	debCancel context.CancelFunc
}

// NewAsyncDispatcher creates a dispatcher. onDone, if non-nil, is called
// from the goroutine running each invocation as it finishes; it must not
// block and must not touch app/instance state directly (post through the
// event queue instead).
func NewAsyncDispatcher(onDone func(name string, outcome HandlerOutcome)) *AsyncDispatcher {
	return &AsyncDispatcher{
		handlers: make(map[string]*dispatchSlot),
		onDone:   onDone,
	}
}

// Register associates a handler name with a concurrency discipline. debounceDt
// is only meaningful for Debounce. Call once per handler name, typically
// during app construction.
func (d *AsyncDispatcher) Register(name string, discipline ConcurrencyDiscipline, debounceDt time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = &dispatchSlot{discipline: discipline, debounceDt: debounceDt}
}

// EnsureRegistered registers name with discipline/debounceDt only if it has
// no registration yet, leaving an existing slot's in-flight state (pending
// cancel funcs, queue) untouched. Callers that register a handler lazily
// from inside a repeatedly-invoked callback (e.g. on every keystroke)
// should use this instead of Register to avoid clobbering state mid-flight.
func (d *AsyncDispatcher) EnsureRegistered(name string, discipline ConcurrencyDiscipline, debounceDt time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handlers[name]; !ok {
		d.handlers[name] = &dispatchSlot{discipline: discipline, debounceDt: debounceDt}
	}
}

// Invoke schedules one call of the named handler according to its
// registered discipline. Invoke itself never blocks.
func (d *AsyncDispatcher) Invoke(name string, handler AsyncHandler) {
	d.mu.Lock()
	slot, ok := d.handlers[name]
	if !ok {
		slot = &dispatchSlot{discipline: Supersede}
		d.handlers[name] = slot
	}

	switch slot.discipline {
	case Supersede:
		if slot.cancel != nil {
			slot.cancel()
		}
		ctx, cancel := context.WithCancel(context.Background())
		slot.cancel = cancel
		d.mu.Unlock()
		d.run(name, ctx, handler)

	case Queue:
		ctx, cancel := context.WithCancel(context.Background())
		body := func() { d.run(name, ctx, handler) }
		_ = cancel // queue entries are never individually cancelled
		if slot.running {
			slot.queue = append(slot.queue, body)
			d.mu.Unlock()
			return
		}
		slot.running = true
		d.mu.Unlock()
		body()

	case Debounce:
		if slot.debCancel != nil {
			slot.debCancel()
		}
		if slot.debTimer != nil {
			slot.debTimer.Stop()
		}
		ctx, cancel := context.WithCancel(context.Background())
		slot.debCancel = cancel
		slot.debTimer = time.AfterFunc(slot.debounceDt, func() {
			d.run(name, ctx, handler)
		})
		d.mu.Unlock()
	}
}

// run executes one invocation synchronously on the caller's goroutine
// (callers that want background execution should invoke Invoke from a
// goroutine of their own; the dispatcher's job is discipline, not
// threading policy).
func (d *AsyncDispatcher) run(name string, ctx context.Context, handler AsyncHandler) {
	handler(ctx)

	outcome := OutcomeCompleted
	if ctx.Err() != nil {
		outcome = OutcomeCancelled
	}
	if d.onDone != nil {
		d.onDone(name, outcome)
	}

	d.mu.Lock()
	slot := d.handlers[name]
	if slot != nil && slot.discipline == Queue {
		if len(slot.queue) > 0 {
			next := slot.queue[0]
			slot.queue = slot.queue[1:]
			d.mu.Unlock()
			next()
			return
		}
		slot.running = false
	}
	d.mu.Unlock()
}

// Cancel fires the cancellation token for the named handler's current (or
// pending, for Debounce) invocation, if any.
func (d *AsyncDispatcher) Cancel(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.handlers[name]
	if !ok {
		return
	}
	if slot.cancel != nil {
		slot.cancel()
	}
	if slot.debCancel != nil {
		slot.debCancel()
	}
	if slot.debTimer != nil {
		slot.debTimer.Stop()
	}
}

// Cancelled reports whether ctx's handler invocation has been cancelled.
// A thin, readable wrapper over ctx.Err() for handler bodies.
func Cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

// PanicBehavior controls what happens when a handler panics.
type PanicBehavior uint8

const (
	// ShowError logs the panic and reports it to the global error handler,
	// leaving instance state untouched.
	ShowError PanicBehavior = iota
	// RestartApp drops the instance and reconstructs it fresh, preserving its id.
	RestartApp
	// CrashRuntime propagates the panic; the frame loop terminates.
	CrashRuntime
)

// RunGuarded invokes fn, recovering any panic according to behavior. onError
// receives the recovered value for ShowError/RestartApp; for CrashRuntime
// the panic is re-raised after onError returns.
func RunGuarded(behavior PanicBehavior, fn func(), onError func(recovered any)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if onError != nil {
			onError(r)
		}
		if behavior == CrashRuntime {
			panic(r)
		}
	}()
	fn()
}
