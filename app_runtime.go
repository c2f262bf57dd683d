package cells

import "time"

// InstanceID returns the instance id this app was spawned with, or the
// empty string for an app not running under an InstanceManager.
func (a *App) InstanceID() InstanceId {
	return a.id
}

// Async returns this app's async handler dispatcher, lazily creating one
// on first use so that apps constructed without an InstanceManager still
// get supersede/queue/debounce scheduling.
func (a *App) Async() *AsyncDispatcher {
	if a.async == nil {
		a.async = NewAsyncDispatcher(nil)
	}
	return a.async
}

// Modals returns this app's modal stack.
func (a *App) Modals() *ModalStack {
	return a.modals
}

// Animator returns this app's animation engine, lazily creating one so apps
// built directly (bypassing NewApp/NewAppWithReader, e.g. in tests) still
// get transition tracking on first use.
func (a *App) Animator() *Animator {
	if a.animator == nil {
		a.animator = NewAnimator()
	}
	return a.animator
}

// InvokeAsync schedules handler on this app's async dispatcher under name,
// registering name for discipline on first use (later calls reuse the
// existing registration rather than resetting its in-flight state). The
// handler body runs on a goroutine of its own, never on the frame loop, so
// a Supersede/Debounce handler's cancellation and a Queue handler's
// sequencing are real even though the caller (a key or click binding) is
// itself synchronous.
func (a *App) InvokeAsync(name string, discipline ConcurrencyDiscipline, debounceDt time.Duration, handler AsyncHandler) {
	async := a.Async()
	async.EnsureRegistered(name, discipline, debounceDt)
	go async.Invoke(name, handler)
}

// SetPanicBehavior sets how this app's dispatcher reacts to a handler
// panic. Defaults to ShowError.
func (a *App) SetPanicBehavior(b PanicBehavior) {
	a.panicBehavior = b
}

// PanicBehavior returns this app's configured panic policy.
func (a *App) PanicBehavior() PanicBehavior {
	return a.panicBehavior
}
