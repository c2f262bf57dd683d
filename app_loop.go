package cells

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"time"
)

// idleFrameDuration is the loop tick used when no animation transition is in
// flight. Slower than frameDuration since there's nothing to interpolate.
const idleFrameDuration = 200 * time.Millisecond

// Run starts the main event loop. Blocks until Stop() is called, SIGINT is
// received, or a later Run, RunBackground, or Relinquish call takes over.
// After the initial render, rendering occurs only when the dirty flag is set
// (by mutations) or an animation transition is still in flight.
func (a *App) Run() error {
	// Claim a fresh generation: readInputEvents and the loop below both exit
	// as soon as a later Run, RunBackground, or Relinquish call bumps
	// a.runGen again, which is how Runtime takes the Terminal away from this
	// instance without closing its stopCh.
	myGen := atomic.AddInt64(&a.runGen, 1)

	// Set current app for package-level Stop(), saving previous for nested apps
	prevApp := currentApp
	currentApp = a
	defer func() { currentApp = prevApp }()

	// Handle Ctrl+C gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			a.Stop()
		case <-a.stopCh:
			// App already stopped, clean up signal handler
		}
		signal.Stop(sigCh)
	}()

	// Start input reader in background
	go a.readInputEvents(myGen)

	// Initial render
	a.Render()
	a.rebuildDispatchTable()

	// Frame-based loop with configurable frame timing. The tick shortens to
	// frameDuration while a transition is in flight and relaxes to
	// idleFrameDuration otherwise, so an idle UI doesn't spin at 60fps.
	for !a.stopped && atomic.LoadInt64(&a.runGen) == myGen {
		frameStart := time.Now()

		tick := idleFrameDuration
		if a.Animator().HasActive(frameStart) {
			tick = a.frameDuration
		}

		// Process events for up to half the frame budget (non-blocking)
		eventDeadline := frameStart.Add(tick / 2)
		for time.Now().Before(eventDeadline) {
			select {
			case handler := <-a.eventQueue:
				handler()
			case fn := <-a.updateQueue:
				fn()
			case <-a.stopCh:
				return nil
			default:
				// No more events, move to render phase
				goto render
			}
		}

	render:
		// Render if dirty, or if a transition is still interpolating and needs
		// its next in-between frame painted.
		if a.checkAndClearDirty() || a.Animator().HasActive(time.Now()) {
			a.Render()
			a.rebuildDispatchTable()
			a.Animator().GC()
		}

		// Sleep for remaining frame time to maintain consistent framerate
		elapsed := time.Since(frameStart)
		if elapsed < tick {
			select {
			case <-time.After(tick - elapsed):
			case <-a.stopCh:
				return nil
			}
		}
	}

	return nil
}

// Stop signals the Run loop to exit gracefully and stops all watchers.
// Watchers receive the stop signal via stopCh and exit their goroutines.
// Stop is idempotent - multiple calls are safe.
func (a *App) Stop() {
	if a.stopped {
		return // Already stopped
	}
	a.stopped = true

	// Interrupt blocking reader before closing stopCh to wake it up
	if interruptible, ok := a.reader.(InterruptibleReader); ok {
		interruptible.Interrupt()
	}

	// Signal all watcher goroutines to stop
	close(a.stopCh)
}

// RunBackground drives this app's reactive work -- queued updates and
// already-posted event handlers -- without ever touching a Terminal: it
// never reads input and never paints. Runtime runs this for every instance
// that isn't currently focused, since only one instance may own the shared
// Terminal at a time; a backgrounded instance still reacts to messages and
// QueueUpdate calls, it just can't be seen until focused.
//
// Returns when the instance stops, or when Relinquish (or another call to
// Run/RunBackground) claims a new generation out from under it.
func (a *App) RunBackground() {
	myGen := atomic.AddInt64(&a.runGen, 1)
	ticker := time.NewTicker(idleFrameDuration)
	defer ticker.Stop()
	for !a.stopped && atomic.LoadInt64(&a.runGen) == myGen {
		select {
		case <-a.stopCh:
			return
		case fn := <-a.updateQueue:
			fn()
		case handler := <-a.eventQueue:
			handler()
		case <-ticker.C:
		}
	}
}

// Relinquish ends this app's current Run or RunBackground loop, without
// closing its stopCh or touching instance state, so a different loop can
// take over driving it. Runtime calls this on the previously focused
// instance before starting a new one's Run, and on an instance's own
// RunBackground before starting its Run.
func (a *App) Relinquish() {
	atomic.AddInt64(&a.runGen, 1)
}

// QueueUpdate enqueues a function to run on the main loop.
// Safe to call from any goroutine. Use this for background thread safety.
// If the queue is full, the oldest pending update is dropped to make room,
// so QueueUpdate never blocks the calling goroutine.
func (a *App) QueueUpdate(fn func()) {
	for {
		select {
		case a.updateQueue <- fn:
			return
		case <-a.stopCh:
			return
		default:
		}
		select {
		case <-a.updateQueue:
		default:
		}
	}
}

// rebuildDispatchTable walks the rendered element tree and builds a new
// dispatch table from all mounted components' KeyMap() methods.
// If the root is not an *Element or validation fails, the previous table is kept.
func (a *App) rebuildDispatchTable() {
	root, ok := a.root.(*Element)
	if !ok {
		return
	}

	table, err := buildDispatchTable(root)
	if err != nil {
		// Validation error (e.g., conflicting Stop handlers).
		// Log and keep the previous valid table rather than crashing.
		fmt.Fprintf(os.Stderr, "tui: dispatch table error: %v\n", err)
		return
	}
	a.dispatchTable = table
}
