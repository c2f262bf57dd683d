package cells

// Runtime owns the one Terminal and EventReader shared by every instance an
// InstanceManager spawns, plus the manager and the Messenger built on top of
// it. Only the focused instance ever reads input or paints; every other live
// instance runs its App.RunBackground loop instead, so its reactive state
// (messages, QueueUpdate callbacks) keeps progressing without contending
// with the focused instance for the shared Terminal.
type Runtime struct {
	terminal  Terminal
	reader    EventReader
	instances *InstanceManager
	messenger *Messenger
}

// NewRuntime wraps an already-constructed terminal and event reader (see
// NewANSITerminal and NewEventReader), typically built once at process
// start and put in raw mode/alt screen before any instance is spawned.
func NewRuntime(terminal Terminal, reader EventReader) *Runtime {
	im := NewInstanceManager()
	return &Runtime{
		terminal:  terminal,
		reader:    reader,
		instances: im,
		messenger: NewMessenger(im),
	}
}

// Instances returns the instance manager backing this runtime.
func (r *Runtime) Instances() *InstanceManager {
	return r.instances
}

// Messenger returns the cross-instance messenger built on this runtime's
// instance manager.
func (r *Runtime) Messenger() *Messenger {
	return r.messenger
}

// RegisterType makes an app type spawnable via Spawn/SpawnAndFocus.
func (r *Runtime) RegisterType(spec AppTypeSpec) {
	r.instances.RegisterType(spec)
}

// Spawn constructs a new instance and leaves it running in the background
// (InstanceManager.Spawn already starts its RunBackground loop). It does not
// touch the Terminal until Focus is called.
func (r *Runtime) Spawn(appName string) (InstanceId, error) {
	return r.instances.Spawn(appName)
}

// SpawnAndFocus spawns an instance and immediately gives it the Terminal.
func (r *Runtime) SpawnAndFocus(appName string) (InstanceId, error) {
	id, err := r.Spawn(appName)
	if err != nil {
		return "", err
	}
	return id, r.Focus(id)
}

// Focus applies blur policy to the previously focused instance (via
// InstanceManager.Focus) and hands the shared Terminal and reader to id,
// starting its full input-driven Run loop. The previously focused instance
// is relinquished from Run and dropped back to RunBackground -- unless blur
// policy just closed or slept it, in which case it has nothing left to run
// or stays quiescent until it's refocused.
func (r *Runtime) Focus(id InstanceId) error {
	prevID := r.focusedID()
	prevApp, hadPrev := r.instances.AppFor(prevID)

	if err := r.instances.Focus(id); err != nil {
		return err
	}

	next, ok := r.instances.AppFor(id)
	if !ok {
		return ErrInstanceNotFound
	}

	if hadPrev && prevApp != nil && prevID != id {
		prevApp.Relinquish()
		if !r.instances.IsSleeping(prevID) {
			if _, stillRunning := r.instances.AppFor(prevID); stillRunning {
				go prevApp.RunBackground()
			}
		}
	}

	next.Relinquish() // stop its RunBackground loop before Run claims the generation
	next.terminal = r.terminal
	next.reader = r.reader
	go func() {
		_ = next.Run()
	}()
	return nil
}

// focusedID returns the id InstanceManager currently reports as focused, or
// "" if none.
func (r *Runtime) focusedID() InstanceId {
	for _, info := range r.instances.Instances() {
		if info.IsFocused {
			return info.ID
		}
	}
	return ""
}
