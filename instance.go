package cells

import (
	"errors"
	"fmt"
	"sync"
)

// InstanceId uniquely identifies a running app instance within an
// InstanceManager.
type InstanceId string

// BlurPolicy controls what happens to an instance when it loses focus to
// another instance.
type BlurPolicy uint8

const (
	// BlurContinue keeps receiving events and timer work while backgrounded.
	BlurContinue BlurPolicy = iota
	// BlurSleep stops receiving events and timer work until refocused.
	BlurSleep
	// BlurClose destroys the instance as soon as it loses focus.
	BlurClose
)

// Errors returned by InstanceManager.Spawn and the messaging APIs.
var (
	ErrSingletonViolation  = errors.New("tui: singleton app type already has a running instance")
	ErrMaxInstancesReached = errors.New("tui: app type has reached its max instance count")
	ErrNoInstance          = errors.New("tui: no instance of the requested app type")
	ErrInstanceNotFound    = errors.New("tui: instance id not found")
)

// InstanceSleepingError reports that a request targeted an instance that is
// currently asleep (BlurSleep) and not processing events.
type InstanceSleepingError struct {
	ID InstanceId
}

func (e *InstanceSleepingError) Error() string {
	return fmt.Sprintf("tui: instance %s is sleeping", e.ID)
}

// InstanceInfo is the read-only view of an instance exposed to listing APIs.
type InstanceInfo struct {
	ID         InstanceId
	AppName    string
	Title      string
	IsFocused  bool
	IsSleeping bool
}

// AppTypeSpec describes one registerable app type: how to construct a fresh
// instance's App, plus its singleton/max-instance and blur rules. The DSL
// layer supplies one of these per app type; the core only needs the
// constructor and the limits.
type AppTypeSpec struct {
	Name         string
	Singleton    bool
	MaxInstances int // 0 means unlimited
	BlurPolicy   BlurPolicy
	New          func() (*App, error)
}

// instanceRecord is the manager's bookkeeping for one spawned instance.
type instanceRecord struct {
	id       InstanceId
	appName  string
	title    string
	app      *App
	sleeping bool
}

// InstanceManager owns the set of running app instances for a process,
// enforcing singleton/max-instances rules and routing focus and blur
// policy between them. Exactly one instance is focused at a time; all
// others are background (subject to their app type's BlurPolicy).
type InstanceManager struct {
	mu       sync.Mutex
	specs    map[string]AppTypeSpec
	byID     map[InstanceId]*instanceRecord
	order    []InstanceId // spawn order, for deterministic Instances()
	focused  InstanceId
	nextSeq  uint64
}

// NewInstanceManager creates an empty manager. Register app types with
// RegisterType before spawning them.
func NewInstanceManager() *InstanceManager {
	return &InstanceManager{
		specs: make(map[string]AppTypeSpec),
		byID:  make(map[InstanceId]*instanceRecord),
	}
}

// RegisterType makes an app type spawnable.
func (m *InstanceManager) RegisterType(spec AppTypeSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specs[spec.Name] = spec
}

func (m *InstanceManager) countOf(appName string) int {
	n := 0
	for _, id := range m.order {
		if rec := m.byID[id]; rec != nil && rec.appName == appName {
			n++
		}
	}
	return n
}

// Spawn constructs a new instance of the named app type without focusing
// it. Returns ErrSingletonViolation or ErrMaxInstancesReached if the type's
// limits are exceeded.
func (m *InstanceManager) Spawn(appName string) (InstanceId, error) {
	m.mu.Lock()
	spec, ok := m.specs[appName]
	if !ok {
		m.mu.Unlock()
		return "", fmt.Errorf("tui: unknown app type %q", appName)
	}
	if spec.Singleton && m.countOf(appName) > 0 {
		m.mu.Unlock()
		return "", ErrSingletonViolation
	}
	if spec.MaxInstances > 0 && m.countOf(appName) >= spec.MaxInstances {
		m.mu.Unlock()
		return "", ErrMaxInstancesReached
	}
	m.nextSeq++
	id := InstanceId(fmt.Sprintf("%s-%d", appName, m.nextSeq))
	m.mu.Unlock()

	app, err := spec.New()
	if err != nil {
		return "", err
	}

	app.id = id

	m.mu.Lock()
	rec := &instanceRecord{id: id, appName: appName, app: app}
	m.byID[id] = rec
	m.order = append(m.order, id)
	m.mu.Unlock()

	// A freshly spawned instance starts backgrounded: it reacts to queued
	// updates and already-posted events but never touches a Terminal.
	// Focusing it through Runtime is what promotes it to a full input-driven
	// Run loop; InstanceManager.Focus only updates focus and sleep state.
	go app.RunBackground()

	return id, nil
}

// SpawnAndFocus spawns a new instance and immediately focuses it.
func (m *InstanceManager) SpawnAndFocus(appName string) (InstanceId, error) {
	id, err := m.Spawn(appName)
	if err != nil {
		return "", err
	}
	m.Focus(id)
	return id, nil
}

// Focus makes id the focused instance, applying blur policy to the
// previously focused instance and waking id if it was asleep.
func (m *InstanceManager) Focus(id InstanceId) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.byID[id]
	if !ok {
		return ErrInstanceNotFound
	}

	if prev := m.byID[m.focused]; prev != nil && prev.id != id {
		spec := m.specs[prev.appName]
		switch spec.BlurPolicy {
		case BlurSleep:
			prev.sleeping = true
		case BlurClose:
			m.removeLocked(prev.id)
		}
	}

	next.sleeping = false
	m.focused = id
	return nil
}

// Close requests that instance id close. A non-nil beforeClose (the
// instance's on_close_request callback, wired by the caller) may veto the
// close by returning false; pass nil to close without asking.
func (m *InstanceManager) Close(id InstanceId, beforeClose func() (allow bool)) error {
	m.mu.Lock()
	_, ok := m.byID[id]
	m.mu.Unlock()
	if !ok {
		return ErrInstanceNotFound
	}
	if beforeClose != nil && !beforeClose() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id)
	return nil
}

// ForceClose closes instance id unconditionally, bypassing on_close_request.
func (m *InstanceManager) ForceClose(id InstanceId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrInstanceNotFound
	}
	m.removeLocked(id)
	return nil
}

// removeLocked must be called with m.mu held.
func (m *InstanceManager) removeLocked(id InstanceId) {
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.focused == id {
		m.focused = ""
	}
}

// Instances returns info for every running instance, in spawn order.
func (m *InstanceManager) Instances() []InstanceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]InstanceInfo, 0, len(m.order))
	for _, id := range m.order {
		rec := m.byID[id]
		out = append(out, InstanceInfo{
			ID:         rec.id,
			AppName:    rec.appName,
			Title:      rec.title,
			IsFocused:  rec.id == m.focused,
			IsSleeping: rec.sleeping,
		})
	}
	return out
}

// InstancesOf returns info for every running instance of the named app type.
func (m *InstanceManager) InstancesOf(appName string) []InstanceInfo {
	all := m.Instances()
	out := all[:0:0]
	for _, info := range all {
		if info.AppName == appName {
			out = append(out, info)
		}
	}
	return out
}

// InstanceOf returns the first running instance of the named app type, if any.
func (m *InstanceManager) InstanceOf(appName string) (InstanceInfo, bool) {
	for _, info := range m.InstancesOf(appName) {
		return info, true
	}
	return InstanceInfo{}, false
}

// AppFor returns the *App backing a running instance, for routing events
// and requests to it.
func (m *InstanceManager) AppFor(id InstanceId) (*App, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return rec.app, true
}

// IsSleeping reports whether instance id is currently asleep.
func (m *InstanceManager) IsSleeping(id InstanceId) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byID[id]
	return ok && rec.sleeping
}
