package cells

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoHandler is returned by Request when the target instance has no
// handler registered for the request's type.
var ErrNoHandler = errors.New("tui: instance has no handler for this request type")

// HandlerPanickedError wraps the recovered panic value from a request
// handler.
type HandlerPanickedError struct {
	Recovered any
}

func (e *HandlerPanickedError) Error() string {
	return fmt.Sprintf("tui: request handler panicked: %v", e.Recovered)
}

// Messenger is the process-wide pub/sub and request/response bus for
// inter-instance communication. It is built atop an InstanceManager: events
// are delivered to every non-sleeping instance with a matching subscriber,
// and requests are routed to the first matching non-sleeping instance (or a
// specific one, for RequestTo).
type Messenger struct {
	mu          sync.RWMutex
	instances   *InstanceManager
	subscribers map[InstanceId][]func(any)
	handlers    map[InstanceId]map[string]func(any) (any, error)
}

// NewMessenger creates a messenger bound to an instance manager.
func NewMessenger(instances *InstanceManager) *Messenger {
	return &Messenger{
		instances:   instances,
		subscribers: make(map[InstanceId][]func(any)),
		handlers:    make(map[InstanceId]map[string]func(any) (any, error)),
	}
}

// Subscribe registers fn to receive every event published while instance id
// is alive, regardless of event type; callers type-switch on the received
// value. Typically called once per instance during its on_start callback.
func (m *Messenger) Subscribe(id InstanceId, fn func(event any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[id] = append(m.subscribers[id], fn)
}

// Publish delivers event to every non-sleeping instance with at least one
// subscriber, concurrently. Publish does not wait for subscribers to finish
// handling the event (fire-and-forget). It snapshots the subscriber lists
// before fanning out and starts each subscriber call on its own goroutine,
// so the order in which one subscriber receives events from successive
// Publish calls is not guaranteed.
func (m *Messenger) Publish(event any) {
	m.mu.RLock()
	type delivery struct {
		id  InstanceId
		fns []func(any)
	}
	deliveries := make([]delivery, 0, len(m.subscribers))
	for id, fns := range m.subscribers {
		snapshot := make([]func(any), len(fns))
		copy(snapshot, fns)
		deliveries = append(deliveries, delivery{id: id, fns: snapshot})
	}
	m.mu.RUnlock()

	for _, d := range deliveries {
		if m.instances.IsSleeping(d.id) {
			continue
		}
		for _, fn := range d.fns {
			go fn(event)
		}
	}
}

// RegisterHandler registers a named request handler for instance id.
// reqType identifies the request's type for routing (the DSL layer
// typically uses the Go type name or a stable string tag).
func (m *Messenger) RegisterHandler(id InstanceId, reqType string, fn func(req any) (resp any, err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers[id] == nil {
		m.handlers[id] = make(map[string]func(any) (any, error))
	}
	m.handlers[id][reqType] = fn
}

// Request locates the first non-sleeping instance of appName with a
// handler registered for reqType and invokes it, recovering any panic as
// HandlerPanickedError.
func (m *Messenger) Request(appName, reqType string, req any) (any, error) {
	infos := m.instances.InstancesOf(appName)
	if len(infos) == 0 {
		return nil, ErrNoInstance
	}
	for _, info := range infos {
		if info.IsSleeping {
			continue
		}
		m.mu.RLock()
		_, ok := m.handlers[info.ID][reqType]
		m.mu.RUnlock()
		if ok {
			return m.requestTo(info.ID, reqType, req)
		}
	}
	// No awake instance has a handler: report the first instance's error.
	return m.requestTo(infos[0].ID, reqType, req)
}

// RequestTo targets a specific instance id rather than the first match of
// an app type.
func (m *Messenger) RequestTo(id InstanceId, reqType string, req any) (any, error) {
	if _, ok := m.instances.AppFor(id); !ok {
		return nil, ErrInstanceNotFound
	}
	return m.requestTo(id, reqType, req)
}

func (m *Messenger) requestTo(id InstanceId, reqType string, req any) (resp any, err error) {
	if m.instances.IsSleeping(id) {
		return nil, &InstanceSleepingError{ID: id}
	}

	m.mu.RLock()
	fn, ok := m.handlers[id][reqType]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoHandler
	}

	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, &HandlerPanickedError{Recovered: r}
		}
	}()
	return fn(req)
}
