package repository

import "sync"

// Entity names published with mutation events.
const (
	EntityItem       = "item"
	EntityCategory   = "category"
	EntityUser       = "user"
	EntityMedication = "medication"
)

// Mutation operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Event describes a completed store mutation.
type Event struct {
	Entity string
	Op     string
	ID     string
}

// Events is a synchronous observer hub. Repositories publish after each
// successful mutation; subscribers see the store's new state immediately,
// before the mutating call returns.
type Events struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func NewEvents() *Events {
	return &Events{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns an unsubscribe func. Unsubscribing
// twice is harmless.
func (e *Events) Subscribe(fn func(Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Publish delivers ev to every subscriber on the calling goroutine.
// A nil hub is a valid no-op publisher.
func (e *Events) Publish(ev Event) {
	if e == nil {
		return
	}
	e.mu.Lock()
	fns := make([]func(Event), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
