package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// StoreEvent is pushed to subscribed views on every observable state
// change. Presentation layers re-render from these instead of polling.
type StoreEvent struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventCatalogLoaded     = "catalog.loaded"
	EventCatalogCreated    = "catalog.created"
	EventCatalogSelected   = "catalog.selected"
	EventCatalogDeselected = "catalog.deselected"
	EventPaymentState      = "payment.state"
)

type broadcaster struct {
	mu   sync.Mutex
	subs map[string]chan StoreEvent
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		subs: make(map[string]chan StoreEvent),
	}
}

// Subscribe returns a buffered event channel. Slow subscribers drop
// events rather than block a mutation.
func (b *broadcaster) Subscribe() (string, <-chan StoreEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan StoreEvent, 16)
	b.subs[id] = ch
	return id, ch
}

func (b *broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *broadcaster) publish(event StoreEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
