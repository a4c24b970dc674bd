package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/cluequiz/internal/game"
)

// EventMessage is the payload pushed to SSE and WebSocket subscribers.
type EventMessage struct {
	game.Event
	State StateView `json:"state"`
}

// eventSnapshot marks the first message of a stream, sent so clients can
// render without waiting for the next transition.
const eventSnapshot game.EventType = "snapshot"

func snapshotMessage(state StateView) []byte {
	data, _ := json.Marshal(EventMessage{Event: game.Event{Type: eventSnapshot}, State: state})
	return data
}

// Broker is an in-process pub/sub for table events, keyed by snapshot key.
// It implements game.Notifier.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for key.
func (b *Broker) Subscribe(key string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[chan []byte]struct{})
	}
	b.subs[key][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(key string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[key], ch)
	if len(b.subs[key]) == 0 {
		delete(b.subs, key)
	}
	b.mu.Unlock()
}

// Subscribers counts the listeners of key.
func (b *Broker) Subscribers(key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[key])
}

func (b *Broker) Notify(key string, ev game.Event) {
	data, _ := json.Marshal(EventMessage{Event: ev, State: newStateView(ev.State)})
	b.mu.RLock()
	for ch := range b.subs[key] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
