// Package events allows clients to register for and receive the diagnostic
// events the stores emit.
package events

import (
	"fmt"
	"sync"
)

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	clients map[string]chan string
	mu      sync.RWMutex
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		clients: make(map[string]chan string),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.clients {
		delete(evt.clients, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.clients[id]
	if exists {
		return ch
	}

	// A message is dropped if the receiver is not ready to take it, so this
	// arbitrary buffer gives a slow websocket reader room to catch up.
	const messageBuffer = 100

	evt.clients[id] = make(chan string, messageBuffer)
	return evt.clients[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.clients[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.clients, id)
	close(ch)

	return nil
}

// Send signals a message to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.clients {
		select {
		case ch <- s:
		default:
		}
	}
}
