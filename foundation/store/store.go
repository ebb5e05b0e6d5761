// Package store implements the core value store, one unsigned 256 bit number
// held behind read and write access with an optional diagnostic side-channel.
package store

import "sync"

// EventHandler defines a function that is called when a store is created,
// read, or written. The handler is purely observational and never affects
// the stored state.
type EventHandler func(v string, args ...any)

// Store maintains one mutable value plus the identity of the account that
// created it. Instances are fully isolated from each other.
type Store struct {
	mu    sync.RWMutex
	owner AccountID
	data  Value

	evHandler EventHandler
}

// New constructs a store holding the specified initial value. The event
// handler is optional and receives the creating account and the value.
func New(owner AccountID, initial Value, ev EventHandler) *Store {

	// Build a safe event handler function for use.
	evHandler := func(v string, args ...any) {
		if ev != nil {
			ev(v, args...)
		}
	}

	st := Store{
		owner:     owner,
		data:      initial,
		evHandler: evHandler,
	}

	st.evHandler("store: created: owner[%s] value[%s]", owner, initial)

	return &st
}

// Owner returns the account that created the store.
func (st *Store) Owner() AccountID {
	return st.owner
}

// Set unconditionally overwrites the stored value. Any caller may set the
// value, there is no authorization check.
func (st *Store) Set(caller AccountID, v Value) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.data = v

	st.evHandler("store: set: caller[%s] value[%s]", caller, v)
}

// Get returns the current value. No state mutates on a read.
func (st *Store) Get() Value {
	st.mu.RLock()
	defer st.mu.RUnlock()

	st.evHandler("store: get: value[%s]", st.data)

	return st.data
}
