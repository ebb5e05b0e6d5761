// Package registry manages the set of deployed stores and the address
// handles callers use to reach a specific instance.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/storechain/storechain/foundation/store"
)

// ErrNotFound indicates no store is deployed at the requested address.
var ErrNotFound = errors.New("store not found")

// Serializer interface represents the behavior required to be implemented by
// any package providing support for storing and reading store records.
type Serializer interface {
	Write(rec StoreRecord) error
	GetStore(addr Address) (StoreRecord, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the store records.
type Iterator interface {
	Next() (StoreRecord, error)
	Done() bool
}

// =============================================================================

// Config represents the configuration required to construct a registry.
type Config struct {
	Serializer Serializer
	EvHandler  store.EventHandler
}

// Registry manages the full set of deployed stores.
type Registry struct {
	mu sync.RWMutex

	stores     map[Address]*store.Store
	serializer Serializer
	evHandler  store.EventHandler
}

// New constructs a registry and replays any previously persisted store
// records through the serializer.
func New(cfg Config) (*Registry, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	r := Registry{
		stores:     make(map[Address]*store.Store),
		serializer: cfg.Serializer,
		evHandler:  ev,
	}

	// Reconstruct the in memory stores from the persisted records.
	iter := cfg.Serializer.ForEach()
	for rec, err := iter.Next(); !iter.Done(); rec, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		r.stores[rec.Address] = store.New(rec.Owner, rec.Value, ev)
	}

	return &r, nil
}

// Shutdown cleanly releases the storage resources.
func (r *Registry) Shutdown() error {
	return r.serializer.Close()
}

// Deploy creates a new store holding the specified initial value and returns
// the address handle used for subsequent calls. The record is persisted
// before the store becomes reachable.
func (r *Registry) Deploy(tx DeployTx) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr := newAddress()
	if _, exists := r.stores[addr]; exists {
		return "", fmt.Errorf("address collision: %s", addr)
	}

	if err := r.serializer.Write(StoreRecord{Address: addr, Owner: tx.Owner, Value: tx.Initial}); err != nil {
		return "", err
	}

	r.stores[addr] = store.New(tx.Owner, tx.Initial, r.evHandler)

	return addr, nil
}

// Get returns the current value held by the store at the specified address.
func (r *Registry) Get(addr Address) (store.Value, error) {
	r.mu.RLock()
	st, exists := r.stores[addr]
	r.mu.RUnlock()

	if !exists {
		return store.Value{}, ErrNotFound
	}

	return st.Get(), nil
}

// Set overwrites the value held by the store at the specified address. The
// new record is persisted before the in memory store mutates so a storage
// failure leaves the prior state unchanged.
func (r *Registry) Set(addr Address, caller store.AccountID, v store.Value) error {
	r.mu.RLock()
	st, exists := r.stores[addr]
	r.mu.RUnlock()

	if !exists {
		return ErrNotFound
	}

	if err := r.serializer.Write(StoreRecord{Address: addr, Owner: st.Owner(), Value: v}); err != nil {
		return err
	}

	st.Set(caller, v)

	return nil
}

// Count returns the number of deployed stores.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.stores)
}

// Copy returns a snapshot of every deployed store and its current value,
// ordered by address.
func (r *Registry) Copy() []StoreRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]StoreRecord, 0, len(r.stores))
	for addr, st := range r.stores {
		recs = append(recs, StoreRecord{Address: addr, Owner: st.Owner(), Value: st.Get()})
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Address < recs[j].Address
	})

	return recs
}

// Reset removes every deployed store from memory and from the serializer.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.serializer.Reset(); err != nil {
		return err
	}

	r.stores = make(map[Address]*store.Store)

	return nil
}
