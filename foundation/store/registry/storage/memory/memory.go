// Package memory implements the ability to read and write store records in
// memory. It exists primarily to support testing.
package memory

import (
	"errors"
	"sync"

	"github.com/storechain/storechain/foundation/store/registry"
)

// Memory represents the serialization implementation for reading and storing
// store records in memory. This implements the registry.Serializer interface.
type Memory struct {
	mu    sync.RWMutex
	recs  map[registry.Address]registry.StoreRecord
	addrs []registry.Address
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{
		recs: make(map[registry.Address]registry.StoreRecord),
	}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified store record and stores it in memory. An
// existing record for the address is replaced.
func (m *Memory) Write(rec registry.StoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.recs[rec.Address]; !exists {
		m.addrs = append(m.addrs, rec.Address)
	}
	m.recs[rec.Address] = rec

	return nil
}

// GetStore locates and returns the record for the specified store address.
func (m *Memory) GetStore(addr registry.Address) (registry.StoreRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.recs[addr]
	if !exists {
		return registry.StoreRecord{}, errors.New("record does not exist")
	}

	return rec, nil
}

// ForEach returns an iterator to walk through all the store records in the
// order they were first written.
func (m *Memory) ForEach() registry.Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	addrs := make([]registry.Address, len(m.addrs))
	copy(addrs, m.addrs)

	return &memoryIterator{storage: m, addrs: addrs}
}

// Reset will clear out all the store records in memory.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recs = make(map[registry.Address]registry.StoreRecord)
	m.addrs = nil

	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking through
// and reading store records in memory. This implements the registry Iterator
// interface.
type memoryIterator struct {
	storage *Memory            // Access to the Memory storage API.
	addrs   []registry.Address // Addresses captured when iteration began.
	current int                // Record being iterated over.
	eor     bool               // Represents the iterator is at the end of the records.
}

// Next retrieves the next store record from memory.
func (mi *memoryIterator) Next() (registry.StoreRecord, error) {
	if mi.eor {
		return registry.StoreRecord{}, errors.New("end of records")
	}

	if mi.current >= len(mi.addrs) {
		mi.eor = true
		return registry.StoreRecord{}, errors.New("end of records")
	}

	rec, err := mi.storage.GetStore(mi.addrs[mi.current])
	mi.current++

	return rec, err
}

// Done returns the end of records value.
func (mi *memoryIterator) Done() bool {
	return mi.eor
}
