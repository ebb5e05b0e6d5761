// Package disk implements the ability to read and write store records as
// individual JSON files on disk.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/storechain/storechain/foundation/store/registry"
)

// Disk represents the serialization implementation for reading and storing
// store records in their own separate files on disk. This implements the
// registry.Serializer interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a file is written
// for each record and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// Write takes the specified store record and stores it on disk in a file
// labeled with the store address. An existing record for the address is
// replaced so the file always holds the latest value.
func (d *Disk) Write(rec registry.StoreRecord) error {

	// Marshal the record for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(d.getPath(rec.Address), data, 0600); err != nil {
		return err
	}

	return nil
}

// GetStore searches the disk to locate and return the contents of the
// record for the specified store address.
func (d *Disk) GetStore(addr registry.Address) (registry.StoreRecord, error) {

	// Open the record file for the specified address.
	f, err := os.OpenFile(d.getPath(addr), os.O_RDONLY, 0600)
	if err != nil {
		return registry.StoreRecord{}, err
	}
	defer f.Close()

	// Decode the contents of the record.
	var rec registry.StoreRecord
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return registry.StoreRecord{}, err
	}

	return rec, nil
}

// ForEach returns an iterator to walk through all the store records
// currently on disk, ordered by address.
func (d *Disk) ForEach() registry.Iterator {
	var addrs []registry.Address

	entries, err := os.ReadDir(d.dbPath)
	if err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || path.Ext(name) != ".json" {
				continue
			}
			addrs = append(addrs, registry.Address(strings.TrimSuffix(name, ".json")))
		}
	}

	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i] < addrs[j]
	})

	return &DiskIterator{disk: d, addrs: addrs}
}

// Reset will clear out all the store records on disk.
func (d *Disk) Reset() error {
	if err := os.RemoveAll(d.dbPath); err != nil {
		return err
	}

	return os.MkdirAll(d.dbPath, 0755)
}

// getPath forms the path to the record for the specified address.
func (d *Disk) getPath(addr registry.Address) string {
	return path.Join(d.dbPath, fmt.Sprintf("%s.json", addr))
}

// =============================================================================

// DiskIterator represents the iteration implementation for walking through
// and reading store records on disk. This implements the registry Iterator
// interface.
type DiskIterator struct {
	disk    *Disk              // Access to the Disk storage API.
	addrs   []registry.Address // Addresses captured when iteration began.
	current int                // Record being iterated over.
	eor     bool               // Represents the iterator is at the end of the records.
}

// Next retrieves the next store record from disk.
func (di *DiskIterator) Next() (registry.StoreRecord, error) {
	if di.eor {
		return registry.StoreRecord{}, errors.New("end of records")
	}

	if di.current >= len(di.addrs) {
		di.eor = true
		return registry.StoreRecord{}, errors.New("end of records")
	}

	rec, err := di.disk.GetStore(di.addrs[di.current])
	di.current++

	return rec, err
}

// Done returns the end of records value.
func (di *DiskIterator) Done() bool {
	return di.eor
}
