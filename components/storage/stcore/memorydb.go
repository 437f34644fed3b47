package stcore

import (
	"bytes"
	"sort"
	"sync"

	"github.com/open-control-systems/wasd/components/status"
)

// MemoryDB keeps blobs in memory, e.g. for records that don't need to survive a restart.
type MemoryDB struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryDB is an initialization of MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{blobs: make(map[string][]byte)}
}

// Read reads a blob.
func (d *MemoryDB) Read(key string) (Blob, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.blobs[key]
	if !ok {
		return Blob{}, status.StatusNoData
	}

	return Blob{Data: bytes.Clone(data)}, nil
}

// Write writes a blob.
func (d *MemoryDB) Write(key string, blob Blob) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.blobs[key] = bytes.Clone(blob.Data)

	return nil
}

// Remove removes a blob.
func (d *MemoryDB) Remove(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.blobs, key)

	return nil
}

// ForEach iterates over a snapshot of all blobs in key order.
func (d *MemoryDB) ForEach(fn func(key string, b Blob) error) error {
	d.mu.Lock()

	keys := make([]string, 0, len(d.blobs))
	for key := range d.blobs {
		keys = append(keys, key)
	}

	snapshot := make(map[string][]byte, len(d.blobs))
	for key, data := range d.blobs {
		snapshot[key] = bytes.Clone(data)
	}

	d.mu.Unlock()

	sort.Strings(keys)

	for _, key := range keys {
		if err := fn(key, Blob{Data: snapshot[key]}); err != nil {
			return err
		}
	}

	return nil
}

// Close is non-operational.
func (*MemoryDB) Close() error {
	return nil
}
