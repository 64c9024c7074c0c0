package watcher

import (
	"sync"
	"unique"

	"go.trai.ch/qsnap/internal/core/ports"
)

// Digests remembers the content hash each document had after its last run.
// Watch mode uses it to ignore events that did not change a document, such as
// the write that finishes a run.
type Digests struct {
	mu     sync.Mutex
	hashes map[unique.Handle[string]]uint64
	hasher ports.Hasher
}

// NewDigests creates an empty digest set.
func NewDigests(hasher ports.Hasher) *Digests {
	return &Digests{
		hashes: make(map[unique.Handle[string]]uint64),
		hasher: hasher,
	}
}

// Remember stores the current content hash of path. Unreadable files are forgotten.
func (d *Digests) Remember(path string) {
	hash, err := d.hasher.ComputeFileHash(path)

	d.mu.Lock()
	defer d.mu.Unlock()

	key := unique.Make(path)
	if err != nil {
		delete(d.hashes, key)
		return
	}
	d.hashes[key] = hash
}

// Changed reports whether path differs from the content last remembered for it.
// Unknown and unreadable paths count as changed.
func (d *Digests) Changed(path string) bool {
	hash, err := d.hasher.ComputeFileHash(path)
	if err != nil {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	known, ok := d.hashes[unique.Make(path)]
	return !ok || known != hash
}

// Forget drops path from the set.
func (d *Digests) Forget(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.hashes, unique.Make(path))
}
