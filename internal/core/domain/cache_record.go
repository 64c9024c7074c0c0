package domain

import "slices"

// CacheRecord maps a reference URL to the artifact last rendered for it.
type CacheRecord struct {
	URL          string `json:"url"`
	Payload      string `json:"payload"`
	ArtifactPath string `json:"artifactPath"`
	Timestamp    int64  `json:"timestamp"`
}

// Valid reports whether the record carries every field needed to serve a cache hit.
func (r CacheRecord) Valid() bool {
	return r.URL != "" && r.Payload != "" && r.ArtifactPath != ""
}

// Records is an ordered set of cache records holding at most one record per URL.
// Records is treated as immutable: Put returns a new value.
type Records struct {
	items []CacheRecord
}

// NewRecords builds a record set. Later records win over earlier ones with the same URL.
func NewRecords(items ...CacheRecord) Records {
	var r Records
	for _, item := range items {
		r = r.Put(item)
	}
	return r
}

// Get returns the record for url.
func (r Records) Get(url string) (CacheRecord, bool) {
	for _, item := range r.items {
		if item.URL == url {
			return item, true
		}
	}
	return CacheRecord{}, false
}

// Changed reports whether url has no record or its stored payload differs from payload.
// The comparison is exact string equality.
func (r Records) Changed(url, payload string) bool {
	rec, ok := r.Get(url)
	return !ok || rec.Payload != payload
}

// Put returns a new set with any record for the same URL removed and rec appended.
func (r Records) Put(rec CacheRecord) Records {
	items := make([]CacheRecord, 0, len(r.items)+1)
	for _, item := range r.items {
		if item.URL != rec.URL {
			items = append(items, item)
		}
	}
	items = append(items, rec)
	return Records{items: items}
}

// Remove returns a new set without the record for url.
func (r Records) Remove(url string) Records {
	items := make([]CacheRecord, 0, len(r.items))
	for _, item := range r.items {
		if item.URL != url {
			items = append(items, item)
		}
	}
	return Records{items: items}
}

// Len returns the number of records.
func (r Records) Len() int {
	return len(r.items)
}

// All returns a copy of the records in insertion order.
func (r Records) All() []CacheRecord {
	return slices.Clone(r.items)
}
