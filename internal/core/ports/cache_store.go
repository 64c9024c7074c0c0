package ports

import "go.trai.ch/qsnap/internal/core/domain"

// CacheStore persists the reference cache.
//
//go:generate mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// Load reads the records at path. Any read or parse failure yields an empty set.
	Load(path string) domain.Records

	// Save writes the full record set to path, creating parent directories as needed.
	Save(path string, records domain.Records) error
}
