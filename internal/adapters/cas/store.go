// Package cas implements the reference cache file that maps diagram URLs to rendered artifacts.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.CacheStore as a single JSON array file.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new cache store. Load problems are reported to logger.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the cache file at path.
// A missing file yields an empty set silently. Unreadable or malformed files
// and records missing a required field are logged and skipped.
func (s *Store) Load(path string) domain.Records {
	//nolint:gosec // Path comes from the project configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(fmt.Sprintf("ignoring unreadable cache file %s: %v", path, err))
		}
		return domain.Records{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring cache file %s: not a json array", path))
		return domain.Records{}
	}

	items := make([]domain.CacheRecord, 0, len(raw))
	dropped := 0
	for _, msg := range raw {
		var rec domain.CacheRecord
		if err := json.Unmarshal(msg, &rec); err != nil || !rec.Valid() {
			dropped++
			continue
		}
		items = append(items, rec)
	}

	if dropped > 0 {
		s.logger.Warn(fmt.Sprintf("dropped %d unusable record(s) from %s; they will be rendered again", dropped, path))
	}

	return domain.NewRecords(items...)
}

// Save writes records to path as pretty-printed JSON, creating parent directories.
func (s *Store) Save(path string, records domain.Records) error {
	items := records.All()
	if items == nil {
		items = []domain.CacheRecord{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}

	return nil
}
