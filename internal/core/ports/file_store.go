package ports

// FileStore reads and writes documents and checks artifacts on disk.
//
//go:generate mockgen -source=file_store.go -destination=mocks/mock_file_store.go -package=mocks
type FileStore interface {
	// ReadDocument returns the full text of the document at path.
	ReadDocument(path string) (string, error)

	// WriteDocument replaces the document at path with text.
	WriteDocument(path, text string) error

	// Exists reports whether a regular file exists at path.
	Exists(path string) bool

	// Remove deletes the file at path. A missing file is not an error.
	Remove(path string) error
}

// DocumentFinder expands document patterns into concrete paths.
type DocumentFinder interface {
	// Find returns the documents under root matching any of patterns, skipping ignored directories.
	// Paths are returned sorted.
	Find(root string, patterns, ignore []string) ([]string, error)
}
