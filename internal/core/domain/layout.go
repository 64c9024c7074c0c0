package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".qsnap"

	// CacheFileName is the name of the reference cache file.
	CacheFileName = "cache.json"

	// ArtifactDirName is the name of the rendered artifact directory.
	ArtifactDirName = "artifacts"

	// ConfigFileName is the name of the YAML project configuration file.
	ConfigFileName = "qsnap.yaml"

	// ConfigFileNameJSONC is the name of the JSONC project configuration file.
	ConfigFileNameJSONC = "qsnap.jsonc"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the default root directory for qsnap metadata.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultCachePath returns the default path of the cache file.
// It joins .qsnap and cache.json.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheFileName)
}

// DefaultArtifactPath returns the default directory for rendered artifacts.
// It joins .qsnap and artifacts.
func DefaultArtifactPath() string {
	return filepath.Join(StateDirName, ArtifactDirName)
}
