package indexing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"codenav/internal/debug"
	navErrors "codenav/internal/errors"
	"codenav/internal/types"
	"codenav/internal/version"
)

// Store reads and writes index snapshots as versioned JSON files. Each
// project root gets one file in the store directory, named by a hash of
// the root path, so multiple projects share a directory without
// colliding.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultIndexDir resolves the per-user index directory.
func DefaultIndexDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", navErrors.NewPersistenceError("resolve", "user cache dir", err)
	}
	return filepath.Join(cacheDir, "codenav", "index"), nil
}

// ProjectHash returns the 16-hex-digit file name stem for a project root.
// The hash keys on the exact root string, so the same root always maps to
// the same file.
func ProjectHash(rootPath string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(rootPath))
}

func (st *Store) pathFor(rootPath string) string {
	return filepath.Join(st.dir, ProjectHash(rootPath)+".json")
}

// Save writes the index snapshot for rootPath. The snapshot is taken
// under the index read lock; serialization and file I/O happen after the
// lock is released.
func (st *Store) Save(ix *SymbolIndex, rootPath string, fileTimestamps map[string]int64) error {
	definitions, fileDefinitions := ix.Snapshot()

	persisted := types.PersistedIndex{
		Version:         version.IndexFormatVersion,
		RootPath:        rootPath,
		LastUpdated:     time.Now().Unix(),
		FileTimestamps:  fileTimestamps,
		Definitions:     definitions,
		FileDefinitions: fileDefinitions,
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		return navErrors.NewPersistenceError("marshal", rootPath, err)
	}

	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return navErrors.NewPersistenceError("mkdir", st.dir, err)
	}

	path := st.pathFor(rootPath)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return navErrors.NewPersistenceError("write", path, err)
	}

	debug.LogPersist("saved index for %s to %s (%d files, %d names)\n",
		rootPath, path, len(fileDefinitions), len(definitions))
	return nil
}

// Load restores the persisted snapshot for rootPath into the index. It
// returns false when no usable snapshot exists: the file is absent, its
// format version does not match, or it was written for a different root
// (a hash collision). A version-mismatched file is deleted so it is never
// consulted again; a root-mismatched file is left in place because it
// belongs to the other project.
func (st *Store) Load(ix *SymbolIndex, rootPath string) (bool, error) {
	path := st.pathFor(rootPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, navErrors.NewPersistenceError("read", path, err)
	}

	var persisted types.PersistedIndex
	if err := json.Unmarshal(data, &persisted); err != nil {
		return false, navErrors.NewPersistenceError("unmarshal", path, err)
	}

	if persisted.Version != version.IndexFormatVersion {
		debug.LogPersist("index version %d != %d, discarding %s\n",
			persisted.Version, version.IndexFormatVersion, path)
		_ = os.Remove(path)
		return false, nil
	}

	if persisted.RootPath != rootPath {
		debug.LogPersist("index root %s != %s, ignoring %s\n",
			persisted.RootPath, rootPath, path)
		return false, nil
	}

	ix.Restore(persisted.Definitions, persisted.FileDefinitions)
	debug.LogPersist("loaded index for %s from %s (%d files, %d names)\n",
		rootPath, path, len(persisted.FileDefinitions), len(persisted.Definitions))
	return true, nil
}

// Metadata reads summary information from the persisted snapshot without
// touching the live index. It returns nil when no usable snapshot exists,
// applying the same version and root checks as Load but without deleting
// anything.
func (st *Store) Metadata(rootPath string) (*types.IndexMetadata, error) {
	path := st.pathFor(rootPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, navErrors.NewPersistenceError("read", path, err)
	}

	var persisted types.PersistedIndex
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, navErrors.NewPersistenceError("unmarshal", path, err)
	}
	if persisted.Version != version.IndexFormatVersion || persisted.RootPath != rootPath {
		return nil, nil
	}

	definitionCount := 0
	for _, syms := range persisted.Definitions {
		definitionCount += len(syms)
	}

	return &types.IndexMetadata{
		Version:         persisted.Version,
		RootPath:        persisted.RootPath,
		LastUpdated:     persisted.LastUpdated,
		FileCount:       len(persisted.FileDefinitions),
		DefinitionCount: definitionCount,
		FileTimestamps:  persisted.FileTimestamps,
	}, nil
}

// Delete removes the persisted snapshot for rootPath. Deleting an absent
// snapshot is not an error.
func (st *Store) Delete(rootPath string) error {
	path := st.pathFor(rootPath)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return navErrors.NewPersistenceError("remove", path, err)
	}
	return nil
}
