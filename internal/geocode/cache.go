package geocode

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/listing-site-builder/internal/types"
)

// Store is the persistent cache of geocoding results, keyed by normalized
// address. A nil point is a cached "no result": the address was looked up,
// failed definitively, and must not be re-queried on later builds.
type Store interface {
	Load() error
	Get(address string) (point *types.Point, found bool)
	Put(address string, point *types.Point)
	Save() error
}

// FileStore persists the cache as one JSON file, read fully at build start
// and written fully at build end. A missing or corrupt file is an empty
// cache, never a fatal error.
type FileStore struct {
	path    string
	entries map[string]*types.Point
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:    path,
		entries: make(map[string]*types.Point),
	}
}

// Load reads the cache file. Unreadable or malformed content degrades to an
// empty cache; every address simply gets re-resolved this run.
func (s *FileStore) Load() error {
	s.entries = make(map[string]*types.Point)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries map[string]*types.Point
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	if entries != nil {
		s.entries = entries
	}
	return nil
}

// Get returns the cached point for an address. found is true for negative
// entries too, with a nil point.
func (s *FileStore) Get(address string) (*types.Point, bool) {
	point, found := s.entries[address]
	return point, found
}

// Put records a result. A nil point stores the "no result" marker.
func (s *FileStore) Put(address string, point *types.Point) {
	s.entries[address] = point
}

// Save writes the whole cache back to disk.
func (s *FileStore) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode geocode cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write geocode cache: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and dry runs.
type MemoryStore struct {
	entries map[string]*types.Point
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*types.Point)}
}

// Load implements Store; a memory store starts empty.
func (s *MemoryStore) Load() error { return nil }

// Get returns the cached point for an address.
func (s *MemoryStore) Get(address string) (*types.Point, bool) {
	point, found := s.entries[address]
	return point, found
}

// Put records a result.
func (s *MemoryStore) Put(address string, point *types.Point) {
	s.entries[address] = point
}

// Save implements Store; nothing to persist.
func (s *MemoryStore) Save() error { return nil }
