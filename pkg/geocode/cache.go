package geocode

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// Cache is a JSON file cache of geocoding results keyed by "place, state".
// Entries are never evicted; the universe of Indian districts is small.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]model.Coord
}

// OpenCache loads the cache file at path, creating an empty cache when the
// file does not exist yet.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]model.Coord),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: read cache %s", path)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, eris.Wrapf(err, "geocode: parse cache %s", path)
	}
	return c, nil
}

// Get returns the cached coordinates for key, if present.
func (c *Cache) Get(key string) (model.Coord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	coord, ok := c.entries[key]
	return coord, ok
}

// Put stores a result and rewrites the cache file.
func (c *Cache) Put(key string, coord model.Coord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coord

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return eris.Wrap(err, "geocode: marshal cache")
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "geocode: create cache dir %s", dir)
		}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geocode: write cache %s", c.path)
	}
	return nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
