package fontsrc

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Database is a thin directory above Source: it loads font files from disk,
// canonicalizes their paths, and deduplicates repeated loads of the same
// file. Clearing the database drops its own handles; a Source already held
// by a caller stays valid (Go's GC keeps its backing bytes alive).
type Database struct {
	mu      sync.Mutex
	byPath  map[string]*Source // canonical path + face index -> Source
	sources []*Source
	first   *Source
}

// NewDatabase returns an empty font database.
func NewDatabase() *Database {
	return &Database{byPath: make(map[string]*Source)}
}

func cacheKey(path string, faceIndex int) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Clean(abs) + "#" + strconv.Itoa(faceIndex)
}

// LoadFile loads face 0 of a font file, returning a shared Source. A second
// call with the same canonical path returns the already-loaded Source
// rather than reading the file again.
func (d *Database) LoadFile(path string) (*Source, error) {
	return d.LoadFileFace(path, 0)
}

// LoadFileFace loads a specific face of a font collection file from disk.
func (d *Database) LoadFileFace(path string, faceIndex int) (*Source, error) {
	key := cacheKey(path, faceIndex)

	d.mu.Lock()
	if s, ok := d.byPath[key]; ok {
		d.mu.Unlock()
		return s, nil
	}
	d.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.loadData(key, data, faceIndex)
}

// LoadData registers font bytes already in memory, without path-based
// deduplication (the caller owns identity).
func (d *Database) LoadData(data []byte) (*Source, error) {
	return d.loadData("", data, 0)
}

func (d *Database) loadData(key string, data []byte, faceIndex int) (*Source, error) {
	src, err := NewFaceIndex(data, faceIndex)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if key != "" {
		if existing, ok := d.byPath[key]; ok {
			return existing, nil
		}
		d.byPath[key] = src
	}
	d.sources = append(d.sources, src)
	if d.first == nil {
		d.first = src
	}
	return src, nil
}

// Default returns the first font loaded into the database, or nil if empty.
func (d *Database) Default() *Source {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.first
}

// Sources returns every font currently tracked by the database.
func (d *Database) Sources() []*Source {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Source, len(d.sources))
	copy(out, d.sources)
	return out
}

// Count returns the number of fonts currently loaded.
func (d *Database) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sources)
}

// Clear drops all handles held by the database. Sources already retrieved
// by a caller remain valid; they are simply no longer deduplicated.
func (d *Database) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byPath = make(map[string]*Source)
	d.sources = nil
	d.first = nil
}
