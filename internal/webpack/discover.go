package webpack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Platforms are the customization targets, in entry order.
var Platforms = []string{"desktop", "mobile"}

// indexNames are the accepted entry files, in preference order.
var indexNames = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}

// Entry is one bundle: its output name and source file.
type Entry struct {
	Key  string
	Path string
}

// Entries is an insertion-ordered entry mapping. It serializes as a JSON
// object whose keys appear in insertion order.
type Entries struct {
	items []Entry
	index map[string]int
}

// NewEntries returns an empty mapping.
func NewEntries() *Entries {
	return &Entries{index: map[string]int{}}
}

// Set adds key or replaces its path, keeping its original position.
func (e *Entries) Set(key, path string) {
	if e.index == nil {
		e.index = map[string]int{}
	}
	if i, ok := e.index[key]; ok {
		e.items[i].Path = path
		return
	}
	e.index[key] = len(e.items)
	e.items = append(e.items, Entry{Key: key, Path: path})
}

// Get returns the path for key.
func (e *Entries) Get(key string) (string, bool) {
	i, ok := e.index[key]
	if !ok {
		return "", false
	}
	return e.items[i].Path, true
}

// Len returns the number of entries.
func (e *Entries) Len() int { return len(e.items) }

// All returns the entries in insertion order.
func (e *Entries) All() []Entry {
	out := make([]Entry, len(e.items))
	copy(out, e.items)
	return out
}

// Keys returns the entry keys in insertion order.
func (e *Entries) Keys() []string {
	keys := make([]string, len(e.items))
	for i, it := range e.items {
		keys[i] = it.Key
	}
	return keys
}

// EntryKey returns the bundle name for an app and platform.
func EntryKey(app, platform string) string {
	return app + "/customize." + platform
}

// Discover finds <app>/<platform>/index.* files under appsDir. Apps are
// visited in lexical order and platforms in Platforms order. A missing
// appsDir yields no entries.
func Discover(appsDir string) (*Entries, error) {
	entries := NewEntries()

	dirents, err := os.ReadDir(appsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("reading apps directory %s: %w", appsDir, err)
	}

	var apps []string
	for _, d := range dirents {
		if d.IsDir() {
			apps = append(apps, d.Name())
		}
	}
	sort.Strings(apps)

	for _, app := range apps {
		for _, platform := range Platforms {
			dir := filepath.Join(appsDir, app, platform)
			if path, ok := findIndex(dir); ok {
				entries.Set(EntryKey(app, platform), path)
			}
		}
	}
	return entries, nil
}

func findIndex(dir string) (string, bool) {
	for _, name := range indexNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
