package watcher

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/brisk/internal/core/ports"
)

// ChangeFilter drops write events whose file content did not actually change,
// such as editors rewriting a file on save without modifications.
type ChangeFilter struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewChangeFilter creates an empty ChangeFilter.
func NewChangeFilter() *ChangeFilter {
	return &ChangeFilter{hashes: make(map[string]uint64)}
}

// Prime records the current content hash of every file below root that a
// Watcher started with the same root and ignore directories would observe.
func (f *ChangeFilter) Prime(root string, ignore ...string) {
	scope := NewScope(root, ignore...)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if d.IsDir() {
			if path != root && scope.Excluded(path) {
				return fs.SkipDir
			}
			return nil
		}
		if sum, ok := hashFile(path); ok {
			f.mu.Lock()
			f.hashes[path] = sum
			f.mu.Unlock()
		}
		return nil
	})
}

// Changed reports whether event represents a content change and records the new hash.
func (f *ChangeFilter) Changed(event ports.WatchEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch event.Operation {
	case ports.OpRemove, ports.OpRename:
		delete(f.hashes, event.Path)
		return true
	case ports.OpCreate, ports.OpWrite:
	}

	sum, ok := hashFile(event.Path)
	if !ok {
		// Directories and unreadable files always count as changes.
		return true
	}

	prev, seen := f.hashes[event.Path]
	f.hashes[event.Path] = sum
	return !seen || prev != sum
}

func hashFile(path string) (uint64, bool) {
	//nolint:gosec // path comes from the watched source tree
	file, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		return 0, false
	}

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, false
	}
	return h.Sum64(), true
}
