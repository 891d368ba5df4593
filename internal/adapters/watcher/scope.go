package watcher

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// Scope decides which paths below a watch root are observed.
// Hidden directories (including .brisk), node_modules and the ignore
// directories are excluded together with everything below them.
type Scope struct {
	root   string
	ignore []string
}

// NewScope creates a Scope for root. Ignore directories outside root have no effect.
func NewScope(root string, ignore ...string) Scope {
	cleaned := make([]string, 0, len(ignore))
	for _, dir := range ignore {
		if dir != "" {
			cleaned = append(cleaned, filepath.Clean(dir))
		}
	}
	return Scope{root: filepath.Clean(root), ignore: cleaned}
}

// Excluded reports whether path lies in an unobserved part of the tree.
func (s Scope) Excluded(path string) bool {
	path = filepath.Clean(path)
	if slices.ContainsFunc(s.ignore, func(dir string) bool { return Within(path, dir) }) {
		return true
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return slices.ContainsFunc(strings.Split(rel, string(filepath.Separator)), skipDir)
}

// Dirs yields every observed directory below start, start included.
func (s Scope) Dirs(start string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if s.Excluded(path) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Within reports whether path is dir or lies below it.
func Within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}
