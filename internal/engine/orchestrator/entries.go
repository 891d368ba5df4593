package orchestrator

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/zerr"
)

// EntryExtensions are the file extensions compiled as entry points.
var EntryExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

// declarationSuffixes mark type-only files that are never entry points.
var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts"}

// DiscoverEntryPoints returns the sorted source files below dir that the engine compiles.
func DiscoverEntryPoints(dir string) ([]string, error) {
	var walkErr error
	var entries []string

	for path, err := range walkFiles(dir) {
		if err != nil {
			walkErr = err
			break
		}
		if isEntryPoint(path) {
			entries = append(entries, path)
		}
	}

	if walkErr != nil {
		return nil, errors.Join(domain.ErrNoEntryPoints, zerr.With(zerr.Wrap(walkErr, "scan source directory"), "dir", dir))
	}
	if len(entries) == 0 {
		return nil, errors.Join(domain.ErrNoEntryPoints, zerr.With(zerr.New("source directory has no buildable files"), "dir", dir))
	}

	slices.Sort(entries)
	return entries, nil
}

func isEntryPoint(path string) bool {
	name := filepath.Base(path)
	for _, suffix := range declarationSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return slices.Contains(EntryExtensions, filepath.Ext(name))
}

// walkFiles yields every file below root, skipping hidden directories and node_modules.
// A walk error is yielded once and ends the sequence.
func walkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
