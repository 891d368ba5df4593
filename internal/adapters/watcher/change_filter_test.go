package watcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brisk/internal/adapters/watcher"
	"go.trai.ch/brisk/internal/core/ports"
)

func TestChangeFilter(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "index.ts")
	require.NoError(t, os.WriteFile(file, []byte("export const a = 1;\n"), 0o600))

	f := watcher.NewChangeFilter()
	f.Prime(root)

	write := ports.WatchEvent{Path: file, Operation: ports.OpWrite}
	assert.False(t, f.Changed(write), "rewrite with identical content is ignored")

	require.NoError(t, os.WriteFile(file, []byte("export const a = 2;\n"), 0o600))
	assert.True(t, f.Changed(write))
	assert.False(t, f.Changed(write), "the new content is remembered")

	assert.True(t, f.Changed(ports.WatchEvent{Path: file, Operation: ports.OpRemove}))
	assert.True(t, f.Changed(write), "a removed file is unknown again")

	created := filepath.Join(root, "new.ts")
	require.NoError(t, os.WriteFile(created, []byte("export {};\n"), 0o600))
	assert.True(t, f.Changed(ports.WatchEvent{Path: created, Operation: ports.OpCreate}))

	assert.True(t, f.Changed(ports.WatchEvent{Path: root, Operation: ports.OpCreate}), "directories always count")
}

func TestChangeFilter_PrimeSkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	dep := filepath.Join(root, "node_modules", "lib", "index.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(dep), 0o750))
	require.NoError(t, os.WriteFile(dep, []byte("module.exports = {};\n"), 0o600))

	f := watcher.NewChangeFilter()
	f.Prime(root)

	assert.True(t, f.Changed(ports.WatchEvent{Path: dep, Operation: ports.OpWrite}), "node_modules is never primed")
}

func TestChangeFilter_PrimeSkipsIgnoreDirs(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "dist")
	bundle := filepath.Join(out, "index.js")
	require.NoError(t, os.MkdirAll(out, 0o750))
	require.NoError(t, os.WriteFile(bundle, []byte("1"), 0o600))

	f := watcher.NewChangeFilter()
	f.Prime(root, out)

	assert.True(t, f.Changed(ports.WatchEvent{Path: bundle, Operation: ports.OpWrite}), "ignored dirs are never primed")
}
