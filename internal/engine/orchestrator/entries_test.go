package orchestrator_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/engine/orchestrator"
)

func TestDiscoverEntryPoints(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{
		"index.ts",
		"app.tsx",
		"worker.mts",
		"legacy.cjs",
		"lib/util.js",
		"lib/view.jsx",
		"lib/esm.mjs",
		"lib/common.cts",
		"types.d.ts",
		"lib/types.d.mts",
		"lib/types.d.cts",
		"styles.css",
		"README.md",
		"node_modules/dep/index.js",
		".cache/stale.ts",
	} {
		writeFile(t, filepath.Join(src, name))
	}

	entries, err := orchestrator.DiscoverEntryPoints(src)
	require.NoError(t, err)

	want := []string{
		filepath.Join(src, "app.tsx"),
		filepath.Join(src, "index.ts"),
		filepath.Join(src, "legacy.cjs"),
		filepath.Join(src, "lib", "common.cts"),
		filepath.Join(src, "lib", "esm.mjs"),
		filepath.Join(src, "lib", "util.js"),
		filepath.Join(src, "lib", "view.jsx"),
		filepath.Join(src, "worker.mts"),
	}
	assert.Equal(t, want, entries)
}

func TestDiscoverEntryPoints_MissingDirectory(t *testing.T) {
	_, err := orchestrator.DiscoverEntryPoints(filepath.Join(t.TempDir(), "src"))
	require.ErrorIs(t, err, domain.ErrNoEntryPoints)
}

func TestDiscoverEntryPoints_OnlyDeclarations(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "globals.d.ts"))

	_, err := orchestrator.DiscoverEntryPoints(src)
	require.ErrorIs(t, err, domain.ErrNoEntryPoints)
}
