package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brisk/internal/app"
	_ "go.trai.ch/brisk/internal/wiring"
)

// TestGraftDependencies resolves the whole graph the way main does.
// graft.AssertDepsValid cannot be used here: it infers dependency IDs from the
// package of the type passed to Dep[T], and every adapter exposes a type from ports.
func TestGraftDependencies(t *testing.T) {
	c, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, c.App)
	require.NotNil(t, c.Logger)
}
