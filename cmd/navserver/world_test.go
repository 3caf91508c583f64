package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"polynav"
)

func newTestWorld(t *testing.T) *world {
	t.Helper()
	w := newWorld(defaultConfig(), zap.NewNop())
	data, err := os.ReadFile(roomScene)
	require.NoError(t, err)
	_, err = w.loadScene(data)
	require.NoError(t, err)
	return w
}

func TestStepKeepsOwnFootprintOffBetweenTicks(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.spawn("a", polynav.Point{X: 10, Y: 10})
	require.NoError(t, err)
	_, err = w.spawn("b", polynav.Point{X: 90, Y: 10})
	require.NoError(t, err)

	pos, next, arrived := w.step("a", polynav.Point{X: 20, Y: 10}, 1)
	assert.Equal(t, polynav.Point{X: 20, Y: 10}, next)
	assert.Equal(t, polynav.Point{X: 11, Y: 10}, pos)
	assert.False(t, arrived)
	assert.False(t, w.pf.ObstacleEnabled("a"))
	assert.True(t, w.pf.ObstacleEnabled("b"))

	w.step("a", polynav.Point{X: 20, Y: 10}, 1)
	assert.False(t, w.pf.ObstacleEnabled("a"))

	w.step("b", polynav.Point{X: 80, Y: 10}, 1)
	assert.True(t, w.pf.ObstacleEnabled("a"))
	assert.False(t, w.pf.ObstacleEnabled("b"))

	_, _, err = w.route(polynav.Point{X: 30, Y: 10}, polynav.Point{X: 30, Y: 40})
	require.NoError(t, err)
	assert.True(t, w.pf.ObstacleEnabled("a"))
	assert.True(t, w.pf.ObstacleEnabled("b"))
}

func TestDespawnClearsPlanningWalker(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.spawn("a", polynav.Point{X: 10, Y: 10})
	require.NoError(t, err)

	w.step("a", polynav.Point{X: 20, Y: 10}, 1)
	require.Equal(t, polynav.OwnerID("a"), w.planning)

	w.despawn("a")
	assert.Empty(t, w.planning)
	assert.False(t, w.pf.HasObstacle("a"))

	// The id is free again and its footprint comes back enabled.
	_, err = w.spawn("a", polynav.Point{X: 10, Y: 10})
	require.NoError(t, err)
	assert.True(t, w.pf.ObstacleEnabled("a"))
}
