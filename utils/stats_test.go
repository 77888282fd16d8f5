package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreWindowSnapshot(t *testing.T) {
	var w ScoreWindow
	w.Record(-8, 3)
	w.Record(12, 7)
	w.Record(2, 5)

	snap := w.Snapshot()
	require.Equal(t, 3, snap.Episodes)
	assert.InDelta(t, 2.0, snap.Mean, 1e-12)
	assert.InDelta(t, 10.0, snap.StdDev, 1e-12)
	assert.Equal(t, -8.0, snap.Min)
	assert.Equal(t, 12.0, snap.Max)
	assert.Equal(t, 12.0, snap.Best)
	assert.InDelta(t, 5.0, snap.AvgSteps, 1e-12)

	assert.Empty(t, w.scores, "window was not reset")
	assert.Zero(t, w.steps)
}

func TestScoreWindowKeepsBestAcrossResets(t *testing.T) {
	var w ScoreWindow
	w.Record(30, 10)
	w.Snapshot()
	w.Record(-10, 1)

	snap := w.Snapshot()
	assert.Equal(t, 1, snap.Episodes)
	assert.Equal(t, -10.0, snap.Mean)
	assert.Zero(t, snap.StdDev)
	assert.Equal(t, 30.0, snap.Best)
}

func TestScoreWindowEmpty(t *testing.T) {
	var w ScoreWindow
	snap := w.Snapshot()
	assert.Zero(t, snap.Episodes)
	assert.Zero(t, snap.Mean)
}
