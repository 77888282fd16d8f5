package utils

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ScoreWindow accumulates episode scores between two log lines.
type ScoreWindow struct {
	scores []float64
	steps  int
	best   float64
	seen   int
}

// Record adds one finished episode to the window.
func (w *ScoreWindow) Record(score, steps int) {
	s := float64(score)
	if w.seen == 0 || s > w.best {
		w.best = s
	}
	w.seen++
	w.scores = append(w.scores, s)
	w.steps += steps
}

// Snapshot returns aggregated scores and resets the window. The best score
// ever recorded survives the reset.
func (w *ScoreWindow) Snapshot() ScoreSnapshot {
	snap := ScoreSnapshot{Episodes: len(w.scores), Best: w.best}
	if len(w.scores) > 0 {
		snap.Mean = stat.Mean(w.scores, nil)
		if len(w.scores) > 1 {
			snap.StdDev = stat.StdDev(w.scores, nil)
		}
		snap.Min = floats.Min(w.scores)
		snap.Max = floats.Max(w.scores)
		snap.AvgSteps = float64(w.steps) / float64(len(w.scores))
	}

	w.scores = w.scores[:0]
	w.steps = 0
	return snap
}

// ScoreSnapshot represents loggable score statistics.
type ScoreSnapshot struct {
	Episodes int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Best     float64
	AvgSteps float64
}
