package agent

import (
	"gonum.org/v1/gonum/mat"
)

// Step is one recorded transition of an episode.
type Step struct {
	Input       *mat.Dense
	Activations []*mat.Dense
	Action      Action
	Reward      int
}

// Prediction is the output row the network produced for this step.
func (s Step) Prediction() *mat.Dense {
	return s.Activations[len(s.Activations)-1]
}

// Episode is the trajectory of one game together with its total score.
type Episode struct {
	Steps []Step
	Score int
}

// Rewards lists the per-step rewards in chronological order.
func (e *Episode) Rewards() []int {
	rewards := make([]int, len(e.Steps))
	for i, s := range e.Steps {
		rewards[i] = s.Reward
	}
	return rewards
}

// QTarget is the value trained into the chosen action of a step: the
// step's own reward plus the discounted score of the whole episode. Every
// step of an episode shares the same score term.
func QTarget(reward, episodeScore int, discount float64) float64 {
	return float64(reward) + discount*float64(episodeScore)
}

// BuildTarget copies the step's prediction and overwrites the entry of the
// chosen action with q, so only that action contributes to the error.
func BuildTarget(s Step, q float64) *mat.Dense {
	target := mat.DenseCopyOf(s.Prediction())
	target.Set(0, int(s.Action), q)
	return target
}
