package agent

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"snakenet/m"
	"snakenet/utils"
)

// Learner is the model the training loop drives. *m.Network implements it.
type Learner interface {
	Forward(x mat.Matrix) ([]*mat.Dense, error)
	Backward(x, y mat.Matrix, activations []*mat.Dense, learningRate float64) error
}

// Config captures the knobs of a training run.
type Config struct {
	Episodes       int
	LearningRate   float64
	DiscountFactor float64
}

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		Episodes:       200000,
		LearningRate:   0.001,
		DiscountFactor: 0.9,
	}
}

func (c Config) validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("agent: episodes must be > 0 (got %d)", c.Episodes)
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("agent: learning rate must be positive (got %g)", c.LearningRate)
	}
	if math.IsNaN(c.DiscountFactor) || math.IsInf(c.DiscountFactor, 0) {
		return fmt.Errorf("agent: discount factor must be finite (got %g)", c.DiscountFactor)
	}
	return nil
}

// EpisodeResult is reported to the Observer after every episode, before the
// episode is replayed into the model.
type EpisodeResult struct {
	Episode int
	Score   int
	Steps   int
}

// Observer receives per-episode results.
type Observer interface {
	ObserveEpisode(EpisodeResult)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(EpisodeResult)

func (f ObserverFunc) ObserveEpisode(r EpisodeResult) { f(r) }

// Run trains learner for cfg.Episodes episodes. Each episode is played
// greedily on a fresh environment from newEnv, then every recorded step is
// replayed through Backward. observer may be nil. The returned stats cover
// the whole run; on error they cover the run up to the failure.
func Run(learner Learner, cfg Config, newEnv EnvFactory, observer Observer) (*utils.TimingStats, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, errors.New("agent: nil learner")
	}
	if newEnv == nil {
		return nil, errors.New("agent: nil environment factory")
	}

	stats := &utils.TimingStats{}
	start := time.Now()
	defer func() { stats.TotalTime = time.Since(start) }()

	for episode := 1; episode <= cfg.Episodes; episode++ {
		env := newEnv()
		if env == nil {
			return stats, fmt.Errorf("agent: episode %d: environment factory returned nil", episode)
		}

		ep, err := playEpisode(learner, env, stats)
		if err != nil {
			return stats, fmt.Errorf("agent: episode %d: %w", episode, err)
		}
		stats.Episodes++
		stats.Steps += len(ep.Steps)

		if observer != nil {
			t := time.Now()
			observer.ObserveEpisode(EpisodeResult{Episode: episode, Score: ep.Score, Steps: len(ep.Steps)})
			utils.Since(&stats.ObserverTime, t)
		}

		if err := replay(learner, ep, cfg.LearningRate, cfg.DiscountFactor, stats); err != nil {
			return stats, fmt.Errorf("agent: episode %d: %w", episode, err)
		}
	}
	return stats, nil
}

// PlayEpisode resets env and acts greedily until it reports a terminal
// state. The model is not modified.
func PlayEpisode(learner Learner, env Environment) (*Episode, error) {
	return playEpisode(learner, env, &utils.TimingStats{})
}

func playEpisode(learner Learner, env Environment, stats *utils.TimingStats) (*Episode, error) {
	t := time.Now()
	obs := env.Reset()
	t = utils.Since(&stats.EnvironmentTime, t)

	ep := &Episode{}
	for {
		if len(obs) == 0 {
			return nil, fmt.Errorf("step %d: %w: empty observation", len(ep.Steps), m.ErrShapeMismatch)
		}
		// the environment may reuse its observation buffer
		input := m.RowVector(append([]float64(nil), obs...))

		activations, err := learner.Forward(input)
		t = utils.Since(&stats.ForwardPassTime, t)
		if err != nil {
			return nil, fmt.Errorf("step %d: forward: %w", len(ep.Steps), err)
		}
		if len(activations) == 0 {
			return nil, fmt.Errorf("step %d: %w: no activations", len(ep.Steps), m.ErrShapeMismatch)
		}
		output := m.Row(activations[len(activations)-1])
		if len(output) != NumActions {
			return nil, fmt.Errorf("step %d: %w: output row has %d values, want %d", len(ep.Steps), m.ErrShapeMismatch, len(output), NumActions)
		}
		action := SelectAction(output)

		outcome, terminal := env.Step(action)
		t = utils.Since(&stats.EnvironmentTime, t)

		reward := outcome.Reward()
		ep.Steps = append(ep.Steps, Step{
			Input:       input,
			Activations: activations,
			Action:      action,
			Reward:      reward,
		})
		ep.Score += reward

		if terminal {
			return ep, nil
		}
		obs = env.Observe()
		t = utils.Since(&stats.EnvironmentTime, t)
	}
}

// Replay trains learner on every step of a finished episode in
// chronological order.
func Replay(learner Learner, ep *Episode, learningRate, discount float64) error {
	return replay(learner, ep, learningRate, discount, &utils.TimingStats{})
}

func replay(learner Learner, ep *Episode, learningRate, discount float64, stats *utils.TimingStats) error {
	for i, step := range ep.Steps {
		if len(step.Activations) == 0 {
			return fmt.Errorf("replay step %d: %w: no cached activations", i, m.ErrShapeMismatch)
		}
		if _, width := step.Prediction().Dims(); int(step.Action) < 0 || int(step.Action) >= width {
			return fmt.Errorf("replay step %d: %w: action %d outside output row of %d", i, m.ErrShapeMismatch, step.Action, width)
		}
		q := QTarget(step.Reward, ep.Score, discount)
		target := BuildTarget(step, q)

		t := time.Now()
		err := learner.Backward(step.Input, target, step.Activations, learningRate)
		utils.Since(&stats.BackwardPassTime, t)
		if err != nil {
			return fmt.Errorf("replay step %d: backward: %w", i, err)
		}
	}
	return nil
}
