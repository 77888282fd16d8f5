package agent

// Outcome classifies what a single environment step led to.
type Outcome int

const (
	Ordinary Outcome = iota
	GoalReached
	TerminalFailure
)

// Rewards assigned per outcome.
const (
	RewardOrdinary = 1
	RewardGoal     = 20
	RewardFailure  = -10
)

// Reward converts the outcome into the integer reward used for training.
func (o Outcome) Reward() int {
	switch o {
	case GoalReached:
		return RewardGoal
	case TerminalFailure:
		return RewardFailure
	default:
		return RewardOrdinary
	}
}

func (o Outcome) String() string {
	switch o {
	case Ordinary:
		return "ordinary"
	case GoalReached:
		return "goal"
	case TerminalFailure:
		return "failure"
	default:
		return "?"
	}
}

// Environment is the episodic world the agent acts in. Observations have
// the same length for the lifetime of an instance. Once Step reports a
// terminal state no further Step calls are valid until Reset.
type Environment interface {
	Reset() []float64
	Step(a Action) (outcome Outcome, terminal bool)
	Observe() []float64
}

// EnvFactory builds a fresh environment for every episode.
type EnvFactory func() Environment
