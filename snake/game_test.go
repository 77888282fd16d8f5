package snake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"snakenet/agent"
)

func newGame(t *testing.T, w, h int, opts ...Option) *Game {
	t.Helper()
	g, err := New(w, h, append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)...)
	require.NoError(t, err)
	return g
}

// setBody replaces the snake with cells listed from tail to head.
func setBody(g *Game, cells ...Point) {
	g.body.Reset()
	for _, p := range cells {
		g.body.Push(p)
	}
}

func TestNewRejectsSmallBoards(t *testing.T) {
	for _, size := range [][2]int{{2, 5}, {5, 2}, {0, 0}, {-3, 4}} {
		_, err := New(size[0], size[1])
		assert.Error(t, err, "%dx%d", size[0], size[1])
	}
	_, err := New(5, 5, WithMaxTicks(-1))
	assert.Error(t, err)
}

func TestInitialState(t *testing.T) {
	g := newGame(t, 10, 10)
	assert.Equal(t, []Point{{5, 4}, {5, 5}, {5, 6}}, g.Body())
	assert.False(t, g.body.Contains(g.Apple()))
	assert.False(t, g.Over())

	obs := g.Observe()
	require.Len(t, obs, 10*10*3)
	var body, apple, head float64
	for i := 0; i < len(obs); i += 3 {
		body += obs[i]
		apple += obs[i+1]
		head += obs[i+2]
	}
	assert.Equal(t, 3.0, body)
	assert.Equal(t, 1.0, apple)
	assert.Equal(t, 1.0, head)
	assert.Equal(t, 1.0, obs[(6*10+5)*3+2], "head flag at (5,6)")
	assert.Equal(t, 1.0, obs[(4*10+5)*3], "body flag at (5,4)")
	assert.Equal(t, 0.0, obs[(4*10+5)*3+2])
}

func TestObserveLayout(t *testing.T) {
	g := newGame(t, 4, 3)
	setBody(g, Point{0, 0}, Point{1, 0}, Point{1, 1})
	g.apple = Point{3, 2}

	want := make([]float64, 4*3*3)
	want[(0*4+0)*3] = 1
	want[(0*4+1)*3] = 1
	want[(1*4+1)*3] = 1
	want[(1*4+1)*3+2] = 1
	want[(2*4+3)*3+1] = 1
	assert.Equal(t, want, g.Observe())
}

func TestStepOrdinaryMove(t *testing.T) {
	g := newGame(t, 5, 5)
	g.apple = Point{0, 0}

	outcome, done := g.Step(agent.Left)
	assert.Equal(t, agent.Ordinary, outcome)
	assert.False(t, done)
	assert.Equal(t, []Point{{2, 2}, {2, 3}, {1, 3}}, g.Body())
	assert.Equal(t, 1, g.Ticks())
}

func TestStepIntoNeckFails(t *testing.T) {
	g := newGame(t, 5, 5)
	outcome, done := g.Step(agent.Up)
	assert.Equal(t, agent.TerminalFailure, outcome)
	assert.True(t, done)
	assert.True(t, g.Over())
}

func TestStepOffBoard(t *testing.T) {
	cases := []struct {
		name  string
		moves []agent.Action
	}{
		{"bottom", []agent.Action{agent.Down, agent.Down}},
		{"left", []agent.Action{agent.Left, agent.Left, agent.Left}},
		{"right", []agent.Action{agent.Right, agent.Right, agent.Right}},
		{"top", []agent.Action{agent.Left, agent.Up, agent.Up, agent.Up, agent.Up}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t, 5, 5)
			g.apple = Point{4, 0}
			if tc.name == "right" || tc.name == "top" {
				g.apple = Point{0, 4}
			}
			last := len(tc.moves) - 1
			for i, a := range tc.moves {
				outcome, done := g.Step(a)
				if i < last {
					require.Equal(t, agent.Ordinary, outcome, "move %d", i)
					require.False(t, done, "move %d", i)
					continue
				}
				assert.Equal(t, agent.TerminalFailure, outcome)
				assert.True(t, done)
			}
		})
	}
}

func TestStepIntoTailFails(t *testing.T) {
	g := newGame(t, 5, 5)
	setBody(g, Point{1, 2}, Point{2, 2}, Point{2, 3}, Point{1, 3})
	g.apple = Point{4, 4}

	outcome, done := g.Step(agent.Up)
	assert.Equal(t, agent.TerminalFailure, outcome)
	assert.True(t, done)
}

func TestStepAfterGameOver(t *testing.T) {
	g := newGame(t, 5, 5)
	g.Step(agent.Up)
	outcome, done := g.Step(agent.Left)
	assert.Equal(t, agent.TerminalFailure, outcome)
	assert.True(t, done)
}

func TestEatingGrowsSnake(t *testing.T) {
	g := newGame(t, 7, 7)
	g.apple = Point{3, 5}

	outcome, done := g.Step(agent.Down)
	require.Equal(t, agent.GoalReached, outcome)
	require.False(t, done)
	assert.Equal(t, 4, g.body.Len())
	assert.NotEqual(t, Point{3, 5}, g.Apple())
	assert.False(t, g.body.Contains(g.Apple()), "apple placed on the snake")

	// move away from the new apple along the bottom row and the left column
	g.apple = Point{6, 0}
	lengths := []int{5, 6, 6, 6}
	moves := []agent.Action{agent.Left, agent.Left, agent.Left, agent.Down}
	for i, a := range moves {
		outcome, done := g.Step(a)
		require.Equal(t, agent.Ordinary, outcome, "move %d", i)
		require.False(t, done)
		assert.Equal(t, lengths[i], g.body.Len(), "move %d", i)
	}
}

func TestFillingBoardEndsGame(t *testing.T) {
	g := newGame(t, 3, 3)
	setBody(g,
		Point{0, 0}, Point{1, 0}, Point{2, 0},
		Point{2, 1}, Point{1, 1}, Point{0, 1},
		Point{0, 2}, Point{1, 2},
	)
	g.apple = Point{2, 2}

	outcome, done := g.Step(agent.Right)
	assert.Equal(t, agent.GoalReached, outcome)
	assert.True(t, done)
	assert.Equal(t, 9, g.body.Len())
}

func TestMaxTicksTruncates(t *testing.T) {
	g := newGame(t, 10, 10, WithMaxTicks(2))
	g.apple = Point{0, 0}

	outcome, done := g.Step(agent.Left)
	assert.Equal(t, agent.Ordinary, outcome)
	assert.False(t, done)

	outcome, done = g.Step(agent.Left)
	assert.Equal(t, agent.Ordinary, outcome)
	assert.True(t, done)
	assert.True(t, g.Over())
}

func TestResetRestoresStart(t *testing.T) {
	g := newGame(t, 6, 6, WithMaxTicks(5))
	g.Step(agent.Left)
	g.Step(agent.Up)
	g.Step(agent.Up)
	g.Step(agent.Up)

	obs := g.Reset()
	assert.Len(t, obs, 6*6*3)
	assert.Equal(t, []Point{{3, 2}, {3, 3}, {3, 4}}, g.Body())
	assert.Equal(t, 0, g.Ticks())
	assert.False(t, g.Over())

	outcome, done := g.Step(agent.Left)
	if outcome != agent.GoalReached {
		assert.Equal(t, agent.Ordinary, outcome)
	}
	assert.False(t, done)
}

func TestApplePlacementIsSeeded(t *testing.T) {
	a, err := New(8, 8, WithRand(rand.New(rand.NewSource(99))))
	require.NoError(t, err)
	b, err := New(8, 8, WithRand(rand.New(rand.NewSource(99))))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Apple(), b.Apple())
		a.Reset()
		b.Reset()
	}
}

func TestAppleNeverOnSnake(t *testing.T) {
	g := newGame(t, 3, 3)
	seen := map[Point]bool{}
	for i := 0; i < 200; i++ {
		g.Reset()
		require.False(t, g.body.Contains(g.Apple()))
		seen[g.Apple()] = true
	}
	// six free cells around the initial snake
	assert.Len(t, seen, 6)
}

func TestString(t *testing.T) {
	g := newGame(t, 3, 3)
	g.apple = Point{0, 0}
	assert.Equal(t, "*o.\n.o.\n.H.\n", g.String())
}
