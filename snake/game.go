// Package snake is the grid game the agent learns to play.
package snake

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"snakenet/agent"
)

// AppleGrowth is how many cells the snake gains per apple. One is added on
// the tick the apple is eaten and one on each of the following ticks.
const AppleGrowth = 3

// Option configures a Game.
type Option func(*Game)

// WithRand places apples using r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.intn = r.Intn
		}
	}
}

// WithMaxTicks ends an episode after n ticks even if the snake is still
// alive. Zero means no limit.
func WithMaxTicks(n int) Option {
	return func(g *Game) {
		g.maxTicks = n
	}
}

// Game implements agent.Environment.
type Game struct {
	width, height int
	body          *Body
	apple         Point
	intn          func(int) int
	maxTicks      int
	ticks         int
	over          bool
	obs           []float64
}

var _ agent.Environment = (*Game)(nil)

// New starts a game on a width×height board. Both sides must be at least 3
// so the initial snake fits.
func New(width, height int, opts ...Option) (*Game, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("snake: board must be at least 3x3 (got %dx%d)", width, height)
	}
	g := &Game{
		width:  width,
		height: height,
		body:   NewBody(width, height),
		intn:   rand.Intn,
		obs:    make([]float64, width*height*3),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxTicks < 0 {
		return nil, fmt.Errorf("snake: max ticks must be >= 0 (got %d)", g.maxTicks)
	}
	g.reset()
	return g, nil
}

func (g *Game) Width() int { return g.width }
func (g *Game) Height() int { return g.height }
func (g *Game) Ticks() int { return g.ticks }
func (g *Game) Over() bool { return g.over }
func (g *Game) Apple() Point { return g.apple }

// Body returns the snake's cells from tail to head.
func (g *Game) Body() []Point {
	return g.body.Points()
}

// Reset puts a three cell vertical snake in the middle of the board, head
// at the bottom, and drops a fresh apple.
func (g *Game) Reset() []float64 {
	g.reset()
	return g.Observe()
}

func (g *Game) reset() {
	g.body.Reset()
	x, y := g.width/2, g.height/2
	for dy := -1; dy <= 1; dy++ {
		g.body.Push(Point{X: x, Y: y + dy})
	}
	g.ticks = 0
	g.over = false
	g.placeApple()
}

// placeApple drops the apple on a uniformly chosen free cell and reports
// false when the board is full.
func (g *Game) placeApple() bool {
	free := g.body.Cap() - g.body.Len()
	if free == 0 {
		return false
	}
	k := g.intn(free)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			if g.body.Contains(p) {
				continue
			}
			if k == 0 {
				g.apple = p
				return true
			}
			k--
		}
	}
	return false
}

func (g *Game) inside(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func move(p Point, a agent.Action) Point {
	switch a {
	case agent.Up:
		p.Y--
	case agent.Down:
		p.Y++
	case agent.Left:
		p.X--
	case agent.Right:
		p.X++
	}
	return p
}

// Step advances the game by one tick in direction a.
func (g *Game) Step(a agent.Action) (agent.Outcome, bool) {
	if g.over {
		return agent.TerminalFailure, true
	}

	next := move(g.body.Head(), a)
	// the tail has not moved yet, so running into it counts
	if !g.inside(next) || g.body.Contains(next) {
		g.over = true
		return agent.TerminalFailure, true
	}

	outcome := agent.Ordinary
	ate := next == g.apple
	if ate {
		g.body.Grow(AppleGrowth)
	}
	g.body.Advance(next)
	g.ticks++

	if ate {
		outcome = agent.GoalReached
		if !g.placeApple() {
			g.over = true
			return outcome, true
		}
	}

	if g.maxTicks > 0 && g.ticks >= g.maxTicks {
		g.over = true
		return outcome, true
	}
	return outcome, false
}

// Observe encodes the board row by row. Every cell contributes three values
// (body, apple, head), each 0 or 1. The returned slice is reused by the
// next call.
func (g *Game) Observe() []float64 {
	clear(g.obs)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			i := (y*g.width + x) * 3
			if g.body.Contains(p) {
				g.obs[i] = 1
			}
			if p == g.apple {
				g.obs[i+1] = 1
			}
		}
	}
	head := g.body.Head()
	g.obs[(head.Y*g.width+head.X)*3+2] = 1
	return g.obs
}

// String draws the board, mainly for debugging. 'H' is the head, 'o' the
// rest of the body and '*' the apple.
func (g *Game) String() string {
	var sb strings.Builder
	head := g.body.Head()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			switch {
			case p == head:
				sb.WriteByte('H')
			case g.body.Contains(p):
				sb.WriteByte('o')
			case p == g.apple:
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
