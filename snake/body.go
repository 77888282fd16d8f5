package snake

// Point is a cell on the board. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Body is the snake stored as a fixed-capacity ring of cells. Slots are
// sized for the whole board so the snake can never outgrow it, and an
// occupancy grid answers Contains without walking the ring.
type Body struct {
	width    int
	cells    []Point
	occupied []bool
	head     int // slot of the newest cell
	tail     int // slot of the oldest cell
	n        int
	grow     int
}

// NewBody returns an empty body for a width×height board.
func NewBody(width, height int) *Body {
	return &Body{
		width:    width,
		cells:    make([]Point, width*height),
		occupied: make([]bool, width*height),
		head:     -1,
	}
}

// Reset empties the body and drops any pending growth.
func (b *Body) Reset() {
	clear(b.occupied)
	b.head, b.tail, b.n, b.grow = -1, 0, 0, 0
}

func (b *Body) index(p Point) int {
	return p.Y*b.width + p.X
}

func (b *Body) Len() int {
	return b.n
}

func (b *Body) Cap() int {
	return len(b.cells)
}

// Head is the newest cell. It panics on an empty body.
func (b *Body) Head() Point {
	if b.n == 0 {
		panic("snake: head of empty body")
	}
	return b.cells[b.head]
}

// Tail is the oldest cell. It panics on an empty body.
func (b *Body) Tail() Point {
	if b.n == 0 {
		panic("snake: tail of empty body")
	}
	return b.cells[b.tail]
}

// Contains reports whether p is covered by the body. p must be on the board.
func (b *Body) Contains(p Point) bool {
	return b.occupied[b.index(p)]
}

// Push adds p as the new head without giving up the tail.
func (b *Body) Push(p Point) {
	if b.n == len(b.cells) {
		panic("snake: body overflow")
	}
	b.head = (b.head + 1) % len(b.cells)
	b.cells[b.head] = p
	b.occupied[b.index(p)] = true
	b.n++
}

// PopTail removes and returns the oldest cell.
func (b *Body) PopTail() Point {
	p := b.Tail()
	b.occupied[b.index(p)] = false
	b.tail = (b.tail + 1) % len(b.cells)
	b.n--
	return p
}

// Grow makes the next n calls to Advance keep their tail.
func (b *Body) Grow(n int) {
	b.grow += n
}

func (b *Body) Pending() int {
	return b.grow
}

// Advance moves the snake onto p: p becomes the head and the tail is
// dropped unless growth is pending.
func (b *Body) Advance(p Point) {
	b.Push(p)
	if b.grow > 0 {
		b.grow--
		return
	}
	b.PopTail()
}

// Points lists the body from tail to head.
func (b *Body) Points() []Point {
	out := make([]Point, b.n)
	for i := range out {
		out[i] = b.cells[(b.tail+i)%len(b.cells)]
	}
	return out
}
