/*
Package maze provides tools for creating and navigating rotating grid mazes.

A maze is a rectangular Grid of wall and open cells carved with randomized
depth-first backtracking, so every pair of open cells is joined by exactly one
simple path. Start and goal sit in opposite corners and the shortest path
between them is computed once with a breadth-first search.

A Run wraps a generated maze with mutable navigation state. Moves are
expressed against the rendered view, which may be rotated and flipped by a
Transform; the Run translates each visual direction back into a canonical
displacement before validating it against the untransformed grid.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	minDimension = 3
)

var (
	// carveOffsets are the 2-step cardinal moves between carving cells: north, south, west, east.
	carveOffsets = [4]Position{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
	// neighborOffsets are the unit 4-connected moves used by path search.
	neighborOffsets = [4]Position{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrNoPath            = errors.New("no path found between start and goal")
)

// Layout is the immutable output of a single generation.
type Layout struct {
	Grid              Grid     // Carved grid
	Start             Position // Fixed top-left cell (1,1)
	Goal              Position // Fixed bottom-right cell (width-2, height-2)
	OptimalPathLength int      // Shortest 4-connected hop count from Start to Goal
}

// Generator carves perfect mazes of a fixed size.
type Generator struct {
	width  int
	height int
	rng    *rand.Rand
}

// NewGenerator returns a generator for a width x height maze.
// Even dimensions are bumped by one so both are odd.
func NewGenerator(width, height int, rng *rand.Rand) (*Generator, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	width, height = oddUp(width), oddUp(height)
	if min(width, height) < minDimension {
		return nil, fmt.Errorf("%w: %dx%d is too small", ErrInvalidDimensions, width, height)
	}

	if rng == nil {
		return nil, errors.New("nil random source")
	}

	return &Generator{width: width, height: height, rng: rng}, nil
}

// Width returns the odd-adjusted width.
func (g *Generator) Width() int { return g.width }

// Height returns the odd-adjusted height.
func (g *Generator) Height() int { return g.height }

// Generate carves a new maze and computes its optimal path length.
// A missing path means the carving produced a malformed grid; it is reported as ErrNoPath
// and no layout is returned.
func (g *Generator) Generate() (*Layout, error) {
	grid := newWallGrid(g.width, g.height)
	g.carve(grid, Position{X: 1, Y: 1})

	start := Position{X: 1, Y: 1}
	goal := Position{X: g.width - 2, Y: g.height - 2}

	length, err := ShortestPath(grid, start, goal)
	if err != nil {
		return nil, fmt.Errorf("generating %dx%d maze: %w", g.width, g.height, err)
	}

	return &Layout{
		Grid:              grid,
		Start:             start,
		Goal:              goal,
		OptimalPathLength: length,
	}, nil
}

// carveFrame is one level of the backtracking walk.
type carveFrame struct {
	pos  Position
	dirs [4]Position
	next int
}

// carve runs recursive backtracking with an explicit stack. Offsets are shuffled when a
// cell is entered and tried in order, which visits cells in the same order as the
// recursive formulation for the same random source.
func (g *Generator) carve(grid Grid, origin Position) {
	stack := []*carveFrame{g.enter(grid, origin)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++

		target := top.pos.Add(d.X, d.Y)
		if !grid.InBound(target) || grid.At(target) != Wall {
			continue
		}

		grid.set(top.pos.Add(d.X/2, d.Y/2), Open)
		stack = append(stack, g.enter(grid, target))
	}
}

// enter opens pos and prepares its shuffled offsets.
func (g *Generator) enter(grid Grid, pos Position) *carveFrame {
	grid.set(pos, Open)
	frame := &carveFrame{pos: pos, dirs: carveOffsets}
	g.rng.Shuffle(len(frame.dirs), func(i, j int) {
		frame.dirs[i], frame.dirs[j] = frame.dirs[j], frame.dirs[i]
	})
	return frame
}

// ShortestPath returns the 4-connected hop count from `from` to `to` over open cells.
func ShortestPath(grid Grid, from, to Position) (int, error) {
	if !grid.IsOpen(from) || !grid.IsOpen(to) {
		return 0, ErrNoPath
	}

	dist := make(map[Position]int, grid.Width()*grid.Height()/2)
	dist[from] = 0
	queue := []Position{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == to {
			return dist[cur], nil
		}

		for _, d := range neighborOffsets {
			nxt := cur.Add(d.X, d.Y)
			if _, seen := dist[nxt]; seen || !grid.IsOpen(nxt) {
				continue
			}
			dist[nxt] = dist[cur] + 1
			queue = append(queue, nxt)
		}
	}

	return 0, ErrNoPath
}

func oddUp(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}
