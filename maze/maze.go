/*
Package maze provides tools for creating, generating and solving rectangular
perfect mazes.

It defines the `Maze` structure, composed of `Cell` objects that carry wall
configurations and traversal flags.

Generation uses randomized depth-first backtracking over an explicit stack,
producing a spanning tree: every cell reachable from every other cell through
exactly one broken-wall path. The randomness source is injectable, so a fixed
seed reproduces the maze bit for bit.

Utility functions enable neighbor detection, move validation, and ASCII
visualization of the maze.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

var (
	// Directions maps direction names to their grid deltas.
	Directions = map[string]CellPosition{
		"North": {Row: -1, Col: 0},
		"South": {Row: 1, Col: 0},
		"East":  {Row: 0, Col: 1},
		"West":  {Row: 0, Col: -1},
	}

	// directionOrder fixes the enumeration order for neighbor scans:
	// North, South, West, East (up, down, left, right). Generation shuffles
	// the scanned list afterwards; the solver relies on this order directly.
	directionOrder = []string{"North", "South", "West", "East"}

	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
	ErrAlreadyGenerated  = errors.New("maze already generated")
	ErrCellCountMismatch = errors.New("cell state does not match maze dimensions")
)

// Maze represents a rectangular maze consisting of cells with walls.
// A freshly constructed maze has every wall up; Generate carves the
// spanning tree.
type Maze struct {
	Rows int       // Number of rows
	Cols int       // Number of columns
	Grid [][]*Cell // 2D grid of cells forming the maze, indexed [row][col]

	rng       *rand.Rand
	renderer  Renderer
	generated bool
}

// Option configures a Maze at construction time.
type Option func(*Maze)

// WithSeed makes generation fully reproducible for the given seed.
func WithSeed(seed int64) Option {
	return func(m *Maze) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the random source used to shuffle neighbor candidates.
func WithRand(rng *rand.Rand) Option {
	return func(m *Maze) {
		m.rng = rng
	}
}

// WithRenderer attaches a renderer notified of every wall break during
// generation. The maze works identically with no renderer attached.
func WithRenderer(r Renderer) Option {
	return func(m *Maze) {
		m.renderer = r
	}
}

// New initializes an ungenerated maze of the given dimensions with every
// wall present. Rows and cols must both be positive.
func New(rows, cols int, opts ...Option) (*Maze, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	grid := make([][]*Cell, rows)
	for i := range grid {
		grid[i] = make([]*Cell, cols)
		for j := range grid[i] {
			grid[i][j] = &Cell{
				Row:       i,
				Col:       j,
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	m := &Maze{
		Rows:     rows,
		Cols:     cols,
		Grid:     grid,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		renderer: NopRenderer{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Entrance returns the fixed entrance position, the top-left corner.
func (m *Maze) Entrance() CellPosition {
	return CellPosition{Row: 0, Col: 0}
}

// Exit returns the fixed exit position, the bottom-right corner.
func (m *Maze) Exit() CellPosition {
	return CellPosition{Row: m.Rows - 1, Col: m.Cols - 1}
}

// Generated reports whether Generate has completed on this maze.
func (m *Maze) Generated() bool {
	return m.generated
}

// InBound checks whether the given indices fall inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Rows && col >= 0 && col < m.Cols
}

// At returns the cell at the given position.
func (m *Maze) At(pos CellPosition) *Cell {
	return m.Grid[pos.Row][pos.Col]
}

// neighbors finds all in-bound moves from a given cell position, in the
// fixed direction order.
func (m *Maze) neighbors(pos CellPosition) []Move {
	var result []Move
	for _, dir := range directionOrder {
		delta := Directions[dir]
		neighbor := CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
		if m.InBound(neighbor.Row, neighbor.Col) {
			result = append(result, Move{From: pos, To: neighbor, Direction: dir})
		}
	}
	return result
}

// unvisitedNeighbors filters neighbors down to cells not yet part of the
// spanning tree.
func (m *Maze) unvisitedNeighbors(pos CellPosition) []Move {
	var result []Move
	for _, move := range m.neighbors(pos) {
		if !m.At(move.To).GenVisited {
			result = append(result, move)
		}
	}
	return result
}

// openWall removes the wall between two adjacent cells in the specified
// direction. Walls are mutual: both cells' flags are cleared.
func (m *Maze) openWall(move Move) {
	switch move.Direction {
	case "North":
		m.Grid[move.From.Row][move.From.Col].NorthWall = false
		m.Grid[move.To.Row][move.To.Col].SouthWall = false
	case "South":
		m.Grid[move.From.Row][move.From.Col].SouthWall = false
		m.Grid[move.To.Row][move.To.Col].NorthWall = false
	case "East":
		m.Grid[move.From.Row][move.From.Col].EastWall = false
		m.Grid[move.To.Row][move.To.Col].WestWall = false
	case "West":
		m.Grid[move.From.Row][move.From.Col].WestWall = false
		m.Grid[move.To.Row][move.To.Col].EastWall = false
	}
}

// Generate carves a perfect maze with randomized depth-first backtracking.
//
// The frontier is an explicit stack rather than native recursion, so grid
// size is bounded by memory, not by call-stack depth. Each step shuffles the
// unvisited in-bound neighbors of the stack top, opens the wall to the first
// one and descends into it; a cell with no unvisited neighbors is popped.
// When the stack drains, the entrance's outer north wall and the exit's
// outer south wall are removed and every GenVisited flag is reset.
//
// Generate may run once per maze; a second call returns ErrAlreadyGenerated
// without touching wall state. Renderer errors abort generation and are
// returned unmodified.
func (m *Maze) Generate() error {
	if m.generated {
		return ErrAlreadyGenerated
	}

	start := m.Entrance()
	m.At(start).GenVisited = true
	stack := []CellPosition{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		candidates := m.unvisitedNeighbors(current)
		if len(candidates) == 0 {
			// Dead end; backtrack.
			stack = stack[:len(stack)-1]
			continue
		}

		m.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		next := candidates[0]
		m.openWall(next)
		m.At(next.To).GenVisited = true
		if err := m.renderer.WallBroken(next.From, next.To); err != nil {
			return err
		}
		stack = append(stack, next.To)
	}

	// Mark entrance and exit on the outer boundary.
	m.At(m.Entrance()).NorthWall = false
	m.At(m.Exit()).SouthWall = false

	// Generation bookkeeping must not leak into solving.
	for _, row := range m.Grid {
		for _, cell := range row {
			cell.GenVisited = false
		}
	}

	m.generated = true
	return nil
}

// ResetSolveState clears every cell's SolveVisited flag so the maze can be
// solved again. Wall state and generation state are untouched.
func (m *Maze) ResetSolveState() {
	for _, row := range m.Grid {
		for _, cell := range row {
			cell.SolveVisited = false
		}
	}
}

// CanMove checks if a move is valid: both positions in bounds, and the
// connecting wall down on both sides.
func (m *Maze) CanMove(move Move) bool {
	if !m.InBound(move.From.Row, move.From.Col) || !m.InBound(move.To.Row, move.To.Col) {
		return false
	}

	switch move.Direction {
	case "North":
		return !m.Grid[move.From.Row][move.From.Col].NorthWall && !m.Grid[move.To.Row][move.To.Col].SouthWall
	case "South":
		return !m.Grid[move.From.Row][move.From.Col].SouthWall && !m.Grid[move.To.Row][move.To.Col].NorthWall
	case "East":
		return !m.Grid[move.From.Row][move.From.Col].EastWall && !m.Grid[move.To.Row][move.To.Col].WestWall
	case "West":
		return !m.Grid[move.From.Row][move.From.Col].WestWall && !m.Grid[move.To.Row][move.To.Col].EastWall
	default:
		return false
	}
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return m.Render(nil)
}

// Render provides a textual representation of the maze with the given path
// cells marked with '*'.
func (m *Maze) Render(path []CellPosition) string {
	onPath := make(map[CellPosition]struct{}, len(path))
	for _, pos := range path {
		onPath[pos] = struct{}{}
	}

	var output strings.Builder

	// Top boundary, with a gap over the entrance once generated
	output.WriteString("+")
	for col := 0; col < m.Cols; col++ {
		if m.Grid[0][col].NorthWall {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for row := 0; row < m.Rows; row++ {
		// Cell rows
		cellRow := ""
		if m.Grid[row][0].WestWall {
			cellRow += "|"
		} else {
			cellRow += " "
		}
		for col := 0; col < m.Cols; col++ {
			cell := m.Grid[row][col]

			if _, ok := onPath[cell.Pos()]; ok {
				cellRow += " * "
			} else {
				cellRow += "   "
			}

			if cell.EastWall {
				cellRow += "|"
			} else {
				cellRow += " "
			}
		}
		output.WriteString(cellRow + "\n")

		// Wall rows
		wallRow := "+"
		for col := 0; col < m.Cols; col++ {
			cell := m.Grid[row][col]

			if cell.SouthWall {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}

// Cells returns a row-major copy of the grid's cell state, Rows*Cols long.
// Traversal flags are zeroed in the copy.
func (m *Maze) Cells() []Cell {
	cells := make([]Cell, 0, m.Rows*m.Cols)
	for _, row := range m.Grid {
		for _, cell := range row {
			c := *cell
			c.GenVisited = false
			c.SolveVisited = false
			cells = append(cells, c)
		}
	}
	return cells
}

// Restore rebuilds a generated maze from a row-major cell state slice, as
// returned by Cells. The restored maze rejects further Generate calls.
func Restore(rows, cols int, cells []Cell) (*Maze, error) {
	if len(cells) != rows*cols {
		return nil, ErrCellCountMismatch
	}

	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for idx, state := range cells {
		cell := m.Grid[idx/cols][idx%cols]
		cell.NorthWall = state.NorthWall
		cell.SouthWall = state.SouthWall
		cell.EastWall = state.EastWall
		cell.WestWall = state.WestWall
	}

	m.generated = true
	return m, nil
}
