package maze

import (
	"context"
)

// Solution is the outcome of a solve attempt. When Solved is true, Path
// holds the cells from entrance to exit in order; consecutive cells are
// always connected by a broken wall.
type Solution struct {
	Solved bool           `json:"solved"`
	Path   []CellPosition `json:"path,omitempty"`
}

// Solver finds a path through a maze with depth-first search.
type Solver struct {
	renderer Renderer
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithSolverRenderer attaches a renderer notified of every forward move and
// backtrack during solving.
func WithSolverRenderer(r Renderer) SolverOption {
	return func(s *Solver) {
		s.renderer = r
	}
}

// NewSolver creates a Solver. Without options it runs headless.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{renderer: NopRenderer{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// frame is one level of the solver's explicit call stack: a position plus
// the index of the next direction to try from it.
type frame struct {
	pos  CellPosition
	next int
}

// Solve searches for a path from the maze entrance to its exit.
//
// Directions are tried in the fixed order North, South, West, East
// (up, down, left, right), so the discovered path is the same on every
// solve of the same wall configuration. The search uses an explicit stack,
// so grid size is bounded by memory rather than call-stack depth.
//
// A maze that violates the spanning-tree invariant (never generated, or
// corrupted) yields Solved=false rather than an error. Cancelling ctx stops
// the search early and returns the context error; SolveVisited flags are
// left as they were at the moment of cancellation and walls are untouched.
// Renderer errors abort the search and are returned unmodified.
//
// Callers re-solving the same maze must call ResetSolveState first.
func (s *Solver) Solve(ctx context.Context, m *Maze) (Solution, error) {
	entrance, exit := m.Entrance(), m.Exit()
	m.At(entrance).SolveVisited = true
	frames := []frame{{pos: entrance}}

	for len(frames) > 0 {
		select {
		case <-ctx.Done():
			return Solution{}, ctx.Err()
		default:
		}

		f := &frames[len(frames)-1]

		if f.pos == exit {
			path := make([]CellPosition, len(frames))
			for i := range frames {
				path[i] = frames[i].pos
			}
			return Solution{Solved: true, Path: path}, nil
		}

		if f.next >= len(directionOrder) {
			// Dead end for solving purposes; undo the move that led here.
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1]
				if err := s.renderer.Moved(parent.pos, f.pos, true); err != nil {
					return Solution{}, err
				}
			}
			continue
		}

		dir := directionOrder[f.next]
		f.next++

		delta := Directions[dir]
		to := CellPosition{Row: f.pos.Row + delta.Row, Col: f.pos.Col + delta.Col}
		if !m.InBound(to.Row, to.Col) {
			continue
		}
		if m.At(to).SolveVisited {
			continue
		}
		if !m.CanMove(Move{From: f.pos, To: to, Direction: dir}) {
			continue
		}

		if err := s.renderer.Moved(f.pos, to, false); err != nil {
			return Solution{}, err
		}
		m.At(to).SolveVisited = true
		frames = append(frames, frame{pos: to})
	}

	// Exhausted every reachable cell without touching the exit. On a
	// correctly generated maze this cannot happen; report it, don't fault.
	return Solution{}, nil
}
