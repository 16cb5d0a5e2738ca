// Package render draws mazes on a terminal screen and animates their
// generation and solving. It is a passive observer of the maze: every
// callback redraws from the maze's current wall state and never mutates it.
package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

const (
	defaultCellWidth  = 3
	defaultCellHeight = 1

	wallRune      = '█'
	forwardRune   = '•'
	backtrackRune = '·'
)

// Config holds sizing and pacing for the terminal renderer. All values are
// in screen cells and are opaque to the maze core.
type Config struct {
	CellWidth  int           // Interior width of a maze cell
	CellHeight int           // Interior height of a maze cell
	OffsetX    int           // Left edge of the drawing
	OffsetY    int           // Top edge of the drawing
	Delay      time.Duration // Pause after each event so the animation is visible
}

// TerminalRenderer implements maze.Renderer on a tcell screen.
//
// The delay between events is purely cosmetic: it paces the animation and
// never changes traversal order or results.
type TerminalRenderer struct {
	screen tcell.Screen
	m      *maze.Maze
	cfg    Config

	// trail remembers solver moves so backtracked segments stay visible in
	// their dimmed style across full redraws.
	trail map[[2]maze.CellPosition]bool

	wallStyle      tcell.Style
	forwardStyle   tcell.Style
	backtrackStyle tcell.Style
}

// NewTerminalRenderer creates a renderer on the given screen. Attach binds
// it to a maze before use. Zero Config fields fall back to defaults.
func NewTerminalRenderer(screen tcell.Screen, cfg Config) *TerminalRenderer {
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = defaultCellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = defaultCellHeight
	}

	return &TerminalRenderer{
		screen:         screen,
		cfg:            cfg,
		trail:          make(map[[2]maze.CellPosition]bool),
		wallStyle:      tcell.StyleDefault.Foreground(tcell.ColorWhite),
		forwardStyle:   tcell.StyleDefault.Foreground(tcell.ColorRed),
		backtrackStyle: tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// Attach binds the renderer to the maze whose events it will draw. The
// renderer is constructed before the maze can reference it, so binding is a
// separate step.
func (r *TerminalRenderer) Attach(m *maze.Maze) {
	r.m = m
}

// WallBroken redraws the maze after a generation step.
func (r *TerminalRenderer) WallBroken(_, _ maze.CellPosition) error {
	r.DrawFrame()
	return nil
}

// Moved records a solver step and redraws. Backtracked segments are kept on
// screen in a dimmed style, mirroring the forward/undo colors of the trail.
func (r *TerminalRenderer) Moved(from, to maze.CellPosition, backtrack bool) error {
	r.trail[segmentKey(from, to)] = backtrack
	r.DrawFrame()
	return nil
}

// DrawFrame redraws the whole maze with the current trail and shows it.
func (r *TerminalRenderer) DrawFrame() {
	if r.m == nil {
		return
	}

	r.screen.Clear()
	r.drawWalls()
	r.drawTrail()
	r.screen.Show()
	if r.cfg.Delay > 0 {
		time.Sleep(r.cfg.Delay)
	}
}

// drawWalls draws the wall lattice from the maze's current state.
func (r *TerminalRenderer) drawWalls() {
	stepX := r.cfg.CellWidth + 1
	stepY := r.cfg.CellHeight + 1

	for row := 0; row < r.m.Rows; row++ {
		for col := 0; col < r.m.Cols; col++ {
			cell := r.m.Grid[row][col]
			left := r.cfg.OffsetX + col*stepX
			top := r.cfg.OffsetY + row*stepY
			right := left + stepX
			bottom := top + stepY

			// Corner posts are always present.
			r.put(left, top, wallRune)
			r.put(right, top, wallRune)
			r.put(left, bottom, wallRune)
			r.put(right, bottom, wallRune)

			if cell.NorthWall {
				for x := left + 1; x < right; x++ {
					r.put(x, top, wallRune)
				}
			}
			if cell.SouthWall {
				for x := left + 1; x < right; x++ {
					r.put(x, bottom, wallRune)
				}
			}
			if cell.WestWall {
				for y := top + 1; y < bottom; y++ {
					r.put(left, y, wallRune)
				}
			}
			if cell.EastWall {
				for y := top + 1; y < bottom; y++ {
					r.put(right, y, wallRune)
				}
			}
		}
	}
}

// drawTrail overlays the solver's moves: a marker in each visited cell's
// center and one on the opening between the two cells.
func (r *TerminalRenderer) drawTrail() {
	for segment, backtracked := range r.trail {
		style := r.forwardStyle
		ch := forwardRune
		if backtracked {
			style = r.backtrackStyle
			ch = backtrackRune
		}

		fromX, fromY := r.center(segment[0])
		toX, toY := r.center(segment[1])
		midX, midY := (fromX+toX)/2, (fromY+toY)/2

		r.screen.SetContent(fromX, fromY, ch, nil, style)
		r.screen.SetContent(midX, midY, ch, nil, style)
		r.screen.SetContent(toX, toY, ch, nil, style)
	}
}

// center returns the screen coordinates of a cell's interior center.
func (r *TerminalRenderer) center(pos maze.CellPosition) (int, int) {
	x := r.cfg.OffsetX + pos.Col*(r.cfg.CellWidth+1) + 1 + (r.cfg.CellWidth-1)/2
	y := r.cfg.OffsetY + pos.Row*(r.cfg.CellHeight+1) + 1 + (r.cfg.CellHeight-1)/2
	return x, y
}

func (r *TerminalRenderer) put(x, y int, ch rune) {
	r.screen.SetContent(x, y, ch, nil, r.wallStyle)
}

// segmentKey normalizes a move so a forward step and its undo map to the
// same trail entry.
func segmentKey(a, b maze.CellPosition) [2]maze.CellPosition {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return [2]maze.CellPosition{a, b}
}
