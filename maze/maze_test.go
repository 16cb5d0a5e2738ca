package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenInternalWalls counts openings between adjacent cell pairs, checking
// that every opening is mutual along the way.
func brokenInternalWalls(t *testing.T, m *Maze) int {
	t.Helper()

	count := 0
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			cell := m.Grid[row][col]
			if col+1 < m.Cols {
				east := m.Grid[row][col+1]
				assert.Equal(t, cell.EastWall, east.WestWall, "wall between (%d,%d) and (%d,%d) is not mutual", row, col, row, col+1)
				if !cell.EastWall {
					count++
				}
			}
			if row+1 < m.Rows {
				south := m.Grid[row+1][col]
				assert.Equal(t, cell.SouthWall, south.NorthWall, "wall between (%d,%d) and (%d,%d) is not mutual", row, col, row+1, col)
				if !cell.SouthWall {
					count++
				}
			}
		}
	}
	return count
}

// reachableCells runs a breadth-first flood from the entrance over broken
// walls and returns the number of cells reached.
func reachableCells(m *Maze) int {
	seen := map[CellPosition]struct{}{m.Entrance(): {}}
	queue := []CellPosition{m.Entrance()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, move := range m.neighbors(current) {
			if _, ok := seen[move.To]; ok {
				continue
			}
			if m.CanMove(move) {
				seen[move.To] = struct{}{}
				queue = append(queue, move.To)
			}
		}
	}
	return len(seen)
}

func wallSnapshot(m *Maze) [][4]bool {
	var walls [][4]bool
	for _, row := range m.Grid {
		for _, cell := range row {
			walls = append(walls, [4]bool{cell.NorthWall, cell.SouthWall, cell.EastWall, cell.WestWall})
		}
	}
	return walls
}

func TestNew(t *testing.T) {
	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}, {0, 0}} {
			m, err := New(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, m)
		}
	})

	t.Run("starts with every wall present", func(t *testing.T) {
		m, err := New(3, 4)
		require.NoError(t, err)
		require.Equal(t, 3, m.Rows)
		require.Equal(t, 4, m.Cols)

		for row := 0; row < m.Rows; row++ {
			for col := 0; col < m.Cols; col++ {
				cell := m.Grid[row][col]
				assert.Equal(t, row, cell.Row)
				assert.Equal(t, col, cell.Col)
				assert.True(t, cell.NorthWall && cell.SouthWall && cell.EastWall && cell.WestWall)
				assert.False(t, cell.GenVisited)
				assert.False(t, cell.SolveVisited)
			}
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("produces a spanning tree", func(t *testing.T) {
		for _, dims := range [][2]int{{2, 2}, {5, 5}, {3, 9}, {12, 7}} {
			m, err := New(dims[0], dims[1], WithSeed(42))
			require.NoError(t, err)
			require.NoError(t, m.Generate())

			broken := brokenInternalWalls(t, m)
			assert.Equal(t, dims[0]*dims[1]-1, broken, "%dx%d maze", dims[0], dims[1])
			assert.Equal(t, dims[0]*dims[1], reachableCells(m), "%dx%d maze", dims[0], dims[1])
		}
	})

	t.Run("marks entrance and exit on the boundary", func(t *testing.T) {
		for seed := int64(0); seed < 5; seed++ {
			m, err := New(6, 6, WithSeed(seed))
			require.NoError(t, err)
			require.NoError(t, m.Generate())

			assert.False(t, m.At(m.Entrance()).NorthWall, "seed %d", seed)
			assert.False(t, m.At(m.Exit()).SouthWall, "seed %d", seed)

			// Every other boundary wall stays up.
			for col := 0; col < m.Cols; col++ {
				if col != 0 {
					assert.True(t, m.Grid[0][col].NorthWall, "seed %d north boundary col %d", seed, col)
				}
				if col != m.Cols-1 {
					assert.True(t, m.Grid[m.Rows-1][col].SouthWall, "seed %d south boundary col %d", seed, col)
				}
			}
			for row := 0; row < m.Rows; row++ {
				assert.True(t, m.Grid[row][0].WestWall, "seed %d west boundary row %d", seed, row)
				assert.True(t, m.Grid[row][m.Cols-1].EastWall, "seed %d east boundary row %d", seed, row)
			}
		}
	})

	t.Run("is reproducible for a fixed seed", func(t *testing.T) {
		a, err := New(10, 10, WithSeed(1234))
		require.NoError(t, err)
		require.NoError(t, a.Generate())

		b, err := New(10, 10, WithSeed(1234))
		require.NoError(t, err)
		require.NoError(t, b.Generate())

		assert.Equal(t, wallSnapshot(a), wallSnapshot(b))

		c, err := New(10, 10, WithSeed(4321))
		require.NoError(t, err)
		require.NoError(t, c.Generate())

		assert.NotEqual(t, wallSnapshot(a), wallSnapshot(c))
	})

	t.Run("resets generation bookkeeping", func(t *testing.T) {
		m, err := New(4, 4, WithSeed(7))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		for _, row := range m.Grid {
			for _, cell := range row {
				assert.False(t, cell.GenVisited)
			}
		}
	})

	t.Run("rejects a second generation", func(t *testing.T) {
		m, err := New(4, 4, WithSeed(7))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		before := wallSnapshot(m)
		assert.ErrorIs(t, m.Generate(), ErrAlreadyGenerated)
		assert.Equal(t, before, wallSnapshot(m), "failed regeneration must not corrupt wall state")
	})

	t.Run("1x1 maze is trivially valid", func(t *testing.T) {
		m, err := New(1, 1, WithSeed(99))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		cell := m.At(m.Entrance())
		assert.Equal(t, m.Entrance(), m.Exit())
		assert.False(t, cell.NorthWall, "entrance marker")
		assert.False(t, cell.SouthWall, "exit marker")
		assert.True(t, cell.EastWall)
		assert.True(t, cell.WestWall)
	})

	t.Run("1xN maze degenerates to a corridor", func(t *testing.T) {
		m, err := New(1, 4, WithSeed(3))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		for col := 0; col < 3; col++ {
			assert.False(t, m.Grid[0][col].EastWall, "corridor wall between col %d and %d", col, col+1)
		}
		assert.Equal(t, 3, brokenInternalWalls(t, m))
	})
}

type recordingRenderer struct {
	breaks     []Move
	forwards   int
	backtracks int
}

func (r *recordingRenderer) WallBroken(a, b CellPosition) error {
	r.breaks = append(r.breaks, Move{From: a, To: b})
	return nil
}

func (r *recordingRenderer) Moved(_, _ CellPosition, backtrack bool) error {
	if backtrack {
		r.backtracks++
	} else {
		r.forwards++
	}
	return nil
}

type failingRenderer struct {
	err error
}

func (r *failingRenderer) WallBroken(_, _ CellPosition) error { return r.err }

func (r *failingRenderer) Moved(_, _ CellPosition, _ bool) error { return r.err }

func TestGenerateRenderer(t *testing.T) {
	t.Run("reports one event per internal wall break", func(t *testing.T) {
		rec := &recordingRenderer{}
		m, err := New(6, 5, WithSeed(11), WithRenderer(rec))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		assert.Len(t, rec.breaks, 6*5-1)
		for _, move := range rec.breaks {
			rowDiff := move.From.Row - move.To.Row
			colDiff := move.From.Col - move.To.Col
			assert.Equal(t, 1, rowDiff*rowDiff+colDiff*colDiff, "wall break between non-adjacent cells %v", move)
		}
	})

	t.Run("propagates renderer errors", func(t *testing.T) {
		boom := errors.New("screen gone")
		m, err := New(4, 4, WithSeed(11), WithRenderer(&failingRenderer{err: boom}))
		require.NoError(t, err)

		assert.ErrorIs(t, m.Generate(), boom)
	})
}

func TestRender(t *testing.T) {
	t.Run("unsolved 1x1", func(t *testing.T) {
		m, err := New(1, 1, WithSeed(0))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		expected := "+   +\n" +
			"|   |\n" +
			"+   +\n"
		assert.Equal(t, expected, m.String())
	})

	t.Run("marks path cells", func(t *testing.T) {
		m, err := New(1, 2, WithSeed(0))
		require.NoError(t, err)
		require.NoError(t, m.Generate())

		out := m.Render([]CellPosition{{Row: 0, Col: 0}, {Row: 0, Col: 1}})
		expected := "+   +---+\n" +
			"| *   * |\n" +
			"+---+   +\n"
		assert.Equal(t, expected, out)
	})
}
