package maze

// Cell represents a single cell in a maze grid.
// It includes the cell's fixed grid position, a wall on each side and the
// two traversal flags used while building and while solving the maze.
type Cell struct {
	// Row is the row index of the cell. Fixed at creation.
	Row int
	// Col is the column index of the cell. Fixed at creation.
	Col int
	// NorthWall indicates whether there is a wall on the north side of the cell.
	NorthWall bool
	// SouthWall indicates whether there is a wall on the south side of the cell.
	SouthWall bool
	// EastWall indicates whether there is a wall on the east side of the cell.
	EastWall bool
	// WestWall indicates whether there is a wall on the west side of the cell.
	WestWall bool
	// GenVisited marks the cell as incorporated into the spanning tree.
	// Only meaningful during Generate; reset to false when it returns.
	GenVisited bool
	// SolveVisited marks the cell as explored by the solver. Independent
	// from GenVisited; cleared by Maze.ResetSolveState between solves.
	SolveVisited bool
}

// Pos returns the cell's position in the grid.
func (c *Cell) Pos() CellPosition {
	return CellPosition{Row: c.Row, Col: c.Col}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

// Move represents a movement from one cell to another in a specific direction.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction string       // Direction of the move (North, South, East, West)
}
