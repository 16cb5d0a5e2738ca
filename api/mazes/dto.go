// Package mazes provides structures and utilities for creating, fetching
// and solving mazes over HTTP.
package mazes

import (
	"github.com/google/uuid"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
)

// CreateMazeRequest represents a request to create and generate a new maze.
type CreateMazeRequest struct {
	Rows int    `json:"rows" binding:"required,gt=0"`
	Cols int    `json:"cols" binding:"required,gt=0"`
	Seed *int64 `json:"seed,omitempty"`
}

// CellResponse is a single cell's wall state.
type CellResponse struct {
	North bool `json:"n"`
	South bool `json:"s"`
	East  bool `json:"e"`
	West  bool `json:"w"`
}

// MazeResponse represents a maze record, walls and solve result included.
// Cells are indexed [row][col].
type MazeResponse struct {
	ID        uuid.UUID           `json:"id"`
	Rows      int                 `json:"rows"`
	Cols      int                 `json:"cols"`
	Seed      *int64              `json:"seed,omitempty"`
	Cells     [][]CellResponse    `json:"cells"`
	Solved    bool                `json:"solved"`
	Path      []maze.CellPosition `json:"path,omitempty"`
	CreatedAt int64               `json:"created_at"`
}

// newMazeResponse maps a maze record onto the wire shape.
func newMazeResponse(record *dmn.MazeRecord) *MazeResponse {
	cells := make([][]CellResponse, record.Rows)
	for r, row := range record.Maze.Grid {
		cells[r] = make([]CellResponse, record.Cols)
		for c, cell := range row {
			cells[r][c] = CellResponse{
				North: cell.NorthWall,
				South: cell.SouthWall,
				East:  cell.EastWall,
				West:  cell.WestWall,
			}
		}
	}

	return &MazeResponse{
		ID:        record.ID,
		Rows:      record.Rows,
		Cols:      record.Cols,
		Seed:      record.Seed,
		Cells:     cells,
		Solved:    record.Solved,
		Path:      record.Path,
		CreatedAt: record.CreatedAt.Unix(),
	}
}
