package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/beka-birhanu/labyrinth-api/maze"
)

// MazeRecord is the persistence aggregate around a generated maze: the maze
// itself, how it was seeded, and the solve result once one exists.
type MazeRecord struct {
	ID        uuid.UUID           `json:"id"`
	Rows      int                 `json:"rows"`
	Cols      int                 `json:"cols"`
	Seed      *int64              `json:"seed,omitempty"`
	Maze      *maze.Maze          `json:"-"`
	Solved    bool                `json:"solved"`
	Path      []maze.CellPosition `json:"path,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}
