package i

import (
	"context"

	"github.com/google/uuid"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
)

// MazeManager drives the maze lifecycle: create and generate, fetch, solve.
type MazeManager interface {
	// Create builds a maze of the given dimensions, generates it and
	// persists the record. A nil seed means time-based randomness.
	Create(ctx context.Context, rows, cols int, seed *int64) (*dmn.MazeRecord, error)

	// Get fetches a maze record, preferring the cache over the repository.
	Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// Solve runs depth-first search on the stored maze and persists the
	// resulting path. Solving an already solved maze returns the stored result.
	Solve(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
}
