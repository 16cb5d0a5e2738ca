package i

import (
	"context"

	"github.com/google/uuid"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
)

// MazeCache caches generated maze records and coordinates exclusive access
// to a record across service instances.
type MazeCache interface {
	// Set stores a maze record under its ID.
	Set(ctx context.Context, record *dmn.MazeRecord) error

	// Get retrieves a cached maze record.
	// Returns an error if the record is not cached or in case of an unexpected error.
	Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// WithLock runs fn while holding a distributed lock scoped to the given
	// maze, so two instances never mutate the same record concurrently.
	WithLock(id uuid.UUID, fn func() error) error
}
