package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
)

const (
	mazeKeyFmt     = "maze:%s"
	solveLockFmt   = "maze:%s:solve_lock"
	defaultTTLSecs = 3600
)

var ErrCacheMiss = errors.New("maze not cached")

// cellState is the JSON shape of a single cell's wall state.
type cellState struct {
	North bool `json:"n"`
	South bool `json:"s"`
	East  bool `json:"e"`
	West  bool `json:"w"`
}

// mazeState is the JSON shape of a cached maze record. Cells are flattened
// row-major.
type mazeState struct {
	ID        uuid.UUID           `json:"id"`
	Rows      int                 `json:"rows"`
	Cols      int                 `json:"cols"`
	Seed      *int64              `json:"seed,omitempty"`
	Cells     []cellState         `json:"cells"`
	Solved    bool                `json:"solved"`
	Path      []maze.CellPosition `json:"path,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// RedisMazeCache caches maze records in Redis with TTL support and hands
// out per-maze distributed locks.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (*RedisMazeCache, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultTTLSecs
	}

	mazeCache := &RedisMazeCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	mazeCache.locker = redsync.New(pool)
	return mazeCache, nil
}

// Set stores a maze record under its ID, refreshing the TTL.
func (c *RedisMazeCache) Set(ctx context.Context, record *dmn.MazeRecord) error {
	cells := record.Maze.Cells()
	stateCells := make([]cellState, len(cells))
	for i, cell := range cells {
		stateCells[i] = cellState{
			North: cell.NorthWall,
			South: cell.SouthWall,
			East:  cell.EastWall,
			West:  cell.WestWall,
		}
	}

	payload, err := json.Marshal(mazeState{
		ID:        record.ID,
		Rows:      record.Rows,
		Cols:      record.Cols,
		Seed:      record.Seed,
		Cells:     stateCells,
		Solved:    record.Solved,
		Path:      record.Path,
		CreatedAt: record.CreatedAt,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, fmt.Sprintf(mazeKeyFmt, record.ID), payload, c.ttl).Err()
}

// Get retrieves a cached maze record and rebuilds the in-memory maze.
func (c *RedisMazeCache) Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	payload, err := c.client.Get(ctx, fmt.Sprintf(mazeKeyFmt, id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var state mazeState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, err
	}

	cells := make([]maze.Cell, len(state.Cells))
	for i, cell := range state.Cells {
		cells[i] = maze.Cell{
			NorthWall: cell.North,
			SouthWall: cell.South,
			EastWall:  cell.East,
			WestWall:  cell.West,
		}
	}

	m, err := maze.Restore(state.Rows, state.Cols, cells)
	if err != nil {
		return nil, fmt.Errorf("corrupt cached maze %s: %w", state.ID, err)
	}

	return &dmn.MazeRecord{
		ID:        state.ID,
		Rows:      state.Rows,
		Cols:      state.Cols,
		Seed:      state.Seed,
		Maze:      m,
		Solved:    state.Solved,
		Path:      state.Path,
		CreatedAt: state.CreatedAt,
	}, nil
}

// WithLock runs fn while holding the maze's distributed solve lock.
func (c *RedisMazeCache) WithLock(id uuid.UUID, fn func() error) error {
	mutex := c.locker.NewMutex(fmt.Sprintf(solveLockFmt, id))
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	return fn()
}
