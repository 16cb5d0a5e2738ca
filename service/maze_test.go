package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
)

type memMazeRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
	saves   int
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{records: make(map[uuid.UUID]*dmn.MazeRecord)}
}

func (r *memMazeRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	r.saves++
	r.records[record.ID] = record
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, errors.New("maze not found")
	}
	return record, nil
}

type memMazeCache struct {
	records map[uuid.UUID]*dmn.MazeRecord
	locks   int
}

func newMemMazeCache() *memMazeCache {
	return &memMazeCache{records: make(map[uuid.UUID]*dmn.MazeRecord)}
}

func (c *memMazeCache) Set(_ context.Context, record *dmn.MazeRecord) error {
	c.records[record.ID] = record
	return nil
}

func (c *memMazeCache) Get(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, ok := c.records[id]
	if !ok {
		return nil, errors.New("maze not cached")
	}
	return record, nil
}

func (c *memMazeCache) WithLock(_ uuid.UUID, fn func() error) error {
	c.locks++
	return fn()
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "MAZE-SERVICE")
}

func newTestService(t *testing.T, repo *memMazeRepo, cache *memMazeCache) *MazeService {
	t.Helper()

	svc, err := NewMazeService(repo, cache, testLogger(), nil)
	require.NoError(t, err)
	return svc.(*MazeService)
}

func TestMazeServiceCreate(t *testing.T) {
	t.Run("generates, persists and caches", func(t *testing.T) {
		repo := newMemMazeRepo()
		cache := newMemMazeCache()
		svc := newTestService(t, repo, cache)

		seed := int64(77)
		record, err := svc.Create(context.Background(), 5, 7, &seed)
		require.NoError(t, err)

		assert.Equal(t, 5, record.Rows)
		assert.Equal(t, 7, record.Cols)
		assert.True(t, record.Maze.Generated())
		assert.False(t, record.Solved)
		assert.Contains(t, repo.records, record.ID)
		assert.Contains(t, cache.records, record.ID)
	})

	t.Run("same seed reproduces the same maze", func(t *testing.T) {
		svc := newTestService(t, newMemMazeRepo(), newMemMazeCache())

		seed := int64(5)
		a, err := svc.Create(context.Background(), 6, 6, &seed)
		require.NoError(t, err)
		b, err := svc.Create(context.Background(), 6, 6, &seed)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.Maze.String(), b.Maze.String())
	})

	t.Run("rejects invalid and oversized dimensions", func(t *testing.T) {
		svc := newTestService(t, newMemMazeRepo(), newMemMazeCache())

		_, err := svc.Create(context.Background(), 0, 5, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		_, err = svc.Create(context.Background(), 5, -2, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		_, err = svc.Create(context.Background(), 5, defaultMaxDimension+1, nil)
		assert.ErrorIs(t, err, ErrDimensionTooLarge)
	})
}

func TestMazeServiceGet(t *testing.T) {
	t.Run("falls back to the repository and repopulates the cache", func(t *testing.T) {
		repo := newMemMazeRepo()
		cache := newMemMazeCache()
		svc := newTestService(t, repo, cache)

		record, err := svc.Create(context.Background(), 4, 4, nil)
		require.NoError(t, err)

		// Simulate cache eviction.
		delete(cache.records, record.ID)

		got, err := svc.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Contains(t, cache.records, record.ID)
	})

	t.Run("unknown maze is an error", func(t *testing.T) {
		svc := newTestService(t, newMemMazeRepo(), newMemMazeCache())

		_, err := svc.Get(context.Background(), uuid.New())
		assert.Error(t, err)
	})
}

func TestMazeServiceSolve(t *testing.T) {
	t.Run("solves under the lock and persists the path", func(t *testing.T) {
		repo := newMemMazeRepo()
		cache := newMemMazeCache()
		svc := newTestService(t, repo, cache)

		seed := int64(3)
		record, err := svc.Create(context.Background(), 6, 9, &seed)
		require.NoError(t, err)

		solved, err := svc.Solve(context.Background(), record.ID)
		require.NoError(t, err)

		assert.Equal(t, 1, cache.locks)
		assert.True(t, solved.Solved)
		require.NotEmpty(t, solved.Path)
		assert.Equal(t, solved.Path[0], record.Maze.Entrance())
		assert.Equal(t, solved.Path[len(solved.Path)-1], record.Maze.Exit())
		assert.True(t, repo.records[record.ID].Solved)
	})

	t.Run("an already solved maze is returned as-is", func(t *testing.T) {
		repo := newMemMazeRepo()
		cache := newMemMazeCache()
		svc := newTestService(t, repo, cache)

		record, err := svc.Create(context.Background(), 5, 5, nil)
		require.NoError(t, err)

		first, err := svc.Solve(context.Background(), record.ID)
		require.NoError(t, err)
		savesAfterFirst := repo.saves

		second, err := svc.Solve(context.Background(), record.ID)
		require.NoError(t, err)

		assert.Equal(t, first.Path, second.Path)
		assert.Equal(t, savesAfterFirst, repo.saves, "re-solving a solved maze must not rewrite it")
	})

	t.Run("unknown maze is an error", func(t *testing.T) {
		svc := newTestService(t, newMemMazeRepo(), newMemMazeCache())

		_, err := svc.Solve(context.Background(), uuid.New())
		assert.Error(t, err)
	})
}
