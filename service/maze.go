package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service/i"
)

const defaultMaxDimension = 100

var ErrDimensionTooLarge = errors.New("maze dimension too large")

// MazeOptions tunes the maze service.
type MazeOptions struct {
	// MaxDimension caps rows and cols accepted by Create.
	MaxDimension int
}

// MazeService owns the maze lifecycle: it generates mazes, persists them,
// caches them, and solves them on demand. Generation and solving themselves
// stay single-threaded per maze; the cache's distributed lock keeps it that
// way across service instances.
type MazeService struct {
	repo   i.MazeRepo
	cache  i.MazeCache
	solver *maze.Solver
	logger *logrus.Entry
	opts   *MazeOptions
}

// NewMazeService creates a MazeService with the provided repository, cache
// and options.
func NewMazeService(repo i.MazeRepo, cache i.MazeCache, logger *logrus.Entry, opts *MazeOptions) (i.MazeManager, error) {
	if opts == nil {
		opts = &MazeOptions{}
	}

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	return &MazeService{
		repo:   repo,
		cache:  cache,
		solver: maze.NewSolver(),
		logger: logger,
		opts:   opts,
	}, nil
}

// Create builds and generates a maze, then persists and caches the record.
func (s *MazeService) Create(ctx context.Context, rows, cols int, seed *int64) (*dmn.MazeRecord, error) {
	if rows > s.opts.MaxDimension || cols > s.opts.MaxDimension {
		return nil, ErrDimensionTooLarge
	}

	var mazeOpts []maze.Option
	if seed != nil {
		mazeOpts = append(mazeOpts, maze.WithSeed(*seed))
	}

	m, err := maze.New(rows, cols, mazeOpts...)
	if err != nil {
		return nil, err
	}

	if err := m.Generate(); err != nil {
		return nil, fmt.Errorf("generating maze: %w", err)
	}

	record := &dmn.MazeRecord{
		ID:        uuid.New(),
		Rows:      rows,
		Cols:      cols,
		Seed:      seed,
		Maze:      m,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record); err != nil {
		s.logger.Warnf("caching maze %s: %v", record.ID, err)
	}

	s.logger.Infof("Created %dx%d maze %s", rows, cols, record.ID)
	return record, nil
}

// Get fetches a maze record, preferring the cache over the repository.
func (s *MazeService) Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	if record, err := s.cache.Get(ctx, id); err == nil {
		return record, nil
	}

	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record); err != nil {
		s.logger.Warnf("caching maze %s: %v", record.ID, err)
	}

	return record, nil
}

// Solve runs depth-first search on the stored maze and persists the result.
// The per-maze lock makes concurrent solve requests take turns; whoever
// loses the race finds the record already solved and returns it as-is.
func (s *MazeService) Solve(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	var record *dmn.MazeRecord

	err := s.cache.WithLock(id, func() error {
		var err error
		record, err = s.Get(ctx, id)
		if err != nil {
			return err
		}

		if record.Solved {
			return nil
		}

		record.Maze.ResetSolveState()
		solution, err := s.solver.Solve(ctx, record.Maze)
		if err != nil {
			return err
		}

		record.Solved = solution.Solved
		record.Path = solution.Path

		if err := s.repo.Save(ctx, record); err != nil {
			return err
		}

		if err := s.cache.Set(ctx, record); err != nil {
			s.logger.Warnf("caching maze %s: %v", record.ID, err)
		}

		s.logger.Infof("Solved maze %s: solved=%t path=%d cells", record.ID, record.Solved, len(record.Path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
