package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
)

var ErrMazeNotFound = errors.New("maze not found")

// cellDoc is the BSON shape of a single cell's wall state.
type cellDoc struct {
	North bool `bson:"n"`
	South bool `bson:"s"`
	East  bool `bson:"e"`
	West  bool `bson:"w"`
}

// mazeDoc is the BSON shape of a stored maze record. Cells are flattened
// row-major.
type mazeDoc struct {
	ID        uuid.UUID           `bson:"_id"`
	Rows      int                 `bson:"rows"`
	Cols      int                 `bson:"cols"`
	Seed      *int64              `bson:"seed,omitempty"`
	Cells     []cellDoc           `bson:"cells"`
	Solved    bool                `bson:"solved"`
	Path      []maze.CellPosition `bson:"path,omitempty"`
	CreatedAt time.Time           `bson:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

// MazeRepo handles the persistence of maze records.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// Save inserts or updates a maze record in the repository.
func (r *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	cells := record.Maze.Cells()
	docCells := make([]cellDoc, len(cells))
	for i, cell := range cells {
		docCells[i] = cellDoc{
			North: cell.NorthWall,
			South: cell.SouthWall,
			East:  cell.EastWall,
			West:  cell.WestWall,
		}
	}

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"rows":      record.Rows,
			"cols":      record.Cols,
			"seed":      record.Seed,
			"cells":     docCells,
			"solved":    record.Solved,
			"path":      record.Path,
			"createdAt": record.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}

	return nil
}

// ByID retrieves a maze record by its ID and rebuilds the in-memory maze.
// Returns an error if the record is not found or if an unexpected error occurs.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var doc mazeDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMazeNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}

	cells := make([]maze.Cell, len(doc.Cells))
	for i, cell := range doc.Cells {
		cells[i] = maze.Cell{
			NorthWall: cell.North,
			SouthWall: cell.South,
			EastWall:  cell.East,
			WestWall:  cell.West,
		}
	}

	m, err := maze.Restore(doc.Rows, doc.Cols, cells)
	if err != nil {
		return nil, fmt.Errorf("corrupt maze record %s: %w", doc.ID, err)
	}

	return &dmn.MazeRecord{
		ID:        doc.ID,
		Rows:      doc.Rows,
		Cols:      doc.Cols,
		Seed:      doc.Seed,
		Maze:      m,
		Solved:    doc.Solved,
		Path:      doc.Path,
		CreatedAt: doc.CreatedAt,
	}, nil
}
