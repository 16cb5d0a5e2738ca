package mazes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
)

// MazeController manages maze creation, retrieval and solving.
type MazeController struct {
	mazeManager i.MazeManager
}

// NewMazeController initializes a MazeController.
func NewMazeController(mm i.MazeManager) (*MazeController, error) {
	return &MazeController{
		mazeManager: mm,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazeRoutes := route.Group("/mazes")
	{
		mazeRoutes.POST("/", mc.create)
		mazeRoutes.GET("/:ID", mc.get)
		mazeRoutes.POST("/:ID/solve", mc.solve)
		mazeRoutes.GET("/:ID/ascii", mc.ascii)
	}
}

// create handles maze creation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.mazeManager.Create(ctx, request.Rows, request.Cols, request.Seed)
	if err != nil {
		if errors.Is(err, maze.ErrInvalidDimensions) || errors.Is(err, service.ErrDimensionTooLarge) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating maze"})
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(record))
}

// get retrieves a maze record by ID.
func (mc *MazeController) get(ctx *gin.Context) {
	record, ok := mc.recordFromParam(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(record))
}

// solve runs the solver on a stored maze and returns the solved record.
func (mc *MazeController) solve(ctx *gin.Context) {
	IDString := ctx.Params.ByName("ID")
	ID, err := uuid.Parse(IDString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	record, err := mc.mazeManager.Solve(ctx, ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No maze"})
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(record))
}

// ascii renders a maze, and its path once solved, as plain text.
func (mc *MazeController) ascii(ctx *gin.Context) {
	record, ok := mc.recordFromParam(ctx)
	if !ok {
		return
	}

	ctx.String(http.StatusOK, record.Maze.Render(record.Path))
}

// recordFromParam parses the ID route param and fetches its maze record,
// writing the error response itself when either step fails.
func (mc *MazeController) recordFromParam(ctx *gin.Context) (record *dmn.MazeRecord, ok bool) {
	IDString := ctx.Params.ByName("ID")
	ID, err := uuid.Parse(IDString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return nil, false
	}

	record, err = mc.mazeManager.Get(ctx, ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No maze"})
		return nil, false
	}

	return record, true
}
