package episodeapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/rotating-maze/api/identity"
	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/beka-birhanu/rotating-maze/game/maze"
	"github.com/beka-birhanu/rotating-maze/service"
	"github.com/beka-birhanu/rotating-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestTimeout   = 5 * time.Second
	defaultBoardSize = 10
)

// EpisodeController serves episode creation, moves and scores.
type EpisodeController struct {
	episodes i.EpisodeService
}

// NewEpisodeController initializes an EpisodeController.
func NewEpisodeController(es i.EpisodeService) (*EpisodeController, error) {
	if es == nil {
		return nil, errors.New("episode controller: nil episode service")
	}
	return &EpisodeController{episodes: es}, nil
}

// RegisterPublic registers public routes.
func (ec *EpisodeController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/episodes", ec.create)
	route.GET("/tools", ec.tools)
	route.GET("/leaderboard/:variant", ec.leaderboard)
	route.GET("/results/:variant", ec.results)
}

// RegisterProtected registers routes that need a token scoped to the episode.
func (ec *EpisodeController) RegisterProtected(route *gin.RouterGroup) {
	episodes := route.Group("/episodes/:ID")
	episodes.Use(identity.ScopedTo(service.EpisodeClaim, "ID"))
	{
		episodes.GET("", ec.info)
		episodes.DELETE("", ec.abandon)
		episodes.POST("/actions/:action", ec.act)
		episodes.GET("/score", ec.score)
	}
}

// create starts a new episode and returns its token.
func (ec *EpisodeController) create(ctx *gin.Context) {
	var request CreateRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var sizes *maze.SizeRange
	if request.MinSize > 0 || request.MaxSize > 0 {
		sizes = &maze.SizeRange{Min: request.MinSize, Max: request.MaxSize}
		if sizes.Max == 0 {
			sizes.Max = sizes.Min
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	episode, err := ec.episodes.Create(timeoutCtx, request.Variant, sizes)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newEpisodeResponse(episode))
}

// tools lists the move actions an agent may call.
func (ec *EpisodeController) tools(ctx *gin.Context) {
	tools := maze.Tools()
	response := make([]ToolResponse, 0, len(tools))
	for _, t := range tools {
		response = append(response, ToolResponse{Name: t.Name, Description: t.Description})
	}
	ctx.JSON(http.StatusOK, gin.H{"tools": response})
}

// info returns the current view of an episode.
func (ec *EpisodeController) info(ctx *gin.Context) {
	id, ok := episodeID(ctx)
	if !ok {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	episode, err := ec.episodes.Info(timeoutCtx, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newEpisodeResponse(episode))
}

// abandon discards a live episode.
func (ec *EpisodeController) abandon(ctx *gin.Context) {
	id, ok := episodeID(ctx)
	if !ok {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if err := ec.episodes.Abandon(timeoutCtx, id); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// act executes one move action.
func (ec *EpisodeController) act(ctx *gin.Context) {
	id, ok := episodeID(ctx)
	if !ok {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	result, err := ec.episodes.Act(timeoutCtx, id, ctx.Param("action"))
	if errors.Is(err, maze.ErrEpisodeOver) && result != nil {
		ctx.JSON(http.StatusConflict, newActionResponse(result))
		return
	}
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newActionResponse(result))
}

// score returns the result of a finished episode.
func (ec *EpisodeController) score(ctx *gin.Context) {
	id, ok := episodeID(ctx)
	if !ok {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	result, err := ec.episodes.Score(timeoutCtx, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newScoreResponse(result))
}

// leaderboard lists the most efficient successful episodes of a variant.
func (ec *EpisodeController) leaderboard(ctx *gin.Context) {
	limit := defaultBoardSize
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	board, err := ec.episodes.Leaderboard(timeoutCtx, ctx.Param("variant"), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newLeaderboardResponse(board))
}

// results lists the recorded results of a variant.
func (ec *EpisodeController) results(ctx *gin.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	results, err := ec.episodes.Results(timeoutCtx, ctx.Param("variant"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := make([]*ScoreResponse, 0, len(results))
	for _, r := range results {
		response = append(response, newScoreResponse(r))
	}
	ctx.JSON(http.StatusOK, gin.H{"results": response})
}

func episodeID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to status codes.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEpisodeRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrEpisodeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrEpisodeOver), errors.Is(err, dmn.ErrEpisodeInProgress):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
