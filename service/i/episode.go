package i

import (
	"context"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/beka-birhanu/rotating-maze/game/maze"
	"github.com/google/uuid"
)

// EpisodeService runs navigation episodes on behalf of external agents.
type EpisodeService interface {
	// Create generates a new maze episode. An empty variant or nil size range selects the defaults.
	Create(ctx context.Context, variant string, sizes *maze.SizeRange) (*dmn.Episode, error)

	// Act executes a named move action (move_up, move_down, move_left, move_right).
	Act(ctx context.Context, id uuid.UUID, action string) (*dmn.ActionResult, error)

	// Info returns the current view and counters of an episode.
	Info(ctx context.Context, id uuid.UUID) (*dmn.Episode, error)

	// Score returns the recorded result of a finished episode.
	Score(ctx context.Context, id uuid.UUID) (*dmn.EpisodeResult, error)

	// Abandon discards a live episode. A recorded result is kept.
	Abandon(ctx context.Context, id uuid.UUID) error

	// Results lists the recorded results of a variant, most recent first.
	Results(ctx context.Context, variant string) ([]*dmn.EpisodeResult, error)

	// Leaderboard returns up to n of the most efficient successful episodes of a variant.
	Leaderboard(ctx context.Context, variant string, n int) (*dmn.Leaderboard, error)
}
