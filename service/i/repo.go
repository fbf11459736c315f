package i

import (
	"context"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/google/uuid"
)

// ResultRepo defines the interface for episode result persistence.
type ResultRepo interface {
	// Save inserts or updates the result of a finished episode.
	Save(result *dmn.EpisodeResult) error

	// ByEpisode retrieves the result of one episode.
	// Returns dmn.ErrResultNotFound when the episode has not been scored.
	ByEpisode(id uuid.UUID) (*dmn.EpisodeResult, error)

	// ByVariant lists every recorded result of a variant.
	ByVariant(variant string) ([]*dmn.EpisodeResult, error)
}

// RunStore keeps encoded run snapshots between move requests.
type RunStore interface {
	// Save stores the encoded snapshot of an episode, refreshing its expiry.
	Save(ctx context.Context, id uuid.UUID, snapshot []byte) error

	// Load returns the encoded snapshot. Returns dmn.ErrEpisodeNotFound if absent or expired.
	Load(ctx context.Context, id uuid.UUID) ([]byte, error)

	// Delete removes an episode.
	Delete(ctx context.Context, id uuid.UUID) error

	// Lock serializes access to one episode. The returned func releases the lock.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}

// Leaderboard ranks successful episodes of each variant by efficiency.
type Leaderboard interface {
	// Record adds or updates an episode's efficiency.
	Record(ctx context.Context, variant string, id uuid.UUID, efficiency float64) error

	// Top returns up to n entries, most efficient first.
	Top(ctx context.Context, variant string, n int64) ([]dmn.LeaderboardEntry, error)

	// Count returns the number of ranked episodes.
	Count(ctx context.Context, variant string) (int64, error)
}
