package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/beka-birhanu/rotating-maze/game/maze"
	"github.com/beka-birhanu/rotating-maze/service/i"
	"github.com/google/uuid"
)

const (
	// EpisodeClaim is the token claim naming the episode a bearer may act on.
	EpisodeClaim = "episode_id"

	defaultTokenTTL = time.Hour
	maxLeaderboard  = 100
)

var (
	ErrInvalidEpisodeRequest = errors.New("invalid episode request")
)

// EpisodeOptions configures an Episodes service.
type EpisodeOptions struct {
	SizeRange      maze.SizeRange
	DefaultVariant maze.Variant
	TokenTTL       time.Duration
	Seed           func() uint64 // Source of generator seeds; nil uses math/rand/v2
	Leaderboard    i.Leaderboard // Optional ranking of successful episodes
}

// Episodes runs maze episodes whose state lives in a RunStore between moves.
type Episodes struct {
	store     i.RunStore
	results   i.ResultRepo
	encoder   i.Encoder
	tokenizer i.Tokenizer
	logger    i.Logger
	opts      *EpisodeOptions
}

// NewEpisodeService creates an episode service. Missing options fall back to defaults.
func NewEpisodeService(store i.RunStore, results i.ResultRepo, encoder i.Encoder, tokenizer i.Tokenizer, logger i.Logger, opts *EpisodeOptions) (i.EpisodeService, error) {
	if store == nil || results == nil || encoder == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("episode service: missing dependency")
	}

	o := EpisodeOptions{}
	if opts != nil {
		o = *opts
	}
	opts = &o
	if opts.SizeRange == (maze.SizeRange{}) {
		opts.SizeRange = maze.DefaultSizeRange
	}
	if err := opts.SizeRange.Validate(); err != nil {
		return nil, err
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.Seed == nil {
		opts.Seed = rand.Uint64
	}

	return &Episodes{
		store:     store,
		results:   results,
		encoder:   encoder,
		tokenizer: tokenizer,
		logger:    logger,
		opts:      opts,
	}, nil
}

// Create implements i.EpisodeService.
func (e *Episodes) Create(ctx context.Context, variant string, sizes *maze.SizeRange) (*dmn.Episode, error) {
	v := e.opts.DefaultVariant
	if variant != "" {
		parsed, err := maze.ParseVariant(variant)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEpisodeRequest, err)
		}
		v = parsed
	}

	sr := e.opts.SizeRange
	if sizes != nil {
		if err := sizes.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEpisodeRequest, err)
		}
		sr = *sizes
	}

	src := rand.NewPCG(e.opts.Seed(), e.opts.Seed())
	rng := rand.New(src)

	inst, err := maze.GenerateInstance(sr, v, rng)
	if err != nil {
		e.logger.Error(fmt.Sprintf("Generating maze failed: %s", err))
		return nil, err
	}

	run, err := inst.NewRun(rng)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	if err := e.persist(ctx, id, run, src); err != nil {
		e.logger.Error(fmt.Sprintf("Saving episode %s failed: %s", id, err))
		return nil, err
	}

	token, err := e.tokenizer.Generate(map[string]interface{}{EpisodeClaim: id.String()}, e.opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	e.logger.Info(fmt.Sprintf("Episode created: ID=%s Variant=%s Size=%d Optimal=%d", id, v, inst.Grid.Width(), inst.OptimalPathLength))

	episode := episodeFromRun(id, run)
	episode.Token = token
	return episode, nil
}

// Act implements i.EpisodeService.
func (e *Episodes) Act(ctx context.Context, id uuid.UUID, action string) (*dmn.ActionResult, error) {
	if _, err := maze.ParseDirection(action); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEpisodeRequest, err)
	}

	unlock, err := e.store.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	run, src, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}

	msg, res, err := run.Execute(action)
	result := &dmn.ActionResult{
		Message:     msg,
		Outcome:     res.Outcome.String(),
		Status:      res.Status.String(),
		MoveCount:   res.MoveCount,
		MaxSteps:    res.MaxSteps,
		Transformed: res.Transformed,
	}
	if res.Transformed {
		result.Effect = res.Effect.String()
		e.logger.Info(fmt.Sprintf("Episode %s view transformed: %s", id, res.Effect))
	}
	if errors.Is(err, maze.ErrEpisodeOver) {
		return result, err
	}
	if err != nil {
		return nil, err
	}

	if res.Outcome == maze.Blocked {
		return result, nil
	}

	if err := e.persist(ctx, id, run, src); err != nil {
		e.logger.Error(fmt.Sprintf("Saving episode %s failed: %s", id, err))
		return nil, err
	}

	if res.Status.Terminal() {
		e.record(ctx, id, run)
	}

	return result, nil
}

// Info implements i.EpisodeService.
func (e *Episodes) Info(ctx context.Context, id uuid.UUID) (*dmn.Episode, error) {
	run, _, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return episodeFromRun(id, run), nil
}

// Score implements i.EpisodeService.
func (e *Episodes) Score(ctx context.Context, id uuid.UUID) (*dmn.EpisodeResult, error) {
	result, err := e.results.ByEpisode(id)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, dmn.ErrResultNotFound) {
		return nil, err
	}

	run, _, loadErr := e.load(ctx, id)
	if loadErr != nil {
		return nil, loadErr
	}
	if !run.Status().Terminal() {
		return nil, dmn.ErrEpisodeInProgress
	}

	// The run finished but recording its result failed earlier; record it now.
	return e.record(ctx, id, run), nil
}

// Abandon implements i.EpisodeService.
func (e *Episodes) Abandon(ctx context.Context, id uuid.UUID) error {
	unlock, err := e.store.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	run, _, err := e.load(ctx, id)
	if err != nil {
		return err
	}

	if err := e.store.Delete(ctx, id); err != nil {
		e.logger.Error(fmt.Sprintf("Deleting episode %s failed: %s", id, err))
		return err
	}

	e.logger.Info(fmt.Sprintf("Episode abandoned: ID=%s Status=%s Steps=%d", id, run.Status(), run.MoveCount()))
	return nil
}

// Results implements i.EpisodeService.
func (e *Episodes) Results(ctx context.Context, variant string) ([]*dmn.EpisodeResult, error) {
	v, err := maze.ParseVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEpisodeRequest, err)
	}

	results, err := e.results.ByVariant(v.String())
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*dmn.EpisodeResult{}
	}
	return results, nil
}

// Leaderboard implements i.EpisodeService.
func (e *Episodes) Leaderboard(ctx context.Context, variant string, n int) (*dmn.Leaderboard, error) {
	v, err := maze.ParseVariant(variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEpisodeRequest, err)
	}
	if n <= 0 || n > maxLeaderboard {
		return nil, fmt.Errorf("%w: leaderboard size must be in [1, %d], got %d", ErrInvalidEpisodeRequest, maxLeaderboard, n)
	}

	board := &dmn.Leaderboard{Variant: v.String(), Entries: []dmn.LeaderboardEntry{}}
	if e.opts.Leaderboard == nil {
		return board, nil
	}

	entries, err := e.opts.Leaderboard.Top(ctx, board.Variant, int64(n))
	if err != nil {
		return nil, err
	}
	total, err := e.opts.Leaderboard.Count(ctx, board.Variant)
	if err != nil {
		return nil, err
	}
	if entries != nil {
		board.Entries = entries
	}
	board.Total = total
	return board, nil
}

// record scores a finished run and stores the result. Storage failures are logged, not returned,
// since the episode itself already ended.
func (e *Episodes) record(ctx context.Context, id uuid.UUID, run *maze.Run) *dmn.EpisodeResult {
	score := maze.ScoreRun(run)
	result := &dmn.EpisodeResult{
		EpisodeID:    id,
		Variant:      run.Variant().String(),
		Success:      score.Success,
		Score:        score.Value(),
		StepsTaken:   score.StepsTaken,
		OptimalSteps: score.OptimalSteps,
		Efficiency:   score.Efficiency,
		FinishedAt:   time.Now().UTC(),
	}

	if err := e.results.Save(result); err != nil {
		e.logger.Error(fmt.Sprintf("Recording result of episode %s failed: %s", id, err))
	} else {
		e.logger.Info(fmt.Sprintf("Episode finished: ID=%s Success=%t Steps=%d Optimal=%d", id, score.Success, score.StepsTaken, score.OptimalSteps))
	}

	if score.Success && e.opts.Leaderboard != nil {
		if err := e.opts.Leaderboard.Record(ctx, result.Variant, id, score.Efficiency); err != nil {
			e.logger.Warning(fmt.Sprintf("Ranking episode %s failed: %s", id, err))
		}
	}
	return result
}

func (e *Episodes) persist(ctx context.Context, id uuid.UUID, run *maze.Run, src *rand.PCG) error {
	snap := run.Snapshot()
	state, err := src.MarshalBinary()
	if err != nil {
		return err
	}
	snap.RNG = state

	b, err := e.encoder.MarshalSnapshot(&snap)
	if err != nil {
		return err
	}
	return e.store.Save(ctx, id, b)
}

func (e *Episodes) load(ctx context.Context, id uuid.UUID) (*maze.Run, *rand.PCG, error) {
	b, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	snap, err := e.encoder.UnmarshalSnapshot(b)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding episode %s: %w", id, err)
	}

	src := &rand.PCG{}
	if err := src.UnmarshalBinary(snap.RNG); err != nil {
		return nil, nil, fmt.Errorf("decoding episode %s random source: %w", id, err)
	}

	run, err := maze.RestoreRun(*snap, rand.New(src))
	if err != nil {
		return nil, nil, fmt.Errorf("restoring episode %s: %w", id, err)
	}
	return run, src, nil
}

func episodeFromRun(id uuid.UUID, run *maze.Run) *dmn.Episode {
	return &dmn.Episode{
		ID:                id,
		Variant:           run.Variant().String(),
		Status:            run.Status().String(),
		View:              run.View(),
		MoveCount:         run.MoveCount(),
		MaxSteps:          run.MaxSteps(),
		OptimalPathLength: run.OptimalPathLength(),
	}
}
