package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// TransformInterval is the number of accepted moves between view transformations in the
// non-stationary variant.
const TransformInterval = 5

var (
	ErrEpisodeOver = errors.New("episode is over")
	ErrInvalidRun  = errors.New("invalid run configuration")
)

// Status is the lifecycle state of a Run.
type Status uint8

const (
	InProgress Status = iota
	Succeeded
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{InProgress, Succeeded, Failed} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s != InProgress
}

// RunConfig holds everything needed to start navigating a maze.
type RunConfig struct {
	Grid              Grid
	Start             Position
	Goal              Position
	OptimalPathLength int
	MaxSteps          int
	Variant           Variant
	TransformInterval int // Zero selects TransformInterval.
}

// Run is the mutable state of one navigation episode.
// A Run is not safe for concurrent use; independent runs share nothing.
type Run struct {
	grid      Grid
	start     Position
	goal      Position
	current   Position
	optimal   int
	maxSteps  int
	moveCount int
	interval  int
	variant   Variant
	transform Transform
	status    Status
	rng       *rand.Rand
}

// NewRun validates cfg and places the agent on the start cell.
// rng drives transformation selection and may be nil only for the stationary variant.
func NewRun(cfg RunConfig, rng *rand.Rand) (*Run, error) {
	if !cfg.Grid.IsOpen(cfg.Start) {
		return nil, fmt.Errorf("%w: start %v is not an open cell", ErrInvalidRun, cfg.Start)
	}
	if !cfg.Grid.IsOpen(cfg.Goal) {
		return nil, fmt.Errorf("%w: goal %v is not an open cell", ErrInvalidRun, cfg.Goal)
	}
	if cfg.MaxSteps <= 0 {
		return nil, fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidRun, cfg.MaxSteps)
	}
	if cfg.TransformInterval < 0 {
		return nil, fmt.Errorf("%w: negative transform interval", ErrInvalidRun)
	}
	if cfg.Variant == NonStationary && rng == nil {
		return nil, fmt.Errorf("%w: non-stationary run needs a random source", ErrInvalidRun)
	}

	interval := cfg.TransformInterval
	if interval == 0 {
		interval = TransformInterval
	}

	return &Run{
		grid:     cfg.Grid,
		start:    cfg.Start,
		goal:     cfg.Goal,
		current:  cfg.Start,
		optimal:  cfg.OptimalPathLength,
		maxSteps: cfg.MaxSteps,
		interval: interval,
		variant:  cfg.Variant,
		rng:      rng,
	}, nil
}

// Accessors for the run state.
func (r *Run) Grid() Grid { return r.grid }
func (r *Run) Start() Position { return r.start }
func (r *Run) Goal() Position { return r.goal }
func (r *Run) Current() Position { return r.current }
func (r *Run) OptimalPathLength() int { return r.optimal }
func (r *Run) MaxSteps() int { return r.maxSteps }
func (r *Run) MoveCount() int { return r.moveCount }
func (r *Run) Variant() Variant { return r.variant }
func (r *Run) Transform() Transform { return r.transform }
func (r *Run) Status() Status { return r.status }
func (r *Run) TransformInterval() int { return r.interval }

// Outcome classifies a move attempt.
type Outcome uint8

const (
	Moved   Outcome = iota // The move was applied.
	Blocked                // A wall or the boundary was in the way; nothing changed.
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o == Moved {
		return "moved"
	}
	return "blocked"
}

// MoveResult describes the effect of one AttemptMove call.
type MoveResult struct {
	Outcome     Outcome
	Direction   Direction // Visual direction requested
	DX, DY      int       // Canonical displacement the direction translated to
	Status      Status
	MoveCount   int
	MaxSteps    int
	Transformed bool   // A transformation fired after this move
	Effect      Effect // Valid only when Transformed
	View        string // Rendered view after the move
}

// AttemptMove translates d through the current transformation and applies it if the
// target cell is open. Rejected moves change nothing and do not count as steps, so they
// never trigger a scheduled transformation either.
func (r *Run) AttemptMove(d Direction) (MoveResult, error) {
	if r.status.Terminal() {
		return r.result(Blocked, d, 0, 0), ErrEpisodeOver
	}

	dx, dy := r.transform.TranslateVisualToActual(d)
	target := r.current.Add(dx, dy)
	if !r.grid.IsOpen(target) {
		return r.result(Blocked, d, dx, dy), nil
	}

	r.current = target
	r.moveCount++

	var (
		transformed bool
		effect      Effect
	)
	if r.shouldTransform() {
		effect = r.transform.Select(r.rng)
		transformed = true
	}

	r.status = statusAt(r.current, r.goal, r.moveCount, r.maxSteps)

	res := r.result(Moved, d, dx, dy)
	res.Transformed = transformed
	res.Effect = effect
	return res, nil
}

func (r *Run) shouldTransform() bool {
	return r.variant == NonStationary && r.moveCount > 0 && r.moveCount%r.interval == 0
}

func (r *Run) result(o Outcome, d Direction, dx, dy int) MoveResult {
	return MoveResult{
		Outcome:   o,
		Direction: d,
		DX:        dx,
		DY:        dy,
		Status:    r.status,
		MoveCount: r.moveCount,
		MaxSteps:  r.maxSteps,
		View:      r.View(),
	}
}

// View renders the maze with markers as the agent currently sees it.
// The player marker wins over goal and start, and goal wins over start.
func (r *Run) View() string {
	return joinRows(r.transform.Render(r.overlay()))
}

func (r *Run) overlay() [][]byte {
	view := r.grid.chars()
	view[r.current.Y][r.current.X] = PlayerChar
	if r.goal != r.current {
		view[r.goal.Y][r.goal.X] = GoalChar
	}
	if r.start != r.current && r.start != r.goal {
		view[r.start.Y][r.start.X] = StartChar
	}
	return view
}

// Message formats the result as the status text returned to a navigating agent.
func (m MoveResult) Message() string {
	switch {
	case m.Outcome == Blocked:
		return fmt.Sprintf("Cannot move %s - wall or boundary.\nSteps: %d/%d\n\n%s", m.Direction, m.MoveCount, m.MaxSteps, m.View)
	case m.Status == Succeeded:
		return fmt.Sprintf("Success! Reached the goal in %d moves.\n\n%s", m.MoveCount, m.View)
	case m.Status == Failed:
		return fmt.Sprintf("Max steps (%d) reached. Task failed.\nSteps: %d/%d\n\n%s", m.MaxSteps, m.MoveCount, m.MaxSteps, m.View)
	default:
		return fmt.Sprintf("Moved %s.\nSteps: %d/%d\n\n%s", m.Direction, m.MoveCount, m.MaxSteps, m.View)
	}
}
