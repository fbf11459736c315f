package maze

import (
	"fmt"
	"math/rand/v2"
)

// Snapshot is the transportable form of a Run. Grid uses the text form of Grid.String.
type Snapshot struct {
	Grid              string
	Start             Position
	Goal              Position
	Current           Position
	OptimalPathLength int
	MaxSteps          int
	MoveCount         int
	TransformInterval int
	Variant           Variant
	Transform         Transform
	Status            Status
	RNG               []byte // Opaque random source state, filled in by the owner of the source
}

// Snapshot captures the full state of the run except its random source.
func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		Grid:              r.grid.String(),
		Start:             r.start,
		Goal:              r.goal,
		Current:           r.current,
		OptimalPathLength: r.optimal,
		MaxSteps:          r.maxSteps,
		MoveCount:         r.moveCount,
		TransformInterval: r.interval,
		Variant:           r.variant,
		Transform:         r.transform,
		Status:            r.status,
	}
}

// RestoreRun rebuilds a run from a snapshot. A restored run validates moves exactly as the
// run the snapshot was taken from.
func RestoreRun(s Snapshot, rng *rand.Rand) (*Run, error) {
	grid, err := ParseGrid(s.Grid)
	if err != nil {
		return nil, err
	}

	run, err := NewRun(RunConfig{
		Grid:              grid,
		Start:             s.Start,
		Goal:              s.Goal,
		OptimalPathLength: s.OptimalPathLength,
		MaxSteps:          s.MaxSteps,
		Variant:           s.Variant,
		TransformInterval: s.TransformInterval,
	}, rng)
	if err != nil {
		return nil, err
	}

	if !grid.IsOpen(s.Current) {
		return nil, fmt.Errorf("%w: current %v is not an open cell", ErrInvalidRun, s.Current)
	}
	if s.MoveCount < 0 || s.MoveCount > s.MaxSteps || s.Transform.Rotation < 0 || s.Transform.Rotation > 3 {
		return nil, fmt.Errorf("%w: counters out of range", ErrInvalidRun)
	}
	if want := statusAt(s.Current, s.Goal, s.MoveCount, s.MaxSteps); s.Status != want {
		return nil, fmt.Errorf("%w: status %s, position and counters imply %s", ErrInvalidRun, s.Status, want)
	}

	run.current = s.Current
	run.moveCount = s.MoveCount
	run.transform = s.Transform
	run.status = s.Status
	return run, nil
}

// statusAt is the status a run must have at pos after moves accepted moves.
func statusAt(pos, goal Position, moves, maxSteps int) Status {
	switch {
	case moves == 0:
		return InProgress
	case pos == goal:
		return Succeeded
	case moves >= maxSteps:
		return Failed
	}
	return InProgress
}
