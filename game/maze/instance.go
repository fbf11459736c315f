package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// maxStepsFactor scales the optimal path length into the step budget.
const maxStepsFactor = 3

var (
	ErrInvalidSizeRange = errors.New("invalid size range")

	// DefaultSizeRange is the side length range used when none is configured.
	DefaultSizeRange = SizeRange{Min: 12, Max: 18}
)

// SizeRange bounds the side length of generated square mazes, inclusive.
type SizeRange struct {
	Min int
	Max int
}

// Validate rejects empty and non-positive ranges.
func (s SizeRange) Validate() error {
	if s.Min <= 0 || s.Min > s.Max {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidSizeRange, s.Min, s.Max)
	}
	return nil
}

// Instance is a freshly generated maze ready to be navigated.
type Instance struct {
	Grid              Grid
	Start             Position
	Goal              Position
	OptimalPathLength int
	MaxSteps          int
	Variant           Variant
	InitialView       string
}

// GenerateInstance picks a side length uniformly from sizes, generates a square maze and
// renders its untransformed initial view.
func GenerateInstance(sizes SizeRange, variant Variant, rng *rand.Rand) (*Instance, error) {
	if err := sizes.Validate(); err != nil {
		return nil, err
	}

	size := sizes.Min + rng.IntN(sizes.Max-sizes.Min+1)
	gen, err := NewGenerator(size, size, rng)
	if err != nil {
		return nil, err
	}

	layout, err := gen.Generate()
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		Grid:              layout.Grid,
		Start:             layout.Start,
		Goal:              layout.Goal,
		OptimalPathLength: layout.OptimalPathLength,
		MaxSteps:          layout.OptimalPathLength * maxStepsFactor,
		Variant:           variant,
	}

	run, err := inst.NewRun(rng)
	if err != nil {
		return nil, err
	}
	inst.InitialView = run.View()

	return inst, nil
}

// RunConfig returns the configuration for navigating the instance.
func (in *Instance) RunConfig() RunConfig {
	return RunConfig{
		Grid:              in.Grid,
		Start:             in.Start,
		Goal:              in.Goal,
		OptimalPathLength: in.OptimalPathLength,
		MaxSteps:          in.MaxSteps,
		Variant:           in.Variant,
	}
}

// NewRun starts a fresh run over the instance.
func (in *Instance) NewRun(rng *rand.Rand) (*Run, error) {
	return NewRun(in.RunConfig(), rng)
}
