package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/beka-birhanu/rotating-maze/game/maze"
)

const (
	baseInstructions = `You are navigating an ASCII maze. Your goal is to reach 'G' starting from 'S'.

Legend:
- S: Your starting position
- P: Your current position
- G: Goal
- #: Wall (cannot pass)
- .: Open path

Available actions: move_up, move_down, move_left, move_right
- These move you relative to the current view

`
	nonStationaryNote = `Note: The maze view may change during navigation. Your actual position doesn't change - only the visual representation. Pay close attention to the maze layout after each move.

`
	closingInstruction = "Reach the goal as efficiently as possible."
)

// Point is a serializable maze position.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// SampleMetadata carries what is needed to rebuild the run of a sample.
type SampleMetadata struct {
	MazeID            int      `json:"maze_id" yaml:"maze_id"`
	OptimalPathLength int      `json:"optimal_path_length" yaml:"optimal_path_length"`
	MaxSteps          int      `json:"max_steps" yaml:"max_steps"`
	Variant           string   `json:"variant" yaml:"variant"`
	StartPos          Point    `json:"start_pos" yaml:"start_pos"`
	GoalPos           Point    `json:"goal_pos" yaml:"goal_pos"`
	Grid              []string `json:"grid" yaml:"grid"`
}

// Sample is one evaluation prompt with its maze.
type Sample struct {
	ID       string         `json:"id" yaml:"id"`
	Input    string         `json:"input" yaml:"input"`
	Metadata SampleMetadata `json:"metadata" yaml:"metadata"`
}

// Instructions returns the agent instructions for a variant.
func Instructions(v maze.Variant) string {
	msg := baseInstructions
	if v == maze.NonStationary {
		msg += nonStationaryNote
	}
	return msg + closingInstruction
}

// BuildDataset generates n maze samples of one variant.
func BuildDataset(n int, v maze.Variant, sizes maze.SizeRange, rng *rand.Rand) ([]Sample, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: dataset size must be positive, got %d", ErrInvalidEpisodeRequest, n)
	}

	samples := make([]Sample, 0, n)
	for idx := 0; idx < n; idx++ {
		inst, err := maze.GenerateInstance(sizes, v, rng)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", idx, err)
		}

		samples = append(samples, Sample{
			ID:    fmt.Sprintf("maze_%s_%d", v, idx),
			Input: fmt.Sprintf("%s\n\nHere is your maze:\n\n%s", Instructions(v), inst.InitialView),
			Metadata: SampleMetadata{
				MazeID:            idx,
				OptimalPathLength: inst.OptimalPathLength,
				MaxSteps:          inst.MaxSteps,
				Variant:           v.String(),
				StartPos:          Point{X: inst.Start.X, Y: inst.Start.Y},
				GoalPos:           Point{X: inst.Goal.X, Y: inst.Goal.Y},
				Grid:              strings.Split(inst.Grid.String(), "\n"),
			},
		})
	}
	return samples, nil
}

// RunFromSample rebuilds the run described by a sample's metadata.
func RunFromSample(s Sample, rng *rand.Rand) (*maze.Run, error) {
	grid, err := maze.ParseGrid(strings.Join(s.Metadata.Grid, "\n"))
	if err != nil {
		return nil, err
	}
	v, err := maze.ParseVariant(s.Metadata.Variant)
	if err != nil {
		return nil, err
	}

	return maze.NewRun(maze.RunConfig{
		Grid:              grid,
		Start:             maze.Position{X: s.Metadata.StartPos.X, Y: s.Metadata.StartPos.Y},
		Goal:              maze.Position{X: s.Metadata.GoalPos.X, Y: s.Metadata.GoalPos.Y},
		OptimalPathLength: s.Metadata.OptimalPathLength,
		MaxSteps:          s.Metadata.MaxSteps,
		Variant:           v,
	}, rng)
}
