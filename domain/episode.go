// Package domain holds the records exchanged between the episode service, its stores and the API.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEpisodeNotFound   = errors.New("episode not found")
	ErrEpisodeInProgress = errors.New("episode still in progress")
	ErrResultNotFound    = errors.New("result not found")
)

// Episode describes a live navigation episode as seen by its agent.
type Episode struct {
	ID                uuid.UUID
	Token             string // Bearer token scoped to this episode, set only on creation
	Variant           string
	Status            string
	View              string
	MoveCount         int
	MaxSteps          int
	OptimalPathLength int
}

// ActionResult is the outcome of one move action.
type ActionResult struct {
	Message     string // Agent-facing status text
	Outcome     string // "moved" or "blocked"
	Status      string
	MoveCount   int
	MaxSteps    int
	Transformed bool
	Effect      string // Applied effect when Transformed
}

// EpisodeResult is the scored record of a finished episode.
type EpisodeResult struct {
	EpisodeID    uuid.UUID `bson:"_id"`
	Variant      string    `bson:"variant"`
	Success      bool      `bson:"success"`
	Score        float64   `bson:"score"`
	StepsTaken   int       `bson:"stepsTaken"`
	OptimalSteps int       `bson:"optimalSteps"`
	Efficiency   float64   `bson:"efficiency"`
	FinishedAt   time.Time `bson:"finishedAt"`
}

// LeaderboardEntry is one ranked successful episode.
type LeaderboardEntry struct {
	EpisodeID  uuid.UUID
	Efficiency float64
}

// Leaderboard is the top of a variant's ranking.
type Leaderboard struct {
	Variant string
	Total   int64 // Ranked episodes of the variant, including those not in Entries
	Entries []LeaderboardEntry
}
