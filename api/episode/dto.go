// Package episodeapi exposes maze episodes over HTTP.
package episodeapi

import (
	"time"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
)

// CreateRequest represents a request to start a new episode. Every field is optional.
type CreateRequest struct {
	Variant string `json:"variant"`
	MinSize int    `json:"min_size" binding:"omitempty,min=1"`
	MaxSize int    `json:"max_size" binding:"omitempty,min=1,gtefield=MinSize"`
}

// EpisodeResponse describes an episode and its current view.
type EpisodeResponse struct {
	ID                string `json:"id"`
	Token             string `json:"token,omitempty"`
	Variant           string `json:"variant"`
	Status            string `json:"status"`
	View              string `json:"view"`
	MoveCount         int    `json:"move_count"`
	MaxSteps          int    `json:"max_steps"`
	OptimalPathLength int    `json:"optimal_path_length"`
}

// ActionResponse is the outcome of one move action.
type ActionResponse struct {
	Message     string `json:"message"`
	Outcome     string `json:"outcome"`
	Status      string `json:"status"`
	MoveCount   int    `json:"move_count"`
	MaxSteps    int    `json:"max_steps"`
	Transformed bool   `json:"transformed"`
	Effect      string `json:"effect,omitempty"`
}

// ToolResponse describes a move action an agent may call.
type ToolResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LeaderboardEntryResponse is one ranked episode.
type LeaderboardEntryResponse struct {
	Rank       int     `json:"rank"`
	ID         string  `json:"id"`
	Efficiency float64 `json:"efficiency"`
}

// LeaderboardResponse is the top of a variant's ranking.
type LeaderboardResponse struct {
	Variant string                     `json:"variant"`
	Total   int64                      `json:"total"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// ScoreResponse is the scored result of a finished episode.
type ScoreResponse struct {
	ID           string    `json:"id"`
	Variant      string    `json:"variant"`
	Success      bool      `json:"success"`
	Score        float64   `json:"score"`
	StepsTaken   int       `json:"steps_taken"`
	OptimalSteps int       `json:"optimal_steps"`
	Efficiency   float64   `json:"efficiency"`
	FinishedAt   time.Time `json:"finished_at"`
}

func newEpisodeResponse(e *dmn.Episode) *EpisodeResponse {
	return &EpisodeResponse{
		ID:                e.ID.String(),
		Token:             e.Token,
		Variant:           e.Variant,
		Status:            e.Status,
		View:              e.View,
		MoveCount:         e.MoveCount,
		MaxSteps:          e.MaxSteps,
		OptimalPathLength: e.OptimalPathLength,
	}
}

func newActionResponse(r *dmn.ActionResult) *ActionResponse {
	return &ActionResponse{
		Message:     r.Message,
		Outcome:     r.Outcome,
		Status:      r.Status,
		MoveCount:   r.MoveCount,
		MaxSteps:    r.MaxSteps,
		Transformed: r.Transformed,
		Effect:      r.Effect,
	}
}

func newScoreResponse(r *dmn.EpisodeResult) *ScoreResponse {
	return &ScoreResponse{
		ID:           r.EpisodeID.String(),
		Variant:      r.Variant,
		Success:      r.Success,
		Score:        r.Score,
		StepsTaken:   r.StepsTaken,
		OptimalSteps: r.OptimalSteps,
		Efficiency:   r.Efficiency,
		FinishedAt:   r.FinishedAt,
	}
}

func newLeaderboardResponse(b *dmn.Leaderboard) *LeaderboardResponse {
	entries := make([]LeaderboardEntryResponse, 0, len(b.Entries))
	for idx, e := range b.Entries {
		entries = append(entries, LeaderboardEntryResponse{
			Rank:       idx + 1,
			ID:         e.EpisodeID.String(),
			Efficiency: e.Efficiency,
		})
	}
	return &LeaderboardResponse{Variant: b.Variant, Total: b.Total, Entries: entries}
}
