package maze

// Score summarizes how well a run was navigated.
type Score struct {
	Success      bool    // Goal reached within the step budget
	StepsTaken   int     // Accepted moves
	OptimalSteps int     // Shortest possible path length
	Efficiency   float64 // OptimalSteps / StepsTaken on success, 0 otherwise
}

// Value is 1 for a successful run and 0 otherwise.
func (s Score) Value() float64 {
	if s.Success {
		return 1
	}
	return 0
}

// ScoreRun scores r in its current state. Runs still in progress score as failures.
func ScoreRun(r *Run) Score {
	score := Score{
		Success:      r.Status() == Succeeded,
		StepsTaken:   r.MoveCount(),
		OptimalSteps: r.OptimalPathLength(),
	}
	if score.Success && score.StepsTaken > 0 {
		score.Efficiency = float64(score.OptimalSteps) / float64(score.StepsTaken)
	}
	return score
}
