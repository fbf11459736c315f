package maze

import "errors"

// Tool is a named move action offered to a navigating agent.
type Tool struct {
	Name        string
	Description string
	Direction   Direction
}

// Tools returns the four move actions in the order move_up, move_down, move_left, move_right.
func Tools() []Tool {
	tools := make([]Tool, 0, len(Directions))
	for _, d := range Directions {
		tools = append(tools, Tool{
			Name:        d.ActionName(),
			Description: "Move one step " + d.String() + " in the current maze view.",
			Direction:   d,
		})
	}
	return tools
}

// Execute runs the named action against r and returns the agent-facing status text.
func (r *Run) Execute(action string) (string, MoveResult, error) {
	d, err := ParseDirection(action)
	if err != nil {
		return "", MoveResult{}, err
	}

	res, err := r.AttemptMove(d)
	if errors.Is(err, ErrEpisodeOver) {
		return "Episode is over. No further moves are accepted.\n\n" + res.View, res, err
	}
	if err != nil {
		return "", res, err
	}

	return res.Message(), res, nil
}
