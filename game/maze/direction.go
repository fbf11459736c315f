package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownVariant   = errors.New("unknown variant")
)

// Direction is a move as seen on the rendered view.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every visual direction in action order.
var Directions = [4]Direction{Up, Down, Left, Right}

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Delta returns the unit vector of d in view coordinates (y grows downward).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ActionName returns the tool name bound to d, e.g. "move_up".
func (d Direction) ActionName() string {
	return actionPrefix + d.String()
}

const actionPrefix = "move_"

// ParseDirection accepts "up", "down", "left", "right" and their "move_" action names.
func ParseDirection(s string) (Direction, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), actionPrefix)
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Variant selects whether the view transforms during navigation.
type Variant uint8

const (
	Stationary    Variant = iota // The view never changes.
	NonStationary                // The view is transformed every TransformInterval accepted moves.
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case Stationary:
		return "stationary"
	case NonStationary:
		return "non_stationary"
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// ParseVariant accepts "stationary" and "non_stationary" (or "non-stationary").
func ParseVariant(s string) (Variant, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "stationary":
		return Stationary, nil
	case "non_stationary":
		return NonStationary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}
