package pb

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/beka-birhanu/rotating-maze/game/maze"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the encoded snapshot.
const (
	fieldGrid              = "grid"
	fieldStart             = "start"
	fieldGoal              = "goal"
	fieldCurrent           = "current"
	fieldOptimalPathLength = "optimal_path_length"
	fieldMaxSteps          = "max_steps"
	fieldMoveCount         = "move_count"
	fieldTransformInterval = "transform_interval"
	fieldVariant           = "variant"
	fieldStatus            = "status"
	fieldRotation          = "rotation"
	fieldFlipH             = "flip_horizontal"
	fieldFlipV             = "flip_vertical"
	fieldRNG               = "rng"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

// snapshotToStruct converts a maze.Snapshot into a structpb.Struct.
func snapshotToStruct(s *maze.Snapshot) (*structpb.Struct, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	}

	return structpb.NewStruct(map[string]interface{}{
		fieldGrid:              s.Grid,
		fieldStart:             positionToMap(s.Start),
		fieldGoal:              positionToMap(s.Goal),
		fieldCurrent:           positionToMap(s.Current),
		fieldOptimalPathLength: s.OptimalPathLength,
		fieldMaxSteps:          s.MaxSteps,
		fieldMoveCount:         s.MoveCount,
		fieldTransformInterval: s.TransformInterval,
		fieldVariant:           s.Variant.String(),
		fieldStatus:            s.Status.String(),
		fieldRotation:          s.Transform.Rotation,
		fieldFlipH:             s.Transform.FlipH,
		fieldFlipV:             s.Transform.FlipV,
		fieldRNG:               base64.StdEncoding.EncodeToString(s.RNG),
	})
}

// snapshotFromStruct is the inverse of snapshotToStruct.
func snapshotFromStruct(st *structpb.Struct) (*maze.Snapshot, error) {
	r := &fieldReader{fields: st.GetFields()}

	s := &maze.Snapshot{
		Grid:              r.str(fieldGrid),
		Start:             r.position(fieldStart),
		Goal:              r.position(fieldGoal),
		Current:           r.position(fieldCurrent),
		OptimalPathLength: r.num(fieldOptimalPathLength),
		MaxSteps:          r.num(fieldMaxSteps),
		MoveCount:         r.num(fieldMoveCount),
		TransformInterval: r.num(fieldTransformInterval),
		Transform: maze.Transform{
			Rotation: r.num(fieldRotation),
			FlipH:    r.boolean(fieldFlipH),
			FlipV:    r.boolean(fieldFlipV),
		},
	}

	variant, status, rng := r.str(fieldVariant), r.str(fieldStatus), r.str(fieldRNG)
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if s.Variant, err = maze.ParseVariant(variant); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if s.Status, err = maze.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if rng != "" {
		if s.RNG, err = base64.StdEncoding.DecodeString(rng); err != nil {
			return nil, fmt.Errorf("%w: rng: %v", ErrMalformedSnapshot, err)
		}
	}

	return s, nil
}

func positionToMap(p maze.Position) map[string]interface{} {
	return map[string]interface{}{"x": p.X, "y": p.Y}
}

// fieldReader reads typed fields and keeps the first error.
type fieldReader struct {
	fields map[string]*structpb.Value
	err    error
}

func (r *fieldReader) value(key string) *structpb.Value {
	v, ok := r.fields[key]
	if !ok && r.err == nil {
		r.err = fmt.Errorf("%w: missing field %q", ErrMalformedSnapshot, key)
	}
	return v
}

func (r *fieldReader) str(key string) string {
	v := r.value(key)
	if _, ok := v.GetKind().(*structpb.Value_StringValue); v != nil && !ok {
		r.fail(key, "string")
	}
	return v.GetStringValue()
}

func (r *fieldReader) num(key string) int {
	v := r.value(key)
	if _, ok := v.GetKind().(*structpb.Value_NumberValue); v != nil && !ok {
		r.fail(key, "number")
	}
	return int(v.GetNumberValue())
}

func (r *fieldReader) boolean(key string) bool {
	v := r.value(key)
	if _, ok := v.GetKind().(*structpb.Value_BoolValue); v != nil && !ok {
		r.fail(key, "bool")
	}
	return v.GetBoolValue()
}

func (r *fieldReader) position(key string) maze.Position {
	v := r.value(key)
	if v == nil {
		return maze.Position{}
	}
	sub := &fieldReader{fields: v.GetStructValue().GetFields()}
	p := maze.Position{X: sub.num("x"), Y: sub.num("y")}
	if sub.err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", key, sub.err)
	}
	return p
}

func (r *fieldReader) fail(key, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: field %q is not a %s", ErrMalformedSnapshot, key, want)
	}
}
