package pb

import (
	"github.com/beka-birhanu/rotating-maze/game/maze"
	"github.com/beka-birhanu/rotating-maze/service/i"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ i.Encoder = &Protobuf{}

// Protobuf encodes snapshots as a protobuf Struct message.
type Protobuf struct{}

// MarshalSnapshot implements i.Encoder.
func (p *Protobuf) MarshalSnapshot(s *maze.Snapshot) ([]byte, error) {
	snapshot, err := snapshotToStruct(s)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(snapshot)
}

// UnmarshalSnapshot implements i.Encoder.
func (p *Protobuf) UnmarshalSnapshot(b []byte) (*maze.Snapshot, error) {
	snapshot := &structpb.Struct{}
	if err := proto.Unmarshal(b, snapshot); err != nil {
		return nil, err
	}
	return snapshotFromStruct(snapshot)
}
