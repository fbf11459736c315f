package i

import "github.com/beka-birhanu/rotating-maze/game/maze"

// Encoder serializes run snapshots for transport and storage.
type Encoder interface {
	MarshalSnapshot(*maze.Snapshot) ([]byte, error)
	UnmarshalSnapshot([]byte) (*maze.Snapshot, error)
}
