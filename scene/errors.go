package scene

import "errors"

var (
	// ErrEmptyID is returned by Queue.Upsert for a shape without an id.
	ErrEmptyID = errors.New("scene: shape id is empty")

	// ErrNoGeometry is returned by Queue.Upsert for a shape whose
	// Geometry is nil.
	ErrNoGeometry = errors.New("scene: shape has no geometry")
)
