package scene

import "github.com/google/uuid"

// NewID returns a random shape id for hosts that do not name their shapes.
func NewID() string {
	return uuid.NewString()
}
