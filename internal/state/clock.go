package state

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the wall time used for export names.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// NewID returns a random identifier for sessions and gestures.
func NewID() string {
	return uuid.NewString()
}
