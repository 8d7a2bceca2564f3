package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time for anything that makes time-based decisions, so the
// event status sweep and session expiry checks are testable.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
