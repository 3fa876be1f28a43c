package budget

import "time"

// Clock is the time source a task measures its budget with.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock returns a clock reading the monotonic system time.
func WallClock() Clock {
	return wallClock{}
}

type config struct {
	clock Clock
	name  string
}

// Option configures a task.
type Option func(*config)

// WithClock sets the time source of a task. Hosts may pass their frame
// clock, tests a manually advanced one.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithName sets the name a task is traced with.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
