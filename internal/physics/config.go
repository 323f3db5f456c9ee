package physics

import (
	"errors"
	"fmt"
)

// ErrParameterBounds indicates a config value outside its valid range.
var ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

// Default tuning, in canvas pixels and seconds.
const (
	DefaultGravity       = 980.0
	DefaultFriction      = 0.995
	DefaultBounce        = 0.8
	DefaultRestThreshold = 20.0
)

// Config holds the per-session physics tuning. Immutable once validated.
type Config struct {
	// Gravity is the downward acceleration in px/s².
	Gravity float64
	// Friction is the uniform velocity damping applied each step, (0,1].
	Friction float64
	// Bounce scales the reflected velocity component on boundary
	// contact, [0,1].
	Bounce float64
	// RestThreshold is the speed below which the body counts as at
	// rest, px/s. Must be positive.
	RestThreshold float64
}

func DefaultConfig() Config {
	return Config{
		Gravity:       DefaultGravity,
		Friction:      DefaultFriction,
		Bounce:        DefaultBounce,
		RestThreshold: DefaultRestThreshold,
	}
}

// Validate checks every parameter range. Called once per session.
func (c Config) Validate() error {
	if c.Friction <= 0 || c.Friction > 1 {
		return fmt.Errorf("%w: friction %f not in (0,1]", ErrParameterBounds, c.Friction)
	}
	if c.Bounce < 0 || c.Bounce > 1 {
		return fmt.Errorf("%w: bounce %f not in [0,1]", ErrParameterBounds, c.Bounce)
	}
	if c.RestThreshold <= 0 {
		return fmt.Errorf("%w: rest threshold %f must be positive", ErrParameterBounds, c.RestThreshold)
	}
	return nil
}
