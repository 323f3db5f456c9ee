// Package ball holds the state of the single circular body the session
// moves around. The body is pure data: whoever currently controls it (the
// drag path or the integrator) mutates it, never both in the same tick.
package ball

import (
	"fmt"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
)

const DefaultRadius = 25.0

// Body is the draggable ball.
type Body struct {
	Pos    geom.Vec2
	Vel    geom.Vec2
	Radius float64
}

// New returns a body at the given position with zero velocity.
// The radius must be positive.
func New(pos geom.Vec2, radius float64) (*Body, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("ball: radius must be positive, got %f", radius)
	}
	return &Body{Pos: pos, Radius: radius}, nil
}

// Contains reports whether p falls inside the body's circle.
func (b *Body) Contains(p geom.Vec2) bool {
	return b.Pos.DistTo(p) <= b.Radius
}

// MoveTo places the body at p without touching velocity. This is the
// drag path: position follows the pointer directly.
func (b *Body) MoveTo(p geom.Vec2) {
	b.Pos = p
}

// SetVelocity replaces the body's velocity.
func (b *Body) SetVelocity(v geom.Vec2) {
	b.Vel = v
}

// Stop zeroes the velocity.
func (b *Body) Stop() {
	b.Vel = geom.Vec2{}
}

// Speed returns the magnitude of the current velocity.
func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// Snapshot is a read-only copy of the body state, safe to hand to
// observers and renderers.
type Snapshot struct {
	Pos    geom.Vec2
	Vel    geom.Vec2
	Radius float64
}

func (b *Body) Snapshot() Snapshot {
	return Snapshot{Pos: b.Pos, Vel: b.Vel, Radius: b.Radius}
}
