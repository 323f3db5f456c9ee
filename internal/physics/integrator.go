// Package physics advances the ball by one fixed time step. The
// integrator is a pure function of (body, dt, bounds, config): it never
// reads the clock, which keeps every step reproducible in tests.
package physics

import (
	"math"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/ball"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
)

const (
	// MaxDt caps a single step; the scheduler already clamps elapsed
	// time but a pathological caller must not blow up the integration.
	MaxDt = 0.1

	// restEpsilon is the numeric floor below which the body stops
	// integrating entirely. Distinct from Config.RestThreshold, which
	// drives the rest trigger.
	restEpsilon = 1e-3
)

// StepResult reports what a single step did. It is advisory output; the
// scheduler decides what to do with it.
type StepResult struct {
	HitLeft   bool
	HitRight  bool
	HitTop    bool
	HitBottom bool

	// IsMoving is false once speed drops under the numeric floor.
	IsMoving bool
	// VelocityBelowThreshold is true once speed drops under the
	// configured rest threshold.
	VelocityBelowThreshold bool
	// Scrubbed is true when non-finite position, velocity, or dt had
	// to be zeroed before integrating.
	Scrubbed bool
}

// Step advances body by dt seconds inside bounds. Applied in fixed
// order: gravity, friction, position advance, boundary reflection, rest
// detection.
func Step(b *ball.Body, dt float64, bounds geom.Rect, cfg Config) StepResult {
	var res StepResult

	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
		res.Scrubbed = true
	} else if dt > MaxDt {
		dt = MaxDt
	}
	if !b.Pos.IsFinite() {
		b.Pos = geom.Vec2{}
		res.Scrubbed = true
	}
	if !b.Vel.IsFinite() {
		b.Vel = geom.Vec2{}
		res.Scrubbed = true
	}

	b.Vel.Y += cfg.Gravity * dt
	b.Vel = b.Vel.Scale(cfg.Friction)
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	reflect(b, bounds, cfg.Bounce, &res)

	speed := b.Vel.Len()
	res.IsMoving = speed > restEpsilon
	res.VelocityBelowThreshold = speed < cfg.RestThreshold
	return res
}

// reflect clamps the body inside bounds, inset by its radius, negating
// and damping the velocity component for each crossed edge. Bounds that
// shrank since the last step are handled the same way: the clamp pulls
// the body back in.
func reflect(b *ball.Body, bounds geom.Rect, bounce float64, res *StepResult) {
	minX := b.Radius
	maxX := bounds.Width - b.Radius
	minY := b.Radius
	maxY := bounds.Height - b.Radius

	// A degenerate area (narrower than the ball) pins the body to the
	// near edge without bouncing back and forth.
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}

	if b.Pos.X < minX {
		b.Pos.X = minX
		b.Vel.X = -b.Vel.X * bounce
		res.HitLeft = true
	} else if b.Pos.X > maxX {
		b.Pos.X = maxX
		b.Vel.X = -b.Vel.X * bounce
		res.HitRight = true
	}

	if b.Pos.Y < minY {
		b.Pos.Y = minY
		b.Vel.Y = -b.Vel.Y * bounce
		res.HitTop = true
	} else if b.Pos.Y > maxY {
		b.Pos.Y = maxY
		b.Vel.Y = -b.Vel.Y * bounce
		res.HitBottom = true
	}
}
