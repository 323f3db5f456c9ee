// Package motion estimates a release velocity from pointer samples
// recorded while the ball is held.
package motion

import (
	"time"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
)

const (
	// Capacity bounds the sample history; the oldest sample is evicted
	// when full.
	Capacity = 10

	// estimateWindow is how many of the newest samples the velocity
	// estimate spans.
	estimateWindow = 5

	// minInterval guards against dividing by a near-zero elapsed time
	// between near-simultaneous samples.
	minInterval = time.Millisecond
)

// Sample is one (position, timestamp) pair recorded during a drag.
type Sample struct {
	Pos geom.Vec2
	At  time.Time
}

// Sampler keeps a fixed-capacity chronological history of drag samples.
// Not safe for concurrent use.
type Sampler struct {
	samples []Sample
}

func NewSampler() *Sampler {
	return &Sampler{samples: make([]Sample, 0, Capacity)}
}

// Record appends a sample, evicting the oldest when the buffer is full.
// Chronological order is preserved.
func (s *Sampler) Record(pos geom.Vec2, at time.Time) {
	if len(s.samples) == Capacity {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:Capacity-1]
	}
	s.samples = append(s.samples, Sample{Pos: pos, At: at})
}

// Len returns the number of stored samples.
func (s *Sampler) Len() int {
	return len(s.samples)
}

// Reset discards all samples.
func (s *Sampler) Reset() {
	s.samples = s.samples[:0]
}

// EstimateVelocity computes (Δx/Δt, Δy/Δt) from the oldest and newest of
// the last min(5, count) samples. With fewer than two samples, or an
// elapsed time under a millisecond, it returns a zero vector instead of
// amplifying noise into a velocity spike.
func (s *Sampler) EstimateVelocity() geom.Vec2 {
	n := len(s.samples)
	if n < 2 {
		return geom.Vec2{}
	}
	k := estimateWindow
	if n < k {
		k = n
	}
	oldest := s.samples[n-k]
	newest := s.samples[n-1]

	dt := newest.At.Sub(oldest.At)
	if dt < minInterval {
		return geom.Vec2{}
	}
	return newest.Pos.Sub(oldest.Pos).Scale(1 / dt.Seconds())
}
