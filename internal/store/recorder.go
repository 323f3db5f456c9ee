package store

import (
	"time"

	"go.uber.org/zap"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/ball"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/fsm"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/physics"
)

// Recorder captures each Thrown episode and saves it when the ball
// settles. Attach with Session.Subscribe and Session.AddStepObserver.
// It only reads snapshots; it never mutates core state.
type Recorder struct {
	store *Store
	log   *zap.Logger

	active    bool
	startedAt time.Time
	frames    []Frame
	meta      EpisodeMetadata
}

func NewRecorder(s *Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: s, log: log}
}

// OnTransition is an fsm.Observer: it opens an episode on entry to
// Thrown and closes (and saves) it when the episode ends.
func (r *Recorder) OnTransition(prev, next fsm.State, trig fsm.Trigger) {
	switch {
	case next == fsm.Thrown:
		r.active = true
		r.frames = r.frames[:0]
		r.meta = EpisodeMetadata{}
	case r.active && prev == fsm.Thrown:
		r.active = false
		// A Reset mid-flight discards the episode; only a completed
		// throw is worth keeping.
		if trig != fsm.RestReached {
			return
		}
		r.finish()
	}
}

// OnStep is a cadence.Observer.
func (r *Recorder) OnStep(s ball.Snapshot, res physics.StepResult, at time.Time) {
	if !r.active {
		return
	}
	if len(r.frames) == 0 {
		r.startedAt = at
		r.meta.StartedAt = at
		r.meta.ReleaseVX = s.Vel.X
		r.meta.ReleaseVY = s.Vel.Y
	}
	if res.HitLeft || res.HitRight || res.HitTop || res.HitBottom {
		r.meta.Bounces++
	}
	r.frames = append(r.frames, Frame{
		T:  at.Sub(r.startedAt).Seconds(),
		X:  s.Pos.X,
		Y:  s.Pos.Y,
		VX: s.Vel.X,
		VY: s.Vel.Y,
	})
}

func (r *Recorder) finish() {
	if len(r.frames) == 0 {
		return
	}
	last := r.frames[len(r.frames)-1]
	r.meta.Duration = last.T
	r.meta.Ticks = len(r.frames)
	r.meta.RestX = last.X
	r.meta.RestY = last.Y

	id, err := r.store.Save(r.meta, r.frames)
	if err != nil {
		r.log.Error("failed to save episode", zap.Error(err))
		return
	}
	r.log.Info("episode saved",
		zap.String("id", id),
		zap.Int("ticks", r.meta.Ticks),
		zap.Float64("duration_s", r.meta.Duration))
}
