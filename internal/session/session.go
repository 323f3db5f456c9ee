// Package session wires the ball, the sampler, the state machine, and
// the scheduler into one interaction session and translates pointer
// events into triggers. All calls must come from the host event loop;
// the core carries no locks.
package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/ball"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/cadence"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/fsm"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/motion"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/physics"
)

// Options configures a session. Zero fields get defaults.
type Options struct {
	// StartPos is the ball's initial position.
	StartPos geom.Vec2
	// Radius defaults to ball.DefaultRadius.
	Radius float64
	// Bounds is queried by the scheduler once per tick.
	Bounds func() geom.Rect
	// Interval is the physics cadence, default 1/60s.
	Interval time.Duration
	// MaxEpisode optionally caps a Thrown episode.
	MaxEpisode time.Duration
	Pacer      cadence.Pacer
	Clock      cadence.Clock
	Log        *zap.Logger
}

// Session owns one ball and its full Held/Thrown lifecycle.
type Session struct {
	body    *ball.Body
	machine *fsm.Machine
	sampler *motion.Sampler
	sched   *cadence.Scheduler
	log     *zap.Logger
}

// New validates cfg once and builds a session in Idle.
func New(cfg physics.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Radius <= 0 {
		opts.Radius = ball.DefaultRadius
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	body, err := ball.New(opts.StartPos, opts.Radius)
	if err != nil {
		return nil, err
	}

	machine := fsm.New(opts.Log)
	sched := cadence.New(machine, body, cfg, cadence.Options{
		Interval:   opts.Interval,
		MaxEpisode: opts.MaxEpisode,
		Bounds:     opts.Bounds,
		Pacer:      opts.Pacer,
		Clock:      opts.Clock,
		Log:        opts.Log,
	})

	s := &Session{
		body:    body,
		machine: machine,
		sampler: motion.NewSampler(),
		sched:   sched,
		log:     opts.Log,
	}

	// Scheduler lifecycle follows the machine. Release is only ever
	// fired from a host callback, so starting here does not re-enter a
	// live tick; Stop on the Reset path is idempotent against the
	// scheduler having already stopped itself.
	machine.Subscribe(func(prev, next fsm.State, trig fsm.Trigger) {
		switch {
		case next == fsm.Thrown:
			sched.Start()
		case trig == fsm.Reset:
			sched.Stop()
			body.Stop()
			s.sampler.Reset()
		}
	})

	return s, nil
}

// OnPointerDown attempts a grab. It reports whether the ball was
// grabbed; a press outside the ball, or in a state where Grab is
// invalid, is rejected without error.
func (s *Session) OnPointerDown(p geom.Vec2) bool {
	if !s.machine.CanFire(fsm.Grab) || !s.body.Contains(p) {
		return false
	}
	s.sampler.Reset()
	if err := s.machine.Fire(fsm.Grab); err != nil {
		// CanFire was checked; only an observer racing a trigger in
		// the same callback could get here.
		s.log.Warn("grab rejected", zap.Error(err))
		return false
	}
	return true
}

// OnPointerMove follows the pointer while Held. The position write is
// direct and immediate: it never waits on the physics cadence.
func (s *Session) OnPointerMove(p geom.Vec2, at time.Time) {
	if s.machine.State() != fsm.Held {
		return
	}
	s.body.MoveTo(p)
	s.sampler.Record(p, at)
}

// OnPointerUp releases the ball, converting the recent drag samples
// into an initial velocity for the throw.
func (s *Session) OnPointerUp(p geom.Vec2, at time.Time) {
	if s.machine.State() != fsm.Held {
		return
	}
	s.body.MoveTo(p)
	s.sampler.Record(p, at)

	v := s.sampler.EstimateVelocity()
	if v == (geom.Vec2{}) && s.sampler.Len() >= 2 {
		s.log.Info("degenerate sample window, releasing with zero velocity")
	}
	s.body.SetVelocity(v)
	s.sampler.Reset()

	if err := s.machine.Fire(fsm.Release); err != nil {
		s.log.Warn("release rejected", zap.Error(err))
	}
}

// Reset cancels whatever is in progress: the machine returns to Idle,
// the scheduler stops, the body stops, and the sample buffer empties —
// all before Reset returns.
func (s *Session) Reset() {
	if err := s.machine.Fire(fsm.Reset); err != nil {
		s.log.Warn("reset rejected", zap.Error(err))
	}
}

// State returns the current interaction state.
func (s *Session) State() fsm.State {
	return s.machine.State()
}

// Ball returns a read-only snapshot of the body.
func (s *Session) Ball() ball.Snapshot {
	return s.body.Snapshot()
}

// Subscribe registers an observer on the state machine; the returned id
// works with Unsubscribe.
func (s *Session) Subscribe(obs fsm.Observer) int {
	return s.machine.Subscribe(obs)
}

// Unsubscribe removes a state observer.
func (s *Session) Unsubscribe(id int) {
	s.machine.Unsubscribe(id)
}

// AddStepObserver registers a per-tick snapshot observer on the
// scheduler.
func (s *Session) AddStepObserver(o cadence.Observer) {
	s.sched.AddObserver(o)
}

// SchedulerMetrics exposes the diagnostic counters.
func (s *Session) SchedulerMetrics() cadence.Metrics {
	return s.sched.Metrics()
}

// Tick drives one scheduler update; hosts with their own frame loop
// call this instead of wiring a pacer.
func (s *Session) Tick() {
	s.sched.Tick()
}
