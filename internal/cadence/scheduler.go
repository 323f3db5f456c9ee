// Package cadence runs the physics step at a fixed target rate while
// the ball is in flight. Drag updates never pass through here: the held
// path writes the body position directly, so drag latency is
// independent of the physics rate.
package cadence

import (
	"time"

	"go.uber.org/zap"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/ball"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/fsm"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/physics"
)

// DefaultInterval is the target physics cadence.
const DefaultInterval = time.Second / 60

// Observer receives a snapshot after every integration step. Observers
// read only; they must not mutate core state.
type Observer interface {
	OnStep(s ball.Snapshot, res physics.StepResult, at time.Time)
}

// Metrics is a read-only diagnostic snapshot. Consumers must not feed
// it back into control decisions.
type Metrics struct {
	UpdateCount    int64
	TargetInterval time.Duration
	Running        bool
}

// Options configures a Scheduler. Zero fields get defaults.
type Options struct {
	// Interval is the target step cadence, default 1/60s.
	Interval time.Duration
	// MaxEpisode force-ends a Thrown episode that outlives it.
	// Zero disables the cap.
	MaxEpisode time.Duration
	// Bounds is queried once per tick, so the containing area may
	// change between ticks.
	Bounds func() geom.Rect
	Pacer  Pacer
	Clock  Clock
	Log    *zap.Logger
}

// Scheduler steps the integrator at a fixed cadence while the state
// machine reports Thrown, and stops itself once the body reaches rest.
// All methods must be called from the host event loop.
type Scheduler struct {
	machine *fsm.Machine
	body    *ball.Body
	cfg     physics.Config

	interval   time.Duration
	maxEpisode time.Duration
	bounds     func() geom.Rect
	pacer      Pacer
	clock      Clock
	log        *zap.Logger

	observers []Observer

	running      bool
	restFired    bool
	lastTick     time.Time
	episodeStart time.Time
	updateCount  int64
}

func New(machine *fsm.Machine, body *ball.Body, cfg physics.Config, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Pacer == nil {
		opts.Pacer = NewManualPacer()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Bounds == nil {
		opts.Bounds = func() geom.Rect { return geom.Rect{} }
	}
	return &Scheduler{
		machine:    machine,
		body:       body,
		cfg:        cfg,
		interval:   opts.Interval,
		maxEpisode: opts.MaxEpisode,
		bounds:     opts.Bounds,
		pacer:      opts.Pacer,
		clock:      opts.Clock,
		log:        opts.Log,
	}
}

// AddObserver registers o for per-step snapshots.
func (s *Scheduler) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Start begins stepping. Calling it while already running is a no-op,
// so a double Start never produces a second cadence.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.restFired = false
	now := s.clock.Now()
	s.lastTick = now
	s.episodeStart = now
	s.pacer.Start(s.interval, s.Tick)
	s.log.Debug("scheduler started", zap.Duration("interval", s.interval))
}

// Stop halts stepping. Stopping an already-stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.pacer.Stop()
	s.log.Debug("scheduler stopped", zap.Int64("updates", s.updateCount))
}

// Running reports whether the scheduler is active.
func (s *Scheduler) Running() bool {
	return s.running
}

// Metrics returns a diagnostic snapshot.
func (s *Scheduler) Metrics() Metrics {
	return Metrics{
		UpdateCount:    s.updateCount,
		TargetInterval: s.interval,
		Running:        s.running,
	}
}

// Tick performs one scheduled update. The pacer calls it on cadence;
// hosts with their own frame loop may call it directly.
func (s *Scheduler) Tick() {
	if !s.running {
		return
	}

	now := s.clock.Now()
	elapsed := now.Sub(s.lastTick)
	s.lastTick = now

	// Clamp a long gap (host suspended, window minimized) so one tick
	// never integrates more than two target intervals.
	if elapsed > 2*s.interval {
		elapsed = 2 * s.interval
	}
	if elapsed < 0 {
		elapsed = 0
	}

	// Drag wins: if a grab (or anything else) moved the machine out of
	// Thrown, this tick steps nothing and the cadence shuts down.
	if s.machine.State() != fsm.Thrown {
		s.Stop()
		return
	}

	if s.maxEpisode > 0 && now.Sub(s.episodeStart) > s.maxEpisode {
		s.log.Warn("episode exceeded cap, forcing rest",
			zap.Duration("cap", s.maxEpisode))
		s.settle()
		return
	}

	res := physics.Step(s.body, elapsed.Seconds(), s.bounds(), s.cfg)
	s.updateCount++

	if res.Scrubbed {
		s.log.Warn("non-finite state scrubbed during step")
	}

	for _, obs := range s.observers {
		obs.OnStep(s.body.Snapshot(), res, now)
	}

	if res.VelocityBelowThreshold || !res.IsMoving {
		s.settle()
	}
}

// settle ends the episode: stop the cadence first so the RestReached
// observers may call Stop again without re-entering a live scheduler,
// then zero the body and fire the trigger exactly once.
func (s *Scheduler) settle() {
	s.Stop()
	if s.restFired {
		return
	}
	s.restFired = true
	s.body.Stop()
	if err := s.machine.Fire(fsm.RestReached); err != nil {
		s.log.Error("rest trigger rejected", zap.Error(err))
	}
}
