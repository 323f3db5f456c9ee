package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/ball"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/fsm"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/physics"
)

var start = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	machine *fsm.Machine
	body    *ball.Body
	clock   *ManualClock
	pacer   *ManualPacer
	sched   *Scheduler
}

func newFixture(t *testing.T, cfg physics.Config, opts Options) *fixture {
	t.Helper()
	body, err := ball.New(geom.Vec2{X: 400, Y: 300}, 25)
	require.NoError(t, err)

	machine := fsm.New(nil)
	clock := NewManualClock(start)
	pacer := NewManualPacer()

	opts.Clock = clock
	opts.Pacer = pacer
	if opts.Bounds == nil {
		opts.Bounds = func() geom.Rect { return geom.NewRect(800, 600) }
	}

	return &fixture{
		machine: machine,
		body:    body,
		clock:   clock,
		pacer:   pacer,
		sched:   New(machine, body, cfg, opts),
	}
}

// throw puts the machine in Thrown with the given velocity.
func (f *fixture) throw(t *testing.T, v geom.Vec2) {
	t.Helper()
	require.NoError(t, f.machine.Fire(fsm.Grab))
	f.body.SetVelocity(v)
	require.NoError(t, f.machine.Fire(fsm.Release))
	f.sched.Start()
}

// tick advances the clock by one interval and pumps the pacer.
func (f *fixture) tick(d time.Duration) {
	f.clock.Advance(d)
	f.pacer.Tick()
}

func TestStartIdempotent(t *testing.T) {
	f := newFixture(t, physics.Config{Gravity: 0, Friction: 1, Bounce: 0.8, RestThreshold: 1}, Options{})
	f.throw(t, geom.Vec2{X: 100})

	f.sched.Start() // second start must not add a cadence

	f.tick(DefaultInterval)
	assert.Equal(t, int64(1), f.sched.Metrics().UpdateCount,
		"double Start produced double stepping")
}

func TestStopIdempotent(t *testing.T) {
	f := newFixture(t, physics.DefaultConfig(), Options{})
	f.sched.Stop()
	f.sched.Stop()
	assert.False(t, f.sched.Running())
}

func TestTickStepsBody(t *testing.T) {
	f := newFixture(t, physics.Config{Gravity: 0, Friction: 1, Bounce: 0.8, RestThreshold: 1}, Options{})
	f.throw(t, geom.Vec2{X: 60})

	f.tick(DefaultInterval)

	assert.InDelta(t, 401.0, f.body.Pos.X, 1e-9, "one step at 1/60s with vx 60 moves 1px")
	m := f.sched.Metrics()
	assert.Equal(t, int64(1), m.UpdateCount)
	assert.Equal(t, DefaultInterval, m.TargetInterval)
	assert.True(t, m.Running)
}

func TestElapsedClampedToTwiceInterval(t *testing.T) {
	f := newFixture(t, physics.Config{Gravity: 0, Friction: 1, Bounce: 0.8, RestThreshold: 1}, Options{})
	f.throw(t, geom.Vec2{X: 60})

	// Host suspended for a second; the step must integrate at most
	// 2/60s, not the full gap.
	f.tick(time.Second)

	assert.InDelta(t, 402.0, f.body.Pos.X, 1e-9)
}

func TestDragWinsOverPhysics(t *testing.T) {
	f := newFixture(t, physics.Config{Gravity: 0, Friction: 1, Bounce: 0.8, RestThreshold: 1}, Options{})
	f.throw(t, geom.Vec2{X: 60})

	// A grab happened between ticks: Reset then Grab moves the machine
	// out of Thrown.
	require.NoError(t, f.machine.Fire(fsm.Reset))
	require.NoError(t, f.machine.Fire(fsm.Grab))
	posBefore := f.body.Pos

	f.tick(DefaultInterval)

	assert.Equal(t, posBefore, f.body.Pos, "tick stepped while machine not in thrown")
	assert.False(t, f.sched.Running(), "scheduler kept running across a state change")
	assert.Equal(t, int64(0), f.sched.Metrics().UpdateCount)
}

func TestRestReachedOnceAndStops(t *testing.T) {
	cfg := physics.Config{Gravity: 0, Friction: 0.5, Bounce: 0.8, RestThreshold: 20}
	f := newFixture(t, cfg, Options{})

	var restCount int
	f.machine.Subscribe(func(prev, next fsm.State, trig fsm.Trigger) {
		if trig == fsm.RestReached {
			restCount++
		}
	})

	f.throw(t, geom.Vec2{X: 100})

	for i := 0; i < 20 && f.sched.Running(); i++ {
		f.tick(DefaultInterval)
	}

	assert.Equal(t, 1, restCount, "RestReached must fire exactly once per episode")
	assert.Equal(t, fsm.Idle, f.machine.State())
	assert.False(t, f.sched.Running())
	assert.Equal(t, geom.Vec2{}, f.body.Vel, "velocity not zeroed at rest")

	// Further pumping is inert.
	f.tick(DefaultInterval)
	assert.Equal(t, 1, restCount)
}

func TestEpisodeCapForcesRest(t *testing.T) {
	// Bounce 1 and friction 1 never decay on their own.
	cfg := physics.Config{Gravity: 0, Friction: 1, Bounce: 1, RestThreshold: 1}
	f := newFixture(t, cfg, Options{MaxEpisode: 100 * time.Millisecond})
	f.throw(t, geom.Vec2{X: 200})

	for i := 0; i < 600 && f.sched.Running(); i++ {
		f.tick(DefaultInterval)
	}

	assert.False(t, f.sched.Running(), "capped episode never ended")
	assert.Equal(t, fsm.Idle, f.machine.State())
}

func TestRestartAfterRest(t *testing.T) {
	cfg := physics.Config{Gravity: 0, Friction: 0.5, Bounce: 0.8, RestThreshold: 20}
	f := newFixture(t, cfg, Options{})

	f.throw(t, geom.Vec2{X: 100})
	for i := 0; i < 20 && f.sched.Running(); i++ {
		f.tick(DefaultInterval)
	}
	require.Equal(t, fsm.Idle, f.machine.State())

	// A second episode gets its own RestReached.
	f.throw(t, geom.Vec2{X: 100})
	assert.True(t, f.sched.Running())
	for i := 0; i < 20 && f.sched.Running(); i++ {
		f.tick(DefaultInterval)
	}
	assert.Equal(t, fsm.Idle, f.machine.State())
}
