package cadence

import (
	"sync"
	"time"
)

// Clock abstracts wall time so the scheduler can run on a test clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Pacer invokes a callback at approximately a fixed interval. The
// scheduler only ever needs "call me back about every T, until I say
// stop"; how the host delivers that — a ticker goroutine, an event-loop
// timer, or a test pumping Ticks by hand — is the pacer's business.
type Pacer interface {
	Start(interval time.Duration, tick func())
	Stop()
}

// TickerPacer delivers ticks from a time.Ticker on its own goroutine.
// Delivery is serialized; the owner must not touch scheduler state from
// other goroutines while the pacer runs.
type TickerPacer struct {
	mu   sync.Mutex
	done chan struct{}
}

func NewTickerPacer() *TickerPacer {
	return &TickerPacer{}
}

func (p *TickerPacer) Start(interval time.Duration, tick func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return
	}
	done := make(chan struct{})
	p.done = done
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				tick()
			}
		}
	}()
}

func (p *TickerPacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return
	}
	close(p.done)
	p.done = nil
}

// ManualPacer is driven explicitly by the host: the terminal frontend
// pumps it from its own frame messages, tests pump it directly.
type ManualPacer struct {
	tick func()
}

func NewManualPacer() *ManualPacer {
	return &ManualPacer{}
}

func (p *ManualPacer) Start(interval time.Duration, tick func()) {
	p.tick = tick
}

func (p *ManualPacer) Stop() {
	p.tick = nil
}

// Active reports whether a callback is registered.
func (p *ManualPacer) Active() bool {
	return p.tick != nil
}

// Tick invokes the registered callback, if any.
func (p *ManualPacer) Tick() {
	if p.tick != nil {
		p.tick()
	}
}

// ManualClock is a hand-advanced clock for deterministic tests and
// scripted runs.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
