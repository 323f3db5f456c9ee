package ball

import (
	"testing"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
)

func TestNewRejectsBadRadius(t *testing.T) {
	if _, err := New(geom.Vec2{}, 0); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := New(geom.Vec2{}, -5); err == nil {
		t.Error("expected error for negative radius")
	}
}

func TestContains(t *testing.T) {
	b, err := New(geom.Vec2{X: 100, Y: 100}, 25)
	if err != nil {
		t.Fatalf("new body: %v", err)
	}

	tests := []struct {
		name string
		p    geom.Vec2
		want bool
	}{
		{"center", geom.Vec2{X: 100, Y: 100}, true},
		{"inside", geom.Vec2{X: 105, Y: 102}, true},
		{"on edge", geom.Vec2{X: 125, Y: 100}, true},
		{"outside", geom.Vec2{X: 126, Y: 100}, false},
		{"far away", geom.Vec2{X: 300, Y: 300}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMoveToKeepsVelocity(t *testing.T) {
	b, _ := New(geom.Vec2{X: 100, Y: 100}, 25)
	b.SetVelocity(geom.Vec2{X: 10, Y: -5})

	b.MoveTo(geom.Vec2{X: 200, Y: 250})

	if b.Pos != (geom.Vec2{X: 200, Y: 250}) {
		t.Errorf("expected position (200,250), got %+v", b.Pos)
	}
	if b.Vel != (geom.Vec2{X: 10, Y: -5}) {
		t.Errorf("MoveTo touched velocity: %+v", b.Vel)
	}
}

func TestStopAndSpeed(t *testing.T) {
	b, _ := New(geom.Vec2{}, 25)
	b.SetVelocity(geom.Vec2{X: 3, Y: 4})

	if b.Speed() != 5 {
		t.Errorf("expected speed 5, got %f", b.Speed())
	}
	b.Stop()
	if b.Speed() != 0 {
		t.Errorf("expected speed 0 after stop, got %f", b.Speed())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	b, _ := New(geom.Vec2{X: 1, Y: 2}, 25)
	snap := b.Snapshot()

	b.MoveTo(geom.Vec2{X: 50, Y: 60})

	if snap.Pos != (geom.Vec2{X: 1, Y: 2}) {
		t.Errorf("snapshot mutated with body: %+v", snap.Pos)
	}
}
