package geom

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	b := Vec2{X: 1, Y: 2}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 6}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: 2, Y: 2}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 6, Y: 8}) {
		t.Errorf("Scale = %+v", got)
	}
	if a.Len() != 5 {
		t.Errorf("Len = %f", a.Len())
	}
	if got := a.DistTo(Vec2{X: 3, Y: 9}); got != 5 {
		t.Errorf("DistTo = %f", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !(Vec2{X: 1, Y: 2}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec2{X: math.NaN()}).IsFinite() {
		t.Error("NaN reported finite")
	}
	if (Vec2{Y: math.Inf(-1)}).IsFinite() {
		t.Error("Inf reported finite")
	}
}

func TestRect(t *testing.T) {
	if NewRect(800, 600).Empty() {
		t.Error("non-empty rect reported empty")
	}
	if !NewRect(0, 600).Empty() {
		t.Error("zero-width rect reported non-empty")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%f) = %f, want %f", tt.v, got, tt.want)
		}
	}
}
