package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name           string
		p              Point
		expected       bool
		expectedStrict bool
	}{
		{"inside", Pt(15, 15), true, true},
		{"top-left corner", Pt(10, 10), true, false},
		{"bottom-right corner", Pt(30, 25), true, false},
		{"outside left", Pt(5, 15), false, false},
		{"outside right", Pt(35, 15), false, false},
		{"outside top", Pt(15, 5), false, false},
		{"outside bottom", Pt(15, 30), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
			if got := r.ContainsStrict(tc.p); got != tc.expectedStrict {
				t.Errorf("ContainsStrict(%v) = %v, expected %v", tc.p, got, tc.expectedStrict)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}

	c := r.Center()
	if c.X != 15 || c.Y != 17.5 {
		t.Errorf("Center() = %v, expected (15, 17.5)", c)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 100, 60).Inset(22)
	if r.X != 22 || r.Y != 22 || r.W != 56 || r.H != 16 {
		t.Errorf("Inset(22) = %+v", r)
	}

	collapsed := NewRect(0, 0, 30, 30).Inset(20)
	if collapsed.W != 0 || collapsed.H != 0 {
		t.Errorf("over-inset rect should collapse, got %+v", collapsed)
	}
	if c := collapsed.Center(); c.X != 15 || c.Y != 15 {
		t.Errorf("collapsed rect should sit at the center, got %v", c)
	}
}

func TestRectClamp(t *testing.T) {
	r := NewRect(22, 22, 100, 100)

	tests := []struct {
		in, want Point
	}{
		{Pt(50, 50), Pt(50, 50)},
		{Pt(0, 50), Pt(22, 50)},
		{Pt(500, -3), Pt(122, 22)},
	}

	for _, tc := range tests {
		if got := r.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestPointDistMid(t *testing.T) {
	a, b := Pt(0, 0), Pt(3, 4)
	if a.Dist(b) != 5 {
		t.Errorf("Dist = %v, expected 5", a.Dist(b))
	}
	if m := a.Mid(b); m != Pt(1.5, 2) {
		t.Errorf("Mid = %v, expected (1.5, 2)", m)
	}
	if !a.IsFinite() {
		t.Error("origin should be finite")
	}
	if Pt(math.NaN(), 0).IsFinite() || Pt(0, math.Inf(1)).IsFinite() {
		t.Error("NaN/Inf points should not be finite")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
}
