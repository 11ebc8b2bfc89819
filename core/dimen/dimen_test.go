package dimen

import "testing"

func TestDimenString(t *testing.T) {
	if PX.String() != "1px" {
		t.Errorf("expected 1 PX to print as 1px, is %s", PX)
	}
	if Infty.String() != "∞" {
		t.Errorf("expected Infty to print as ∞, is %s", Infty)
	}
}

func TestDimenClamp(t *testing.T) {
	if d := Clamp(50*PX, 0, 10*PX); d != 10*PX {
		t.Errorf("expected clamp to 10px, have %s", d)
	}
	// min wins over max
	if d := Clamp(5*PX, 20*PX, 10*PX); d != 20*PX {
		t.Errorf("expected min to win over max, have %s", d)
	}
}

func TestRectIntersection(t *testing.T) {
	r1 := Rect{Point{0, 0}, Point{20 * PX, 30 * PX}}
	r2 := Rect{Point{10 * PX, 10 * PX}, Point{50 * PX, 50 * PX}}
	r := Intersection(r1, r2)
	if r.TopL.X != 10*PX || r.TopL.Y != 10*PX {
		t.Errorf("expected intersection top-left of (10,10), have %v", r.TopL)
	}
	if r.BotR.X != 20*PX || r.BotR.Y != 30*PX {
		t.Errorf("expected intersection bottom-right of (20,30), have %v", r.BotR)
	}
	r3 := Rect{Point{200 * PX, 0}, Point{300 * PX, 10 * PX}}
	if Intersect(r1, r3) {
		t.Errorf("rectangles do not intersect, but are reported to do so")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Point{0, 0}, Point{10 * PX, 10 * PX}}
	if !r.Contains(Point{0, 0}) {
		t.Errorf("expected top-left corner to be inside")
	}
	if r.Contains(Point{10 * PX, 10 * PX}) {
		t.Errorf("expected bottom-right corner to be outside")
	}
}
