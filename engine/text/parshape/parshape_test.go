package parshape

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
)

func TestRectSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	shape := Rect(100*dimen.PX, 50*dimen.PX)
	segs := shape.LineExtents(0, 10*dimen.PX)
	if len(segs) != 1 {
		t.Fatalf("expected one segment, have %d", len(segs))
	}
	if segs[0].Min != 0 || segs[0].Max != 100*dimen.PX {
		t.Errorf("expected segment [0,100px), have %v", segs[0])
	}
	if segs = shape.LineExtents(45*dimen.PX, 10*dimen.PX); segs != nil {
		t.Errorf("expected no segment for a band leaving the rectangle, have %v", segs)
	}
}

func TestRectExclusions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	excl := dimen.Rect{
		TopL: dimen.Point{X: 40 * dimen.PX, Y: 0},
		BotR: dimen.Point{X: 60 * dimen.PX, Y: 50 * dimen.PX},
	}
	shape := RectWithExclusions(100*dimen.PX, 100*dimen.PX, []dimen.Rect{excl})
	segs := shape.LineExtents(0, 10*dimen.PX)
	if len(segs) != 2 {
		t.Fatalf("expected the exclusion to split the band in two, have %v", segs)
	}
	if segs[0].Max != 40*dimen.PX || segs[1].Min != 60*dimen.PX {
		t.Errorf("expected hole at [40px,60px), have %v", segs)
	}
	// below the exclusion the full width is available again
	segs = shape.LineExtents(60*dimen.PX, 10*dimen.PX)
	if len(segs) != 1 || segs[0].Extent() != 100*dimen.PX {
		t.Errorf("expected the full width below the exclusion, have %v", segs)
	}
}

func TestRingSegments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	shape := Ring(100*dimen.PX, 40*dimen.PX)
	if shape.BlockExtent() != 200*dimen.PX {
		t.Errorf("expected block extent of 200px, have %v", shape.BlockExtent())
	}
	// a band straddling the center is split by the hole
	segs := shape.LineExtents(90*dimen.PX, 20*dimen.PX)
	if len(segs) != 2 {
		t.Fatalf("expected the hole to split the band in two, have %v", segs)
	}
	if segs[0].Max != 60*dimen.PX || segs[1].Min != 140*dimen.PX {
		t.Errorf("expected hole at [60px,140px), have %v", segs)
	}
	if d := segs[0].Min + segs[1].Max - 200*dimen.PX; d < -1 || d > 1 {
		t.Errorf("expected segments symmetric around the center, have %v", segs)
	}
	// a band below the hole sees a single chord
	segs = shape.LineExtents(150*dimen.PX, 20*dimen.PX)
	if len(segs) != 1 {
		t.Errorf("expected a single segment below the hole, have %v", segs)
	}
}

func TestCircleChord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	shape := Circle(100 * dimen.PX)
	segs := shape.LineExtents(90*dimen.PX, 20*dimen.PX)
	if len(segs) != 1 {
		t.Fatalf("expected one segment, have %v", segs)
	}
	if d := segs[0].Min + segs[0].Max - 200*dimen.PX; d < -1 || d > 1 {
		t.Errorf("expected the chord centered, have %v", segs[0])
	}
	// near the pole the band no longer fits inside the circle
	if segs = shape.LineExtents(0, 10*dimen.PX); len(segs) != 0 {
		t.Errorf("expected no room at the top of the circle, have %v", segs)
	}
}

func TestPolygonDiamond(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	shape := Polygon([]dimen.Point{
		{X: 50 * dimen.PX, Y: 0},
		{X: 100 * dimen.PX, Y: 50 * dimen.PX},
		{X: 50 * dimen.PX, Y: 100 * dimen.PX},
		{X: 0, Y: 50 * dimen.PX},
	})
	segs := shape.LineExtents(40*dimen.PX, 20*dimen.PX)
	if len(segs) != 1 {
		t.Fatalf("expected one segment, have %v", segs)
	}
	// the band 40px–60px is limited by its widest scanline's narrower twin
	if segs[0].Min != 10*dimen.PX || segs[0].Max != 90*dimen.PX {
		t.Errorf("expected segment [10px,90px), have %v", segs[0])
	}
	// the pointed tip leaves no room for a 20px band
	if segs = shape.LineExtents(0, 20*dimen.PX); len(segs) != 0 {
		t.Errorf("expected no segment at the tip, have %v", segs)
	}
}
