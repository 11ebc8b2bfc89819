package scroll

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/frame/layout"
	"github.com/npillmayer/vitrine/engine/tree"
)

const scroller tree.NodeID = 7

// manager with a single scrollable node: 100×100 viewport over 600px of
// content, i.e. a max offset of 500px vertically.
func scrollFixture(physics Physics) *Manager {
	m := New(physics)
	m.Reconcile([]layout.ScrollNode{{
		Box:     1,
		DOMNode: scroller,
		Viewport: dimen.Rect{
			BotR: dimen.Point{X: 100 * dimen.PX, Y: 100 * dimen.PX},
		},
		Content: dimen.Point{X: 100 * dimen.PX, Y: 600 * dimen.PX},
	}})
	return m
}

func TestWheelImpulse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	m := scrollFixture(DefaultPhysics())
	m.Push(Input{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: 1}})
	changes := m.Tick(time.Now())
	if len(changes) != 1 {
		t.Fatalf("expected one change record, have %d", len(changes))
	}
	// one notch = 180 px/s, integrated over a 16 ms tick
	want := 180.0 * 0.016
	if got := changes[0].Offset.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected a first-tick offset of %.3f px, have %.3f", want, got)
	}
}

func TestWheelMomentumDecaysAndStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	m := scrollFixture(DefaultPhysics())
	for i := 0; i < 3; i++ {
		m.Push(Input{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: 1}})
	}
	now := time.Now()
	for i := 0; i < 32; i++ { // ~500 ms of ticks
		m.Tick(now)
		now = now.Add(16 * time.Millisecond)
	}
	if m.Active() {
		t.Errorf("expected velocity below the stop threshold after 500 ms")
	}
	off, ok := m.Offset(scroller)
	if !ok {
		t.Fatalf("scroll state vanished")
	}
	if off.Y <= 0 {
		t.Errorf("expected the momentum to have moved the content")
	}
	if changes := m.Tick(now); len(changes) != 0 {
		t.Errorf("expected an idle tick to emit no changes, have %v", changes)
	}
}

func TestTrackpadOverridesMomentum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	m := scrollFixture(DefaultPhysics())
	m.Push(Input{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: 5}})
	now := time.Now()
	m.Tick(now)
	m.Push(Input{Node: scroller, Source: TrackpadContinuous, Delta: Position{Y: 10}})
	now = now.Add(16 * time.Millisecond)
	before, _ := m.Offset(scroller)
	changes := m.Tick(now)
	if len(changes) != 1 {
		t.Fatalf("expected one change record, have %d", len(changes))
	}
	if got := changes[0].Offset.Y - before.Y; math.Abs(got-10) > 1e-9 {
		t.Errorf("expected the trackpad delta applied verbatim, have %.3f", got)
	}
	if m.Active() {
		t.Errorf("expected the trackpad input to kill residual velocity")
	}
}

func TestProgrammaticInterpolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	m := scrollFixture(DefaultPhysics())
	m.ScrollTo(scroller, Position{Y: 200}, 160*time.Millisecond, EaseLinear)
	base := time.Now()
	m.Tick(base) // animation starts here
	m.Tick(base.Add(16 * time.Millisecond))
	off, _ := m.Offset(scroller)
	if math.Abs(off.Y-20) > 1e-9 { // 10% of the way at linear easing
		t.Errorf("expected 20px after 16 of 160 ms, have %.3f", off.Y)
	}
	m.Tick(base.Add(200 * time.Millisecond))
	off, _ = m.Offset(scroller)
	if math.Abs(off.Y-200) > 1e-9 {
		t.Errorf("expected the target reached, have %.3f", off.Y)
	}
	if m.Active() {
		t.Errorf("expected the finished interpolation to leave the manager idle")
	}
}

func TestScrollBoundsInvariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	m := scrollFixture(DefaultPhysics())
	inputs := []Input{
		{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: 50}},
		{Node: scroller, Source: TrackpadContinuous, Delta: Position{Y: -900}},
		{Node: scroller, Source: Programmatic, Target: Position{Y: 9999}},
		{Node: scroller, Source: TrackpadContinuous, Delta: Position{X: 300, Y: 300}},
		{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: -80}},
	}
	now := time.Now()
	for _, in := range inputs {
		m.Push(in)
		for i := 0; i < 8; i++ {
			m.Tick(now)
			now = now.Add(16 * time.Millisecond)
			off, _ := m.Offset(scroller)
			if off.X != 0 || off.Y < 0 || off.Y > 500 { // max offset is (0, 500)
				t.Fatalf("offset %v escaped the scrollable range", off)
			}
		}
	}
}

func TestQueueDropsOldestAtCapacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	var q InputQueue
	for i := 0; i < queueCapacity+5; i++ {
		q.Push(Input{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: float64(i)}})
	}
	inputs := q.Drain()
	if len(inputs) != queueCapacity {
		t.Fatalf("expected the queue capped at %d, have %d", queueCapacity, len(inputs))
	}
	if inputs[0].Delta.Y != 5 {
		t.Errorf("expected the 5 oldest inputs dropped, first is %v", inputs[0].Delta.Y)
	}
	if q.HasPending() {
		t.Errorf("expected the queue drained")
	}
}

func TestTimerSelfTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.scroll")
	defer teardown()
	//
	physics := DefaultPhysics()
	physics.TickInterval = time.Millisecond
	m := scrollFixture(physics)
	m.Push(Input{Node: scroller, Source: WheelDiscrete, Delta: Position{Y: 1}})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	done := make(chan int)
	go func() {
		n := 0
		m.Run(ctx, func(ScrollTo) { n++ })
		done <- n
	}()
	select {
	case n := <-done:
		if n == 0 {
			t.Errorf("expected the timer to emit changes before terminating")
		}
	case <-ctx.Done():
		t.Fatalf("scroll timer did not self-terminate")
	}
}
