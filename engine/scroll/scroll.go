package scroll

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/frame/layout"
	"github.com/npillmayer/vitrine/engine/tree"
)

// Position is a scroll offset or velocity in logical pixels
// (pixels per second for velocities).
type Position struct {
	X, Y float64
}

// DU converts a pixel position to device units.
func (p Position) DU() dimen.Point {
	return dimen.Point{
		X: dimen.DU(math.Round(p.X * float64(dimen.PX))),
		Y: dimen.DU(math.Round(p.Y * float64(dimen.PX))),
	}
}

// Easing identifies an interpolation curve for programmatic scrolling.
type Easing int8

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

// Sample evaluates the easing curve at normalized time t in [0,1].
func (e Easing) Sample(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	}
	return t
}

// Source distinguishes where a scroll input originated.
type Source int8

const (
	// TrackpadContinuous carries OS-smoothed deltas. They are applied as
	// direct offset changes and override any running momentum.
	TrackpadContinuous Source = iota
	// WheelDiscrete carries integer wheel notches which become velocity
	// impulses.
	WheelDiscrete
	// Programmatic carries an absolute target, optionally animated.
	Programmatic
)

// Input is one scroll event for a single node.
type Input struct {
	Node     tree.NodeID // DOM node of the scrollable container
	Source   Source
	Delta    Position      // trackpad: pixels; wheel: notches
	Target   Position      // programmatic target offset
	Duration time.Duration // programmatic: 0 means jump
	Easing   Easing
}

// queueCapacity bounds the input queue. Older events beyond the limit
// are discarded to keep each tick's work bounded.
const queueCapacity = 100

// InputQueue is the only structure shared between platform event
// handlers and the physics timer. Handlers push, the timer drains.
type InputQueue struct {
	mu     sync.Mutex
	inputs []Input
}

// Push appends an input, dropping the oldest one at capacity.
func (q *InputQueue) Push(in Input) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.inputs) >= queueCapacity {
		q.inputs = q.inputs[1:]
	}
	q.inputs = append(q.inputs, in)
}

// Drain removes and returns all pending inputs.
func (q *InputQueue) Drain() []Input {
	q.mu.Lock()
	defer q.mu.Unlock()
	inputs := q.inputs
	q.inputs = nil
	return inputs
}

// HasPending tells if inputs are waiting.
func (q *InputQueue) HasPending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inputs) > 0
}

// Physics holds the global scroll physics configuration.
type Physics struct {
	TickInterval    time.Duration // physics timer period
	WheelMultiplier float64       // notch to impulse scale
	Friction        float64       // exponential decay rate
	StopThreshold   float64       // px/s below which velocity snaps to zero
	MaxVelocity     float64       // px/s clamp for impulses
}

// DefaultPhysics returns desktop-feel scroll constants: a 16 ms tick,
// 180 px/s of impulse per wheel notch and a friction rate of 0.05
// per tick at 60 Hz.
func DefaultPhysics() Physics {
	return Physics{
		TickInterval:    16 * time.Millisecond,
		WheelMultiplier: 3,
		Friction:        0.05 * 60,
		StopThreshold:   0.5,
		MaxVelocity:     4000,
	}
}

// ScrollTo is the change record emitted for a node whose offset moved
// during a tick.
type ScrollTo struct {
	Node   tree.NodeID
	Offset Position
}

type animation struct {
	start    time.Time
	duration time.Duration
	from, to Position
	easing   Easing
}

type nodeState struct {
	viewport dimen.Rect
	max      Position
	offset   Position
	velocity Position
	anim     *animation
}

// Manager tracks scroll state per scrollable node and runs the physics
// tick. All methods except the InputQueue are meant to be called from a
// single goroutine; the queue is the concurrency boundary.
type Manager struct {
	physics Physics
	queue   InputQueue
	states  map[tree.NodeID]*nodeState
}

// New creates a scroll manager with the given physics configuration.
func New(physics Physics) *Manager {
	if physics.TickInterval <= 0 {
		physics = DefaultPhysics()
	}
	return &Manager{
		physics: physics,
		states:  make(map[tree.NodeID]*nodeState),
	}
}

// Queue returns the shared input queue for platform event handlers.
func (m *Manager) Queue() *InputQueue {
	return &m.queue
}

// Push enqueues a scroll input.
func (m *Manager) Push(in Input) {
	m.queue.Push(in)
}

// ScrollTo enqueues a programmatic scroll of a node to an absolute
// target offset. A zero duration jumps, otherwise the offset is
// interpolated along the easing curve.
func (m *Manager) ScrollTo(node tree.NodeID, target Position, duration time.Duration,
	easing Easing) {
	//
	m.queue.Push(Input{
		Node:     node,
		Source:   Programmatic,
		Target:   target,
		Duration: duration,
		Easing:   easing,
	})
}

// Reconcile aligns scroll states with the scroll nodes of a fresh
// layout. States appear when a node first becomes scrollable and vanish
// when it ceases to be; surviving offsets are clamped to the new
// maximum.
func (m *Manager) Reconcile(nodes []layout.ScrollNode) {
	seen := make(map[tree.NodeID]bool, len(nodes))
	for _, sn := range nodes {
		seen[sn.DOMNode] = true
		max := Position{
			X: du2px(sn.Content.X - sn.Viewport.Width()),
			Y: du2px(sn.Content.Y - sn.Viewport.Height()),
		}
		max.X = math.Max(max.X, 0)
		max.Y = math.Max(max.Y, 0)
		st, ok := m.states[sn.DOMNode]
		if !ok {
			st = &nodeState{}
			m.states[sn.DOMNode] = st
			tracer().Debugf("node %v became scrollable, max offset %.1f/%.1f",
				sn.DOMNode, max.X, max.Y)
		}
		st.viewport = sn.Viewport
		st.max = max
		st.offset = clamp(st.offset, max)
	}
	for node := range m.states {
		if !seen[node] {
			delete(m.states, node)
		}
	}
}

// Offset returns the current scroll offset of a node.
func (m *Manager) Offset(node tree.NodeID) (Position, bool) {
	if st, ok := m.states[node]; ok {
		return st.offset, true
	}
	return Position{}, false
}

// Active tells if the physics timer still has work: pending inputs,
// residual velocity above the stop threshold, or a running
// interpolation.
func (m *Manager) Active() bool {
	if m.queue.HasPending() {
		return true
	}
	for _, st := range m.states {
		if st.anim != nil {
			return true
		}
		if math.Abs(st.velocity.X) > m.physics.StopThreshold ||
			math.Abs(st.velocity.Y) > m.physics.StopThreshold {
			return true
		}
	}
	return false
}

// Tick advances the physics by one timer period and returns one
// ScrollTo record per node whose offset changed. Within a tick, direct
// and interpolated positions are applied before velocity integration,
// so a trackpad gesture overrides momentum for the same node.
func (m *Manager) Tick(now time.Time) []ScrollTo {
	dt := m.physics.TickInterval.Seconds()
	updated := make(map[tree.NodeID]bool)

	for _, in := range m.queue.Drain() {
		st, ok := m.states[in.Node]
		if !ok {
			continue // node not scrollable in the current layout
		}
		switch in.Source {
		case TrackpadContinuous:
			st.velocity = Position{}
			st.anim = nil
			st.offset = clamp(Position{
				X: st.offset.X + in.Delta.X,
				Y: st.offset.Y + in.Delta.Y,
			}, st.max)
			updated[in.Node] = true
		case WheelDiscrete:
			impulse := m.physics.WheelMultiplier * 60
			st.velocity.X = clampAbs(st.velocity.X+in.Delta.X*impulse, m.physics.MaxVelocity)
			st.velocity.Y = clampAbs(st.velocity.Y+in.Delta.Y*impulse, m.physics.MaxVelocity)
		case Programmatic:
			target := clamp(in.Target, st.max)
			if in.Duration <= 0 {
				st.anim = nil
				st.offset = target
				updated[in.Node] = true
				break
			}
			st.anim = &animation{
				start:    now,
				duration: in.Duration,
				from:     st.offset,
				to:       target,
				easing:   in.Easing,
			}
		}
	}

	for node, st := range m.states {
		if st.anim == nil {
			continue
		}
		t := now.Sub(st.anim.start).Seconds() / st.anim.duration.Seconds()
		if t >= 1 {
			t = 1
		}
		s := st.anim.easing.Sample(t)
		st.offset = clamp(Position{
			X: st.anim.from.X + (st.anim.to.X-st.anim.from.X)*s,
			Y: st.anim.from.Y + (st.anim.to.Y-st.anim.from.Y)*s,
		}, st.max)
		updated[node] = true
		if t >= 1 {
			st.anim = nil
		}
	}

	decay := math.Exp(-m.physics.Friction * dt * 60)
	for node, st := range m.states {
		if st.velocity.X == 0 && st.velocity.Y == 0 {
			continue
		}
		st.offset = clamp(Position{
			X: st.offset.X + st.velocity.X*dt,
			Y: st.offset.Y + st.velocity.Y*dt,
		}, st.max)
		st.velocity.X *= decay
		st.velocity.Y *= decay
		// velocity dies at the edges and below the stop threshold
		if st.offset.X <= 0 || st.offset.X >= st.max.X {
			st.velocity.X = 0
		}
		if st.offset.Y <= 0 || st.offset.Y >= st.max.Y {
			st.velocity.Y = 0
		}
		if math.Abs(st.velocity.X) < m.physics.StopThreshold {
			st.velocity.X = 0
		}
		if math.Abs(st.velocity.Y) < m.physics.StopThreshold {
			st.velocity.Y = 0
		}
		updated[node] = true
	}

	changes := make([]ScrollTo, 0, len(updated))
	for node := range updated {
		changes = append(changes, ScrollTo{Node: node, Offset: m.states[node].offset})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Node < changes[j].Node })
	return changes
}

// Run drives the physics timer until the manager goes idle or the
// context is cancelled, delivering change records to sink. It is meant
// to be restarted whenever new input arrives after termination.
func (m *Manager) Run(ctx context.Context, sink func(ScrollTo)) {
	ticker := time.NewTicker(m.physics.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, change := range m.Tick(now) {
				sink(change)
			}
			if !m.Active() {
				tracer().Debugf("scroll timer terminates, all nodes idle")
				return
			}
		}
	}
}

// ---------------------------------------------------------------------------

func du2px(d dimen.DU) float64 {
	return float64(d) / float64(dimen.PX)
}

func clamp(p Position, max Position) Position {
	return Position{
		X: math.Min(math.Max(p.X, 0), max.X),
		Y: math.Min(math.Max(p.Y, 0), max.Y),
	}
}

func clampAbs(v, max float64) float64 {
	return math.Min(math.Max(v, -max), max)
}
