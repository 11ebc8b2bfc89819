/*
Package parshape describes regions for line-breaking.

Paragraphs need not be rectangular: text may flow inside a circle or an
arbitrary polygon, or around floated exclusions. A Shape answers, for a
band of given height at a given block-axis position, which disjoint
segments along the inline axis may carry text.

Shapes live in logical coordinates: the inline axis is the first
coordinate, the block axis the second. Callers map logical positions to
physical ones according to the writing mode.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parshape

import (
	"math"
	"sort"

	"github.com/npillmayer/vitrine/core/dimen"
)

// Segment is an interval along the inline axis which may carry text.
type Segment struct {
	Min, Max dimen.DU
}

// Extent returns the length of a segment.
func (s Segment) Extent() dimen.DU {
	return s.Max - s.Min
}

// Shape is a region to fill with lines of text.
type Shape interface {
	// LineExtents returns the segments available for a line occupying
	// the block-axis band [blockPos, blockPos+lineHeight). Segments are
	// disjoint and ordered along the inline axis.
	LineExtents(blockPos, lineHeight dimen.DU) []Segment

	// BlockExtent returns the total block-axis size of the shape, or
	// dimen.Infty for unbounded shapes.
	BlockExtent() dimen.DU
}

// --- Rectangle -------------------------------------------------------------

type rectShape struct {
	inline, block dimen.DU
	exclusions    []dimen.Rect // in logical (inline, block) coordinates
}

// Rect returns a rectangular shape. A block extent of dimen.Infty makes
// the rectangle grow without bound along the block axis.
func Rect(inline, block dimen.DU) Shape {
	return &rectShape{inline: inline, block: block}
}

// RectWithExclusions returns a rectangular shape with rectangular holes,
// e.g. for floats. Exclusion rectangles are given in logical
// coordinates: X is the inline axis, Y the block axis.
func RectWithExclusions(inline, block dimen.DU, exclusions []dimen.Rect) Shape {
	return &rectShape{inline: inline, block: block, exclusions: exclusions}
}

func (r *rectShape) BlockExtent() dimen.DU {
	return r.block
}

func (r *rectShape) LineExtents(blockPos, lineHeight dimen.DU) []Segment {
	if blockPos >= r.block || blockPos+lineHeight > r.block {
		return nil
	}
	segs := []Segment{{Min: 0, Max: r.inline}}
	for _, excl := range r.exclusions {
		if excl.BotR.Y <= blockPos || excl.TopL.Y >= blockPos+lineHeight {
			continue // exclusion does not touch this band
		}
		segs = subtract(segs, Segment{Min: excl.TopL.X, Max: excl.BotR.X})
	}
	return segs
}

// subtract removes a hole from every segment of a list.
func subtract(segs []Segment, hole Segment) []Segment {
	var out []Segment
	for _, s := range segs {
		if hole.Max <= s.Min || hole.Min >= s.Max {
			out = append(out, s)
			continue
		}
		if hole.Min > s.Min {
			out = append(out, Segment{Min: s.Min, Max: hole.Min})
		}
		if hole.Max < s.Max {
			out = append(out, Segment{Min: hole.Max, Max: s.Max})
		}
	}
	return out
}

// --- Ring and circle -------------------------------------------------------

type ringShape struct {
	outer, inner dimen.DU
}

// Circle returns a circular shape with a given radius.
func Circle(radius dimen.DU) Shape {
	return &ringShape{outer: radius}
}

// Ring returns an annular shape: a circle of the outer radius with a
// concentric hole of the inner radius.
func Ring(outer, inner dimen.DU) Shape {
	return &ringShape{outer: outer, inner: inner}
}

func (r *ringShape) BlockExtent() dimen.DU {
	return 2 * r.outer
}

func (r *ringShape) LineExtents(blockPos, lineHeight dimen.DU) []Segment {
	center := float64(r.outer)
	top := float64(blockPos) - center
	bot := float64(blockPos+lineHeight) - center
	if bot > float64(r.outer) || top < -float64(r.outer) {
		return nil
	}
	// the band must fit inside the outer circle at its widest offset
	maxOff := math.Max(math.Abs(top), math.Abs(bot))
	halfOuter := chord(float64(r.outer), maxOff)
	if halfOuter <= 0 {
		return nil
	}
	lo := dimen.DU(center - halfOuter)
	hi := dimen.DU(center + halfOuter)
	// the hole is widest at the band's smallest offset
	minOff := 0.0
	if top > 0 || bot < 0 {
		minOff = math.Min(math.Abs(top), math.Abs(bot))
	}
	if r.inner > 0 && minOff < float64(r.inner) {
		halfInner := chord(float64(r.inner), minOff)
		return []Segment{
			{Min: lo, Max: dimen.DU(center - halfInner)},
			{Min: dimen.DU(center + halfInner), Max: hi},
		}
	}
	return []Segment{{Min: lo, Max: hi}}
}

// chord returns the half-chord length of a circle with radius r at a
// distance d from the center.
func chord(r, d float64) float64 {
	if d >= r {
		return 0
	}
	return math.Sqrt(r*r - d*d)
}

// --- Polygon ---------------------------------------------------------------

type polygonShape struct {
	points []dimen.Point // closed outline, in logical coordinates
	block  dimen.DU
}

// Polygon returns a shape bounded by a simple closed polygon. The
// outline is given in logical coordinates; the closing edge from the
// last point back to the first is implicit.
func Polygon(points []dimen.Point) Shape {
	p := &polygonShape{points: points}
	for _, pt := range points {
		if pt.Y > p.block {
			p.block = pt.Y
		}
	}
	return p
}

func (p *polygonShape) BlockExtent() dimen.DU {
	return p.block
}

func (p *polygonShape) LineExtents(blockPos, lineHeight dimen.DU) []Segment {
	if blockPos+lineHeight > p.block {
		return nil
	}
	// text must fit the band at its top and at its bottom edge
	top := p.crossings(float64(blockPos))
	bot := p.crossings(float64(blockPos + lineHeight))
	return intersect(top, bot)
}

// crossings returns the inside-intervals of a horizontal scanline,
// using the even-odd rule.
func (p *polygonShape) crossings(y float64) []Segment {
	var xs []float64
	n := len(p.points)
	for i := 0; i < n; i++ {
		a, b := p.points[i], p.points[(i+1)%n]
		ay, by := float64(a.Y), float64(b.Y)
		if ay == by {
			continue
		}
		if (y >= ay && y < by) || (y >= by && y < ay) {
			t := (y - ay) / (by - ay)
			xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
		}
	}
	sort.Float64s(xs)
	var segs []Segment
	for i := 0; i+1 < len(xs); i += 2 {
		segs = append(segs, Segment{Min: dimen.DU(xs[i]), Max: dimen.DU(xs[i+1])})
	}
	return segs
}

// intersect returns the common sub-intervals of two ordered segment
// lists.
func intersect(a, b []Segment) []Segment {
	var out []Segment
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := a[i].Min
		if b[j].Min > lo {
			lo = b[j].Min
		}
		hi := a[i].Max
		if b[j].Max < hi {
			hi = b[j].Max
		}
		if lo < hi {
			out = append(out, Segment{Min: lo, Max: hi})
		}
		if a[i].Max < b[j].Max {
			i++
		} else {
			j++
		}
	}
	return out
}
