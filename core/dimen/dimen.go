// Package dimen implements dimensions, device units and basic geometry.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
package dimen

import (
	"fmt"
	"math"
)

// DU is a device unit. Values are in fixed-point sub-pixels: one logical
// pixel equals 64 DU (a 26.6 fixed-point number, as used by most font
// machinery). All layout arithmetic is done in DU and converted to float
// pixels only at the display-list boundary.
type DU int32

// Pre-defined dimensions. Scales for physical units assume the usual
// 96 dpi logical coordinate space.
const (
	Zero DU = 0
	SU   DU = 1    // sub-pixel unit = PX / 64
	PX   DU = 64   // logical pixel
	PT   DU = 85   // printer's point = 4/3 px, rounded
	IN   DU = 6144 // inch = 96 px
	CM   DU = 2419 // centimeter
	MM   DU = 242  // millimeter
)

// Infty is the largest possible dimension. It is used as a pseudo
// "infinite" value and as a sentinel, e.g. for unbounded max-constraints.
const Infty DU = math.MaxInt32

// String makes DU a Stringer; values print as fractional pixels.
func (d DU) String() string {
	if d == Infty {
		return "∞"
	} else if d == -Infty {
		return "-∞"
	}
	if d%PX == 0 {
		return fmt.Sprintf("%dpx", int32(d/PX))
	}
	return fmt.Sprintf("%.2fpx", d.Pixels())
}

// Pixels returns a dimension as a floating point count of logical pixels.
func (d DU) Pixels() float64 {
	return float64(d) / float64(PX)
}

// FromPixels converts a floating point pixel value to device units,
// rounding to the nearest sub-pixel.
func FromPixels(px float64) DU {
	return DU(math.Round(px * float64(PX)))
}

// Min returns the smaller of two dimensions.
func Min(a, b DU) DU {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b DU) DU {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of a dimension.
func Abs(d DU) DU {
	if d < 0 {
		return -d
	}
	return d
}

// Clamp limits d to the interval [lo, hi]. lo > hi is interpreted as the
// CSS precedence rule "min wins over max".
func Clamp(d, lo, hi DU) DU {
	if hi < lo {
		hi = lo
	}
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// --- Points and rectangles -------------------------------------------------

// Point is a point on the output device.
type Point struct {
	X, Y DU
}

// Origin is origin.
var Origin = Point{0, 0}

func (p Point) String() string {
	return fmt.Sprintf("(%s,%s)", p.X, p.Y)
}

// Shift moves a point along a vector.
func (p Point) Shift(vector Point) Point {
	return Point{p.X + vector.X, p.Y + vector.Y}
}

// Rect is a rectangle, given by its top-left and bottom-right corners.
type Rect struct {
	TopL Point
	BotR Point
}

// Width returns the width of a rectangle.
func (r Rect) Width() DU {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle.
func (r Rect) Height() DU {
	return r.BotR.Y - r.TopL.Y
}

// IsEmpty is true for rectangles with zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v]", r.TopL, r.BotR)
}

// Contains is true if point p lies within r. Points on the top or left
// edge are inside, points on the bottom or right edge are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.TopL.X && p.X < r.BotR.X &&
		p.Y >= r.TopL.Y && p.Y < r.BotR.Y
}

// Translate shifts a rectangle along a vector.
func (r Rect) Translate(vector Point) Rect {
	return Rect{
		TopL: r.TopL.Shift(vector),
		BotR: r.BotR.Shift(vector),
	}
}

// Intersection returns the common area of two rectangles. If the rectangles
// do not overlap, an empty rectangle is returned.
func Intersection(r1, r2 Rect) Rect {
	r := Rect{
		TopL: Point{Max(r1.TopL.X, r2.TopL.X), Max(r1.TopL.Y, r2.TopL.Y)},
		BotR: Point{Min(r1.BotR.X, r2.BotR.X), Min(r1.BotR.Y, r2.BotR.Y)},
	}
	if r.IsEmpty() {
		return Rect{}
	}
	return r
}

// Union returns the bounding rectangle of two rectangles.
func Union(r1, r2 Rect) Rect {
	if r1.IsEmpty() {
		return r2
	}
	if r2.IsEmpty() {
		return r1
	}
	return Rect{
		TopL: Point{Min(r1.TopL.X, r2.TopL.X), Min(r1.TopL.Y, r2.TopL.Y)},
		BotR: Point{Max(r1.BotR.X, r2.BotR.X), Max(r1.BotR.Y, r2.BotR.Y)},
	}
}

// Intersect is true if two rectangles share any area.
func Intersect(r1, r2 Rect) bool {
	return !Intersection(r1, r2).IsEmpty()
}
