package frame

import (
	"errors"
	"fmt"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/core/option"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
)

// Size is a pair of optional dimensions.
type Size struct {
	W css.DimenT
	H css.DimenT
}

// Box is a type following the CSS box model. TopL is the origin of the
// border box in document coordinates; it is assigned by the layout
// solver.
type Box struct {
	TopL dimen.Point
	Size                   // either content box or border box, depending on box-sizing
	Min             Size   // min-width / min-height
	Max             Size   // max-width / max-height
	BorderBoxSizing bool   // box-sizing = border-box ?
	Padding         [4]css.DimenT // inside of border
	BorderWidth     [4]css.DimenT // thickness of border
	Margins         [4]css.DimenT // outside of border, maybe unknown
}

// For padding, margins, etc. 4-way values always start at the top and
// travel clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// InitEmptyBox initializes padding, border and margins to 0 and the size
// to auto.
func InitEmptyBox(box *Box) *Box {
	if box == nil {
		box = &Box{}
	}
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = css.SomeDimen(0)
		box.BorderWidth[dir] = css.SomeDimen(0)
		box.Margins[dir] = css.SomeDimen(0)
	}
	box.W = css.AutoDimen()
	box.H = css.AutoDimen()
	return box
}

// DebugString returns a textual representation of a box's dimensions.
// Intended for debugging.
func (box *Box) DebugString() string {
	s := fmt.Sprintf("box{\n   w=%v, h=%v  (bbox-sz=%v)\n", box.W, box.H, box.BorderBoxSizing)
	s += fmt.Sprintf("   p.top=%v, p.right=%v, p.bottom=%v, p.left=%v\n",
		box.Padding[Top], box.Padding[Right], box.Padding[Bottom], box.Padding[Left])
	s += fmt.Sprintf("   b.top=%v, b.right=%v, b.bottom=%v, b.left=%v\n",
		box.BorderWidth[Top], box.BorderWidth[Right], box.BorderWidth[Bottom], box.BorderWidth[Left])
	s += fmt.Sprintf("   m.top=%v, m.right=%v, m.bottom=%v, m.left=%v\n",
		box.Margins[Top], box.Margins[Right], box.Margins[Bottom], box.Margins[Left])
	s += "}"
	return s
}

// --- Derived dimensions -----------------------------------------------------

// ContentWidth returns the width of the content box. If the box has
// box-sizing set to `border-box` and the width dimensions do not have
// fixed values, an unset dimension is returned.
func (box *Box) ContentWidth() css.DimenT {
	if !box.BorderBoxSizing {
		return box.W
	}
	if box.hasFixedBorderBoxWidth(false) {
		w := box.W.Unwrap()
		w -= innerDecorationWidth(box).Unwrap()
		return css.SomeDimen(w)
	}
	return css.Dimen()
}

// ContentHeight returns the height of the content box. If the box has
// box-sizing set to `border-box` and the height dimensions do not have
// fixed values, an unset dimension is returned.
func (box *Box) ContentHeight() css.DimenT {
	if !box.BorderBoxSizing {
		return box.H
	}
	if box.hasFixedBorderBoxHeight(false) {
		h := box.H.Unwrap()
		h -= innerDecorationHeight(box).Unwrap()
		return css.SomeDimen(h)
	}
	return css.Dimen()
}

// BorderBoxWidth returns the width of a box, including padding and
// border. If the box has box-sizing set to `content-box` and at least
// one of the dimensions is not of fixed value, an unset dimension is
// returned.
func (box *Box) BorderBoxWidth() css.DimenT {
	if box.BorderBoxSizing {
		return box.W
	}
	if box.hasFixedBorderBoxWidth(false) {
		w := box.W.Unwrap()
		w += innerDecorationWidth(box).Unwrap()
		return css.SomeDimen(w)
	}
	return css.Dimen()
}

// BorderBoxHeight returns the height of a box, including padding and
// border.
func (box *Box) BorderBoxHeight() css.DimenT {
	if box.BorderBoxSizing {
		return box.H
	}
	if box.hasFixedBorderBoxHeight(false) {
		h := box.H.Unwrap()
		h += innerDecorationHeight(box).Unwrap()
		return css.SomeDimen(h)
	}
	return css.Dimen()
}

// TotalWidth returns the overall width of a box, including margins. If
// one of the dimensions is not of fixed value, an unset dimension is
// returned.
func (box *Box) TotalWidth() css.DimenT {
	if box.hasFixedBorderBoxWidth(true) {
		w := box.BorderBoxWidth().Unwrap()
		w += box.Margins[Left].Unwrap()
		w += box.Margins[Right].Unwrap()
		return css.SomeDimen(w)
	}
	return css.Dimen()
}

// TotalHeight returns the overall height of a box, including margins.
func (box *Box) TotalHeight() css.DimenT {
	if box.hasFixedBorderBoxHeight(true) {
		h := box.BorderBoxHeight().Unwrap()
		h += box.Margins[Top].Unwrap()
		h += box.Margins[Bottom].Unwrap()
		return css.SomeDimen(h)
	}
	return css.Dimen()
}

// BorderBoxRect returns the border box as an absolute rectangle. Valid
// after the solver has fixed the box.
func (box *Box) BorderBoxRect() dimen.Rect {
	w := box.BorderBoxWidth()
	h := box.BorderBoxHeight()
	if !w.IsAbsolute() || !h.IsAbsolute() {
		return dimen.Rect{}
	}
	return dimen.Rect{
		TopL: box.TopL,
		BotR: dimen.Point{X: box.TopL.X + w.Unwrap(), Y: box.TopL.Y + h.Unwrap()},
	}
}

// ContentRect returns the content box as an absolute rectangle. Valid
// after the solver has fixed the box.
func (box *Box) ContentRect() dimen.Rect {
	w := box.ContentWidth()
	h := box.ContentHeight()
	if !w.IsAbsolute() || !h.IsAbsolute() {
		return dimen.Rect{}
	}
	topl := dimen.Point{
		X: box.TopL.X + box.BorderWidth[Left].Unwrap() + box.Padding[Left].Unwrap(),
		Y: box.TopL.Y + box.BorderWidth[Top].Unwrap() + box.Padding[Top].Unwrap(),
	}
	return dimen.Rect{
		TopL: topl,
		BotR: dimen.Point{X: topl.X + w.Unwrap(), Y: topl.Y + h.Unwrap()},
	}
}

func (box *Box) hasFixedBorderBoxWidth(includeMargins bool) bool {
	if includeMargins {
		if !box.Margins[Left].IsAbsolute() || !box.Margins[Right].IsAbsolute() {
			return false
		}
	}
	return box.Padding[Left].IsAbsolute() && box.Padding[Right].IsAbsolute() &&
		box.BorderWidth[Left].IsAbsolute() && box.BorderWidth[Right].IsAbsolute() &&
		box.W.IsAbsolute()
}

func (box *Box) hasFixedBorderBoxHeight(includeMargins bool) bool {
	if includeMargins {
		if !box.Margins[Top].IsAbsolute() || !box.Margins[Bottom].IsAbsolute() {
			return false
		}
	}
	return box.Padding[Top].IsAbsolute() && box.Padding[Bottom].IsAbsolute() &&
		box.BorderWidth[Top].IsAbsolute() && box.BorderWidth[Bottom].IsAbsolute() &&
		box.H.IsAbsolute()
}

func innerDecorationWidth(box *Box) css.DimenT {
	if !box.Padding[Left].IsAbsolute() || !box.Padding[Right].IsAbsolute() ||
		!box.BorderWidth[Left].IsAbsolute() || !box.BorderWidth[Right].IsAbsolute() {
		return css.Dimen()
	}
	w := box.Padding[Left].Unwrap() + box.Padding[Right].Unwrap() +
		box.BorderWidth[Left].Unwrap() + box.BorderWidth[Right].Unwrap()
	return css.SomeDimen(w)
}

func innerDecorationHeight(box *Box) css.DimenT {
	if !box.Padding[Top].IsAbsolute() || !box.Padding[Bottom].IsAbsolute() ||
		!box.BorderWidth[Top].IsAbsolute() || !box.BorderWidth[Bottom].IsAbsolute() {
		return css.Dimen()
	}
	h := box.Padding[Top].Unwrap() + box.Padding[Bottom].Unwrap() +
		box.BorderWidth[Top].Unwrap() + box.BorderWidth[Bottom].Unwrap()
	return css.SomeDimen(h)
}

// --- Unit resolution --------------------------------------------------------

// ResolveUnits resolves every relative dimension of the box which the
// environment can resolve: font-relative and viewport units always,
// percentages against env.Contain. Padding and margin percentages refer
// to the *width* of the containing block, for the vertical sides too.
// Illegal values (auto or negative padding/border) are fixed to 0.
func (box *Box) ResolveUnits(env css.Env) {
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = resolveSide(box.Padding[dir], env, false)
		box.BorderWidth[dir] = resolveSide(box.BorderWidth[dir], env, false)
		box.Margins[dir] = resolveSide(box.Margins[dir], env, true)
	}
	box.W = resolveDimen(box.W, env)
	box.H = resolveDimen(box.H, env)
	box.Min.W = resolveDimen(box.Min.W, env)
	box.Min.H = resolveDimen(box.Min.H, env)
	box.Max.W = resolveDimen(box.Max.W, env)
	box.Max.H = resolveDimen(box.Max.H, env)
}

func resolveDimen(d css.DimenT, env css.Env) css.DimenT {
	if du, ok := d.Resolve(env); ok {
		return css.SomeDimen(du)
	}
	return d
}

// resolveSide resolves a padding/border/margin dimension. auto is legal
// for margins only; padding and border fall back to 0.
func resolveSide(d css.DimenT, env css.Env, autoOK bool) css.DimenT {
	if d.IsAuto() {
		if autoOK {
			return d
		}
		return css.SomeDimen(0)
	}
	if du, ok := d.Resolve(env); ok {
		if du < 0 && !autoOK {
			return css.SomeDimen(0)
		}
		return css.SomeDimen(du)
	}
	return css.SomeDimen(0)
}

// ClampWidth applies min-width and max-width to an absolute width.
// A conflicting min wins over max.
func (box *Box) ClampWidth(w dimen.DU) dimen.DU {
	if box.Max.W.IsAbsolute() {
		w = dimen.Min(w, box.Max.W.Unwrap())
	}
	if box.Min.W.IsAbsolute() {
		w = dimen.Max(w, box.Min.W.Unwrap())
	}
	return w
}

// ClampHeight applies min-height and max-height to an absolute height.
// A conflicting min wins over max.
func (box *Box) ClampHeight(h dimen.DU) dimen.DU {
	if box.Max.H.IsAbsolute() {
		h = dimen.Min(h, box.Max.H.Unwrap())
	}
	if box.Min.H.IsAbsolute() {
		h = dimen.Max(h, box.Min.H.Unwrap())
	}
	return h
}

// --- Width solving ----------------------------------------------------------

// ErrUnderspecified is returned if a dimension calculation cannot be
// completed because the input values are underspecified.
var ErrUnderspecified error = errors.New("box width dimensions are underspecified")

// ErrContentScaling is returned if a dimension calculation encounters a
// dimension-specification which is dependent on the box's content.
var ErrContentScaling error = errors.New("box scales with content")

// FixWidthFromEnclosing calculates missing/auto width dimensions from
// the width of the enclosing box. Relative units must have been resolved
// beforehand (see ResolveUnits).
//
// This distributes space according to the equation (CSS 2.1, §10.3.3):
//
//	margin-left + border-width-left + padding-left + width +
//	  padding-right + border-width-right + margin-right = enclosing width
//
// If width is auto, auto margins become 0 and width takes the rest,
// clamped by min/max. If width is fixed, remaining space is distributed
// into auto margins (both auto: centered).
func (box *Box) FixWidthFromEnclosing(enclosing dimen.DU) error {
	if box.W.Equals(css.ContentScaled) {
		return ErrContentScaling
	}
	calc, err := box.W.Match(option.Of{
		option.None: calcFn(widthAsRest), // defaults to `auto`
		css.Auto:    calcFn(widthAsRest),
		option.Some: calcFn(distributeMarginSpace),
	})
	if err != nil {
		return err
	}
	return calc.(calcFn)(box, enclosing)
}

type calcFn func(box *Box, enclosing dimen.DU) error

// widthAsRest handles `width: auto`: any auto margins become 0 and the
// width follows from the resulting equation.
func widthAsRest(box *Box, enclosing dimen.DU) error {
	for _, dir := range [2]int{Left, Right} {
		if box.Margins[dir].IsAuto() || box.Margins[dir].IsNone() {
			box.Margins[dir] = css.SomeDimen(0)
		}
		if !box.Margins[dir].IsAbsolute() {
			return ErrUnderspecified
		}
	}
	deco := innerDecorationWidth(box)
	if deco.IsNone() {
		return ErrUnderspecified
	}
	avail := enclosing - box.Margins[Left].Unwrap() - box.Margins[Right].Unwrap()
	if box.BorderBoxSizing {
		box.W = css.SomeDimen(box.ClampWidth(avail))
	} else {
		box.W = css.SomeDimen(box.ClampWidth(avail - deco.Unwrap()))
	}
	return nil
}

// distributeMarginSpace handles a fixed width: remaining horizontal
// space is given to auto margins, centering the box if both are auto.
func distributeMarginSpace(box *Box, enclosing dimen.DU) error {
	if !box.W.IsAbsolute() {
		return ErrUnderspecified
	}
	box.W = css.SomeDimen(box.ClampWidth(box.W.Unwrap()))
	bbox := box.BorderBoxWidth()
	if !bbox.IsAbsolute() {
		return ErrUnderspecified
	}
	remaining := enclosing - bbox.Unwrap()
	left, right := box.Margins[Left], box.Margins[Right]
	switch {
	case left.IsAuto() && right.IsAuto():
		box.Margins[Left] = css.SomeDimen(remaining / 2)
		box.Margins[Right] = css.SomeDimen(remaining - remaining/2)
	case left.IsAuto() && right.IsAbsolute():
		box.Margins[Left] = css.SomeDimen(remaining - right.Unwrap())
	case right.IsAuto() && left.IsAbsolute():
		box.Margins[Right] = css.SomeDimen(remaining - left.Unwrap())
	case left.IsAbsolute() && right.IsAbsolute():
		// over-constrained: the right margin gives way (LTR)
		box.Margins[Right] = css.SomeDimen(remaining - left.Unwrap())
	default:
		return ErrUnderspecified
	}
	return nil
}

// --- Margin collapsing ------------------------------------------------------

// CollapseMargins returns the collapsed margin between the bottom margin
// of box1 and the top margin of box2, per CSS 2.1 §8.3.1: the maximum of
// both positive margins; with negative margins involved, the sum of the
// maximum positive and the minimum negative margin.
//
// Either box may be nil, collapsing against a void sibling.
func CollapseMargins(box1, box2 *Box) css.DimenT {
	var m1, m2 css.DimenT
	if box1 != nil {
		m1 = box1.Margins[Bottom]
	}
	if box2 != nil {
		m2 = box2.Margins[Top]
	}
	return CollapseDimens(m1, m2)
}

// CollapseDimens collapses two adjoining margin dimensions.
func CollapseDimens(m1, m2 css.DimenT) css.DimenT {
	a, b := dimen.Zero, dimen.Zero
	if m1.IsAbsolute() {
		a = m1.Unwrap()
	}
	if m2.IsAbsolute() {
		b = m2.Unwrap()
	}
	pos := dimen.Max(dimen.Max(a, b), 0)
	neg := dimen.Min(dimen.Min(a, b), 0)
	return css.SomeDimen(pos + neg)
}
