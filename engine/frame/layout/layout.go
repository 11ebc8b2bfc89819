package layout

import (
	"strconv"
	"strings"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/frame"
	"github.com/npillmayer/vitrine/engine/frame/boxtree"
	"github.com/npillmayer/vitrine/engine/text"
	"github.com/npillmayer/vitrine/engine/text/cache"
	"github.com/npillmayer/vitrine/engine/text/hyphen"
	"github.com/npillmayer/vitrine/engine/text/monospace"
	"github.com/npillmayer/vitrine/engine/text/parshape"
	"github.com/npillmayer/vitrine/engine/tree"
)

// Options configure a layout run.
type Options struct {
	Shaper       text.Shaper        // nil chooses a monospace shaper at the computed font size
	Hyphenator   *hyphen.Dictionary // nil disables hyphenation
	RootFontSize dimen.DU           // 0 chooses 16px
	// Cache memoizes inline results across solves; nil disables it.
	// Keys cover text and constraints but not the shaper, so use one
	// cache per shaper configuration.
	Cache *cache.Cache
}

// ScrollNode is the record the solver registers for a box whose content
// exceeds its content box and whose overflow policy permits scrolling.
type ScrollNode struct {
	Box      tree.NodeID // box-tree node
	DOMNode  tree.NodeID // corresponding document node
	Viewport dimen.Rect  // absolute content-box rectangle
	Content  dimen.Point // scrollable content extent
}

// Result is the outcome of a layout run: the box tree with absolute
// rectangles, per-IFC inline results, and the scroll-node set.
type Result struct {
	Boxes    *boxtree.BoxTree
	Viewport dimen.Point
	Inline   map[tree.NodeID]*text.Result // inline layout per IFC root box
	Scrolls  []ScrollNode
	content  []dimen.Point // laid-out content extent per box
}

// BorderBoxRect returns the absolute border-box rectangle of a box.
func (r *Result) BorderBoxRect(b tree.NodeID) dimen.Rect {
	box := r.Boxes.Box(b)
	if box == nil {
		return dimen.Rect{}
	}
	return box.BorderBoxRect()
}

// ContentSize returns the laid-out content extent of a box, including
// overflowing children.
func (r *Result) ContentSize(b tree.NodeID) dimen.Point {
	if int(b) < 0 || int(b) >= len(r.content) {
		return dimen.Point{}
	}
	return r.content[b]
}

// Solve lays out a styled document for a viewport, with default options.
func Solve(doc *dom.Document, viewport dimen.Point) (*Result, error) {
	return SolveWith(doc, viewport, Options{})
}

// SolveWith lays out a styled document for a viewport.
func SolveWith(doc *dom.Document, viewport dimen.Point, opts Options) (*Result, error) {
	boxes, err := boxtree.BuildBoxTree(doc)
	if err != nil {
		return nil, err
	}
	if opts.RootFontSize == 0 {
		opts.RootFontSize = 16 * dimen.PX
	}
	n := boxes.Tree().Count()
	s := &solver{
		doc:      doc,
		boxes:    boxes,
		viewport: viewport,
		opts:     opts,
		fontSize: make([]dimen.DU, n),
		offset:   make([]dimen.Point, n),
		res: &Result{
			Boxes:    boxes,
			Viewport: viewport,
			Inline:   make(map[tree.NodeID]*text.Result),
			content:  make([]dimen.Point, n),
		},
	}
	s.computeFontSizes(boxes.Root(), opts.RootFontSize)
	s.layoutBox(boxes.Root(), viewport.X, viewport.Y)
	s.place(boxes.Root(), dimen.Point{})
	s.placeAbsolutes()
	for i := range s.res.Scrolls {
		sc := &s.res.Scrolls[i]
		sc.Viewport = s.boxes.Box(sc.Box).ContentRect()
	}
	tracer().Infof("layout: solved %d boxes, %d scroll nodes, %d inline contexts",
		n, len(s.res.Scrolls), len(s.res.Inline))
	return s.res, nil
}

// --- Solver ----------------------------------------------------------------

type absEntry struct {
	box    tree.NodeID
	anchor tree.NodeID // NullID anchors against the viewport
}

type solver struct {
	doc       *dom.Document
	boxes     *boxtree.BoxTree
	viewport  dimen.Point
	opts      Options
	fontSize  []dimen.DU    // computed font size per box
	offset    []dimen.Point // border-box origin relative to parent content box
	absolutes []absEntry
	res       *Result
}

func (s *solver) property(b tree.NodeID, key string) style.Property {
	n := s.boxes.DOMNode(b)
	if n.IsNull() {
		return style.NullStyle
	}
	return s.doc.GetProperty(n, key)
}

func (s *solver) env(b tree.NodeID, contain dimen.DU) css.Env {
	return css.Env{
		FontSize:     s.fontSize[b],
		RootFontSize: s.fontSize[s.boxes.Root()],
		View:         s.viewport,
		Contain:      contain,
	}
}

// computeFontSizes resolves the font size of every box top-down; em and
// percentage values refer to the parent's font size.
func (s *solver) computeFontSizes(b tree.NodeID, parentFS dimen.DU) {
	fs := parentFS
	if s.boxes.Kind(b) == boxtree.PrincipalBox {
		p := css.DimenOption(s.property(b, "font-size"))
		env := css.Env{FontSize: parentFS, RootFontSize: s.opts.RootFontSize,
			View: s.viewport, Contain: parentFS}
		if du, ok := p.Resolve(env); ok && du > 0 {
			fs = du
		}
	}
	s.fontSize[b] = fs
	for _, c := range s.boxes.Tree().Children(b) {
		s.computeFontSizes(c, fs)
	}
}

// layoutBox resolves a box's width against its containing block and lays
// out its contents. cbH is the containing height, 0 when not yet known.
func (s *solver) layoutBox(b tree.NodeID, cbW, cbH dimen.DU) {
	box := s.boxes.Box(b)
	if box.H.IsPercent() {
		// percentage heights resolve against the containing height
		if du, ok := box.H.Resolve(css.Env{Contain: cbH}); ok && cbH > 0 {
			box.H = css.SomeDimen(du)
		} else {
			box.H = css.AutoDimen()
		}
	}
	box.ResolveUnits(s.env(b, cbW))
	if err := box.FixWidthFromEnclosing(cbW); err != nil {
		w := s.contentScaledWidth(b, cbW)
		box.W = css.SomeDimen(box.ClampWidth(w))
		zeroAutoMargins(box)
	}
	s.layoutContents(b, cbH)
}

// layoutContents lays out the children of a box, whose width is already
// fixed, and derives the box's height.
func (s *solver) layoutContents(b tree.NodeID, cbH dimen.DU) {
	box := s.boxes.Box(b)
	var contentH dimen.DU
	switch {
	case s.boxes.Display(b).Contains(css.InnerFlexMode):
		contentH = s.layoutFlex(b)
	case s.isInlineContext(b):
		contentH = s.layoutInline(b)
	default:
		contentH = s.layoutBlockChildren(b, cbH)
	}
	if box.H.IsAbsolute() {
		box.H = css.SomeDimen(box.ClampHeight(box.H.Unwrap()))
	} else {
		h := contentH
		if box.BorderBoxSizing {
			h += decoH(box)
		}
		box.H = css.SomeDimen(box.ClampHeight(h))
	}
	if s.res.content[b].Y < contentH {
		s.res.content[b].Y = contentH
	}
	if cw := box.ContentWidth(); cw.IsAbsolute() && s.res.content[b].X < cw.Unwrap() {
		s.res.content[b].X = cw.Unwrap()
	}
	s.registerScroll(b)
}

// --- Block formatting context ----------------------------------------------

// layoutBlockChildren stacks the in-flow children of a block container
// along the block axis, collapsing adjoining margins.
func (s *solver) layoutBlockChildren(b tree.NodeID, cbH dimen.DU) dimen.DU {
	box := s.boxes.Box(b)
	var availW, availH dimen.DU
	if cw := box.ContentWidth(); cw.IsAbsolute() {
		availW = cw.Unwrap()
	}
	if ch := box.ContentHeight(); ch.IsAbsolute() {
		availH = ch.Unwrap()
	}
	var y, maxX dimen.DU
	var prevMargin css.DimenT
	first := true
	for _, c := range s.boxes.Tree().Children(b) {
		if s.outOfFlow(c) {
			s.collectAbsolute(c)
			continue
		}
		s.layoutBox(c, availW, availH)
		cbox := s.boxes.Box(c)
		top := cbox.Margins[frame.Top]
		var gap css.DimenT
		switch {
		case first && s.marginEscapesTop(b):
			// the first child's top margin joins the parent's own margin
			box.Margins[frame.Top] = frame.CollapseDimens(box.Margins[frame.Top], top)
			gap = css.SomeDimen(0)
		case first:
			gap = frame.CollapseDimens(top, css.SomeDimen(0))
		default:
			gap = frame.CollapseDimens(prevMargin, top)
		}
		first = false
		y += gap.Unwrap()
		s.offset[c] = dimen.Point{X: cbox.Margins[frame.Left].Unwrap(), Y: y}
		if bb := cbox.BorderBoxHeight(); bb.IsAbsolute() {
			y += bb.Unwrap()
		}
		if bbw := cbox.BorderBoxWidth(); bbw.IsAbsolute() {
			if x := s.offset[c].X + bbw.Unwrap(); x > maxX {
				maxX = x
			}
		}
		prevMargin = cbox.Margins[frame.Bottom]
	}
	contentH := y
	if !first {
		if s.marginEscapesBottom(b) {
			box.Margins[frame.Bottom] = frame.CollapseDimens(prevMargin, box.Margins[frame.Bottom])
		} else if prevMargin.IsAbsolute() {
			contentH += prevMargin.Unwrap()
		}
	}
	s.res.content[b] = dimen.Point{X: maxX, Y: contentH}
	return contentH
}

// marginEscapesTop is true if the top margin of b's first in-flow child
// collapses with b's own top margin. Padding, border, a scroll container
// boundary, and flex or inline parents prevent the collapse.
func (s *solver) marginEscapesTop(b tree.NodeID) bool {
	if b == s.boxes.Root() {
		return false
	}
	box := s.boxes.Box(b)
	if box.Padding[frame.Top].Unwrap() != 0 || box.BorderWidth[frame.Top].Unwrap() != 0 {
		return false
	}
	return s.mayCollapseThrough(b)
}

func (s *solver) marginEscapesBottom(b tree.NodeID) bool {
	if b == s.boxes.Root() {
		return false
	}
	box := s.boxes.Box(b)
	if box.H.IsAbsolute() {
		return false
	}
	if box.Padding[frame.Bottom].Unwrap() != 0 || box.BorderWidth[frame.Bottom].Unwrap() != 0 {
		return false
	}
	return s.mayCollapseThrough(b)
}

func (s *solver) mayCollapseThrough(b tree.NodeID) bool {
	disp := s.boxes.Display(b)
	if disp.Contains(css.InnerFlexMode) || disp.Outer() == css.InlineMode {
		return false
	}
	ox, oy := s.overflowPolicy(b)
	if ox != css.OverflowVisible || oy != css.OverflowVisible {
		return false
	}
	p := s.boxes.Tree().Parent(b)
	if !p.IsNull() && s.boxes.Display(p).Contains(css.InnerFlexMode) {
		return false
	}
	return true
}

// --- Inline formatting context ---------------------------------------------

// isInlineContext is true for a box whose children are all inline-level.
func (s *solver) isInlineContext(b tree.NodeID) bool {
	children := s.boxes.Tree().Children(b)
	if len(children) == 0 {
		return false
	}
	for _, c := range children {
		if s.boxes.Kind(c) == boxtree.TextBox {
			continue
		}
		if s.boxes.Display(c).Outer() != css.InlineMode {
			return false
		}
	}
	return true
}

// layoutInline delegates a box's inline content to the text engine and
// returns the block extent the lines consume.
func (s *solver) layoutInline(b tree.NodeID) dimen.DU {
	box := s.boxes.Box(b)
	cw := box.ContentWidth()
	if !cw.IsAbsolute() || cw.Unwrap() <= 0 {
		return 0
	}
	txt := s.inlineText(b)
	if strings.TrimSpace(txt) == "" {
		return 0
	}
	ts := s.typesetting(b)
	inlineExtent, blockExtent := cw.Unwrap(), dimen.Infty
	if ts.WritingMode.IsVertical() {
		// lines stack along the x-axis; the inline axis runs vertically
		blockExtent = cw.Unwrap()
		if h := box.ContentHeight(); h.IsAbsolute() {
			inlineExtent = h.Unwrap()
		} else {
			inlineExtent = s.viewport.Y
		}
	}
	var key cache.Key
	if s.opts.Cache != nil {
		key = s.inlineKey(b, txt, inlineExtent, blockExtent, ts)
		if res, ok := s.opts.Cache.Get(key); ok {
			tracer().Debugf("layout: inline context of box %v served from cache", b)
			return s.recordInline(b, res, ts)
		}
	}
	res, err := text.Layout(txt, parshape.Rect(inlineExtent, blockExtent), ts)
	if err != nil {
		tracer().Errorf("layout: inline context of box %v failed: %v", b, err)
		return 0
	}
	if s.opts.Cache != nil {
		s.opts.Cache.Put(key, res)
	}
	return s.recordInline(b, res, ts)
}

// inlineKey derives the cache key of an inline context from its text
// and every constraint the result depends on.
func (s *solver) inlineKey(b tree.NodeID, txt string, inlineExtent, blockExtent dimen.DU,
	ts text.Typesetting) cache.Key {
	//
	var hyph int64
	if ts.Hyphenator != nil {
		hyph = 1
	}
	return cache.Key{
		Content: cache.ContentHash(txt),
		Constraint: cache.ConstraintHash(
			int64(inlineExtent), int64(blockExtent), int64(s.fontSize[b]),
			int64(ts.WritingMode), int64(ts.Orientation), int64(ts.Align),
			int64(ts.LineSkip), int64(ts.CombineUpright), hyph,
		),
	}
}

// recordInline stores an inline result for a box and returns the block
// extent its lines consume.
func (s *solver) recordInline(b tree.NodeID, res *text.Result, ts text.Typesetting) dimen.DU {
	s.res.Inline[b] = res
	var maxW, bot dimen.DU
	for _, line := range res.Lines {
		if line.Width > maxW {
			maxW = line.Width
		}
		if line.Bounds.BotR.Y > bot {
			bot = line.Bounds.BotR.Y
		}
	}
	if !ts.WritingMode.IsVertical() {
		if s.res.content[b].X < maxW {
			s.res.content[b].X = maxW
		}
		return res.BlockUsed
	}
	if s.res.content[b].X < res.BlockUsed {
		s.res.content[b].X = res.BlockUsed
	}
	return bot
}

// inlineText collects the text content of an inline formatting context.
func (s *solver) inlineText(b tree.NodeID) string {
	if s.boxes.Kind(b) == boxtree.TextBox {
		return s.doc.Text(s.boxes.DOMNode(b))
	}
	if s.boxes.Kind(b) == boxtree.PrincipalBox {
		if cord, err := text.InnerText(s.doc, s.boxes.DOMNode(b)); err == nil {
			return cord.String()
		}
	}
	// anonymous boxes wrap a run of inline boxes; gather their text
	var sb strings.Builder
	s.boxes.Tree().Walk(b, func(c tree.NodeID) bool {
		if s.boxes.Kind(c) == boxtree.TextBox {
			sb.WriteString(s.doc.Text(s.boxes.DOMNode(c)))
		}
		return true
	})
	return sb.String()
}

// typesetting derives the inline layout parameters of a box from its
// computed style properties.
func (s *solver) typesetting(b tree.NodeID) text.Typesetting {
	fs := s.fontSize[b]
	shaper := s.opts.Shaper
	if shaper == nil {
		shaper = monospace.Shaper(fs, nil)
	}
	ts := text.Typesetting{
		Shaper:      shaper,
		WritingMode: css.ParseWritingMode(s.property(b, "writing-mode")),
		Orientation: css.ParseTextOrientation(s.property(b, "text-orientation")),
		Align:       css.ParseTextAlign(s.property(b, "text-align")),
		Hyphenator:  s.opts.Hyphenator,
	}
	if s.property(b, "hyphens") == "none" {
		ts.Hyphenator = nil
	}
	if lh := css.DimenOption(s.property(b, "line-height")); !lh.IsNone() {
		if du, ok := lh.Resolve(s.env(b, fs)); ok {
			ts.LineSkip = du
		}
	}
	if comb := string(s.property(b, "text-combine-upright")); strings.HasPrefix(comb, "digits") {
		n := 2
		if arg := strings.TrimSpace(strings.TrimPrefix(comb, "digits")); arg != "" {
			if parsed, err := strconv.Atoi(arg); err == nil {
				n = parsed
			}
		}
		ts.CombineUpright = n
	}
	return ts
}

// --- Intrinsic sizing -------------------------------------------------------

// contentScaledWidth resolves a content-dependent width keyword
// (min-content, max-content, fit-content) to a used content width.
func (s *solver) contentScaledWidth(b tree.NodeID, avail dimen.DU) dimen.DU {
	minW, maxW := s.intrinsicWidths(b)
	box := s.boxes.Box(b)
	deco := decoW(box)
	switch {
	case box.W.Equals(css.DimenOption("min-content")):
		return minW - deco
	case box.W.Equals(css.DimenOption("max-content")):
		return maxW - deco
	}
	// fit-content: shrink to fit the available space
	w := dimen.Min(dimen.Max(minW, dimen.Min(maxW, avail)), avail)
	return dimen.Max(w-deco, 0)
}

// intrinsicWidths returns the min-content and max-content border-box
// widths of a box.
func (s *solver) intrinsicWidths(b tree.NodeID) (minW, maxW dimen.DU) {
	box := s.boxes.Box(b)
	if box.W.IsAbsolute() {
		w := box.W.Unwrap()
		if !box.BorderBoxSizing {
			w += decoW(box)
		}
		return w, w
	}
	if s.boxes.Kind(b) == boxtree.TextBox || s.isInlineContext(b) {
		if mn, mx, err := text.IntrinsicWidths(s.inlineText(b), s.typesetting(b)); err == nil {
			minW, maxW = mn, mx
		}
		return minW + decoW(box), maxW + decoW(box)
	}
	sum := s.boxes.Display(b).Contains(css.InnerFlexMode) &&
		isRowDirection(string(s.property(b, "flex-direction")))
	for _, c := range s.boxes.Tree().Children(b) {
		if s.outOfFlow(c) {
			continue
		}
		cmn, cmx := s.intrinsicWidths(c)
		cbox := s.boxes.Box(c)
		cmn += marginsW(cbox)
		cmx += marginsW(cbox)
		if sum {
			minW += cmn
			maxW += cmx
		} else {
			minW = dimen.Max(minW, cmn)
			maxW = dimen.Max(maxW, cmx)
		}
	}
	return minW + decoW(box), maxW + decoW(box)
}

// --- Overflow and scroll registration ---------------------------------------

func (s *solver) overflowPolicy(b tree.NodeID) (css.Overflow, css.Overflow) {
	if p := s.property(b, "overflow"); p != style.NullStyle {
		o := css.ParseOverflow(p)
		return o, o
	}
	return css.ParseOverflow(s.property(b, "overflow-x")),
		css.ParseOverflow(s.property(b, "overflow-y"))
}

// registerScroll records a box with the scroll-node set if its overflow
// policy permits scrolling and its content exceeds its content box.
func (s *solver) registerScroll(b tree.NodeID) {
	ox, oy := s.overflowPolicy(b)
	if !ox.MayScroll() && !oy.MayScroll() {
		return
	}
	box := s.boxes.Box(b)
	view := dimen.Point{X: box.ContentWidth().Unwrap(), Y: box.ContentHeight().Unwrap()}
	content := s.res.content[b]
	if content.X <= view.X && content.Y <= view.Y {
		return
	}
	s.res.Scrolls = append(s.res.Scrolls, ScrollNode{
		Box:     b,
		DOMNode: s.boxes.DOMNode(b),
		Content: content,
	})
	tracer().Debugf("layout: box %v is scrollable, content %v in viewport %v",
		b, content, view)
}

// --- Positioning ------------------------------------------------------------

// place assigns absolute coordinates top-down. origin is the absolute
// position of the parent's content box.
func (s *solver) place(b tree.NodeID, origin dimen.Point) {
	box := s.boxes.Box(b)
	box.TopL = origin.Shift(s.offset[b])
	if css.ParsePosition(s.property(b, "position")) == css.Relative &&
		s.boxes.Kind(b) == boxtree.PrincipalBox {
		box.TopL = box.TopL.Shift(s.relativeShift(b))
	}
	co := s.contentOrigin(box)
	for _, c := range s.boxes.Tree().Children(b) {
		if s.outOfFlow(c) {
			continue
		}
		s.place(c, co)
	}
}

func (s *solver) contentOrigin(box *frame.Box) dimen.Point {
	return dimen.Point{
		X: box.TopL.X + box.BorderWidth[frame.Left].Unwrap() + box.Padding[frame.Left].Unwrap(),
		Y: box.TopL.Y + box.BorderWidth[frame.Top].Unwrap() + box.Padding[frame.Top].Unwrap(),
	}
}

func (s *solver) relativeShift(b tree.NodeID) dimen.Point {
	env := s.env(b, 0)
	var shift dimen.Point
	if l, ok := css.DimenOption(s.property(b, "left")).Resolve(env); ok {
		shift.X = l
	} else if r, ok := css.DimenOption(s.property(b, "right")).Resolve(env); ok {
		shift.X = -r
	}
	if t, ok := css.DimenOption(s.property(b, "top")).Resolve(env); ok {
		shift.Y = t
	} else if bt, ok := css.DimenOption(s.property(b, "bottom")).Resolve(env); ok {
		shift.Y = -bt
	}
	return shift
}

// outOfFlow is true for absolutely or fixed positioned boxes, which do
// not take part in normal flow.
func (s *solver) outOfFlow(b tree.NodeID) bool {
	if s.boxes.Kind(b) != boxtree.PrincipalBox {
		return false
	}
	pos := css.ParsePosition(s.property(b, "position"))
	return pos == css.Absolute || pos == css.Fixed
}

// collectAbsolute sizes an out-of-flow box against its anchor and queues
// it for the final positioning pass.
func (s *solver) collectAbsolute(b tree.NodeID) {
	anchor := tree.NullID
	if css.ParsePosition(s.property(b, "position")) == css.Absolute {
		for p := s.boxes.Tree().Parent(b); !p.IsNull(); p = s.boxes.Tree().Parent(p) {
			if s.boxes.Kind(p) == boxtree.PrincipalBox &&
				css.ParsePosition(s.property(p, "position")).IsPositioned() {
				anchor = p
				break
			}
		}
		if anchor.IsNull() {
			anchor = s.boxes.Root()
		}
	}
	s.absolutes = append(s.absolutes, absEntry{box: b, anchor: anchor})
	cbW, cbH := s.viewport.X, s.viewport.Y
	if !anchor.IsNull() {
		abox := s.boxes.Box(anchor)
		if w := abox.BorderBoxWidth(); w.IsAbsolute() {
			cbW = w.Unwrap() - abox.BorderWidth[frame.Left].Unwrap() -
				abox.BorderWidth[frame.Right].Unwrap()
		}
		cbH = 0 // the anchor's height is not known yet
	}
	s.layoutBox(b, cbW, cbH)
}

// placeAbsolutes positions the queued out-of-flow boxes against their
// anchors' padding boxes, or against the viewport for fixed boxes.
func (s *solver) placeAbsolutes() {
	for _, e := range s.absolutes {
		pad := dimen.Rect{BotR: s.viewport}
		if !e.anchor.IsNull() {
			abox := s.boxes.Box(e.anchor)
			r := abox.BorderBoxRect()
			pad = dimen.Rect{
				TopL: dimen.Point{
					X: r.TopL.X + abox.BorderWidth[frame.Left].Unwrap(),
					Y: r.TopL.Y + abox.BorderWidth[frame.Top].Unwrap(),
				},
				BotR: dimen.Point{
					X: r.BotR.X - abox.BorderWidth[frame.Right].Unwrap(),
					Y: r.BotR.Y - abox.BorderWidth[frame.Bottom].Unwrap(),
				},
			}
		}
		box := s.boxes.Box(e.box)
		bbw := box.BorderBoxWidth().Unwrap()
		bbh := box.BorderBoxHeight().Unwrap()
		envW := s.env(e.box, pad.Width())
		envH := s.env(e.box, pad.Height())
		pos := dimen.Point{
			X: pad.TopL.X + box.Margins[frame.Left].Unwrap(),
			Y: pad.TopL.Y + box.Margins[frame.Top].Unwrap(),
		}
		if l, ok := css.DimenOption(s.property(e.box, "left")).Resolve(envW); ok {
			pos.X = pad.TopL.X + l + box.Margins[frame.Left].Unwrap()
		} else if r, ok := css.DimenOption(s.property(e.box, "right")).Resolve(envW); ok {
			pos.X = pad.BotR.X - r - bbw - box.Margins[frame.Right].Unwrap()
		}
		if t, ok := css.DimenOption(s.property(e.box, "top")).Resolve(envH); ok {
			pos.Y = pad.TopL.Y + t + box.Margins[frame.Top].Unwrap()
		} else if bt, ok := css.DimenOption(s.property(e.box, "bottom")).Resolve(envH); ok {
			pos.Y = pad.BotR.Y - bt - bbh - box.Margins[frame.Bottom].Unwrap()
		}
		box.TopL = pos
		co := s.contentOrigin(box)
		for _, c := range s.boxes.Tree().Children(e.box) {
			if s.outOfFlow(c) {
				continue
			}
			s.place(c, co)
		}
	}
}

// --- Small helpers ----------------------------------------------------------

func zeroAutoMargins(box *frame.Box) {
	for dir := frame.Top; dir <= frame.Left; dir++ {
		if !box.Margins[dir].IsAbsolute() {
			box.Margins[dir] = css.SomeDimen(0)
		}
	}
}

func decoW(box *frame.Box) dimen.DU {
	return box.Padding[frame.Left].Unwrap() + box.Padding[frame.Right].Unwrap() +
		box.BorderWidth[frame.Left].Unwrap() + box.BorderWidth[frame.Right].Unwrap()
}

func decoH(box *frame.Box) dimen.DU {
	return box.Padding[frame.Top].Unwrap() + box.Padding[frame.Bottom].Unwrap() +
		box.BorderWidth[frame.Top].Unwrap() + box.BorderWidth[frame.Bottom].Unwrap()
}

func marginsW(box *frame.Box) dimen.DU {
	var m dimen.DU
	if box.Margins[frame.Left].IsAbsolute() {
		m += box.Margins[frame.Left].Unwrap()
	}
	if box.Margins[frame.Right].IsAbsolute() {
		m += box.Margins[frame.Right].Unwrap()
	}
	return m
}
