package text

import (
	"unicode"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/core/font"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/text/hyphen"
	"github.com/npillmayer/vitrine/engine/text/parshape"
	"golang.org/x/text/language"
)

// Typesetting collects the parameters governing inline layout of a
// paragraph.
type Typesetting struct {
	Font            *font.TypeCase
	Shaper          Shaper
	Script          language.Script
	Language        language.Tag
	WritingMode     css.WritingMode
	Orientation     css.TextOrientation
	Align           css.TextAlign
	LineSkip        dimen.DU // baseline-to-baseline distance; 0 chooses 6∕5 em
	CombineUpright  int      // pack up to N digits into one upright slot; 0 = off
	Hyphenator      *hyphen.Dictionary
	MinHyphenLength int
}

// PositionedGlyph is a glyph placed at a physical position, traceable
// back to a byte interval of the source text.
type PositionedGlyph struct {
	ShapedGlyph
	Pos      dimen.Point // physical position of the glyph origin
	From, To uint64      // logical byte range in the source text
	Upright  bool        // glyph stands upright in vertical text
}

// Line is the record for one typeset line.
type Line struct {
	Bounds   dimen.Rect // physical bounding box
	Baseline dimen.DU   // block-axis position of the baseline
	Width    dimen.DU   // inline extent of the visible content
	From, To uint64     // byte interval of the source text covered
	Glyphs   []PositionedGlyph
}

// Result is the output of inline layout: a flat, ordered list of
// positioned glyphs plus per-line records.
type Result struct {
	Lines       []Line
	BlockUsed   dimen.DU // block-axis extent consumed
	Overflow    bool     // some content did not fit its segment
	WritingMode css.WritingMode
}

// Layout typesets a text inside a shape. It itemizes the input, shapes
// the items, breaks them into lines fitting the shape's segments, and
// aligns or justifies each line.
func Layout(input string, shape parshape.Shape, ts Typesetting) (*Result, error) {
	items, err := Itemize(input, ItemizeOptions{
		Hyphenator:      ts.Hyphenator,
		MinHyphenLength: ts.MinHyphenLength,
	})
	if err != nil {
		return nil, err
	}
	eng := &engine{ts: ts, shape: shape}
	if err = eng.measure(items); err != nil {
		return nil, err
	}
	eng.breakIntoLines()
	eng.mapToPhysical()
	tracer().Infof("inline layout: %d lines, block extent %s", len(eng.result.Lines),
		eng.result.BlockUsed)
	return &eng.result, nil
}

// IntrinsicWidths computes the min-content and max-content inline
// extents of a text: the widest unbreakable atom and the natural width
// of the text typeset without any line break.
func IntrinsicWidths(input string, ts Typesetting) (minW, maxW dimen.DU, err error) {
	items, err := Itemize(input, ItemizeOptions{
		Hyphenator:      ts.Hyphenator,
		MinHyphenLength: ts.MinHyphenLength,
	})
	if err != nil {
		return 0, 0, err
	}
	eng := &engine{ts: ts}
	if err = eng.measure(items); err != nil {
		return 0, 0, err
	}
	for _, it := range eng.items {
		switch it.Type {
		case BoxItem:
			minW = max(minW, it.ext)
			maxW += it.ext
		case GlueItem:
			maxW += it.ext
		}
	}
	// a trailing space does not stretch the natural width
	maxW -= trailingGlueExtent(eng.items)
	return minW, maxW, nil
}

// measured is an item together with its shaping result.
type measured struct {
	Item
	seq GlyphSequence
	ext dimen.DU // extent along the inline progression axis
}

type engine struct {
	ts     Typesetting
	shape  parshape.Shape
	items  []measured
	hyphen measured // a shaped "-", appended at discretionary breaks
	result Result
}

func (eng *engine) params(dir Direction) Params {
	return Params{
		Font:      eng.ts.Font,
		Direction: dir,
		Script:    eng.ts.Script,
		Language:  eng.ts.Language,
	}
}

func (eng *engine) shapingDirection(item Item) Direction {
	if eng.ts.WritingMode.IsVertical() {
		return TopToBottom
	}
	if item.Dir == RightToLeft {
		return RightToLeft
	}
	return LeftToRight
}

// measure shapes every box and glue item and records inline extents.
func (eng *engine) measure(items []Item) error {
	eng.items = make([]measured, len(items))
	for i, item := range items {
		m := measured{Item: item}
		if item.Type == BoxItem || item.Type == GlueItem {
			dir := eng.shapingDirection(item)
			seq, err := eng.ts.Shaper.Shape(item.reader(), nil, nil, eng.params(dir))
			if err != nil {
				return err
			}
			seq = classifyGlyphs(seq)
			if eng.ts.WritingMode.IsVertical() && eng.ts.CombineUpright > 0 {
				seq = eng.combineUpright(seq, item.Text)
			}
			m.seq = seq
			m.ext = seq.InlineExtent(dir)
		}
		eng.items[i] = m
	}
	seq, err := eng.ts.Shaper.Shape(Item{Text: "-"}.reader(), nil, nil,
		eng.params(LeftToRight))
	if err != nil {
		return err
	}
	eng.hyphen = measured{Item: Item{Type: BoxItem, Text: "-"}, seq: seq,
		ext: seq.InlineExtent(LeftToRight)}
	return nil
}

// combineUpright packs runs of consecutive digits into a single upright
// slot: the run's glyphs advance zero so they share a position, and the
// last one carries the slot advance to move the pen past it.
func (eng *engine) combineUpright(seq GlyphSequence, text string) GlyphSequence {
	runs := combineDigits([]rune(text), eng.ts.CombineUpright)
	if len(runs) == 0 {
		return seq
	}
	var slot dimen.DU
	for _, g := range seq.Glyphs {
		if a := abs(g.XAdvance); a > slot {
			slot = a
		}
	}
	for start, n := range runs {
		for i := range seq.Glyphs {
			c := seq.Glyphs[i].ClusterID
			if c < start || c >= start+n {
				continue
			}
			// digits of a run share one slot; the run's last glyph
			// carries the whole advance
			if c == start+n-1 {
				seq.Glyphs[i].XAdvance = slot
				seq.Glyphs[i].YAdvance = slot
			} else {
				seq.Glyphs[i].XAdvance = 0
				seq.Glyphs[i].YAdvance = 0
			}
		}
	}
	return seq
}

func (eng *engine) lineskip() dimen.DU {
	if eng.ts.LineSkip > 0 {
		return eng.ts.LineSkip
	}
	em := 10 * dimen.PT
	if eng.ts.Font != nil {
		em = dimen.DU(eng.ts.Font.PtSize() * float64(dimen.PT))
	}
	return em * 6 / 5
}

// breakIntoLines walks the block axis band by band, fills the shape's
// segments greedily and emits lines in logical coordinates.
func (eng *engine) breakIntoLines() {
	lineskip := eng.lineskip()
	blockPos := dimen.DU(0)
	i := 0
	barren := 0 // consecutive bands without progress
	for i < len(eng.items) {
		if ext := eng.shape.BlockExtent(); ext < dimen.Infty && blockPos+lineskip > ext {
			// shape exhausted; force-place the rest as overflow
			eng.emitOverflow(i, blockPos, lineskip)
			return
		}
		progressed := false
		for _, seg := range eng.shape.LineExtents(blockPos, lineskip) {
			if i >= len(eng.items) {
				break
			}
			line, next, ok := eng.fillSegment(seg, blockPos, lineskip, i)
			if !ok {
				continue // segment too narrow, try the next one
			}
			eng.result.Lines = append(eng.result.Lines, line)
			i = next
			progressed = true
		}
		blockPos += lineskip
		if progressed {
			barren = 0
			continue
		}
		barren++
		if barren > maxBarrenBands {
			// no segment can host the smallest atom
			eng.emitOverflow(i, blockPos, lineskip)
			return
		}
	}
	eng.result.BlockUsed = blockPos
}

// maxBarrenBands bounds the search for a band with a usable segment in
// unbounded shapes.
const maxBarrenBands = 512

// emitOverflow places all remaining items on one zero-width line and
// flags the result. Layout always produces a result.
func (eng *engine) emitOverflow(i int, blockPos, lineskip dimen.DU) {
	eng.result.Overflow = true
	if i < len(eng.items) {
		line := eng.emitLine(eng.items[i:], parshape.Segment{}, blockPos, lineskip, false, false)
		line.Width = 0
		eng.result.Lines = append(eng.result.Lines, line)
	}
	eng.result.BlockUsed = blockPos + lineskip
	tracer().Infof("inline layout overflows its shape")
}

// fillSegment fits as many items as possible into a segment, breaking
// at the last feasible penalty. ok is false if not even the first box
// fits.
func (eng *engine) fillSegment(seg parshape.Segment, blockPos, lineskip dimen.DU,
	start int) (Line, int, bool) {
	//
	avail := seg.Extent()
	width := dimen.DU(0)
	lastBreak := -1
	hyphenBreak := false
	sawBox := false
	atEnd := true
scan:
	for j := start; j < len(eng.items); j++ {
		it := eng.items[j]
		switch it.Type {
		case BoxItem:
			width += it.ext
			sawBox = true
			if width > avail {
				if lastBreak < 0 {
					return Line{}, start, false // first box overflows
				}
				atEnd = false
				break scan
			}
		case GlueItem:
			if sawBox { // leading glue is invisible
				width += it.ext
			}
		case PenaltyItem, DiscretionaryItem:
			if !it.Breakable() {
				continue
			}
			eff := width - trailingGlueExtent(eng.items[start:j])
			if it.Type == DiscretionaryItem {
				eff += eng.hyphen.ext
			}
			if eff <= avail {
				lastBreak = j
				hyphenBreak = it.Type == DiscretionaryItem
				continue
			}
			if lastBreak < 0 {
				return Line{}, start, false
			}
			atEnd = false
			break scan
		}
	}
	if atEnd {
		// a mandatory break at the end of the item stream
		eff := width - trailingGlueExtent(eng.items[start:])
		if eff <= avail {
			lastBreak, hyphenBreak = len(eng.items)-1, false
		} else if lastBreak < 0 {
			return Line{}, start, false
		}
	}
	if lastBreak < 0 {
		return Line{}, start, false
	}
	lineItems := eng.items[start : lastBreak+1]
	isLast := lastBreak+1 >= len(eng.items)
	line := eng.emitLine(lineItems, seg, blockPos, lineskip, hyphenBreak, isLast)
	return line, lastBreak + 1, true
}

// trailingGlueExtent sums the extent of glue items at the tail of an
// item run; such glue is dropped at a line break.
func trailingGlueExtent(items []measured) dimen.DU {
	var ext dimen.DU
	for k := len(items) - 1; k >= 0; k-- {
		switch items[k].Type {
		case GlueItem:
			ext += items[k].ext
		case PenaltyItem, DiscretionaryItem:
			continue
		default:
			return ext
		}
	}
	return ext
}

// emitLine produces a line record with positioned glyphs in logical
// coordinates: Pos.X is the inline position, Pos.Y the block position
// of the glyph baseline.
func (eng *engine) emitLine(items []measured, seg parshape.Segment,
	blockPos, lineskip dimen.DU, hyphenBreak, lastLine bool) Line {
	//
	natural := dimen.DU(0)
	sawBox := false
	for _, it := range items {
		if it.Type == BoxItem {
			natural += it.ext
			sawBox = true
		} else if it.Type == GlueItem && sawBox {
			natural += it.ext
		}
	}
	natural -= trailingGlueExtent(items)
	if hyphenBreak {
		natural += eng.hyphen.ext
	}
	residual := seg.Extent() - natural
	if residual < 0 {
		residual = 0
	}
	shift, perGap := eng.distribute(items, residual, lastLine)
	baseline := blockPos + eng.ascent(items, lineskip)
	lineStart := seg.Min + shift
	cursor := lineStart
	line := Line{
		Baseline: baseline,
		From:     ^uint64(0),
	}
	trailing := len(items) - trailingLen(items)
	for k, it := range items {
		switch it.Type {
		case BoxItem:
			cursor = eng.emitGlyphs(&line, it, cursor, baseline, false, perGap)
		case GlueItem:
			invisible := k >= trailing || !sawBoxBefore(items, k)
			cursor = eng.emitGlueGlyphs(&line, it, cursor, baseline, invisible, perGap)
		}
		if it.Type == BoxItem || it.Type == GlueItem {
			if it.From < line.From {
				line.From = it.From
			}
			if it.To > line.To {
				line.To = it.To
			}
		}
	}
	if hyphenBreak {
		pos := items[len(items)-1].To
		hy := eng.hyphen
		hy.From, hy.To = pos, pos
		cursor = eng.emitGlyphs(&line, hy, cursor, baseline, false, 0)
	}
	if line.From == ^uint64(0) {
		line.From, line.To = 0, 0
	}
	line.Width = cursor - lineStart
	line.Bounds = dimen.Rect{
		TopL: dimen.Point{X: lineStart, Y: blockPos},
		BotR: dimen.Point{X: cursor, Y: blockPos + lineskip},
	}
	return line
}

func sawBoxBefore(items []measured, k int) bool {
	for j := 0; j < k; j++ {
		if items[j].Type == BoxItem {
			return true
		}
	}
	return false
}

func trailingLen(items []measured) int {
	n := 0
	for k := len(items) - 1; k >= 0; k-- {
		switch items[k].Type {
		case GlueItem, PenaltyItem, DiscretionaryItem:
			n++
		default:
			return n
		}
	}
	return n
}

// distribute computes the line's start shift and the per-gap expansion
// for justification.
func (eng *engine) distribute(items []measured, residual dimen.DU,
	lastLine bool) (shift, perGap dimen.DU) {
	//
	switch eng.ts.Align {
	case css.AlignEnd:
		return residual, 0
	case css.AlignCenter:
		return residual / 2, 0
	case css.AlignJustify:
		if lastLine {
			return 0, 0
		}
		gaps := eng.justifiableGaps(items)
		if gaps == 0 {
			return 0, 0
		}
		return 0, residual / dimen.DU(gaps)
	}
	return 0, 0
}

// justifiableGaps counts the expansion points of a line: interior glue
// and gaps between CJK glyphs.
func (eng *engine) justifiableGaps(items []measured) int {
	gaps := 0
	trailing := len(items) - trailingLen(items)
	for k, it := range items {
		if it.Type == GlueItem && k < trailing && sawBoxBefore(items, k) {
			gaps++
		}
		if it.Type == BoxItem {
			gaps += cjkGaps(it.seq)
		}
	}
	return gaps
}

func cjkGaps(seq GlyphSequence) int {
	gaps := 0
	for i := 1; i < len(seq.Glyphs); i++ {
		if seq.Glyphs[i-1].Class == ClassCJK && seq.Glyphs[i].Class == ClassCJK {
			gaps++
		}
	}
	return gaps
}

// emitGlyphs appends the glyphs of a box item to a line, advancing the
// cursor. Gaps between adjacent CJK glyphs receive the per-gap
// justification expansion. Invisible glyphs (trailing glue handling)
// keep their logical byte ranges but do not advance.
func (eng *engine) emitGlyphs(line *Line, it measured, cursor, baseline dimen.DU,
	invisible bool, perGap dimen.DU) dimen.DU {
	//
	runeOffsets := runeByteOffsets(it.Text)
	glyphs := it.seq.Glyphs
	upAll := eng.ts.WritingMode.IsVertical() && eng.ts.Orientation == css.OrientUpright
	for gi := 0; gi < len(glyphs); gi++ {
		g := glyphs[gi]
		from, to := glyphByteRange(glyphs, gi, runeOffsets, it.From)
		pg := PositionedGlyph{
			ShapedGlyph: g,
			Pos:         dimen.Point{X: cursor, Y: baseline},
			From:        from,
			To:          to,
			Upright: upAll || GlyphUpright(g.CodePoint, eng.ts.WritingMode,
				eng.ts.Orientation) ||
				(eng.ts.CombineUpright > 0 && eng.ts.WritingMode.IsVertical() &&
					unicode.IsDigit(g.CodePoint)),
		}
		line.Glyphs = append(line.Glyphs, pg)
		if invisible {
			continue
		}
		cursor += glyphInlineAdvance(g, eng.ts.WritingMode)
		if gi+1 < len(glyphs) && g.Class == ClassCJK &&
			glyphs[gi+1].Class == ClassCJK {
			cursor += perGap
		}
	}
	return cursor
}

// emitGlueGlyphs appends the glyphs of a glue item, possibly expanded
// for justification.
func (eng *engine) emitGlueGlyphs(line *Line, it measured, cursor, baseline dimen.DU,
	invisible bool, perGap dimen.DU) dimen.DU {
	//
	c := eng.emitGlyphs(line, it, cursor, baseline, invisible, 0)
	if !invisible {
		c += perGap
	}
	return c
}

// glyphInlineAdvance returns a glyph's advance along the inline axis.
func glyphInlineAdvance(g ShapedGlyph, mode css.WritingMode) dimen.DU {
	if mode.IsVertical() && g.YAdvance != 0 {
		return abs(g.YAdvance)
	}
	return g.XAdvance
}

// runeByteOffsets returns the byte offset of every rune of a string,
// plus the total length as a final entry.
func runeByteOffsets(s string) []int {
	offs := make([]int, 0, len(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	offs = append(offs, len(s))
	return offs
}

// glyphByteRange maps a glyph to the byte interval of its cluster. A
// cluster's bytes span from its first rune to the next cluster's first
// rune.
func glyphByteRange(glyphs []ShapedGlyph, gi int, offs []int, base uint64) (uint64, uint64) {
	cluster := glyphs[gi].ClusterID
	if cluster >= len(offs)-1 {
		return base + uint64(offs[len(offs)-1]), base + uint64(offs[len(offs)-1])
	}
	next := len(offs) - 1
	for j := gi + 1; j < len(glyphs); j++ {
		if glyphs[j].ClusterID != cluster {
			if glyphs[j].ClusterID < next {
				next = glyphs[j].ClusterID
			}
			break
		}
	}
	if gi > 0 && glyphs[gi-1].ClusterID == cluster {
		// non-initial glyph of a cluster owns no bytes
		return base + uint64(offs[cluster]), base + uint64(offs[cluster])
	}
	return base + uint64(offs[cluster]), base + uint64(offs[next])
}

// ascent estimates the baseline offset within a line band from the
// shaped heights of its items.
func (eng *engine) ascent(items []measured, lineskip dimen.DU) dimen.DU {
	var h dimen.DU
	for _, it := range items {
		if it.seq.H > h {
			h = it.seq.H
		}
	}
	if h == 0 || h > lineskip {
		return lineskip * 4 / 5
	}
	return h
}

// mapToPhysical transforms logical glyph positions and line bounds to
// physical coordinates according to the writing mode.
func (eng *engine) mapToPhysical() {
	mode := eng.ts.WritingMode
	eng.result.WritingMode = mode
	if eng.result.BlockUsed == 0 {
		if n := len(eng.result.Lines); n > 0 {
			eng.result.BlockUsed = eng.result.Lines[n-1].Bounds.BotR.Y
		}
	}
	if !mode.IsVertical() {
		return // logical coordinates are physical ones
	}
	total := eng.shape.BlockExtent()
	if total >= dimen.Infty {
		total = eng.result.BlockUsed
	}
	for li := range eng.result.Lines {
		line := &eng.result.Lines[li]
		line.Bounds = mapRect(line.Bounds, mode, total)
		for gi := range line.Glyphs {
			p := line.Glyphs[gi].Pos
			line.Glyphs[gi].Pos = mapPoint(p, mode, total)
		}
	}
}

// mapPoint maps a logical (inline, block) position to physical (x, y).
func mapPoint(p dimen.Point, mode css.WritingMode, total dimen.DU) dimen.Point {
	switch mode {
	case css.VerticalRL:
		return dimen.Point{X: total - p.Y, Y: p.X}
	case css.VerticalLR:
		return dimen.Point{X: p.Y, Y: p.X}
	}
	return p
}

func mapRect(r dimen.Rect, mode css.WritingMode, total dimen.DU) dimen.Rect {
	a := mapPoint(r.TopL, mode, total)
	b := mapPoint(r.BotR, mode, total)
	return dimen.Rect{
		TopL: dimen.Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		BotR: dimen.Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

func min(a, b dimen.DU) dimen.DU {
	if a < b {
		return a
	}
	return b
}

func max(a, b dimen.DU) dimen.DU {
	if a > b {
		return a
	}
	return b
}
