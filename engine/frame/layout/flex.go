package layout

import (
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/frame"
	"github.com/npillmayer/vitrine/engine/tree"
)

// flexItem is the solver's working record for one flex item. Main-axis
// sizes are border-box sizes.
type flexItem struct {
	box                          tree.NodeID
	order                        int
	grow, shrink                 float64
	base                         dimen.DU // flex base size
	min, max                     dimen.DU // main-size bounds
	main                         dimen.DU // hypothetical, then resolved main size
	mainPos                      dimen.DU // main-axis border-box position
	cross                        dimen.DU // margin-box cross size
	ascent                       dimen.DU // baseline distance from border-box top
	marginStart, marginEnd       dimen.DU // main-axis margins
	autoStart, autoEnd           bool
	crossStart, crossEnd         dimen.DU // cross-axis margins
	autoCrossStart, autoCrossEnd bool
	autoCross                    bool // cross size was auto before layout
	violation                    dimen.DU
	frozen                       bool
}

func (it *flexItem) outer() dimen.DU {
	return it.main + it.marginStart + it.marginEnd
}

// layoutFlex runs the flex algorithm for a flex container and returns
// the container's content height.
func (s *solver) layoutFlex(b tree.NodeID) dimen.DU {
	box := s.boxes.Box(b)
	var cw, chFixed dimen.DU
	hasCH := false
	if w := box.ContentWidth(); w.IsAbsolute() {
		cw = w.Unwrap()
	}
	if h := box.ContentHeight(); h.IsAbsolute() {
		chFixed = h.Unwrap()
		hasCH = true
	}
	dir := string(s.property(b, "flex-direction"))
	row := isRowDirection(dir)
	reverse := strings.HasSuffix(dir, "-reverse")
	wrap := strings.HasPrefix(string(s.property(b, "flex-wrap")), "wrap")
	mainSize := cw
	if !row {
		mainSize = 0
		if hasCH {
			mainSize = chFixed
		}
	}
	items := s.collectFlexItems(b, cw, chFixed, row)
	if len(items) == 0 {
		s.res.content[b] = dimen.Point{}
		return 0
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })
	lines := buildFlexLines(items, mainSize, wrap)
	for _, line := range lines {
		resolveFlexibleLengths(line, mainSize)
	}
	// fix the resolved main sizes and lay out the items' contents
	for _, it := range items {
		cbox := s.boxes.Box(it.box)
		if row {
			w := it.main
			if !cbox.BorderBoxSizing {
				w -= decoW(cbox)
			}
			cbox.W = css.SomeDimen(dimen.Max(w, 0))
			s.layoutContents(it.box, chFixed)
			it.cross = it.crossStart + it.crossEnd
			if bb := cbox.BorderBoxHeight(); bb.IsAbsolute() {
				it.cross += bb.Unwrap()
			}
			it.ascent = s.flexAscent(it.box)
		} else {
			h := it.main
			if !cbox.BorderBoxSizing {
				h -= decoH(cbox)
			}
			cbox.H = css.SomeDimen(dimen.Max(h, 0))
			it.cross = it.crossStart + it.crossEnd
			if bb := cbox.BorderBoxWidth(); bb.IsAbsolute() {
				it.cross += bb.Unwrap()
			}
		}
	}
	crossTotal, maxMain := s.placeFlexLines(b, lines, mainSize, row, reverse, hasCH, cw, chFixed)
	if row {
		s.res.content[b] = dimen.Point{X: maxMain, Y: crossTotal}
		return crossTotal
	}
	s.res.content[b] = dimen.Point{X: crossTotal, Y: maxMain}
	return maxMain
}

// collectFlexItems resolves order, flex factors, base sizes and bounds
// for the in-flow children of a flex container.
func (s *solver) collectFlexItems(b tree.NodeID, cw, ch dimen.DU, row bool) []*flexItem {
	var items []*flexItem
	for _, c := range s.boxes.Tree().Children(b) {
		if s.outOfFlow(c) {
			s.collectAbsolute(c)
			continue
		}
		cbox := s.boxes.Box(c)
		if cbox.H.IsPercent() {
			if du, ok := cbox.H.Resolve(css.Env{Contain: ch}); ok && ch > 0 {
				cbox.H = css.SomeDimen(du)
			} else {
				cbox.H = css.AutoDimen()
			}
		}
		cbox.ResolveUnits(s.env(c, cw))
		it := &flexItem{
			box:    c,
			order:  intProperty(s.property(c, "order"), 0),
			grow:   floatProperty(s.property(c, "flex-grow"), 0),
			shrink: floatProperty(s.property(c, "flex-shrink"), 1),
		}
		ms, me, cs, ce := frame.Left, frame.Right, frame.Top, frame.Bottom
		if !row {
			ms, me, cs, ce = frame.Top, frame.Bottom, frame.Left, frame.Right
		}
		it.marginStart, it.autoStart = marginValue(cbox.Margins[ms])
		it.marginEnd, it.autoEnd = marginValue(cbox.Margins[me])
		it.crossStart, it.autoCrossStart = marginValue(cbox.Margins[cs])
		it.crossEnd, it.autoCrossEnd = marginValue(cbox.Margins[ce])
		if row {
			it.autoCross = !cbox.H.IsAbsolute()
		} else {
			it.autoCross = !cbox.W.IsAbsolute()
			// the item's width resolves against the container's cross axis
			s.layoutBox(c, cw, ch)
		}
		it.base = s.flexBaseSize(c, cw, ch, row)
		it.min, it.max = s.flexMainBounds(c, row)
		it.main = dimen.Clamp(it.base, it.min, it.max)
		items = append(items, it)
	}
	return items
}

// flexBaseSize determines an item's flex base size per its flex-basis
// property, falling back to the main-size property and then to the
// max-content size.
func (s *solver) flexBaseSize(c tree.NodeID, cw, ch dimen.DU, row bool) dimen.DU {
	cbox := s.boxes.Box(c)
	basis := css.DimenOption(s.property(c, "flex-basis"))
	mainContain := cw
	if !row {
		mainContain = ch
	}
	switch {
	case basis.IsAbsolute():
		return borderMain(cbox, basis.Unwrap(), row)
	case basis.IsPercent():
		if du, ok := basis.Resolve(css.Env{Contain: mainContain}); ok && mainContain > 0 {
			return borderMain(cbox, du, row)
		}
	}
	if row && cbox.W.IsAbsolute() {
		if cbox.BorderBoxSizing {
			return cbox.W.Unwrap()
		}
		return cbox.W.Unwrap() + decoW(cbox)
	}
	if !row {
		if bb := cbox.BorderBoxHeight(); bb.IsAbsolute() {
			return bb.Unwrap()
		}
		return 0
	}
	_, maxW := s.intrinsicWidths(c)
	return maxW
}

// flexMainBounds returns the min/max main-size bounds of an item. An
// unset min-width resolves to the min-content size, the automatic
// minimum of flex items.
func (s *solver) flexMainBounds(c tree.NodeID, row bool) (min, max dimen.DU) {
	cbox := s.boxes.Box(c)
	max = dimen.Infty
	if row {
		if cbox.Min.W.IsAbsolute() {
			min = borderMain(cbox, cbox.Min.W.Unwrap(), row)
		} else {
			min, _ = s.intrinsicWidths(c)
		}
		if cbox.Max.W.IsAbsolute() {
			max = borderMain(cbox, cbox.Max.W.Unwrap(), row)
		}
	} else {
		if cbox.Min.H.IsAbsolute() {
			min = borderMain(cbox, cbox.Min.H.Unwrap(), row)
		}
		if cbox.Max.H.IsAbsolute() {
			max = borderMain(cbox, cbox.Max.H.Unwrap(), row)
		}
	}
	if max < min {
		max = min
	}
	return min, max
}

// borderMain converts a content-box main size to a border-box size,
// honoring box-sizing.
func borderMain(box *frame.Box, v dimen.DU, row bool) dimen.DU {
	if box.BorderBoxSizing {
		return v
	}
	if row {
		return v + decoW(box)
	}
	return v + decoH(box)
}

// buildFlexLines partitions items into flex lines, greedily breaking
// when the next item no longer fits.
func buildFlexLines(items []*flexItem, mainSize dimen.DU, wrap bool) [][]*flexItem {
	if !wrap || mainSize <= 0 {
		return [][]*flexItem{items}
	}
	var lines [][]*flexItem
	var line []*flexItem
	var used dimen.DU
	for _, it := range items {
		if len(line) > 0 && used+it.outer() > mainSize {
			lines = append(lines, line)
			line, used = nil, 0
		}
		line = append(line, it)
		used += it.outer()
	}
	return append(lines, line)
}

// resolveFlexibleLengths distributes free space on a flex line by the
// items' grow or shrink factors, clamping to min/max bounds and
// re-distributing after each clamping violation.
func resolveFlexibleLengths(line []*flexItem, mainSize dimen.DU) {
	var outer dimen.DU
	for _, it := range line {
		outer += it.outer()
	}
	grow := outer < mainSize
	for _, it := range line {
		it.frozen = (grow && (it.grow == 0 || it.base > it.main)) ||
			(!grow && (it.shrink == 0 || it.base < it.main))
	}
	for {
		var unfrozen []*flexItem
		for _, it := range line {
			if !it.frozen {
				unfrozen = append(unfrozen, it)
			}
		}
		if len(unfrozen) == 0 {
			return
		}
		free := float64(mainSize)
		for _, it := range line {
			free -= float64(it.marginStart + it.marginEnd)
			if it.frozen {
				free -= float64(it.main)
			} else {
				free -= float64(it.base)
			}
		}
		var sumGrow, sumScaled float64
		for _, it := range unfrozen {
			sumGrow += it.grow
			sumScaled += it.shrink * float64(it.base)
		}
		var total dimen.DU
		for _, it := range unfrozen {
			target := float64(it.base)
			if grow && free > 0 && sumGrow > 0 {
				target += free * it.grow / sumGrow
			} else if !grow && free < 0 && sumScaled > 0 {
				target += free * (it.shrink * float64(it.base)) / sumScaled
			}
			clamped := dimen.Clamp(dimen.DU(target), it.min, it.max)
			it.violation = clamped - dimen.DU(target)
			it.main = clamped
			total += it.violation
		}
		switch {
		case total > 0:
			for _, it := range unfrozen {
				if it.violation > 0 {
					it.frozen = true
				}
			}
		case total < 0:
			for _, it := range unfrozen {
				if it.violation < 0 {
					it.frozen = true
				}
			}
		default:
			for _, it := range unfrozen {
				it.frozen = true
			}
		}
	}
}

// placeFlexLines assigns main- and cross-axis offsets, honoring
// justify-content, align-items/align-self, align-content, and auto
// margins. It returns the total cross extent and the largest main-axis
// extent of any line.
func (s *solver) placeFlexLines(b tree.NodeID, lines [][]*flexItem, mainSize dimen.DU,
	row, reverse, hasCH bool, cw, chFixed dimen.DU) (crossTotal, maxMain dimen.DU) {
	//
	align := string(s.property(b, "align-items"))
	if align == "" {
		align = "stretch"
	}
	containerCross := dimen.Zero
	crossFixed := false
	if row && hasCH {
		containerCross, crossFixed = chFixed, true
	} else if !row {
		containerCross, crossFixed = cw, true
	}
	// cross size and baseline per line
	crosses := make([]dimen.DU, len(lines))
	ascents := make([]dimen.DU, len(lines))
	for li, line := range lines {
		var lc, asc dimen.DU
		for _, it := range line {
			if row && s.itemAlign(it.box, align) == "baseline" {
				asc = dimen.Max(asc, it.ascent+it.crossStart)
			}
		}
		for _, it := range line {
			need := it.cross
			if row && s.itemAlign(it.box, align) == "baseline" {
				need += asc - (it.ascent + it.crossStart)
			}
			lc = dimen.Max(lc, need)
		}
		crosses[li], ascents[li] = lc, asc
		crossTotal += lc
	}
	if len(lines) == 1 && crossFixed {
		crosses[0] = dimen.Max(crosses[0], containerCross)
		crossTotal = crosses[0]
	} else if crossFixed && crossTotal < containerCross {
		extra := containerCross - crossTotal
		switch string(s.property(b, "align-content")) {
		case "flex-start", "start", "flex-end", "end", "center",
			"space-between", "space-around":
			// handled below through line offsets
		default: // stretch
			per := extra / dimen.DU(len(lines))
			for li := range crosses {
				crosses[li] += per
			}
			crossTotal = containerCross
		}
	}
	lineLead, lineGap := dimen.Zero, dimen.Zero
	if crossFixed && crossTotal < containerCross {
		lineLead, lineGap = justifyOffsets(string(s.property(b, "align-content")),
			containerCross-crossTotal, len(lines))
	}
	lineStart := lineLead
	for li, line := range lines {
		s.placeFlexLine(line, mainSize, row, reverse, align, lineStart, crosses[li], ascents[li])
		for _, it := range line {
			maxMain = dimen.Max(maxMain, it.mainPos+it.main+it.marginEnd)
		}
		lineStart += crosses[li] + lineGap
	}
	return crossTotal, maxMain
}

// placeFlexLine distributes main-axis free space of one line into auto
// margins and justify-content gaps, and aligns items on the cross axis.
func (s *solver) placeFlexLine(line []*flexItem, mainSize dimen.DU,
	row, reverse bool, align string, lineStart, lineCross, lineAscent dimen.DU) {
	//
	var used dimen.DU
	autoCount := 0
	for _, it := range line {
		used += it.outer()
		if it.autoStart {
			autoCount++
		}
		if it.autoEnd {
			autoCount++
		}
	}
	free := mainSize - used
	if mainSize <= 0 {
		free = 0
	}
	var autoPad dimen.DU
	if free > 0 && autoCount > 0 {
		autoPad = free / dimen.DU(autoCount)
		free = 0
	}
	justify := ""
	if len(line) > 0 {
		justify = string(s.property(s.boxes.Tree().Parent(line[0].box), "justify-content"))
	}
	lead, between := justifyOffsets(justify, free, len(line))
	cursor := lead
	for _, it := range line {
		cursor += it.marginStart
		if it.autoStart {
			cursor += autoPad
		}
		it.mainPos = cursor
		cursor += it.main + it.marginEnd
		if it.autoEnd {
			cursor += autoPad
		}
		cursor += between
	}
	if reverse && mainSize > 0 {
		for _, it := range line {
			it.mainPos = mainSize - it.mainPos - it.main
		}
	}
	for _, it := range line {
		a := s.itemAlign(it.box, align)
		if a == "stretch" && it.autoCross && !it.autoCrossStart && !it.autoCrossEnd {
			s.stretchCross(it, lineCross, row)
		}
		inner := lineCross - it.cross
		var off dimen.DU
		switch {
		case it.autoCrossStart && it.autoCrossEnd:
			off = inner / 2
		case it.autoCrossStart:
			off = inner
		case it.autoCrossEnd:
			off = 0
		default:
			switch a {
			case "flex-end", "end":
				off = inner
			case "center":
				off = inner / 2
			case "baseline":
				if row {
					off = lineAscent - (it.ascent + it.crossStart)
				}
			}
		}
		crossPos := lineStart + off + it.crossStart
		if row {
			s.offset[it.box] = dimen.Point{X: it.mainPos, Y: crossPos}
		} else {
			s.offset[it.box] = dimen.Point{X: crossPos, Y: it.mainPos}
		}
	}
}

// stretchCross grows an auto-sized item to fill the line's cross size.
func (s *solver) stretchCross(it *flexItem, lineCross dimen.DU, row bool) {
	cbox := s.boxes.Box(it.box)
	target := lineCross - it.crossStart - it.crossEnd
	if target < 0 {
		target = 0
	}
	if row {
		h := target
		if !cbox.BorderBoxSizing {
			h -= decoH(cbox)
		}
		cbox.H = css.SomeDimen(cbox.ClampHeight(dimen.Max(h, 0)))
	} else {
		w := target
		if !cbox.BorderBoxSizing {
			w -= decoW(cbox)
		}
		cbox.W = css.SomeDimen(cbox.ClampWidth(dimen.Max(w, 0)))
	}
	it.cross = it.crossStart + it.crossEnd + target
}

// flexAscent returns an item's first baseline, synthesized from its
// border-box bottom when the item has no inline content.
func (s *solver) flexAscent(b tree.NodeID) dimen.DU {
	box := s.boxes.Box(b)
	if res, ok := s.res.Inline[b]; ok && len(res.Lines) > 0 {
		return res.Lines[0].Baseline + box.BorderWidth[frame.Top].Unwrap() +
			box.Padding[frame.Top].Unwrap()
	}
	if bb := box.BorderBoxHeight(); bb.IsAbsolute() {
		return bb.Unwrap()
	}
	return 0
}

func (s *solver) itemAlign(c tree.NodeID, containerAlign string) string {
	a := string(s.property(c, "align-self"))
	if a == "" || a == "auto" {
		return containerAlign
	}
	return a
}

// justifyOffsets translates a justify-content (or align-content) policy
// into a leading offset and an inter-item gap.
func justifyOffsets(justify string, free dimen.DU, n int) (lead, between dimen.DU) {
	switch justify {
	case "flex-end", "end":
		return free, 0
	case "center":
		return free / 2, 0
	case "space-between":
		if n > 1 && free > 0 {
			return 0, free / dimen.DU(n-1)
		}
	case "space-around":
		if free > 0 {
			pad := free / dimen.DU(n)
			return pad / 2, pad
		}
	case "space-evenly":
		if free > 0 {
			pad := free / dimen.DU(n+1)
			return pad, pad
		}
	}
	return 0, 0
}

// --- Property helpers -------------------------------------------------------

func isRowDirection(dir string) bool {
	return dir == "" || strings.HasPrefix(dir, "row")
}

func marginValue(m css.DimenT) (dimen.DU, bool) {
	if m.IsAbsolute() {
		return m.Unwrap(), false
	}
	return 0, m.IsAuto()
}

func floatProperty(p style.Property, fallback float64) float64 {
	if p == style.NullStyle {
		return fallback
	}
	f, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return fallback
	}
	return f
}

func intProperty(p style.Property, fallback int) int {
	if p == style.NullStyle {
		return fallback
	}
	i, err := strconv.Atoi(string(p))
	if err != nil {
		return fallback
	}
	return i
}
