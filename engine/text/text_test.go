package text_test

import (
	"math"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/text"
	"github.com/npillmayer/vitrine/engine/text/hyphen"
	"github.com/npillmayer/vitrine/engine/text/monospace"
	"github.com/npillmayer/vitrine/engine/text/parshape"
)

const em = 16 * dimen.PX

func testTypesetting() text.Typesetting {
	return text.Typesetting{
		Shaper:   monospace.Shaper(em, nil),
		LineSkip: 20 * dimen.PX,
	}
}

func TestItemizeWordsAndGlue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	items, err := text.Itemize("hello world", text.ItemizeOptions{})
	if err != nil {
		t.Fatalf(err.Error())
	}
	var boxes, glues int
	for _, item := range items {
		switch item.Type {
		case text.BoxItem:
			boxes++
		case text.GlueItem:
			glues++
		}
	}
	if boxes != 2 || glues != 1 {
		t.Errorf("expected 2 boxes and 1 glue, have %d and %d", boxes, glues)
	}
	if items[0].Text != "hello" || items[0].From != 0 || items[0].To != 5 {
		t.Errorf("expected first box 'hello' at [0,5), have '%s' at [%d,%d)",
			items[0].Text, items[0].From, items[0].To)
	}
}

func TestItemizeHyphenation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	dict := hyphen.NewDictionary(nil, []string{"hy-phen-a-tion"})
	items, err := text.Itemize("hyphenation", text.ItemizeOptions{Hyphenator: dict})
	if err != nil {
		t.Fatalf(err.Error())
	}
	var syllables []string
	var discs int
	for _, item := range items {
		switch item.Type {
		case text.BoxItem:
			syllables = append(syllables, item.Text)
		case text.DiscretionaryItem:
			discs++
		}
	}
	if len(syllables) != 4 || discs != 3 {
		t.Fatalf("expected 4 syllable boxes and 3 discretionaries, have %v and %d",
			syllables, discs)
	}
	if syllables[0] != "hy" || syllables[3] != "tion" {
		t.Errorf("unexpected syllables %v", syllables)
	}
}

func TestLayoutGreedyLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	shape := parshape.Rect(11*em, 200*dimen.PX)
	res, err := text.Layout("hello world again", shape, testTypesetting())
	if err != nil {
		t.Fatalf(err.Error())
	}
	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, have %d", len(res.Lines))
	}
	if res.Lines[0].Width != 11*em {
		t.Errorf("expected first line 11 em wide, have %v", res.Lines[0].Width)
	}
	if res.Lines[1].Width != 5*em {
		t.Errorf("expected second line 5 em wide, have %v", res.Lines[1].Width)
	}
	if res.Overflow {
		t.Errorf("nothing should overflow here")
	}
}

func TestLayoutJustify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	ts := testTypesetting()
	ts.Align = css.AlignJustify
	shape := parshape.Rect(10*em, 200*dimen.PX)
	res, err := text.Layout("aa bb cc dd", shape, ts)
	if err != nil {
		t.Fatalf(err.Error())
	}
	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, have %d", len(res.Lines))
	}
	// natural width 8 em; 2 em residual spread over 2 interior spaces
	if res.Lines[0].Width != 10*em {
		t.Errorf("expected justified line to fill 10 em, have %v", res.Lines[0].Width)
	}
	// the last line of a justified paragraph stays ragged
	if res.Lines[1].Width != 2*em {
		t.Errorf("expected ragged last line of 2 em, have %v", res.Lines[1].Width)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	input := "the quick brown fox jumps over the lazy dog"
	shape := parshape.Rect(12*em, 800*dimen.PX)
	res, err := text.Layout(input, shape, testTypesetting())
	if err != nil {
		t.Fatalf(err.Error())
	}
	type span struct{ from, to uint64 }
	var spans []span
	for _, line := range res.Lines {
		for _, g := range line.Glyphs {
			if g.From != g.To {
				spans = append(spans, span{g.From, g.To})
			}
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].from < spans[j].from })
	var pos uint64
	for _, s := range spans {
		if s.from != pos {
			t.Fatalf("glyph byte ranges have a gap at %d (next starts at %d)", pos, s.from)
		}
		pos = s.to
	}
	if pos != uint64(len(input)) {
		t.Errorf("glyph byte ranges cover %d of %d input bytes", pos, len(input))
	}
}

// Upright Mongolian text in a ring: at least one line inside the
// annulus, every glyph upright, advance along the y-axis.
func TestLayoutVerticalUprightInRing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	ts := testTypesetting()
	ts.WritingMode = css.VerticalLR
	ts.Orientation = css.OrientUpright
	shape := parshape.Ring(250*dimen.PX, 100*dimen.PX)
	res, err := text.Layout("ᠮᠣᠩᠭᠣᠯ", shape, ts)
	if err != nil {
		t.Fatalf(err.Error())
	}
	if len(res.Lines) < 1 {
		t.Fatalf("expected at least one line")
	}
	if res.Overflow {
		t.Fatalf("content should fit the ring")
	}
	center := float64(250 * dimen.PX)
	var lastY dimen.DU = -1
	for _, line := range res.Lines {
		for _, g := range line.Glyphs {
			if !g.Upright {
				t.Errorf("expected every glyph upright, glyph %v is not", g.CodePoint)
			}
			if g.Pos.Y <= lastY {
				t.Errorf("expected advance along the y-axis, positions %v then %v",
					lastY, g.Pos.Y)
			}
			lastY = g.Pos.Y
			dx := float64(g.Pos.X) - center
			dy := float64(g.Pos.Y) - center
			if dist := math.Sqrt(dx*dx + dy*dy); dist > float64(250*dimen.PX) {
				t.Errorf("glyph at %v lies outside the outer circle", g.Pos)
			}
		}
	}
}

func TestLayoutOverflowAlwaysProducesResult(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	// a segment too narrow for the smallest atom
	shape := parshape.Rect(2*em, 60*dimen.PX)
	res, err := text.Layout("unbreakable", shape, testTypesetting())
	if err != nil {
		t.Fatalf(err.Error())
	}
	if !res.Overflow {
		t.Errorf("expected the overflow flag to be set")
	}
	if len(res.Lines) != 1 || res.Lines[0].Width != 0 {
		t.Errorf("expected one zero-width line for the unplaceable content")
	}
}

func TestCombineUprightDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	ts := testTypesetting()
	ts.WritingMode = css.VerticalRL
	ts.Orientation = css.OrientMixed
	ts.CombineUpright = 4
	shape := parshape.Rect(400*dimen.PX, 400*dimen.PX)
	res, err := text.Layout("平成31年", shape, ts)
	if err != nil {
		t.Fatalf(err.Error())
	}
	var glyphs []text.PositionedGlyph
	for _, line := range res.Lines {
		glyphs = append(glyphs, line.Glyphs...)
	}
	if len(glyphs) != 5 {
		t.Fatalf("expected 5 glyphs, have %d", len(glyphs))
	}
	// "31" packs into one slot: the second digit advances zero
	if glyphs[2].CodePoint != '3' || glyphs[3].CodePoint != '1' {
		t.Fatalf("unexpected glyph order %v", glyphs)
	}
	if glyphs[3].Pos.Y != glyphs[2].Pos.Y {
		t.Errorf("expected combined digits at the same block position, have %v and %v",
			glyphs[2].Pos.Y, glyphs[3].Pos.Y)
	}
	if !glyphs[0].Upright || !glyphs[4].Upright {
		t.Errorf("expected ideographs upright under mixed orientation")
	}
}

func TestUprightClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	if !text.UprightInVerticalText('漢') {
		t.Errorf("ideographs stand upright in vertical text")
	}
	if text.UprightInVerticalText('a') {
		t.Errorf("latin letters rotate in vertical text under mixed orientation")
	}
	if text.UprightInVerticalText('ᠮ') {
		t.Errorf("mongolian rotates under mixed orientation")
	}
}
