package layout

import (
	"io"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/text"
	"github.com/npillmayer/vitrine/engine/text/cache"
	"github.com/npillmayer/vitrine/engine/text/monospace"
	"github.com/npillmayer/vitrine/engine/tree"
)

var viewport = dimen.Point{X: 800 * dimen.PX, Y: 600 * dimen.PX}

func styled(doc *dom.Document, parent tree.NodeID, tag string,
	styles map[string]string) tree.NodeID {
	//
	id := doc.AddElement(parent, tag)
	for k, v := range styles {
		doc.SetStyleProperty(id, k, style.Property(v))
	}
	return id
}

func TestSolveMarginCollapsing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "400px"})
	a := styled(doc, root, "div", map[string]string{
		"height": "50px", "margin-bottom": "20px",
	})
	b := styled(doc, root, "div", map[string]string{
		"height": "50px", "margin-top": "30px",
	})
	res, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	ra := res.BorderBoxRect(res.Boxes.BoxForDOMNode(a))
	rb := res.BorderBoxRect(res.Boxes.BoxForDOMNode(b))
	if gap := rb.TopL.Y - ra.BotR.Y; gap != 30*dimen.PX {
		t.Errorf("expected margins 20px/30px to collapse to a 30px gap, have %v", gap)
	}
}

func TestSolveFlexShrinkToMinContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", nil)
	flexbox := styled(doc, root, "div", map[string]string{
		"display": "flex", "width": "100px",
	})
	itemA := styled(doc, flexbox, "div", map[string]string{"flex-grow": "1"})
	styled(doc, itemA, "div", map[string]string{"width": "60px", "height": "10px"})
	itemB := styled(doc, flexbox, "div", map[string]string{"flex-grow": "1"})
	styled(doc, itemB, "div", map[string]string{"width": "60px", "height": "10px"})
	res, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	ra := res.BorderBoxRect(res.Boxes.BoxForDOMNode(itemA))
	rb := res.BorderBoxRect(res.Boxes.BoxForDOMNode(itemB))
	if ra.Width() != 60*dimen.PX || rb.Width() != 60*dimen.PX {
		t.Errorf("expected both items shrunk no further than min-content 60px, have %v and %v",
			ra.Width(), rb.Width())
	}
	if rb.TopL.X-ra.TopL.X != 60*dimen.PX {
		t.Errorf("expected items laid out side by side, have %v and %v", ra, rb)
	}
	fb := res.Boxes.BoxForDOMNode(flexbox)
	if res.ContentSize(fb).X != 120*dimen.PX {
		t.Errorf("expected the container to overflow to 120px of content, have %v",
			res.ContentSize(fb).X)
	}
	if res.BorderBoxRect(fb).Width() != 100*dimen.PX {
		t.Errorf("expected the container itself to keep its 100px, have %v",
			res.BorderBoxRect(fb).Width())
	}
}

func TestSolveInlineContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "200px"})
	doc.AddText(root, "hello world")
	res, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	rb := res.Boxes.Root()
	inline, ok := res.Inline[rb]
	if !ok {
		t.Fatalf("expected an inline layout result for the paragraph box")
	}
	if len(inline.Lines) != 1 {
		t.Errorf("expected a single line, have %d", len(inline.Lines))
	}
	if inline.BlockUsed <= 0 {
		t.Errorf("expected the line to consume block space")
	}
	box := res.Boxes.Box(rb)
	if h := box.ContentHeight(); h.Unwrap() != inline.BlockUsed {
		t.Errorf("expected the box height to follow the inline extent %v, have %v",
			inline.BlockUsed, h)
	}
}

func TestSolveScrollRegistration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", nil)
	scroller := styled(doc, root, "div", map[string]string{
		"width": "100px", "height": "50px", "overflow-y": "scroll",
	})
	styled(doc, scroller, "div", map[string]string{"height": "200px"})
	res, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	if len(res.Scrolls) != 1 {
		t.Fatalf("expected one scroll node, have %d", len(res.Scrolls))
	}
	sc := res.Scrolls[0]
	if sc.Box != res.Boxes.BoxForDOMNode(scroller) {
		t.Errorf("expected the overflowing container registered, have box %v", sc.Box)
	}
	if sc.Content.Y != 200*dimen.PX {
		t.Errorf("expected 200px of scrollable content, have %v", sc.Content.Y)
	}
	if sc.Viewport.Height() != 50*dimen.PX {
		t.Errorf("expected a 50px scroll viewport, have %v", sc.Viewport.Height())
	}
}

func TestSolveIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "400px"})
	styled(doc, root, "div", map[string]string{"height": "50px", "margin-bottom": "20px"})
	inner := styled(doc, root, "div", map[string]string{"padding-left": "10px"})
	doc.AddText(inner, "some inline content for the second run")
	res1, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	res2, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	n := res1.Boxes.Tree().Count()
	if n != res2.Boxes.Tree().Count() {
		t.Fatalf("expected identical box trees")
	}
	for i := 0; i < n; i++ {
		b := tree.NodeID(i)
		if res1.BorderBoxRect(b) != res2.BorderBoxRect(b) {
			t.Errorf("box %v moved between runs: %v then %v", b,
				res1.BorderBoxRect(b), res2.BorderBoxRect(b))
		}
	}
}

func paginationFixture(t *testing.T) (*Result, map[string]tree.NodeID) {
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{
		"width": "400px", "height": "300px",
	})
	a := styled(doc, root, "div", map[string]string{"margin-top": "50px", "height": "50px"})
	b := styled(doc, root, "div", map[string]string{"margin-top": "50px", "height": "50px"})
	c := styled(doc, root, "div", map[string]string{"margin-top": "50px", "height": "40px"})
	res, err := Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	return res, map[string]tree.NodeID{
		"root": res.Boxes.BoxForDOMNode(root),
		"a":    res.Boxes.BoxForDOMNode(a),
		"b":    res.Boxes.BoxForDOMNode(b),
		"c":    res.Boxes.BoxForDOMNode(c),
	}
}

func pageContains(p Page, b tree.NodeID) bool {
	for _, n := range p.Nodes {
		if n == b {
			return true
		}
	}
	return false
}

func TestPaginateTallAncestor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	res, boxes := paginationFixture(t)
	pages := Paginate(res, 100*dimen.PX)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, have %d", len(pages))
	}
	want := [][]string{{"root", "a"}, {"root", "b"}, {"root", "c"}}
	for i, page := range pages {
		if len(page.Nodes) != len(want[i]) {
			t.Errorf("page %d: expected nodes %v, have %v", i, want[i], page.Nodes)
			continue
		}
		for _, name := range want[i] {
			if !pageContains(page, boxes[name]) {
				t.Errorf("page %d: expected to contain %s", i, name)
			}
		}
	}
}

func TestPaginateCoversEveryBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	res, _ := paginationFixture(t)
	pages := Paginate(res, 64*dimen.PX) // a page height cutting through boxes
	covered := make(map[tree.NodeID]bool)
	for _, page := range pages {
		for _, n := range page.Nodes {
			covered[n] = true
		}
	}
	res.Boxes.Tree().Walk(res.Boxes.Root(), func(b tree.NodeID) bool {
		if r := res.BorderBoxRect(b); !r.IsEmpty() && !covered[b] {
			t.Errorf("box %v with bounds %v appears on no page", b, r)
		}
		return true
	})
}

type countingShaper struct {
	text.Shaper
	calls int
}

func (cs *countingShaper) Shape(r io.RuneReader, glyphs []text.ShapedGlyph,
	context [][]rune, params text.Params) (text.GlyphSequence, error) {
	//
	cs.calls++
	return cs.Shaper.Shape(r, glyphs, context, params)
}

func TestSolveInlineResultCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "200px"})
	doc.AddText(root, "hello world")
	cs := &countingShaper{Shaper: monospace.Shaper(16*dimen.PX, nil)}
	opts := Options{Shaper: cs, Cache: cache.New(8)}
	res, err := SolveWith(doc, viewport, opts)
	if err != nil {
		t.Fatalf(err.Error())
	}
	if cs.calls == 0 {
		t.Fatalf("expected the first solve to shape the paragraph")
	}
	shaped := cs.calls
	res, err = SolveWith(doc, viewport, opts)
	if err != nil {
		t.Fatalf(err.Error())
	}
	if cs.calls != shaped {
		t.Errorf("expected the second solve to hit the cache, have %d extra shaper calls",
			cs.calls-shaped)
	}
	if len(res.Inline) == 0 {
		t.Errorf("expected the cached inline result in the layout")
	}
}
