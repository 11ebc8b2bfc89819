package render

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/frame/layout"
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

func solve(t *testing.T, doc *dom.Document) *layout.Result {
	res, err := layout.Solve(doc, viewport)
	if err != nil {
		t.Fatalf(err.Error())
	}
	return res
}

func TestEmitBackgroundRect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.render")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "400px"})
	child := styled(doc, root, "div", map[string]string{
		"height": "100px", "background-color": "red",
	})
	res := solve(t, doc)
	list := Emit(res, Options{})
	var rect *Rect
	for _, cmd := range list.Commands {
		if r, ok := cmd.(Rect); ok && r.Color == "red" {
			rect = &r
			break
		}
	}
	if rect == nil {
		t.Fatalf("expected a background rect for the red child")
	}
	want := res.BorderBoxRect(res.Boxes.BoxForDOMNode(child))
	if rect.Bounds != want {
		t.Errorf("expected background bounds %v, have %v", want, rect.Bounds)
	}
}

func TestEmitClipAndScrollFrame(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.render")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", nil)
	scroller := styled(doc, root, "div", map[string]string{
		"width": "100px", "height": "50px", "overflow-y": "scroll",
	})
	styled(doc, scroller, "div", map[string]string{"height": "200px"})
	res := solve(t, doc)
	list := Emit(res, Options{
		Offsets: map[tree.NodeID]dimen.Point{scroller: {Y: 30 * dimen.PX}},
	})
	pushes, pops := 0, 0
	var frame *ScrollFrame
	for _, cmd := range list.Commands {
		switch c := cmd.(type) {
		case PushClip:
			pushes++
		case PopClip:
			pops++
		case ScrollFrame:
			frame = &c
		}
	}
	if pushes == 0 || pushes != pops {
		t.Errorf("expected balanced clip commands, have %d pushes and %d pops", pushes, pops)
	}
	if frame == nil {
		t.Fatalf("expected a scroll frame for the overflowing container")
	}
	if frame.Node != scroller {
		t.Errorf("expected the scroll frame tagged with the scroller, have %v", frame.Node)
	}
	if frame.Offset.Y != 30*dimen.PX {
		t.Errorf("expected the current offset carried in the frame, have %v", frame.Offset.Y)
	}
}

func TestEmitGlyphRunWithTextCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.render")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "200px"})
	doc.AddText(root, "hello")
	res := solve(t, doc)
	list := Emit(res, Options{})
	var run *GlyphRun
	for _, cmd := range list.Commands {
		if g, ok := cmd.(GlyphRun); ok {
			run = &g
			break
		}
	}
	if run == nil {
		t.Fatalf("expected a glyph run for the text content")
	}
	if len(run.Glyphs) != len("hello") {
		t.Errorf("expected 5 glyphs, have %d", len(run.Glyphs))
	}
	hits := list.HitTest(dimen.Point{X: 8 * dimen.PX, Y: 8 * dimen.PX})
	if len(hits) < 2 {
		t.Fatalf("expected box and text run hit, have %v", hits)
	}
	last := hits[len(hits)-1]
	if last.Cursor != css.CursorText {
		t.Errorf("expected the text run to carry the caret cursor, have %v", last.Cursor)
	}
	if last.Depth <= hits[0].Depth {
		t.Errorf("expected the text run one level below its paragraph box")
	}
}

func TestHitTestDepthMonotone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.render")
	defer teardown()
	//
	doc := dom.NewDocument()
	root := styled(doc, tree.NullID, "div", map[string]string{"width": "400px"})
	outer := styled(doc, root, "div", map[string]string{"height": "100px"})
	inner := styled(doc, outer, "div", map[string]string{"height": "50px"})
	res := solve(t, doc)
	list := Emit(res, Options{})
	hits := list.HitTest(dimen.Point{X: 10 * dimen.PX, Y: 10 * dimen.PX})
	if len(hits) != 3 {
		t.Fatalf("expected 3 nested hits, have %v", hits)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Depth < hits[i-1].Depth {
			t.Fatalf("hit depth decreased: %v", hits)
		}
	}
	if hits[len(hits)-1].Node != inner {
		t.Errorf("expected the deepest hit to be the innermost box")
	}
}
