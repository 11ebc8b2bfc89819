package boxtree

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/tree"
)

func buildDoc(t *testing.T, markup string) *dom.Document {
	doc, err := dom.FromHTML(strings.NewReader(markup))
	if err != nil {
		t.Fatalf(err.Error())
	}
	return doc
}

func domNodeWithTag(doc *dom.Document, tag string) tree.NodeID {
	found := tree.NullID
	doc.Tree().Walk(doc.Root(), func(n tree.NodeID) bool {
		if found.IsNull() && doc.Tag(n) == tag {
			found = n
		}
		return found.IsNull()
	})
	return found
}

func TestBoxTreeDropsDisplayNone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := buildDoc(t, `<html><head><title>x</title></head><body>
	  <div style="display: none"><p>invisible</p></div>
	  <p>visible</p>
	</body></html>`)
	boxes, err := BuildBoxTree(doc)
	if err != nil {
		t.Fatalf(err.Error())
	}
	if !boxes.BoxForDOMNode(domNodeWithTag(doc, "head")).IsNull() {
		t.Errorf("expected <head> to produce no box")
	}
	if !boxes.BoxForDOMNode(domNodeWithTag(doc, "div")).IsNull() {
		t.Errorf("expected display:none <div> to produce no box")
	}
	p := boxes.BoxForDOMNode(domNodeWithTag(doc, "p"))
	if p.IsNull() {
		t.Fatalf("expected <p> to produce a box")
	}
	if boxes.Kind(p) != PrincipalBox {
		t.Errorf("expected a principal box for <p>, have %v", boxes.Kind(p))
	}
}

func TestBoxTreeAnonymousWrapper(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := buildDoc(t, `<html><body>
	  some text
	  <div>block</div>
	</body></html>`)
	boxes, err := BuildBoxTree(doc)
	if err != nil {
		t.Fatalf(err.Error())
	}
	body := boxes.BoxForDOMNode(domNodeWithTag(doc, "body"))
	children := boxes.Tree().Children(body)
	if len(children) != 2 {
		t.Fatalf("expected 2 children of <body> box, have %d", len(children))
	}
	if boxes.Kind(children[0]) != AnonymousBox {
		t.Errorf("expected inline run to be wrapped in anonymous box, have %v",
			boxes.Kind(children[0]))
	}
	if boxes.Display(children[0]).Outer() != css.BlockMode {
		t.Errorf("expected anonymous wrapper to be block-level")
	}
	if boxes.Kind(children[1]) != PrincipalBox {
		t.Errorf("expected <div> to stay a direct child")
	}
	// anonymous boxes delegate their DOM reference to the principal parent
	if boxes.DOMNode(children[0]) != boxes.DOMNode(body) {
		t.Errorf("expected anonymous box to report its parent's DOM node")
	}
}

func TestBoxTreeNoWrapperForPureInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := buildDoc(t, `<html><body><p>one <b>two</b> three</p></body></html>`)
	boxes, err := BuildBoxTree(doc)
	if err != nil {
		t.Fatalf(err.Error())
	}
	p := boxes.BoxForDOMNode(domNodeWithTag(doc, "p"))
	for _, ch := range boxes.Tree().Children(p) {
		if boxes.Kind(ch) == AnonymousBox {
			t.Errorf("pure inline content must not be wrapped")
		}
	}
}

func TestBoxTreeFlexItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := buildDoc(t, `<html><body>
	  <div style="display: flex">
	    loose text
	    <span>item</span>
	    <div>block item</div>
	  </div>
	</body></html>`)
	boxes, err := BuildBoxTree(doc)
	if err != nil {
		t.Fatalf(err.Error())
	}
	flexbox := boxes.BoxForDOMNode(domNodeWithTag(doc, "div"))
	if !boxes.Display(flexbox).Contains(css.InnerFlexMode) {
		t.Fatalf("expected flex container")
	}
	for _, ch := range boxes.Tree().Children(flexbox) {
		if boxes.Display(ch).Outer() != css.BlockMode {
			t.Errorf("every flex item has to be block-level, have %v",
				boxes.Display(ch).FullString())
		}
	}
}

func TestBoxTreeStyledDimensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	doc := buildDoc(t, `<html><body>
	  <div style="width: 200px; padding: 10px; box-sizing: border-box">x</div>
	</body></html>`)
	boxes, err := BuildBoxTree(doc)
	if err != nil {
		t.Fatalf(err.Error())
	}
	div := boxes.BoxForDOMNode(domNodeWithTag(doc, "div"))
	box := boxes.Box(div)
	if !box.BorderBoxSizing {
		t.Errorf("expected border-box sizing")
	}
	if !box.W.IsAbsolute() || box.W.Unwrap() != 200*dimen.PX {
		t.Errorf("expected width 200px, have %v", box.W)
	}
	if box.Padding[2].Unwrap() != 10*dimen.PX { // bottom
		t.Errorf("expected padding shorthand to expand, have %v", box.Padding[2])
	}
	if w := box.ContentWidth(); w.Unwrap() != 180*dimen.PX {
		t.Errorf("expected content width 180px, have %v", w)
	}
}
