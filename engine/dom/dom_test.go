package dom

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/engine/dom/cssom"
	"github.com/npillmayer/vitrine/engine/dom/cssom/douceuradapter"
	"github.com/npillmayer/vitrine/engine/tree"
)

const myhtml = `
<html><head>
<style>
  p { color: red; }
  .hot { background-color: orange; }
</style>
</head><body>
  <p class="hot" style="margin-top: 10px">Hello <b>World</b>!</p>
</body></html>
`

func buildDoc(t *testing.T, markup string) *Document {
	doc, err := FromHTML(strings.NewReader(markup))
	if err != nil {
		t.Fatalf(err.Error())
	}
	return doc
}

func firstWithTag(doc *Document, tag string) tree.NodeID {
	found := tree.NullID
	doc.Tree().Walk(doc.Root(), func(n tree.NodeID) bool {
		if found.IsNull() && doc.Tag(n) == tag {
			found = n
		}
		return found.IsNull()
	})
	return found
}

func TestFromHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc := buildDoc(t, myhtml)
	if doc.Tag(doc.Root()) != "html" {
		t.Errorf("expected root to be <html>, have <%s>", doc.Tag(doc.Root()))
	}
	p := firstWithTag(doc, "p")
	if p.IsNull() {
		t.Fatalf("no <p> in document")
	}
	if color := doc.GetProperty(p, "color"); color != "red" {
		t.Errorf("expected <p> color to be red, have %v", color)
	}
	if bg := doc.GetProperty(p, "background-color"); bg != "orange" {
		t.Errorf("expected class rule to set background orange, have %v", bg)
	}
	if m := doc.GetProperty(p, "margin-top"); m != "10px" {
		t.Errorf("expected inline style margin of 10px, have %v", m)
	}
}

func TestPropertyInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc := buildDoc(t, myhtml)
	b := firstWithTag(doc, "b")
	if b.IsNull() {
		t.Fatalf("no <b> in document")
	}
	// color inherits from <p>, font-weight comes from the UA styles for <b>
	if color := doc.GetProperty(b, "color"); color != "red" {
		t.Errorf("expected <b> to inherit red from <p>, have %v", color)
	}
	if fw := doc.GetProperty(b, "font-weight"); fw != "bold" {
		t.Errorf("expected <b> to default to bold, have %v", fw)
	}
	// margins do not inherit
	if m := doc.GetProperty(b, "margin-top"); m != "0" {
		t.Errorf("expected <b> margin-top not to inherit, have %v", m)
	}
}

func TestInheritedValueDefeatsUADefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	markup := `<html><head><style>
	   body { font-weight: normal }
	</style></head><body><h1>Title</h1></body></html>`
	doc := buildDoc(t, markup)
	h1 := firstWithTag(doc, "h1")
	// strict cascade: the explicit value on body is inherited by h1 and
	// wins against the user-agent default `h1 { font-weight: bold }`
	if fw := doc.GetProperty(h1, "font-weight"); fw != "normal" {
		t.Errorf("expected inherited normal weight on <h1>, have %v", fw)
	}
	if fs := doc.GetProperty(h1, "font-size"); fs != "2em" {
		t.Errorf("expected UA default font-size 2em on <h1>, have %v", fs)
	}
}

func TestImportantDeclaration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	markup := `<html><head><style>
	   p { color: green !important }
	</style></head><body><p style="color: blue">x</p></body></html>`
	doc := buildDoc(t, markup)
	p := firstWithTag(doc, "p")
	if color := doc.GetProperty(p, "color"); color != "green" {
		t.Errorf("expected !important author color to win over inline, have %v", color)
	}
}

func TestDetachedNodeYieldsInitialValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc := buildDoc(t, myhtml)
	detached := tree.NodeID(9999)
	if w := doc.GetProperty(detached, "width"); w != "auto" {
		t.Errorf("expected initial width for detached node, have %v", w)
	}
	if c := doc.GetProperty(detached, "color"); c != "black" {
		t.Errorf("expected initial color for detached node, have %v", c)
	}
}

func TestProgrammaticDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc := NewDocument()
	root := doc.AddElement(tree.NullID, "div")
	doc.SetStyleProperty(root, "color", "navy")
	span := doc.AddElement(root, "span")
	doc.AddText(span, "hello")
	if color := doc.GetProperty(span, "color"); color != "navy" {
		t.Errorf("expected span to inherit navy, have %v", color)
	}
	if disp := doc.GetProperty(span, "display"); disp != "inline" {
		t.Errorf("expected span display inline, have %v", disp)
	}
}

func TestCommitChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc := buildDoc(t, myhtml)
	p := firstWithTag(doc, "p")
	b := firstWithTag(doc, "b")
	if color := doc.GetProperty(b, "color"); color != "red" {
		t.Fatalf("expected <b> to start out red, have %v", color)
	}
	doc.PushChange(p, "color", "purple")
	if doc.GetProperty(b, "color") != "red" {
		t.Errorf("queued change must not be observable before commit")
	}
	commit := doc.CommitChanges()
	if commit.Relayout {
		t.Errorf("color change should not require relayout")
	}
	if len(commit.Restyled) != 1 || commit.Restyled[0] != p {
		t.Errorf("expected exactly <p> to be restyled, have %v", commit.Restyled)
	}
	// the cached inherited value on <b> has to be invalidated, too
	if color := doc.GetProperty(b, "color"); color != "purple" {
		t.Errorf("expected <b> to inherit purple after commit, have %v", color)
	}
	doc.PushChange(p, "width", "120px")
	if commit = doc.CommitChanges(); !commit.Relayout {
		t.Errorf("width change should require relayout")
	}
}

func TestCallbacksAndFocus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc := buildDoc(t, myhtml)
	p := firstWithTag(doc, "p")
	if doc.HasCallbacks(p) {
		t.Errorf("no callbacks registered yet")
	}
	fired := false
	doc.SetCallback(p, MouseDown, func(e Event) { fired = true })
	if cb := doc.Callback(p, MouseDown); cb == nil {
		t.Fatalf("callback not registered")
	} else {
		cb(Event{Type: MouseDown, Target: p})
	}
	if !fired {
		t.Errorf("callback did not fire")
	}
	if doc.Focusable(p) {
		t.Errorf("<p> with mouse callback only should not be focusable")
	}
	doc.SetTabIndex(p, 1)
	if !doc.Focusable(p) {
		t.Errorf("<p> with explicit tab index should be focusable")
	}
}

func TestAuthorStylesheetParameter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	sheet, err := douceuradapter.Parse("b { color: maroon }")
	if err != nil {
		t.Fatalf(err.Error())
	}
	var extra cssom.StyleSheet = sheet
	doc, err := FromHTML(strings.NewReader(myhtml), extra)
	if err != nil {
		t.Fatalf(err.Error())
	}
	b := firstWithTag(doc, "b")
	if color := doc.GetProperty(b, "color"); color != "maroon" {
		t.Errorf("expected color from extra stylesheet, have %v", color)
	}
}
