/*
Package boxtree produces a tree of CSS boxes from a styled document.

The box tree mirrors the document hierarchy, with three deviations:

▪︎ nodes with `display: none` are dropped, together with their subtrees;

▪︎ text nodes become text boxes, which are always inline-level;

▪︎ anonymous block boxes are created where a container holds both
block-level and inline-level children ("if a container box has a
block-level box inside it, then we force it to have only block-level
boxes inside it"), and around inline runs inside flex containers, which
know only flex items.

Anonymous boxes are not stylable by the user; they inherit through their
principal box.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package boxtree

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vitrine/core"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/frame"
	"github.com/npillmayer/vitrine/engine/tree"
)

// tracer traces with key 'vitrine.frame'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.frame")
}

// BoxKind distinguishes the kinds of boxes in the box tree.
type BoxKind uint8

// Box kinds.
const (
	PrincipalBox BoxKind = iota // styled box for a DOM element node
	AnonymousBox                // created to reconcile block/inline levels
	TextBox                     // references a DOM text node
)

func (k BoxKind) String() string {
	switch k {
	case AnonymousBox:
		return "anonymous"
	case TextBox:
		return "text"
	}
	return "principal"
}

// BoxTree is the tree of boxes generated for a styled document, stored
// as parallel arrays over an index tree.
type BoxTree struct {
	tree    *tree.Tree
	doc     *dom.Document
	kinds   []BoxKind
	domRef  []tree.NodeID // referenced DOM node; NullID for anonymous boxes
	display []css.DisplayMode
	boxes   []*frame.Box
}

// BuildBoxTree creates a box tree from a styled document.
func BuildBoxTree(doc *dom.Document) (*BoxTree, error) {
	if doc == nil || doc.Root().IsNull() {
		return nil, core.Error(core.EMISSING, "no document to build box tree for")
	}
	boxes := &BoxTree{tree: tree.NewTree(doc.Tree().Count()), doc: doc}
	root := doc.Root()
	mode := displayModeForNode(doc, root)
	if mode.Contains(css.DisplayNone) {
		return nil, core.Error(core.EINVALID, "document root is display:none")
	}
	rootbox := boxes.appendBox(tree.NullID, PrincipalBox, root, mode)
	boxes.buildChildren(rootbox, root)
	tracer().Infof("boxtree: built %d boxes for %d document nodes",
		boxes.tree.Count(), doc.Tree().Count())
	return boxes, nil
}

// buildChildren appends boxes for the DOM children of domnode under
// parentbox, inserting anonymous block boxes where necessary.
func (bt *BoxTree) buildChildren(parentbox tree.NodeID, domnode tree.NodeID) {
	type chinfo struct {
		node tree.NodeID
		mode css.DisplayMode
	}
	var children []chinfo
	hasBlock, hasInline := false, false
	for ch := bt.doc.Tree().FirstChild(domnode); !ch.IsNull(); ch = bt.doc.Tree().NextSibling(ch) {
		mode := displayModeForNode(bt.doc, ch)
		if mode.Contains(css.DisplayNone) {
			continue
		}
		if mode.Outer() == css.BlockMode {
			hasBlock = true
		} else {
			hasInline = true
		}
		children = append(children, chinfo{ch, mode})
	}
	parentMode := bt.display[parentbox]
	// flex containers know only flex items; flow containers only need
	// wrapping when block- and inline-level children are mixed
	wrapInlines := parentMode.Contains(css.InnerFlexMode) && hasInline ||
		hasBlock && hasInline
	anon := tree.NullID
	for _, ch := range children {
		if wrapInlines && ch.mode.Outer() == css.InlineMode {
			if anon.IsNull() {
				anon = bt.appendBox(parentbox, AnonymousBox, tree.NullID,
					css.BlockMode|css.InnerInlineMode)
				tracer().Debugf("boxtree: anonymous block box wraps inline run")
			}
			bt.appendSubtree(anon, ch.node, ch.mode)
			continue
		}
		anon = tree.NullID // inline run ends here
		bt.appendSubtree(parentbox, ch.node, ch.mode)
	}
}

// appendSubtree appends the box for a DOM node and recurses into its
// children.
func (bt *BoxTree) appendSubtree(parentbox tree.NodeID, domnode tree.NodeID, mode css.DisplayMode) {
	kind := PrincipalBox
	if bt.doc.Kind(domnode) == dom.TextNode {
		kind = TextBox
	}
	box := bt.appendBox(parentbox, kind, domnode, mode)
	if kind != TextBox {
		bt.buildChildren(box, domnode)
	}
}

func (bt *BoxTree) appendBox(parent tree.NodeID, kind BoxKind, domRef tree.NodeID,
	mode css.DisplayMode) tree.NodeID {
	//
	id := bt.tree.AppendChild(parent)
	bt.kinds = append(bt.kinds, kind)
	bt.domRef = append(bt.domRef, domRef)
	bt.display = append(bt.display, mode)
	box := frame.InitEmptyBox(nil)
	if kind == PrincipalBox {
		styleBox(bt.doc, domRef, box)
	}
	bt.boxes = append(bt.boxes, box)
	return id
}

// displayModeForNode determines the display mode of a DOM node: inline
// for text, the computed `display` property for elements.
func displayModeForNode(doc *dom.Document, n tree.NodeID) css.DisplayMode {
	if doc.Kind(n) == dom.TextNode {
		return css.InlineMode | css.InnerInlineMode
	}
	return css.DisplayModeOption(doc.GetProperty(n, "display"))
}

// styleBox fills the dimension fields of a box from the computed style
// properties of a DOM node. Relative units stay unresolved; the layout
// solver resolves them against its environment.
func styleBox(doc *dom.Document, n tree.NodeID, box *frame.Box) {
	box.W = css.DimenOption(doc.GetProperty(n, "width"))
	box.H = css.DimenOption(doc.GetProperty(n, "height"))
	box.Min.W = css.DimenOption(doc.GetProperty(n, "min-width"))
	box.Min.H = css.DimenOption(doc.GetProperty(n, "min-height"))
	box.Max.W = css.DimenOption(doc.GetProperty(n, "max-width"))
	box.Max.H = css.DimenOption(doc.GetProperty(n, "max-height"))
	box.BorderBoxSizing = doc.GetProperty(n, "box-sizing") == "border-box"
	dirs := [4]string{"top", "right", "bottom", "left"}
	for dir, name := range dirs {
		box.Padding[dir] = css.DimenOption(doc.GetProperty(n, "padding-"+name))
		box.BorderWidth[dir] = css.DimenOption(doc.GetProperty(n, "border-"+name+"-width"))
		box.Margins[dir] = css.DimenOption(doc.GetProperty(n, "margin-"+name))
	}
}

// --- Accessors -------------------------------------------------------------

// Tree returns the box hierarchy.
func (bt *BoxTree) Tree() *tree.Tree {
	return bt.tree
}

// Root returns the root box.
func (bt *BoxTree) Root() tree.NodeID {
	return bt.tree.Root()
}

// Document returns the styled document this box tree was generated from.
func (bt *BoxTree) Document() *dom.Document {
	return bt.doc
}

// Kind returns the kind of a box.
func (bt *BoxTree) Kind(b tree.NodeID) BoxKind {
	if !bt.tree.Contains(b) {
		return AnonymousBox
	}
	return bt.kinds[b]
}

// DOMNode returns the DOM node a box refers to. Anonymous boxes refer to
// the DOM node of their nearest principal ancestor.
func (bt *BoxTree) DOMNode(b tree.NodeID) tree.NodeID {
	for bt.tree.Contains(b) {
		if !bt.domRef[b].IsNull() {
			return bt.domRef[b]
		}
		b = bt.tree.Parent(b)
	}
	return tree.NullID
}

// Box returns the CSS box of a box-tree node.
func (bt *BoxTree) Box(b tree.NodeID) *frame.Box {
	if !bt.tree.Contains(b) {
		return nil
	}
	return bt.boxes[b]
}

// Display returns the display mode of a box.
func (bt *BoxTree) Display(b tree.NodeID) css.DisplayMode {
	if !bt.tree.Contains(b) {
		return css.NoMode
	}
	return bt.display[b]
}

// BoxForDOMNode returns the principal box generated for a DOM node, or
// NullID if the node produced no box.
func (bt *BoxTree) BoxForDOMNode(domnode tree.NodeID) tree.NodeID {
	found := tree.NullID
	bt.tree.Walk(bt.Root(), func(b tree.NodeID) bool {
		if found.IsNull() && bt.domRef[b] == domnode {
			found = b
		}
		return found.IsNull()
	})
	return found
}
