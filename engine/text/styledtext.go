package text

import (
	"github.com/npillmayer/cords"
	sty "github.com/npillmayer/cords/styled"
	"github.com/npillmayer/vitrine/core"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/tree"
)

// InnerText creates a text cord for the textual content of an element
// and all its descendants. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript. The fragment organization of the resulting cord
// reflects the hierarchy of the element's descendants.
func InnerText(doc *dom.Document, n tree.NodeID) (cords.Cord, error) {
	if doc == nil || !doc.Tree().Contains(n) {
		return cords.Cord{}, core.Error(core.EMISSING, "no node to collect text from")
	}
	b := cords.NewBuilder()
	doc.Tree().Walk(n, func(id tree.NodeID) bool {
		if doc.Kind(id) == dom.TextNode {
			content := doc.Text(id)
			b.Append(&textLeaf{
				doc:     doc,
				node:    id,
				content: content,
			})
		}
		return true
	})
	return b.Cord(), nil
}

// StyledText creates a styled text for the textual content of an
// element, with one style run per DOM text node, carrying the node's
// computed styles.
func StyledText(doc *dom.Document, n tree.NodeID) (*sty.Text, error) {
	raw, err := InnerText(doc, n)
	if err != nil {
		return nil, err
	}
	txt := sty.TextFromCord(raw)
	txt.Raw().EachLeaf(func(l cords.Leaf, pos uint64) error {
		leaf, ok := l.(*textLeaf)
		if !ok {
			return cords.ErrIllegalArguments
		}
		set := StyleSet{doc: leaf.doc, node: leaf.node}
		txt.Style(set, pos, pos+l.Weight())
		return nil
	})
	return txt, nil
}

// --- Text leaf --------------------------------------------------------------

// textLeaf is the cord leaf type for DOM text content. Not intended for
// client usage.
type textLeaf struct {
	doc     *dom.Document
	node    tree.NodeID
	content string
}

// Weight is part of interface cords.Leaf.
func (l textLeaf) Weight() uint64 {
	return uint64(len(l.content))
}

// String is part of interface cords.Leaf.
func (l textLeaf) String() string {
	return l.content
}

// Split is part of interface cords.Leaf.
func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	left := &textLeaf{doc: l.doc, node: l.node, content: l.content[:i]}
	right := &textLeaf{doc: l.doc, node: l.node, content: l.content[i:]}
	return left, right
}

// Substring is part of interface cords.Leaf.
func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = textLeaf{}

// --- Style set --------------------------------------------------------------

// StyleSet identifies the computed styles of a run of text by the DOM
// node carrying them.
type StyleSet struct {
	doc  *dom.Document
	node tree.NodeID
}

// Property returns a computed style property for this run of text.
func (set StyleSet) Property(key string) style.Property {
	if set.doc == nil {
		return style.NullStyle
	}
	return set.doc.GetProperty(set.node, key)
}

// Node returns the DOM node carrying the styles of this run.
func (set StyleSet) Node() tree.NodeID {
	if set.doc == nil {
		return tree.NullID
	}
	return set.node
}

// String is part of interface cords/styled.Style.
func (set StyleSet) String() string {
	return "<style>"
}

// Equals is part of interface cords/styled.Style, not intended for
// client usage.
func (set StyleSet) Equals(other sty.Style) bool {
	if o, ok := other.(StyleSet); ok {
		return o.doc == set.doc && o.node == set.node
	}
	return false
}

var _ sty.Style = StyleSet{}
