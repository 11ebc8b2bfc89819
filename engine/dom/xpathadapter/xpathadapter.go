/*
Package xpathadapter implements an xpath.NodeNavigator for styled
documents.

We use this library for XPath queries:

	github.com/antchfx/xpath

The adapter enables antchfx/xpath to navigate a dom.Document. For the
semantics of the various methods of interface xpath.NodeNavigator please
refer to the documentation of antchfx/xpath; it is not replicated here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package xpathadapter

import (
	"strings"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/vitrine/core"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/tree"
)

// NodeNavigator is a cursor over a dom.Document. A virtual document
// root sits above the document's root element, as XPath requires.
type NodeNavigator struct {
	doc     *dom.Document
	current tree.NodeID
	atRoot  bool // at the virtual document root
	attr    int  // attribute index, -1 when positioned on a node
}

// NewNavigator creates an xpath.NodeNavigator for a document, positioned
// at the virtual document root.
func NewNavigator(doc *dom.Document) *NodeNavigator {
	return &NodeNavigator{doc: doc, current: doc.Root(), atRoot: true, attr: -1}
}

// CurrentNode returns the document node a navigator is positioned on.
func CurrentNode(nav xpath.NodeNavigator) (tree.NodeID, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return tree.NullID, core.Error(core.EINVALID,
			"navigator is not of type xpathadapter.NodeNavigator")
	}
	if mynav.atRoot {
		return tree.NullID, nil
	}
	return mynav.current, nil
}

// QueryAll evaluates an XPath expression over a document and returns all
// matching nodes in document order.
func QueryAll(doc *dom.Document, expression string) ([]tree.NodeID, error) {
	expr, err := xpath.Compile(expression)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot compile XPath expression")
	}
	var nodes []tree.NodeID
	iter := expr.Select(NewNavigator(doc))
	for iter.MoveNext() {
		id, err := CurrentNode(iter.Current())
		if err != nil {
			return nil, err
		}
		if !id.IsNull() {
			nodes = append(nodes, id)
		}
	}
	return nodes, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if nav.atRoot {
		return xpath.RootNode
	}
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	if nav.doc.Kind(nav.current) == dom.TextNode {
		return xpath.TextNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.atRoot {
		return ""
	}
	if nav.attr != -1 {
		return nav.doc.HTMLNode(nav.current).Attr[nav.attr].Key
	}
	return nav.doc.Tag(nav.current)
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.atRoot {
		return ""
	}
	if nav.attr != -1 {
		return nav.doc.HTMLNode(nav.current).Attr[nav.attr].Val
	}
	if nav.doc.Kind(nav.current) == dom.TextNode {
		return nav.doc.Text(nav.current)
	}
	return nav.innerText(nav.current)
}

// innerText collects the text content of a node's subtree.
func (nav *NodeNavigator) innerText(id tree.NodeID) string {
	var b strings.Builder
	nav.doc.Tree().Walk(id, func(n tree.NodeID) bool {
		if nav.doc.Kind(n) == dom.TextNode {
			b.WriteString(nav.doc.Text(n))
		}
		return true
	})
	return b.String()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.atRoot = true
	nav.current = nav.doc.Root()
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 { // move from attribute back to its element
		nav.attr = -1
		return true
	}
	if nav.atRoot {
		return false
	}
	parent := nav.doc.Tree().Parent(nav.current)
	if parent.IsNull() {
		nav.atRoot = true
		return true
	}
	nav.current = parent
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.atRoot || nav.doc.Kind(nav.current) != dom.ElementNode {
		return false
	}
	if nav.attr >= len(nav.doc.HTMLNode(nav.current).Attr)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if nav.atRoot {
		if nav.doc.Root().IsNull() {
			return false
		}
		nav.atRoot = false
		nav.current = nav.doc.Root()
		return true
	}
	child := nav.doc.Tree().FirstChild(nav.current)
	if child.IsNull() {
		return false
	}
	nav.current = child
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.atRoot || nav.attr != -1 {
		return false
	}
	for {
		prev := nav.doc.Tree().PrevSibling(nav.current)
		if prev.IsNull() {
			return true
		}
		nav.current = prev
	}
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.atRoot || nav.attr != -1 {
		return false
	}
	next := nav.doc.Tree().NextSibling(nav.current)
	if next.IsNull() {
		return false
	}
	nav.current = next
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.atRoot || nav.attr != -1 {
		return false
	}
	prev := nav.doc.Tree().PrevSibling(nav.current)
	if prev.IsNull() {
		return false
	}
	nav.current = prev
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.doc != nav.doc {
		return false
	}
	nav.current = n.current
	nav.atRoot = n.atRoot
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}
