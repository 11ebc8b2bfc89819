// Package tree implements an index-based tree of nodes.
//
// Trees are stored as parallel arrays of node relationships
// (parent, first/last child, previous/next sibling). Nodes are addressed
// by stable indices, which makes parent lookup O(1), keeps whole subtrees
// addressable as index ranges, and avoids chasing pointers during layout
// traversals. The styled DOM, the box tree and inline item lists all build
// on this type.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
package tree

import "fmt"

// NodeID is a stable index identifying a node within a Tree. It is only
// meaningful together with the tree that issued it.
type NodeID int32

// NullID denotes the absence of a node.
const NullID NodeID = -1

// IsNull is true for the null node.
func (id NodeID) IsNull() bool {
	return id < 0
}

func (id NodeID) String() string {
	if id.IsNull() {
		return "node(∅)"
	}
	return fmt.Sprintf("node(%d)", int32(id))
}

// Tree is a growable tree of nodes, stored as parallel relationship arrays.
// The zero value is an empty tree; the first node appended becomes the root.
type Tree struct {
	parent      []NodeID
	firstChild  []NodeID
	lastChild   []NodeID
	prevSibling []NodeID
	nextSibling []NodeID
}

// NewTree creates an empty tree with capacity for n nodes.
func NewTree(n int) *Tree {
	t := &Tree{}
	if n > 0 {
		t.parent = make([]NodeID, 0, n)
		t.firstChild = make([]NodeID, 0, n)
		t.lastChild = make([]NodeID, 0, n)
		t.prevSibling = make([]NodeID, 0, n)
		t.nextSibling = make([]NodeID, 0, n)
	}
	return t
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	if t == nil {
		return 0
	}
	return len(t.parent)
}

// Root returns the root node, or NullID for an empty tree.
func (t *Tree) Root() NodeID {
	if t.Count() == 0 {
		return NullID
	}
	return 0
}

// Contains is true if id addresses a node of this tree.
func (t *Tree) Contains(id NodeID) bool {
	return !id.IsNull() && int(id) < t.Count()
}

// AppendChild creates a new node as the last child of parent and returns
// its identifier. Passing NullID creates the root; a tree has exactly one
// root, further top-level nodes are refused.
func (t *Tree) AppendChild(parent NodeID) NodeID {
	if parent.IsNull() && t.Count() > 0 {
		return NullID
	}
	if !parent.IsNull() && !t.Contains(parent) {
		return NullID
	}
	id := NodeID(t.Count())
	t.parent = append(t.parent, parent)
	t.firstChild = append(t.firstChild, NullID)
	t.lastChild = append(t.lastChild, NullID)
	t.prevSibling = append(t.prevSibling, NullID)
	t.nextSibling = append(t.nextSibling, NullID)
	if !parent.IsNull() {
		last := t.lastChild[parent]
		if last.IsNull() {
			t.firstChild[parent] = id
		} else {
			t.nextSibling[last] = id
			t.prevSibling[id] = last
		}
		t.lastChild[parent] = id
	}
	return id
}

// Parent returns the parent of a node, NullID for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Contains(id) {
		return NullID
	}
	return t.parent[id]
}

// FirstChild returns the first child of a node.
func (t *Tree) FirstChild(id NodeID) NodeID {
	if !t.Contains(id) {
		return NullID
	}
	return t.firstChild[id]
}

// LastChild returns the last child of a node.
func (t *Tree) LastChild(id NodeID) NodeID {
	if !t.Contains(id) {
		return NullID
	}
	return t.lastChild[id]
}

// PrevSibling returns the sibling preceding a node.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	if !t.Contains(id) {
		return NullID
	}
	return t.prevSibling[id]
}

// NextSibling returns the sibling following a node.
func (t *Tree) NextSibling(id NodeID) NodeID {
	if !t.Contains(id) {
		return NullID
	}
	return t.nextSibling[id]
}

// ChildCount returns the number of children of a node.
func (t *Tree) ChildCount(id NodeID) int {
	n := 0
	for ch := t.FirstChild(id); !ch.IsNull(); ch = t.NextSibling(ch) {
		n++
	}
	return n
}

// Children returns the children of a node in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	var children []NodeID
	for ch := t.FirstChild(id); !ch.IsNull(); ch = t.NextSibling(ch) {
		children = append(children, ch)
	}
	return children
}

// IsAncestorOf is true if a is a proper ancestor of id.
func (t *Tree) IsAncestorOf(a, id NodeID) bool {
	for p := t.Parent(id); !p.IsNull(); p = t.Parent(p) {
		if p == a {
			return true
		}
	}
	return false
}

// Ancestors returns the chain of ancestors of a node, nearest first,
// ending with the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var chain []NodeID
	for p := t.Parent(id); !p.IsNull(); p = t.Parent(p) {
		chain = append(chain, p)
	}
	return chain
}

// Depth returns the number of ancestors of a node; the root has depth 0.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for p := t.Parent(id); !p.IsNull(); p = t.Parent(p) {
		d++
	}
	return d
}

// Walk calls visit for every node of the subtree rooted at id, in
// depth-first document order (parents before children). Returning false
// from visit skips the children of that node.
func (t *Tree) Walk(id NodeID, visit func(NodeID) bool) {
	if !t.Contains(id) {
		return
	}
	if !visit(id) {
		return
	}
	for ch := t.FirstChild(id); !ch.IsNull(); ch = t.NextSibling(ch) {
		t.Walk(ch, visit)
	}
}

// Preorder returns all nodes of the subtree rooted at id in document order.
func (t *Tree) Preorder(id NodeID) []NodeID {
	var nodes []NodeID
	t.Walk(id, func(n NodeID) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
