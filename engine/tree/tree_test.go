package tree

import "testing"

func buildSmallTree() (*Tree, []NodeID) {
	// root ── a ── a1
	//      │     └ a2
	//      └─ b
	t := NewTree(5)
	root := t.AppendChild(NullID)
	a := t.AppendChild(root)
	a1 := t.AppendChild(a)
	a2 := t.AppendChild(a)
	b := t.AppendChild(root)
	return t, []NodeID{root, a, a1, a2, b}
}

func TestTreeRelations(t *testing.T) {
	tr, n := buildSmallTree()
	root, a, a1, a2, b := n[0], n[1], n[2], n[3], n[4]
	if tr.Root() != root {
		t.Errorf("expected node 0 to be root, is %v", tr.Root())
	}
	if tr.Parent(a1) != a || tr.Parent(a) != root {
		t.Errorf("parent links broken")
	}
	if tr.FirstChild(a) != a1 || tr.LastChild(a) != a2 {
		t.Errorf("child links broken")
	}
	if tr.NextSibling(a) != b || tr.PrevSibling(b) != a {
		t.Errorf("sibling links broken")
	}
	if !tr.IsAncestorOf(root, a2) || tr.IsAncestorOf(b, a2) {
		t.Errorf("ancestor query broken")
	}
	if tr.Depth(a2) != 2 {
		t.Errorf("expected depth 2 for grandchild, have %d", tr.Depth(a2))
	}
}

func TestTreeSingleRoot(t *testing.T) {
	tr := NewTree(2)
	tr.AppendChild(NullID)
	if second := tr.AppendChild(NullID); !second.IsNull() {
		t.Errorf("expected second root to be refused, got %v", second)
	}
}

func TestTreeWalkOrder(t *testing.T) {
	tr, n := buildSmallTree()
	want := []NodeID{n[0], n[1], n[2], n[3], n[4]}
	have := tr.Preorder(tr.Root())
	if len(have) != len(want) {
		t.Fatalf("expected %d nodes in preorder, have %d", len(want), len(have))
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("preorder position %d: expected %v, have %v", i, want[i], have[i])
		}
	}
}

func TestTreeChildren(t *testing.T) {
	tr, n := buildSmallTree()
	if cnt := tr.ChildCount(n[0]); cnt != 2 {
		t.Errorf("expected root to have 2 children, has %d", cnt)
	}
	ch := tr.Children(n[1])
	if len(ch) != 2 || ch[0] != n[2] || ch[1] != n[3] {
		t.Errorf("children of a not in document order: %v", ch)
	}
}
