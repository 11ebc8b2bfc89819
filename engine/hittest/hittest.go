package hittest

import (
	"sort"

	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/frame/layout"
	"github.com/npillmayer/vitrine/engine/render"
	"github.com/npillmayer/vitrine/engine/tree"
)

// Axis selects a scroll direction for scroll-target resolution.
type Axis int8

const (
	Horizontal Axis = iota
	Vertical
)

// Resolution is the outcome of resolving one pointer position.
type Resolution struct {
	Cursor     css.Cursor  // cursor shape to display
	CursorNode tree.NodeID // node which decided the cursor
	Target     tree.NodeID // click/keyboard target, the deepest hit
}

// Resolve decides cursor and target for a hit sequence. Hits arrive
// ordered by ascending box-tree depth, backmost first; the resolver
// sorts stably to restore the invariant should a renderer deliver
// them unordered. The cursor scan runs the other way, front to back,
// so the frontmost non-default cursor wins.
func Resolve(doc *dom.Document, hits []render.Hit) Resolution {
	if len(hits) == 0 {
		return Resolution{
			Cursor:     css.CursorDefault,
			CursorNode: tree.NullID,
			Target:     tree.NullID,
		}
	}
	ordered := make([]render.Hit, len(hits))
	copy(ordered, hits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Depth < ordered[j].Depth
	})

	res := Resolution{
		Cursor: css.CursorDefault,
		// ties in depth resolve to the later, topmost hit
		Target: ordered[len(ordered)-1].Node,
	}
	res.CursorNode = res.Target
	for i := len(ordered) - 1; i >= 0; i-- {
		hit := ordered[i]
		cursor := hit.Cursor
		if cursor.IsDefault() {
			cursor = css.ParseCursor(doc.GetProperty(hit.Node, "cursor"))
		}
		if !cursor.IsDefault() {
			res.Cursor = cursor
			res.CursorNode = hit.Node
			break
		}
	}
	tracer().Debugf("hit resolution: cursor %v at node %v, target %v",
		res.Cursor, res.CursorNode, res.Target)
	return res
}

// ScrollTarget finds the deepest scrollable ancestor of a node, the
// node itself included, which can move along the given axis. The
// scroll-node set comes from the current layout.
func ScrollTarget(doc *dom.Document, scrolls []layout.ScrollNode, node tree.NodeID,
	axis Axis) (tree.NodeID, bool) {
	//
	scrollable := make(map[tree.NodeID]layout.ScrollNode, len(scrolls))
	for _, sn := range scrolls {
		scrollable[sn.DOMNode] = sn
	}
	t := doc.Tree()
	for id := node; !id.IsNull(); id = t.Parent(id) {
		sn, ok := scrollable[id]
		if !ok {
			continue
		}
		switch axis {
		case Horizontal:
			if sn.Content.X > sn.Viewport.Width() {
				return id, true
			}
		case Vertical:
			if sn.Content.Y > sn.Viewport.Height() {
				return id, true
			}
		}
	}
	return tree.NullID, false
}
