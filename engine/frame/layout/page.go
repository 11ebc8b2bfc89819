package layout

import (
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/tree"
)

// Page is one fixed-height slice of a laid-out document.
type Page struct {
	Index  int
	Bounds dimen.Rect    // absolute page rectangle
	Nodes  []tree.NodeID // boxes intersecting the page, in tree preorder
}

// Paginate slices a layout result into pages of the given height. A box
// belongs to page i when its vertical bounds intersect the half-open
// band [i·H, (i+1)·H). Every page also carries the ancestor chains of
// its boxes up to the root, so that backgrounds and borders of
// partially intersecting ancestors stay renderable.
func Paginate(res *Result, pageHeight dimen.DU) []Page {
	if res == nil || pageHeight <= 0 {
		return nil
	}
	t := res.Boxes.Tree()
	var total dimen.DU
	t.Walk(res.Boxes.Root(), func(b tree.NodeID) bool {
		if r := res.BorderBoxRect(b); r.BotR.Y > total {
			total = r.BotR.Y
		}
		return true
	})
	if total <= 0 {
		return nil
	}
	n := int((total + pageHeight - 1) / pageHeight)
	marks := make([][]bool, n)
	for i := range marks {
		marks[i] = make([]bool, t.Count())
	}
	t.Walk(res.Boxes.Root(), func(b tree.NodeID) bool {
		r := res.BorderBoxRect(b)
		if r.IsEmpty() {
			return true
		}
		first := int(r.TopL.Y / pageHeight)
		if first < 0 {
			first = 0
		}
		for i := first; i < n; i++ {
			top := dimen.DU(i) * pageHeight
			if r.TopL.Y >= top+pageHeight {
				continue
			}
			if r.BotR.Y <= top {
				break
			}
			// mark the box and its ancestor chain
			for a := b; !a.IsNull(); a = t.Parent(a) {
				if marks[i][a] {
					break
				}
				marks[i][a] = true
			}
		}
		return true
	})
	pages := make([]Page, 0, n)
	for i := 0; i < n; i++ {
		page := Page{
			Index: i,
			Bounds: dimen.Rect{
				TopL: dimen.Point{X: 0, Y: dimen.DU(i) * pageHeight},
				BotR: dimen.Point{X: res.Viewport.X, Y: dimen.DU(i+1) * pageHeight},
			},
		}
		t.Walk(res.Boxes.Root(), func(b tree.NodeID) bool {
			if marks[i][b] {
				page.Nodes = append(page.Nodes, b)
			}
			return true
		})
		pages = append(pages, page)
	}
	tracer().Infof("pagination: %d pages of height %s", n, pageHeight)
	return pages
}
