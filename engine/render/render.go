package render

import (
	"sort"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/npillmayer/vitrine/engine/frame"
	"github.com/npillmayer/vitrine/engine/frame/boxtree"
	"github.com/npillmayer/vitrine/engine/frame/layout"
	"github.com/npillmayer/vitrine/engine/text"
	"github.com/npillmayer/vitrine/engine/tree"
)

// Command is one back-end-neutral display-list instruction.
type Command interface {
	command()
}

// PushClip restricts subsequent drawing to a rectangle until the
// matching PopClip.
type PushClip struct {
	Bounds dimen.Rect
}

// PopClip ends the innermost clip.
type PopClip struct{}

// Rect is a filled rectangle, used for backgrounds and solid boxes.
// The color is the uninterpreted CSS literal; back-ends parse it.
type Rect struct {
	Bounds dimen.Rect
	Color  string
}

// Border draws a box border with per-side widths.
type Border struct {
	Bounds dimen.Rect
	Widths [4]dimen.DU // top, right, bottom, left
	Color  string
}

// GlyphRun draws the positioned glyphs of one typeset line. Glyph
// positions are relative to Origin.
type GlyphRun struct {
	Origin dimen.Point
	Glyphs []text.PositionedGlyph
	Color  string
}

// ScrollFrame marks a scrollable subtree. The back-end translates the
// frame's content by the negated offset.
type ScrollFrame struct {
	Node     tree.NodeID // DOM node of the scrollable container
	Viewport dimen.Rect
	Content  dimen.Point
	Offset   dimen.Point
}

// Image is a placeholder for replaced content.
type Image struct {
	Bounds      dimen.Rect
	Source      string
	Placeholder bool // no provider could resolve the source
}

func (PushClip) command()    {}
func (PopClip) command()     {}
func (Rect) command()        {}
func (Border) command()      {}
func (GlyphRun) command()    {}
func (ScrollFrame) command() {}
func (Image) command()       {}

// ImageProvider resolves image sources to natural pixel sizes. The
// emitter never decodes images; it only reserves space.
type ImageProvider interface {
	NaturalSize(src string) (dimen.Point, bool)
}

// Hit identifies one box or text run under a point.
type Hit struct {
	Node   tree.NodeID // DOM node
	Depth  int         // box-tree depth
	Cursor css.Cursor  // in-tag cursor for inline content, auto otherwise
}

type hitArea struct {
	bounds dimen.Rect
	hit    Hit
}

// List is an emitted display list plus its hit areas.
type List struct {
	Commands []Command
	hits     []hitArea
}

// HitTest resolves a point against the hit areas and returns the
// matching hits ordered by ascending box-tree depth. Hits of equal
// depth keep paint order, so the topmost of two overlapping siblings
// comes last.
func (l *List) HitTest(p dimen.Point) []Hit {
	var hits []Hit
	for _, area := range l.hits {
		if area.bounds.Contains(p) {
			hits = append(hits, area.hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Depth < hits[j].Depth })
	return hits
}

// Options configures display-list emission.
type Options struct {
	Images  ImageProvider
	Offsets map[tree.NodeID]dimen.Point // current scroll offsets per DOM node
}

// Emit converts a layout result into a display list. The box tree is
// walked in paint order; every painted box and text run receives a hit
// area tagged with its DOM node and depth.
func Emit(res *layout.Result, opts Options) *List {
	e := &emitter{
		res:     res,
		opts:    opts,
		list:    &List{},
		scrolls: make(map[tree.NodeID]layout.ScrollNode),
	}
	for _, sn := range res.Scrolls {
		e.scrolls[sn.Box] = sn
	}
	e.emitBox(res.Boxes.Root(), 0)
	tracer().Debugf("display list with %d commands, %d hit areas",
		len(e.list.Commands), len(e.list.hits))
	return e.list
}

type emitter struct {
	res     *layout.Result
	opts    Options
	list    *List
	scrolls map[tree.NodeID]layout.ScrollNode
}

func (e *emitter) emitBox(b tree.NodeID, depth int) {
	boxes := e.res.Boxes
	if boxes.Kind(b) == boxtree.TextBox {
		return // painted as glyph runs of the enclosing IFC
	}
	doc := boxes.Document()
	node := boxes.DOMNode(b)
	rect := e.res.BorderBoxRect(b)
	box := boxes.Box(b)

	if boxes.Kind(b) == boxtree.PrincipalBox {
		e.list.hits = append(e.list.hits, hitArea{
			bounds: rect,
			hit:    Hit{Node: node, Depth: depth, Cursor: css.CursorAuto},
		})
		if bg := doc.GetProperty(node, "background-color"); bg != style.NullStyle &&
			bg != "transparent" {
			e.push(Rect{Bounds: rect, Color: string(bg)})
		}
		if widths, any := borderWidths(box); any {
			e.push(Border{Bounds: rect, Widths: widths, Color: borderColor(doc, node)})
		}
		if doc.Tag(node) == "img" {
			e.emitImage(node, rect)
		}
	}

	clipped := e.pushClipIfNeeded(doc, node, rect, boxes.Kind(b))
	if sn, ok := e.scrolls[b]; ok {
		e.push(ScrollFrame{
			Node:     sn.DOMNode,
			Viewport: sn.Viewport,
			Content:  sn.Content,
			Offset:   e.opts.Offsets[sn.DOMNode],
		})
	}

	if inline, ok := e.res.Inline[b]; ok {
		e.emitInline(doc, node, box, inline, depth)
	}
	t := boxes.Tree()
	for c := t.FirstChild(b); !c.IsNull(); c = t.NextSibling(c) {
		e.emitBox(c, depth+1)
	}
	if clipped {
		e.push(PopClip{})
	}
}

// emitInline paints the lines of an inline formatting context. Each
// line carries a hit area one level deeper than its paragraph box, with
// the run's cursor kind in-tag; text content defaults to the caret.
func (e *emitter) emitInline(doc *dom.Document, node tree.NodeID, box *frame.Box,
	inline *text.Result, depth int) {
	//
	origin := box.ContentRect().TopL
	color := string(doc.GetProperty(node, "color"))
	cursor := css.ParseCursor(doc.GetProperty(node, "cursor"))
	if cursor.IsDefault() {
		cursor = css.CursorText
	}
	for _, line := range inline.Lines {
		if len(line.Glyphs) == 0 {
			continue
		}
		e.push(GlyphRun{Origin: origin, Glyphs: line.Glyphs, Color: color})
		e.list.hits = append(e.list.hits, hitArea{
			bounds: line.Bounds.Translate(origin),
			hit:    Hit{Node: node, Depth: depth + 1, Cursor: cursor},
		})
	}
}

func (e *emitter) emitImage(node tree.NodeID, rect dimen.Rect) {
	doc := e.res.Boxes.Document()
	src, _ := doc.Attribute(node, "src")
	img := Image{Bounds: rect, Source: src, Placeholder: true}
	if e.opts.Images != nil {
		if _, ok := e.opts.Images.NaturalSize(src); ok {
			img.Placeholder = false
		}
	}
	e.push(img)
}

func (e *emitter) pushClipIfNeeded(doc *dom.Document, node tree.NodeID, rect dimen.Rect,
	kind boxtree.BoxKind) bool {
	//
	if kind != boxtree.PrincipalBox {
		return false
	}
	if overflowPolicy(doc, node) == css.OverflowVisible {
		return false
	}
	e.push(PushClip{Bounds: rect})
	return true
}

func (e *emitter) push(cmd Command) {
	e.list.Commands = append(e.list.Commands, cmd)
}

// ---------------------------------------------------------------------------

func overflowPolicy(doc *dom.Document, node tree.NodeID) css.Overflow {
	if p := doc.GetProperty(node, "overflow"); p != style.NullStyle {
		return css.ParseOverflow(p)
	}
	ovx := css.ParseOverflow(doc.GetProperty(node, "overflow-x"))
	ovy := css.ParseOverflow(doc.GetProperty(node, "overflow-y"))
	if ovy != css.OverflowVisible {
		return ovy
	}
	return ovx
}

func borderWidths(box *frame.Box) ([4]dimen.DU, bool) {
	var widths [4]dimen.DU
	any := false
	for i := 0; i < 4; i++ {
		if w, ok := box.BorderWidth[i].Resolve(css.Env{}); ok && w > 0 {
			widths[i] = w
			any = true
		}
	}
	return widths, any
}

func borderColor(doc *dom.Document, node tree.NodeID) string {
	if c := doc.GetProperty(node, "border-color"); c != style.NullStyle {
		return string(c)
	}
	if c := doc.GetProperty(node, "color"); c != style.NullStyle {
		return string(c)
	}
	return "black"
}
