package dom

import (
	"io"
	"strings"

	"github.com/npillmayer/vitrine/core"
	"github.com/npillmayer/vitrine/engine/dom/cssom"
	"github.com/npillmayer/vitrine/engine/dom/cssom/douceuradapter"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/tree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeKind distinguishes the kinds of nodes a document consists of.
type NodeKind uint8

// Node kinds.
const (
	ElementNode NodeKind = iota
	TextNode
)

func (k NodeKind) String() string {
	if k == TextNode {
		return "text"
	}
	return "element"
}

// nodeData holds the per-node payload, parallel to the relationship
// arrays of the underlying tree.
type nodeData struct {
	kind      NodeKind
	htmlNode  *html.Node // always set; synthesized for programmatic nodes
	text      string     // text content, for text nodes
	tabIndex  TabIndex
	callbacks map[EventType]Callback
}

// Document is a styled DOM: a node hierarchy plus cascaded CSS
// properties per node.
type Document struct {
	tree    *tree.Tree
	nodes   []nodeData
	styles  []*style.PropertyMap     // cascaded explicit properties per node
	cache   []map[string]style.Property // lazy computed-value cache
	changes []Change                 // queued, uncommitted style changes
}

// NewDocument creates an empty document, to be filled programmatically
// with AddElement and AddText.
func NewDocument() *Document {
	return &Document{tree: tree.NewTree(32)}
}

// FromHTML reads and parses HTML markup and builds a styled document
// from it. Embedded <style> elements and the given additional
// stylesheets contribute author styles; `style` attributes contribute
// inline styles. The document root is the <html> element.
func FromHTML(input io.Reader, stylesheets ...cssom.StyleSheet) (*Document, error) {
	parsed, err := html.Parse(input)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	om := cssom.NewCSSOM()
	for _, sheet := range stylesheets {
		if err := om.AddStyles(cssom.Author, sheet); err != nil {
			return nil, err
		}
	}
	for _, sheet := range douceuradapter.ExtractStyleElements(parsed) {
		if err := om.AddStyles(cssom.Author, sheet); err != nil {
			return nil, err
		}
	}
	root := findHTMLElement(parsed)
	if root == nil {
		return nil, core.Error(core.EINVALID, "HTML input has no root element")
	}
	cascaded := om.Apply(root)
	doc := NewDocument()
	doc.buildFromHTML(tree.NullID, root, cascaded)
	tracer().Infof("dom: built document with %d nodes", doc.tree.Count())
	return doc, nil
}

// buildFromHTML recursively appends n and its descendants to the
// document. Whitespace-only text nodes and non-content node types
// (comments, doctype) are dropped.
func (doc *Document) buildFromHTML(parent tree.NodeID, n *html.Node,
	cascaded map[*html.Node]*style.PropertyMap) {
	//
	var id tree.NodeID
	switch n.Type {
	case html.ElementNode:
		id = doc.appendNode(parent, nodeData{kind: ElementNode, htmlNode: n})
		pmap := cascaded[n]
		for _, attr := range n.Attr {
			if attr.Key != "style" {
				continue
			}
			for _, kv := range douceuradapter.ParseInlineStyle(attr.Val) {
				pmap = pmap.Add(kv.Key, kv.Value)
			}
		}
		doc.styles[id] = pmap
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		id = doc.appendNode(parent, nodeData{kind: TextNode, htmlNode: n, text: n.Data})
	default:
		return
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		doc.buildFromHTML(id, ch, cascaded)
	}
}

func (doc *Document) appendNode(parent tree.NodeID, data nodeData) tree.NodeID {
	id := doc.tree.AppendChild(parent)
	if id.IsNull() {
		return id
	}
	doc.nodes = append(doc.nodes, data)
	doc.styles = append(doc.styles, nil)
	doc.cache = append(doc.cache, nil)
	return id
}

func findHTMLElement(parsed *html.Node) *html.Node {
	for n := parsed.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Html {
			return n
		}
	}
	return nil
}

// --- Programmatic document building ----------------------------------------

// AddElement appends a new element node as the last child of parent.
// Passing tree.NullID on an empty document creates the root element.
func (doc *Document) AddElement(parent tree.NodeID, tag string) tree.NodeID {
	tag = strings.ToLower(tag)
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return doc.appendNode(parent, nodeData{kind: ElementNode, htmlNode: h})
}

// AddText appends a new text node as the last child of parent.
func (doc *Document) AddText(parent tree.NodeID, text string) tree.NodeID {
	h := &html.Node{Type: html.TextNode, Data: text}
	return doc.appendNode(parent, nodeData{kind: TextNode, htmlNode: h, text: text})
}

// SetStyleProperty sets an explicit style property on a node, as if set
// by an inline style attribute. For batched changes after the document
// is in use, prefer PushChange / CommitChanges.
func (doc *Document) SetStyleProperty(id tree.NodeID, key string, value style.Property) {
	if !doc.tree.Contains(id) {
		return
	}
	doc.styles[id] = doc.styles[id].Add(key, value)
	doc.invalidate(id)
}

// --- Accessors -------------------------------------------------------------

// Tree returns the node hierarchy of the document.
func (doc *Document) Tree() *tree.Tree {
	return doc.tree
}

// Root returns the document's root node.
func (doc *Document) Root() tree.NodeID {
	return doc.tree.Root()
}

// Kind returns the node kind for a node of the document.
func (doc *Document) Kind(id tree.NodeID) NodeKind {
	if !doc.tree.Contains(id) {
		return ElementNode
	}
	return doc.nodes[id].kind
}

// Tag returns the element name of a node, the empty string for text nodes.
func (doc *Document) Tag(id tree.NodeID) string {
	if !doc.tree.Contains(id) || doc.nodes[id].kind != ElementNode {
		return ""
	}
	return doc.nodes[id].htmlNode.Data
}

// Text returns the text content of a text node.
func (doc *Document) Text(id tree.NodeID) string {
	if !doc.tree.Contains(id) {
		return ""
	}
	return doc.nodes[id].text
}

// HTMLNode returns the HTML parse-tree node corresponding to a document
// node. For programmatically built documents this is a synthesized node.
func (doc *Document) HTMLNode(id tree.NodeID) *html.Node {
	if !doc.tree.Contains(id) {
		return nil
	}
	return doc.nodes[id].htmlNode
}

// Attribute returns the value of an attribute of an element node, and a
// flag wether the attribute is present.
func (doc *Document) Attribute(id tree.NodeID, key string) (string, bool) {
	h := doc.HTMLNode(id)
	if h == nil {
		return "", false
	}
	for _, attr := range h.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Styles returns the cascaded explicit style properties of a node. May
// be nil for unstyled nodes. User-agent defaults and inherited values
// are not included; use GetProperty for fully computed values.
func (doc *Document) Styles(id tree.NodeID) *style.PropertyMap {
	if !doc.tree.Contains(id) {
		return nil
	}
	return doc.styles[id]
}
