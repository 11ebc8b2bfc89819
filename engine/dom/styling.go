package dom

import (
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/tree"
)

// GetProperty returns the computed value of a style property for a node.
//
// Resolution follows strict cascade precedence: an explicit value on the
// node wins; otherwise, for inherited properties (or a value of
// "inherit"), the nearest ancestor with an explicit value wins; only
// then are user-agent defaults consulted, and finally the property's
// initial value. A value of "initial" resets to the initial value.
//
// Querying a detached node (an identifier the document does not contain)
// yields the property's initial value.
func (doc *Document) GetProperty(id tree.NodeID, key string) style.Property {
	if !doc.tree.Contains(id) {
		return style.InitialValue(key)
	}
	if cached, ok := doc.cache[id][key]; ok {
		return cached
	}
	p := doc.computeProperty(id, key)
	if doc.cache[id] == nil {
		doc.cache[id] = make(map[string]style.Property)
	}
	doc.cache[id][key] = p
	return p
}

func (doc *Document) computeProperty(id tree.NodeID, key string) style.Property {
	p, ok := doc.explicitProperty(id, key)
	if ok && !p.IsInherit() && !p.IsInitial() {
		return p
	}
	if p.IsInitial() {
		return style.InitialValue(key)
	}
	if p.IsInherit() || style.IsCascading(key) {
		for a := doc.tree.Parent(id); !a.IsNull(); a = doc.tree.Parent(a) {
			if ap, ok := doc.explicitProperty(a, key); ok {
				if ap.IsInitial() {
					return style.InitialValue(key)
				}
				if !ap.IsInherit() {
					return ap
				}
			}
		}
	}
	return style.UserAgentDefaultProperty(doc.nodes[id].htmlNode, key)
}

// explicitProperty looks up a property in the node's own cascaded style
// set, without inheritance or defaults.
func (doc *Document) explicitProperty(id tree.NodeID, key string) (style.Property, bool) {
	pmap := doc.styles[id]
	if pmap == nil {
		return style.NullStyle, false
	}
	return pmap.Property(key)
}

// invalidate drops cached computed values for a node and all of its
// descendants. Descendants are included since inherited properties may
// depend on any ancestor's value.
func (doc *Document) invalidate(id tree.NodeID) {
	doc.tree.Walk(id, func(n tree.NodeID) bool {
		doc.cache[n] = nil
		return true
	})
}
