package dom

import (
	"github.com/npillmayer/vitrine/engine/dom/style"
	"github.com/npillmayer/vitrine/engine/tree"
)

// Change is a queued style property mutation on a node.
type Change struct {
	Node  tree.NodeID
	Key   string
	Value style.Property
}

// Commit is the result of committing queued changes: the set of nodes
// whose computed styles were invalidated, and a flag wether the change
// set affects geometry, requiring layout to be re-run (as opposed to a
// repaint-only change like a color swap).
type Commit struct {
	Restyled []tree.NodeID
	Relayout bool
}

// PushChange queues a style property change. Nothing is applied until
// CommitChanges is called, so a batch of changes is observed atomically
// by style queries.
func (doc *Document) PushChange(id tree.NodeID, key string, value style.Property) {
	doc.changes = append(doc.changes, Change{Node: id, Key: key, Value: value})
}

// PendingChanges returns the number of queued, uncommitted changes.
func (doc *Document) PendingChanges() int {
	return len(doc.changes)
}

// CommitChanges applies all queued changes in order, invalidates the
// computed-value caches of the affected subtrees and clears the queue.
// Changes addressing detached nodes are dropped.
func (doc *Document) CommitChanges() Commit {
	var commit Commit
	restyled := make(map[tree.NodeID]bool)
	for _, chg := range doc.changes {
		if !doc.tree.Contains(chg.Node) {
			tracer().Infof("dom: dropping change for detached %v", chg.Node)
			continue
		}
		doc.styles[chg.Node] = doc.styles[chg.Node].Add(chg.Key, chg.Value)
		doc.invalidate(chg.Node)
		if !restyled[chg.Node] {
			restyled[chg.Node] = true
			commit.Restyled = append(commit.Restyled, chg.Node)
		}
		if affectsLayout(chg.Key) {
			commit.Relayout = true
		}
	}
	doc.changes = doc.changes[:0]
	tracer().Debugf("dom: committed changes for %d node(s), relayout=%v",
		len(commit.Restyled), commit.Relayout)
	return commit
}

// DiscardChanges drops all queued changes without applying them.
func (doc *Document) DiscardChanges() {
	doc.changes = doc.changes[:0]
}

// Properties which only affect painting; every other property is
// conservatively treated as geometry-affecting.
var repaintOnly = map[string]bool{
	"color":                      true,
	"background-color":           true,
	"border-top-color":           true,
	"border-left-color":          true,
	"border-right-color":         true,
	"border-bottom-color":        true,
	"border-top-style":           true,
	"border-left-style":          true,
	"border-right-style":         true,
	"border-bottom-style":        true,
	"border-top-left-radius":     true,
	"border-top-right-radius":    true,
	"border-bottom-left-radius":  true,
	"border-bottom-right-radius": true,
	"cursor":                     true,
	"visibility":                 true,
}

func affectsLayout(key string) bool {
	return !repaintOnly[key]
}
