package dom

import (
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/tree"
)

// EventType enumerates the input events a node may register callbacks
// for. Which events a node listens to influences hit-testing: nodes
// with callbacks are hit-test relevant even without styling.
type EventType uint8

// Event types.
const (
	MouseDown EventType = iota
	MouseUp
	MouseOver
	MouseOut
	Scroll
	KeyDown
	KeyUp
	TextInput
	FocusReceived
	FocusLost
)

var eventTypeStrings = [...]string{
	"mouse-down", "mouse-up", "mouse-over", "mouse-out", "scroll",
	"key-down", "key-up", "text-input", "focus-received", "focus-lost",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeStrings) {
		return eventTypeStrings[e]
	}
	return "unknown-event"
}

// Event is delivered to node callbacks.
type Event struct {
	Type     EventType
	Target   tree.NodeID
	Position dimen.Point // pointer position in document coordinates
}

// Callback is a handler for an input event on a node.
type Callback func(Event)

// SetCallback registers a callback for an event type on a node. A nil
// callback removes a previously registered one.
func (doc *Document) SetCallback(id tree.NodeID, etype EventType, cb Callback) {
	if !doc.tree.Contains(id) {
		return
	}
	if cb == nil {
		delete(doc.nodes[id].callbacks, etype)
		return
	}
	if doc.nodes[id].callbacks == nil {
		doc.nodes[id].callbacks = make(map[EventType]Callback)
	}
	doc.nodes[id].callbacks[etype] = cb
}

// Callback returns the registered callback of a node for an event type,
// or nil.
func (doc *Document) Callback(id tree.NodeID, etype EventType) Callback {
	if !doc.tree.Contains(id) {
		return nil
	}
	return doc.nodes[id].callbacks[etype]
}

// HasCallbacks is true if any callback is registered on a node.
func (doc *Document) HasCallbacks(id tree.NodeID) bool {
	return doc.tree.Contains(id) && len(doc.nodes[id].callbacks) > 0
}

// --- Keyboard focus --------------------------------------------------------

// TabIndex controls participation in keyboard focus traversal.
// TabIndexAuto places the node in document order; positive values
// override the order within the parent; NoKeyboardFocus removes the
// node from traversal.
type TabIndex int32

// Special tab index values.
const (
	TabIndexAuto    TabIndex = 0
	NoKeyboardFocus TabIndex = -1
)

// SetTabIndex sets the keyboard focus traversal index of a node.
func (doc *Document) SetTabIndex(id tree.NodeID, ti TabIndex) {
	if doc.tree.Contains(id) {
		doc.nodes[id].tabIndex = ti
	}
}

// TabIndex returns the keyboard focus traversal index of a node.
func (doc *Document) TabIndex(id tree.NodeID) TabIndex {
	if !doc.tree.Contains(id) {
		return NoKeyboardFocus
	}
	return doc.nodes[id].tabIndex
}

// Focusable is true if a node participates in keyboard focus traversal.
// Interactive elements are focusable by default, other elements only
// with an explicit tab index or registered key/focus callbacks.
func (doc *Document) Focusable(id tree.NodeID) bool {
	if !doc.tree.Contains(id) || doc.nodes[id].kind != ElementNode {
		return false
	}
	if doc.nodes[id].tabIndex == NoKeyboardFocus {
		return false
	}
	if doc.nodes[id].tabIndex > 0 {
		return true
	}
	switch doc.Tag(id) {
	case "a", "button", "input", "textarea", "select":
		return true
	}
	cbs := doc.nodes[id].callbacks
	for _, etype := range []EventType{KeyDown, KeyUp, TextInput, FocusReceived} {
		if _, ok := cbs[etype]; ok {
			return true
		}
	}
	return false
}
