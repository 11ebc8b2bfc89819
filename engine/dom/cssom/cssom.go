/*
Package cssom applies CSS style rules to an HTML parse tree.

In order to de-couple implementations of CSS-stylesheets from the
construction of the styled tree, we introduce an interface for CSS
stylesheets. Clients for the styling engine will have to provide a
concrete implementation of this interface (e.g., see package
douceuradapter).

This implementation of CSS-styling will never trade modularity and
clarity for performance. Clients in need for a production grade browser
engine (where performance is key) should opt for headless versions of
the main browser projects.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import (
	"errors"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vitrine/engine/dom/style"
	"golang.org/x/net/html"
)

// tracer traces with key 'vitrine.style'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.style")
}

// StyleSheet is an interface to abstract away a stylesheet-implementation.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consist of.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// Origin denotes the cascade origin of a stylesheet. Precedence is
// user-agent < author < inline (attribute), with `!important`
// declarations winning within an origin.
type Origin uint8

// Cascade origins.
const (
	UserAgent Origin = iota
	Author
	Attribute
)

// CSSOM is the "CSS object model": a collection of stylesheets, ordered
// by cascade origin, ready to be applied to an HTML parse tree.
type CSSOM struct {
	sheets [3]StyleSheet
}

// NewCSSOM creates an empty CSS object model.
func NewCSSOM() *CSSOM {
	return &CSSOM{}
}

// AddStyles adds a stylesheet for a given cascade origin. Rules of
// stylesheets added later for the same origin take precedence (source
// order).
func (om *CSSOM) AddStyles(origin Origin, sheet StyleSheet) error {
	if sheet == nil || sheet.Empty() {
		return nil
	}
	if origin > Attribute {
		return errors.New("cssom: unknown cascade origin")
	}
	if om.sheets[origin] == nil {
		om.sheets[origin] = sheet
	} else {
		om.sheets[origin].AppendRules(sheet)
	}
	return nil
}

// matcher is a compiled rule: a cascadia selector plus the declarations
// it carries.
type matcher struct {
	selector cascadia.Selector
	rule     Rule
}

func (om *CSSOM) compile(origin Origin) []matcher {
	sheet := om.sheets[origin]
	if sheet == nil {
		return nil
	}
	var matchers []matcher
	for _, rule := range sheet.Rules() {
		for _, sel := range strings.Split(rule.Selector(), ",") {
			sel = strings.TrimSpace(sel)
			selector, err := cascadia.Compile(sel)
			if err != nil {
				// reject this selector, keep the others
				tracer().Errorf("cssom: cannot compile selector %q: %v", sel, err)
				continue
			}
			matchers = append(matchers, matcher{selector, rule})
		}
	}
	return matchers
}

// StylesFor collects the cascaded property map for a single HTML
// element node. Origins are applied lowest-precedence first, so later
// Add calls overwrite earlier ones (except against `!important`).
//
// Inline `style` attributes are not handled here; they are parsed by the
// DOM builder, as they need no selector matching.
func StylesFor(node *html.Node, matchers []matcher, pmap *style.PropertyMap) *style.PropertyMap {
	if node.Type != html.ElementNode {
		return pmap
	}
	for _, m := range matchers {
		if !m.selector.Match(node) {
			continue
		}
		for _, key := range m.rule.Properties() {
			pmap = pmap.AddImportant(key, m.rule.Value(key), m.rule.IsImportant(key))
		}
	}
	return pmap
}

// Apply walks an HTML parse tree and computes a property map for every
// element node, applying all stylesheets of the object model in cascade
// order. The result maps HTML nodes to their cascaded (but not yet
// inherited) style properties.
func (om *CSSOM) Apply(root *html.Node) map[*html.Node]*style.PropertyMap {
	styles := make(map[*html.Node]*style.PropertyMap)
	matchers := append(om.compile(UserAgent), om.compile(Author)...)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var pmap *style.PropertyMap
			pmap = StylesFor(n, matchers, pmap)
			if pmap.Size() > 0 {
				styles[n] = pmap
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	if root != nil {
		walk(root)
	}
	return styles
}
