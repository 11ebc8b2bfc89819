package style

import (
	"golang.org/x/net/html"
)

// User-agent default styling, the lowest layer of the cascade. Defaults
// are not instantiated in per-node property maps; they are supplied at
// query time for properties with no explicit or inherited value.
//
// An ancestor's explicit value therefore defeats a user-agent default on
// a descendant: a body with font-weight:normal overrides the UA
// `h1 { font-weight: bold }`. This is deliberate (and matches strict
// cascade precedence, UA lowest); see also the `cursor` property, where
// an inherited explicit cursor wins over a UA-supplied one.

var initialValues = map[string]string{
	"width":                "auto",
	"height":               "auto",
	"min-width":            "none",
	"min-height":           "none",
	"max-width":            "none",
	"max-height":           "none",
	"box-sizing":           "content-box",
	"top":                  "auto",
	"right":                "auto",
	"bottom":               "auto",
	"left":                 "auto",
	"margin-top":           "0",
	"margin-left":          "0",
	"margin-right":         "0",
	"margin-bottom":        "0",
	"padding-top":          "0",
	"padding-left":         "0",
	"padding-right":        "0",
	"padding-bottom":       "0",
	"border-top-width":     "0",
	"border-left-width":    "0",
	"border-right-width":   "0",
	"border-bottom-width":  "0",
	"position":             "static",
	"float":                "none",
	"visibility":           "visible",
	"overflow-x":           "visible",
	"overflow-y":           "visible",
	"cursor":               "auto",
	"color":                "black",
	"background-color":     "transparent",
	"direction":            "ltr",
	"font-family":          "sans-serif",
	"font-size":            "16px",
	"font-style":           "normal",
	"font-weight":          "normal",
	"line-height":          "normal",
	"letter-spacing":       "0",
	"word-spacing":         "0",
	"white-space":          "normal",
	"hyphens":              "manual",
	"text-align":           "start",
	"vertical-align":       "baseline",
	"writing-mode":         "horizontal-tb",
	"text-orientation":     "mixed",
	"text-combine-upright": "none",
	"flex-direction":       "row",
	"flex-wrap":            "nowrap",
	"flex-grow":            "0",
	"flex-shrink":          "1",
	"flex-basis":           "auto",
	"justify-content":      "flex-start",
	"align-items":          "stretch",
	"align-self":           "auto",
	"align-content":        "stretch",
	"order":                "0",
}

// Per-element user-agent rules, following the usual browser defaults
// (Chrome UA stylesheet for body margins, CSS 2.1 informative appendix
// for the rest).
var uaElementStyles = map[string]map[string]string{
	"body": {
		"margin-top":    "8px",
		"margin-bottom": "8px",
		"margin-left":   "8px",
		"margin-right":  "8px",
	},
	"p":  {"margin-top": "1em", "margin-bottom": "1em"},
	"h1": {"font-size": "2em", "font-weight": "bold", "margin-top": "0.67em", "margin-bottom": "0.67em"},
	"h2": {"font-size": "1.5em", "font-weight": "bold", "margin-top": "0.83em", "margin-bottom": "0.83em"},
	"h3": {"font-size": "1.17em", "font-weight": "bold", "margin-top": "1em", "margin-bottom": "1em"},
	"h4": {"font-size": "1em", "font-weight": "bold", "margin-top": "1.33em", "margin-bottom": "1.33em"},
	"h5": {"font-size": "0.83em", "font-weight": "bold", "margin-top": "1.67em", "margin-bottom": "1.67em"},
	"h6": {"font-size": "0.67em", "font-weight": "bold", "margin-top": "2.33em", "margin-bottom": "2.33em"},
	"b":  {"font-weight": "bold"},
	"strong": {
		"font-weight": "bold",
	},
	"i":  {"font-style": "italic"},
	"em": {"font-style": "italic"},
	"a": {
		"color":  "blue",
		"cursor": "pointer",
	},
	"button": {
		"cursor": "pointer",
	},
	"pre": {
		"font-family": "monospace",
		"white-space": "pre",
	},
	"code": {"font-family": "monospace"},
}

// InitialValue returns the CSS initial value for a property key.
func InitialValue(key string) Property {
	if v, ok := initialValues[key]; ok {
		return Property(v)
	}
	return NullStyle
}

// UserAgentStyles returns the user-agent rule set for an element name,
// or nil if the UA stylesheet has no rule for it.
func UserAgentStyles(elementName string) map[string]string {
	return uaElementStyles[elementName]
}

// UserAgentDefaultProperty returns the user-agent default property for a
// given key on a given HTML node. The per-element UA stylesheet is
// consulted first, then the property's initial value.
func UserAgentDefaultProperty(node *html.Node, key string) Property {
	if node != nil && node.Type == html.ElementNode {
		if styles := uaElementStyles[node.Data]; styles != nil {
			if v, ok := styles[key]; ok {
				return Property(v)
			}
		}
		if key == "display" {
			return DisplayPropertyForHTMLNode(node)
		}
	}
	return InitialValue(key)
}

// DisplayPropertyForHTMLNode returns the default display property for an
// HTML node type, as described by the CSS specification.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.TextNode {
		return "inline"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	switch node.Data {
	case "html", "body", "div", "section", "article", "nav", "header", "footer":
		return "block"
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "pre":
		return "block"
	case "span", "i", "b", "em", "strong", "small", "a", "code", "label":
		return "inline"
	case "button", "img":
		return "inline-block"
	case "head", "script", "style", "meta", "link", "title":
		return "none"
	}
	return "block"
}
