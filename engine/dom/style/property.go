package style

import (
	"fmt"
	"strings"
)

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit".
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- CSS property groups ---------------------------------------------------

// PropertyGroup is a collection of properties sharing a common topic.
// CSS knows a whole lot of properties. We split them up into organisatorial
// groups.
//
// The mapping of property into groups is documented with
// GroupNameFromPropertyKey.
type PropertyGroup struct {
	name      string
	Parent    *PropertyGroup
	propsDict map[string]Property
	important map[string]bool
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	pg := &PropertyGroup{}
	pg.name = groupname
	return pg
}

// Name returns the name of the property group. Once named (during
// construction), property groups may not be renamed.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	s := "[" + pg.name + "] =\n"
	for k, v := range pg.propsDict {
		s += fmt.Sprintf("  %s = %s\n", k, v)
	}
	return s
}

// Properties returns all properties of a group.
func (pg *PropertyGroup) Properties() []KeyValue {
	i := 0
	props := make([]KeyValue, len(pg.propsDict))
	for k, v := range pg.propsDict {
		props[i] = KeyValue{k, v}
		i++
	}
	return props
}

// IsSet is a predicate wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg.propsDict == nil {
		return false
	}
	_, ok := pg.propsDict[key]
	return ok
}

// Get a property's value within this group. Returns NullStyle and false
// if the property is not set locally.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value within this group. An important declaration will
// not be overwritten by a non-important one.
func (pg *PropertyGroup) Set(key string, p Property) {
	pg.SetImportant(key, p, false)
}

// SetImportant sets a property's value, marking it with the CSS
// `!important` flag. Important values win over later non-important ones.
func (pg *PropertyGroup) SetImportant(key string, p Property, important bool) {
	p = p.expand()
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	if pg.important[key] && !important {
		return
	}
	pg.propsDict[key] = p
	if important {
		if pg.important == nil {
			pg.important = make(map[string]bool)
		}
		pg.important[key] = true
	}
}

// IsImportant is a predicate wether a property carries the `!important` flag.
func (pg *PropertyGroup) IsImportant(key string) bool {
	return pg.important[key]
}

// expand substitutes known aliases.
func (p Property) expand() Property {
	switch p {
	case "thin":
		return "1px"
	case "medium":
		return "3px"
	case "thick":
		return "5px"
	}
	return p
}

// Cascade finds the ancesting PropertyGroup containing the given
// property-key, starting at this group.
func (pg *PropertyGroup) Cascade(key string) *PropertyGroup {
	it := pg
	for it != nil && !it.IsSet(key) {
		it = it.Parent
	}
	return it
}

// --- Property group catalogue ----------------------------------------------

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGMargins   = "Margins"
	PGPadding   = "Padding"
	PGBorder    = "Border"
	PGDimension = "Dimension"
	PGDisplay   = "Display"
	PGFlex      = "Flex"
	PGColor     = "Color"
	PGText      = "Text"
	PGX         = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"margin-top":                 PGMargins,
	"margin-left":                PGMargins,
	"margin-right":               PGMargins,
	"margin-bottom":              PGMargins,
	"padding-top":                PGPadding,
	"padding-left":               PGPadding,
	"padding-right":              PGPadding,
	"padding-bottom":             PGPadding,
	"border-top-color":           PGBorder,
	"border-left-color":          PGBorder,
	"border-right-color":         PGBorder,
	"border-bottom-color":        PGBorder,
	"border-top-width":           PGBorder,
	"border-left-width":          PGBorder,
	"border-right-width":         PGBorder,
	"border-bottom-width":        PGBorder,
	"border-top-style":           PGBorder,
	"border-left-style":          PGBorder,
	"border-right-style":         PGBorder,
	"border-bottom-style":        PGBorder,
	"border-top-left-radius":     PGBorder,
	"border-top-right-radius":    PGBorder,
	"border-bottom-left-radius":  PGBorder,
	"border-bottom-right-radius": PGBorder,
	"width":                      PGDimension,
	"height":                     PGDimension,
	"min-width":                  PGDimension,
	"min-height":                 PGDimension,
	"max-width":                  PGDimension,
	"max-height":                 PGDimension,
	"box-sizing":                 PGDimension,
	"top":                        PGDimension,
	"right":                      PGDimension,
	"bottom":                     PGDimension,
	"left":                       PGDimension,
	"display":                    PGDisplay,
	"float":                      PGDisplay,
	"visibility":                 PGDisplay,
	"position":                   PGDisplay,
	"overflow":                   PGDisplay,
	"overflow-x":                 PGDisplay,
	"overflow-y":                 PGDisplay,
	"cursor":                     PGDisplay,
	"flex-direction":             PGFlex,
	"flex-wrap":                  PGFlex,
	"flex-grow":                  PGFlex,
	"flex-shrink":                PGFlex,
	"flex-basis":                 PGFlex,
	"justify-content":            PGFlex,
	"align-items":                PGFlex,
	"align-self":                 PGFlex,
	"align-content":              PGFlex,
	"order":                      PGFlex,
	"color":                      PGColor,
	"background-color":           PGColor,
	"direction":                  PGText,
	"font-family":                PGText,
	"font-size":                  PGText,
	"font-style":                 PGText,
	"font-weight":                PGText,
	"line-height":                PGText,
	"letter-spacing":             PGText,
	"word-spacing":               PGText,
	"white-space":                PGText,
	"word-break":                 PGText,
	"word-wrap":                  PGText,
	"hyphens":                    PGText,
	"text-align":                 PGText,
	"vertical-align":             PGText,
	"writing-mode":               PGText,
	"text-orientation":           PGText,
	"text-combine-upright":       PGText,
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//
//	GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = PGX
	}
	return groupname
}

// IsCascading returns wether the standard behaviour for a property is to be
// inherited, i.e., a call to retrieve its value will cascade to ancestors.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "visibility", "white-space":
		return true
	case "font-family", "font-size", "font-style", "font-weight":
		return true
	case "letter-spacing", "line-height", "quotes", "word-spacing":
		return true
	case "word-break", "word-wrap", "hyphens", "text-align":
		return true
	case "writing-mode", "text-orientation", "text-combine-upright":
		return true
	}
	return false
}

// SplitCompoundProperty splits up a shorthand property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//
//	SplitCompoundProperty("padding", "3px")
//
// will return
//
//	"padding-top"    => "3px"
//	"padding-right"  => "3px"
//	"padding-bottom" => "3px"
//	"padding-left"   => "3px"
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	case "overflow":
		if len(fields) == 1 {
			return []KeyValue{
				{"overflow-x", Property(fields[0])},
				{"overflow-y", Property(fields[0])},
			}, nil
		} else if len(fields) == 2 {
			return []KeyValue{
				{"overflow-x", Property(fields[0])},
				{"overflow-y", Property(fields[1])},
			}, nil
		}
	case "flex":
		// flex: <grow> [<shrink> [<basis>]]
		switch len(fields) {
		case 1:
			return []KeyValue{
				{"flex-grow", Property(fields[0])},
				{"flex-shrink", "1"},
				{"flex-basis", "auto"},
			}, nil
		case 2:
			return []KeyValue{
				{"flex-grow", Property(fields[0])},
				{"flex-shrink", Property(fields[1])},
				{"flex-basis", "auto"},
			}, nil
		case 3:
			return []KeyValue{
				{"flex-grow", Property(fields[0])},
				{"flex-shrink", Property(fields[1])},
				{"flex-basis", Property(fields[2])},
			}, nil
		}
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// CSS logic to distribute individual values from compound shorthands:
// 1 value sets all 4, 2 values set (top/bottom, left/right), etc.
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s-%s", pre, suf)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-right", "bottom-right", "bottom-left", "top-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}

// --- Property map ----------------------------------------------------------

// PropertyMap holds CSS properties. nil is a legal (empty) property map.
// A property map is the entity styling a DOM node: a DOM node links to a
// property map, which contains zero or more property groups.
type PropertyMap struct {
	m map[string]*PropertyGroup
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

func (pmap *PropertyMap) String() string {
	s := "Property Map = {\n"
	if pmap != nil {
		for _, v := range pmap.m {
			s += v.String()
		}
	}
	s += "}"
	return s
}

// Size returns the number of property groups.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Group returns the property group for a group name or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil || pmap.m == nil {
		return nil
	}
	return pmap.m[groupname]
}

// Property returns a style property value, together with an indicator
// wether it has been found in the properties map.
// No cascading is performed.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// Add sets a property value in the appropriate group, creating the group
// if necessary. Shorthand properties are split into their components.
func (pmap *PropertyMap) Add(key string, value Property) *PropertyMap {
	return pmap.AddImportant(key, value, false)
}

// AddImportant sets a property value, optionally marked `!important`.
func (pmap *PropertyMap) AddImportant(key string, value Property, important bool) *PropertyMap {
	if pmap == nil {
		pmap = NewPropertyMap()
	}
	if kv, err := SplitCompoundProperty(key, value); err == nil {
		for _, item := range kv {
			pmap = pmap.AddImportant(item.Key, item.Value, important)
		}
		return pmap
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.m[groupname]
	if group == nil {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.SetImportant(key, value, important)
	return pmap
}

// Each calls f for every property set in the map.
func (pmap *PropertyMap) Each(f func(key string, value Property)) {
	if pmap == nil {
		return
	}
	for _, group := range pmap.m {
		for k, v := range group.propsDict {
			f(k, v)
		}
	}
}
