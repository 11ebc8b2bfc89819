package style

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":       {0, 0, 0, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0, 0, 0xff},
	"green":       {0, 0x80, 0, 0xff},
	"lime":        {0, 0xff, 0, 0xff},
	"blue":        {0, 0, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0, 0xff},
	"cyan":        {0, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0, 0xff, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"silver":      {0xc0, 0xc0, 0xc0, 0xff},
	"maroon":      {0x80, 0, 0, 0xff},
	"navy":        {0, 0, 0x80, 0xff},
	"orange":      {0xff, 0xa5, 0, 0xff},
	"transparent": {0, 0, 0, 0},
}

// Color converts a property value to a color. Understood are the common
// keyword colors and #rgb / #rrggbb / #rrggbbaa hex notation. Unparsable
// values yield opaque black, following the rule that styling never fails.
func (p Property) Color() color.Color {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := hexColor(s[1:]); ok {
			return c
		}
	}
	return color.Black
}

func hexColor(s string) (color.RGBA, bool) {
	var r, g, b, a uint64
	var err error
	a = 0xff
	switch len(s) {
	case 3:
		r, err = strconv.ParseUint(strings.Repeat(s[0:1], 2), 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(strings.Repeat(s[1:2], 2), 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(strings.Repeat(s[2:3], 2), 16, 8)
		}
	case 6, 8:
		r, err = strconv.ParseUint(s[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(s[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(s[4:6], 16, 8)
		}
		if err == nil && len(s) == 8 {
			a, err = strconv.ParseUint(s[6:8], 16, 8)
		}
	default:
		return color.RGBA{}, false
	}
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, true
}

// Number converts a property value to a float, e.g. for flex-grow
// factors. Unparsable values yield 0.
func (p Property) Number() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(p)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Int converts a property value to an integer, e.g. for flex order.
// Unparsable values yield 0.
func (p Property) Int() int {
	i, err := strconv.Atoi(strings.TrimSpace(string(p)))
	if err != nil {
		return 0
	}
	return i
}
