package css

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/vitrine/engine/dom/style"
)

// DisplayMode is a type for CSS property "display". A display mode
// combines an outer mode (how the box participates in its parent's
// formatting context) with an inner mode (which formatting context the
// box establishes for its children).
type DisplayMode uint16

// Flags for display mode.
const (
	NoMode      DisplayMode = 0    // unset
	DisplayNone DisplayMode = 0x01 // display: none
	// outer modes
	BlockMode  DisplayMode = 0x02
	InlineMode DisplayMode = 0x04
	// inner modes
	InnerBlockMode  DisplayMode = 0x10 // establishes block formatting context
	InnerInlineMode DisplayMode = 0x20 // establishes inline formatting context
	InnerFlexMode   DisplayMode = 0x40 // establishes flex formatting context
)

var allDisplayModes = []DisplayMode{
	DisplayNone, BlockMode, InlineMode, InnerBlockMode, InnerInlineMode, InnerFlexMode,
}

var displayModeStrings = map[DisplayMode]string{
	NoMode:          "no-mode",
	DisplayNone:     "none",
	BlockMode:       "block",
	InlineMode:      "inline",
	InnerBlockMode:  "flow-root",
	InnerInlineMode: "flow",
	InnerFlexMode:   "flex",
}

func (disp DisplayMode) String() string {
	if s, ok := displayModeStrings[disp]; ok {
		return s
	}
	return disp.FullString()
}

// FullString returns all atomic modes set in a display mode.
func (disp DisplayMode) FullString() string {
	var b bytes.Buffer
	first := true
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(displayModeStrings[m])
		}
	}
	return b.String()
}

// Contains returns true if a display mode contains a given atomic mode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

// Outer returns the outer display mode of disp.
func (disp DisplayMode) Outer() DisplayMode {
	return disp & (BlockMode | InlineMode | DisplayNone)
}

// Inner returns the inner display mode of disp.
func (disp DisplayMode) Inner() DisplayMode {
	return disp & (InnerBlockMode | InnerInlineMode | InnerFlexMode)
}

// ParseDisplay returns mode flags from a display property string.
func ParseDisplay(display string) (DisplayMode, error) {
	if display == "" {
		return NoMode, nil
	}
	switch display {
	case "none":
		return DisplayNone, nil
	case "block":
		return BlockMode | InnerBlockMode, nil
	case "inline":
		return InlineMode | InnerInlineMode, nil
	case "inline-block":
		return InlineMode | InnerBlockMode, nil
	case "flex":
		return BlockMode | InnerFlexMode, nil
	case "inline-flex":
		return InlineMode | InnerFlexMode, nil
	case "flow-root":
		return BlockMode | InnerBlockMode, nil
	}
	return BlockMode | InnerBlockMode, fmt.Errorf("unknown display mode: %s", display)
}

// DisplayModeOption converts a display property to a mode, falling back
// to block for unknown values.
func DisplayModeOption(p style.Property) DisplayMode {
	mode, err := ParseDisplay(p.String())
	if err != nil {
		tracer().Errorf("unrecognized display property: %s", p)
	}
	return mode
}

// --- Position --------------------------------------------------------------

// Position is a type for CSS property "position".
type Position uint8

// Positioning schemes.
const (
	Static Position = iota
	Relative
	Absolute
	Fixed
)

func (pos Position) String() string {
	switch pos {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case Fixed:
		return "fixed"
	}
	return "static"
}

// ParsePosition converts a position property to a positioning scheme.
// Unknown values yield static positioning.
func ParsePosition(p style.Property) Position {
	switch p {
	case "relative":
		return Relative
	case "absolute":
		return Absolute
	case "fixed":
		return Fixed
	}
	return Static
}

// IsPositioned is true for boxes which establish an anchor for
// absolutely positioned descendants.
func (pos Position) IsPositioned() bool {
	return pos != Static
}

// --- Overflow --------------------------------------------------------------

// Overflow is a type for CSS properties "overflow-x" and "overflow-y".
type Overflow uint8

// Overflow policies.
const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

func (ov Overflow) String() string {
	switch ov {
	case OverflowHidden:
		return "hidden"
	case OverflowScroll:
		return "scroll"
	case OverflowAuto:
		return "auto"
	}
	return "visible"
}

// ParseOverflow converts an overflow property. Unknown values yield
// visible overflow.
func ParseOverflow(p style.Property) Overflow {
	switch p {
	case "hidden":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	case "auto":
		return OverflowAuto
	}
	return OverflowVisible
}

// MayScroll is true for overflow policies which permit scrolling.
func (ov Overflow) MayScroll() bool {
	return ov == OverflowScroll || ov == OverflowAuto
}
