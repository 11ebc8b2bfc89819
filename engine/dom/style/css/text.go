package css

import (
	"github.com/npillmayer/vitrine/engine/dom/style"
)

// WritingMode is a type for CSS property "writing-mode".
type WritingMode uint8

// Writing modes.
const (
	HorizontalTB WritingMode = iota // horizontal lines, stacked top to bottom
	VerticalRL                      // vertical lines, stacked right to left
	VerticalLR                      // vertical lines, stacked left to right
)

func (wm WritingMode) String() string {
	switch wm {
	case VerticalRL:
		return "vertical-rl"
	case VerticalLR:
		return "vertical-lr"
	}
	return "horizontal-tb"
}

// IsVertical is true for vertical writing modes, where the inline
// progression axis is the y-axis.
func (wm WritingMode) IsVertical() bool {
	return wm == VerticalRL || wm == VerticalLR
}

// ParseWritingMode converts a writing-mode property. Unknown values
// yield horizontal-tb.
func ParseWritingMode(p style.Property) WritingMode {
	switch p {
	case "vertical-rl":
		return VerticalRL
	case "vertical-lr":
		return VerticalLR
	}
	return HorizontalTB
}

// TextOrientation is a type for CSS property "text-orientation".
// It only applies in vertical writing modes.
type TextOrientation uint8

// Text orientations.
const (
	OrientMixed    TextOrientation = iota // upright for upright scripts, rotated otherwise
	OrientUpright                         // every glyph upright
	OrientSideways                        // every glyph rotated 90° clockwise
)

func (to TextOrientation) String() string {
	switch to {
	case OrientUpright:
		return "upright"
	case OrientSideways:
		return "sideways"
	}
	return "mixed"
}

// ParseTextOrientation converts a text-orientation property. Unknown
// values yield mixed orientation.
func ParseTextOrientation(p style.Property) TextOrientation {
	switch p {
	case "upright":
		return OrientUpright
	case "sideways":
		return OrientSideways
	}
	return OrientMixed
}

// TextAlign is a type for CSS property "text-align".
type TextAlign uint8

// Alignment of inline content within line boxes.
const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignCenter
	AlignJustify
)

func (ta TextAlign) String() string {
	switch ta {
	case AlignEnd:
		return "end"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	}
	return "start"
}

// ParseTextAlign converts a text-align property. Unknown values yield
// start alignment; the legacy left/right keywords map to start/end.
func ParseTextAlign(p style.Property) TextAlign {
	switch p {
	case "end", "right":
		return AlignEnd
	case "center":
		return AlignCenter
	case "justify":
		return AlignJustify
	}
	return AlignStart
}

// --- Cursor ----------------------------------------------------------------

// Cursor is a type for CSS property "cursor".
type Cursor uint8

// Cursor icons; the subset a desktop shell is expected to provide.
const (
	CursorAuto Cursor = iota // resolve from content (text → caret, else arrow)
	CursorDefault
	CursorText
	CursorPointer // "hand"
	CursorMove
	CursorGrab
	CursorCrosshair
	CursorWait
	CursorNotAllowed
	CursorColResize
	CursorRowResize
)

var cursorStrings = map[Cursor]string{
	CursorAuto:       "auto",
	CursorDefault:    "default",
	CursorText:       "text",
	CursorPointer:    "pointer",
	CursorMove:       "move",
	CursorGrab:       "grab",
	CursorCrosshair:  "crosshair",
	CursorWait:       "wait",
	CursorNotAllowed: "not-allowed",
	CursorColResize:  "col-resize",
	CursorRowResize:  "row-resize",
}

func (c Cursor) String() string {
	if s, ok := cursorStrings[c]; ok {
		return s
	}
	return "auto"
}

// ParseCursor converts a cursor property. Unknown values yield auto.
func ParseCursor(p style.Property) Cursor {
	for c, s := range cursorStrings {
		if string(p) == s {
			return c
		}
	}
	return CursorAuto
}

// IsDefault is true for cursors which do not override content cursors.
func (c Cursor) IsDefault() bool {
	return c == CursorAuto || c == CursorDefault
}
