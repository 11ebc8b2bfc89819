package text

import (
	"unicode"

	"github.com/npillmayer/vitrine/engine/dom/style/css"
)

// uprightRanges approximates the set of characters with Unicode
// vertical-orientation class U or Tu: scripts which stand upright in
// vertical text. Everything else is rotated 90° clockwise under
// orientation 'mixed'.
var uprightRanges = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	unicode.Bopomofo,
	unicode.Yi,
	cjkSymbols,
}

// CJK symbols and punctuation, enclosed and fullwidth forms.
var cjkSymbols = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3000, Hi: 0x303f, Stride: 1}, // CJK symbols and punctuation
		{Lo: 0x3200, Hi: 0x32ff, Stride: 1}, // enclosed CJK letters and months
		{Lo: 0xff01, Hi: 0xff60, Stride: 1}, // fullwidth forms
		{Lo: 0xffe0, Hi: 0xffe6, Stride: 1},
	},
}

// UprightInVerticalText reports whether a character keeps its upright
// orientation in vertical text under text-orientation 'mixed'.
func UprightInVerticalText(r rune) bool {
	return unicode.In(r, uprightRanges...)
}

// GlyphUpright decides the orientation of a glyph in vertical writing
// modes: upright, or rotated 90° clockwise. In horizontal writing modes
// glyphs are never upright-rotated, so false is returned.
func GlyphUpright(r rune, mode css.WritingMode, orientation css.TextOrientation) bool {
	if !mode.IsVertical() {
		return false
	}
	switch orientation {
	case css.OrientUpright:
		return true
	case css.OrientSideways:
		return false
	}
	return UprightInVerticalText(r)
}

// classOf assigns a coarse character class, steering justification.
func classOf(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case unicode.In(r, unicode.Mn, unicode.Me):
		return ClassCombining
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana,
		unicode.Hangul, unicode.Bopomofo, unicode.Yi):
		return ClassCJK
	case unicode.IsPunct(r):
		return ClassPunct
	}
	return ClassLetter
}

// classifyGlyphs assigns character classes to all glyphs of a sequence,
// derived from the code-point which produced each glyph.
func classifyGlyphs(seq GlyphSequence) GlyphSequence {
	for i := range seq.Glyphs {
		seq.Glyphs[i].Class = classOf(seq.Glyphs[i].CodePoint)
	}
	return seq
}

// combineDigits finds runs of up to maxDigits consecutive decimal digits.
// Under text-combine-upright such a run is packed into a single upright
// composite occupying one character slot. The return value maps the
// index of a run's first rune to the run's length.
func combineDigits(runes []rune, maxDigits int) map[int]int {
	runs := make(map[int]int)
	if maxDigits <= 0 {
		return runs
	}
	start, n := -1, 0
	flush := func() {
		if start >= 0 && n > 1 && n <= maxDigits {
			runs[start] = n
		}
		start, n = -1, 0
	}
	for i, r := range runes {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			n++
			continue
		}
		flush()
	}
	flush()
	return runs
}
