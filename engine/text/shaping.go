package text

import (
	"fmt"
	"io"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/core/font"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case RightToLeft:
		return "right-to-left"
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	}
	return "left-to-right"
}

// IsVertical is true for vertical typesetting directions.
func (d Direction) IsVertical() bool {
	return d == TopToBottom || d == BottomToTop
}

// CharClass is a coarse character classification which steers
// justification and orientation decisions.
type CharClass uint8

// Character classes.
const (
	ClassLetter CharClass = iota
	ClassSpace
	ClassPunct
	ClassCJK       // ideographs, kana, hangul; candidates for inter-character justification
	ClassCombining // zero-width marks
)

// A ShapedGlyph lives in design space (result from the shaper, which
// lives in design space as well, at least its interface).
type ShapedGlyph struct {
	ClusterID int      // position of code-point(s) for this glyph in original string
	XAdvance  dimen.DU // advance after glyph has been set
	YAdvance  dimen.DU //
	XOffset   dimen.DU // position of anchor dot for glyph
	YOffset   dimen.DU //
	GID       uint32   // glyph index within font
	CodePoint rune     // code-point of first rune to produce this glyph
	Class     CharClass
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, advance=%s)", g.GID, g.XAdvance)
}

// A Shaper creates a sequence of glyphs from a sequence of Unicode
// code-points. Glyphs are taken from a font, given in a specific
// point-size.
//
// Clients may provide additional information in Params, as well as
// textual context ([2][]rune).
type Shaper interface {
	Shape(io.RuneReader, []ShapedGlyph, [][]rune, Params) (GlyphSequence, error)
}

// Params collects shaping parameters.
type Params struct {
	Font      *font.TypeCase  // use a font at a given point-size
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
	Features  []FeatureRange  // OpenType features to apply
}

// Tag is a 4-letter OpenType tag.
type Tag uint32

// MakeTag creates an OpenType tag from (the first 4 bytes of) a string.
func MakeTag(s string) Tag {
	b := []byte(s + "    ")[:4]
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or
// off for a run of code-points.
type FeatureRange struct {
	Feature    Tag  // 4-letter feature tag
	Arg        int  // optional argument for this feature
	On         bool // turn it on or off?
	Start, End int  // position of code-points to apply feature for
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs  []ShapedGlyph // resulting sequence of glyphs
	W, H, D dimen.DU      // width, height, depth of bounding box
}

// BoundingBox returns width, height and depth of a glyph sequence.
func (seq GlyphSequence) BoundingBox() (w dimen.DU, h dimen.DU, d dimen.DU) {
	return seq.W, seq.H, seq.D
}

// InlineExtent returns the extent of a glyph sequence along the inline
// progression axis for a given typesetting direction.
func (seq GlyphSequence) InlineExtent(dir Direction) dimen.DU {
	if !dir.IsVertical() {
		return seq.W
	}
	var ext dimen.DU
	for _, g := range seq.Glyphs {
		if g.YAdvance != 0 {
			ext += abs(g.YAdvance)
		} else {
			ext += g.XAdvance // rotated glyph advances with its horizontal metric
		}
	}
	return ext
}

func abs(d dimen.DU) dimen.DU {
	if d < 0 {
		return -d
	}
	return d
}
