package monospace

import (
	"io"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/text"
)

type msshape struct {
	em               dimen.DU
	graphemeSplitter *segment.Segmenter
	context          *uax11.Context
}

// Shaper creates a shaper for monospace typesetting.
// An em-dimension may be given which will then be used for shaping text.
// If it is zero, it will be set to 10pt.
func Shaper(em dimen.DU, context *uax11.Context) text.Shaper {
	if em == 0 {
		em = 10 * dimen.PT
	}
	sh := &msshape{
		em:      em,
		context: context,
	}
	if context == nil {
		sh.context = uax11.LatinContext
	}
	onGraphemes := grapheme.NewBreaker(1)
	sh.graphemeSplitter = segment.NewSegmenter(onGraphemes)
	grapheme.SetupGraphemeClasses()
	return sh
}

// Shape creates a glyph sequence from a text. One glyph is produced per
// grapheme; its advance is the em-width, doubled for East Asian wide
// characters. Vertical typesetting directions advance along the y-axis
// by one em per grapheme.
func (ms *msshape) Shape(input io.RuneReader, buf []text.ShapedGlyph, ctx [][]rune,
	p text.Params) (text.GlyphSequence, error) {
	//
	if input == nil {
		return text.GlyphSequence{}, nil
	}
	seq := text.GlyphSequence{Glyphs: buf}
	if seq.Glyphs == nil {
		seq.Glyphs = make([]text.ShapedGlyph, 0, 256)
	} else {
		seq.Glyphs = seq.Glyphs[:0]
	}
	ms.graphemeSplitter.Init(input)
	cluster := 0 // rune index of the current grapheme's first rune
	for ms.graphemeSplitter.Next() {
		grphm := ms.graphemeSplitter.Bytes()
		w := uax11.Width(grphm, ms.context)
		codepoint, _ := utf8.DecodeRune(grphm)
		g := text.ShapedGlyph{
			ClusterID: cluster,
			CodePoint: codepoint,
		}
		g.XAdvance = dimen.DU(w) * ms.em
		if p.Direction.IsVertical() {
			g.YAdvance = ms.em // one cell per grapheme along the column
		}
		seq.Glyphs = append(seq.Glyphs, g)
		seq.W += g.XAdvance
		cluster += len([]rune(string(grphm)))
	}
	seq.H = ms.em * 3 / 5
	seq.D = ms.em * 2 / 5
	return seq, nil
}

var _ text.Shaper = &msshape{}
