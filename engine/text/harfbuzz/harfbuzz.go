/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/core/font"
	"github.com/npillmayer/vitrine/engine/text"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'vitrine.text'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.text")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d text.Direction) hb.Direction {
	switch d {
	case text.LeftToRight:
		return hb.LeftToRight
	case text.RightToLeft:
		return hb.RightToLeft
	case text.TopToBottom:
		return hb.TopToBottom
	case text.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// FeatureRange4HB converts a feature range struct to a HarfBuzz feature
// switch.
func FeatureRange4HB(frng text.FeatureRange) hb.Feature {
	f := hb.Feature{
		Tag:   hbtt.Tag(frng.Feature),
		Start: frng.Start,
		End:   frng.End,
	}
	if frng.On {
		if frng.Arg > 0 {
			f.Value = uint32(frng.Arg)
		} else {
			f.Value = 1
		}
	}
	return f
}

// --- Font cache ------------------------------------------------------------

// HarfBuzz parses a font's tables once; re-parsing for every shaping
// call would dominate the run time.
var fontCache sync.Map // *font.ScalableFont → *hb.Font

func hbFont(sf *font.ScalableFont) (*hb.Font, error) {
	if f, ok := fontCache.Load(sf); ok {
		return f.(*hb.Font), nil
	}
	hbFace, err := hbtt.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		return nil, err
	}
	f := hb.NewFont(hbFace)
	fontCache.Store(sf, f)
	return f, nil
}

// --- Shaper ----------------------------------------------------------------

type hbshape struct{}

// Shaper returns a HarfBuzz-backed shaper.
func Shaper() text.Shaper {
	return hbshape{}
}

func (hbshape) Shape(input io.RuneReader, buf []text.ShapedGlyph, context [][]rune,
	params text.Params) (text.GlyphSequence, error) {
	return Shape(input, buf, context, params)
}

var _ text.Shaper = hbshape{}

// Shape calls the HarfBuzz shaper.
//
// Shape shapes a sequence of code-points (runes), turning its Unicode
// characters to positioned glyphs. It will select a shape plan based on
// params, including the selected font, and the properties of the input
// text.
//
// If params.Features is not empty, it will be used to control the
// features applied during shaping. If two features have the same tag
// but overlapping ranges the value of the feature with the higher index
// takes precedence.
//
// params.Font must be set, otherwise no output is created.
//
// Clients may provide buf to avoid allocating memory by Shape. Shape
// will wrap it into the GlyphSequence returned.
func Shape(input io.RuneReader, buf []text.ShapedGlyph, context [][]rune,
	params text.Params) (text.GlyphSequence, error) {
	//
	if input == nil || params.Font == nil {
		return text.GlyphSequence{}, nil
	}
	hbF, err := hbFont(params.Font.ScalableFontParent())
	if err != nil {
		return text.GlyphSequence{}, err
	}
	hbF.Ptem = float32(params.Font.PtSize())
	var hbProps hb.SegmentProperties
	convertParams(&hbProps, params)
	features := make([]hb.Feature, 0, len(params.Features))
	for _, feat := range params.Features {
		features = append(features, FeatureRange4HB(feat))
	}
	hbBuf := hb.NewBuffer()
	hbBuf.Props = hbProps
	bytesBuf, offset, length := bufferText(input, context)
	runes := bytes.Runes(bytesBuf.Bytes())
	hbBuf.AddRunes(runes, offset, length)
	hbBuf.Shape(hbF, features)
	if buf == nil || len(buf) < len(hbBuf.Info) {
		buf = make([]text.ShapedGlyph, len(hbBuf.Info))
	}
	seq := text.GlyphSequence{
		Glyphs: buf[:len(hbBuf.Info)],
	}
	sfont := params.Font.ScalableFontParent().SFNT
	upem := dimen.DU(sfont.UnitsPerEm())
	scale := dimen.DU(params.Font.PtSize() * float64(dimen.PT))
	for i, ginfo := range hbBuf.Info {
		gpos := &hbBuf.Pos[i]
		g := &seq.Glyphs[i]
		g.ClusterID = ginfo.Cluster
		g.GID = uint32(ginfo.Glyph)
		g.XAdvance = scaleUnits(dimen.DU(gpos.XAdvance), upem, scale)
		g.YAdvance = scaleUnits(dimen.DU(gpos.YAdvance), upem, scale)
		g.XOffset = scaleUnits(dimen.DU(gpos.XOffset), upem, scale)
		g.YOffset = scaleUnits(dimen.DU(gpos.YOffset), upem, scale)
		if g.ClusterID < len(runes) {
			g.CodePoint = runes[g.ClusterID]
		}
		seq.W += g.XAdvance
	}
	var sfntBuf sfnt.Buffer
	if metrics, merr := sfont.Metrics(&sfntBuf, fixed.Int26_6(scale),
		xfont.HintingNone); merr == nil {
		seq.H = dimen.DU(metrics.Ascent)
		seq.D = dimen.DU(metrics.Descent)
	}
	tracer().Debugf("harfbuzz shaped %d runes into %d glyphs", length, len(seq.Glyphs))
	return seq, nil
}

// scaleUnits converts design units of the font into device units at the
// requested size.
func scaleUnits(u, upem, size dimen.DU) dimen.DU {
	if upem == 0 {
		return u
	}
	return dimen.DU(int64(u) * int64(size) / int64(upem))
}

// convertParams is a helper function to convert shaping parameters to
// HarfBuzz's format.
func convertParams(hbProps *hb.SegmentProperties, params text.Params) {
	if params.Language != language.Und {
		hbProps.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		hbProps.Script = Script4HB(params.Script)
	}
	hbProps.Direction = Direction4HB(params.Direction)
}

// bufferText buffers the input text of a call to Shape(…) as a
// bytes.Buffer. To conform to HarfBuzz's API, context is pre-/appended
// to the input runes.
//
// bufferText returns the start position of the input within the
// returned buffer, together with the input's length (= rune count).
func bufferText(input io.RuneReader, context [][]rune) (buf bytes.Buffer, off int, length int) {
	var bytesBuf bytes.Buffer
	var r rune
	if len(context) > 0 && len(context[0]) > 0 {
		for off, r = range context[0] {
			bytesBuf.WriteRune(r)
		}
		off++
	}
	var sz int
	var err error
	for {
		if r, sz, err = input.ReadRune(); sz == 0 || err != nil {
			break
		}
		length++
		bytesBuf.WriteRune(r)
	}
	if len(context) > 1 && len(context[1]) > 0 {
		for _, r = range context[1] {
			bytesBuf.WriteRune(r)
		}
	}
	return bytesBuf, off, length
}
