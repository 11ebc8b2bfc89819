/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a variant of a typeface with a certain weight,
slant, etc. An example is "Helvetica regular".

▪︎ A "typecase" is a scaled font, i.e. a font in a certain size.
The name is reminiscent of the wooden boxes of typesetters in the era
of metal type. An example is "Helvetica regular 11pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently, actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vitrine/core"
	"golang.org/x/image/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'vitrine.core'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.core")
}

// ScalableFont is an unscaled font variant, i.e. "Helvetica regular".
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a scaled font, i.e. "Helvetica regular 11pt".
type TypeCase struct {
	scalableFontParent *ScalableFont
	font               font.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
}

// NullTypeCase returns an empty typecase at a default size of 10pt.
func NullTypeCase() *TypeCase {
	return &TypeCase{
		font: nil,
		size: 10,
	}
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if f != nil {
		f.Filepath = fontfile
	}
	return f, err
}

// ParseOpenTypeFont interprets a byte sequence as an OpenType font
// (TTF or OTF).
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// PrepareCase scales a font to a given size (in points).
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	typecase := &TypeCase{}
	typecase.scalableFontParent = sf
	if fontsize < 5.0 || fontsize > 500.0 {
		tracer().Errorf("font size must be 5pt ≤ size ≤ 500pt, is %g (set to 10pt)", fontsize)
		fontsize = 10.0
	}
	options := &opentype.FaceOptions{
		Size: fontsize,
		DPI:  600,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err == nil {
		typecase.font = f
		typecase.size = fontsize
	}
	return typecase, err
}

// ScalableFontParent returns the unscaled font this typecase was
// derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the point size of this typecase.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// --- Font provider ---------------------------------------------------------

// Descriptor selects a font variant within a typeface family.
type Descriptor struct {
	Family string
	Style  xfont.Style
	Weight xfont.Weight
}

// Provider locates scalable fonts for descriptors. Platform shells plug
// in their own provider; a file-system based one is found in package
// core/locate.
type Provider interface {
	LoadFont(desc Descriptor) (*ScalableFont, error)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// --- Font registry ---------------------------------------------------------

// Registry is a cache for loaded fonts and typecases derived from them.
// It is safe for concurrent use.
type Registry struct {
	sync.Mutex
	fonts     map[string]*ScalableFont
	typecases map[string]*TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is the application-wide font registry.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*ScalableFont),
		typecases: make(map[string]*TypeCase),
	}
	return fr
}

// StoreFont caches a scalable font under its normalized name.
func (fr *Registry) StoreFont(f *ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(f.Fontname)
	tracer().Debugf("registry stores font %s as %s", f.Fontname, fname)
	fr.fonts[fname] = f
}

// TypeCase returns a typecase of a given size, derived from a registered
// font. If the font is unknown, the fallback font steps in and a non-nil
// error is returned together with the fallback typecase.
func (fr *Registry) TypeCase(name string, size float64) (*TypeCase, error) {
	fname := NormalizeFontname(name)
	tname := NormalizeTypeCaseName(name, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	if f, ok := fr.fonts[fname]; ok {
		t, err := f.PrepareCase(size)
		tracer().Infof("font registry has font %s, caches at %.2f", fname, size)
		t.scalableFontParent = f
		fr.typecases[tname] = t
		return t, err
	}
	tracer().Infof("registry does not contain font %s", name)
	err := core.Error(core.EMISSING, "font %s not found in registry", name)
	tname = NormalizeTypeCaseName("fallback", size)
	if t, ok := fr.typecases[tname]; ok {
		return t, err
	}
	f := FallbackFont()
	t, _ := f.PrepareCase(size)
	tracer().Infof("font registry caches fallback font %s at %.2f", tname, size)
	fr.fonts[NormalizeFontname("fallback")] = f
	fr.typecases[tname] = t
	return t, err
}

// NormalizeFontname decapitalizes a font name and strips whitespace and a
// possible file extension.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// NormalizeTypeCaseName appends the size to a normalized font name.
func NormalizeTypeCaseName(fname string, size float64) string {
	fname = NormalizeFontname(fname)
	fname = fmt.Sprintf("%s-%.2f", fname, size)
	return fname
}

// ---------------------------------------------------------------------------

// MatchStyle checks if a font variant name denotes a given style.
func MatchStyle(variantName string, style xfont.Style) bool {
	switch style {
	case xfont.StyleNormal:
		switch variantName {
		case "regular", "100", "200", "300", "400", "500":
			return true
		}
		return false
	case xfont.StyleItalic, xfont.StyleOblique:
		switch variantName {
		case "italic", "100italic", "200italic", "300italic", "400italic", "500italic":
			return true
		}
		return false
	}
	return false
}

// MatchWeight checks if a font variant name denotes a given weight.
// x/image/font counts weights from -3 (thin) to +5 (black), with 0 for
// the CSS font-weight value of 400.
func MatchWeight(variantName string, weight xfont.Weight) bool {
	if strconv.Itoa((int(weight)+4)*100) == variantName {
		return true
	}
	switch variantName {
	case "regular", "100", "200", "300", "400", "500":
		switch weight {
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight,
			xfont.WeightNormal, xfont.WeightMedium:
			return true
		}
	case "bold", "600", "700", "800", "900":
		switch weight {
		case xfont.WeightSemiBold, xfont.WeightBold, xfont.WeightExtraBold,
			xfont.WeightBlack:
			return true
		}
	}
	return false
}
