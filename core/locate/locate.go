/*
Package locate finds fonts installed on the system.

Font loading is slow and may touch the file system, therefore clients
receive a promise and decide themselves when to block on it. Resolved
typecases are cached in the global font registry; repeated requests for
the same font and size are cheap.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package locate

import (
	"context"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vitrine/core"
	"github.com/npillmayer/vitrine/core/font"
	xfont "golang.org/x/image/font"
)

// tracer traces with key 'vitrine.core'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.core")
}

// FindFont locates a font file for a family name in the system's font
// directories.
func FindFont(family string) (string, error) {
	path, err := findfont.Find(family)
	if err != nil || path == "" {
		return "", core.WrapError(err, core.EMISSING, "no system font for %s", family)
	}
	return path, nil
}

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise will be resolved to a typecase, or an error, when
// the client blocks on TypeCase().
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

// ResolveTypeCase resolves a font typecase with a given size (in points).
// Lookup tries the global registry, then the system's font directories.
// If nothing matches, the fallback font steps in and the promise carries
// a non-nil error alongside it.
func ResolveTypeCase(name string, style xfont.Style, weight xfont.Weight,
	size float64) TypeCasePromise {
	//
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		if t, err := font.GlobalRegistry().TypeCase(name, size); err == nil {
			result.font = t
			ch <- result
			close(ch)
			return
		}
		var f *font.ScalableFont
		fpath, err := findfont.Find(fontFileName(name, style, weight))
		if err == nil && fpath != "" {
			tracer().Debugf("%s is a system font", name)
			f, result.err = font.LoadOpenTypeFont(fpath)
		}
		if f != nil {
			f.Fontname = name
			font.GlobalRegistry().StoreFont(f)
		}
		result.font, result.err = font.GlobalRegistry().TypeCase(name, size)
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

// fontFileName guesses a file name pattern for a font variant. findfont
// matches case-insensitive substrings, so the base family name is a
// reasonable last resort.
func fontFileName(family string, style xfont.Style, weight xfont.Weight) string {
	variant := ""
	if weight >= xfont.WeightSemiBold {
		variant += "Bold"
	}
	if style == xfont.StyleItalic || style == xfont.StyleOblique {
		variant += "Italic"
	}
	if variant == "" {
		return family
	}
	return strings.ReplaceAll(family, " ", "") + "-" + variant
}

// --- Desktop font provider -------------------------------------------------

// Provider returns a font provider backed by the system's font
// directories.
func Provider() font.Provider {
	return desktopProvider{}
}

type desktopProvider struct{}

func (desktopProvider) LoadFont(desc font.Descriptor) (*font.ScalableFont, error) {
	path, err := findfont.Find(fontFileName(desc.Family, desc.Style, desc.Weight))
	if err != nil || path == "" {
		tracer().Infof("no system font for %v, using fallback", desc.Family)
		return font.FallbackFont(), core.WrapError(err, core.EMISSING,
			"no system font for %s", desc.Family)
	}
	return font.LoadOpenTypeFont(path)
}
