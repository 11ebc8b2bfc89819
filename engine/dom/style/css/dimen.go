package css

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/core/option"
	"github.com/npillmayer/vitrine/engine/dom/style"
)

// PropertyType denotes symbolic property values, used as match keys.
type PropertyType uint16

const (
	Unset PropertyType = iota
	Auto
	Initial
	Inherit
	FontScaled    // dimension depends on font size (em, rem)
	ViewScaled    // dimension depends on viewport (vw, vh, vmin, vmax)
	ContentScaled // dimension depends on content (min-content etc.)
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenEM      uint32 = 0x0100
	dimenREM     uint32 = 0x0200
	dimenVW      uint32 = 0x0300
	dimenVH      uint32 = 0x0400
	dimenVMIN    uint32 = 0x0500
	dimenVMAX    uint32 = 0x0600
	dimenPRCNT   uint32 = 0x0700
	relativeMask uint32 = 0x0f00
)

// --- DimenT ----------------------------------------------------------------

// DimenT is an option type for CSS dimensions. Relative dimensions store
// their scale in milli-units, i.e. `1.5em` is stored as 1500.
type DimenT struct {
	d     dimen.DU
	flags uint32
}

// SomeDimen creates an optional dimen with an initial value of x.
func SomeDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an optional dimen without an initial value.
func Dimen() DimenT {
	return DimenT{d: 0, flags: dimenNone}
}

// AutoDimen creates an optional dimen with value `auto`.
func AutoDimen() DimenT {
	return DimenT{flags: dimenAuto}
}

// Match is part of interface option.Type.
func (o DimenT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(o, choices)
}

// Equals is part of interface option.Type.
func (o DimenT) Equals(other interface{}) bool {
	switch i := other.(type) {
	case DimenT:
		return o.d == i.d && o.flags == i.flags
	case dimen.DU:
		return o.IsAbsolute() && o.Unwrap() == i
	case int32:
		return o.IsAbsolute() && o.Unwrap() == dimen.DU(i)
	case int:
		return o.IsAbsolute() && o.Unwrap() == dimen.DU(i)
	case PropertyType:
		switch i {
		case Auto:
			return o.flags&kindMask == dimenAuto
		case Initial:
			return o.flags&kindMask == dimenInitial
		case Inherit:
			return o.flags&kindMask == dimenInherit
		case FontScaled:
			return o.flags&relativeMask == dimenEM || o.flags&relativeMask == dimenREM
		case ViewScaled:
			u := o.flags & relativeMask
			return u == dimenVW || u == dimenVH || u == dimenVMIN || u == dimenVMAX
		case ContentScaled:
			return o.flags&contentMask > 0
		}
	case string:
		if i == "%" {
			return o.flags&relativeMask == dimenPRCNT
		}
	}
	return false
}

// Unwrap returns the underlying dimension of o.
func (o DimenT) Unwrap() dimen.DU {
	return o.d
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsAbsolute returns true if o represents a valid absolute dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags == dimenAbsolute
}

// IsRelative returns true if o represents a valid relative dimension
// (`%`, `em`, etc.).
func (o DimenT) IsRelative() bool {
	return o.flags&relativeMask > 0
}

// IsPercent returns true if o is a `%`-dimension.
func (o DimenT) IsPercent() bool {
	return o.flags&relativeMask == dimenPRCNT
}

// IsAuto returns true if o has value `auto`.
func (o DimenT) IsAuto() bool {
	return o.flags&kindMask == dimenAuto
}

func (o DimenT) String() string {
	if o.IsNone() {
		return "DimenT.None"
	}
	switch o.flags & kindMask {
	case dimenAuto:
		return "auto"
	case dimenInitial:
		return "initial"
	case dimenInherit:
		return "inherit"
	}
	switch o.flags & contentMask {
	case DimenContentMax:
		return "max-content"
	case DimenContentMin:
		return "min-content"
	case DimenContentFit:
		return "fit-content"
	}
	if o.IsRelative() {
		if unit, ok := relUnitMap[o.flags&relativeMask]; ok {
			return fmt.Sprintf("%g%s", float64(o.d)/1000, unit)
		}
	}
	return o.d.String()
}

var relUnitMap = map[uint32]string{
	dimenEM:    "em",
	dimenREM:   "rem",
	dimenVW:    "vw",
	dimenVH:    "vh",
	dimenVMIN:  "vmin",
	dimenVMAX:  "vmax",
	dimenPRCNT: "%",
}

var relUnitStringMap = map[string]uint32{
	"em":   dimenEM,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
	"%":    dimenPRCNT,
}

// DimenOption returns an optional dimension type from a property value.
// It will never return an error, even with illegal input, but instead will
// then return an unset dimension.
func DimenOption(p style.Property) DimenT {
	switch p {
	case style.NullStyle:
		return Dimen()
	case "auto", "none":
		return DimenT{flags: dimenAuto}
	case "initial":
		return DimenT{flags: dimenInitial}
	case "inherit":
		return DimenT{flags: dimenInherit}
	case "min-content":
		return DimenT{flags: DimenContentMin}
	case "max-content":
		return DimenT{flags: DimenContentMax}
	case "fit-content":
		return DimenT{flags: DimenContentFit}
	}
	d, err := ParseDimen(string(p))
	if err != nil {
		return Dimen()
	}
	return d
}

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)(%|[a-z]{2,4})?$`)

// ParseDimen parses a string to return an optional dimension. Syntax is
// CSS units. Valid dimensions are
//
//	15px
//	80%
//	1.5em
func ParseDimen(s string) (DimenT, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return Dimen(), errors.New("format error parsing dimension")
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return Dimen(), errors.New("format error parsing dimension")
	}
	unit := ""
	if len(d) > 2 {
		unit = d[2]
	}
	var scale dimen.DU
	switch unit {
	case "", "px":
		scale = dimen.PX
	case "pt":
		scale = dimen.PT
	case "mm":
		scale = dimen.MM
	case "cm":
		scale = dimen.CM
	case "in":
		scale = dimen.IN
	case "su":
		scale = dimen.SU
	default:
		if u, ok := relUnitStringMap[unit]; ok {
			// relative units keep their scale in milli-units
			return DimenT{d: dimen.DU(math.Round(n * 1000)), flags: u}, nil
		}
		return Dimen(), errors.New("format error parsing dimension")
	}
	return DimenT{d: dimen.DU(math.Round(n * float64(scale))), flags: dimenAbsolute}, nil
}

// --- Resolution ------------------------------------------------------------

// Env is the resolution context for relative dimensions. Percentages
// resolve against Contain, font-relative units against FontSize and
// RootFontSize, viewport units against View.
type Env struct {
	FontSize     dimen.DU
	RootFontSize dimen.DU
	View         dimen.Point // viewport width and height
	Contain      dimen.DU    // containing length for %-values
}

// Resolve resolves a dimension to an absolute device unit, given a
// resolution context. Resolution is a total function for set dimensions
// which are not auto- or content-dependent; for those (and for unset
// dimensions) ok is false and the caller decides.
func (o DimenT) Resolve(env Env) (du dimen.DU, ok bool) {
	if o.IsAbsolute() {
		return o.d, true
	}
	if !o.IsRelative() {
		return 0, false
	}
	milli := func(base dimen.DU) dimen.DU {
		return dimen.DU(int64(o.d) * int64(base) / 1000)
	}
	switch o.flags & relativeMask {
	case dimenEM:
		return milli(env.FontSize), true
	case dimenREM:
		return milli(env.RootFontSize), true
	case dimenVW:
		return milli(env.View.X / 100), true
	case dimenVH:
		return milli(env.View.Y / 100), true
	case dimenVMIN:
		return milli(dimen.Min(env.View.X, env.View.Y) / 100), true
	case dimenVMAX:
		return milli(dimen.Max(env.View.X, env.View.Y) / 100), true
	case dimenPRCNT:
		return dimen.DU(int64(o.d) * int64(env.Contain) / 100000), true
	}
	return 0, false
}

// MaxDimen returns the greater of two dimensions. Unset dimensions lose
// against set ones.
func MaxDimen(d1, d2 DimenT) DimenT {
	if d1.IsNone() {
		return d2
	}
	if d2.IsNone() {
		return d1
	}
	if d1.IsAbsolute() && d2.IsAbsolute() {
		return SomeDimen(dimen.Max(d1.Unwrap(), d2.Unwrap()))
	}
	return d1
}

// MinDimen returns the lesser of two dimensions. Unset dimensions lose
// against set ones.
func MinDimen(d1, d2 DimenT) DimenT {
	if d1.IsNone() {
		return d2
	}
	if d2.IsNone() {
		return d1
	}
	if d1.IsAbsolute() && d2.IsAbsolute() {
		return SomeDimen(dimen.Min(d1.Unwrap(), d2.Unwrap()))
	}
	return d1
}

var _ option.Type = DimenT{}
