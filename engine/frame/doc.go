/*
Package frame deals with the CSS box model.

A Box holds the dimension properties of a document node during layout:
width and height as option types (which may be auto, relative or
content-dependent until the solver fixes them), plus padding, border
widths and margins for all four sides. Sizing respects the `box-sizing`
property: a box either interprets its width/height as content-box or as
border-box dimensions.

Package layout solves boxes to absolute device units; package frame only
provides the arithmetic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.frame'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.frame")
}
