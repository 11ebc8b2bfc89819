/*
Package layout solves CSS layout for a styled document.

The solver walks the box tree produced by package boxtree and assigns
absolute rectangles to every box, dispatching by formatting context:

▪︎ block formatting contexts stack children along the block axis, with
margin collapsing per CSS 2.1 §8.3.1;

▪︎ inline formatting contexts delegate to the inline text engine of
package text, which returns positioned glyphs and line records;

▪︎ flex formatting contexts run the flex algorithm: flex base sizes,
grow/shrink resolution with min/max clamping, line wrapping, main-axis
justification and cross-axis alignment.

Absolutely positioned boxes are sized and placed against their nearest
positioned ancestor, fixed boxes against the viewport. Boxes whose
content exceeds their content box and whose overflow policy permits
scrolling are registered as scroll nodes for the scroll manager.

Layout always produces a result: pathological values clamp to finite
rectangles, errors are traced and degrade to empty content.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.frame'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.frame")
}
