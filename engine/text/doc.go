/*
Package text implements an inline text engine.

The engine solves the general problem of laying out a sequence of styled
inline content inside a possibly-non-rectangular region, under
configurable writing modes, text orientations and justification
policies. The pipeline runs in stages:

▪︎ Itemization walks the inline content, producing an ordered stream of
boxes (shapeable fragments), glue (stretchable space) and penalties
(break opportunities). Segmentation follows UAX#14 with a simple
whitespace recognizer as secondary breaker.

▪︎ Shaping turns the text of a box into positioned glyphs. The Shaper
interface decouples the engine from the shaping implementation; package
text/harfbuzz provides a production shaper, package text/monospace a
deterministic one for tests.

▪︎ Line-breaking maintains a cursor along the block-progression axis and
asks a parshape.Shape for the line segments available at each step.
Boxes and glue are fitted greedily; on overflow the line is re-broken at
the last feasible penalty, consulting a hyphenator for in-word splits.

▪︎ Alignment and justification distribute residual line space over glue
and, for CJK runs, over inter-character gaps.

▪︎ Vertical writing modes rotate or upright glyphs per their Unicode
vertical-orientation class and map line positions to physical
coordinates.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.text'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.text")
}
