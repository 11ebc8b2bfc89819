/*
Package render emits a back-end-neutral display list for a laid-out
document.

The emitter walks the box tree in paint order (back to front) and
produces a flat command list a window back-end can consume:

▪︎ Rect for backgrounds, Border for box borders;

▪︎ GlyphRun for the positioned glyphs of inline formatting contexts;

▪︎ PushClip/PopClip pairs around boxes which clip their overflow;

▪︎ ScrollFrame for registered scroll nodes, carrying the current offset;

▪︎ Image as a placeholder for replaced content resolved through an
ImageProvider.

Alongside the commands, the emitter records a hit area per painted box
and text run. List.HitTest resolves a point against these areas and
returns hits ordered by box-tree depth, the sequence the hit-test
resolver consumes for cursor and target resolution.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.render'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.render")
}
