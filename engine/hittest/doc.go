/*
Package hittest resolves pointer positions against a laid-out document.

Input is the renderer's hit sequence, ordered by ascending box-tree
depth with the frontmost box last. The resolver is a pure function of
that sequence and the styled DOM; it never mutates state:

▪︎ the mouse cursor is decided by scanning hits front to back. A hit's
in-tag cursor (text runs declare theirs at emission time) is consulted
first, then the node's CSS cursor property. The frontmost non-default
cursor wins, so a button's explicit pointer beats an ancestor's cursor
choice;

▪︎ the click and keyboard target is the deepest hit under the pointer;

▪︎ the scroll target is the deepest scrollable ancestor able to move
along the requested axis.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package hittest

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.hittest'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.hittest")
}
