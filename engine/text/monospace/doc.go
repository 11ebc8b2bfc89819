/*
Package monospace implements a shaper for monospaced text.

Monospaced shaping needs no font tables: every grapheme advances by a
fixed em-multiple, with East Asian wide characters occupying two cells
(UAX#11). This makes the shaper fully deterministic, which the layout
tests rely on.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package monospace
