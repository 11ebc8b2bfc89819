/*
Package css implements typed views onto raw CSS property values.

Raw properties (package style) are strings; layout needs dimensions,
display modes, positions and writing modes. The types in this package
wrap raw values into option types (see package core/option) and small
enums, with parsers that never fail: illegal input yields an unset
option or the initial enum value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.style'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.style")
}
