/*
Package style implements the CSS property model for the styled DOM.

Properties are raw string values wrapped into type Property, organized
into property groups and property maps. Maps are attached to styled
nodes by the cascade; querying computed values, including inheritance
and user-agent defaults, is the job of package dom.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.style'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.style")
}
