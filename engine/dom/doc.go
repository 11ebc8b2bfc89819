/*
Package dom provides a styled document object model.

A Document combines a node hierarchy (built on package engine/tree) with
cascaded CSS properties per node. Documents are either parsed from HTML
markup, with stylesheets applied through package cssom, or constructed
programmatically. Clients query style properties through GetProperty,
which implements the CSS cascade: explicit values first, then inherited
values from ancestors, then user-agent defaults, then the property's
initial value. Computed values are cached lazily and invalidated
per-subtree when properties change.

Style mutations are transactional: clients queue changes and commit them
as a batch, receiving back the set of nodes needing restyle and a flag
wether layout has to be re-run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.dom'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.dom")
}
