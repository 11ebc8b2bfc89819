/*
Package scroll manages scroll state and momentum physics for scrollable
layout nodes.

Scrolling is deliberately unspectacular: platform event handlers push
inputs into a shared bounded queue, and a physics timer drains the queue
at ~60 Hz, producing ScrollTo change records. There is no special-cased
mutable scroll path.

Three input sources are distinguished:

▪︎ trackpad deltas are applied as direct offset changes and kill any
existing momentum, since the OS already smoothed them;

▪︎ discrete wheel notches add a velocity impulse which then decays
exponentially, tick by tick;

▪︎ programmatic scrolling interpolates towards a target along an easing
curve.

The timer self-terminates when no node has residual velocity, no
interpolation is pending and the input queue is empty. Offsets are
clamped to [0, max] after every tick.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scroll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.scroll'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.scroll")
}
