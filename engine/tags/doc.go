/*
Package tags builds ASS override tag blocks for karaoke lines.

A tag value is one of

	Static(v)               the same value for every line
	PerLine(fn)             computed from the line
	PerFrame(fn, accel)     computed from the line and an animation time t ∈ [0,1)

Tag values are collected in a Container, which renders them as a tag block
like

	{\pos(640,360)\c&H00FF00&}

in front of a line's text. A Builder applies a container to every line of a
document. If any tag value is PerFrame, the builder first expands the
document frame by frame.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tags

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.tags'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.tags")
}
