/*
Package process implements staged processors for karaoke lines.

A processor computes derived values for lines and syllables and stores them
in their extension maps. Every run of a processor executes three stages,
strictly in order and each exactly once:

	PreProcess(lines, ctx) → Process(lines, ctx) → PostProcess(lines, ctx)

The context is created fresh for every run and carries scratch values
between the stages. Processors embed Stages to get no-op defaults for the
stages they do not need.

The Selective processor dispatches lines to sub-processors by a selector.
Every sub-processor sees only its share of the lines and a private context,
but stage order is kept across the dispatch: all sub-processors finish
their pre-processing before any of them starts processing.

Position processors need the width and height of lines and syllables. If a
SizeProcessor did not run before, they measure missing sizes on demand
through the text extents facade of the runtime. Without a facade they fail
with an EMISSING error.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package process

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.process'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.process")
}
