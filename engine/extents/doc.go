/*
Package extents measures text.

Measurement is done by a Backend, which is injected by the client. Backends
are found in sub-packages: monospace (character cells, no fonts needed),
fontmetrics (advance widths from x/image font faces) and harfbuzz (shaped
advance widths). The Facade wraps a backend and adds resolution of style
names, per-character spacing and derivation of the text height from ascent
and descent.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package extents

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.extents'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.extents")
}
