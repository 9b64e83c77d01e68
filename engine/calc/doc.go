/*
Package calc has small numeric helpers for animated effects: vectors,
clamping, linear interpolation of numbers, vectors and ASS colour values,
and Bézier curves.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.calc'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.calc")
}
