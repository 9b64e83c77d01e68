/*
Package karaoke holds the data model of karaoke effects: lines, their
syllables and the styles they are set in.

Lines and syllables carry an extension map. Pipeline stages use it as
scratch space for derived values (indices, extents, positions, fades).
Well-known keys are defined as constants in this package and have typed
accessors; any other key is free for effect scripts to use.

A line exclusively owns its syllables. Copying a line copies its syllables
and both extension maps; the style is copied as well.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package karaoke

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.karaoke'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.karaoke")
}
