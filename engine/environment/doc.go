/*
Package environment connects karaoke effects to the outside world.

An Environment is the source of input lines and the sink for generated
lines. It reports the script resolution and, depending on its
capabilities, styles, video frame rate and images.

A Runtime bundles an environment with a style manager, a viewport and a
text extents facade. Clients usually create one runtime at startup and pass
it to documents and processors. For scripts, one runtime may be installed
process-wide with Install; installing a second one is an error.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package environment

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.environment'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.environment")
}
