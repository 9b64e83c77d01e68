/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Arial".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight and slant. An example is "Arial bold".

* A "typecase" is a scaled font, i.e. a font in a certain size. Subtitle
styles give font sizes in pixels of the script resolution, therefore
typecases are always prepared at 72 DPI, making one point equal to one pixel.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.font'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.font")
}
