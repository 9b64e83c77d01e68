/*
Package fontmetrics is a text extents backend using the advance widths and
vertical metrics of OpenType fonts, as provided by golang.org/x/image.

Fonts are resolved by the style's font name through the font registry of
package core/font, which falls back to the Go fonts if a font cannot be
found on the system.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontmetrics

import (
	"math"

	"github.com/npillmayer/karafx/core/font"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.extents'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.extents")
}

// TypeCaseResolver finds a typecase for a style.
type TypeCaseResolver func(style *karaoke.Style) (*font.TypeCase, error)

// ResolveFont resolves the style's font via the global font registry.
func ResolveFont(style *karaoke.Style) (*font.TypeCase, error) {
	return font.TypeCaseFor(style.Font, style.Bold, style.Italic, style.Size)
}

type fmbackend struct {
	resolve TypeCaseResolver
}

// Backend creates a font metrics backend. If resolve is nil, ResolveFont
// is used.
func Backend(resolve TypeCaseResolver) extents.Backend {
	if resolve == nil {
		resolve = ResolveFont
	}
	return fmbackend{resolve: resolve}
}

func (fm fmbackend) Extents(style *karaoke.Style, text string) (extents.Metrics, error) {
	tc, err := fm.resolve(style)
	if err != nil {
		return nil, err
	}
	return Measure(tc, text), nil
}

// Measure measures text with a typecase. The external leading is the part of
// the line height exceeding ascent + descent.
func Measure(tc *font.TypeCase, text string) extents.Metrics {
	ascent, descent, height := tc.Metrics()
	w := tc.Advance(text)
	m := extents.Metrics{
		karaoke.KeyWidth:   w,
		karaoke.KeyHeight:  ascent + descent,
		karaoke.KeyAscent:  ascent,
		karaoke.KeyDescent: descent,
		karaoke.KeyExtLead: math.Max(0, height-ascent-descent),
		karaoke.KeyIntLead: 0,
	}
	if len([]rune(text)) == 1 {
		m[karaoke.KeyAdvance] = w
	}
	tracer().Debugf("font metrics of %q: %v", text, m)
	return m
}
