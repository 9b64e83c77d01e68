/*
Package monospace is a text extents backend for character cell output.

Every grapheme cluster is one or two cells wide, depending on its East Asian
width property (UAX #11). A cell is half the font size wide. No fonts are
loaded, which makes this backend fast and fully deterministic.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// tracer traces with key 'karafx.extents'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.extents")
}

// Proportions of a cell relative to the font size.
const (
	CellWidth = 0.5
	Ascent    = 0.8
	Descent   = 0.2
)

type msbackend struct {
	context *uax11.Context
}

// Backend creates a monospace extents backend. If context is nil, a Latin
// context is used, i.e. ambiguous characters are narrow.
func Backend(context *uax11.Context) extents.Backend {
	ms := &msbackend{context: context}
	if context == nil {
		ms.context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return ms
}

// Extents reports width, ascent and descent of text. Height is left to the
// facade to derive. Single grapheme clusters additionally report their
// advance.
func (ms *msbackend) Extents(style *karaoke.Style, text string) (extents.Metrics, error) {
	em := style.Size * CellWidth
	cells := 0
	gstr := grapheme.StringFromString(text)
	l := gstr.Len()
	for i := 0; i < l; i++ {
		cells += uax11.Width([]byte(gstr.Nth(i)), ms.context)
	}
	m := extents.Metrics{
		karaoke.KeyWidth:   float64(cells) * em,
		karaoke.KeyAscent:  style.Size * Ascent,
		karaoke.KeyDescent: style.Size * Descent,
	}
	if l == 1 {
		m[karaoke.KeyAdvance] = m[karaoke.KeyWidth]
	}
	tracer().Debugf("monospace: %q is %d cells", text, cells)
	return m, nil
}
