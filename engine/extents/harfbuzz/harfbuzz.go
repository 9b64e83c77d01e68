/*
Package harfbuzz is a text extents backend which shapes text with the Go
port of HarfBuzz before measuring it. Widths therefore respect kerning and
ligatures, which the plain font metrics backend ignores.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"sync"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/font"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/extents/fontmetrics"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'karafx.extents'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.extents")
}

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

type hbbackend struct {
	resolve fontmetrics.TypeCaseResolver
	lang    language.Tag
	mx      sync.Mutex
	fonts   map[*font.ScalableFont]*hb.Font
}

// Backend creates a shaping extents backend for text in language lang.
// If resolve is nil, fontmetrics.ResolveFont is used.
func Backend(resolve fontmetrics.TypeCaseResolver, lang language.Tag) extents.Backend {
	if resolve == nil {
		resolve = fontmetrics.ResolveFont
	}
	return &hbbackend{
		resolve: resolve,
		lang:    lang,
		fonts:   make(map[*font.ScalableFont]*hb.Font),
	}
}

// Extents shapes text and reports the summed advances as width. Vertical
// metrics are taken from the font metrics backend.
func (b *hbbackend) Extents(style *karaoke.Style, text string) (extents.Metrics, error) {
	tc, err := b.resolve(style)
	if err != nil {
		return nil, err
	}
	m := fontmetrics.Measure(tc, text)
	w, err := b.shapedWidth(tc, text)
	if err != nil {
		return nil, err
	}
	m[karaoke.KeyWidth] = w
	if _, ok := m[karaoke.KeyAdvance]; ok {
		m[karaoke.KeyAdvance] = w
	}
	return m, nil
}

func (b *hbbackend) shapedWidth(tc *font.TypeCase, text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	b.mx.Lock()
	defer b.mx.Unlock()
	hbFont, err := b.findFont(tc.ScalableFontParent())
	if err != nil {
		return 0, err
	}
	buf := hb.NewBuffer()
	if b.lang != language.Und {
		buf.Props.Language = Lang4HB(b.lang)
	}
	runes := []rune(text)
	buf.AddRunes(runes, 0, len(runes))
	buf.GuessSegmentProperties()
	buf.Shape(hbFont, nil)
	var adv int64
	for i := range buf.Pos {
		adv += int64(buf.Pos[i].XAdvance)
	}
	upem := float64(hbFont.XScale)
	if upem == 0 {
		upem = float64(tc.ScalableFontParent().SFNT.UnitsPerEm())
	}
	w := float64(adv) * tc.PtSize() / upem
	tracer().Debugf("harfbuzz: %q shaped to %d glyphs, width %.2f", text, len(buf.Info), w)
	return w, nil
}

// findFont must be called with b locked.
func (b *hbbackend) findFont(sf *font.ScalableFont) (*hb.Font, error) {
	if f, ok := b.fonts[sf]; ok {
		return f, nil
	}
	face, err := hbtt.Parse(bytes.NewReader(sf.Binary))
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot create HarfBuzz font for %s", sf.Fontname)
	}
	f := hb.NewFont(face)
	b.fonts[sf] = f
	return f, nil
}
