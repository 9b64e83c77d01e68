package extents

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/uax/grapheme"
)

// Metrics holds measured extents of a text, keyed by the well-known
// extension keys width, height, ascent, descent, extlead, intlead and
// advance. Only width is mandatory for backends.
type Metrics map[string]float64

// Keys which backends may report.
var MetricKeys = []string{
	karaoke.KeyWidth, karaoke.KeyHeight, karaoke.KeyAscent, karaoke.KeyDescent,
	karaoke.KeyExtLead, karaoke.KeyIntLead, karaoke.KeyAdvance,
}

// Width returns the width, 0 if absent.
func (m Metrics) Width() float64 {
	return m[karaoke.KeyWidth]
}

// Height returns the height, 0 if absent.
func (m Metrics) Height() float64 {
	return m[karaoke.KeyHeight]
}

// Get returns the value for key.
func (m Metrics) Get(key string) (float64, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Metrics) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%.2f", k, m[k])
	}
	return b.String()
}

// Backend measures text set in a style. Backends must be deterministic for
// identical input within a run.
type Backend interface {
	Extents(style *karaoke.Style, text string) (Metrics, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(style *karaoke.Style, text string) (Metrics, error)

// Extents calls f.
func (f BackendFunc) Extents(style *karaoke.Style, text string) (Metrics, error) {
	return f(style, text)
}

// StyleSource resolves style names.
type StyleSource interface {
	Style(name string) (*karaoke.Style, error)
}

// Facade wraps a Backend.
type Facade struct {
	backend Backend
	styles  StyleSource
}

// NewFacade creates a facade for a backend. styles may be nil, in which case
// measuring by style name is unsupported.
func NewFacade(backend Backend, styles StyleSource) *Facade {
	return &Facade{backend: backend, styles: styles}
}

var graphemesSetup sync.Once

// TextExtentsByName measures text in the style named name.
func (f *Facade) TextExtentsByName(name, text string) (Metrics, error) {
	if f.styles == nil {
		return nil, core.Unsupported("styles are not supported, cannot resolve style %q", name)
	}
	style, err := f.styles.Style(name)
	if err != nil {
		return nil, err
	}
	return f.TextExtents(style, text)
}

// TextExtents measures text in style.
//
// If the style has a spacing > 0, the width is computed character by
// character (grapheme cluster by grapheme cluster), adding the spacing after
// each character. Widths are summed as float64 without rounding.
// If the backend reports no height, it is derived from ascent + descent.
func (f *Facade) TextExtents(style *karaoke.Style, text string) (Metrics, error) {
	if f == nil || f.backend == nil {
		return nil, core.MissingData("no text extents backend configured")
	}
	if style == nil {
		return nil, core.Invalid("cannot measure text without a style")
	}
	var m Metrics
	var err error
	if style.Spacing > 0 {
		m, err = f.spaced(style, text)
	} else if m, err = f.backend.Extents(style, text); err == nil {
		m = m.Copy()
	}
	if err != nil {
		return nil, err
	}
	if _, ok := m[karaoke.KeyHeight]; !ok {
		a, hasA := m[karaoke.KeyAscent]
		d, hasD := m[karaoke.KeyDescent]
		if !hasA || !hasD {
			return nil, core.Unsupported("extents backend reports neither height nor ascent/descent")
		}
		m[karaoke.KeyHeight] = a + d
	}
	tracer().Debugf("extents of %q in %s: %v", text, style.Name, m)
	return m, nil
}

func (f *Facade) spaced(style *karaoke.Style, text string) (Metrics, error) {
	graphemesSetup.Do(grapheme.SetupGraphemeClasses)
	m := Metrics{}
	if text == "" {
		single, err := f.backend.Extents(style, "")
		if err != nil {
			return nil, err
		}
		m.merge(single)
		m[karaoke.KeyWidth] = 0
		return m, nil
	}
	width := 0.0
	gstr := grapheme.StringFromString(text)
	for i := 0; i < gstr.Len(); i++ {
		single, err := f.backend.Extents(style, gstr.Nth(i))
		if err != nil {
			return nil, err
		}
		m.merge(single)
		width += single.Width() + style.Spacing
	}
	m[karaoke.KeyWidth] = width
	return m, nil
}

func (m Metrics) merge(other Metrics) {
	for k, v := range other {
		m[k] = v
	}
}

// Copy returns an independent copy of m.
func (m Metrics) Copy() Metrics {
	c := make(Metrics, len(m))
	c.merge(m)
	return c
}
