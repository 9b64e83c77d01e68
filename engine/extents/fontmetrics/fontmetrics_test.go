package fontmetrics

import (
	"testing"

	"github.com/npillmayer/karafx/core/font"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// goFonts resolves every style to the Go fonts, independent of the system.
func goFonts(style *karaoke.Style) (*font.TypeCase, error) {
	s, w := font.VariantOf(style.Bold, style.Italic)
	return font.FallbackFont(s, w).PrepareCase(style.Size)
}

func TestFontMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.extents")
	defer teardown()
	//
	b := Backend(goFonts)
	style := &karaoke.Style{Font: "Go", Size: 40}
	m, err := b.Extents(style, "Hello")
	assert.NoError(t, err)
	assert.Greater(t, m.Width(), 0.0)
	assert.InDelta(t, m[karaoke.KeyAscent]+m[karaoke.KeyDescent], m.Height(), 1e-9)
	assert.GreaterOrEqual(t, m[karaoke.KeyExtLead], 0.0)
	_, hasAdvance := m[karaoke.KeyAdvance]
	assert.False(t, hasAdvance)
	single, _ := b.Extents(style, "H")
	assert.Equal(t, single.Width(), single[karaoke.KeyAdvance])
	bold, _ := b.Extents(&karaoke.Style{Font: "Go", Size: 40, Bold: true}, "Hello")
	assert.NotEqual(t, m.Width(), bold.Width())
	empty, err := b.Extents(style, "")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, empty.Width())
	assert.Equal(t, m.Height(), empty.Height())
}
