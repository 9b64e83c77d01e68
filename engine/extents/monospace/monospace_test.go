package monospace

import (
	"testing"

	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestMonospaceCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.extents")
	defer teardown()
	//
	b := Backend(nil)
	style := &karaoke.Style{Size: 20}
	m, err := b.Extents(style, "Hello")
	assert.NoError(t, err)
	assert.Equal(t, 50.0, m.Width())
	assert.Equal(t, 16.0, m[karaoke.KeyAscent])
	assert.Equal(t, 4.0, m[karaoke.KeyDescent])
	_, hasHeight := m[karaoke.KeyHeight]
	assert.False(t, hasHeight)
	m, _ = b.Extents(style, "漢字")
	assert.Equal(t, 40.0, m.Width())
	m, _ = b.Extents(style, "a")
	assert.Equal(t, 10.0, m[karaoke.KeyAdvance])
}

func TestMonospaceThroughFacade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.extents")
	defer teardown()
	//
	f := extents.NewFacade(Backend(nil), nil)
	m, err := f.TextExtents(&karaoke.Style{Size: 20, Spacing: 2}, "ab")
	assert.NoError(t, err)
	assert.Equal(t, 24.0, m.Width())
	assert.Equal(t, 20.0, m.Height())
}
