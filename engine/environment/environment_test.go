package environment

import (
	"bytes"
	"testing"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inlineStyle(name string) *karaoke.Style {
	return &karaoke.Style{Name: name, Font: "Arial", Size: 20}
}

func memoryEnv(caps Capability) *Memory {
	env := NewMemory(1280, 720, caps)
	env.Input = []RawLine{
		{Start: 1000, End: 2000, Style: StyleRef{Style: inlineStyle("Default")}, Anchor: 2,
			Syllables: []RawSyllable{{0, 50, "ka"}, {500, 50, "ra"}}},
		{Start: 2000, End: 3000, Style: StyleRef{Style: &karaoke.Style{Name: "Default", Size: 99}}, Anchor: 8},
		{Start: 3000, End: 4000, Style: StyleRef{Style: inlineStyle("Other")}, Anchor: 5},
	}
	return env
}

var fixedBackend = extents.BackendFunc(func(s *karaoke.Style, text string) (extents.Metrics, error) {
	return extents.Metrics{karaoke.KeyWidth: float64(len(text)), karaoke.KeyHeight: s.Size}, nil
})

func TestRuntimeLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.environment")
	defer teardown()
	//
	rt, err := NewRuntime(memoryEnv(0), fixedBackend)
	require.NoError(t, err)
	lines, err := rt.Viewport().Lines()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "kara", lines[0].Text())
	assert.Same(t, lines[0], lines[0].Syllables[1].Line())
	again, _ := rt.Lines()
	assert.NotSame(t, lines[0], again[0])
	assert.True(t, lines[0].Equal(again[0]))
	w, h, err := rt.Viewport().Resolution()
	assert.NoError(t, err)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
	_, ok := rt.Viewport().FPS()
	assert.False(t, ok)
}

func TestCachedStyleManager(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.environment")
	defer teardown()
	//
	rt, err := NewRuntime(memoryEnv(0), fixedBackend)
	require.NoError(t, err)
	s, err := rt.StyleManager().Style("Default")
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Size) // first definition wins
	styles, _ := rt.Viewport().Styles()
	require.Len(t, styles, 2)
	assert.Equal(t, "Default", styles[0].Name)
	assert.Equal(t, "Other", styles[1].Name)
	s.Size = 1
	s2, _ := rt.StyleManager().Style("Default")
	assert.Equal(t, 20.0, s2.Size)
	// without the styles capability, measuring by name is unsupported
	_, err = rt.Extents().TextExtentsByName("Default", "x")
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
}

func TestEnvironmentStyleManager(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.environment")
	defer teardown()
	//
	env := memoryEnv(CapStyles | CapVideoInfo)
	env.StyleSheet = []*karaoke.Style{{Name: "Default", Font: "Arial", Size: 30}}
	env.Input = append(env.Input, RawLine{Start: 0, End: 10, Style: StyleRef{Name: "Default"}})
	env.Rate = 25
	rt, err := NewRuntime(env, fixedBackend)
	require.NoError(t, err)
	lines, err := rt.Lines()
	require.NoError(t, err)
	assert.Equal(t, 30.0, lines[3].Style.Size)
	m, err := rt.Extents().TextExtentsByName("Default", "abc")
	assert.NoError(t, err)
	assert.Equal(t, 30.0, m.Height())
	fps, ok := rt.Viewport().FPS()
	assert.True(t, ok)
	assert.Equal(t, 25.0, fps)
	_, err = rt.StyleManager().Style("Nope")
	assert.True(t, core.Is(err, core.EMISSING))
}

func TestUnsupportedCapabilities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.environment")
	defer teardown()
	//
	env := memoryEnv(0)
	_, err := env.Image("logo.png")
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	_, err = env.Style("Default")
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	_, err = env.FPS()
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	assert.Equal(t, "[styles,vinfo]", (CapStyles | CapVideoInfo).String())
}

func TestBaseWritesDialogue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.environment")
	defer teardown()
	//
	var out bytes.Buffer
	b := Base{Out: &out}
	l := karaoke.NewLine(1230, 61000, inlineStyle("Default"), 2, karaoke.Margin{Left: 1, Right: 2, Vertical: 3}, 4)
	l.SetText(`{\pos(1,2)}x`)
	assert.NoError(t, b.WriteLine(l))
	assert.Equal(t, "Dialogue: 4,0:00:01.23,0:01:01.00,Default,,1,2,3,,{\\pos(1,2)}x\n", out.String())
}

func TestInstallIsOneShot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.environment")
	defer teardown()
	//
	defer func() { active.rt = nil }()
	_, err := Current()
	assert.True(t, core.Is(err, core.EMISSING))
	rt, _ := NewRuntime(memoryEnv(0), nil)
	assert.Nil(t, rt.Extents())
	assert.NoError(t, Install(rt))
	cur, err := Current()
	assert.NoError(t, err)
	assert.Same(t, rt, cur)
	err = Install(rt)
	assert.True(t, core.Is(err, core.EREDEFINED))
}
