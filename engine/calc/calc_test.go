package calc

import (
	"testing"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.calc")
	defer teardown()
	//
	assert.Equal(t, 5.0, Interpolate(0.5, 0, 10))
	assert.Equal(t, 0.0, Clamp(0, -3, 10))
	assert.Equal(t, 10.0, Clamp(0, 12, 10))
	assert.Equal(t, Vec(5, 10), InterpolateVector(0.5, Vec(0, 0), Vec(10, 20)))
	assert.Equal(t, "&H80&", InterpolateAlpha(0.5, 0, 256))
}

func TestInterpolateColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.calc")
	defer teardown()
	//
	c, err := InterpolateColor(0.5, "&H000000&", "&HFF0080&")
	require.NoError(t, err)
	assert.Equal(t, "&H800040&", c)
	c, err = InterpolateColor(1, "00", "&HFF&")
	require.NoError(t, err)
	assert.Equal(t, "&HFF&", c)
	_, err = InterpolateColor(0.5, "&H00&", "&H000000&")
	assert.True(t, core.Is(err, core.EINVALID))
	_, err = InterpolateColor(0.5, "&H0000&", "&H0000&")
	assert.True(t, core.Is(err, core.EINVALID))
	_, err = InterpolateColor(0.5, "&HXY&", "&H00&")
	assert.True(t, core.Is(err, core.EINVALID))
}

func TestBezier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.calc")
	defer teardown()
	//
	assert.Equal(t, 6.0, Choose(4, 2))
	p0, p1, p2 := Vec(0, 0), Vec(50, 100), Vec(100, 0)
	assert.Equal(t, p0, Bezier(0, p0, p1, p2))
	assert.Equal(t, p2, Bezier(1, p0, p1, p2))
	mid := Bezier(0.5, p0, p1, p2)
	assert.InDelta(t, 50.0, mid.X(), 1e-9)
	assert.InDelta(t, 50.0, mid.Y(), 1e-9)
	// a straight line stays straight
	q := Bezier(0.25, Vec(0, 0), Vec(100, 100))
	assert.InDelta(t, 25.0, q.X(), 1e-9)
}

func TestVector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.calc")
	defer teardown()
	//
	v := Vec(3, 4)
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, "(3,4)", v.String())
	assert.Equal(t, "(640.5,360)", Vec(640.5, 360).String())
	assert.InDelta(t, 1.0, v.Normalize().Len(), 1e-12)
	assert.Equal(t, 5.0, Vec(0, 0).Distance(v))
	assert.Equal(t, Vector{}, Vector{}.Normalize())
}
