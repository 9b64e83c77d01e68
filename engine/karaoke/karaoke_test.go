package karaoke

import (
	"testing"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLine() *Line {
	style := &Style{Name: "Default", Font: "Arial", Size: 20}
	l := NewLine(1000, 3000, style, 2, Margin{10, 10, 10}, 0)
	l.AddSyllable(NewSyllable(0, 50, "ka"))
	l.AddSyllable(NewSyllable(500, 150, "ra"))
	return l
}

func TestLineText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	l := makeLine()
	assert.Equal(t, "kara", l.Text())
	assert.False(t, l.HasRawText())
	l.SetText("override")
	assert.Equal(t, "override", l.Text())
	l.ClearText()
	assert.Equal(t, "kara", l.Text())
}

func TestSyllableEndRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	l := makeLine()
	syl := l.Syllables[1]
	assert.Equal(t, timecode.Time(2000), syl.End())
	assert.Equal(t, timecode.Time(1500), syl.AbsStart())
	assert.Equal(t, timecode.Time(3000), syl.AbsEnd())
	end := syl.Start + timecode.Time(syl.Duration*10)
	assert.NoError(t, syl.SetEnd(end))
	assert.Equal(t, end, syl.End())
	for _, e := range []timecode.Time{500, 501, 777, 1234} {
		assert.NoError(t, syl.SetEnd(e))
		assert.Equal(t, e, syl.End())
	}
	err := syl.SetEnd(499)
	assert.True(t, core.Is(err, core.ETIMING))
	assert.Equal(t, timecode.Time(1234), syl.End())
}

func TestLineCopyIsIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	l := makeLine()
	l.Set(KeyWidth, 42.0)
	l.Syllables[0].Set(KeyIndex, 0)
	c := l.Copy()
	assert.True(t, l.Equal(c))
	assert.NotSame(t, l.Style, c.Style)
	assert.Same(t, c, c.Syllables[0].Line())
	assert.Equal(t, 42.0, c.MustFloat(KeyWidth))
	c.Set(KeyWidth, 1.0)
	c.Syllables[0].Text = "xx"
	c.Syllables[0].Set(KeyIndex, 7)
	c.Style.Size = 99
	assert.Equal(t, 42.0, l.MustFloat(KeyWidth))
	assert.Equal(t, "ka", l.Syllables[0].Text)
	idx, _ := l.Syllables[0].Int(KeyIndex)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 20.0, l.Style.Size)
	assert.False(t, l.Equal(c))
}

func TestExtensionOrderAndAccessors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	var e Extension
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.Has("x"))
	e.Set("b", 1)
	e.Set("a", 2.5)
	e.Set("c", timecode.Time(300))
	e.Set("b", int64(4))
	assert.Equal(t, []string{"b", "a", "c"}, e.Keys())
	f, ok := e.Float("c")
	assert.True(t, ok)
	assert.Equal(t, 300.0, f)
	i, ok := e.Int("a")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	e.Set("s", "str")
	_, ok = e.Float("s")
	assert.False(t, ok)
	e.Delete("a")
	assert.Equal(t, []string{"b", "c", "s"}, e.Keys())
	assert.Equal(t, "{b:4, c:0:00:00.30, s:str}", e.String())
}

func TestStyleAndAnchor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	s := &Style{Name: "A", Font: "Arial", Size: 20}
	o := s.Copy()
	o.Name = "B"
	assert.False(t, s.Equals(o, false))
	assert.True(t, s.Equals(o, true))
	assert.Equal(t, RowBottom, Anchor(2).Row())
	assert.Equal(t, ColumnCenter, Anchor(2).Column())
	assert.Equal(t, RowTop, Anchor(7).Row())
	assert.Equal(t, ColumnRight, Anchor(9).Column())
	assert.Equal(t, Anchor(5), AnchorAt(RowMiddle, ColumnCenter))
	assert.False(t, Anchor(0).Valid())
}

func TestLineRetime(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	l := makeLine()
	assert.True(t, core.Is(l.Retime(500, 400), core.ETIMING))
	assert.NoError(t, l.Retime(500, 600))
	assert.Equal(t, timecode.Time(100), l.Duration())
}

func TestCopyLinesRebindsLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.karaoke")
	defer teardown()
	//
	a, b, outside := makeLine(), makeLine(), makeLine()
	a.Set(KeyNext, b)
	b.Set(KeyPrevious, a)
	b.Set(KeyOriginal, outside)
	a.Set(KeySyllable, b.Syllables[1])
	b.Syllables[0].Set(KeyNext, b.Syllables[1])
	a.Set(KeyPrevious, (*Line)(nil))
	copies := CopyLines([]*Line{a, b})
	require.Len(t, copies, 2)
	ca, cb := copies[0], copies[1]
	assert.Same(t, cb, ca.NextLine())
	assert.Same(t, ca, cb.PreviousLine())
	assert.Same(t, cb.Syllables[1], ca.Value(KeySyllable))
	assert.Same(t, cb.Syllables[1], cb.Syllables[0].NextSyllable())
	assert.Same(t, cb, cb.Syllables[1].Line())
	assert.Nil(t, ca.PreviousLine())
	orig, ok := cb.Value(KeyOriginal).(*Line)
	require.True(t, ok)
	assert.NotSame(t, outside, orig)
	assert.True(t, outside.Equal(orig))
	orig.Start = 0
	assert.Equal(t, timecode.Time(1000), outside.Start)
	// the input links are untouched
	assert.Same(t, b, a.NextLine())
}
