package document

import (
	"testing"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/option"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/karafx/engine/process"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var style = &karaoke.Style{Name: "Default", Font: "Mono", Size: 20}

// Input: one line [1000,3000] with syllables "ka" [1000,2000] and "ra" [2000,3000].
func testEnvironment(caps environment.Capability) *environment.Memory {
	env := environment.NewMemory(1280, 720, caps)
	env.StyleSheet = []*karaoke.Style{style}
	env.Input = []environment.RawLine{{
		Start: 1000, End: 3000,
		Style:  environment.StyleRef{Name: "Default"},
		Anchor: 2,
		Syllables: []environment.RawSyllable{
			{Start: 0, Duration: 100, Text: "ka"},
			{Start: 1000, Duration: 100, Text: "ra"},
		},
	}}
	return env
}

func testRuntime(t *testing.T, env environment.Environment) *environment.Runtime {
	rt, err := environment.NewRuntime(env, nil)
	require.NoError(t, err)
	return rt
}

func inputDocument(t *testing.T) *Document {
	doc, err := NewInputDocument(testRuntime(t, testEnvironment(environment.CapStyles)))
	require.NoError(t, err)
	return doc
}

func TestCapabilities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	env := testEnvironment(environment.CapStyles)
	rt := testRuntime(t, env)
	in, err := NewInputDocument(rt)
	require.NoError(t, err)
	out, err := NewOutputDocument(rt)
	require.NoError(t, err)
	buf := NewLineBuffer()
	assert.True(t, in.SupportsReading())
	assert.False(t, in.SupportsWriting())
	assert.True(t, in.SupportsStyles())
	assert.False(t, out.SupportsReading())
	assert.True(t, out.SupportsWriting())
	assert.True(t, buf.SupportsReading() && buf.SupportsWriting())
	assert.False(t, buf.SupportsStyles())
	//
	err = in.AddLines(karaoke.NewLine(0, 1, style, 2, karaoke.Margin{}, 0))
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	_, err = out.Lines()
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	_, err = buf.Style("Default")
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	s, err := in.Style("Default")
	require.NoError(t, err)
	assert.Equal(t, "Default", s.Name)
}

func TestReadIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	first, err := doc.Lines()
	require.NoError(t, err)
	first[0].SetText("changed")
	first[0].Start = 0
	second, err := doc.Lines()
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "kara", second[0].Text())
	assert.Equal(t, timecode.Time(1000), second[0].Start)
}

func TestProcessAnnotatesInPlace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	_, err := doc.Process(process.IndexProcessor{}, process.CountProcessor{})
	require.NoError(t, err)
	lines, _ := doc.Lines()
	index, ok := lines[0].Int(karaoke.KeyIndex)
	assert.True(t, ok)
	assert.Equal(t, 0, index)
	count, _ := lines[0].Int(karaoke.KeyCount)
	assert.Equal(t, 1, count)
}

func TestSetValueAndExtension(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := NewLineBuffer(karaoke.NewLine(0, 1000, style, 2, karaoke.Margin{}, 0))
	_, err := doc.SetValue(FieldLayer, func(*karaoke.Line) (interface{}, error) { return 3, nil })
	require.NoError(t, err)
	_, err = doc.SetValue(FieldStart, func(*karaoke.Line) (interface{}, error) { return "0:00:00.20", nil })
	require.NoError(t, err)
	_, err = doc.SetValue(FieldLayer, func(*karaoke.Line) (interface{}, error) { return "x", nil })
	assert.True(t, core.Is(err, core.EINVALID))
	_, err = doc.SetValue("color", func(*karaoke.Line) (interface{}, error) { return 1, nil })
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
	_, err = doc.SetExtension(func(*karaoke.Line) (string, interface{}, error) { return "fx", 42, nil })
	require.NoError(t, err)
	_, err = doc.SetText(func(*karaoke.Line) (string, error) { return "hello", nil })
	require.NoError(t, err)
	lines, _ := doc.Lines()
	assert.Equal(t, 3, lines[0].Layer)
	assert.Equal(t, timecode.Time(200), lines[0].Start)
	assert.Equal(t, 42, lines[0].Value("fx"))
	assert.Equal(t, "hello", lines[0].Text())
}

func TestRetime(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	_, err := doc.Retime(func(*karaoke.Line) (Retiming, error) {
		return Relative(option.SomeInt64(-500), option.Int64()), nil
	})
	require.NoError(t, err)
	lines, _ := doc.Lines()
	assert.Equal(t, timecode.Time(500), lines[0].Start)
	assert.Equal(t, timecode.Time(3000), lines[0].End)
	assert.Equal(t, timecode.Time(1500), lines[0].Syllables[1].AbsStart())
	//
	_, err = doc.Retime(func(*karaoke.Line) (Retiming, error) {
		return Absolute(option.Int64(), option.SomeInt64(4000)), nil
	})
	require.NoError(t, err)
	lines, _ = doc.Lines()
	assert.Equal(t, timecode.Time(500), lines[0].Start)
	assert.Equal(t, timecode.Time(4000), lines[0].End)
	//
	_, err = doc.Retime(func(*karaoke.Line) (Retiming, error) {
		return Absolute(option.SomeInt64(5000), option.SomeInt64(4000)), nil
	})
	assert.True(t, core.Is(err, core.ETIMING))
}

func TestSyllablesAndRefactor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	syls, err := doc.Syllables()
	require.NoError(t, err)
	lines, _ := syls.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "ka", lines[0].Text())
	assert.Equal(t, timecode.Time(1000), lines[0].Start)
	assert.Equal(t, timecode.Time(2000), lines[0].End)
	assert.Equal(t, timecode.Time(2000), lines[1].Start)
	assert.Equal(t, timecode.Time(3000), lines[1].End)
	assert.Equal(t, karaoke.Anchor(2), lines[1].Anchor)
	assert.True(t, lines[1].Has(karaoke.KeySyllable))
	assert.True(t, lines[1].Has(karaoke.KeyLine))
	//
	doubled, err := doc.Refactor(func(l *karaoke.Line) ([]*karaoke.Line, error) {
		return []*karaoke.Line{l, l.Copy()}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, doubled.Len())
	none, err := doc.Filter(func(*karaoke.Line) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, 0, none.Len())
}

func TestFramesCoverLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	frames, err := doc.Frames(23.976, false)
	require.NoError(t, err)
	lines, _ := frames.Lines()
	require.Len(t, lines, 48) // ceil(2000 / 41.708)
	assert.Equal(t, timecode.Time(1000), lines[0].Start)
	assert.Equal(t, timecode.Time(3000), lines[len(lines)-1].End)
	for i, l := range lines {
		if i > 0 {
			assert.Equal(t, lines[i-1].End, l.Start, "gap before frame %d", i)
		}
		index, _ := l.Int(karaoke.KeyIndex)
		count, _ := l.Int(karaoke.KeyCount)
		assert.Equal(t, i, index)
		assert.Equal(t, 48, count)
		assert.True(t, l.Has(karaoke.KeyOriginal))
		// syllables keep their absolute times
		assert.Equal(t, timecode.Time(2000), l.Syllables[1].AbsStart())
	}
}

func TestFramesWithoutRate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	frames, err := doc.Frames(0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, frames.Len())
	//
	env := testEnvironment(environment.CapStyles | environment.CapVideoInfo)
	env.Rate = 10
	doc, err = NewInputDocument(testRuntime(t, env))
	require.NoError(t, err)
	frames, err = doc.Frames(0, false)
	require.NoError(t, err)
	assert.Equal(t, 20, frames.Len())
	frames, err = doc.Frames(20, false)
	require.NoError(t, err)
	assert.Equal(t, 40, frames.Len())
	frames, err = doc.Frames(20, true)
	require.NoError(t, err)
	assert.Equal(t, 20, frames.Len())
}

func TestSliceTime(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	sliced, err := doc.Slice("0:00:01.50", "0:00:02.50", nil)
	require.NoError(t, err)
	lines, _ := sliced.Lines()
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, timecode.Time(1500), l.Start)
	assert.Equal(t, timecode.Time(2500), l.End)
	require.Len(t, l.Syllables, 2)
	assert.Equal(t, timecode.Time(0), l.Syllables[0].Start)
	assert.Equal(t, timecode.Time(2000), l.Syllables[0].AbsEnd())
	assert.Equal(t, timecode.Time(2000), l.Syllables[1].AbsStart())
	assert.Equal(t, timecode.Time(2500), l.Syllables[1].AbsEnd())
	//
	empty, err := doc.SliceTime(3500, 4000, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	//
	_, err = doc.SliceTime(2000, 1000, 1)
	assert.True(t, core.Is(err, core.EINVALID))
	// the source document is not touched
	orig, _ := doc.Lines()
	assert.Equal(t, timecode.Time(1000), orig[0].Start)
}

func TestSliceFramesAndIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	doc := inputDocument(t)
	sliced, err := doc.Slice(15, 25, 10.0) // frames 15..25 at 10 fps
	require.NoError(t, err)
	lines, _ := sliced.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, timecode.Time(1500), lines[0].Start)
	assert.Equal(t, timecode.Time(2500), lines[0].End)
	//
	var ls []*karaoke.Line
	for i := 0; i < 5; i++ {
		ls = append(ls, karaoke.NewLine(timecode.Time(i), timecode.Time(i+1), style, 2, karaoke.Margin{}, i))
	}
	buf := NewLineBuffer(ls...)
	every2nd, err := buf.Slice(nil, nil, 2)
	require.NoError(t, err)
	lines, _ = every2nd.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, 4, lines[2].Layer)
	tail, err := buf.Slice(-2, nil, nil)
	require.NoError(t, err)
	lines, _ = tail.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Layer)
	reversed, err := buf.SliceIndex(option.Int64(), option.Int64(), -1)
	require.NoError(t, err)
	lines, _ = reversed.Lines()
	assert.Equal(t, 4, lines[0].Layer)
	_, err = buf.Slice(3, 1, nil)
	assert.True(t, core.Is(err, core.EINVALID))
	_, err = buf.Slice(nil, nil, 0)
	assert.True(t, core.Is(err, core.EINVALID))
}

func TestStreaming(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	env := testEnvironment(environment.CapStyles)
	rt := testRuntime(t, env)
	in, err := NewInputDocument(rt)
	require.NoError(t, err)
	buf := NewLineBuffer()
	dst, err := in.StreamTo(buf)
	require.NoError(t, err)
	assert.Same(t, buf, dst)
	inLines, _ := in.Lines()
	bufLines, _ := buf.Lines()
	require.Len(t, bufLines, len(inLines))
	assert.True(t, inLines[0].Equal(bufLines[0]))
	bufLines[0].SetText("mutated")
	again, _ := in.Lines()
	assert.Equal(t, "kara", again[0].Text())
	//
	out, err := NewOutputDocument(rt)
	require.NoError(t, err)
	self, err := out.StreamFrom(buf)
	require.NoError(t, err)
	assert.Same(t, out, self)
	require.Len(t, env.Written, 1)
	_, err = out.StreamTo(buf)
	assert.True(t, core.Is(err, core.EUNSUPPORTED))
}

func TestLinesDoNotShareLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	a := karaoke.NewLine(1000, 2000, style, 2, karaoke.Margin{}, 0)
	a.AddSyllable(karaoke.NewSyllable(0, 50, "ka"))
	a.AddSyllable(karaoke.NewSyllable(500, 50, "ra"))
	b := karaoke.NewLine(2000, 3000, style, 2, karaoke.Margin{}, 0)
	doc := NewLineBuffer(a, b)
	_, err := doc.Process(process.LinkingProcessor{})
	require.NoError(t, err)
	copies, err := doc.Lines()
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Same(t, copies[0], copies[1].PreviousLine())
	assert.Same(t, copies[1], copies[0].NextLine())
	assert.Same(t, copies[0].Syllables[1], copies[0].Syllables[0].NextSyllable())
	copies[1].PreviousLine().Start = 0
	copies[0].Syllables[0].NextSyllable().Text = "xx"
	again, err := doc.Lines()
	require.NoError(t, err)
	assert.Equal(t, timecode.Time(1000), again[0].Start)
	assert.Equal(t, "ra", again[0].Syllables[1].Text)
	assert.Equal(t, timecode.Time(1000), a.Start)
}

func TestSliceTimeWithStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	var ls []*karaoke.Line
	for i := 0; i < 6; i++ {
		start := timecode.Time(i * 1000)
		ls = append(ls, karaoke.NewLine(start, start+500, style, 2, karaoke.Margin{}, i))
	}
	buf := NewLineBuffer(ls...)
	sliced, err := buf.Slice("0:00:01", nil, 2)
	require.NoError(t, err)
	lines, _ := sliced.Lines()
	require.Len(t, lines, 3)
	for i, layer := range []int{1, 3, 5} {
		assert.Equal(t, layer, lines[i].Layer)
		assert.Equal(t, timecode.Time(layer*1000), lines[i].Start)
	}
	reversed, err := buf.Slice("0:00:01", "0:00:04", -1)
	require.NoError(t, err)
	lines, _ = reversed.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, 3, lines[0].Layer)
	assert.Equal(t, 1, lines[2].Layer)
	assert.Equal(t, 6, buf.Len())
}

func TestStreamingLineBuffers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.document")
	defer teardown()
	//
	l1 := karaoke.NewLine(1000, 2000, style, 2, karaoke.Margin{}, 0)
	l1.SetText("one")
	l2 := karaoke.NewLine(3000, 4000, style, 2, karaoke.Margin{}, 0)
	l2.SetText("two")
	src := NewLineBuffer(l1, l2)
	dst, err := src.StreamTo(NewLineBuffer())
	require.NoError(t, err)
	srcLines, _ := src.Lines()
	dstLines, _ := dst.Lines()
	require.Len(t, dstLines, 2)
	for i := range srcLines {
		assert.True(t, srcLines[i].Equal(dstLines[i]))
	}
	assert.Equal(t, "one", dstLines[0].Text())
	assert.Equal(t, "two", dstLines[1].Text())
	_, err = dst.SetText(func(line *karaoke.Line) (string, error) {
		return "mutated", nil
	})
	require.NoError(t, err)
	_, err = dst.Retime(func(line *karaoke.Line) (Retiming, error) {
		return Shift(500), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "one", l1.Text())
	assert.Equal(t, timecode.Time(3000), l2.Start)
	again, _ := src.Lines()
	assert.Equal(t, "two", again[1].Text())
}
