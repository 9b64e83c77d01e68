package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/calc"
	"github.com/npillmayer/karafx/engine/document"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/karafx/engine/process"
	"github.com/npillmayer/karafx/engine/tags"
)

// An effect transforms the input lines of rt and writes the result to its
// environment. It returns the number of lines written.
type effect func(rt *environment.Runtime, fps float64) (int, error)

var effects = map[string]effect{
	"karaoke":   karaokeEffect,
	"syllables": syllableEffect,
	"frames":    frameEffect,
}

// maxFade limits fade-in and fade-out of lines, in milliseconds.
const maxFade = 300

// layout reads the input lines and computes their geometry.
func layout(rt *environment.Runtime) (*document.Document, error) {
	in, err := document.NewInputDocument(rt)
	if err != nil {
		return nil, err
	}
	return in.Process(
		process.IndexProcessor{},
		process.CountProcessor{},
		process.LinkingProcessor{},
		process.FadeTimingProcessor{},
		process.SizeProcessor{Runtime: rt},
		process.PositionProcessor(rt, nil),
	)
}

func emit(rt *environment.Runtime, doc *document.Document) (int, error) {
	out, err := document.NewOutputDocument(rt)
	if err != nil {
		return 0, err
	}
	if _, err = doc.StreamTo(out); err != nil {
		return 0, err
	}
	return doc.Len(), nil
}

// fade computes `\fad` arguments from the gaps to the neighbouring lines.
func fade(line *karaoke.Line) interface{} {
	in, _ := line.Int(karaoke.KeyInFade)
	out, _ := line.Int(karaoke.KeyOutFade)
	return []int{min(in, maxFade), min(out, maxFade)}
}

// karaokeText renders the syllables of line with `\kf` tags.
func karaokeText(line *karaoke.Line) (string, error) {
	var b strings.Builder
	for _, syl := range line.Syllables {
		fmt.Fprintf(&b, `{\kf%s}%s`, calc.FormatNumber(syl.Duration), syl.Text)
	}
	return b.String(), nil
}

// karaokeEffect positions every line and highlights its syllables.
func karaokeEffect(rt *environment.Runtime, _ float64) (int, error) {
	doc, err := layout(rt)
	if err != nil {
		return 0, err
	}
	if doc, err = doc.SetText(karaokeText); err != nil {
		return 0, err
	}
	doc, err = tags.NewBuilder(doc).
		Position().
		Tag("fad", tags.PerLine(fade)).
		Generate()
	if err != nil {
		return 0, err
	}
	return emit(rt, doc)
}

// syllablePosition returns the anchor point of the syllable a syllable line
// has been created from.
func syllablePosition(line *karaoke.Line) interface{} {
	syl, ok := line.Value(karaoke.KeySyllable).(*karaoke.Syllable)
	if !ok {
		return nil
	}
	x, okx := syl.Float(karaoke.KeyX)
	y, oky := syl.Float(karaoke.KeyY)
	if !okx || !oky {
		return nil
	}
	return calc.Vec(x, y)
}

// syllableEffect creates one line per syllable, growing while it is sung.
func syllableEffect(rt *environment.Runtime, _ float64) (int, error) {
	doc, err := layout(rt)
	if err != nil {
		return 0, err
	}
	if doc, err = doc.Syllables(); err != nil {
		return 0, err
	}
	doc, err = tags.NewBuilder(doc).
		Tag("pos", tags.PerLine(syllablePosition)).
		Tag("t", tags.PerLine(func(line *karaoke.Line) interface{} {
			return fmt.Sprintf(`(0,%d,\fscx120\fscy120)`, int64(line.Duration()))
		})).
		Generate()
	if err != nil {
		return 0, err
	}
	return emit(rt, doc)
}

// frameEffect fades lines in frame by frame.
func frameEffect(rt *environment.Runtime, fps float64) (int, error) {
	if _, ok := rt.Viewport().FPS(); !ok && fps <= 0 {
		return 0, core.MissingData("frame effect needs a frame rate, use -fps")
	}
	doc, err := layout(rt)
	if err != nil {
		return 0, err
	}
	doc, err = tags.NewBuilder(doc).
		FrameRate(fps, false).
		Position().
		Tag("alpha", tags.PerFrame(func(_ *karaoke.Line, t float64) interface{} {
			return calc.InterpolateAlpha(t, 255, 0)
		}, 0.5)).
		Generate()
	if err != nil {
		return 0, err
	}
	return emit(rt, doc)
}
