package process

import (
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// IndexProcessor numbers lines and syllables, starting at 0. Syllables
// additionally get the index of their line.
type IndexProcessor struct {
	Stages
}

func (IndexProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	for i, line := range lines {
		line.Set(karaoke.KeyIndex, i)
		for j, syl := range line.Syllables {
			syl.Set(karaoke.KeyIndex, j)
			syl.Set(karaoke.KeyLineIndex, i)
		}
	}
	return nil
}

// CountProcessor stores the number of lines on every line and the number of
// syllables of a line on every one of its syllables.
type CountProcessor struct {
	Stages
}

func (CountProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	for _, line := range lines {
		line.Set(karaoke.KeyCount, len(lines))
		for _, syl := range line.Syllables {
			syl.Set(karaoke.KeyCount, len(line.Syllables))
		}
	}
	return nil
}

// LinkingProcessor links consecutive lines, and consecutive syllables within
// a line, with previous and next references. Open ends are nil.
type LinkingProcessor struct {
	Stages
}

func (LinkingProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	var last *karaoke.Line
	for _, line := range lines {
		if last == nil {
			line.Set(karaoke.KeyPrevious, nil)
		} else {
			line.Set(karaoke.KeyPrevious, last)
			last.Set(karaoke.KeyNext, line)
		}
		last = line
		var lastSyl *karaoke.Syllable
		for _, syl := range line.Syllables {
			if lastSyl == nil {
				syl.Set(karaoke.KeyPrevious, nil)
			} else {
				syl.Set(karaoke.KeyPrevious, lastSyl)
				lastSyl.Set(karaoke.KeyNext, syl)
			}
			lastSyl = syl
		}
		if lastSyl != nil {
			lastSyl.Set(karaoke.KeyNext, nil)
		}
	}
	if last != nil {
		last.Set(karaoke.KeyNext, nil)
	}
	return nil
}

// FadeTimingProcessor stores the gap to the previous line as infade and the
// gap to the next line as outfade. The first line's infade and the last
// line's outfade are 0.
type FadeTimingProcessor struct {
	Stages
}

func (FadeTimingProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	if len(lines) == 0 {
		return nil
	}
	lines[0].Set(karaoke.KeyInFade, timecode.Time(0))
	for i := 1; i < len(lines); i++ {
		gap := lines[i].Start - lines[i-1].End
		lines[i-1].Set(karaoke.KeyOutFade, gap)
		lines[i].Set(karaoke.KeyInFade, gap)
	}
	lines[len(lines)-1].Set(karaoke.KeyOutFade, timecode.Time(0))
	return nil
}
