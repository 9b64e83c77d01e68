package document

import (
	"math"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// FrameLength returns the length of a frame in milliseconds.
func FrameLength(fps float64) float64 {
	return 1000 / fps
}

// Frames splits every line into consecutive slices of one frame each.
//
// fps <= 0 means "no frame rate given". In that case the video frame rate
// of the environment is used; if there is none, the lines are copied
// unchanged. If preferVideo is set, the video frame rate wins over fps
// whenever the environment has one.
//
// Every slice is a copy of its line with extensions "original" (the source
// line), "index" and "count". Index and count are also set as "frame_index"
// and "frame_count", which are reserved for frame slices.
func (d *Document) Frames(fps float64, preferVideo bool) (*Document, error) {
	videoFPS, hasVideo := d.videoFPS()
	switch {
	case hasVideo && (fps <= 0 || preferVideo):
		fps = videoFPS
	case fps <= 0:
		tracer().Debugf("no frame rate, frames are identity")
		return d.Refactor(func(line *karaoke.Line) ([]*karaoke.Line, error) {
			return []*karaoke.Line{line}, nil
		})
	}
	return d.Refactor(func(line *karaoke.Line) ([]*karaoke.Line, error) {
		return frameSlices(line, fps)
	})
}

func (d *Document) videoFPS() (float64, bool) {
	rt := d.runtime()
	if rt == nil {
		return 0, false
	}
	return rt.Viewport().FPS()
}

func frameSlices(line *karaoke.Line, fps float64) ([]*karaoke.Line, error) {
	if fps <= 0 || math.IsInf(fps, 0) || math.IsNaN(fps) {
		return nil, core.Invalid("invalid frame rate %g", fps)
	}
	flen := FrameLength(fps)
	duration := float64(line.Duration())
	count := int(math.Ceil(duration / flen))
	if count < 1 {
		count = 1
	}
	slices := make([]*karaoke.Line, count)
	for i := 0; i < count; i++ {
		start := line.Start + timecode.Time(math.Floor(float64(i)*flen))
		end := line.Start + timecode.Time(math.Floor(float64(i+1)*flen))
		if end > line.End || i == count-1 {
			end = line.End
		}
		slice := line.Copy()
		moveLineStart(slice, start)
		slice.End = end
		slice.Set(karaoke.KeyOriginal, line)
		slice.Set(karaoke.KeyIndex, i)
		slice.Set(karaoke.KeyFrameIndex, i)
		slices[i] = slice
	}
	for _, slice := range slices {
		slice.Set(karaoke.KeyCount, count)
		slice.Set(karaoke.KeyFrameCount, count)
	}
	return slices, nil
}

// moveLineStart sets the start of line while keeping the absolute times of
// its syllables.
func moveLineStart(line *karaoke.Line, start timecode.Time) {
	delta := start - line.Start
	line.Start = start
	for _, syl := range line.Syllables {
		syl.Start -= delta
	}
}
