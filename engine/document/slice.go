package document

import (
	"math"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/option"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Slice selects lines, dispatching on the types of its arguments:
//
//	start or stop is a string or timecode.Time   → SliceTime, step is an int
//	step is a float                               → SliceFrames, step is the fps
//	otherwise                                     → SliceIndex
//
// nil stands for an unset argument.
func (d *Document) Slice(start, stop, step interface{}) (*Document, error) {
	if isTimeArg(start) || isTimeArg(stop) {
		a, err := timeArg(start, 0)
		if err != nil {
			return nil, err
		}
		b, err := timeArg(stop, timecode.Time(math.MaxInt64))
		if err != nil {
			return nil, err
		}
		n, err := intArg(step)
		if err != nil {
			return nil, err
		}
		return d.SliceTime(a, b, int(n.OrElse(1)))
	}
	a, err := intArg(start)
	if err != nil {
		return nil, err
	}
	b, err := intArg(stop)
	if err != nil {
		return nil, err
	}
	switch fps := step.(type) {
	case float64:
		return d.SliceFrames(a, b, fps)
	case float32:
		return d.SliceFrames(a, b, float64(fps))
	}
	n, err := intArg(step)
	if err != nil {
		return nil, err
	}
	return d.SliceIndex(a, b, int(n.OrElse(1)))
}

func isTimeArg(v interface{}) bool {
	switch v.(type) {
	case string, timecode.Time:
		return true
	}
	return false
}

func timeArg(v interface{}, dflt timecode.Time) (timecode.Time, error) {
	switch x := v.(type) {
	case nil:
		return dflt, nil
	case timecode.Time:
		return x, nil
	case string:
		return timecode.Parse(x)
	case int:
		return timecode.Time(x), nil
	case int64:
		return timecode.Time(x), nil
	}
	return 0, core.Invalid("cannot use %T as time bound", v)
}

func intArg(v interface{}) (option.Int64T, error) {
	switch x := v.(type) {
	case nil:
		return option.Int64(), nil
	case int:
		return option.SomeInt64(int64(x)), nil
	case int64:
		return option.SomeInt64(x), nil
	case option.Int64T:
		return x, nil
	}
	return option.Int64(), core.Invalid("cannot use %T as slice argument", v)
}

// SliceTime keeps the lines overlapping the time window [start, stop] and
// truncates them to it. Syllables are truncated the same way: a syllable
// straddling the window start starts at the window start and keeps its
// end, and symmetrically at the window end. Syllables outside the window
// are dropped. The result is downsampled by step.
func (d *Document) SliceTime(start, stop timecode.Time, step int) (*Document, error) {
	if stop < start {
		return nil, core.Invalid("time slice ends (%s) before it starts (%s)", stop, start)
	}
	sliced, err := d.Refactor(func(line *karaoke.Line) ([]*karaoke.Line, error) {
		if !overlaps(line.Start, line.End, start, stop) {
			return nil, nil
		}
		return []*karaoke.Line{truncate(line, start, stop)}, nil
	})
	if err != nil {
		return nil, err
	}
	return sliced.stride(step)
}

// overlaps is true if [s, e] shares time with window [ws, we]. Empty spans
// overlap if they lie inside the window.
func overlaps(s, e, ws, we timecode.Time) bool {
	if s == e {
		return s >= ws && s < we
	}
	return s < we && e > ws
}

func truncate(line *karaoke.Line, ws, we timecode.Time) *karaoke.Line {
	type span struct{ start, end timecode.Time }
	lineStart := maxTime(line.Start, ws)
	lineEnd := minTime(line.End, we)
	var kept []*karaoke.Syllable
	var spans []span
	for _, syl := range line.Syllables {
		s, e := syl.AbsStart(), syl.AbsEnd()
		if !overlaps(s, e, ws, we) {
			continue
		}
		kept = append(kept, syl)
		spans = append(spans, span{maxTime(s, ws), minTime(e, we)})
	}
	line.Syllables = kept
	line.Start, line.End = lineStart, lineEnd
	for i, syl := range kept {
		syl.Start = spans[i].start - lineStart
		_ = syl.SetEnd(spans[i].end - lineStart) // end ≥ start by construction
	}
	return line
}

// SliceFrames slices by frame numbers. start and stop are converted to
// times using a frame length of 1000/fps milliseconds. Unset bounds span
// the whole document.
func (d *Document) SliceFrames(start, stop option.Int64T, fps float64) (*Document, error) {
	if fps <= 0 {
		return nil, core.Invalid("invalid frame rate %g", fps)
	}
	flen := FrameLength(fps)
	ws := timecode.Time(0)
	if !start.IsNone() {
		ws = timecode.Time(math.Round(float64(start.Unwrap()) * flen))
	}
	we := timecode.Time(math.MaxInt64)
	if !stop.IsNone() {
		we = timecode.Time(math.Round(float64(stop.Unwrap()) * flen))
	}
	return d.SliceTime(ws, we, 1)
}

// SliceIndex selects lines by index. Negative indices count from the end.
// A negative step reverses the selection.
func (d *Document) SliceIndex(start, stop option.Int64T, step int) (*Document, error) {
	lines, err := d.Lines()
	if err != nil {
		return nil, err
	}
	n := len(lines)
	a := normalizeIndex(start.OrElse(0), n)
	b := normalizeIndex(stop.OrElse(int64(n)), n)
	if b < a {
		return nil, core.Invalid("index slice ends (%d) before it starts (%d)", b, a)
	}
	return d.derived(lines[a:b]).stride(step)
}

func normalizeIndex(i int64, n int) int {
	if i < 0 {
		i += int64(n)
	}
	if i < 0 {
		return 0
	}
	if i > int64(n) {
		return n
	}
	return int(i)
}

// stride downsamples the lines of a line buffer.
func (d *Document) stride(step int) (*Document, error) {
	switch {
	case step == 0:
		return nil, core.Invalid("slice step must not be 0")
	case step == 1:
		return d, nil
	}
	b := d.store.(*buffer)
	var kept []*karaoke.Line
	if step > 0 {
		for i := 0; i < len(b.content); i += step {
			kept = append(kept, b.content[i])
		}
	} else {
		for i := len(b.content) - 1; i >= 0; i += step {
			kept = append(kept, b.content[i])
		}
	}
	b.content = kept
	return d, nil
}

func maxTime(a, b timecode.Time) timecode.Time {
	if a > b {
		return a
	}
	return b
}

func minTime(a, b timecode.Time) timecode.Time {
	if a < b {
		return a
	}
	return b
}
