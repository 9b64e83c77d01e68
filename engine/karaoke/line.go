package karaoke

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/timecode"
)

// Syllable is a timed sub-span of a line's text.
type Syllable struct {
	Extension
	line *Line
	// Start is relative to the start of the owning line.
	Start timecode.Time
	// Duration is given in centiseconds.
	Duration float64
	Text     string
}

// NewSyllable creates a syllable. It is not yet attached to a line.
func NewSyllable(start timecode.Time, duration float64, text string) *Syllable {
	return &Syllable{Start: start, Duration: duration, Text: text}
}

// Line returns the line owning syl, or nil.
func (syl *Syllable) Line() *Line {
	return syl.line
}

// End returns the end of syl, relative to the line start.
func (syl *Syllable) End() timecode.Time {
	return syl.Start + timecode.Time(math.Round(syl.Duration*10))
}

// SetEnd changes the duration of syl so that it ends at end (relative to
// the line start). It fails with ETIMING if end < Start.
func (syl *Syllable) SetEnd(end timecode.Time) error {
	if end < syl.Start {
		return core.InvalidTiming("syllable end %d before start %d", end, syl.Start)
	}
	syl.Duration = float64(end-syl.Start) / 10
	return nil
}

// AbsStart returns the absolute start time of syl.
func (syl *Syllable) AbsStart() timecode.Time {
	if syl.line == nil {
		return syl.Start
	}
	return syl.line.Start + syl.Start
}

// AbsEnd returns the absolute end time of syl.
func (syl *Syllable) AbsEnd() timecode.Time {
	if syl.line == nil {
		return syl.End()
	}
	return syl.line.Start + syl.End()
}

// Copy copies syl including its extension map. The copy keeps the
// back-reference to the line of syl.
func (syl *Syllable) Copy() *Syllable {
	c := &Syllable{
		line:     syl.line,
		Start:    syl.Start,
		Duration: syl.Duration,
		Text:     syl.Text,
	}
	c.Extension = syl.CopyExtension()
	return c
}

func (syl *Syllable) String() string {
	return fmt.Sprintf("<Syllable start:%d duration:%g text:%q extension:%s>",
		syl.Start, syl.Duration, syl.Text, syl.Extension.String())
}

// --- Lines -----------------------------------------------------------------

// Line is a single subtitle line.
type Line struct {
	Extension
	Start     timecode.Time
	End       timecode.Time
	Style     *Style
	Anchor    Anchor
	Margin    Margin
	Layer     int
	Syllables []*Syllable
	rawText   *string
}

// NewLine creates a line without syllables.
func NewLine(start, end timecode.Time, style *Style, anchor Anchor, margin Margin, layer int) *Line {
	return &Line{
		Start:  start,
		End:    end,
		Style:  style,
		Anchor: anchor,
		Margin: margin,
		Layer:  layer,
	}
}

// AddSyllable appends a syllable to l and makes l its owner.
func (l *Line) AddSyllable(syl *Syllable) *Syllable {
	syl.line = l
	l.Syllables = append(l.Syllables, syl)
	return syl
}

// Text returns the raw text of l if set, otherwise the concatenation of
// the syllable texts.
func (l *Line) Text() string {
	if l.rawText != nil {
		return *l.rawText
	}
	var b strings.Builder
	for _, syl := range l.Syllables {
		b.WriteString(syl.Text)
	}
	return b.String()
}

// SetText overrides the text of l.
func (l *Line) SetText(text string) {
	l.rawText = &text
}

// ClearText removes a text override, making the syllables the source of text.
func (l *Line) ClearText() {
	l.rawText = nil
}

// HasRawText reports whether the text of l is overridden.
func (l *Line) HasRawText() bool {
	return l.rawText != nil
}

// Duration returns End − Start.
func (l *Line) Duration() timecode.Time {
	return l.End - l.Start
}

// Retime sets start and end of l, failing with ETIMING if end < start.
func (l *Line) Retime(start, end timecode.Time) error {
	if end < start {
		return core.InvalidTiming("line end %s before start %s", end, start)
	}
	l.Start, l.End = start, end
	return nil
}

// Copy deep-copies l. Syllables of the copy refer to the copy. Extension
// values are copied shallowly, so links to other lines are shared; use
// CopyLines to copy a set of linked lines.
func (l *Line) Copy() *Line {
	c := &Line{
		Start:  l.Start,
		End:    l.End,
		Style:  l.Style.Copy(),
		Anchor: l.Anchor,
		Margin: l.Margin,
		Layer:  l.Layer,
	}
	if l.rawText != nil {
		c.SetText(*l.rawText)
	}
	c.Extension = l.CopyExtension()
	if len(l.Syllables) > 0 {
		c.Syllables = make([]*Syllable, 0, len(l.Syllables))
		for _, syl := range l.Syllables {
			sc := syl.Copy()
			sc.line = c
			c.Syllables = append(c.Syllables, sc)
		}
	}
	return c
}

func (l *Line) String() string {
	var content string
	if l.rawText != nil {
		content = fmt.Sprintf("text:%q", *l.rawText)
	} else {
		content = fmt.Sprintf("syllables:%v", l.Syllables)
	}
	return fmt.Sprintf("<Line start:%s end:%s style:%v margin:%v anchor:%d %s extension:%s layer:%d>",
		l.Start, l.End, l.Style, l.Margin, l.Anchor, content, l.Extension.String(), l.Layer)
}

// Equal compares the values of two lines, including syllables, but not
// their extension maps.
func (l *Line) Equal(other *Line) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Start != other.Start || l.End != other.End || l.Anchor != other.Anchor ||
		l.Margin != other.Margin || l.Layer != other.Layer || !l.Style.Equals(other.Style, false) {
		return false
	}
	if l.HasRawText() != other.HasRawText() || l.Text() != other.Text() {
		return false
	}
	if len(l.Syllables) != len(other.Syllables) {
		return false
	}
	for i, syl := range l.Syllables {
		o := other.Syllables[i]
		if syl.Start != o.Start || syl.Duration != o.Duration || syl.Text != o.Text {
			return false
		}
	}
	return true
}

// --- Links -----------------------------------------------------------------

// PreviousLine returns the line linked as previous, or nil.
func (l *Line) PreviousLine() *Line {
	p, _ := l.Value(KeyPrevious).(*Line)
	return p
}

// NextLine returns the line linked as next, or nil.
func (l *Line) NextLine() *Line {
	n, _ := l.Value(KeyNext).(*Line)
	return n
}

// PreviousSyllable returns the syllable linked as previous, or nil.
func (syl *Syllable) PreviousSyllable() *Syllable {
	p, _ := syl.Value(KeyPrevious).(*Syllable)
	return p
}

// NextSyllable returns the syllable linked as next, or nil.
func (syl *Syllable) NextSyllable() *Syllable {
	n, _ := syl.Value(KeyNext).(*Syllable)
	return n
}

// --- Copying linked lines ---------------------------------------------------

// CopyLines copies lines together with every line and syllable reachable
// through extension values, e.g. "previous" or "original". Extension values
// in the copies refer to the copies, so no copy shares a line or syllable
// with the input.
func CopyLines(lines []*Line) []*Line {
	c := copier{
		lines: make(map[*Line]*Line, len(lines)),
		syls:  make(map[*Syllable]*Syllable),
	}
	copies := make([]*Line, len(lines))
	for i, l := range lines {
		copies[i] = c.line(l)
	}
	return copies
}

type copier struct {
	lines map[*Line]*Line
	syls  map[*Syllable]*Syllable
}

func (c *copier) line(l *Line) *Line {
	if cp, ok := c.lines[l]; ok {
		return cp
	}
	cp := l.Copy()
	c.lines[l] = cp
	for i, syl := range l.Syllables {
		c.syls[syl] = cp.Syllables[i]
	}
	c.rebind(&cp.Extension)
	for _, syl := range cp.Syllables {
		c.rebind(&syl.Extension)
	}
	return cp
}

func (c *copier) syllable(syl *Syllable) *Syllable {
	if cp, ok := c.syls[syl]; ok {
		return cp
	}
	if syl.line != nil {
		c.line(syl.line)
		if cp, ok := c.syls[syl]; ok {
			return cp
		}
	}
	// detached from its line
	cp := syl.Copy()
	if syl.line != nil {
		cp.line = c.lines[syl.line]
	}
	c.syls[syl] = cp
	c.rebind(&cp.Extension)
	return cp
}

func (c *copier) rebind(e *Extension) {
	for _, key := range e.Keys() {
		switch v := e.Value(key).(type) {
		case *Line:
			if v != nil {
				e.Set(key, c.line(v))
			}
		case *Syllable:
			if v != nil {
				e.Set(key, c.syllable(v))
			}
		}
	}
}
