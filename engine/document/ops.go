package document

import (
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/option"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// SetText overrides the text of every line with the result of fn.
func (d *Document) SetText(fn func(*karaoke.Line) (string, error)) (*Document, error) {
	return d.Annotate(func(line *karaoke.Line) error {
		text, err := fn(line)
		if err != nil {
			return err
		}
		line.SetText(text)
		return nil
	})
}

// Line fields which may be set with SetValue.
const (
	FieldStart  = "start"
	FieldEnd    = "end"
	FieldLayer  = "layer"
	FieldAnchor = "anchor"
	FieldText   = "text"
	FieldStyle  = "style"
	FieldMargin = "margin"
)

// SetValue sets the line field called name to the value fn computes for
// each line. Values of the wrong type result in EINVALID, unknown fields in
// EUNSUPPORTED.
func (d *Document) SetValue(name string, fn func(*karaoke.Line) (interface{}, error)) (*Document, error) {
	return d.Annotate(func(line *karaoke.Line) error {
		v, err := fn(line)
		if err != nil {
			return err
		}
		return setField(line, name, v)
	})
}

func setField(line *karaoke.Line, name string, v interface{}) error {
	mismatch := func() error {
		return core.Invalid("cannot set %s to value of type %T", name, v)
	}
	switch name {
	case FieldStart, FieldEnd:
		t, ok := asTime(v)
		if !ok {
			return mismatch()
		}
		if name == FieldStart {
			line.Start = t
		} else {
			line.End = t
		}
	case FieldLayer:
		n, ok := v.(int)
		if !ok {
			return mismatch()
		}
		line.Layer = n
	case FieldAnchor:
		var a karaoke.Anchor
		switch x := v.(type) {
		case karaoke.Anchor:
			a = x
		case int:
			a = karaoke.Anchor(x)
		default:
			return mismatch()
		}
		if !a.Valid() {
			return core.Invalid("anchor %d out of range", a)
		}
		line.Anchor = a
	case FieldText:
		s, ok := v.(string)
		if !ok {
			return mismatch()
		}
		line.SetText(s)
	case FieldStyle:
		s, ok := v.(*karaoke.Style)
		if !ok {
			return mismatch()
		}
		line.Style = s
	case FieldMargin:
		m, ok := v.(karaoke.Margin)
		if !ok {
			return mismatch()
		}
		line.Margin = m
	default:
		return core.Unsupported("line has no settable field %q", name)
	}
	return nil
}

func asTime(v interface{}) (timecode.Time, bool) {
	switch x := v.(type) {
	case timecode.Time:
		return x, true
	case int:
		return timecode.Time(x), true
	case int64:
		return timecode.Time(x), true
	case string:
		t, err := timecode.Parse(x)
		return t, err == nil
	}
	return 0, false
}

// SetExtension stores a value in the extension map of every line. fn returns
// the key and the value.
func (d *Document) SetExtension(fn func(*karaoke.Line) (string, interface{}, error)) (*Document, error) {
	return d.Annotate(func(line *karaoke.Line) error {
		key, value, err := fn(line)
		if err != nil {
			return err
		}
		line.Set(key, value)
		return nil
	})
}

// Retiming describes how Retime changes the timing of a line.
//
// For absolute retimings, Start and End replace the line's times; an unset
// bound keeps the current value. For relative retimings they are offsets
// added to the line's times; an unset bound counts as 0.
type Retiming struct {
	Absolute   bool
	Start, End option.Int64T
}

// Absolute creates an absolute retiming.
func Absolute(start, end option.Int64T) Retiming {
	return Retiming{Absolute: true, Start: start, End: end}
}

// Relative creates a relative retiming.
func Relative(start, end option.Int64T) Retiming {
	return Retiming{Start: start, End: end}
}

// Shift creates a relative retiming moving both ends by delta.
func Shift(delta timecode.Time) Retiming {
	return Relative(option.SomeInt64(int64(delta)), option.SomeInt64(int64(delta)))
}

func (r Retiming) apply(line *karaoke.Line) error {
	var start, end timecode.Time
	if r.Absolute {
		start = timecode.Time(r.Start.OrElse(int64(line.Start)))
		end = timecode.Time(r.End.OrElse(int64(line.End)))
	} else {
		start = line.Start + timecode.Time(r.Start.OrElse(0))
		end = line.End + timecode.Time(r.End.OrElse(0))
	}
	return line.Retime(start, end)
}

// Retime changes the timing of every line as fn demands. Syllable times
// are relative to the line start and move along with it. A line ending
// before it starts results in ETIMING.
func (d *Document) Retime(fn func(*karaoke.Line) (Retiming, error)) (*Document, error) {
	return d.Annotate(func(line *karaoke.Line) error {
		r, err := fn(line)
		if err != nil {
			return err
		}
		return r.apply(line)
	})
}
