package tags

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/calc"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Kind tells how a tag value is computed.
type Kind int8

// Kinds of tag values
const (
	KindStatic Kind = iota
	KindPerLine
	KindPerFrame
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindPerLine:
		return "per-line"
	case KindPerFrame:
		return "per-frame"
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// LineFunc computes a tag value from a line. Returning nil means "no value".
type LineFunc func(line *karaoke.Line) interface{}

// FrameFunc computes a tag value from a frame slice of a line and the
// animation time t.
type FrameFunc func(line *karaoke.Line, t float64) interface{}

// Value is a tagged union of the three kinds of tag values.
type Value struct {
	kind   Kind
	static interface{}
	line   LineFunc
	frame  FrameFunc
	accel  float64
}

// Static creates a value which is the same for every line.
func Static(v interface{}) Value {
	return Value{kind: KindStatic, static: v}
}

// PerLine creates a value computed for every line.
func PerLine(fn LineFunc) Value {
	return Value{kind: KindPerLine, line: fn}
}

// PerFrame creates a value computed for every frame of a line, with
// t = (index/count)^acceleration. An acceleration <= 0 is taken as 1.
func PerFrame(fn FrameFunc, acceleration float64) Value {
	if acceleration <= 0 {
		acceleration = 1
	}
	return Value{kind: KindPerFrame, frame: fn, accel: acceleration}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Eval computes v for line. Per-frame values need a frame slice as created
// by document.Frames. f4f tells whether line is a frame slice; in
// that case per-line values see the slice's original line.
func (v Value) Eval(line *karaoke.Line, f4f bool) (interface{}, error) {
	switch v.kind {
	case KindStatic:
		return v.static, nil
	case KindPerLine:
		if v.line == nil {
			return nil, nil
		}
		if f4f {
			if orig, ok := line.Value(karaoke.KeyOriginal).(*karaoke.Line); ok {
				line = orig
			}
		}
		return v.line(line), nil
	case KindPerFrame:
		if v.frame == nil {
			return nil, nil
		}
		index, ok1 := line.Float(karaoke.KeyFrameIndex)
		count, ok2 := line.Float(karaoke.KeyFrameCount)
		if !ok1 || !ok2 || count <= 0 {
			return nil, core.MissingData("per-frame tag value needs a frame slice, no frame rate given?")
		}
		t := math.Pow(index/count, v.accel)
		return v.frame(line, t), nil
	}
	return nil, core.Invalid("unknown tag value kind %s", v.kind)
}

// --- Rendering -------------------------------------------------------------

// Tag is a named tag with a computed value.
type Tag struct {
	Name  string
	Value interface{}
}

// String renders t as `\name value`.
func (t Tag) String() string {
	return `\` + t.Name + FormatValue(t.Value)
}

// FormatValue renders a tag argument. Vectors and slices render as
// "(a,b,...)", numbers without exponent, everything else in its plain
// string form.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case calc.Vector:
		return x.String()
	case float64:
		return calc.FormatNumber(x)
	case float32:
		return calc.FormatNumber(float64(x))
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = calc.FormatNumber(f)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case []int:
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = fmt.Sprint(n)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatValue(e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Block renders tags as a tag block in front of text. Without tags, text is
// returned unchanged.
func Block(tags []Tag, text string) string {
	if len(tags) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteByte('{')
	for _, t := range tags {
		b.WriteString(t.String())
	}
	b.WriteByte('}')
	b.WriteString(text)
	return b.String()
}
