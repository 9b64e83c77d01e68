package karaoke

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/karafx/core/timecode"
)

// Well-known extension keys.
const (
	KeyIndex     = "index"
	KeyCount     = "count"
	KeyLineIndex = "line_index"
	KeyPrevious  = "previous"
	KeyNext      = "next"
	KeyInFade    = "infade"
	KeyOutFade   = "outfade"
	KeyWidth     = "width"
	KeyHeight    = "height"
	KeyAscent    = "ascent"
	KeyDescent   = "descent"
	KeyExtLead   = "extlead"
	KeyIntLead   = "intlead"
	KeyAdvance   = "advance"
	KeyTop       = "top"
	KeyLeft      = "left"
	KeyMiddle    = "middle"
	KeyBottom    = "bottom"
	KeyCenter    = "center"
	KeyRight     = "right"
	KeyX         = "x"
	KeyY         = "y"
	KeyOriginal  = "original"
	KeySyllable  = "syllable"
	KeyLine      = "line"
)

// Extension keys set on frame slices only. Processors never set them, so
// per-frame values cannot pick up a line index by accident.
const (
	KeyFrameIndex = "frame_index"
	KeyFrameCount = "frame_count"
)

// Extension is an insertion-ordered string-keyed map. The zero value is an
// empty map ready to use.
type Extension struct {
	m *linkedhashmap.Map
}

func (e *Extension) init() {
	if e.m == nil {
		e.m = linkedhashmap.New()
	}
}

// Get returns the value stored for key.
func (e *Extension) Get(key string) (interface{}, bool) {
	if e.m == nil {
		return nil, false
	}
	return e.m.Get(key)
}

// Value returns the value stored for key, or nil.
func (e *Extension) Value(key string) interface{} {
	v, _ := e.Get(key)
	return v
}

// Set stores a value for key. Re-setting a key keeps its position.
func (e *Extension) Set(key string, value interface{}) {
	e.init()
	e.m.Put(key, value)
}

// Has reports whether key is present.
func (e *Extension) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// Delete removes key.
func (e *Extension) Delete(key string) {
	if e.m != nil {
		e.m.Remove(key)
	}
}

// Keys returns the keys in insertion order.
func (e *Extension) Keys() []string {
	if e.m == nil {
		return nil
	}
	keys := make([]string, 0, e.m.Size())
	for _, k := range e.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Len returns the number of entries.
func (e *Extension) Len() int {
	if e.m == nil {
		return 0
	}
	return e.m.Size()
}

// Each calls f for every entry in insertion order.
func (e *Extension) Each(f func(key string, value interface{})) {
	if e.m == nil {
		return
	}
	e.m.Each(func(k, v interface{}) {
		f(k.(string), v)
	})
}

// CopyExtension returns a copy of e. Values are copied shallowly.
func (e *Extension) CopyExtension() Extension {
	c := Extension{}
	e.Each(func(k string, v interface{}) {
		c.Set(k, v)
	})
	return c
}

// Float returns a numeric value as float64.
func (e *Extension) Float(key string) (float64, bool) {
	v, ok := e.Get(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Int returns an integral value as int. Floats are truncated.
func (e *Extension) Int(key string) (int, bool) {
	v, ok := e.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case timecode.Time:
		return int(n), true
	}
	if f, ok := toFloat(v); ok {
		return int(f), true
	}
	return 0, false
}

// MustFloat returns the numeric value for key or 0.
func (e *Extension) MustFloat(key string) float64 {
	f, _ := e.Float(key)
	return f
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case timecode.Time:
		return float64(n), true
	}
	return 0, false
}

func (e *Extension) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	e.Each(func(k string, v interface{}) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		switch v.(type) {
		case *Line:
			fmt.Fprintf(&b, "%s:<line>", k)
		case *Syllable:
			fmt.Fprintf(&b, "%s:<syllable>", k)
		default:
			fmt.Fprintf(&b, "%s:%v", k, v)
		}
	})
	b.WriteByte('}')
	return b.String()
}
