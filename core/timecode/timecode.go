/*
Package timecode implements integer millisecond times as used in subtitle
documents.

Times are rendered in the legacy text-sink format `H:MM:SS.CC`, i.e. with
centisecond precision.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package timecode

import (
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.timecode'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.timecode")
}

// Time is a point in time or a duration, in milliseconds.
type Time int64

// Some handy constants
const (
	Millisecond Time = 1
	Centisecond Time = 10
	Second      Time = 1000
	Minute      Time = 60 * Second
	Hour        Time = 60 * Minute
)

// String renders t as H:MM:SS.CC.
func (t Time) String() string {
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	return fmt.Sprintf("%s%d:%02d:%02d.%02d", sign,
		t/Hour,
		t%Hour/Minute,
		t%Minute/Second,
		t%Second/Centisecond,
	)
}

// Centiseconds returns t in centiseconds, truncating.
func (t Time) Centiseconds() int64 {
	return int64(t / Centisecond)
}

// FromSeconds converts fractional seconds to a Time, rounding to the
// nearest millisecond.
func FromSeconds(s float64) Time {
	return Time(math.Round(s * 1000))
}

// --- Parsing ---------------------------------------------------------------

var (
	clockLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Punct", Pattern: `[:.,]`},
	})

	clockParser = participle.MustBuild[clock](
		participle.Lexer(clockLexer),
		participle.Elide("Whitespace"),
	)
)

// clock is the AST for time codes of the form [[H:]MM:]SS[.CC] or MS.
type clock struct {
	Parts    []int  `parser:"@Int ( ':' @Int )*"`
	Fraction string `parser:"( ( '.' | ',' ) @Int )?"`
}

// Parse parses a time code. Accepted forms are H:MM:SS.CC, MM:SS.CC, SS.CC
// and a plain integer, which is interpreted as milliseconds. The fractional
// part is decimal, i.e. "1.5" is 1500 ms and "0:00:01.25" is 1250 ms.
func Parse(s string) (Time, error) {
	c, err := clockParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "cannot parse time code %q", s)
	}
	if len(c.Parts) > 3 {
		return 0, core.Invalid("time code %q has too many components", s)
	}
	if len(c.Parts) == 1 && c.Fraction == "" {
		return Time(c.Parts[0]), nil
	}
	var t Time
	for i, p := range c.Parts {
		switch len(c.Parts) - i {
		case 3:
			t += Time(p) * Hour
		case 2:
			t += Time(p) * Minute
		case 1:
			t += Time(p) * Second
		}
	}
	if c.Fraction != "" {
		t += fraction(c.Fraction)
	}
	tracer().Debugf("parsed time code %q as %d ms", s, t)
	return t, nil
}

// MustParse is like Parse, but panics on malformed input.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func fraction(digits string) Time {
	var v float64
	scale := 1.0
	for _, d := range digits {
		v = v*10 + float64(d-'0')
		scale *= 10
	}
	return Time(math.Round(v / scale * 1000))
}
