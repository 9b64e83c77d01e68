package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/karafx/core"
)

// Clamp restricts value to [min, max].
func Clamp(min, value, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// Interpolate returns the value between start (t=0) and end (t=1).
func Interpolate(t, start, end float64) float64 {
	return t*(end-start) + start
}

// InterpolateVector interpolates between two points.
func InterpolateVector(t float64, start, end Vector) Vector {
	return Vector{Interpolate(t, start[0], end[0]), Interpolate(t, start[1], end[1])}
}

// InterpolateColor interpolates between two ASS colour or alpha values,
// written as hex strings with optional "&H" prefix and "&" suffix. Both
// values must have the same number of hex digits, either 2 (alpha) or
// 6 (BBGGRR). The result is formatted as "&H…&".
func InterpolateColor(t float64, start, end string) (string, error) {
	s, e := stripAmpH(start), stripAmpH(end)
	if len(s) != len(e) {
		return "", core.Invalid("colour values %q and %q differ in length", start, end)
	}
	if len(s) != 2 && len(s) != 6 {
		return "", core.Invalid("invalid hexadecimal colour value %q", start)
	}
	a, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "invalid colour value %q", start)
	}
	b, err := strconv.ParseUint(e, 16, 32)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "invalid colour value %q", end)
	}
	if len(s) == 6 {
		// channels interpolate independently
		var c uint64
		for shift := 0; shift < 24; shift += 8 {
			ca, cb := float64(a>>shift&0xff), float64(b>>shift&0xff)
			c |= uint64(Clamp(0, math.Round(Interpolate(t, ca, cb)), 255)) << shift
		}
		return fmt.Sprintf("&H%06X&", c), nil
	}
	v := Clamp(0, math.Round(Interpolate(t, float64(a), float64(b))), 255)
	return fmt.Sprintf("&H%02X&", int(v)), nil
}

// InterpolateAlpha interpolates numeric alpha values and formats the
// result as "&HXX&".
func InterpolateAlpha(t, start, end float64) string {
	return fmt.Sprintf("&H%02X&", int(Clamp(0, math.Round(Interpolate(t, start, end)), 255)))
}

func stripAmpH(s string) string {
	s = strings.TrimPrefix(s, "&")
	s = strings.TrimPrefix(s, "H")
	return strings.TrimSuffix(s, "&")
}

// --- Bézier curves ---------------------------------------------------------

// Choose returns the binomial coefficient n over k.
func Choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}

// Bernstein evaluates the i-th Bernstein basis polynomial of degree n at t.
func Bernstein(i, n int, t float64) float64 {
	return Choose(n, i) * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
}

// Bezier returns the point at t ∈ [0,1] on the Bézier curve with the given
// control points.
func Bezier(t float64, points ...Vector) Vector {
	var p Vector
	n := len(points) - 1
	for i, cp := range points {
		p = p.Add(cp.Scale(Bernstein(i, n, t)))
	}
	return p
}
