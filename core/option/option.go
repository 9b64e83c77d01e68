package option

import (
	"math"
	"strconv"
)

// Int64T is an option type for int64, used for millisecond times and
// frame numbers.
type Int64T int64

// Int64None is used as an in-band null value for type int64 for optional integers.
const Int64None int64 = math.MaxInt64

// SomeInt64 creates an optional int64 with an initial value of x.
func SomeInt64(x int64) Int64T {
	return Int64T(x)
}

// Int64 creates an optional int64 without an initial value.
func Int64() Int64T {
	return Int64T(Int64None)
}

// Unwrap returns the value of o. For unset options it returns Int64None.
func (o Int64T) Unwrap() int64 {
	return int64(o)
}

// OrElse returns the value of o, or dflt if o is unset.
func (o Int64T) OrElse(dflt int64) int64 {
	if o.IsNone() {
		return dflt
	}
	return int64(o)
}

// IsNone returns true if o is unset.
func (o Int64T) IsNone() bool {
	return o == Int64T(Int64None)
}

func (o Int64T) String() string {
	if o.IsNone() {
		return "Int64.None"
	}
	return strconv.FormatInt(int64(o), 10)
}
