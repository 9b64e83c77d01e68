package option_test

import (
	"testing"

	"github.com/npillmayer/karafx/core/option"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestInt64Set(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.option")
	defer teardown()
	//
	x := option.SomeInt64(42)
	assert.False(t, x.IsNone())
	assert.Equal(t, int64(42), x.Unwrap())
	assert.Equal(t, int64(42), x.OrElse(7))
	assert.Equal(t, "42", x.String())
	//
	zero := option.SomeInt64(0)
	assert.False(t, zero.IsNone(), "zero is a value, not an unset option")
	assert.Equal(t, int64(0), zero.OrElse(7))
}

func TestInt64None(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.option")
	defer teardown()
	//
	x := option.Int64()
	assert.True(t, x.IsNone())
	assert.Equal(t, option.Int64None, x.Unwrap())
	assert.Equal(t, int64(7), x.OrElse(7))
	assert.Equal(t, "Int64.None", x.String())
	assert.Equal(t, int64(-3), x.OrElse(-3))
}
