package timecode

import (
	"testing"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestTimeString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.timecode")
	defer teardown()
	//
	assert.Equal(t, "0:00:00.00", Time(0).String())
	assert.Equal(t, "0:00:01.23", Time(1234).String())
	assert.Equal(t, "1:02:03.45", (Hour + 2*Minute + 3*Second + 450).String())
	assert.Equal(t, "-0:00:00.50", Time(-500).String())
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.timecode")
	defer teardown()
	//
	cases := []struct {
		in  string
		out Time
	}{
		{"1:02:03.45", Hour + 2*Minute + 3*Second + 450},
		{"02:03.45", 2*Minute + 3*Second + 450},
		{"3.45", 3450},
		{"1.5", 1500},
		{"0:00:01,250", 1250},
		{"1500", 1500},
		{" 0:00:05.00 ", 5 * Second},
	}
	for _, c := range cases {
		tm, err := Parse(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.out, tm, c.in)
	}
}

func TestParseRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.timecode")
	defer teardown()
	//
	for _, s := range []string{"0:00:00.00", "0:01:02.03", "2:59:59.99"} {
		assert.Equal(t, s, MustParse(s).String())
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karafx.timecode")
	defer teardown()
	//
	_, err := Parse("1:2:3:4")
	assert.True(t, core.Is(err, core.EINVALID))
	_, err = Parse("abc")
	assert.True(t, core.Is(err, core.EINVALID))
	assert.Panics(t, func() { MustParse("") })
}

func TestConversions(t *testing.T) {
	assert.Equal(t, Time(1235), FromSeconds(1.2349))
	assert.Equal(t, int64(123), Time(1239).Centiseconds())
}
