package environment

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Capability is a set of optional features of an environment.
type Capability uint8

// Capabilities
const (
	CapStyles    Capability = 1 << iota // named styles
	CapImages                           // image access
	CapOutput                           // environment writes its own output file
	CapVideoInfo                        // video meta data, e.g. fps
)

func (c Capability) String() string {
	var caps []string
	for _, x := range []struct {
		c    Capability
		name string
	}{
		{CapStyles, "styles"}, {CapImages, "images"},
		{CapOutput, "output"}, {CapVideoInfo, "vinfo"},
	} {
		if c&x.c != 0 {
			caps = append(caps, x.name)
		}
	}
	return "[" + strings.Join(caps, ",") + "]"
}

// StyleRef references a style either by name or by value.
type StyleRef struct {
	Name  string
	Style *karaoke.Style
}

// RawSyllable is syllable data as delivered by an environment.
type RawSyllable struct {
	Start    timecode.Time // relative to line start
	Duration float64       // centiseconds
	Text     string
}

// RawLine is line data as delivered by an environment.
type RawLine struct {
	Start, End timecode.Time
	Style      StyleRef
	Anchor     karaoke.Anchor
	Margin     karaoke.Margin
	Layer      int
	Syllables  []RawSyllable
}

// Environment is the contract between karaoke effects and their host.
type Environment interface {
	Supports(Capability) bool
	// Syllables returns the input lines. It may be called multiple times.
	Syllables() ([]RawLine, error)
	ViewportSize() (width, height int, err error)
	Style(name string) (*karaoke.Style, error)
	Styles() ([]*karaoke.Style, error)
	FPS() (float64, error)
	Image(name string) (image.Image, error)
	WriteLine(line *karaoke.Line) error
}

// StyleManagerProvider is implemented by environments bringing their own
// style manager.
type StyleManagerProvider interface {
	StyleManager() StyleManager
}

// Base implements the optional parts of Environment as unsupported and
// writes lines to a text sink. Environments embed Base and override what
// they support.
type Base struct {
	Caps Capability
	Out  io.Writer // sink for WriteLine, defaults to stdout
}

// Supports reports whether all capabilities in c are supported.
func (b Base) Supports(c Capability) bool {
	return b.Caps&c == c
}

// Style is unsupported.
func (b Base) Style(name string) (*karaoke.Style, error) {
	return nil, core.Unsupported("styles are not supported by the environment")
}

// Styles is unsupported.
func (b Base) Styles() ([]*karaoke.Style, error) {
	return nil, core.Unsupported("styles are not supported by the environment")
}

// FPS is unsupported.
func (b Base) FPS() (float64, error) {
	return 0, core.Unsupported("video info is not supported by the environment")
}

// Image is unsupported.
func (b Base) Image(name string) (image.Image, error) {
	return nil, core.Unsupported("images are not supported by the environment")
}

// WriteLine writes line as a Dialogue event to b.Out.
func (b Base) WriteLine(line *karaoke.Line) error {
	out := b.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, DialogueLine(line))
	return err
}

// DialogueLine formats line as a legacy text sink event.
func DialogueLine(line *karaoke.Line) string {
	style := ""
	if line.Style != nil {
		style = line.Style.Name
	}
	return fmt.Sprintf("Dialogue: %d,%s,%s,%s,,%d,%d,%d,,%s",
		line.Layer, line.Start, line.End, style,
		line.Margin.Left, line.Margin.Right, line.Margin.Vertical, line.Text())
}
