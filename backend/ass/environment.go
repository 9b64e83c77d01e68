package ass

import (
	"image"
	"io"
	"os"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Options configure an ASS environment.
type Options struct {
	// FPS is the frame rate of the video the script belongs to. If set,
	// the environment supports video info.
	FPS float64
}

// Resolution assumed by renderers for scripts without PlayResX/PlayResY.
const (
	DefaultPlayResX = 384
	DefaultPlayResY = 288
)

// DefaultStyle is used for events referring to an unknown style, unless the
// script defines a style called "Default".
var DefaultStyle = karaoke.Style{Name: "Default", Font: "Arial", Size: 20, Alignment: 2}

// Environment is an environment reading an ASS script and collecting
// written lines as dialogue events.
type Environment struct {
	environment.Base
	script  *Script
	opts    Options
	written []*Event
}

var _ environment.Environment = &Environment{}

// Load reads a script from r.
func Load(r io.Reader, opts Options) (*Environment, error) {
	script, err := ParseScript(r)
	if err != nil {
		return nil, err
	}
	return New(script, opts), nil
}

// Open reads the script at path.
func Open(path string, opts Options) (*Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open script %s", path)
	}
	defer f.Close()
	return Load(f, opts)
}

// New creates an environment for a parsed script.
func New(script *Script, opts Options) *Environment {
	caps := environment.CapStyles | environment.CapOutput
	if opts.FPS > 0 {
		caps |= environment.CapVideoInfo
	}
	return &Environment{
		Base:   environment.Base{Caps: caps},
		script: script,
		opts:   opts,
	}
}

// Script returns the input script.
func (env *Environment) Script() *Script {
	return env.script
}

func (env *Environment) ViewportSize() (int, int, error) {
	w, h := DefaultPlayResX, DefaultPlayResY
	if v, ok := env.script.InfoValue("PlayResX"); ok {
		n, err := parseInt(v, w)
		if err != nil {
			return 0, 0, err
		}
		w = n
	}
	if v, ok := env.script.InfoValue("PlayResY"); ok {
		n, err := parseInt(v, h)
		if err != nil {
			return 0, 0, err
		}
		h = n
	}
	return w, h, nil
}

func (env *Environment) Style(name string) (*karaoke.Style, error) {
	if st, ok := env.script.Style(name); ok {
		return st.Style.Copy(), nil
	}
	return nil, core.MissingData("script has no style %q", name)
}

func (env *Environment) Styles() ([]*karaoke.Style, error) {
	styles := make([]*karaoke.Style, len(env.script.Styles))
	for i, st := range env.script.Styles {
		styles[i] = st.Style.Copy()
	}
	return styles, nil
}

func (env *Environment) FPS() (float64, error) {
	if env.opts.FPS <= 0 {
		return env.Base.FPS()
	}
	return env.opts.FPS, nil
}

func (env *Environment) Image(name string) (image.Image, error) {
	return env.Base.Image(name)
}

// styleFor returns the style an event refers to.
func (env *Environment) styleFor(name string) *karaoke.Style {
	if st, ok := env.script.Style(name); ok {
		return st.Style
	}
	if st, ok := env.script.Style(DefaultStyle.Name); ok {
		return st.Style
	}
	return &DefaultStyle
}

// Syllables converts the dialogue events of the script into raw lines.
// Event margins of 0 mean "use the style's margin".
func (env *Environment) Syllables() ([]environment.RawLine, error) {
	var lines []environment.RawLine
	for _, ev := range env.script.Events {
		if ev.Kind != "Dialogue" {
			continue
		}
		style := env.styleFor(ev.Style)
		syls, anchor := Syllables(ev.Text, ev.End-ev.Start)
		if anchor == 0 {
			anchor = style.Alignment
		}
		margin := style.Margin
		if ev.MarginL != 0 {
			margin.Left = ev.MarginL
		}
		if ev.MarginR != 0 {
			margin.Right = ev.MarginR
		}
		if ev.MarginV != 0 {
			margin.Vertical = ev.MarginV
		}
		lines = append(lines, environment.RawLine{
			Start:     ev.Start,
			End:       ev.End,
			Style:     environment.StyleRef{Name: style.Name, Style: style},
			Anchor:    anchor,
			Margin:    margin,
			Layer:     ev.Layer,
			Syllables: syls,
		})
	}
	return lines, nil
}

// WriteLine stores line as a dialogue event.
func (env *Environment) WriteLine(line *karaoke.Line) error {
	ev := &Event{
		Kind:    "Dialogue",
		Layer:   line.Layer,
		Start:   line.Start,
		End:     line.End,
		MarginL: line.Margin.Left,
		MarginR: line.Margin.Right,
		MarginV: line.Margin.Vertical,
		Text:    line.Text(),
	}
	if line.Style != nil {
		ev.Style = line.Style.Name
	}
	env.written = append(env.written, ev)
	return nil
}

// Written returns the events written so far.
func (env *Environment) Written() []*Event {
	return env.written
}

// Dump writes a script with the info and styles of the input script and
// the written events.
func (env *Environment) Dump(w io.Writer) error {
	out := &Script{
		Info:        env.script.Info,
		StyleFormat: env.script.StyleFormat,
		Styles:      env.script.Styles,
		Events:      env.written,
		Extra:       env.script.Extra,
	}
	tracer().Infof("writing script with %d events", len(out.Events))
	return out.Write(w)
}
