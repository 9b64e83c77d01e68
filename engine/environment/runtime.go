package environment

import (
	"sync"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Runtime bundles everything effects need to know about their host.
type Runtime struct {
	env      Environment
	styles   StyleManager
	facade   *extents.Facade
	viewport *Viewport
}

// NewRuntime creates a runtime for env, measuring text with backend.
// backend may be nil if no processor will need text extents.
func NewRuntime(env Environment, backend extents.Backend) (*Runtime, error) {
	if env == nil {
		return nil, core.Invalid("runtime needs an environment")
	}
	smgr, err := ResolveStyleManager(env)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{env: env, styles: smgr}
	rt.viewport = &Viewport{rt: rt}
	if backend != nil {
		var source extents.StyleSource
		if _, ok := env.(StyleManagerProvider); ok || env.Supports(CapStyles) {
			source = smgr
		}
		rt.facade = extents.NewFacade(backend, source)
	}
	return rt, nil
}

// Environment returns the environment of rt.
func (rt *Runtime) Environment() Environment {
	return rt.env
}

// StyleManager returns the style manager of rt.
func (rt *Runtime) StyleManager() StyleManager {
	return rt.styles
}

// Extents returns the text extents facade of rt, or nil if rt has been
// created without a backend.
func (rt *Runtime) Extents() *extents.Facade {
	return rt.facade
}

// Viewport returns the viewport of rt.
func (rt *Runtime) Viewport() *Viewport {
	return rt.viewport
}

// Lines reads the input lines from the environment. Every call creates new
// lines.
func (rt *Runtime) Lines() ([]*karaoke.Line, error) {
	raw, err := rt.env.Syllables()
	if err != nil {
		return nil, err
	}
	lines := make([]*karaoke.Line, 0, len(raw))
	for _, rl := range raw {
		style, err := rt.resolveStyle(rl.Style)
		if err != nil {
			return nil, err
		}
		line := karaoke.NewLine(rl.Start, rl.End, style, rl.Anchor, rl.Margin, rl.Layer)
		for _, rs := range rl.Syllables {
			line.AddSyllable(karaoke.NewSyllable(rs.Start, rs.Duration, rs.Text))
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (rt *Runtime) resolveStyle(ref StyleRef) (*karaoke.Style, error) {
	if ref.Style != nil {
		s := ref.Style.Copy()
		if s.Name == "" {
			s.Name = ref.Name
		}
		return s, nil
	}
	if ref.Name == "" {
		return nil, core.MissingData("input line references no style")
	}
	return rt.styles.Style(ref.Name)
}

// WriteLine passes a finished line to the environment.
func (rt *Runtime) WriteLine(line *karaoke.Line) error {
	return rt.env.WriteLine(line)
}

// --- Viewport --------------------------------------------------------------

// Viewport exposes the screen of a runtime.
type Viewport struct {
	rt *Runtime
}

// Resolution returns the script resolution.
func (vp *Viewport) Resolution() (width, height int, err error) {
	return vp.rt.env.ViewportSize()
}

// FPS returns the video frame rate, if the environment reports one.
func (vp *Viewport) FPS() (float64, bool) {
	if !vp.rt.env.Supports(CapVideoInfo) {
		return 0, false
	}
	fps, err := vp.rt.env.FPS()
	if err != nil || fps <= 0 {
		return 0, false
	}
	return fps, true
}

// Lines returns the current input lines.
func (vp *Viewport) Lines() ([]*karaoke.Line, error) {
	return vp.rt.Lines()
}

// Styles returns all styles.
func (vp *Viewport) Styles() ([]*karaoke.Style, error) {
	return vp.rt.styles.Styles()
}

// --- Process-wide runtime --------------------------------------------------

var active struct {
	sync.Mutex
	rt *Runtime
}

// Install makes rt the process-wide runtime. It may be called once; later
// calls fail with EREDEFINED.
func Install(rt *Runtime) error {
	if rt == nil {
		return core.Invalid("cannot install nil runtime")
	}
	active.Lock()
	defer active.Unlock()
	if active.rt != nil {
		return core.Redefinition("the current environment cannot be redefined")
	}
	active.rt = rt
	tracer().Infof("environment installed, capabilities %v", capabilities(rt.env))
	return nil
}

// Current returns the process-wide runtime. It fails with EMISSING if
// none has been installed.
func Current() (*Runtime, error) {
	active.Lock()
	defer active.Unlock()
	if active.rt == nil {
		return nil, core.MissingData("no environment installed")
	}
	return active.rt, nil
}

func capabilities(env Environment) Capability {
	var c Capability
	for _, x := range []Capability{CapStyles, CapImages, CapOutput, CapVideoInfo} {
		if env.Supports(x) {
			c |= x
		}
	}
	return c
}
