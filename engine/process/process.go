package process

import (
	"fmt"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Processor is a three-stage transformation of lines.
type Processor interface {
	PreProcess(lines []*karaoke.Line, ctx *Context) error
	Process(lines []*karaoke.Line, ctx *Context) error
	PostProcess(lines []*karaoke.Line, ctx *Context) error
}

// Context is an attribute bag shared by the stages of one processor run.
type Context struct {
	karaoke.Extension
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// Stages implements all stages of Processor as no-ops.
type Stages struct{}

// PreProcess does nothing.
func (Stages) PreProcess(lines []*karaoke.Line, ctx *Context) error { return nil }

// Process does nothing.
func (Stages) Process(lines []*karaoke.Line, ctx *Context) error { return nil }

// PostProcess does nothing.
func (Stages) PostProcess(lines []*karaoke.Line, ctx *Context) error { return nil }

// Run runs all stages of p on lines with a fresh context.
func Run(p Processor, lines []*karaoke.Line) error {
	ctx := NewContext()
	name := nameOf(p)
	tracer().Debugf("%s: pre-processing %d lines", name, len(lines))
	if err := p.PreProcess(lines, ctx); err != nil {
		return err
	}
	tracer().Debugf("%s: processing", name)
	if err := p.Process(lines, ctx); err != nil {
		return err
	}
	tracer().Debugf("%s: post-processing", name)
	return p.PostProcess(lines, ctx)
}

func nameOf(p Processor) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", p)
}

// --- Lazy instantiation ----------------------------------------------------

// Factory creates a processor.
type Factory func() Processor

// Use wraps a factory into a processor which is instantiated on first use
// and re-used afterwards.
func Use(factory Factory) Processor {
	return &lazy{factory: factory}
}

type lazy struct {
	factory Factory
	p       Processor
}

func (l *lazy) get() Processor {
	if l.p == nil {
		l.p = l.factory()
	}
	return l.p
}

func (l *lazy) PreProcess(lines []*karaoke.Line, ctx *Context) error {
	return l.get().PreProcess(lines, ctx)
}

func (l *lazy) Process(lines []*karaoke.Line, ctx *Context) error {
	return l.get().Process(lines, ctx)
}

func (l *lazy) PostProcess(lines []*karaoke.Line, ctx *Context) error {
	return l.get().PostProcess(lines, ctx)
}

func (l *lazy) String() string {
	return nameOf(l.get())
}

// --- Runtime access --------------------------------------------------------

// runtime returns rt or, if nil, the process-wide runtime.
func runtime(rt *environment.Runtime) (*environment.Runtime, error) {
	if rt != nil {
		return rt, nil
	}
	rt, err := environment.Current()
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "processor needs a runtime, none given or installed")
	}
	return rt, nil
}
