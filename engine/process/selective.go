package process

import (
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Selector decides whether a line is routed to a processor.
type Selector func(p Processor, line *karaoke.Line, ctx *Context) bool

// SelectiveProcessor dispatches lines to sub-processors. Without a
// selector, every line is routed to every processor.
type SelectiveProcessor struct {
	Processors []Processor
	Selector   Selector
}

// Selective creates a dispatching processor.
func Selective(selector Selector, processors ...Processor) *SelectiveProcessor {
	return &SelectiveProcessor{Processors: processors, Selector: selector}
}

type subRun struct {
	lines []*karaoke.Line
	ctx   *Context
}

const ctxSubRuns = "subruns"

func (sp *SelectiveProcessor) PreProcess(lines []*karaoke.Line, ctx *Context) error {
	runs := make([]subRun, len(sp.Processors))
	for i, p := range sp.Processors {
		var selected []*karaoke.Line
		for _, line := range lines {
			if sp.Selector == nil || sp.Selector(p, line, ctx) {
				selected = append(selected, line)
			}
		}
		tracer().Debugf("%s: %d of %d lines selected", nameOf(p), len(selected), len(lines))
		runs[i] = subRun{lines: selected, ctx: NewContext()}
		if err := p.PreProcess(selected, runs[i].ctx); err != nil {
			return err
		}
	}
	ctx.Set(ctxSubRuns, runs)
	return nil
}

func (sp *SelectiveProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	runs := ctx.Value(ctxSubRuns).([]subRun)
	for i, p := range sp.Processors {
		if err := p.Process(runs[i].lines, runs[i].ctx); err != nil {
			return err
		}
	}
	return nil
}

func (sp *SelectiveProcessor) PostProcess(lines []*karaoke.Line, ctx *Context) error {
	runs := ctx.Value(ctxSubRuns).([]subRun)
	for i, p := range sp.Processors {
		if err := p.PostProcess(runs[i].lines, runs[i].ctx); err != nil {
			return err
		}
	}
	return nil
}
