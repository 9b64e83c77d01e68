package process

import (
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// SizeProcessor measures every line and syllable and stores width, height
// and, if reported, ascent, descent, extlead, intlead and advance.
type SizeProcessor struct {
	Stages
	Runtime *environment.Runtime // if nil, the installed runtime is used
}

const ctxFacade = "facade"

func (sp SizeProcessor) PreProcess(lines []*karaoke.Line, ctx *Context) error {
	facade, err := facadeOf(sp.Runtime)
	if err != nil {
		return err
	}
	ctx.Set(ctxFacade, facade)
	return nil
}

func (sp SizeProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	facade := ctx.Value(ctxFacade).(*extents.Facade)
	for _, line := range lines {
		m, err := facade.TextExtents(line.Style, line.Text())
		if err != nil {
			return err
		}
		registerExtents(&line.Extension, m)
		for _, syl := range line.Syllables {
			if m, err = facade.TextExtents(line.Style, syl.Text); err != nil {
				return err
			}
			registerExtents(&syl.Extension, m)
		}
	}
	return nil
}

func facadeOf(rt *environment.Runtime) (*extents.Facade, error) {
	rt, err := runtime(rt)
	if err != nil {
		return nil, err
	}
	if rt.Extents() == nil {
		return nil, core.MissingData("runtime has no text extents backend")
	}
	return rt.Extents(), nil
}

var optionalMetrics = []string{
	karaoke.KeyAscent, karaoke.KeyDescent, karaoke.KeyExtLead,
	karaoke.KeyIntLead, karaoke.KeyAdvance,
}

func registerExtents(ext *karaoke.Extension, m extents.Metrics) {
	ext.Set(karaoke.KeyWidth, m.Width())
	ext.Set(karaoke.KeyHeight, m.Height())
	for _, key := range optionalMetrics {
		if v, ok := m[key]; ok {
			ext.Set(key, v)
		}
	}
}
