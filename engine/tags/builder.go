package tags

import (
	"github.com/npillmayer/karafx/engine/calc"
	"github.com/npillmayer/karafx/engine/document"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Builder applies tags to the lines of a document.
type Builder struct {
	doc         *document.Document
	tags        *Container
	fps         float64
	preferVideo bool
}

// NewBuilder creates a builder for doc.
func NewBuilder(doc *document.Document) *Builder {
	return &Builder{doc: doc, tags: NewContainer()}
}

// Tag adds values for the tag called name.
func (b *Builder) Tag(name string, values ...Value) *Builder {
	b.tags.Add(name, values...)
	return b
}

// Reorder fixes the order of the tags.
func (b *Builder) Reorder(names ...string) *Builder {
	b.tags.Reorder(names...)
	return b
}

// FrameRate sets the frame rate used for frame-for-frame expansion. See
// document.Frames for the meaning of fps and preferVideo.
func (b *Builder) FrameRate(fps float64, preferVideo bool) *Builder {
	b.fps, b.preferVideo = fps, preferVideo
	return b
}

// Position adds a `\pos` tag at the anchor point (extensions "x" and "y")
// computed by the position processors.
func (b *Builder) Position() *Builder {
	return b.Tag("pos", PerLine(Position))
}

// Position returns the anchor point of line as a vector, or nil if the line
// has not been positioned.
func Position(line *karaoke.Line) interface{} {
	x, okx := line.Float(karaoke.KeyX)
	y, oky := line.Float(karaoke.KeyY)
	if !okx || !oky {
		return nil
	}
	return calc.Vec(x, y)
}

// Container returns the tag container of b.
func (b *Builder) Container() *Container {
	return b.tags
}

// Generate prefixes the text of every line with its tag block and returns
// the resulting document. If any tag is per-frame, the document is
// expanded frame by frame first and the result is a new line buffer.
// Per-frame tags fail with EMISSING if no frame rate is available.
func (b *Builder) Generate() (*document.Document, error) {
	doc := b.doc
	f4f := b.tags.HasPerFrame()
	if f4f {
		tracer().Debugf("expanding document frame by frame for per-frame tags")
		var err error
		if doc, err = doc.Frames(b.fps, b.preferVideo); err != nil {
			return nil, err
		}
	}
	return doc.SetText(func(line *karaoke.Line) (string, error) {
		return b.tags.Generate(line, line.Text(), f4f)
	})
}
