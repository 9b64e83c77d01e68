package document

import (
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/karaoke"
	"github.com/npillmayer/karafx/engine/process"
)

// Capability flags of documents.
type Capability uint8

// Capabilities
const (
	CanRead Capability = 1 << iota
	CanWrite
	HasStyles
)

// storage is what distinguishes the kinds of documents.
type storage interface {
	capabilities() Capability
	lines() []*karaoke.Line // live lines, not copies
	add(line *karaoke.Line) error
}

// Document is a capability-flagged container of lines.
type Document struct {
	store storage
	rt    *environment.Runtime // may be nil
}

// --- Kinds of documents ----------------------------------------------------

type buffer struct {
	content []*karaoke.Line
}

func (b *buffer) capabilities() Capability { return CanRead | CanWrite }
func (b *buffer) lines() []*karaoke.Line   { return b.content }
func (b *buffer) add(line *karaoke.Line) error {
	b.content = append(b.content, line)
	return nil
}

// NewLineBuffer creates a document holding lines. The buffer takes
// ownership of the lines.
func NewLineBuffer(lines ...*karaoke.Line) *Document {
	return &Document{store: &buffer{content: lines}}
}

type input struct {
	content []*karaoke.Line
}

func (in *input) capabilities() Capability { return CanRead | HasStyles }
func (in *input) lines() []*karaoke.Line   { return in.content }
func (in *input) add(*karaoke.Line) error {
	return core.Unsupported("input documents are read-only")
}

// NewInputDocument reads all input lines from the environment of rt. If rt
// is nil, the installed runtime is used.
func NewInputDocument(rt *environment.Runtime) (*Document, error) {
	rt, err := runtimeOrCurrent(rt)
	if err != nil {
		return nil, err
	}
	lines, err := rt.Lines()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("input document with %d lines", len(lines))
	return &Document{store: &input{content: lines}, rt: rt}, nil
}

type output struct {
	rt *environment.Runtime
}

func (out output) capabilities() Capability    { return CanWrite }
func (out output) lines() []*karaoke.Line      { return nil }
func (out output) add(line *karaoke.Line) error { return out.rt.WriteLine(line) }

// NewOutputDocument creates a document writing to the environment of rt.
// If rt is nil, the installed runtime is used.
func NewOutputDocument(rt *environment.Runtime) (*Document, error) {
	rt, err := runtimeOrCurrent(rt)
	if err != nil {
		return nil, err
	}
	return &Document{store: output{rt: rt}, rt: rt}, nil
}

func runtimeOrCurrent(rt *environment.Runtime) (*environment.Runtime, error) {
	if rt != nil {
		return rt, nil
	}
	return environment.Current()
}

// derived creates a line buffer inheriting the runtime of d.
func (d *Document) derived(lines []*karaoke.Line) *Document {
	return &Document{store: &buffer{content: lines}, rt: d.rt}
}

// --- Capabilities and access -----------------------------------------------

// SupportsReading is true if lines can be read from d.
func (d *Document) SupportsReading() bool {
	return d.store.capabilities()&CanRead != 0
}

// SupportsWriting is true if lines can be added to d.
func (d *Document) SupportsWriting() bool {
	return d.store.capabilities()&CanWrite != 0
}

// SupportsStyles is true if d can look up styles.
func (d *Document) SupportsStyles() bool {
	return d.store.capabilities()&HasStyles != 0
}

// Runtime returns the runtime d is attached to, or nil.
func (d *Document) Runtime() *environment.Runtime {
	return d.rt
}

// WithRuntime attaches d to rt and returns d.
func (d *Document) WithRuntime(rt *environment.Runtime) *Document {
	d.rt = rt
	return d
}

func (d *Document) runtime() *environment.Runtime {
	if d.rt != nil {
		return d.rt
	}
	rt, _ := environment.Current()
	return rt
}

func (d *Document) mustRead(op string) error {
	if !d.SupportsReading() {
		return core.Unsupported("%s: document does not support reading", op)
	}
	return nil
}

// Lines returns copies of all lines of d. Links between lines, e.g.
// "previous", refer to the copies. Changing a copy never changes d.
func (d *Document) Lines() ([]*karaoke.Line, error) {
	if err := d.mustRead("lines"); err != nil {
		return nil, err
	}
	return karaoke.CopyLines(d.store.lines()), nil
}

// Len returns the number of lines in d, 0 for unreadable documents.
func (d *Document) Len() int {
	return len(d.store.lines())
}

// AddLines appends lines to d.
func (d *Document) AddLines(lines ...*karaoke.Line) error {
	if !d.SupportsWriting() {
		return core.Unsupported("document does not support writing")
	}
	for _, line := range lines {
		if err := d.store.add(line); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all lines from a line buffer.
func (d *Document) Clear() error {
	b, ok := d.store.(*buffer)
	if !ok {
		return core.Unsupported("only line buffers can be cleared")
	}
	b.content = nil
	return nil
}

// Style returns the style named name.
func (d *Document) Style(name string) (*karaoke.Style, error) {
	if !d.SupportsStyles() || d.rt == nil {
		return nil, core.Unsupported("document does not support styles")
	}
	return d.rt.StyleManager().Style(name)
}

// Styles returns all styles.
func (d *Document) Styles() ([]*karaoke.Style, error) {
	if !d.SupportsStyles() || d.rt == nil {
		return nil, core.Unsupported("document does not support styles")
	}
	return d.rt.StyleManager().Styles()
}

// --- Processing ------------------------------------------------------------

// Process runs processors, in order, on the lines of d. The processors
// annotate the lines in place.
func (d *Document) Process(processors ...process.Processor) (*Document, error) {
	if err := d.mustRead("process"); err != nil {
		return nil, err
	}
	for _, p := range processors {
		if err := process.Run(p, d.store.lines()); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Annotate calls fn for every line of d, for its side effects.
func (d *Document) Annotate(fn func(*karaoke.Line) error) (*Document, error) {
	if fn == nil {
		return nil, core.Invalid("annotate needs a function")
	}
	if err := d.mustRead("annotate"); err != nil {
		return nil, err
	}
	for _, line := range d.store.lines() {
		if err := fn(line); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// --- Fan out ---------------------------------------------------------------

// Refactor calls fn with a copy of every line and collects all lines fn
// returns into a new line buffer.
func (d *Document) Refactor(fn func(*karaoke.Line) ([]*karaoke.Line, error)) (*Document, error) {
	lines, err := d.Lines()
	if err != nil {
		return nil, err
	}
	var result []*karaoke.Line
	for _, line := range lines {
		r, err := fn(line)
		if err != nil {
			return nil, err
		}
		result = append(result, r...)
	}
	tracer().Debugf("refactored %d lines into %d", len(lines), len(result))
	return d.derived(result), nil
}

// Filter keeps the lines for which keep is true.
func (d *Document) Filter(keep func(*karaoke.Line) bool) (*Document, error) {
	return d.Refactor(func(line *karaoke.Line) ([]*karaoke.Line, error) {
		if keep(line) {
			return []*karaoke.Line{line}, nil
		}
		return nil, nil
	})
}

// Syllables creates one line per syllable. Every new line has the timing and
// text of its syllable and the style, anchor, margin and layer of the
// syllable's line, which is stored as extension "line". The syllable is
// stored as extension "syllable".
func (d *Document) Syllables() (*Document, error) {
	return d.Refactor(func(line *karaoke.Line) ([]*karaoke.Line, error) {
		result := make([]*karaoke.Line, 0, len(line.Syllables))
		for _, syl := range line.Syllables {
			l := karaoke.NewLine(syl.AbsStart(), syl.AbsEnd(), line.Style, line.Anchor,
				line.Margin, line.Layer)
			l.SetText(syl.Text)
			l.Set(karaoke.KeySyllable, syl)
			l.Set(karaoke.KeyLine, line)
			result = append(result, l)
		}
		return result, nil
	})
}

// --- Streaming -------------------------------------------------------------

// StreamTo writes copies of all lines of d to other and returns other.
func (d *Document) StreamTo(other *Document) (*Document, error) {
	if err := d.mustRead("stream"); err != nil {
		return nil, err
	}
	if !other.SupportsWriting() {
		return nil, core.Unsupported("stream: target document does not support writing")
	}
	lines, _ := d.Lines()
	for _, line := range lines {
		if err := other.AddLines(line); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("streamed %d lines", len(lines))
	return other, nil
}

// StreamFrom writes copies of all lines of other to d and returns d.
func (d *Document) StreamFrom(other *Document) (*Document, error) {
	if _, err := other.StreamTo(d); err != nil {
		return nil, err
	}
	return d, nil
}
