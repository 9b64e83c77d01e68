package process

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// DefaultVerticalAnchors are the anchors routed to vertical layout by
// default.
var DefaultVerticalAnchors = []karaoke.Anchor{1, 4, 7, 3, 6, 9}

// PositionOptions configure PositionProcessor.
type PositionOptions struct {
	// Lines with these anchors are stacked vertically. If nil,
	// DefaultVerticalAnchors is used; an empty slice disables vertical layout.
	VerticalAnchors []karaoke.Anchor
}

// PositionProcessor creates a processor placing lines and syllables on
// screen. Lines with a vertical anchor are laid out by KanjiPositionProcessor,
// all others by DefaultPositionProcessor.
func PositionProcessor(rt *environment.Runtime, opts *PositionOptions) *SelectiveProcessor {
	vertical := DefaultVerticalAnchors
	if opts != nil && opts.VerticalAnchors != nil {
		vertical = opts.VerticalAnchors
	}
	selector := func(p Processor, line *karaoke.Line, ctx *Context) bool {
		_, isKanji := p.(*KanjiPositionProcessor)
		return isKanji == containsAnchor(vertical, line.Anchor)
	}
	return Selective(selector,
		&DefaultPositionProcessor{Runtime: rt},
		&KanjiPositionProcessor{Runtime: rt},
	)
}

func containsAnchor(anchors []karaoke.Anchor, a karaoke.Anchor) bool {
	for _, x := range anchors {
		if x == a {
			return true
		}
	}
	return false
}

// --- Shared geometry -------------------------------------------------------

const ctxLayout = "layout"

// layout holds what position processors need during a run.
type layout struct {
	facade        *extents.Facade // may be nil
	width, height float64
	spaceWidths   map[karaoke.Style]float64
}

func newLayout(rt *environment.Runtime) (*layout, error) {
	rt, err := runtime(rt)
	if err != nil {
		return nil, err
	}
	w, h, err := rt.Viewport().Resolution()
	if err != nil {
		return nil, err
	}
	return &layout{
		facade:      rt.Extents(),
		width:       float64(w),
		height:      float64(h),
		spaceWidths: make(map[karaoke.Style]float64),
	}, nil
}

func layoutFrom(ctx *Context) *layout {
	return ctx.Value(ctxLayout).(*layout)
}

func (g *layout) measure(style *karaoke.Style, text string) (extents.Metrics, error) {
	if g.facade == nil {
		return nil, core.MissingData("cannot measure %q: no text extents backend", text)
	}
	return g.facade.TextExtents(style, text)
}

// ensureSize measures text if ext lacks width or height.
func (g *layout) ensureSize(ext *karaoke.Extension, style *karaoke.Style, text string) error {
	if ext.Has(karaoke.KeyWidth) && ext.Has(karaoke.KeyHeight) {
		return nil
	}
	tracer().Debugf("size of %q missing, measuring", text)
	m, err := g.measure(style, text)
	if err != nil {
		return err
	}
	registerExtents(ext, m)
	return nil
}

func (g *layout) spaceWidth(style *karaoke.Style) (float64, error) {
	if w, ok := g.spaceWidths[*style]; ok {
		return w, nil
	}
	m, err := g.measure(style, " ")
	if err != nil {
		return 0, err
	}
	g.spaceWidths[*style] = m.Width()
	return m.Width(), nil
}

// placement is the per-object scratch state of positioning.
type placement struct {
	anchor     karaoke.Anchor
	margin     karaoke.Margin
	anchorX    string
	anchorY    string
	correction float64
}

func placementOf(line *karaoke.Line) (*placement, error) {
	anchor := line.Anchor
	if !anchor.Valid() && line.Style != nil {
		anchor = line.Style.Alignment
	}
	if !anchor.Valid() {
		return nil, core.Invalid("line at %s has invalid anchor %d", line.Start, line.Anchor)
	}
	return &placement{anchor: anchor, margin: line.Margin}, nil
}

// spaceCorrection is space width × (trailing spaces − leading spaces).
func (g *layout) spaceCorrection(style *karaoke.Style, text string) (float64, error) {
	trailing := utf8.RuneCountInString(text) - utf8.RuneCountInString(strings.TrimRightFunc(text, unicode.IsSpace))
	leading := utf8.RuneCountInString(text) - utf8.RuneCountInString(strings.TrimLeftFunc(text, unicode.IsSpace))
	if trailing == leading {
		return 0, nil
	}
	sw, err := g.spaceWidth(style)
	if err != nil {
		return 0, err
	}
	return sw*float64(trailing) - sw*float64(leading), nil
}

func (g *layout) topLeft(ext *karaoke.Extension, pl *placement) {
	h, w := ext.MustFloat(karaoke.KeyHeight), ext.MustFloat(karaoke.KeyWidth)
	switch pl.anchor.Row() {
	case karaoke.RowTop:
		ext.Set(karaoke.KeyTop, float64(pl.margin.Vertical))
		pl.anchorY = karaoke.KeyTop
	case karaoke.RowMiddle:
		ext.Set(karaoke.KeyTop, g.height/2-h/2)
		pl.anchorY = karaoke.KeyMiddle
	default:
		ext.Set(karaoke.KeyTop, g.height-h-float64(pl.margin.Vertical))
		pl.anchorY = karaoke.KeyBottom
	}
	var left float64
	switch pl.anchor.Column() {
	case karaoke.ColumnLeft:
		left = float64(pl.margin.Left)
		pl.anchorX = karaoke.KeyLeft
	case karaoke.ColumnCenter:
		left = g.width/2 - w/2
		pl.anchorX = karaoke.KeyCenter
	default:
		left = g.width - w - float64(pl.margin.Right)
		pl.anchorX = karaoke.KeyRight
	}
	ext.Set(karaoke.KeyLeft, left-pl.correction)
}

// points derives middle, bottom, center, right, x and y from top and left.
func points(ext *karaoke.Extension, pl *placement) {
	top, left := ext.MustFloat(karaoke.KeyTop), ext.MustFloat(karaoke.KeyLeft)
	h, w := ext.MustFloat(karaoke.KeyHeight), ext.MustFloat(karaoke.KeyWidth)
	ext.Set(karaoke.KeyMiddle, top+h/2)
	ext.Set(karaoke.KeyBottom, top+h)
	ext.Set(karaoke.KeyCenter, left+(w-pl.correction)/2)
	ext.Set(karaoke.KeyRight, left+(w-pl.correction))
	ext.Set(karaoke.KeyX, ext.Value(pl.anchorX))
	ext.Set(karaoke.KeyY, ext.Value(pl.anchorY))
}

// --- Horizontal layout -----------------------------------------------------

// DefaultPositionProcessor lays out lines horizontally. Syllables are
// placed left to right, starting at the left edge of their line.
type DefaultPositionProcessor struct {
	Stages
	Runtime *environment.Runtime // if nil, the installed runtime is used
}

func (dp *DefaultPositionProcessor) PreProcess(lines []*karaoke.Line, ctx *Context) error {
	g, err := newLayout(dp.Runtime)
	if err != nil {
		return err
	}
	ctx.Set(ctxLayout, g)
	return nil
}

func (dp *DefaultPositionProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	g := layoutFrom(ctx)
	for _, line := range lines {
		if err := g.placeHorizontally(line); err != nil {
			return err
		}
	}
	return nil
}

func (g *layout) placeHorizontally(line *karaoke.Line) (err error) {
	if err = g.ensureSize(&line.Extension, line.Style, line.Text()); err != nil {
		return
	}
	pl, err := placementOf(line)
	if err != nil {
		return
	}
	if pl.correction, err = g.spaceCorrection(line.Style, line.Text()); err != nil {
		return
	}
	g.topLeft(&line.Extension, pl)
	points(&line.Extension, pl)
	pos := line.MustFloat(karaoke.KeyLeft)
	top := line.Value(karaoke.KeyTop)
	for _, syl := range line.Syllables {
		if err = g.ensureSize(&syl.Extension, line.Style, syl.Text); err != nil {
			return
		}
		spl := &placement{anchor: pl.anchor, margin: pl.margin, anchorX: pl.anchorX, anchorY: pl.anchorY}
		if spl.correction, err = g.spaceCorrection(line.Style, syl.Text); err != nil {
			return
		}
		syl.Set(karaoke.KeyTop, top)
		syl.Set(karaoke.KeyLeft, pos)
		points(&syl.Extension, spl)
		pos += syl.MustFloat(karaoke.KeyWidth)
	}
	return nil
}

// --- Vertical layout -------------------------------------------------------

// KanjiPositionProcessor stacks the syllables of a line from top to bottom.
// Syllables are centered horizontally within the widest syllable. Blank
// syllables at the start of a line take no space.
type KanjiPositionProcessor struct {
	Stages
	Runtime *environment.Runtime // if nil, the installed runtime is used
}

func (kp *KanjiPositionProcessor) PreProcess(lines []*karaoke.Line, ctx *Context) error {
	g, err := newLayout(kp.Runtime)
	if err != nil {
		return err
	}
	ctx.Set(ctxLayout, g)
	return nil
}

func (kp *KanjiPositionProcessor) Process(lines []*karaoke.Line, ctx *Context) error {
	g := layoutFrom(ctx)
	for _, line := range lines {
		if err := g.placeVertically(line); err != nil {
			return err
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (g *layout) placeVertically(line *karaoke.Line) error {
	var height, maxWidth, lastLeading float64
	first := true
	for _, syl := range line.Syllables {
		if err := g.ensureSize(&syl.Extension, line.Style, syl.Text); err != nil {
			return err
		}
		if first && isBlank(syl.Text) {
			continue
		}
		first = false
		if intlead, ok := syl.Float(karaoke.KeyIntLead); ok {
			height += intlead
		}
		height += syl.MustFloat(karaoke.KeyHeight)
		if extlead, ok := syl.Float(karaoke.KeyExtLead); ok {
			height += extlead
			lastLeading = extlead
		}
		maxWidth = math.Max(maxWidth, syl.MustFloat(karaoke.KeyWidth))
	}
	height -= lastLeading
	line.Set(karaoke.KeyHeight, height)
	line.Set(karaoke.KeyWidth, maxWidth)
	pl, err := placementOf(line)
	if err != nil {
		return err
	}
	g.topLeft(&line.Extension, pl)
	points(&line.Extension, pl)
	pos := line.MustFloat(karaoke.KeyTop)
	left := line.MustFloat(karaoke.KeyLeft)
	first = true
	for _, syl := range line.Syllables {
		empty := first && isBlank(syl.Text)
		if !empty {
			first = false
		}
		w, err := g.strippedWidth(line.Style, syl)
		if err != nil {
			return err
		}
		if intlead, ok := syl.Float(karaoke.KeyIntLead); ok && !empty {
			pos += intlead
		}
		syl.Set(karaoke.KeyTop, pos)
		syl.Set(karaoke.KeyLeft, left+maxWidth/2-w/2)
		if !empty {
			pos += syl.MustFloat(karaoke.KeyHeight)
			if extlead, ok := syl.Float(karaoke.KeyExtLead); ok {
				pos += extlead
			}
		}
		points(&syl.Extension, &placement{anchor: pl.anchor, margin: pl.margin,
			anchorX: pl.anchorX, anchorY: pl.anchorY})
	}
	return nil
}

// strippedWidth is the width of a syllable's text without surrounding
// whitespace.
func (g *layout) strippedWidth(style *karaoke.Style, syl *karaoke.Syllable) (float64, error) {
	stripped := strings.TrimSpace(syl.Text)
	if stripped == syl.Text {
		return syl.MustFloat(karaoke.KeyWidth), nil
	}
	m, err := g.measure(style, stripped)
	if err != nil {
		return 0, err
	}
	return m.Width(), nil
}
