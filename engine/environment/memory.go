package environment

import (
	"image"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Memory is an environment holding its input and output in memory.
type Memory struct {
	Base
	Width, Height int
	Input         []RawLine
	StyleSheet    []*karaoke.Style
	Rate          float64
	Images        map[string]image.Image
	Written       []*karaoke.Line
}

var _ Environment = &Memory{}

// NewMemory creates an in-memory environment with a given resolution.
func NewMemory(width, height int, caps Capability) *Memory {
	return &Memory{
		Base:   Base{Caps: caps},
		Width:  width,
		Height: height,
	}
}

func (m *Memory) Syllables() ([]RawLine, error) {
	return m.Input, nil
}

func (m *Memory) ViewportSize() (int, int, error) {
	return m.Width, m.Height, nil
}

func (m *Memory) Style(name string) (*karaoke.Style, error) {
	if !m.Supports(CapStyles) {
		return m.Base.Style(name)
	}
	for _, s := range m.StyleSheet {
		if s.Name == name {
			return s.Copy(), nil
		}
	}
	return nil, core.MissingData("no style named %q", name)
}

func (m *Memory) Styles() ([]*karaoke.Style, error) {
	if !m.Supports(CapStyles) {
		return m.Base.Styles()
	}
	r := make([]*karaoke.Style, len(m.StyleSheet))
	for i, s := range m.StyleSheet {
		r[i] = s.Copy()
	}
	return r, nil
}

func (m *Memory) FPS() (float64, error) {
	if !m.Supports(CapVideoInfo) {
		return m.Base.FPS()
	}
	return m.Rate, nil
}

func (m *Memory) Image(name string) (image.Image, error) {
	if !m.Supports(CapImages) {
		return m.Base.Image(name)
	}
	if img, ok := m.Images[name]; ok {
		return img, nil
	}
	return nil, core.MissingData("no image named %q", name)
}

// WriteLine stores a copy of line.
func (m *Memory) WriteLine(line *karaoke.Line) error {
	m.Written = append(m.Written, line.Copy())
	return nil
}
