package karaoke

import "fmt"

// Style holds the properties of a subtitle style relevant for measuring
// and placing text.
type Style struct {
	Name    string
	Font    string
	Size    float64
	Bold    bool
	Italic  bool
	Spacing float64
	// Alignment is the style's default anchor, 0 if unknown.
	Alignment Anchor
	Margin    Margin
}

// Copy returns an independent copy of s.
func (s *Style) Copy() *Style {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Equals compares two styles structurally. If ignoreName is set, styles
// with different names but equal properties are equal.
func (s *Style) Equals(other *Style, ignoreName bool) bool {
	if s == nil || other == nil {
		return s == other
	}
	if !ignoreName && s.Name != other.Name {
		return false
	}
	return s.Font == other.Font && s.Size == other.Size &&
		s.Bold == other.Bold && s.Italic == other.Italic &&
		s.Spacing == other.Spacing
}

func (s *Style) String() string {
	if s == nil {
		return "<nil style>"
	}
	return fmt.Sprintf("<Style %q %s %gpx b=%v i=%v sp=%g>", s.Name, s.Font, s.Size,
		s.Bold, s.Italic, s.Spacing)
}

// Margin holds the left, right and vertical margins of a line in pixels.
type Margin struct {
	Left, Right, Vertical int
}

func (m Margin) String() string {
	return fmt.Sprintf("(%d,%d,%d)", m.Left, m.Right, m.Vertical)
}

// IsZero is true if all margins are 0.
func (m Margin) IsZero() bool {
	return m.Left == 0 && m.Right == 0 && m.Vertical == 0
}
