package font

import (
	"os"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/karafx/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ScalableFont is a font variant loaded from a font file or from memory.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a scalable font prepared at a given size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
	mx                 sync.Mutex // x/image faces are not safe for concurrent use
}

// LoadOpenTypeFont loads a TrueType or OpenType font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses a font from its binary representation.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// Sizes outside this range are almost certainly a configuration error.
const (
	MinFontSize = 1.0
	MaxFontSize = 1000.0
)

// PrepareCase creates a typecase of sf at fontsize pixels.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize < MinFontSize || fontsize > MaxFontSize {
		tracer().Errorf("font size must be %g < size < %g, is %g (set to 10)",
			MinFontSize, MaxFontSize, fontsize)
		fontsize = 10.0
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot prepare %s at %g", sf.Fontname, fontsize)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               f,
		size:               fontsize,
	}, nil
}

// ScalableFontParent returns the font tc has been prepared from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the size of tc, which is equal to its pixel size.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// Face returns the x/image face of tc. Callers must not use the face
// concurrently; use Advance and Metrics instead where possible.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// Advance returns the advance width of s in pixels.
func (tc *TypeCase) Advance(s string) float64 {
	tc.mx.Lock()
	defer tc.mx.Unlock()
	return fixedToFloat(xfont.MeasureString(tc.face, s))
}

// Metrics returns ascent, descent and line height of tc in pixels.
// Descent is positive.
func (tc *TypeCase) Metrics() (ascent, descent, height float64) {
	tc.mx.Lock()
	defer tc.mx.Unlock()
	m := tc.face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), fixedToFloat(m.Height)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// --- Fallback fonts --------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use the Go font family, which has a variant
// for every combination of bold and italic.
func FallbackFont(style xfont.Style, weight xfont.Weight) *ScalableFont {
	fallbackFontLoading.Do(loadFallbackFonts)
	i := 0
	if weight >= xfont.WeightSemiBold {
		i |= 1
	}
	if style != xfont.StyleNormal {
		i |= 2
	}
	return fallbackFonts[i]
}

var fallbackFontLoading sync.Once

// indexed by bold|italic<<1
var fallbackFonts [4]*ScalableFont

func loadFallbackFonts() {
	for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		gofont, err := ParseOpenTypeFont(ttf)
		if err != nil {
			panic("cannot load default font") // this cannot happen
		}
		gofont.Filepath = "internal"
		fallbackFonts[i] = gofont
	}
}

// --- Names -----------------------------------------------------------------

// NormalizeFontname creates a registry key from a font name and variant.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	if ext := path.Ext(fname); ext != "" && len(ext) <= 5 {
		fname = fname[:len(fname)-len(ext)]
	}
	fname = strings.ToLower(strings.ReplaceAll(fname, " ", "_"))
	if style != xfont.StyleNormal {
		fname += "-italic"
	}
	if weight >= xfont.WeightSemiBold {
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight guesses a font's variant from its file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches reports whether a font file name looks like a font of family
// pattern with the given variant.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = strings.ToLower(basename[:len(basename)-len(path.Ext(basename))])
	p := strings.ToLower(pattern)
	if !strings.Contains(basename, p) && !strings.Contains(basename, strings.ReplaceAll(p, " ", "")) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && (w >= xfont.WeightSemiBold) == (weight >= xfont.WeightSemiBold)
}
