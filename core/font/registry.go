package font

import (
	"fmt"
	"sync"

	"github.com/npillmayer/karafx/core"
	xfont "golang.org/x/image/font"
)

// Registry caches fonts and typecases by normalized name.
type Registry struct {
	sync.Mutex
	fonts     map[string]*ScalableFont
	typecases map[string]*TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is the application-wide font registry.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts:     make(map[string]*ScalableFont),
		typecases: make(map[string]*TypeCase),
	}
}

// StoreFont stores a font under a normalized name, see NormalizeFontname.
func (fr *Registry) StoreFont(normalizedName string, f *ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
	fr.fonts[normalizedName] = f
}

// HasFont reports whether a font is stored under normalizedName.
func (fr *Registry) HasFont(normalizedName string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.fonts[normalizedName]
	return ok
}

// TypeCase returns a typecase for a registered font. If the font is not
// registered, the fallback font of the requested variant is returned
// together with an EMISSING error.
func (fr *Registry) TypeCase(normalizedName string, size float64) (*TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2f", normalizedName, size)
	tname := appendSize(normalizedName, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	if f, ok := fr.fonts[normalizedName]; ok {
		t, err := f.PrepareCase(size)
		if err != nil {
			return nil, err
		}
		tracer().Infof("font registry has font %s, caches at %.2f", normalizedName, size)
		fr.typecases[tname] = t
		return t, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.MissingData("font %s not found in registry", normalizedName)
	return fr.fallback(normalizedName, size), err
}

// fallback must be called with the registry locked.
func (fr *Registry) fallback(normalizedName string, size float64) *TypeCase {
	style, weight := GuessStyleAndWeight(normalizedName)
	fname := NormalizeFontname("fallback", style, weight)
	tname := appendSize(fname, size)
	if t, ok := fr.typecases[tname]; ok {
		return t
	}
	f := FallbackFont(style, weight)
	t, _ := f.PrepareCase(size)
	tracer().Infof("font registry caches fallback font %s at %.2f", fname, size)
	fr.fonts[fname] = f
	fr.typecases[tname] = t
	return t
}

// LogFontList traces the content of the registry.
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	tracer().Debugf("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Debugf("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Debugf("typecase [%s] = %v", k, v.scalableFontParent.Fontname)
	}
	tracer().Debugf("------------------------")
}

func appendSize(fname string, size float64) string {
	return fmt.Sprintf("%s-%.2f", fname, size)
}

// VariantOf maps the bold and italic flags of a subtitle style to x/image
// style and weight.
func VariantOf(bold, italic bool) (xfont.Style, xfont.Weight) {
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if italic {
		style = xfont.StyleItalic
	}
	if bold {
		weight = xfont.WeightBold
	}
	return style, weight
}
