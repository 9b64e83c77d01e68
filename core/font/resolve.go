package font

import (
	"context"

	"github.com/flopp/go-findfont"
	xfont "golang.org/x/image/font"
)

type fontPlusErr struct {
	font *TypeCase
	err  error
}

// TypeCasePromise is a typecase which may still be loading.
type TypeCasePromise interface {
	TypeCase() (*TypeCase, error)
	Await(ctx context.Context) (*TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*TypeCase, error)
}

func (loader fontLoader) TypeCase() (*TypeCase, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*TypeCase, error) {
	return loader.await(ctx)
}

// SystemFontFinder locates a font file for a font name. It defaults to
// go-findfont, which searches the platform font directories.
var SystemFontFinder = findfont.Find

// ResolveTypeCase resolves a font type case with a given size, first from
// the global registry, then from the system fonts. If both fail, a Go
// fallback font of the same variant is returned together with an error.
func ResolveTypeCase(name string, style xfont.Style, weight xfont.Weight, size float64) TypeCasePromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		result := fontPlusErr{}
		fname := NormalizeFontname(name, style, weight)
		if GlobalRegistry().HasFont(fname) {
			result.font, result.err = GlobalRegistry().TypeCase(fname, size)
			ch <- result
			return
		}
		if f := findSystemFont(name, style, weight); f != nil {
			GlobalRegistry().StoreFont(fname, f)
		}
		result.font, result.err = GlobalRegistry().TypeCase(fname, size)
		ch <- result
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func findSystemFont(name string, style xfont.Style, weight xfont.Weight) *ScalableFont {
	candidates := []string{name}
	switch {
	case style != xfont.StyleNormal && weight >= xfont.WeightSemiBold:
		candidates = []string{name + " Bold Italic", name + "-BoldItalic", name + "bi", name}
	case style != xfont.StyleNormal:
		candidates = []string{name + " Italic", name + "-Italic", name + "i", name}
	case weight >= xfont.WeightSemiBold:
		candidates = []string{name + " Bold", name + "-Bold", name + "bd", name}
	}
	for _, c := range candidates {
		fpath, err := SystemFontFinder(c)
		if err != nil || fpath == "" {
			continue
		}
		tracer().Debugf("%s is a system font at %s", c, fpath)
		f, err := LoadOpenTypeFont(fpath)
		if err != nil {
			tracer().Errorf("cannot load system font %s: %v", fpath, err)
			continue
		}
		return f
	}
	return nil
}

// TypeCaseFor resolves a typecase for the font settings of a subtitle style,
// waiting for resolution to complete. A missing font is not an error:
// the Go fallback font of the same variant is used instead.
func TypeCaseFor(name string, bold, italic bool, size float64) (*TypeCase, error) {
	style, weight := VariantOf(bold, italic)
	tc, err := ResolveTypeCase(name, style, weight, size).TypeCase()
	if err != nil && tc != nil {
		tracer().Infof("font %q not available, using fallback font %s", name,
			tc.ScalableFontParent().Fontname)
		return tc, nil
	}
	return tc, err
}
