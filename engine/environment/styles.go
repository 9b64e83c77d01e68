package environment

import (
	"sort"

	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// StyleManager hands out copies of styles.
type StyleManager interface {
	Style(name string) (*karaoke.Style, error)
	Styles() ([]*karaoke.Style, error)
}

// ResolveStyleManager chooses a style manager for env: the environment's
// own one if it provides one, an environment-backed one if env supports
// styles, and one caching styles from the input lines otherwise.
func ResolveStyleManager(env Environment) (StyleManager, error) {
	if p, ok := env.(StyleManagerProvider); ok {
		if smgr := p.StyleManager(); smgr != nil {
			return smgr, nil
		}
	}
	if env.Supports(CapStyles) {
		return envStyleManager{env: env}, nil
	}
	return NewCachedStyleManager(env)
}

type envStyleManager struct {
	env Environment
}

func (esm envStyleManager) Style(name string) (*karaoke.Style, error) {
	s, err := esm.env.Style(name)
	if err != nil {
		return nil, err
	}
	s = s.Copy()
	s.Name = name
	return s, nil
}

func (esm envStyleManager) Styles() ([]*karaoke.Style, error) {
	styles, err := esm.env.Styles()
	if err != nil {
		return nil, err
	}
	r := make([]*karaoke.Style, len(styles))
	for i, s := range styles {
		r[i] = s.Copy()
	}
	return r, nil
}

// CachedStyleManager collects named styles from the input lines. If two
// styles have the same name, the first one wins. Styles without a name
// are ignored.
type CachedStyleManager struct {
	styles map[string]*karaoke.Style
}

// NewCachedStyleManager reads all styles from the lines of env.
func NewCachedStyleManager(env Environment) (*CachedStyleManager, error) {
	raw, err := env.Syllables()
	if err != nil {
		return nil, err
	}
	csm := &CachedStyleManager{styles: make(map[string]*karaoke.Style)}
	for _, rl := range raw {
		s := rl.Style.Style
		if s == nil || s.Name == "" {
			continue
		}
		if _, ok := csm.styles[s.Name]; ok {
			continue
		}
		csm.styles[s.Name] = s.Copy()
	}
	tracer().Debugf("cached %d styles from input lines", len(csm.styles))
	return csm, nil
}

// Style returns a copy of the style named name.
func (csm *CachedStyleManager) Style(name string) (*karaoke.Style, error) {
	s, ok := csm.styles[name]
	if !ok {
		return nil, core.MissingData("no style named %q", name)
	}
	return s.Copy(), nil
}

// Styles returns copies of all styles, sorted by name.
func (csm *CachedStyleManager) Styles() ([]*karaoke.Style, error) {
	r := make([]*karaoke.Style, 0, len(csm.styles))
	for _, s := range csm.styles {
		r = append(r, s.Copy())
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Name < r[j].Name })
	return r, nil
}
