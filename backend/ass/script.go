package ass

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Default format lines of ASS scripts.
var (
	DefaultStyleFormat = []string{"Name", "Fontname", "Fontsize", "PrimaryColour",
		"SecondaryColour", "OutlineColour", "BackColour", "Bold", "Italic", "Underline",
		"StrikeOut", "ScaleX", "ScaleY", "Spacing", "Angle", "BorderStyle", "Outline",
		"Shadow", "Alignment", "MarginL", "MarginR", "MarginV", "Encoding"}
	DefaultEventFormat = []string{"Layer", "Start", "End", "Style", "Name",
		"MarginL", "MarginR", "MarginV", "Effect", "Text"}
)

// Script is a parsed ASS script.
type Script struct {
	Info        *linkedhashmap.Map // string → string, in file order
	StyleFormat []string
	Styles      []*StyleEntry
	Events      []*Event
	Extra       []*Section // sections we do not interpret, e.g. [Fonts]
}

// StyleEntry is a style line. Raw is kept to write the style unchanged.
// Raw is always in DefaultStyleFormat if the script is an SSA script.
type StyleEntry struct {
	Raw   string
	Style *karaoke.Style
}

// Event is a dialogue or comment line.
type Event struct {
	Kind                      string // "Dialogue" or "Comment"
	Layer                     int
	Start, End                timecode.Time
	Style, Name               string
	MarginL, MarginR, MarginV int
	Effect                    string
	Text                      string
}

// Section is an uninterpreted script section.
type Section struct {
	Name  string
	Lines []string
}

// NewScript creates an empty script.
func NewScript() *Script {
	return &Script{
		Info:        linkedhashmap.New(),
		StyleFormat: DefaultStyleFormat,
	}
}

// InfoValue returns the script info value for key.
func (s *Script) InfoValue(key string) (string, bool) {
	v, ok := s.Info.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Style returns the style entry called name.
func (s *Script) Style(name string) (*StyleEntry, bool) {
	for _, st := range s.Styles {
		if st.Style.Name == name {
			return st, true
		}
	}
	return nil, false
}

// --- Reading ---------------------------------------------------------------

// ParseScript reads an ASS (or SSA) script. SSA styles are converted to
// ASS styles, so the script will always be written as ASS.
func ParseScript(r io.Reader) (*Script, error) {
	s := NewScript()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var section string
	var extra *Section
	eventFormat := DefaultEventFormat
	legacy := false
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineno == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(trimmed)
			extra = nil
			switch section {
			case "[script info]", "[events]":
			case "[v4+ styles]", "[v4 styles]":
				legacy = section == "[v4 styles]"
			default:
				extra = &Section{Name: trimmed}
				s.Extra = append(s.Extra, extra)
			}
			continue
		}
		if extra != nil {
			extra.Lines = append(extra.Lines, line)
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			tracer().Debugf("line %d: ignoring %q", lineno, trimmed)
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch section {
		case "[script info]":
			s.Info.Put(key, value)
		case "[v4+ styles]", "[v4 styles]":
			switch key {
			case "Format":
				s.StyleFormat = splitFormat(value)
			case "Style":
				st, err := parseStyle(value, s.StyleFormat, legacy)
				if err != nil {
					return nil, core.WrapError(err, core.EINVALID, "line %d: invalid style", lineno)
				}
				s.Styles = append(s.Styles, st)
			}
		case "[events]":
			switch key {
			case "Format":
				eventFormat = splitFormat(value)
			case "Dialogue", "Comment":
				ev, err := parseEvent(key, value, eventFormat)
				if err != nil {
					return nil, core.WrapError(err, core.EINVALID, "line %d: invalid event", lineno)
				}
				s.Events = append(s.Events, ev)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read script")
	}
	if legacy {
		s.StyleFormat = DefaultStyleFormat
		if _, ok := s.Info.Get("ScriptType"); ok {
			s.Info.Put("ScriptType", "v4.00+")
		}
	}
	tracer().Infof("script with %d styles and %d events", len(s.Styles), len(s.Events))
	return s, nil
}

func splitFormat(value string) []string {
	fields := strings.Split(value, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// fields maps format names (lower case) to values. The last field takes
// the rest of the line, as texts may contain commas.
func fields(value string, format []string) map[string]string {
	values := strings.SplitN(value, ",", len(format))
	m := make(map[string]string, len(format))
	for i, name := range format {
		if i < len(values) {
			m[strings.ToLower(name)] = strings.TrimSpace(values[i])
		}
	}
	return m
}

func parseStyle(value string, format []string, legacy bool) (*StyleEntry, error) {
	f := fields(value, format)
	style := &karaoke.Style{
		Name:   f["name"],
		Font:   f["fontname"],
		Bold:   isTrue(f["bold"]),
		Italic: isTrue(f["italic"]),
	}
	var err error
	if style.Size, err = parseFloat(f["fontsize"], 20); err != nil {
		return nil, err
	}
	if style.Spacing, err = parseFloat(f["spacing"], 0); err != nil {
		return nil, err
	}
	align, err := parseInt(f["alignment"], 2)
	if err != nil {
		return nil, err
	}
	if legacy {
		align = legacyAlignment(align)
	}
	style.Alignment = karaoke.Anchor(align)
	if style.Margin, err = parseMargin(f["marginl"], f["marginr"], f["marginv"]); err != nil {
		return nil, err
	}
	if legacy {
		value = upgradeStyle(f, align)
	}
	return &StyleEntry{Raw: value, Style: style}, nil
}

// upgradeStyle formats the fields of an SSA style in DefaultStyleFormat.
// The SSA tertiary colour becomes the outline colour.
func upgradeStyle(f map[string]string, align int) string {
	dflt := func(key, d string) string {
		if v := f[key]; v != "" {
			return v
		}
		return d
	}
	values := map[string]string{
		"outlinecolour": dflt("tertiarycolour", "&H00000000"),
		"underline":     "0",
		"strikeout":     "0",
		"scalex":        "100",
		"scaley":        "100",
		"angle":         "0",
		"alignment":     strconv.Itoa(align),
	}
	row := make([]string, len(DefaultStyleFormat))
	for i, name := range DefaultStyleFormat {
		key := strings.ToLower(name)
		if v, ok := values[key]; ok {
			row[i] = v
			continue
		}
		row[i] = dflt(key, "0")
	}
	return strings.Join(row, ",")
}

func parseEvent(kind, value string, format []string) (*Event, error) {
	f := fields(value, format)
	ev := &Event{
		Kind:   kind,
		Style:  f["style"],
		Name:   f["name"],
		Effect: f["effect"],
		Text:   f["text"],
	}
	var err error
	if ev.Layer, err = parseInt(f["layer"], 0); err != nil { // SSA has "Marked" instead
		return nil, err
	}
	if ev.Start, err = timecode.Parse(f["start"]); err != nil {
		return nil, err
	}
	if ev.End, err = timecode.Parse(f["end"]); err != nil {
		return nil, err
	}
	m, err := parseMargin(f["marginl"], f["marginr"], f["marginv"])
	if err != nil {
		return nil, err
	}
	ev.MarginL, ev.MarginR, ev.MarginV = m.Left, m.Right, m.Vertical
	return ev, nil
}

func parseMargin(l, r, v string) (m karaoke.Margin, err error) {
	if m.Left, err = parseInt(l, 0); err != nil {
		return
	}
	if m.Right, err = parseInt(r, 0); err != nil {
		return
	}
	m.Vertical, err = parseInt(v, 0)
	return
}

func isTrue(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n != 0
}

func parseInt(s string, dflt int) (int, error) {
	if s == "" {
		return dflt, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, core.Invalid("not an integer: %q", s)
	}
	return n, nil
}

func parseFloat(s string, dflt float64) (float64, error) {
	if s == "" {
		return dflt, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, core.Invalid("not a number: %q", s)
	}
	return x, nil
}

// legacyAlignment converts SSA alignments (1–3 subtitle, 5–7 toptitle,
// 9–11 midtitle) to numpad anchors.
func legacyAlignment(a int) int {
	switch {
	case a >= 9 && a <= 11:
		return a - 5
	case a >= 5 && a <= 7:
		return a + 2
	}
	return a
}

// --- Writing ---------------------------------------------------------------

// Write dumps s in ASS format.
func (s *Script) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "[Script Info]")
	fmt.Fprintln(bw, "; Script generated by karafx")
	if s.Info.Empty() {
		fmt.Fprintln(bw, "ScriptType: v4.00+")
	}
	it := s.Info.Iterator()
	for it.Next() {
		fmt.Fprintf(bw, "%s: %s\n", it.Key(), it.Value())
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "[V4+ Styles]")
	fmt.Fprintf(bw, "Format: %s\n", strings.Join(s.StyleFormat, ", "))
	for _, st := range s.Styles {
		fmt.Fprintf(bw, "Style: %s\n", st.Raw)
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "[Events]")
	fmt.Fprintf(bw, "Format: %s\n", strings.Join(DefaultEventFormat, ", "))
	for _, ev := range s.Events {
		fmt.Fprintln(bw, ev.String())
	}
	for _, sec := range s.Extra {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, sec.Name)
		for _, l := range sec.Lines {
			fmt.Fprintln(bw, l)
		}
	}
	return bw.Flush()
}

func (ev *Event) String() string {
	kind := ev.Kind
	if kind == "" {
		kind = "Dialogue"
	}
	return fmt.Sprintf("%s: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s", kind, ev.Layer, ev.Start, ev.End,
		ev.Style, ev.Name, ev.MarginL, ev.MarginR, ev.MarginV, ev.Effect, ev.Text)
}
