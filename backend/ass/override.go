package ass

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/derekparker/trie"
)

// Override is a single override tag, like `\pos(10,20)`, split into name
// ("pos") and raw argument ("(10,20)").
type Override struct {
	Name string
	Arg  string
}

func (o Override) String() string {
	return `\` + o.Name + o.Arg
}

// Segment is a piece of event text. Tags holds the tags of the override
// block preceding Text; the first segment of a text may have no tags.
type Segment struct {
	Tags []Override
	Text string
}

// --- Grammar ---------------------------------------------------------------

var overrideLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Open", Pattern: `\{`, Action: lexer.Push("Block")},
		{Name: "Text", Pattern: `[^{]+`},
	},
	"Block": {
		{Name: "Close", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Tag", Pattern: `\\[^\\}]*`},
		{Name: "Comment", Pattern: `[^\\}]+`},
	},
})

type eventText struct {
	Parts []*textPart `@@*`
}

type textPart struct {
	Text  *string        `  @Text`
	Block *overrideBlock `| "{" @@ "}"`
}

type overrideBlock struct {
	Items []*blockItem `@@*`
}

type blockItem struct {
	Tag     *string `  @Tag`
	Comment *string `| @Comment`
}

var textParser = participle.MustBuild[eventText](participle.Lexer(overrideLexer))

// --- Tag names -------------------------------------------------------------

var tagNames = []string{
	"a", "alpha", "an", "b", "be", "blur", "bord", "c", "clip", "fa", "fax", "fay",
	"fad", "fade", "fe", "fn", "fr", "frx", "fry", "frz", "fs", "fscx", "fscy",
	"fsp", "i", "iclip", "k", "K", "kf", "ko", "kt", "move", "org", "p", "pbo", "pos",
	"q", "r", "s", "shad", "t", "u", "xbord", "xshad", "ybord", "yshad",
	"1a", "2a", "3a", "4a", "1c", "2c", "3c", "4c",
}

var tagTrie, maxTagLen = func() (*trie.Trie, int) {
	t := trie.New()
	longest := 0
	for _, name := range tagNames {
		t.Add(name, nil)
		if len(name) > longest {
			longest = len(name)
		}
	}
	return t, longest
}()

// SplitTag splits a raw tag (with or without leading backslash) into name
// and argument. Known tag names are matched by longest prefix, so that
// `\fscx120` is tag "fscx" and `\fs20` is tag "fs". Unknown tags are
// named by their leading letters.
func SplitTag(raw string) Override {
	body := strings.TrimPrefix(strings.TrimSpace(raw), `\`)
	n := maxTagLen
	if len(body) < n {
		n = len(body)
	}
	for l := n; l > 0; l-- {
		if _, ok := tagTrie.Find(body[:l]); ok {
			return Override{Name: body[:l], Arg: strings.TrimSpace(body[l:])}
		}
	}
	l := 0
	for l < len(body) && isLetter(body[l]) {
		l++
	}
	return Override{Name: body[:l], Arg: strings.TrimSpace(body[l:])}
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// ParseText splits event text into segments. Text which is not well formed,
// e.g. with an unclosed override block, is returned as a single plain
// segment.
func ParseText(text string) []Segment {
	if text == "" {
		return nil
	}
	ast, err := textParser.ParseString("", text)
	if err != nil {
		tracer().Debugf("event text is not well formed, taking it literally: %v", err)
		return []Segment{{Text: text}}
	}
	var segs []Segment
	for _, part := range ast.Parts {
		switch {
		case part.Text != nil:
			if len(segs) == 0 {
				segs = append(segs, Segment{})
			}
			segs[len(segs)-1].Text += *part.Text
		default:
			seg := Segment{}
			if part.Block != nil {
				for _, item := range part.Block.Items {
					if item.Tag != nil {
						seg.Tags = append(seg.Tags, SplitTag(*item.Tag))
					}
				}
			}
			segs = append(segs, seg)
		}
	}
	return segs
}

// StripTags removes all override blocks from text.
func StripTags(text string) string {
	var b strings.Builder
	for _, seg := range ParseText(text) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
