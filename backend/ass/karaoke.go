package ass

import (
	"strconv"
	"strings"

	"github.com/npillmayer/karafx/core/timecode"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/karaoke"
	"golang.org/x/text/unicode/norm"
)

// isKaraokeTag is true for tags starting a syllable.
func isKaraokeTag(name string) bool {
	switch name {
	case "k", "K", "kf", "ko":
		return true
	}
	return false
}

// Syllables splits event text into syllables. Every karaoke tag starts a
// new syllable, its argument being the duration in centiseconds. Text in
// front of the first karaoke tag becomes a syllable of duration 0. Text
// without karaoke tags becomes a single syllable lasting duration.
//
// All other override tags are dropped from the syllable texts; an `\an` or
// `\a` tag is returned as the line's anchor override (0 if none).
func Syllables(text string, duration timecode.Time) ([]environment.RawSyllable, karaoke.Anchor) {
	var syls []environment.RawSyllable
	var anchor karaoke.Anchor
	var at timecode.Time
	karaokeSeen := false
	for _, seg := range ParseText(text) {
		for _, tag := range seg.Tags {
			switch {
			case isKaraokeTag(tag.Name):
				cs, err := strconv.ParseFloat(strings.Trim(tag.Arg, "()"), 64)
				if err != nil || cs < 0 {
					tracer().Debugf("ignoring karaoke tag %s", tag)
					continue
				}
				karaokeSeen = true
				syls = append(syls, environment.RawSyllable{Start: at, Duration: cs})
				at += timecode.Time(cs * 10)
			case tag.Name == "an":
				if a, err := strconv.Atoi(tag.Arg); err == nil && karaoke.Anchor(a).Valid() {
					anchor = karaoke.Anchor(a)
				}
			case tag.Name == "a":
				if a, err := strconv.Atoi(tag.Arg); err == nil {
					if an := karaoke.Anchor(legacyAlignment(a)); an.Valid() {
						anchor = an
					}
				}
			}
		}
		if seg.Text == "" {
			continue
		}
		t := norm.NFC.String(seg.Text)
		if len(syls) == 0 {
			syls = append(syls, environment.RawSyllable{})
		}
		syls[len(syls)-1].Text += t
	}
	if !karaokeSeen && len(syls) == 1 {
		syls[0].Duration = float64(duration) / 10
	}
	return syls, anchor
}
