package bot

import (
	"fmt"
	"regexp"
)

// DefaultDaddedPattern matches "I'm <text>", "I am <text>" and the "l'm"
// typo, with any of the common apostrophe variants.
const DefaultDaddedPattern = `\b(?P<im>(?:i|l)(?:(?:'|` + "`" + `|‛|‘|’|′|‵)?m| am))(?:\s+)(?P<dad_text>[^\.!?]+)`

// Responder turns matching chat lines into dad replies.
type Responder struct {
	re      *regexp.Regexp
	textIdx int
}

// NewResponder compiles pattern case-insensitively. The text to echo back
// comes from the dad_text group, or the second group when unnamed.
func NewResponder(pattern string) (*Responder, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile dadded regex: %w", err)
	}

	idx := re.SubexpIndex("dad_text")
	if idx < 0 {
		if re.NumSubexp() < 2 {
			return nil, fmt.Errorf("dadded regex needs a dad_text group or at least two groups, has %d", re.NumSubexp())
		}
		idx = 2
	}

	return &Responder{re: re, textIdx: idx}, nil
}

// Match returns the captured text to greet, if msg matches.
func (r *Responder) Match(msg string) (string, bool) {
	loc := r.re.FindStringSubmatchIndex(msg)
	if loc == nil {
		return "", false
	}
	start, end := loc[2*r.textIdx], loc[2*r.textIdx+1]
	if start < 0 || start == end {
		return "", false
	}
	return msg[start:end], true
}

// Reply formats the greeting for dadText.
func Reply(dadText string, loveYou bool) string {
	if loveYou {
		return fmt.Sprintf("Hi %s! I'm Dad and I love you!", dadText)
	}
	return fmt.Sprintf("Hi %s! I'm Dad!", dadText)
}
