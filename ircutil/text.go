package ircutil

import (
	"regexp"
	"strings"
)

var nickPattern = regexp.MustCompile("^[a-zA-Z\\[\\]\\\\`_^{|}][a-zA-Z\\[\\]\\\\`_^{|}0-9-]*$")

// IsNick reports whether s is a valid nickname under the RFC 1459 grammar:
// a letter or special character followed by letters, specials, digits and
// hyphens. Length limits are the server's business, not this function's.
func IsNick(s string) bool {
	return nickPattern.MatchString(s)
}

var formatPattern = regexp.MustCompile("\x02|\x1d|\x1f|\x16|\x0f|\x03(\\d(\\d(,\\d\\d?)?)?)?")

// StripFormatting removes mIRC formatting codes (bold, italics, underline,
// reverse, reset and color with its optional fg,bg digits) from s.
func StripFormatting(s string) string {
	return formatPattern.ReplaceAllString(s, "")
}

const actionPrefix = "\x01ACTION "
const actionSuffix = "\x01"

// IsAction reports whether text is a CTCP ACTION envelope.
func IsAction(text string) bool {
	return len(text) >= len(actionPrefix)+len(actionSuffix) &&
		strings.HasPrefix(text, actionPrefix) &&
		strings.HasSuffix(text, actionSuffix)
}

// CutAction strips the ACTION envelope from text if present, and reports
// whether it was an action.
func CutAction(text string) (string, bool) {
	if !IsAction(text) {
		return text, false
	}

	return text[len(actionPrefix) : len(text)-len(actionSuffix)], true
}

// ToAction wraps text in the CTCP ACTION envelope.
func ToAction(text string) string {
	return actionPrefix + text + actionSuffix
}
