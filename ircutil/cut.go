package ircutil

import (
	"strings"
	"unicode/utf8"
)

// MaxLineLength is the protocol line limit, not counting the CRLF terminator.
const MaxLineLength = 510

// MessageOverhead returns the number of bytes the server adds around the text
// of a PRIVMSG it relays from a client with the given identity to the given
// target. A relayed NOTICE is one byte shorter, so the value is a safe bound
// for both.
func MessageOverhead(nick, user, host, target string, action bool) int {
	overhead := len(":!@ PRIVMSG  :") + len(nick) + len(user) + len(host) + len(target)
	if action {
		overhead += len("\x01ACTION \x01")
	}

	return overhead
}

// CutMessage splits text into pieces that each fit on one line once overhead
// is added, cutting on word boundaries. Joining the pieces with single
// spaces reproduces the text. If any single word exceeds the limit, the
// whole text is cut per rune instead.
func CutMessage(text string, overhead int) []string {
	limit := MaxLineLength - overhead
	if len(text) <= limit {
		return []string{text}
	}

	words := strings.Split(text, " ")
	for _, word := range words {
		if len(word) >= limit {
			return CutMessageNoSpace(text, overhead)
		}
	}

	result := make([]string, 0, len(text)/limit+1)
	current := make([]byte, 0, limit)
	for _, word := range words {
		if len(current)+1+len(word) > limit {
			result = append(result, string(current))
			current = current[:0]
		}

		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, word...)
	}

	return append(result, string(current))
}

// CutMessageNoSpace splits text into pieces that each fit on one line once
// overhead is added, cutting between runes.
func CutMessageNoSpace(text string, overhead int) []string {
	limit := MaxLineLength - overhead
	result := make([]string, 0, len(text)/limit+1)

	current := make([]byte, 0, limit)
	for _, r := range text {
		if len(current)+utf8.RuneLen(r) > limit {
			result = append(result, string(current))
			current = current[:0]
		}

		current = utf8.AppendRune(current, r)
	}

	return append(result, string(current))
}
