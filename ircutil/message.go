// Package ircutil contains stateless helpers for the IRC wire format:
// message and prefix parsing, outbound message building, and text utilities.
package ircutil

import "errors"

// ErrEmptyMessage is returned by ParseMessage when no command token can be
// found in the line.
var ErrEmptyMessage = errors.New("ircutil: no command in message")

// A Message is one parsed protocol line, without the trailing CRLF.
type Message struct {
	// Source is the prefix token without its leading colon, or empty if the
	// line had no prefix. See ParsePrefix.
	Source string

	// Command is the verb or three-digit numeric, exactly as received.
	Command string

	// Params are the ordered arguments. A trailing long parameter, if
	// present, is the last element with its leading colon removed.
	Params []string

	// Trailing reports that the last element of Params was a long parameter
	// introduced by a colon.
	Trailing bool
}

// Arg returns parameter i, or an empty string if the message does not have
// that many parameters.
func (msg *Message) Arg(i int) string {
	if i < 0 || i >= len(msg.Params) {
		return ""
	}

	return msg.Params[i]
}

// ParseMessage parses one line in the shape
// `[:source ]COMMAND[ param]*[ :long param]`. Consecutive spaces delimit like
// a single space. It fails only when no command token can be found, either
// because the line is blank or because it holds nothing but a source token.
func ParseMessage(line string) (Message, error) {
	var msg Message

	i := 0
	for i < len(line) {
		// Token boundaries, skipping runs of spaces.
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}

		if line[i] == ':' {
			if msg.Command == "" && msg.Source == "" && len(msg.Params) == 0 {
				// A colon before any other token introduces the source.
				start := i + 1
				for i < len(line) && line[i] != ' ' {
					i++
				}
				msg.Source = line[start:i]
				continue
			}

			if msg.Command != "" {
				// A colon after the command introduces the long parameter,
				// which runs to the end of the line.
				msg.Params = append(msg.Params, line[i+1:])
				msg.Trailing = true
				i = len(line)
				break
			}
		}

		start := i
		for i < len(line) && line[i] != ' ' {
			i++
		}

		if msg.Command == "" {
			msg.Command = line[start:i]
		} else {
			msg.Params = append(msg.Params, line[start:i])
		}
	}

	if msg.Command == "" {
		return Message{}, ErrEmptyMessage
	}

	return msg, nil
}
