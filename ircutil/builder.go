package ircutil

import (
	"fmt"
	"strings"
)

// Builders for the outbound message catalog. Each returns one line without
// the CRLF terminator; the client appends it when writing.

// Pass builds a PASS message for connection registration.
func Pass(password string) string {
	return "PASS :" + password
}

// Nick builds a NICK message.
func Nick(nick string) string {
	return "NICK " + nick
}

// User builds a USER message with the given mode mask and real name.
func User(username string, mask int, realName string) string {
	return fmt.Sprintf("USER %s %d * :%s", username, mask, realName)
}

// Ping builds a PING message carrying token.
func Ping(token string) string {
	return "PING :" + token
}

// Pong builds a PONG message echoing token.
func Pong(token string) string {
	return "PONG :" + token
}

// Quit builds a QUIT message. An empty reason omits the parameter.
func Quit(reason string) string {
	if reason == "" {
		return "QUIT"
	}

	return "QUIT :" + reason
}

// Join builds a JOIN message, with an optional channel key.
func Join(channel, key string) string {
	if key == "" {
		return "JOIN " + channel
	}

	return "JOIN " + channel + " " + key
}

// JoinChannels builds a JOIN for multiple channels with their keys. Keys may
// be shorter than channels; missing keys are omitted from the tail.
func JoinChannels(channels, keys []string) string {
	if len(keys) == 0 {
		return "JOIN " + strings.Join(channels, ",")
	}

	return "JOIN " + strings.Join(channels, ",") + " " + strings.Join(keys, ",")
}

// Part builds a PART message. An empty reason omits the parameter.
func Part(channel, reason string) string {
	if reason == "" {
		return "PART " + channel
	}

	return "PART " + channel + " :" + reason
}

// PartChannels builds a PART for multiple channels.
func PartChannels(channels []string, reason string) string {
	return Part(strings.Join(channels, ","), reason)
}

// Privmsg builds a PRIVMSG to one target.
func Privmsg(target, text string) string {
	return "PRIVMSG " + target + " :" + text
}

// Notice builds a NOTICE to one target.
func Notice(target, text string) string {
	return "NOTICE " + target + " :" + text
}

// PrivmsgTargets builds a PRIVMSG to multiple comma-joined targets.
func PrivmsgTargets(targets []string, text string) string {
	return Privmsg(strings.Join(targets, ","), text)
}

// NoticeTargets builds a NOTICE to multiple comma-joined targets.
func NoticeTargets(targets []string, text string) string {
	return Notice(strings.Join(targets, ","), text)
}

// Away builds an AWAY message. An empty message marks the client as back.
func Away(message string) string {
	if message == "" {
		return "AWAY"
	}

	return "AWAY :" + message
}
