package ircutil

import "strings"

// A Prefix is the decomposed source of a message. Either Server is set, or
// Nick is set with User and Host filled in as far as the prefix carried them.
type Prefix struct {
	Server string
	Nick   string
	User   string
	Host   string
}

// IsServer reports whether the prefix named a server rather than a user.
func (prefix *Prefix) IsServer() bool {
	return prefix.Server != ""
}

// String reassembles the prefix into its wire form, without the colon.
func (prefix *Prefix) String() string {
	if prefix.Server != "" {
		return prefix.Server
	}

	result := prefix.Nick
	if prefix.User != "" {
		result += "!" + prefix.User
	}
	if prefix.Host != "" {
		result += "@" + prefix.Host
	}

	return result
}

// ParsePrefix decomposes a message source. A token without an `@` that
// contains a dot is a server name; otherwise it is a bare nickname. With an
// `@`, everything after it is the host, and a `!` before it splits the
// nickname from the username.
func ParsePrefix(s string) Prefix {
	at := strings.IndexByte(s, '@')
	if at < 0 {
		if strings.IndexByte(s, '.') >= 0 {
			return Prefix{Server: s}
		}

		return Prefix{Nick: s}
	}

	nickUser := s[:at]
	host := s[at+1:]

	ex := strings.IndexByte(nickUser, '!')
	if ex < 0 {
		return Prefix{Nick: nickUser, Host: host}
	}

	return Prefix{Nick: nickUser[:ex], User: nickUser[ex+1:], Host: host}
}
