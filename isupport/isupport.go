// Package isupport tracks what the server has advertised about itself,
// seeded by the 004 numeric and refined token by token through 005
// (RPL_ISUPPORT). The client consults it for channel detection, mode
// classification and limit validation.
package isupport

import (
	"strconv"
	"strings"
	"sync"
)

// ModeType classifies a channel mode character by how its parameter is
// carried on the wire.
type ModeType int

const (
	// ModeUnknown is a mode seen in 004 but not yet classified by CHANMODES.
	ModeUnknown ModeType = iota
	// ModeList adds to or removes from a list and always takes a parameter.
	ModeList
	// ModeAlwaysParam takes a parameter when set and when unset.
	ModeAlwaysParam
	// ModeParamWhenSet takes a parameter only when set.
	ModeParamWhenSet
	// ModeNoParam never takes a parameter.
	ModeNoParam
	// ModePrefix is a membership mode; its parameter names a channel member.
	ModePrefix
)

// A PrefixedLimit pairs a set of channel prefixes with the maximum number
// of such channels that may be joined at once, from CHANLIMIT.
type PrefixedLimit struct {
	Prefixes string
	Limit    int
}

// A TargetLimit caps the number of targets one command accepts, from TARGMAX.
type TargetLimit struct {
	Command string
	Limit   int
}

// State is a snapshot of everything negotiated so far. The zero value is not
// useful; it is built through Reset and the setters on ISupport.
type State struct {
	ServerName string
	Version    string
	UserModes  string

	ChannelModes map[rune]ModeType
	ModeOrder    string

	NickLen    int
	ChannelLen int
	TopicLen   int // 0 means no advertised limit
	KickLen    int // 0 means no advertised limit
	AwayLen    int // 0 means no advertised limit

	ChanTypes      string
	MaxChannels    int
	ChannelLimits  []PrefixedLimit
	MaxTargets     int
	TargetLimits   []TargetLimit
	NoticePrefixes string

	// Prefixes maps a membership symbol to its mode letter. PrefixOrder
	// holds the symbols from highest to lowest rank.
	Prefixes    map[rune]rune
	PrefixOrder string

	WHOX bool

	// Raw holds every 005 token as received, including unhandled ones.
	Raw map[string]string
}

// ISupport guards a State for concurrent access. Writes come from the
// dispatch goroutine only; reads may come from anywhere.
type ISupport struct {
	lock  sync.RWMutex
	state State
}

// Reset restores the pre-negotiation defaults. It must be called before each
// connection; negotiation itself is monotonic and never downgrades.
func (isupport *ISupport) Reset() {
	isupport.lock.Lock()
	isupport.state = State{
		ChannelModes: make(map[rune]ModeType),
		NickLen:      9,
		ChannelLen:   200,
		ChanTypes:    "#&",
		MaxTargets:   1,
		Prefixes:     map[rune]rune{'@': 'o', '+': 'v'},
		PrefixOrder:  "@+",
		ModeOrder:    "ov",
		Raw:          make(map[string]string),
	}
	isupport.lock.Unlock()
}

// SetServerInfo records the 004 server name, version and user mode alphabet.
func (isupport *ISupport) SetServerInfo(name, version, userModes string) {
	isupport.lock.Lock()
	isupport.state.ServerName = name
	isupport.state.Version = version
	isupport.state.UserModes = userModes
	isupport.lock.Unlock()
}

// SeedChannelModes records the 004 channel mode alphabet. Each mode starts
// out unclassified until a CHANMODES or PREFIX token sorts it.
func (isupport *ISupport) SeedChannelModes(alphabet string) {
	isupport.lock.Lock()
	for _, mode := range alphabet {
		if _, ok := isupport.state.ChannelModes[mode]; !ok {
			isupport.state.ChannelModes[mode] = ModeUnknown
		}
	}
	isupport.lock.Unlock()
}

// Set applies one 005 token. Unknown keys are recorded raw and otherwise
// ignored. A key without a value gets an empty string.
func (isupport *ISupport) Set(key, value string) {
	isupport.lock.Lock()
	defer isupport.lock.Unlock()

	isupport.state.Raw[key] = value

	switch key {
	case "NICKLEN":
		setInt(&isupport.state.NickLen, value)
	case "CHANNELLEN":
		setInt(&isupport.state.ChannelLen, value)
	case "TOPICLEN":
		setInt(&isupport.state.TopicLen, value)
	case "KICKLEN":
		setInt(&isupport.state.KickLen, value)
	case "AWAYLEN":
		setInt(&isupport.state.AwayLen, value)
	case "MAXCHANNELS":
		setInt(&isupport.state.MaxChannels, value)
	case "MAXTARGETS":
		setInt(&isupport.state.MaxTargets, value)
	case "CHANTYPES":
		if value != "" {
			isupport.state.ChanTypes = value
		}
	case "STATUSMSG":
		isupport.state.NoticePrefixes = value
	case "WHOX":
		isupport.state.WHOX = true
	case "CHANLIMIT":
		for _, pair := range strings.Split(value, ",") {
			if prefixes, limit, ok := splitLimit(pair); ok {
				isupport.state.ChannelLimits = append(isupport.state.ChannelLimits, PrefixedLimit{prefixes, limit})
			}
		}
	case "TARGMAX":
		for _, pair := range strings.Split(value, ",") {
			if command, limit, ok := splitLimit(pair); ok {
				isupport.state.TargetLimits = append(isupport.state.TargetLimits, TargetLimit{command, limit})
			}
		}
	case "PREFIX":
		isupport.setPrefix(value)
	case "CHANMODES":
		isupport.setChanModes(value)
	}
}

// setPrefix parses a `(modes)symbols` value and classifies each listed mode
// as a membership mode.
func (isupport *ISupport) setPrefix(value string) {
	if !strings.HasPrefix(value, "(") {
		return
	}
	end := strings.IndexByte(value, ')')
	if end < 0 {
		return
	}

	modes := []rune(value[1:end])
	symbols := []rune(value[end+1:])
	if len(modes) != len(symbols) {
		return
	}

	isupport.state.Prefixes = make(map[rune]rune, len(modes))
	isupport.state.PrefixOrder = value[end+1:]
	isupport.state.ModeOrder = value[1:end]
	for i, mode := range modes {
		isupport.state.Prefixes[symbols[i]] = mode
		isupport.state.ChannelModes[mode] = ModePrefix
	}
}

// setChanModes parses the four comma-separated CHANMODES groups. A mode
// already classified keeps its class; first classification wins.
func (isupport *ISupport) setChanModes(value string) {
	groups := strings.Split(value, ",")
	types := []ModeType{ModeList, ModeAlwaysParam, ModeParamWhenSet, ModeNoParam}

	for i, group := range groups {
		if i >= len(types) {
			break
		}
		for _, mode := range group {
			if current, ok := isupport.state.ChannelModes[mode]; !ok || current == ModeUnknown {
				isupport.state.ChannelModes[mode] = types[i]
			}
		}
	}
}

// Get returns the raw value of a 005 token and whether it was received.
func (isupport *ISupport) Get(key string) (string, bool) {
	isupport.lock.RLock()
	value, ok := isupport.state.Raw[key]
	isupport.lock.RUnlock()

	return value, ok
}

// IsChannel reports whether the target name starts with one of the
// advertised channel type prefixes.
func (isupport *ISupport) IsChannel(target string) bool {
	if target == "" {
		return false
	}

	isupport.lock.RLock()
	ok := strings.ContainsRune(isupport.state.ChanTypes, rune(target[0]))
	isupport.lock.RUnlock()

	return ok
}

// NickLen returns the advertised nickname length limit.
func (isupport *ISupport) NickLen() int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.state.NickLen
}

// ChannelLen returns the advertised channel name length limit.
func (isupport *ISupport) ChannelLen() int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.state.ChannelLen
}

// MaxTargets returns how many targets one message may address.
func (isupport *ISupport) MaxTargets() int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.state.MaxTargets
}

// ModeType returns the classification of a channel mode character.
func (isupport *ISupport) ModeType(mode rune) ModeType {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.state.ChannelModes[mode]
}

// ModeTakesArgument reports whether a channel mode consumes a parameter in
// the given direction. Unclassified modes are assumed to take none.
func (isupport *ISupport) ModeTakesArgument(mode rune, plus bool) bool {
	switch isupport.ModeType(mode) {
	case ModeList, ModeAlwaysParam, ModePrefix:
		return true
	case ModeParamWhenSet:
		return plus
	default:
		return false
	}
}

// PrefixMode returns the mode letter behind a membership symbol, or zero if
// the symbol is not a membership prefix.
func (isupport *ISupport) PrefixMode(symbol rune) rune {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.state.Prefixes[symbol]
}

// ParsePrefixedNick splits a NAMES-style token into the bare nick and the
// mode letters behind its leading membership symbols.
func (isupport *ISupport) ParsePrefixedNick(full string) (nick, modes string) {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	for i, symbol := range full {
		mode, ok := isupport.state.Prefixes[symbol]
		if !ok {
			return full[i:], modes
		}

		modes += string(mode)
	}

	return "", modes
}

// State returns a copy of the current negotiated state.
func (isupport *ISupport) State() *State {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	state := isupport.state
	state.ChannelModes = make(map[rune]ModeType, len(isupport.state.ChannelModes))
	for mode, modeType := range isupport.state.ChannelModes {
		state.ChannelModes[mode] = modeType
	}
	state.Prefixes = make(map[rune]rune, len(isupport.state.Prefixes))
	for symbol, mode := range isupport.state.Prefixes {
		state.Prefixes[symbol] = mode
	}
	state.ChannelLimits = append([]PrefixedLimit(nil), isupport.state.ChannelLimits...)
	state.TargetLimits = append([]TargetLimit(nil), isupport.state.TargetLimits...)
	state.Raw = make(map[string]string, len(isupport.state.Raw))
	for key, value := range isupport.state.Raw {
		state.Raw[key] = value
	}

	return &state
}

func setInt(dst *int, value string) {
	if n, err := strconv.Atoi(value); err == nil {
		*dst = n
	}
}

func splitLimit(pair string) (string, int, bool) {
	colon := strings.IndexByte(pair, ':')
	if colon < 0 {
		return "", 0, false
	}

	limit, err := strconv.Atoi(pair[colon+1:])
	if err != nil {
		return "", 0, false
	}

	return pair[:colon], limit, true
}
