package virc

import (
	"context"
	"strings"
	"sync"
)

// A Channel tracks one channel the client knows about: topic, modes, and the
// membership map. The channel entity survives parting; Joined reports
// whether the client is currently in it.
type Channel struct {
	client *Client
	name   string

	mutex         sync.RWMutex
	topic         string
	modes         string
	joined        bool
	namesComplete bool
	local         *Member
	members       map[*User]*Member

	joinOp pendingSlot
	partOp pendingSlot
}

func newChannel(client *Client, name string) *Channel {
	return &Channel{
		client:  client,
		name:    name,
		members: make(map[*User]*Member, 16),
	}
}

// Name returns the channel's display name as first seen.
func (channel *Channel) Name() string {
	return channel.name
}

// Topic returns the last topic the server reported.
func (channel *Channel) Topic() string {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.topic
}

// Modes returns the channel's known mode letters, without their parameters.
func (channel *Channel) Modes() string {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.modes
}

// Joined reports whether the client is currently in the channel.
func (channel *Channel) Joined() bool {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.joined
}

// NamesComplete reports whether the initial NAMES listing has finished, i.e.
// whether the membership map can be trusted to be complete.
func (channel *Channel) NamesComplete() bool {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.namesComplete
}

// LocalMember returns the client's own membership, or nil when not joined.
func (channel *Channel) LocalMember() *Member {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.local
}

// Members returns a snapshot of the current membership list, unordered.
func (channel *Channel) Members() []*Member {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	members := make([]*Member, 0, len(channel.members))
	for _, member := range channel.members {
		members = append(members, member)
	}

	return members
}

// Member returns the membership of the given user, or nil.
func (channel *Channel) Member(user *User) *Member {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.members[user]
}

// MemberByNick returns the membership of the user going by nick, or nil.
func (channel *Channel) MemberByNick(nick string) *Member {
	user := channel.client.User(nick)
	if user == nil {
		return nil
	}

	return channel.Member(user)
}

// SendMessage sends a message to the channel.
func (channel *Channel) SendMessage(ctx context.Context, text string, kind MessageKind) error {
	return channel.client.SendMessage(ctx, channel.name, text, kind)
}

// member returns the user's membership, creating it if needed.
func (channel *Channel) member(user *User) *Member {
	channel.mutex.Lock()
	defer channel.mutex.Unlock()

	member, ok := channel.members[user]
	if !ok {
		member = &Member{channel: channel, user: user}
		channel.members[user] = member
	}

	return member
}

// removeMember drops the user's membership and marks it parted. Returns nil
// if the user was not a member.
func (channel *Channel) removeMember(user *User) *Member {
	channel.mutex.Lock()
	member := channel.members[user]
	delete(channel.members, user)
	channel.mutex.Unlock()

	if member != nil {
		member.markParted()
	}

	return member
}

// markJoined resets the channel for a fresh join of the local user. The
// membership map starts over; NAMES will rebuild it.
func (channel *Channel) markJoined(user *User) {
	local := &Member{channel: channel, user: user}

	channel.mutex.Lock()
	channel.members = make(map[*User]*Member, 16)
	channel.members[user] = local
	channel.local = local
	channel.joined = true
	channel.namesComplete = false
	channel.mutex.Unlock()
}

// markParted ends the local user's membership. Every membership is marked
// parted so stale references held by the host application answer correctly.
func (channel *Channel) markParted() {
	channel.mutex.Lock()
	members := channel.members
	channel.members = make(map[*User]*Member)
	channel.local = nil
	channel.joined = false
	channel.namesComplete = false
	channel.mutex.Unlock()

	for _, member := range members {
		member.markParted()
	}
}

func (channel *Channel) setTopic(topic string) {
	channel.mutex.Lock()
	channel.topic = topic
	channel.mutex.Unlock()
}

func (channel *Channel) setNamesComplete() {
	channel.mutex.Lock()
	channel.namesComplete = true
	channel.mutex.Unlock()
}

func (channel *Channel) addMode(mode rune) {
	channel.mutex.Lock()
	if !strings.ContainsRune(channel.modes, mode) {
		channel.modes += string(mode)
	}
	channel.mutex.Unlock()
}

func (channel *Channel) removeMode(mode rune) {
	channel.mutex.Lock()
	channel.modes = strings.ReplaceAll(channel.modes, string(mode), "")
	channel.mutex.Unlock()
}

// A Member is one user's membership in one channel, carrying the per-channel
// mode letters (op, voice and friends). Once removed from the channel it is
// marked parted, and the flag is authoritative from then on.
type Member struct {
	channel *Channel
	user    *User

	mutex  sync.RWMutex
	modes  string
	parted bool
}

// User returns the user this membership belongs to.
func (member *Member) User() *User {
	return member.user
}

// Channel returns the channel this membership belongs to.
func (member *Member) Channel() *Channel {
	return member.channel
}

// Modes returns the membership's mode letters.
func (member *Member) Modes() string {
	member.mutex.RLock()
	defer member.mutex.RUnlock()

	return member.modes
}

// HasMode reports whether the membership carries the given mode letter.
func (member *Member) HasMode(mode rune) bool {
	member.mutex.RLock()
	defer member.mutex.RUnlock()

	return strings.ContainsRune(member.modes, mode)
}

// Parted reports whether this membership has ended.
func (member *Member) Parted() bool {
	member.mutex.RLock()
	defer member.mutex.RUnlock()

	return member.parted
}

func (member *Member) setModes(modes string) {
	member.mutex.Lock()
	member.modes = modes
	member.mutex.Unlock()
}

func (member *Member) addMode(mode rune) {
	member.mutex.Lock()
	if !strings.ContainsRune(member.modes, mode) {
		member.modes += string(mode)
	}
	member.mutex.Unlock()
}

func (member *Member) removeMode(mode rune) {
	member.mutex.Lock()
	member.modes = strings.ReplaceAll(member.modes, string(mode), "")
	member.mutex.Unlock()
}

func (member *Member) markParted() {
	member.mutex.Lock()
	member.parted = true
	member.mutex.Unlock()
}
