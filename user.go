package virc

import (
	"context"
	"strings"
	"sync"
)

// A User is any nickname the client has seen and still tracks. Users are
// shared entities: channel memberships point at the same *User, and a nick
// change is visible everywhere at once. A user that disconnects is kept with
// HasQuit reporting true, since memberships and the host application may
// still hold it.
type User struct {
	client *Client

	mutex    sync.RWMutex
	nick     string
	username string
	hostname string
	realName string
	modes    string
	quit     bool
}

// Nick returns the user's current display nickname.
func (user *User) Nick() string {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return user.nick
}

// Username returns the user's username (ident), if known.
func (user *User) Username() string {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return user.username
}

// Hostname returns the user's hostname, if known.
func (user *User) Hostname() string {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return user.hostname
}

// RealName returns the user's real name, if known.
func (user *User) RealName() string {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return user.realName
}

// Modes returns the user's mode letters. Only the local user's modes are
// ever reported by the server.
func (user *User) Modes() string {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return user.modes
}

// HasMode reports whether the user has the given mode letter.
func (user *User) HasMode(mode rune) bool {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return strings.ContainsRune(user.modes, mode)
}

// HasQuit reports whether the user is known to have disconnected.
func (user *User) HasQuit() bool {
	user.mutex.RLock()
	defer user.mutex.RUnlock()

	return user.quit
}

// SendMessage sends a message to this user.
func (user *User) SendMessage(ctx context.Context, text string, kind MessageKind) error {
	if user.HasQuit() {
		return ErrUserQuit
	}

	return user.client.SendMessage(ctx, user.Nick(), text, kind)
}

func (user *User) setNick(nick string) {
	user.mutex.Lock()
	user.nick = nick
	user.mutex.Unlock()
}

// setOrigin fills in username and hostname from a message prefix, keeping
// existing values when the prefix did not carry them.
func (user *User) setOrigin(username, hostname string) {
	user.mutex.Lock()
	if username != "" {
		user.username = username
	}
	if hostname != "" {
		user.hostname = hostname
	}
	user.mutex.Unlock()
}

func (user *User) setHostname(hostname string) {
	user.mutex.Lock()
	user.hostname = hostname
	user.mutex.Unlock()
}

func (user *User) markQuit() {
	user.mutex.Lock()
	user.quit = true
	user.mutex.Unlock()
}

func (user *User) clearQuit() {
	user.mutex.Lock()
	user.quit = false
	user.mutex.Unlock()
}

func (user *User) addMode(mode rune) {
	user.mutex.Lock()
	if !strings.ContainsRune(user.modes, mode) {
		user.modes += string(mode)
	}
	user.mutex.Unlock()
}

func (user *User) removeMode(mode rune) {
	user.mutex.Lock()
	user.modes = strings.ReplaceAll(user.modes, string(mode), "")
	user.mutex.Unlock()
}
