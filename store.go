package virc

import "github.com/virc-go/virc/casemap"

// The entity store. Both maps are keyed by the active case mapping's fold,
// written only from the dispatch goroutine, and read from anywhere behind
// the client's mutex.

// Mapping returns the case mapping negotiated for this connection.
func (client *Client) Mapping() casemap.Mapping {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.mapping
}

// User returns the tracked user going by nick, or nil.
func (client *Client) User(nick string) *User {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.users[client.mapping.Fold(nick)]
}

// Users returns a snapshot of all tracked users.
func (client *Client) Users() []*User {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	users := make([]*User, 0, len(client.users))
	for _, user := range client.users {
		users = append(users, user)
	}

	return users
}

// Channel returns the tracked channel with the given name, or nil.
func (client *Client) Channel(name string) *Channel {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.channels[client.mapping.Fold(name)]
}

// Channels returns a snapshot of all tracked channels.
func (client *Client) Channels() []*Channel {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	channels := make([]*Channel, 0, len(client.channels))
	for _, channel := range client.channels {
		channels = append(channels, channel)
	}

	return channels
}

// LocalUser returns the user entity representing this client, or nil before
// registration.
func (client *Client) LocalUser() *User {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.local
}

// user returns the tracked user going by nick, creating it on first
// reference. A quit user referenced again is live again.
func (client *Client) user(nick string) *User {
	client.mutex.Lock()
	key := client.mapping.Fold(nick)
	user, ok := client.users[key]
	if !ok {
		user = &User{client: client, nick: nick}
		client.users[key] = user
	}
	client.mutex.Unlock()

	if ok && user.HasQuit() {
		user.clearQuit()
	}

	return user
}

// channel returns the tracked channel with the given name, creating it on
// first reference.
func (client *Client) channel(name string) *Channel {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	key := client.mapping.Fold(name)
	channel, ok := client.channels[key]
	if !ok {
		channel = newChannel(client, name)
		client.channels[key] = channel
	}

	return channel
}

// renameUser relocates a user to a new nickname. It fails when the old nick
// is not tracked, or when the new nick already belongs to someone else; a
// rename never produces duplicate entities.
func (client *Client) renameUser(from, to string) (*User, bool) {
	client.mutex.Lock()

	fromKey := client.mapping.Fold(from)
	toKey := client.mapping.Fold(to)

	user := client.users[fromKey]
	if user == nil {
		client.mutex.Unlock()
		return nil, false
	}

	if toKey != fromKey {
		if other := client.users[toKey]; other != nil && other != user {
			client.mutex.Unlock()
			return nil, false
		}
		delete(client.users, fromKey)
		client.users[toKey] = user
	}
	client.mutex.Unlock()

	user.setNick(to)

	return user, true
}

func (client *Client) setLocalUser(user *User) {
	client.mutex.Lock()
	client.local = user
	client.mutex.Unlock()
}

func (client *Client) isLocal(user *User) bool {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	return client.local != nil && client.local == user
}

// setMapping swaps the case mapping and re-keys both maps under the new
// fold. CASEMAPPING arrives before any channel is joined, so collisions
// cannot realistically occur; if one does, the earlier entity wins.
func (client *Client) setMapping(mapping casemap.Mapping) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if client.mapping.Name() == mapping.Name() {
		return
	}
	client.mapping = mapping

	users := make(map[string]*User, len(client.users))
	for _, user := range client.users {
		key := mapping.Fold(user.Nick())
		if _, taken := users[key]; !taken {
			users[key] = user
		}
	}
	client.users = users

	channels := make(map[string]*Channel, len(client.channels))
	for _, channel := range client.channels {
		key := mapping.Fold(channel.Name())
		if _, taken := channels[key]; !taken {
			channels[key] = channel
		}
	}
	client.channels = channels
}
