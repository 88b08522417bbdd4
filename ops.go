package virc

import (
	"context"
	"strings"

	"github.com/virc-go/virc/ircutil"
)

// NickResult is the server's verdict on a nick change. Rejections are
// results, not errors; the session continues under the old nick.
type NickResult int

const (
	// NickChanged means the server accepted the new nickname.
	NickChanged NickResult = iota
	// NickInUse means someone already holds the nickname (433).
	NickInUse
	// NickCollision means the nickname collided across servers (436).
	NickCollision
)

func (result NickResult) String() string {
	switch result {
	case NickChanged:
		return "changed"
	case NickInUse:
		return "in use"
	case NickCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Quit shuts the session down. What that takes depends on where the session
// is: a connection still being dialed is simply closed, a registering one
// gets a best-effort QUIT before closing, and an online one sends QUIT and
// waits for the server's ERROR or the connection closing, up to ctx.
func (client *Client) Quit(ctx context.Context, reason string) error {
	switch {
	case client.casStatus(StatusConnecting, StatusQuitting):
		client.closeConn()
		return nil

	case client.casStatus(StatusLoggingIn, StatusQuitting):
		_ = client.Send(ircutil.Quit(reason))
		client.closeConn()
		return nil

	case client.casStatus(StatusOnline, StatusQuitting):
		p, ok := client.quitOp.claim()
		if !ok {
			return ErrOperationPending
		}

		if err := client.Send(ircutil.Quit(reason)); err != nil {
			client.quitOp.release(p)
			client.closeConn()
			return nil
		}

		if _, err := p.wait(ctx); err != nil {
			client.quitOp.release(p)
			client.closeConn()
			return err
		}
		client.closeConn()
		return nil

	default:
		// Already quitting or offline; nothing to do.
		return nil
	}
}

// Join joins a channel, with an optional key, and blocks until the join is
// confirmed and the initial NAMES listing is complete.
func (client *Client) Join(ctx context.Context, name, key string) (*Channel, error) {
	if client.Status() != StatusOnline {
		return nil, ErrNotOnline
	}
	if !client.isupport.IsChannel(name) || len(name) > client.isupport.ChannelLen() {
		return nil, ErrInvalidChannelName
	}

	channel := client.channel(name)
	if channel.Joined() {
		return nil, ErrAlreadyJoined
	}

	p, ok := channel.joinOp.claim()
	if !ok {
		return nil, ErrOperationPending
	}

	if err := client.Send(ircutil.Join(name, key)); err != nil {
		channel.joinOp.release(p)
		return nil, err
	}

	if _, err := p.wait(ctx); err != nil {
		channel.joinOp.release(p)
		return nil, err
	}

	return channel, nil
}

// Part leaves a channel and blocks until the server confirms it.
func (client *Client) Part(ctx context.Context, channel *Channel, reason string) error {
	if client.Status() != StatusOnline {
		return ErrNotOnline
	}
	if !channel.Joined() {
		return ErrNotJoined
	}

	p, ok := channel.partOp.claim()
	if !ok {
		return ErrOperationPending
	}

	if err := client.Send(ircutil.Part(channel.Name(), reason)); err != nil {
		channel.partOp.release(p)
		return err
	}

	if _, err := p.wait(ctx); err != nil {
		channel.partOp.release(p)
		return err
	}

	return nil
}

// ChangeNick asks the server for a new nickname and blocks until it answers.
// A rejection is reported through the NickResult, not the error.
func (client *Client) ChangeNick(ctx context.Context, nick string) (NickResult, error) {
	if client.Status() != StatusOnline {
		return 0, ErrNotOnline
	}
	if !ircutil.IsNick(nick) || len(nick) > client.isupport.NickLen() {
		return 0, ErrInvalidNick
	}

	p, ok := client.nickOp.claim()
	if !ok {
		return 0, ErrOperationPending
	}

	if err := client.Send(ircutil.Nick(nick)); err != nil {
		client.nickOp.release(p)
		return 0, err
	}

	result, err := p.wait(ctx)
	if err != nil {
		client.nickOp.release(p)
		return 0, err
	}

	return NickResult(result), nil
}

// SetAway marks the client away with the given message, or back when the
// message is empty. It blocks until the server confirms, and returns whether
// the client is away afterwards.
func (client *Client) SetAway(ctx context.Context, message string) (bool, error) {
	if client.Status() != StatusOnline {
		return false, ErrNotOnline
	}

	p, ok := client.awayOp.claim()
	if !ok {
		return false, ErrOperationPending
	}

	if err := client.Send(ircutil.Away(message)); err != nil {
		client.awayOp.release(p)
		return false, err
	}

	result, err := p.wait(ctx)
	if err != nil {
		client.awayOp.release(p)
		return false, err
	}

	return result == awayResultAway, nil
}

const (
	awayResultBack = 0
	awayResultAway = 1
)

// SendMessage sends a chat message, notice or action to a target. Long
// texts are cut on word boundaries, and every outgoing piece waits its turn
// with the flood pacer.
func (client *Client) SendMessage(ctx context.Context, target, text string, kind MessageKind) error {
	if client.Status() != StatusOnline {
		return ErrNotOnline
	}

	nick, username, hostname := client.localIdentity()
	overhead := ircutil.MessageOverhead(nick, username, hostname, target, kind == MessageAction)

	for _, cut := range ircutil.CutMessage(text, overhead) {
		if err := client.pacer.Wait(ctx); err != nil {
			return err
		}

		var line string
		switch kind {
		case MessageNotice:
			line = ircutil.Notice(target, cut)
		case MessageAction:
			line = ircutil.Privmsg(target, ircutil.ToAction(cut))
		default:
			line = ircutil.Privmsg(target, cut)
		}

		if err := client.Send(line); err != nil {
			return err
		}
	}

	return nil
}

// SendMessageMulti sends one message to several targets at once, as far as
// the server's advertised target limit allows. There is no per-target
// delivery feedback.
func (client *Client) SendMessageMulti(ctx context.Context, targets []string, text string, kind MessageKind) error {
	if len(targets) == 0 {
		return nil
	}
	if len(targets) > client.isupport.MaxTargets() {
		return ErrTooManyTargets
	}

	return client.SendMessage(ctx, strings.Join(targets, ","), text, kind)
}

// localIdentity returns the client's own nick/user/host as far as they are
// known, for message overhead calculation. Unknown parts use worst-case
// placeholders wide enough for most networks.
func (client *Client) localIdentity() (nick, username, hostname string) {
	local := client.LocalUser()
	if local == nil {
		return client.config.Nick, client.config.Username, strings.Repeat("*", 64)
	}

	nick, username, hostname = local.Nick(), local.Username(), local.Hostname()
	if username == "" {
		username = "~" + client.config.Username
	}
	if hostname == "" {
		hostname = strings.Repeat("*", 64)
	}

	return nick, username, hostname
}
