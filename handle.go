package virc

import (
	"strings"

	"github.com/virc-go/virc/casemap"
	"github.com/virc-go/virc/ircutil"
	"github.com/virc-go/virc/isupport"
)

// A messageHandler interprets one inbound command on the dispatch goroutine.
// Handlers are the only writers of entity state.
type messageHandler func(client *Client, msg *ircutil.Message)

var messageHandlers = map[string]messageHandler{
	"PING":    handlePing,
	"NICK":    handleNick,
	"MODE":    handleMode,
	"JOIN":    handleJoin,
	"PART":    handlePart,
	"QUIT":    handleQuit,
	"ERROR":   handleError,
	"PRIVMSG": handlePrivmsg,
	"NOTICE":  handleNotice,
	"001":     handleWelcome,
	"004":     handleMyInfo,
	"005":     handleISupport,
	"305":     handleUnaway,
	"306":     handleNowAway,
	"332":     handleTopic,
	"353":     handleNames,
	"366":     handleEndOfNames,
	"396":     handleHostHidden,
	"433":     handleNickInUse,
	"436":     handleNickCollision,
}

func handlePing(client *Client, msg *ircutil.Message) {
	_ = client.Send(ircutil.Pong(msg.Arg(0)))
}

func handleNick(client *Client, msg *ircutil.Message) {
	prefix := ircutil.ParsePrefix(msg.Source)
	newNick := msg.Arg(0)
	if prefix.Nick == "" || newNick == "" {
		return
	}

	user, ok := client.renameUser(prefix.Nick, newNick)
	if !ok {
		return
	}

	if client.isLocal(user) {
		if p := client.nickOp.take(); p != nil {
			p.resolve(int(NickChanged), nil)
		}
	}

	event := NewEvent("user", "nick_changed")
	event.Nick = prefix.Nick
	event.User = prefix.User
	event.Host = prefix.Host
	event.Args = []string{prefix.Nick, newNick}
	client.emit(&event)
}

func handleMode(client *Client, msg *ircutil.Message) {
	if len(msg.Params) < 2 {
		return
	}
	target := msg.Params[0]
	prefix := ircutil.ParsePrefix(msg.Source)

	// A mode change where the target is the sender's own nick is a user
	// mode change; servers only relay those for the client itself.
	if prefix.Nick != "" && client.Mapping().Equal(prefix.Nick, target) {
		user := client.user(target)
		applyModeString(msg.Params[1], user.addMode, user.removeMode)

		if client.isLocal(user) {
			// Some servers confirm registration with a self MODE before,
			// or instead of, the welcome numeric.
			if p := client.regOp.take(); p != nil {
				p.resolve(0, nil)
				event := NewEvent("client", "connected")
				client.emit(&event)
			}
		}
		return
	}

	if !client.isupport.IsChannel(target) {
		return
	}

	channel := client.channel(target)
	plus := true
	arg := 2
	for _, mode := range msg.Params[1] {
		switch mode {
		case '+':
			plus = true
		case '-':
			plus = false
		default:
			param := ""
			if client.isupport.ModeTakesArgument(mode, plus) && arg < len(msg.Params) {
				param = msg.Params[arg]
				arg++
			}

			if client.isupport.ModeType(mode) == isupport.ModePrefix {
				if param == "" {
					continue
				}
				member := channel.member(client.user(param))
				if plus {
					member.addMode(mode)
				} else {
					member.removeMode(mode)
				}
			} else if plus {
				channel.addMode(mode)
			} else {
				channel.removeMode(mode)
			}
		}
	}
}

func handleJoin(client *Client, msg *ircutil.Message) {
	prefix := ircutil.ParsePrefix(msg.Source)
	name := msg.Arg(0)
	if prefix.Nick == "" || name == "" {
		return
	}

	user := client.user(prefix.Nick)
	user.setOrigin(prefix.User, prefix.Host)
	channel := client.channel(name)

	if client.isLocal(user) {
		// The join is not reported yet; that waits for the end of NAMES,
		// when the membership list is trustworthy.
		channel.markJoined(user)
		return
	}

	channel.member(user)

	event := NewEvent("channel", "user_joined")
	event.Nick = prefix.Nick
	event.User = prefix.User
	event.Host = prefix.Host
	event.Args = []string{channel.Name()}
	client.emit(&event)
}

func handlePart(client *Client, msg *ircutil.Message) {
	prefix := ircutil.ParsePrefix(msg.Source)
	name := msg.Arg(0)
	if prefix.Nick == "" || name == "" {
		return
	}

	channel := client.channel(name)
	reason := msg.Arg(1)

	user := client.User(prefix.Nick)
	if user == nil {
		return
	}

	if client.isLocal(user) {
		channel.markParted()
		if p := channel.partOp.take(); p != nil {
			p.resolve(0, nil)
		}

		event := NewEvent("channel", "parted")
		event.Nick = prefix.Nick
		event.Args = []string{channel.Name()}
		event.Text = reason
		client.emit(&event)
		return
	}

	if channel.removeMember(user) == nil {
		return
	}

	event := NewEvent("channel", "user_parted")
	event.Nick = prefix.Nick
	event.User = prefix.User
	event.Host = prefix.Host
	event.Args = []string{channel.Name(), "part"}
	event.Text = reason
	client.emit(&event)
}

func handleQuit(client *Client, msg *ircutil.Message) {
	prefix := ircutil.ParsePrefix(msg.Source)
	if prefix.Nick == "" {
		return
	}

	user := client.User(prefix.Nick)
	if user == nil {
		return
	}

	user.markQuit()
	reason := msg.Arg(0)

	for _, channel := range client.Channels() {
		if channel.removeMember(user) == nil {
			continue
		}

		event := NewEvent("channel", "user_parted")
		event.Nick = prefix.Nick
		event.User = prefix.User
		event.Host = prefix.Host
		event.Args = []string{channel.Name(), "quit"}
		event.Text = reason
		client.emit(&event)
	}

	event := NewEvent("user", "quit")
	event.Nick = prefix.Nick
	event.User = prefix.User
	event.Host = prefix.Host
	event.Args = []string{prefix.Nick}
	event.Text = reason
	client.emit(&event)
}

func handleError(client *Client, msg *ircutil.Message) {
	// ERROR is the server's goodbye; the connection is about to die. If a
	// quit is waiting, this is its answer.
	if p := client.quitOp.take(); p != nil {
		p.resolve(0, nil)
	} else {
		client.logger.Println("virc: server error:", msg.Arg(0))
	}
}

func handlePrivmsg(client *Client, msg *ircutil.Message) {
	handleChat(client, msg, MessageStandard)
}

func handleNotice(client *Client, msg *ircutil.Message) {
	handleChat(client, msg, MessageNotice)
}

func handleChat(client *Client, msg *ircutil.Message, kind MessageKind) {
	if len(msg.Params) < 2 {
		return
	}

	prefix := ircutil.ParsePrefix(msg.Source)
	if prefix.Nick == "" {
		// Server notices carry no user state; hosts see them as packets.
		return
	}

	target := msg.Params[0]
	text, isAction := ircutil.CutAction(msg.Params[1])
	if isAction {
		kind = MessageAction
	}

	user := client.user(prefix.Nick)
	user.setOrigin(prefix.User, prefix.Host)

	if client.isupport.IsChannel(target) {
		channel := client.channel(target)
		channel.member(user)

		event := NewEvent("channel", "message")
		event.Nick = prefix.Nick
		event.User = prefix.User
		event.Host = prefix.Host
		event.Args = []string{channel.Name(), kind.String()}
		event.Text = text
		client.emit(&event)
		return
	}

	local := client.LocalUser()
	if local != nil && client.Mapping().Equal(target, local.Nick()) {
		event := NewEvent("user", "message")
		event.Nick = prefix.Nick
		event.User = prefix.User
		event.Host = prefix.Host
		event.Args = []string{kind.String()}
		event.Text = text
		client.emit(&event)
		return
	}

	client.logger.Println("virc: message for unknown target:", target)
}

func handleWelcome(client *Client, msg *ircutil.Message) {
	nick := msg.Arg(0)
	if nick == "" {
		return
	}

	client.setLocalUser(client.user(nick))

	if p := client.regOp.take(); p != nil {
		p.resolve(0, nil)
		event := NewEvent("client", "connected")
		client.emit(&event)
	}
}

func handleMyInfo(client *Client, msg *ircutil.Message) {
	if len(msg.Params) < 4 {
		return
	}

	client.isupport.SetServerInfo(msg.Params[1], msg.Params[2], msg.Params[3])
	if len(msg.Params) >= 5 {
		client.isupport.SeedChannelModes(msg.Params[4])
	}
}

func handleISupport(client *Client, msg *ircutil.Message) {
	if len(msg.Params) < 2 {
		return
	}

	// The first parameter is our own nick, the trailing one the
	// human-readable "are supported by this server" suffix.
	tokens := msg.Params[1:]
	if msg.Trailing {
		tokens = tokens[:len(tokens)-1]
	}

	for _, token := range tokens {
		key, value, _ := strings.Cut(token, "=")
		client.isupport.Set(key, value)

		if key == "CASEMAPPING" {
			client.setMapping(casemap.ByName(value))
		}
	}
}

func handleUnaway(client *Client, msg *ircutil.Message) {
	if p := client.awayOp.take(); p != nil {
		p.resolve(awayResultBack, nil)
	}
}

func handleNowAway(client *Client, msg *ircutil.Message) {
	if p := client.awayOp.take(); p != nil {
		p.resolve(awayResultAway, nil)
	}
}

func handleTopic(client *Client, msg *ircutil.Message) {
	if len(msg.Params) < 3 {
		return
	}

	client.channel(msg.Params[1]).setTopic(msg.Params[2])
}

func handleNames(client *Client, msg *ircutil.Message) {
	if len(msg.Params) < 4 {
		return
	}

	channel := client.channel(msg.Params[2])
	for _, token := range strings.Fields(msg.Params[3]) {
		bare, modes := client.isupport.ParsePrefixedNick(token)
		if bare == "" {
			continue
		}

		// Servers with userhost-in-names list full nick!user@host tokens.
		prefix := ircutil.ParsePrefix(bare)
		if prefix.Nick == "" {
			continue
		}

		user := client.user(prefix.Nick)
		user.setOrigin(prefix.User, prefix.Host)
		channel.member(user).setModes(modes)
	}
}

func handleEndOfNames(client *Client, msg *ircutil.Message) {
	name := msg.Arg(1)
	if name == "" {
		return
	}

	channel := client.channel(name)
	channel.setNamesComplete()

	if p := channel.joinOp.take(); p != nil {
		p.resolve(0, nil)
	}

	event := NewEvent("channel", "joined")
	event.Args = []string{channel.Name()}
	client.emit(&event)
}

func handleHostHidden(client *Client, msg *ircutil.Message) {
	host := msg.Arg(1)
	if host == "" {
		return
	}

	if local := client.LocalUser(); local != nil {
		local.setHostname(host)
	}
}

func handleNickInUse(client *Client, msg *ircutil.Message) {
	if p := client.nickOp.take(); p != nil {
		p.resolve(int(NickInUse), nil)
		return
	}

	client.logger.Println("virc: nickname in use:", msg.Arg(1))
}

func handleNickCollision(client *Client, msg *ircutil.Message) {
	if p := client.nickOp.take(); p != nil {
		p.resolve(int(NickCollision), nil)
		return
	}

	client.logger.Println("virc: nickname collision:", msg.Arg(1))
}

// applyModeString walks a +/- mode string without parameters, calling add or
// remove for each letter.
func applyModeString(modes string, add, remove func(rune)) {
	plus := true
	for _, mode := range modes {
		switch mode {
		case '+':
			plus = true
		case '-':
			plus = false
		default:
			if plus {
				add(mode)
			} else {
				remove(mode)
			}
		}
	}
}
