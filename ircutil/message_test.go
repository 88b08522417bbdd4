package ircutil_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/virc-go/virc/ircutil"
)

func TestParseMessage(t *testing.T) {
	table := []struct {
		Line     string
		Expected ircutil.Message
	}{
		{
			"PING :1234567",
			ircutil.Message{Command: "PING", Params: []string{"1234567"}, Trailing: true},
		},
		{
			":nick!user@host PRIVMSG #chan :hello there",
			ircutil.Message{
				Source:   "nick!user@host",
				Command:  "PRIVMSG",
				Params:   []string{"#chan", "hello there"},
				Trailing: true,
			},
		},
		{
			":server.example.com 005 Guest NICKLEN=30 CHANTYPES=# :are supported by this server",
			ircutil.Message{
				Source:   "server.example.com",
				Command:  "005",
				Params:   []string{"Guest", "NICKLEN=30", "CHANTYPES=#", "are supported by this server"},
				Trailing: true,
			},
		},
		{
			"QUIT",
			ircutil.Message{Command: "QUIT"},
		},
		{
			"MODE  #chan   +o    Guest",
			ircutil.Message{Command: "MODE", Params: []string{"#chan", "+o", "Guest"}},
		},
		{
			":irc.example.com NOTICE * :*** Looking up your hostname...",
			ircutil.Message{
				Source:   "irc.example.com",
				Command:  "NOTICE",
				Params:   []string{"*", "*** Looking up your hostname..."},
				Trailing: true,
			},
		},
		{
			"PRIVMSG #chan :",
			ircutil.Message{Command: "PRIVMSG", Params: []string{"#chan", ""}, Trailing: true},
		},
		{
			"TOPIC #chan no:colon:at:token:start",
			ircutil.Message{Command: "TOPIC", Params: []string{"#chan", "no:colon:at:token:start"}},
		},
	}

	for i, row := range table {
		t.Run(fmt.Sprintf("Row_%d_%s", i, row.Expected.Command), func(t *testing.T) {
			msg, err := ircutil.ParseMessage(row.Line)
			if assert.NoError(t, err) {
				assert.Equal(t, row.Expected, msg)
			}
		})
	}
}

func TestParseMessageErrors(t *testing.T) {
	for _, line := range []string{"", "   ", ":lonely.source.only"} {
		t.Run(fmt.Sprintf("%q", line), func(t *testing.T) {
			_, err := ircutil.ParseMessage(line)
			assert.ErrorIs(t, err, ircutil.ErrEmptyMessage)
		})
	}
}

func TestMessageArg(t *testing.T) {
	msg, err := ircutil.ParseMessage("353 Guest = #chan :@Op +Voice Plain")
	assert.NoError(t, err)
	assert.Equal(t, "Guest", msg.Arg(0))
	assert.Equal(t, "@Op +Voice Plain", msg.Arg(3))
	assert.Equal(t, "", msg.Arg(4))
	assert.Equal(t, "", msg.Arg(-1))
}
