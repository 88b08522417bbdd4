package virc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virc-go/virc"
	"github.com/virc-go/virc/internal/irctest"
)

func TestClientLifecycle(t *testing.T) {
	eventLog := &irctest.EventLog{}
	disconnected := make(chan struct{})

	interaction := irctest.Interaction{
		Lines: []irctest.InteractionLine{
			{Client: "NICK Test"},
			{Client: "USER test*"},
			{Server: ":irc.example.com 001 Test :Welcome to TestNet, Test"},
			{Server: ":irc.example.com 004 Test irc.example.com test-1.0 iosw biklmnopstv"},
			{Server: ":irc.example.com 005 Test PREFIX=(ov)@+ CHANMODES=b,k,l,imnpst CHANTYPES=# CASEMAPPING=rfc1459 NICKLEN=30 :are supported by this server"},
			{Server: ":Test MODE Test :+i"},
			{Client: "JOIN #test"},
			{Server: ":Test!~test@localhost JOIN #test"},
			{Server: ":irc.example.com 353 Test = #test :@Test +Friend Other"},
			{Server: ":irc.example.com 366 Test #test :End of /NAMES list."},
			{Client: "PRIVMSG #test :Hello, world"},
			{Server: ":Friend!~friend@localhost PRIVMSG #test :\x01ACTION waves\x01"},
			{Client: "PART #test*"},
			{Server: ":Test!~test@localhost PART #test :Leaving"},
			{Client: "QUIT*"},
			{Server: "ERROR :Closing Link: Test[localhost] (Quit: Goodnight)"},
		},
	}

	addr, err := interaction.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := virc.New(virc.Config{Nick: "Test", Username: "test"})
	client.AddHandler(eventLog.Handler)
	client.AddHandler(func(event *virc.Event, _ *virc.Client) {
		if event.Name() == "client.disconnected" {
			close(disconnected)
		}
	})

	require.NoError(t, client.Connect(ctx, "irc://"+addr))
	assert.Equal(t, virc.StatusOnline, client.Status())
	require.NotNil(t, client.LocalUser())
	assert.Equal(t, "Test", client.LocalUser().Nick())

	channel, err := client.Join(ctx, "#test", "")
	require.NoError(t, err)
	assert.True(t, channel.Joined())
	assert.True(t, channel.NamesComplete())
	irctest.AssertMembers(t, channel, "o:Test", "v:Friend", "Other")

	// A second join of the same channel is refused locally.
	_, err = client.Join(ctx, "#test", "")
	assert.ErrorIs(t, err, virc.ErrAlreadyJoined)

	_, err = client.Join(ctx, "test", "")
	assert.ErrorIs(t, err, virc.ErrInvalidChannelName)

	require.NoError(t, channel.SendMessage(ctx, "Hello, world", virc.MessageStandard))

	require.NoError(t, client.Part(ctx, channel, "Leaving"))
	assert.False(t, channel.Joined())

	require.NoError(t, client.Quit(ctx, "Goodnight"))

	select {
	case <-disconnected:
	case <-ctx.Done():
		t.Fatal("timed out waiting for teardown")
	}

	interaction.Wait()
	assert.NoError(t, interaction.Err())
	assert.Equal(t, virc.StatusOffline, client.Status())

	assert.Equal(t, 1, eventLog.Count("client", "connected"))
	joined := eventLog.First("channel", "joined")
	require.NotNil(t, joined)
	assert.Equal(t, "#test", joined.Arg(0))

	action := eventLog.Last("channel", "message")
	require.NotNil(t, action)
	assert.Equal(t, "waves", action.Text)
	assert.Equal(t, "action", action.Arg(1))
	assert.Equal(t, "Friend", action.Nick)

	parted := eventLog.First("channel", "parted")
	require.NotNil(t, parted)
	assert.Equal(t, "#test", parted.Arg(0))
	assert.Equal(t, "Leaving", parted.Text)
}

func TestClientNickAndAway(t *testing.T) {
	interaction := irctest.Interaction{
		Lines: []irctest.InteractionLine{
			{Client: "NICK Test"},
			{Client: "USER test*"},
			{Server: ":irc.example.com 001 Test :Welcome to TestNet, Test"},
			{Server: ":irc.example.com 005 Test NICKLEN=30 :are supported by this server"},
			{Client: "NICK Cooler"},
			{Server: ":Test!~test@localhost NICK Cooler"},
			{Client: "NICK Taken"},
			{Server: ":irc.example.com 433 Cooler Taken :Nickname is already in use."},
			{Client: "AWAY :brb"},
			{Server: ":irc.example.com 306 Cooler :You have been marked as being away"},
			{Client: "AWAY"},
			{Server: ":irc.example.com 305 Cooler :You are no longer marked as being away"},
			{Client: "QUIT*"},
			{Server: "ERROR :Closing Link"},
		},
	}

	addr, err := interaction.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := virc.New(virc.Config{Nick: "Test", Username: "test"})
	require.NoError(t, client.Connect(ctx, "irc://"+addr))

	result, err := client.ChangeNick(ctx, "Cooler")
	require.NoError(t, err)
	assert.Equal(t, virc.NickChanged, result)
	assert.Equal(t, "Cooler", client.LocalUser().Nick())

	result, err = client.ChangeNick(ctx, "Taken")
	require.NoError(t, err)
	assert.Equal(t, virc.NickInUse, result)
	assert.Equal(t, "Cooler", client.LocalUser().Nick())

	away, err := client.SetAway(ctx, "brb")
	require.NoError(t, err)
	assert.True(t, away)

	away, err = client.SetAway(ctx, "")
	require.NoError(t, err)
	assert.False(t, away)

	require.NoError(t, client.Quit(ctx, "Goodnight"))
	interaction.Wait()
	assert.NoError(t, interaction.Err())
}

func TestClientDisconnectFailsPendingJoin(t *testing.T) {
	interaction := irctest.Interaction{
		Lines: []irctest.InteractionLine{
			{Client: "NICK Test"},
			{Client: "USER test*"},
			{Server: ":irc.example.com 001 Test :Welcome to TestNet, Test"},
			{Client: "JOIN #test"},
			// The server dies without answering the join.
		},
	}

	addr, err := interaction.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := virc.New(virc.Config{Nick: "Test", Username: "test"})
	require.NoError(t, client.Connect(ctx, "irc://"+addr))

	_, err = client.Join(ctx, "#test", "")
	assert.ErrorIs(t, err, virc.ErrDisconnected)
	assert.Equal(t, virc.StatusOffline, client.Status())
}

func TestClientRejectsBadURLs(t *testing.T) {
	ctx := context.Background()
	client := virc.New(virc.Config{})

	assert.Error(t, client.Connect(ctx, "http://irc.example.com"))
	assert.Error(t, client.Connect(ctx, "://not-a-url"))
	assert.Equal(t, virc.StatusOffline, client.Status())
	assert.NotEmpty(t, client.ID())
}

func TestClientConnectTwice(t *testing.T) {
	interaction := irctest.Interaction{
		Lines: []irctest.InteractionLine{
			{Client: "NICK Test"},
			{Client: "USER test*"},
			{Server: ":irc.example.com 001 Test :Welcome to TestNet, Test"},
			{Client: "QUIT*"},
			{Server: "ERROR :Closing Link"},
		},
	}

	addr, err := interaction.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := virc.New(virc.Config{Nick: "Test", Username: "test"})
	require.NoError(t, client.Connect(ctx, "irc://"+addr))

	err = client.Connect(ctx, "irc://"+addr)
	assert.ErrorIs(t, err, virc.ErrNotOffline)

	require.NoError(t, client.Quit(ctx, "Goodnight"))
	interaction.Wait()
	assert.NoError(t, interaction.Err())
}
