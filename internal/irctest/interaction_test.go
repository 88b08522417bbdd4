package irctest_test

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virc-go/virc/internal/irctest"
)

func TestInteraction(t *testing.T) {
	interaction := irctest.Interaction{
		Strict: true,
		Lines: []irctest.InteractionLine{
			{Client: "NICK Guest"},
			{Client: "USER guest*"},
			{Server: ":irc.example.com 001 Guest :Welcome"},
			{Client: "QUIT*"},
			{Server: "ERROR :Bye"},
		},
	}

	addr, err := interaction.Listen()
	require.NoError(t, err)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("NICK Guest\r\nUSER guest 8 * :Guest\r\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ":irc.example.com 001 Guest :Welcome\r\n", line)

	_, err = conn.Write([]byte("QUIT :Leaving\r\n"))
	require.NoError(t, err)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "ERROR :Bye\r\n", line)

	interaction.Wait()
	assert.NoError(t, interaction.Err())
	assert.Equal(t, []string{"NICK Guest", "USER guest 8 * :Guest", "QUIT :Leaving"}, interaction.Log)
}
