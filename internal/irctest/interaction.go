// Package irctest provides a scripted fake server for end-to-end client
// tests: a list of lines to send, expectations to match against what the
// client sends, and callbacks to run in between.
package irctest

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"
)

// An Interaction is a simulated server driving one client connection
// through a scripted exchange.
type Interaction struct {
	wg       sync.WaitGroup
	listener net.Listener

	// Strict makes an unexpected client line a failure. Otherwise it is
	// logged and skipped, which keeps scripts short.
	Strict  bool
	Lines   []InteractionLine
	Log     []string
	Failure *InteractionFailure
}

// An InteractionLine is one step of the script: a line sent to the client, a
// line expected from it (a trailing * matches any suffix), or a callback.
type InteractionLine struct {
	Client   string
	Server   string
	Callback func() error
}

// An InteractionFailure records where and how the script derailed.
type InteractionFailure struct {
	Index  int
	Result string
	NetErr error
	CBErr  error
}

// Listen starts the scripted server on a loopback port and returns its
// address. The script runs against the first connection accepted.
func (interaction *Interaction) Listen() (addr string, err error) {
	interaction.listener, err = net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	lines := make([]InteractionLine, len(interaction.Lines))
	copy(lines, interaction.Lines)

	interaction.wg.Add(1)
	go func() {
		defer interaction.wg.Done()
		defer interaction.listener.Close()

		conn, err := interaction.listener.Accept()
		if err != nil {
			interaction.Failure = &InteractionFailure{Index: -1, NetErr: err}
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)

		for i := 0; i < len(lines); i++ {
			line := lines[i]

			switch {
			case line.Server != "":
				_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
				if _, err := conn.Write(append([]byte(line.Server), '\r', '\n')); err != nil {
					interaction.Failure = &InteractionFailure{Index: i, NetErr: err}
					return
				}

			case line.Client != "":
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				input, err := reader.ReadString('\n')
				if err != nil {
					interaction.Failure = &InteractionFailure{Index: i, NetErr: err}
					return
				}
				input = strings.TrimRight(input, "\r\n")
				interaction.Log = append(interaction.Log, input)

				matched := line.Client == input
				if strings.HasSuffix(line.Client, "*") {
					matched = strings.HasPrefix(input, strings.TrimSuffix(line.Client, "*"))
				}

				if !matched {
					if !interaction.Strict {
						i--
						continue
					}

					interaction.Failure = &InteractionFailure{Index: i, Result: input}
					return
				}

			case line.Callback != nil:
				if err := line.Callback(); err != nil {
					interaction.Failure = &InteractionFailure{Index: i, CBErr: err}
					return
				}
			}
		}
	}()

	return interaction.listener.Addr().String(), nil
}

// Wait blocks until the script has run to completion or failure. Failure is
// safe to inspect afterwards.
func (interaction *Interaction) Wait() {
	interaction.wg.Wait()
}
