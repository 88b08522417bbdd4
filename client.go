// Package virc is a client library for the IRC protocol. It owns one
// connection, keeps shared user and channel entities up to date from the
// server's point of view, and correlates sent commands with their responses
// so that joins, parts, nick changes and quits can be awaited.
package virc

import (
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/virc-go/virc/casemap"
	"github.com/virc-go/virc/flood"
	"github.com/virc-go/virc/ircutil"
	"github.com/virc-go/virc/isupport"
)

// A Client is one IRC session. It is safe for concurrent use; all entity
// mutation happens on the single dispatch goroutine, and every public
// operation is guarded by the session state machine.
type Client struct {
	id     string
	config Config

	status atomic.Int32

	mutex    sync.RWMutex
	conn     net.Conn
	mapping  casemap.Mapping
	users    map[string]*User
	channels map[string]*Channel
	local    *User

	writeMutex sync.Mutex
	lastSend   atomic.Int64

	isupport isupport.ISupport
	pacer    *flood.Pacer
	logger   DebugLogger

	handlerMutex sync.RWMutex
	handlers     []Handler

	regOp  pendingSlot
	nickOp pendingSlot
	awayOp pendingSlot
	quitOp pendingSlot
}

// New creates a client with the given configuration. The client starts
// offline; call Connect to bring it up.
func New(config Config) *Client {
	config = config.WithDefaults()

	client := &Client{
		id:       uuid.NewString(),
		config:   config,
		mapping:  casemap.RFC1459,
		users:    make(map[string]*User, 16),
		channels: make(map[string]*Channel, 8),
		pacer:    config.Pacer,
		logger:   config.Logger,
	}
	client.isupport.Reset()

	return client
}

// ID returns the unique id of this client instance.
func (client *Client) ID() string {
	return client.id
}

// ISupport exposes what the server has advertised about itself.
func (client *Client) ISupport() *isupport.ISupport {
	return &client.isupport
}

// Connect dials the server behind an irc:// or ircs:// URL, negotiates TLS
// for the latter, registers, and blocks until the server confirms the
// session or ctx runs out. On success the client is online.
func (client *Client) Connect(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("virc: parse server url: %w", err)
	}

	var useTLS bool
	switch strings.ToLower(parsed.Scheme) {
	case "irc":
	case "ircs":
		useTLS = true
	default:
		return fmt.Errorf("virc: unsupported scheme %q", parsed.Scheme)
	}

	if !client.casStatus(StatusOffline, StatusConnecting) {
		return ErrNotOffline
	}

	port := parsed.Port()
	if port == "" {
		if useTLS {
			port = "6697"
		} else {
			port = "6667"
		}
	}
	addr := net.JoinHostPort(parsed.Hostname(), port)

	dialer := &net.Dialer{Timeout: 30 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		client.status.Store(int32(StatusOffline))
		return fmt.Errorf("virc: dial %s: %w", addr, err)
	}

	if useTLS {
		tlsConn := tls.Client(conn, client.tlsConfig(parsed.Hostname()))
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			client.status.Store(int32(StatusOffline))
			return fmt.Errorf("virc: tls handshake: %w", err)
		}
		conn = tlsConn
	}

	client.isupport.Reset()
	client.mutex.Lock()
	client.conn = conn
	client.mapping = casemap.RFC1459
	client.users = make(map[string]*User, 16)
	client.channels = make(map[string]*Channel, 8)
	client.local = nil
	client.mutex.Unlock()
	client.lastSend.Store(time.Now().UnixNano())

	if !client.casStatus(StatusConnecting, StatusLoggingIn) {
		// A concurrent quit won the state; drop the fresh connection.
		conn.Close()
		client.mutex.Lock()
		client.conn = nil
		client.mutex.Unlock()
		client.status.Store(int32(StatusOffline))
		return ErrDisconnected
	}

	client.regOp.take()
	reg, _ := client.regOp.claim()

	lines := make(chan string, 64)
	go client.readLoop(conn, lines)
	go client.dispatchLoop(lines)

	if client.config.ServerPassword != "" {
		_ = client.Send(ircutil.Pass(client.config.ServerPassword))
	}
	_ = client.Send(ircutil.Nick(client.config.Nick))
	if err := client.Send(ircutil.User(client.config.Username, 8, client.config.RealName)); err != nil {
		return err
	}

	if _, err := reg.wait(ctx); err != nil {
		client.regOp.release(reg)
		client.closeConn()
		return err
	}

	if !client.casStatus(StatusLoggingIn, StatusOnline) {
		return ErrDisconnected
	}

	return nil
}

// Send writes one line to the connection, adding the CRLF terminator. It is
// not paced; use SendMessage for chat traffic.
func (client *Client) Send(line string) error {
	client.mutex.RLock()
	conn := client.conn
	client.mutex.RUnlock()

	if conn == nil {
		return ErrNoConnection
	}

	client.writeMutex.Lock()
	_, err := conn.Write([]byte(line + "\r\n"))
	client.writeMutex.Unlock()

	if err != nil {
		client.logger.Println("virc: write failed:", err)
		conn.Close()
		return fmt.Errorf("virc: write: %w", err)
	}
	client.lastSend.Store(time.Now().UnixNano())

	return nil
}

// Sendf writes one formatted line to the connection.
func (client *Client) Sendf(format string, a ...interface{}) error {
	return client.Send(fmt.Sprintf(format, a...))
}

// readLoop frames lines off the connection into the dispatch channel. It
// owns the channel and closes it when the connection dies, which is what
// triggers teardown.
func (client *Client) readLoop(conn net.Conn, lines chan<- string) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			lines <- line
		}
		if err != nil {
			break
		}
	}

	close(lines)
}

// dispatchLoop is the only goroutine that interprets lines and mutates
// entities. Each line is fully handled, user handlers included, before the
// next one is read, so observers see events in exact arrival order.
func (client *Client) dispatchLoop(lines <-chan string) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				client.teardown()
				return
			}
			client.dispatch(line)

		case <-ticker.C:
			// Some networks drop quiet connections without a word. Prod the
			// server after two minutes of outbound silence.
			last := time.Unix(0, client.lastSend.Load())
			if time.Since(last) > 2*time.Minute {
				_ = client.Send(ircutil.Ping(strconv.FormatInt(time.Now().UnixNano(), 16)))
			}
		}
	}
}

func (client *Client) dispatch(line string) {
	msg, err := ircutil.ParseMessage(line)
	if err != nil {
		client.logger.Println("virc: dropping malformed line:", line)
		return
	}

	if handler, ok := messageHandlers[msg.Command]; ok {
		handler(client, &msg)
	} else {
		client.logger.Println("virc: unhandled command:", msg.Command)
	}

	event := NewEvent("packet", strings.ToUpper(msg.Command))
	prefix := ircutil.ParsePrefix(msg.Source)
	event.Nick = prefix.Nick
	event.User = prefix.User
	event.Host = prefix.Host
	event.Args = msg.Params
	client.emit(&event)
}

// teardown runs exactly once per connection, after the last line has been
// dispatched. It forces the session offline and resolves every pending
// operation so no waiter is left hanging.
func (client *Client) teardown() {
	client.status.Store(int32(StatusOffline))

	client.mutex.Lock()
	conn := client.conn
	client.conn = nil
	client.mutex.Unlock()
	if conn != nil {
		conn.Close()
	}

	if p := client.regOp.take(); p != nil {
		p.resolve(0, ErrDisconnected)
	}
	if p := client.nickOp.take(); p != nil {
		p.resolve(0, ErrDisconnected)
	}
	if p := client.awayOp.take(); p != nil {
		p.resolve(0, ErrDisconnected)
	}
	// Connection closure is exactly what a quit waits for.
	if p := client.quitOp.take(); p != nil {
		p.resolve(0, nil)
	}
	for _, channel := range client.Channels() {
		if p := channel.joinOp.take(); p != nil {
			p.resolve(0, ErrDisconnected)
		}
		if p := channel.partOp.take(); p != nil {
			p.resolve(0, ErrDisconnected)
		}
	}

	event := NewEvent("client", "disconnected")
	client.emit(&event)
}

func (client *Client) closeConn() {
	client.mutex.RLock()
	conn := client.conn
	client.mutex.RUnlock()

	if conn != nil {
		conn.Close()
	}
}

// tlsConfig builds the TLS client configuration, routing certificate
// decisions through the Config.VerifyCertificate hook when one is set.
func (client *Client) tlsConfig(serverName string) *tls.Config {
	conf := &tls.Config{ServerName: serverName}

	if client.config.SkipTLSVerification {
		conf.InsecureSkipVerify = true
		return conf
	}

	verify := client.config.VerifyCertificate
	if verify == nil {
		return conf
	}

	// Run chain verification manually so the hook can see its outcome and
	// overrule it.
	conf.InsecureSkipVerify = true
	conf.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		certs := make([]*x509.Certificate, 0, len(rawCerts))
		for _, raw := range rawCerts {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return fmt.Errorf("virc: parse server certificate: %w", err)
			}
			certs = append(certs, cert)
		}
		if len(certs) == 0 {
			return ErrCertificateRejected
		}

		intermediates := x509.NewCertPool()
		for _, cert := range certs[1:] {
			intermediates.AddCert(cert)
		}
		_, verifyErr := certs[0].Verify(x509.VerifyOptions{
			DNSName:       serverName,
			Intermediates: intermediates,
		})

		if verify(certs[0], verifyErr) {
			return nil
		}
		if verifyErr != nil {
			return verifyErr
		}
		return ErrCertificateRejected
	}

	return conf
}
