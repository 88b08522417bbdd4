package virc

import "errors"

var (
	// ErrNotOffline is returned by Connect when the client is already
	// connecting or connected.
	ErrNotOffline = errors.New("virc: client is not offline")

	// ErrNotOnline is returned by operations that need a registered session.
	ErrNotOnline = errors.New("virc: client is not online")

	// ErrNoConnection is returned by Send when there is no connection to
	// write to.
	ErrNoConnection = errors.New("virc: no connection")

	// ErrDisconnected resolves every pending operation when the connection
	// is lost before the server answered it.
	ErrDisconnected = errors.New("virc: connection lost")

	// ErrOperationPending is returned when an operation of the same kind is
	// already awaiting its server response.
	ErrOperationPending = errors.New("virc: operation already pending")

	// ErrInvalidNick is returned for nicknames that fail the protocol
	// grammar or exceed the advertised length limit.
	ErrInvalidNick = errors.New("virc: invalid nickname")

	// ErrInvalidChannelName is returned for names that do not start with an
	// advertised channel prefix or exceed the advertised length limit.
	ErrInvalidChannelName = errors.New("virc: invalid channel name")

	// ErrAlreadyJoined is returned by Join for a channel the client is in.
	ErrAlreadyJoined = errors.New("virc: already joined that channel")

	// ErrNotJoined is returned by Part for a channel the client is not in.
	ErrNotJoined = errors.New("virc: not joined to that channel")

	// ErrTooManyTargets is returned when a message addresses more targets
	// than the server allows.
	ErrTooManyTargets = errors.New("virc: too many targets")

	// ErrUserQuit is returned when messaging a user that is known to have
	// disconnected.
	ErrUserQuit = errors.New("virc: user has quit")

	// ErrCertificateRejected is returned through the TLS handshake when the
	// verification hook declines the server certificate.
	ErrCertificateRejected = errors.New("virc: server certificate rejected")
)
