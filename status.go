package virc

// Status is the client's position in the session lifecycle. Transitions
// happen one at a time through atomic compare-and-swap, so concurrent
// operations cannot both move the client out of the same state.
type Status int32

const (
	// StatusOffline means no connection exists or the last one was torn down.
	StatusOffline Status = iota
	// StatusConnecting covers dialing and the TLS handshake.
	StatusConnecting
	// StatusLoggingIn covers registration, from NICK/USER until the server
	// confirms.
	StatusLoggingIn
	// StatusAuthenticating is reserved for SASL and is never entered today.
	StatusAuthenticating
	// StatusOnline is a registered session ready for commands.
	StatusOnline
	// StatusQuitting means a quit is underway and no new commands go out.
	StatusQuitting
)

func (status Status) String() string {
	switch status {
	case StatusOffline:
		return "offline"
	case StatusConnecting:
		return "connecting"
	case StatusLoggingIn:
		return "logging-in"
	case StatusAuthenticating:
		return "authenticating"
	case StatusOnline:
		return "online"
	case StatusQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Status returns the client's current lifecycle state.
func (client *Client) Status() Status {
	return Status(client.status.Load())
}

func (client *Client) casStatus(from, to Status) bool {
	return client.status.CompareAndSwap(int32(from), int32(to))
}
