package virc

import "time"

// An Event is a notification from the dispatch goroutine to the host
// application. Handlers run synchronously, one line at a time, so events are
// observed in exact arrival order.
//
// Events are named `kind.verb`. The client emits:
//
//	packet.<COMMAND>      every parsed line, before interpretation
//	client.connected      registration confirmed
//	client.disconnected   connection torn down
//	channel.joined        own join confirmed (end of NAMES)
//	channel.parted        own part confirmed
//	channel.user_joined   someone else joined
//	channel.user_parted   someone else left; Args[1] is "part" or "quit"
//	channel.message       message to a channel
//	user.message          message addressed to the client
//	user.nick_changed     a tracked user changed nick; Args are old, new
//	user.quit             a tracked user disconnected
type Event struct {
	kind string
	verb string
	name string

	// Time the line was dispatched.
	Time time.Time

	// Nick, User and Host identify the source when it was a user.
	Nick string
	User string
	Host string

	// Args are event-specific, per the table above.
	Args []string

	// Text is the free-form payload: message body, part or quit reason.
	Text string
}

// NewEvent creates an event of the given kind and verb, stamped now.
func NewEvent(kind, verb string) Event {
	return Event{
		kind: kind,
		verb: verb,
		name: kind + "." + verb,
		Time: time.Now(),
	}
}

// Kind returns the event's kind, the part before the dot.
func (event *Event) Kind() string {
	return event.kind
}

// Verb returns the event's verb, the part after the dot.
func (event *Event) Verb() string {
	return event.verb
}

// Name returns the full `kind.verb` name.
func (event *Event) Name() string {
	return event.name
}

// Arg returns Args[i], or an empty string if there is no such argument.
func (event *Event) Arg(i int) string {
	if i < 0 || i >= len(event.Args) {
		return ""
	}

	return event.Args[i]
}

// A Handler receives every event the client emits. Handlers run on the
// dispatch goroutine; blocking in one stalls the whole session.
type Handler func(event *Event, client *Client)

// AddHandler subscribes a handler to all events.
func (client *Client) AddHandler(handler Handler) {
	client.handlerMutex.Lock()
	client.handlers = append(client.handlers[:len(client.handlers):len(client.handlers)], handler)
	client.handlerMutex.Unlock()
}

func (client *Client) emit(event *Event) {
	client.handlerMutex.RLock()
	handlers := client.handlers
	client.handlerMutex.RUnlock()

	for _, handler := range handlers {
		handler(event, client)
	}
}

// MessageKind distinguishes the three shapes a chat message can take on the
// wire.
type MessageKind int

const (
	// MessageStandard is an ordinary PRIVMSG.
	MessageStandard MessageKind = iota
	// MessageNotice is a NOTICE; servers expect no automated replies to it.
	MessageNotice
	// MessageAction is a PRIVMSG wrapped in a CTCP ACTION envelope.
	MessageAction
)

func (kind MessageKind) String() string {
	switch kind {
	case MessageNotice:
		return "notice"
	case MessageAction:
		return "action"
	default:
		return "message"
	}
}
