package irctest

import "github.com/virc-go/virc"

// An EventLog records every event a client emits, for asserting on ordering
// and payloads after an interaction has run.
type EventLog struct {
	events []virc.Event
}

// Handler is the virc.Handler that feeds the log.
func (log *EventLog) Handler(event *virc.Event, _ *virc.Client) {
	log.events = append(log.events, *event)
}

// First returns the first recorded event of the given kind and verb, or nil.
func (log *EventLog) First(kind, verb string) *virc.Event {
	for i := range log.events {
		if log.events[i].Kind() == kind && log.events[i].Verb() == verb {
			return &log.events[i]
		}
	}

	return nil
}

// Last returns the last recorded event of the given kind and verb, or nil.
func (log *EventLog) Last(kind, verb string) *virc.Event {
	for i := len(log.events) - 1; i >= 0; i-- {
		if log.events[i].Kind() == kind && log.events[i].Verb() == verb {
			return &log.events[i]
		}
	}

	return nil
}

// Count returns how many events of the given kind and verb were recorded.
func (log *EventLog) Count(kind, verb string) int {
	n := 0
	for i := range log.events {
		if log.events[i].Kind() == kind && log.events[i].Verb() == verb {
			n++
		}
	}

	return n
}
