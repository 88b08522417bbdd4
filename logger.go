package virc

import "log"

// DebugLogger is the destination for protocol-level diagnostics: dropped
// lines, unhandled commands and connection teardown. The standard log
// package satisfies it.
type DebugLogger interface {
	Println(v ...interface{})
}

type defaultDebugLogger struct{}

func (logger *defaultDebugLogger) Println(v ...interface{}) {
	log.Println(v...)
}

type nopLogger struct{}

func (nopLogger) Println(v ...interface{}) {}
