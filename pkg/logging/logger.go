// Package logging provides the structured logger used by the
// report sinks and commands, with colored console and discard
// implementations.
package logging

import (
	"fmt"

	"digital.vasic.unittest/pkg/label"
)

// Logger receives messages with key=value fields.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Debug messages are dropped unless the logger is verbose.
	Debug(msg string, fields ...Field)

	// WithFields returns a logger that adds fields to every
	// message and shares the receiver's output.
	WithFields(fields ...Field) Logger
}

// Field is one key=value pair printed after a message.
type Field struct {
	Key   string
	Value any
}

func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// LabelField records a unit-test label by its content.
func LabelField(key string, l label.Label) Field {
	return Field{Key: key, Value: l.String()}
}

// ErrorField records err under the key "error". A nil error is
// printed as <nil>.
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// LogLevel orders message severity.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// NullLogger drops every message.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field)  {}
func (NullLogger) Warn(string, ...Field)  {}
func (NullLogger) Error(string, ...Field) {}
func (NullLogger) Debug(string, ...Field) {}

func (n NullLogger) WithFields(...Field) Logger { return n }
