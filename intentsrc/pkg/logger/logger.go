package logger

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type DefaultLogger struct {
	wr    io.Writer
	mu    sync.Mutex
	debug bool
}

// NewDefaultLogger writes every level, including debug.
func NewDefaultLogger(wr io.Writer) Logger {
	s := &DefaultLogger{}
	s.wr = wr
	s.debug = true
	return s
}

// NewQuietLogger drops debug messages.
func NewQuietLogger(wr io.Writer) Logger {
	s := &DefaultLogger{}
	s.wr = wr
	return s
}

func (s *DefaultLogger) Info(msg string, args ...interface{}) {
	s.log("INFO", msg, args...)
}

func (s *DefaultLogger) Debug(msg string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.log("DEBUG", msg, args...)
}

func (s *DefaultLogger) Warn(msg string, args ...interface{}) {
	s.log("WARN", msg, args...)
}

func (s *DefaultLogger) Error(msg string, args ...interface{}) {
	s.log("ERROR", msg, args...)
}

func (s *DefaultLogger) log(kind string, msg string, args ...interface{}) {
	write := func(format string, args ...interface{}) {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := fmt.Sprintf(format, args...)
		s.wr.Write([]byte(p + "\n"))
	}
	kvs, err := formatArgs(args)
	if err != nil {
		write("ERROR Logger invalid args passed. Msg: %v Args: %v Err: %v", msg, args, err)
		return
	}
	if len(kvs) == 0 {
		write("%v %v", kind, msg)
		return
	}
	write("%v %v %v", kind, msg, kvs)
}

type nopLogger struct{}

func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}

type kv struct {
	K string
	V string
}

func formatArgs(args []interface{}) (res []kv, _ error) {
	if len(args)%2 != 0 {
		return nil, errors.New("len of args not even")
	}
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			return nil, errors.New("key arg passes in not a string")
		}
		v := fmt.Sprintf("%v", args[i+1])
		res = append(res, kv{k, v})
	}
	return
}
