package provider

import (
	"fmt"
	"sync"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// captureLogger records every call so tests can assert on audit output.
type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) record(level, msg string, kv ...interface{}) {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) Info(msg string, kv ...interface{})  { l.record("INFO", msg, kv...) }
func (l *captureLogger) Error(msg string, kv ...interface{}) { l.record("ERROR", msg, kv...) }
func (l *captureLogger) Debug(msg string, kv ...interface{}) { l.record("DEBUG", msg, kv...) }
func (l *captureLogger) Warn(msg string, kv ...interface{})  { l.record("WARN", msg, kv...) }

func (l *captureLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

// panicLogger simulates a broken logging sink.
type panicLogger struct{}

func (panicLogger) Info(string, ...interface{})  { panic("sink down") }
func (panicLogger) Error(string, ...interface{}) { panic("sink down") }
func (panicLogger) Debug(string, ...interface{}) { panic("sink down") }
func (panicLogger) Warn(string, ...interface{})  { panic("sink down") }
