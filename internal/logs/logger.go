package logs

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

// levelPriority defines the priority of each log level
// higher value = more severe
var levelPriority = map[Level]int{
	DEBUG: 1,
	INFO:  2,
	WARN:  3,
	ERROR: 4,
}

// ParseLevel maps a case-insensitive level name to a Level.
func ParseLevel(s string) (Level, error) {
	lvl := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelPriority[lvl]; !ok {
		return "", fmt.Errorf("logs: unknown level %q", s)
	}
	return lvl, nil
}

type Entry struct {
	TimeStamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Component string    `json:"component,omitempty"`
	Message   string    `json:"message"`
}

func (e Entry) String() string {
	if e.Component == "" {
		return fmt.Sprintf("%s %-5s %s", e.TimeStamp.Format(time.RFC3339), e.Level, e.Message)
	}
	return fmt.Sprintf("%s %-5s [%s] %s", e.TimeStamp.Format(time.RFC3339), e.Level, e.Component, e.Message)
}

// ring is the shared bounded buffer behind a logger and its named children.
type ring struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
	out     io.Writer
}

type Logger struct {
	ring      *ring
	level     Level
	component string
}

// level: minimum log level to record (DEBUG, INFO, WARN, ERROR)
//
// maxSize: maximum number of log entries kept in memory
func NewLogger(maxSize int, level Level) *Logger {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Logger{
		ring: &ring{
			entries: make([]Entry, 0, maxSize),
			maxSize: maxSize,
		},
		level: level,
	}
}

// Named returns a logger that tags entries with component and shares
// the receiver's buffer, level and output.
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		ring:      l.ring,
		level:     l.level,
		component: component,
	}
}

// SetOutput mirrors every recorded entry to w. A nil w disables mirroring.
func (l *Logger) SetOutput(w io.Writer) {
	l.ring.mu.Lock()
	defer l.ring.mu.Unlock()
	l.ring.out = w
}

// log applies level filtering and ring buffer behavior
func (l *Logger) log(level Level, msg string) {
	if levelPriority[level] < levelPriority[l.level] {
		return
	}

	entry := Entry{
		TimeStamp: time.Now(),
		Level:     level,
		Component: l.component,
		Message:   msg,
	}

	r := l.ring
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= r.maxSize {
		// drop oldest
		r.entries = r.entries[1:]
	}
	r.entries = append(r.entries, entry)

	if r.out != nil {
		_, _ = io.WriteString(r.out, entry.String()+"\n")
	}
}

func (l *Logger) Debug(msg string) {
	l.log(DEBUG, msg)
}

func (l *Logger) Info(msg string) {
	l.log(INFO, msg)
}

func (l *Logger) Warn(msg string) {
	l.log(WARN, msg)
}

func (l *Logger) Error(msg string) {
	l.log(ERROR, msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(WARN, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

// GetLast returns a copy of the newest n entries, oldest first.
func (l *Logger) GetLast(n int) []Entry {
	r := l.ring
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > len(r.entries) {
		n = len(r.entries)
	}
	if n < 0 {
		n = 0
	}

	start := len(r.entries) - n
	out := make([]Entry, n)
	copy(out, r.entries[start:])
	return out
}
