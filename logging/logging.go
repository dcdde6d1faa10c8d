// Package logging routes diagnostics for the command-line tool: matched
// pathnames on stdout, warnings and errors on stderr, and per-topic debug
// output gated by the -D flags.
package logging

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

type Logger struct {
	enableWarn    bool
	enableDebug   bool
	mudebugTopics sync.Mutex
	debugTopics   map[string]bool
	stdoutLogger  *log.Logger
	stderrLogger  *log.Logger
	warnLogger    *log.Logger
	debugLogger   *log.Logger
}

func NewLogger(stdout io.Writer, stderr io.Writer) *Logger {
	return &Logger{
		enableWarn:   true,
		enableDebug:  false,
		stdoutLogger: log.NewWithOptions(stdout, log.Options{}),
		stderrLogger: log.NewWithOptions(stderr, log.Options{}),
		warnLogger:   log.NewWithOptions(stderr, log.Options{Prefix: "warn"}),
		debugLogger:  log.NewWithOptions(stderr, log.Options{Prefix: "debug"}),
		debugTopics:  make(map[string]bool),
	}
}

func (l *Logger) Stdout(format string, args ...interface{}) {
	l.stdoutLogger.Printf(format, args...)
}

func (l *Logger) Stderr(format string, args ...interface{}) {
	l.stderrLogger.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.enableWarn {
		l.warnLogger.Printf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.stderrLogger.Printf(format, args...)
}

// Debug logs under a topic enabled through EnableDebug; the topic "all"
// enables every one.
func (l *Logger) Debug(topic string, format string, args ...interface{}) {
	if l.enableDebug {
		l.mudebugTopics.Lock()
		_, exists := l.debugTopics[topic]
		if !exists {
			_, exists = l.debugTopics["all"]
		}
		l.mudebugTopics.Unlock()
		if exists {
			l.debugLogger.Printf(topic+": "+format, args...)
		}
	}
}

func (l *Logger) DisableWarn() {
	l.enableWarn = false
}

// EnableDebug turns on the comma-separated debug topics, replacing any
// previously enabled set.
func (l *Logger) EnableDebug(topics string) {
	l.enableDebug = true
	l.debugTopics = make(map[string]bool)
	for _, topic := range strings.Split(topics, ",") {
		l.debugTopics[topic] = true
	}
}
