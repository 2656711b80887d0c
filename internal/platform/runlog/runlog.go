// Package runlog collects the recoverable errors of one pipeline run and
// appends them to the user-facing error log file
package runlog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/logger"

	"github.com/google/uuid"
)

// now is a seam for tests
var now = time.Now

// Log is an append-only list of recoverable errors
type Log struct {
	mu      sync.Mutex
	entries []string
	log     *logger.Logger
}

// New returns an empty Log that also mirrors each entry to log at error level (nil uses the root logger)
func New(log *logger.Logger) *Log {
	if log == nil {
		log = logger.Get()
	}
	return &Log{log: log}
}

// Start opens a run: ctx gets a fresh run id and the returned Log mirrors
// entries to a logger carrying that id and component
func Start(ctx context.Context, component string) (context.Context, *Log) {
	ctx = logger.WithRun(ctx, uuid.NewString())
	l := logger.C(ctx).With().Str("component", component).Logger()
	return ctx, New(&l)
}

// Logger returns the logger entries are mirrored to
func (l *Log) Logger() *logger.Logger { return l.log }

// Add records err; nil is ignored
func (l *Log) Add(err error) {
	if err == nil {
		return
	}
	l.add(err.Error(), err)
}

// Addf records a formatted message
func (l *Log) Addf(format string, a ...any) {
	l.add(fmt.Sprintf(format, a...), nil)
}

func (l *Log) add(msg string, err error) {
	l.mu.Lock()
	l.entries = append(l.entries, msg)
	l.mu.Unlock()
	evt := l.log.Error()
	if err != nil {
		evt = evt.Str("kind", perr.CodeOf(err).String())
	}
	evt.Msg(msg)
}

// Len returns the number of recorded errors
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Messages returns a copy of the recorded messages in order
func (l *Log) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

// Flush appends one timestamped block with every recorded error to path.
// Nothing is written when the log is empty
func (l *Log) Flush(path string) error {
	msgs := l.Messages()
	if len(msgs) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Log Entry: %s ---\n", now().Format("2006-01-02 15:04:05"))
	for _, m := range msgs {
		fmt.Fprintf(&b, "- %s\n", m)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "open error log %s", path)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return perr.Wrapf(err, perr.ErrorCodeIO, "write error log %s", path)
	}
	if err := f.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "close error log %s", path)
	}
	return nil
}
