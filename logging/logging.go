package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// New builds the root logger. Packages derive their own with WithPrefix.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pawbs",
		Level:           level,
	})
}

// ErrorLog appends fatal errors to a file, one logfmt line each.
type ErrorLog struct {
	mu     sync.Mutex
	file   io.WriteCloser
	logger *log.Logger
}

// OpenErrorLog opens path for appending, creating it if needed.
func OpenErrorLog(path string) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return newErrorLog(f), nil
}

func newErrorLog(w io.WriteCloser) *ErrorLog {
	return &ErrorLog{
		file: w,
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		}),
	}
}

// Record appends err. A nil log or error is ignored.
func (e *ErrorLog) Record(err error) {
	if e == nil || err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.logger == nil {
		return
	}
	e.logger.Error("fatal", "err", err)
}

func (e *ErrorLog) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	e.logger = nil
	return err
}
