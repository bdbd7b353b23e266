// Package log provides debug logging for the TUI. Messages are
// buffered in memory until a log file is configured, then flushed and
// appended to the file. With no file configured the buffer is bounded
// so a long session cannot grow it without limit.
package log

import (
	"log"
	"os"
	"sync"
)

// maxBuffered bounds the in-memory buffer used before SetFile is
// called. Older bytes are dropped once the cap is reached.
const maxBuffered = 512 * 1024

// debugWriter writes to the configured file, or buffers when none is
// set. It implements io.Writer so the standard log.Logger can format
// messages.
type debugWriter struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	writer = &debugWriter{}
	// stdLogger provides timestamps on every line.
	stdLogger = log.New(writer, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (w *debugWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.discard {
		return len(p), nil
	}

	if w.file != nil {
		n, err = w.file.Write(p)
		// Sync so messages survive a crash mid-session. Sync errors
		// are not worth failing a log line over.
		_ = w.file.Sync()
		return n, err
	}

	// The caller may reuse p, so copy before buffering.
	b := make([]byte, len(p))
	copy(b, p)
	w.buffer = append(w.buffer, b...)
	if over := len(w.buffer) - maxBuffered; over > 0 {
		w.buffer = w.buffer[over:]
	}
	return len(p), nil
}

// SetFile directs debug output to path, creating the file if needed
// and flushing anything buffered so far. An empty path discards all
// buffered and future output.
func SetFile(path string) error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file != nil {
		_ = writer.file.Close()
		writer.file = nil
	}

	if path == "" {
		writer.discard = true
		writer.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		writer.discard = true
		writer.buffer = nil
		return err
	}

	writer.file = f
	writer.discard = false

	if len(writer.buffer) > 0 {
		_, _ = f.Write(writer.buffer)
		_ = f.Sync()
		writer.buffer = nil
	}

	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file == nil {
		return nil
	}

	err := writer.file.Close()
	writer.file = nil
	return err
}
