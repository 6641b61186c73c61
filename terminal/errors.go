package terminal

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

const (
	opGetAttributes = "get terminal attributes"
	opSetAttributes = "set terminal attributes"
	opRead          = "read"
	opWrite         = "write"
	opWindowSize    = "get window size"
	opAppendFrame   = "append frame"
)

// ErrFrameLimit is wrapped by FrameOverflowError.
var ErrFrameLimit = errors.New("frame limit exceeded")

// TerminalQueryError reports that the terminal attributes could not be read.
type TerminalQueryError struct {
	Op  string
	Err error
}

func (e *TerminalQueryError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TerminalQueryError) Unwrap() error { return e.Err }

// TerminalConfigureError reports that applying or restoring terminal
// attributes failed.
type TerminalConfigureError struct {
	Op  string
	Err error
}

func (e *TerminalConfigureError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TerminalConfigureError) Unwrap() error { return e.Err }

// InputReadError reports a read failure other than the read timeout.
type InputReadError struct {
	Op  string
	Err error
}

func (e *InputReadError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *InputReadError) Unwrap() error { return e.Err }

// WindowSizeParseError reports that neither the direct geometry query nor
// the cursor-position protocol produced a window size.
type WindowSizeParseError struct {
	Op  string
	Err error
}

func (e *WindowSizeParseError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *WindowSizeParseError) Unwrap() error { return e.Err }

// FrameOverflowError reports an append that would grow a frame past its
// limit. The frame is left unchanged.
type FrameOverflowError struct {
	Op    string
	Len   int
	Limit int
}

func (e *FrameOverflowError) Error() string {
	return fmt.Sprintf("%s: %s (%d bytes, limit %d)", e.Op, ErrFrameLimit, e.Len, e.Limit)
}

func (e *FrameOverflowError) Unwrap() error { return ErrFrameLimit }

// OutputWriteError reports that a frame could not be written in full.
type OutputWriteError struct {
	Op      string
	Written int
	Err     error
}

func (e *OutputWriteError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *OutputWriteError) Unwrap() error { return e.Err }

// isTransient reports errors after which the same read or write is retried.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EINTR) ||
		errors.Is(err, os.ErrDeadlineExceeded)
}
