//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	// readTimeout is VTIME: the longest a raw read waits, in deciseconds.
	readTimeout = 1
	// readMinimum is VMIN: a read may return with no bytes.
	readMinimum = 0
)

// RawMode is the handle for a terminal switched into raw mode. It holds the
// attributes captured before the switch, the only value Restore ever
// applies.
type RawMode struct {
	fd   int
	orig unix.Termios

	once sync.Once
	err  error
}

// EnterRawMode captures the attributes of the terminal behind f and switches
// it to raw mode: no echo, no line buffering, no signal keys, no output
// post-processing, and reads that return after at most one decisecond.
// Pending input is discarded. The caller must Restore the returned handle on
// every exit path.
func EnterRawMode(f *os.File) (*RawMode, error) {
	fd := int(f.Fd())

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, &TerminalQueryError{Op: opGetAttributes, Err: err}
	}

	m := &RawMode{fd: fd, orig: *orig}

	raw := makeRaw(m.orig)
	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &raw); err != nil {
		// The driver may have applied part of the change.
		_ = unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &m.orig)
		return nil, &TerminalConfigureError{Op: opSetAttributes, Err: err}
	}

	return m, nil
}

// Restore re-applies the captured attributes. Only the first call touches
// the terminal; later calls return the first call's result.
func (m *RawMode) Restore() error {
	m.once.Do(func() {
		if err := unix.IoctlSetTermios(m.fd, ioctlSetTermiosFlush, &m.orig); err != nil {
			m.err = &TerminalConfigureError{Op: opSetAttributes, Err: err}
		}
	})
	return m.err
}

// makeRaw derives the raw-mode attributes from orig.
func makeRaw(orig unix.Termios) unix.Termios {
	raw := orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = readMinimum
	raw.Cc[unix.VTIME] = readTimeout
	return raw
}
