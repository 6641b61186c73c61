//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

import (
	"errors"
	"os"
)

// RawMode is unavailable on this platform.
type RawMode struct{}

// EnterRawMode always fails with errors.ErrUnsupported on this platform.
func EnterRawMode(f *os.File) (*RawMode, error) {
	return nil, &TerminalQueryError{Op: opGetAttributes, Err: errors.ErrUnsupported}
}

func (m *RawMode) Restore() error { return nil }
