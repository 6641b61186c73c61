package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/creack/pty"
)

// cursorResponseMax bounds the cursor-position reply. A well-formed reply
// such as ESC[9999;9999R is far shorter.
const cursorResponseMax = 32

var errZeroColumns = errors.New("terminal reports zero columns")

// WindowSize is the visible terminal area in character cells.
type WindowSize struct {
	Rows int
	Cols int
}

// CursorPosition is a decoded cursor-position report. Row and Col are
// 1-based, as the terminal reports them.
type CursorPosition struct {
	Row int
	Col int
}

// Geometry queries the terminal size directly.
type Geometry func() (WindowSize, error)

// FileGeometry asks the tty behind f for its size with TIOCGWINSZ.
func FileGeometry(f *os.File) Geometry {
	return func() (WindowSize, error) {
		ws, err := pty.GetsizeFull(f)
		if err != nil {
			return WindowSize{}, err
		}
		return WindowSize{Rows: int(ws.Rows), Cols: int(ws.Cols)}, nil
	}
}

// Prober determines the window size. It tries Geometry first and falls back
// to moving the cursor as far as it goes and asking the terminal where it
// ended up. The fallback writes to Out and reads the reply from In, so In
// must be in raw mode.
type Prober struct {
	Geometry Geometry
	In       io.Reader
	Out      io.Writer

	// OnFallback, if set, is called before the cursor-position protocol is
	// used. cause is the geometry error, or an error describing a zero-width
	// report.
	OnFallback func(cause error)
}

// Probe returns the window size or a *WindowSizeParseError.
func (p *Prober) Probe() (WindowSize, error) {
	if p.Geometry != nil {
		ws, err := p.Geometry()
		if err == nil && ws.Cols != 0 {
			return ws, nil
		}
		if err == nil {
			err = errZeroColumns
		}
		if p.OnFallback != nil {
			p.OnFallback(err)
		}
	}

	return p.probeCursor()
}

func (p *Prober) probeCursor() (WindowSize, error) {
	if err := writeSequence(p.Out, CursorMaxMove); err != nil {
		return WindowSize{}, &WindowSizeParseError{Op: opWindowSize, Err: err}
	}

	pos, err := QueryCursorPosition(p.In, p.Out)
	if err != nil {
		return WindowSize{}, err
	}

	return WindowSize{Rows: pos.Row, Cols: pos.Col}, nil
}

// QueryCursorPosition sends the cursor-position query to w and decodes the
// reply read from r. Bytes are read one at a time until the terminating 'R',
// a read that yields nothing, or cursorResponseMax bytes.
func QueryCursorPosition(r io.Reader, w io.Writer) (CursorPosition, error) {
	if err := writeSequence(w, CursorPositionQuery); err != nil {
		return CursorPosition{}, &WindowSizeParseError{Op: opWindowSize, Err: err}
	}

	var (
		buf        [cursorResponseMax]byte
		i          int
		terminated bool
	)
	for i < len(buf) {
		n, err := r.Read(buf[i : i+1])
		if n != 1 {
			if i == 0 {
				if err == nil || errors.Is(err, io.EOF) {
					err = errors.New("no cursor position response")
				}
				return CursorPosition{}, &WindowSizeParseError{Op: opWindowSize, Err: err}
			}
			break
		}
		if buf[i] == 'R' {
			terminated = true
			break
		}
		i++
	}

	if !terminated {
		return CursorPosition{}, &WindowSizeParseError{
			Op:  opWindowSize,
			Err: fmt.Errorf("unterminated cursor position response %q", buf[:i]),
		}
	}

	return parseCursorPosition(buf[:i])
}

// parseCursorPosition decodes "ESC [ row ; col" (the terminating 'R' already
// stripped).
func parseCursorPosition(b []byte) (CursorPosition, error) {
	malformed := func() error {
		return &WindowSizeParseError{
			Op:  opWindowSize,
			Err: fmt.Errorf("malformed cursor position response %q", b),
		}
	}

	if len(b) < 2 || b[0] != '\x1b' || b[1] != '[' {
		return CursorPosition{}, malformed()
	}

	fields := strings.Split(string(b[2:]), ";")
	if len(fields) != 2 {
		return CursorPosition{}, malformed()
	}

	var nums [2]int
	for i, field := range fields {
		n, ok := parseDecimal(field)
		if !ok {
			return CursorPosition{}, malformed()
		}
		nums[i] = n
	}

	return CursorPosition{Row: nums[0], Col: nums[1]}, nil
}

// parseDecimal accepts plain ASCII digits only; no sign, no spaces.
func parseDecimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeSequence(w io.Writer, seq string) error {
	f := NewFrame(len(seq))
	if err := f.AppendString(seq); err != nil {
		return err
	}
	return f.Flush(w)
}
