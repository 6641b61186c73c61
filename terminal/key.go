package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Key is a single decoded input byte.
type Key byte

// KeyQuit is Ctrl-Q.
const KeyQuit = Key('q' & 0x1f)

// Ctrl returns the code a terminal sends for c pressed together with Ctrl:
// c with the upper three bits cleared.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// IsControl reports whether k is a non-printable ASCII control code.
func (k Key) IsControl() bool {
	return k < 0x20 || k == 0x7f
}

// String formats k as its decimal code, followed by the byte itself when it
// is not a control code, e.g. `113 ('q')`. Bytes above 0x7f are written
// as is, not re-encoded as UTF-8.
func (k Key) String() string {
	if k.IsControl() {
		return strconv.Itoa(int(k))
	}
	return fmt.Sprintf("%d ('%s')", k, []byte{byte(k)})
}

// KeyReader reads one key per call from a raw-mode input stream.
//
// In raw mode a read waits at most one decisecond and may return without
// data. *os.File reports that as (0, io.EOF); other readers may return
// (0, nil) or EAGAIN. All of these are timeouts and are retried, which means
// a reader that is genuinely at end of input is polled until ctx is done.
type KeyReader struct {
	r   io.Reader
	buf [1]byte
}

func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r}
}

// ReadKey blocks until exactly one byte has been read, a read fails for a
// reason other than a timeout, or ctx is done.
func (kr *KeyReader) ReadKey(ctx context.Context) (Key, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := kr.r.Read(kr.buf[:])
		if n == 1 {
			return Key(kr.buf[0]), nil
		}
		if err == nil || errors.Is(err, io.EOF) || isTransient(err) {
			continue
		}

		return 0, &InputReadError{Op: opRead, Err: err}
	}
}
