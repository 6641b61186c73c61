package terminal

import (
	"io"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// DefaultFrameLimit caps a single frame. A full screen of a very large
	// terminal stays well below it.
	DefaultFrameLimit = 1 << 20

	defaultFrameCap = 4096

	flushAttempts   = 5
	flushRetryDelay = 2 * time.Millisecond
)

// Frame collects one complete screen update so it reaches the terminal in a
// single write. A Frame belongs to one refresh and is not reused.
type Frame struct {
	buf   []byte
	limit int
}

// NewFrame returns an empty frame holding at most limit bytes. A limit of
// zero or less selects DefaultFrameLimit.
func NewFrame(limit int) *Frame {
	if limit <= 0 {
		limit = DefaultFrameLimit
	}

	return &Frame{
		buf:   make([]byte, 0, min(defaultFrameCap, limit)),
		limit: limit,
	}
}

// Append adds p after the existing content. If that would exceed the frame
// limit nothing is appended and a *FrameOverflowError is returned.
func (f *Frame) Append(p []byte) error {
	if len(f.buf)+len(p) > f.limit {
		return &FrameOverflowError{Op: opAppendFrame, Len: len(f.buf) + len(p), Limit: f.limit}
	}

	f.buf = append(f.buf, p...)
	return nil
}

func (f *Frame) AppendString(s string) error {
	if len(f.buf)+len(s) > f.limit {
		return &FrameOverflowError{Op: opAppendFrame, Len: len(f.buf) + len(s), Limit: f.limit}
	}

	f.buf = append(f.buf, s...)
	return nil
}

func (f *Frame) Len() int { return len(f.buf) }

func (f *Frame) Bytes() []byte { return f.buf }

// Flush writes the whole frame to w. Short writes continue from where the
// previous write stopped and EAGAIN/EINTR are retried a few times. A write
// that makes no progress without reporting an error fails with
// io.ErrShortWrite.
func (f *Frame) Flush(w io.Writer) error {
	var off int
	err := retry.Do(
		func() error {
			for off < len(f.buf) {
				n, err := w.Write(f.buf[off:])
				off += n
				if err != nil {
					return err
				}
				if n == 0 {
					return io.ErrShortWrite
				}
			}
			return nil
		},
		retry.Attempts(flushAttempts),
		retry.Delay(flushRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return &OutputWriteError{Op: opWrite, Written: off, Err: err}
	}

	return nil
}
