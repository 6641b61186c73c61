package terminal

import (
	"bytes"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

// chunkWriter accepts at most chunk bytes per call without reporting an
// error, like a terminal that takes a frame in pieces.
type chunkWriter struct {
	bytes.Buffer
	chunk int
	calls int
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.calls++
	if len(p) > w.chunk {
		p = p[:w.chunk]
	}
	return w.Buffer.Write(p)
}

// flakyWriter fails with err a number of times before writing normally.
type flakyWriter struct {
	bytes.Buffer
	failures int
	err      error
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.failures > 0 {
		w.failures--
		return 0, w.err
	}
	return w.Buffer.Write(p)
}

type stalledWriter struct{}

func (stalledWriter) Write(p []byte) (int, error) { return 0, nil }

func TestFrame_Append(t *testing.T) {
	t.Parallel()

	f := NewFrame(0)
	require.NoError(t, f.AppendString(CursorHide))
	require.NoError(t, f.Append([]byte(RowMarker)))
	require.NoError(t, f.AppendString(CRLF))

	assert.Equal(t, "\x1b[?25l~\r\n", string(f.Bytes()))
	assert.Equal(t, 9, f.Len())
}

func TestFrame_AppendOverLimit(t *testing.T) {
	t.Parallel()

	f := NewFrame(8)
	require.NoError(t, f.AppendString("12345"))

	err := f.AppendString("6789")

	var overflow *FrameOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.ErrorIs(t, err, ErrFrameLimit)
	assert.Equal(t, 9, overflow.Len)
	assert.Equal(t, 8, overflow.Limit)
	assert.Equal(t, "12345", string(f.Bytes()), "rejected append must leave the frame unchanged")

	err = f.Append([]byte("6789"))
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "12345", string(f.Bytes()))

	require.NoError(t, f.AppendString("678"))
	assert.Equal(t, "12345678", string(f.Bytes()))
}

func TestFrame_FlushSingleWrite(t *testing.T) {
	t.Parallel()

	w := &chunkWriter{chunk: 1 << 16}
	f := NewFrame(0)
	require.NoError(t, f.AppendString(strings.Repeat("~\r\n", 100)))

	require.NoError(t, f.Flush(w))
	assert.Equal(t, 1, w.calls)
	assert.Equal(t, strings.Repeat("~\r\n", 100), w.String())
}

func TestFrame_FlushPartialWrites(t *testing.T) {
	t.Parallel()

	w := &chunkWriter{chunk: 7}
	f := NewFrame(0)
	payload := strings.Repeat("~\r\n", 23) + "~"
	require.NoError(t, f.AppendString(payload))

	require.NoError(t, f.Flush(w))
	assert.Equal(t, payload, w.String())
	assert.Equal(t, (len(payload)+6)/7, w.calls)
}

func TestFrame_FlushRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	for _, errno := range []syscall.Errno{syscall.EAGAIN, syscall.EINTR} {
		t.Run(errno.Error(), func(t *testing.T) {
			t.Parallel()

			w := &flakyWriter{failures: 2, err: errno}
			f := NewFrame(0)
			require.NoError(t, f.AppendString(ClearScreen))

			require.NoError(t, f.Flush(w))
			assert.Equal(t, ClearScreen, w.String())
		})
	}
}

func TestFrame_FlushGivesUpOnPersistentTransientError(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{failures: flushAttempts, err: syscall.EAGAIN}
	f := NewFrame(0)
	require.NoError(t, f.AppendString(ClearScreen))

	err := f.Flush(w)

	var writeErr *OutputWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, syscall.EAGAIN)
}

func TestFrame_FlushErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w       io.Writer
		wantErr error
	}{
		{name: "fatal", w: failingWriter{err: syscall.EIO}, wantErr: syscall.EIO},
		{name: "no progress", w: stalledWriter{}, wantErr: io.ErrShortWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewFrame(0)
			require.NoError(t, f.AppendString(CursorHome))

			err := f.Flush(tt.w)

			var writeErr *OutputWriteError
			require.ErrorAs(t, err, &writeErr)
			assert.Equal(t, "write", writeErr.Op)
			assert.Equal(t, 0, writeErr.Written)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFrame_FlushEmpty(t *testing.T) {
	t.Parallel()

	w := &chunkWriter{chunk: 1}
	require.NoError(t, NewFrame(0).Flush(w))
	assert.Equal(t, 0, w.calls)
}
