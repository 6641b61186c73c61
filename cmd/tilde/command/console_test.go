package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/google/go-cmp/cmp"
	"github.com/owenthereal/tilde/internal/logging"
	"github.com/owenthereal/tilde/metrics"
	"github.com/owenthereal/tilde/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errReader struct {
	err error
}

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }

func TestConsole_ProbeErrorClearsScreen(t *testing.T) {
	t.Parallel()

	fallbacks := generic.NewCounter("fallbacks")
	inst := metrics.DiscardInstruments()
	inst.ProbeFallbacks = fallbacks

	var out bytes.Buffer
	err := console(context.Background(), consoleIO{
		in:  bytes.NewReader(nil),
		out: &out,
		geometry: func() (terminal.WindowSize, error) {
			return terminal.WindowSize{}, syscall.ENOTTY
		},
	}, inst)

	var sizeErr *terminal.WindowSizeParseError
	require.ErrorAs(t, err, &sizeErr)
	assert.InDelta(t, 1, fallbacks.Value(), 0)

	want := terminal.CursorMaxMove + terminal.CursorPositionQuery + terminal.ClearScreen + terminal.CursorHome
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConsole_RunErrorClearsScreen(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := console(context.Background(), consoleIO{
		in:  errReader{err: syscall.EIO},
		out: &out,
		geometry: func() (terminal.WindowSize, error) {
			return terminal.WindowSize{Rows: 2, Cols: 80}, nil
		},
	}, metrics.DiscardInstruments())

	var readErr *terminal.InputReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, syscall.EIO)

	want := "\x1b[?25l\x1b[2J\x1b[H~\r\n~\x1b[H\x1b[?25h" + terminal.ClearScreen + terminal.CursorHome
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConsole_QuitsOnCtrlQ(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := console(context.Background(), consoleIO{
		in:  bytes.NewReader([]byte{'a', byte(terminal.KeyQuit)}),
		out: &out,
		geometry: func() (terminal.WindowSize, error) {
			return terminal.WindowSize{Rows: 1, Cols: 80}, nil
		},
	}, metrics.DiscardInstruments())

	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte(terminal.CursorHide)))
}

func TestSession_Record(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.rec")
	var stdout bytes.Buffer

	s, err := newSession(&options{Record: path}, logging.Discard(), &stdout)
	require.NoError(t, err)
	assert.Empty(t, s.actors)

	_, err = s.out.Write([]byte("~" + terminal.CursorPositionQuery + "\r\n"))
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, "~\x1b[6n\r\n", stdout.String())
	rec, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "~\r\n", string(rec), "queries are kept out of the recording")
}

func TestSession_RecordOpenError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "session.rec")
	_, err := newSession(&options{Record: path}, logging.Discard(), &bytes.Buffer{})

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSession_MetricAddr(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	s, err := newSession(&options{MetricAddr: "127.0.0.1:0"}, logging.Discard(), &stdout)
	require.NoError(t, err)
	defer s.Close()

	require.Len(t, s.actors, 1)
	assert.Same(t, &stdout, s.out)

	// interrupting first keeps the server from starting
	s.actors[0].interrupt(nil)
	assert.NoError(t, s.actors[0].execute())
}

func TestCountedKeys(t *testing.T) {
	t.Parallel()

	count := generic.NewCounter("keys")
	keys := countedKeys{
		KeyReader: terminal.NewKeyReader(bytes.NewReader([]byte{'x', 'y'})),
		count:     count,
	}

	for _, want := range []terminal.Key{'x', 'y'} {
		got, err := keys.ReadKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.InDelta(t, 2, count.Value(), 0)

	failing := countedKeys{KeyReader: terminal.NewKeyReader(errReader{err: syscall.EIO}), count: count}
	_, err := failing.ReadKey(context.Background())
	assert.ErrorIs(t, err, syscall.EIO)
	assert.InDelta(t, 2, count.Value(), 0)
}
