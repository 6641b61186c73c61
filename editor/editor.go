package editor

import (
	"context"
	"io"
	"time"

	"github.com/owenthereal/tilde/internal/logging"
	"github.com/owenthereal/tilde/metrics"
	"github.com/owenthereal/tilde/terminal"
)

// State is the input loop state.
type State int

const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// KeyReader is the input side of the console.
type KeyReader interface {
	ReadKey(ctx context.Context) (terminal.Key, error)
}

type Options struct {
	Out  io.Writer
	Keys KeyReader
	Size terminal.WindowSize

	// FrameLimit caps a single frame; zero selects terminal.DefaultFrameLimit.
	FrameLimit int

	Logger      *logging.Logger
	Instruments *metrics.ConsoleInstruments
}

// Editor renders the screen and dispatches keys until Ctrl-Q.
type Editor struct {
	out        io.Writer
	keys       KeyReader
	size       terminal.WindowSize
	frameLimit int

	logger *logging.Logger
	inst   *metrics.ConsoleInstruments

	state State
}

func New(opts Options) *Editor {
	e := &Editor{
		out:        opts.Out,
		keys:       opts.Keys,
		size:       opts.Size,
		frameLimit: opts.FrameLimit,
		logger:     opts.Logger,
		inst:       opts.Instruments,
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	if e.inst == nil {
		e.inst = metrics.DiscardInstruments()
	}

	return e
}

func (e *Editor) State() State { return e.state }

// Run refreshes the screen and handles one key per iteration. It returns nil
// after Ctrl-Q, or the first render, read or write error. Cancelling ctx ends
// the loop within one read timeout.
func (e *Editor) Run(ctx context.Context) error {
	e.state = Running
	e.logger.Debug("input loop started", "rows", e.size.Rows, "cols", e.size.Cols)

	for e.state == Running {
		if err := e.Refresh(); err != nil {
			return err
		}

		key, err := e.keys.ReadKey(ctx)
		if err != nil {
			return err
		}

		if err := e.processKey(key); err != nil {
			return err
		}
	}

	e.logger.Debug("input loop finished", "state", e.state)
	return nil
}

func (e *Editor) processKey(key terminal.Key) error {
	e.inst.Keys.Add(1)

	switch key {
	case terminal.KeyQuit:
		if err := e.ClearScreen(); err != nil {
			return err
		}
		e.state = Terminating
	default:
		e.logger.Debug("unbound key", "key", key.String())
	}

	return nil
}

// Refresh draws one full frame and writes it in a single flush.
func (e *Editor) Refresh() error {
	defer metrics.MeasureSince(e.inst.RefreshDuration, time.Now())

	f := terminal.NewFrame(e.frameLimit)
	if err := appendStrings(f, terminal.CursorHide, terminal.ClearScreen, terminal.CursorHome); err != nil {
		return err
	}
	if err := e.drawRows(f); err != nil {
		return err
	}
	if err := appendStrings(f, terminal.CursorHome, terminal.CursorShow); err != nil {
		return err
	}

	if err := f.Flush(e.out); err != nil {
		return err
	}

	e.inst.Frames.Add(1)
	e.inst.FrameBytes.Observe(float64(f.Len()))
	return nil
}

// drawRows puts a marker on every row. The last row is not terminated so
// the terminal does not scroll.
func (e *Editor) drawRows(f *terminal.Frame) error {
	for y := 0; y < e.size.Rows; y++ {
		if err := f.AppendString(terminal.RowMarker); err != nil {
			return err
		}
		if y < e.size.Rows-1 {
			if err := f.AppendString(terminal.CRLF); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Editor) ClearScreen() error {
	return ClearScreen(e.out)
}

// ClearScreen wipes the screen and homes the cursor, leaving a clean
// terminal for whatever is printed after raw mode ends.
func ClearScreen(w io.Writer) error {
	f := terminal.NewFrame(0)
	if err := appendStrings(f, terminal.ClearScreen, terminal.CursorHome); err != nil {
		return err
	}
	return f.Flush(w)
}

func appendStrings(f *terminal.Frame, ss ...string) error {
	for _, s := range ss {
		if err := f.AppendString(s); err != nil {
			return err
		}
	}
	return nil
}
