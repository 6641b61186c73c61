package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/oklog/run"
	"github.com/owenthereal/tilde/editor"
	tildectx "github.com/owenthereal/tilde/internal/context"
	"github.com/owenthereal/tilde/metrics"
	"github.com/owenthereal/tilde/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errStdoutNotTerminal = errors.New("stdout is not a terminal")

func consoleRunE(c *cobra.Command, args []string) error {
	opts, logger, err := prepare(c)
	if err != nil {
		return err
	}
	defer logger.Close()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errStdoutNotTerminal
	}

	ctx := tildectx.WithLogger(c.Context(), logger)

	s, err := newSession(opts, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	tty := consoleIO{
		in:       os.Stdin,
		out:      s.out,
		geometry: terminal.FileGeometry(os.Stdout),
	}

	return runRaw(ctx, os.Stdin, func(ctx context.Context) error {
		return console(ctx, tty, s.inst)
	}, s.actors...)
}

// consoleIO is the terminal a console runs on. in must already be in raw
// mode.
type consoleIO struct {
	in       io.Reader
	out      io.Writer
	geometry terminal.Geometry
}

// console probes the window size and runs the editor until Ctrl-Q. On
// failure the screen is cleared and the cursor homed before the error is
// returned, so the caller restores the terminal onto a clean screen.
func console(ctx context.Context, tty consoleIO, inst *metrics.ConsoleInstruments) error {
	logger := tildectx.Logger(ctx)

	prober := &terminal.Prober{
		Geometry: tty.geometry,
		In:       tty.in,
		Out:      tty.out,
		OnFallback: func(cause error) {
			logger.Debug("direct window size query failed, asking for the cursor position", "error", cause)
			inst.ProbeFallbacks.Add(1)
		},
	}

	size, err := prober.Probe()
	if err != nil {
		_ = editor.ClearScreen(tty.out)
		return err
	}
	logger.Info("console started", "rows", size.Rows, "cols", size.Cols)

	ed := editor.New(editor.Options{
		Out:         tty.out,
		Keys:        terminal.NewKeyReader(tty.in),
		Size:        size,
		Logger:      logger,
		Instruments: inst,
	})
	if err := ed.Run(ctx); err != nil {
		_ = ed.ClearScreen()
		return err
	}

	logger.Info("console stopped")
	return nil
}

// runRaw runs fn with stdin in raw mode, next to a SIGTERM/SIGHUP handler
// and the given actors. The terminal is restored before runRaw returns,
// also when fn panics; the panic becomes the returned error. A
// signal-driven shutdown is not an error.
func runRaw(ctx context.Context, stdin *os.File, fn func(ctx context.Context) error, actors ...actor) (err error) {
	logger := tildectx.Logger(ctx)

	raw, err := terminal.EnterRawMode(stdin)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := raw.Restore(); rerr != nil {
			logger.Error("error restoring terminal", "error", rerr)
			err = appendError(err, rerr)
		}
	}()

	var g run.Group
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return fn(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		g.Add(run.SignalHandler(ctx, syscall.SIGTERM, syscall.SIGHUP))
	}
	for _, a := range actors {
		g.Add(a.execute, a.interrupt)
	}

	err = g.Run()

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		logger.Info("shutting down", "signal", sigErr.Signal.String())
		return nil
	}
	if err != nil {
		logger.Error("console failed", "error", err)
	}

	return err
}

// appendError keeps a single error unwrapped so its message stays
// "<op>: <err>".
func appendError(err, next error) error {
	if err == nil {
		return next
	}
	return multierror.Append(err, next)
}
