package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/owenthereal/tilde/internal/logging"
	uio "github.com/owenthereal/tilde/io"
	"github.com/owenthereal/tilde/metrics"
)

type actor struct {
	execute   func() error
	interrupt func(error)
}

// session is what the console and keys commands share: the stream frames
// are flushed to, the instruments, and the actors that run next to the
// terminal loop.
type session struct {
	out    io.Writer
	inst   *metrics.ConsoleInstruments
	actors []actor

	provider provider.Provider
	record   *os.File
}

// newSession applies --record and --metric-addr. The caller closes the
// session.
func newSession(opts *options, logger *logging.Logger, stdout io.Writer) (*session, error) {
	s := &session{
		out:      stdout,
		provider: metrics.NewProvider(opts.MetricAddr != ""),
	}
	s.inst = metrics.NewConsoleInstruments(s.provider)

	if opts.Record != "" {
		f, err := os.OpenFile(opts.Record, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("error opening record file: %w", err)
		}

		s.record = f
		s.out = uio.NewMultiWriter(stdout, uio.NewQueryFilter(f))
		logger.Info("recording output", "file", opts.Record)
	}

	if opts.MetricAddr != "" {
		srv := &metrics.Server{}
		s.actors = append(s.actors, actor{
			execute: func() error {
				logger.Info("serving metrics", "addr", opts.MetricAddr)
				return srv.ListenAndServe(opts.MetricAddr)
			},
			interrupt: func(err error) {
				_ = srv.Shutdown(context.Background())
			},
		})
	}

	return s, nil
}

func (s *session) Close() {
	if s.record != nil {
		_ = s.record.Close()
	}
	s.provider.Stop()
}
