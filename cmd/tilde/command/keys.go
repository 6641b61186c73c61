package command

import (
	"context"
	"os"

	"github.com/go-kit/kit/metrics"
	"github.com/owenthereal/tilde/editor"
	tildectx "github.com/owenthereal/tilde/internal/context"
	"github.com/owenthereal/tilde/terminal"
	"github.com/spf13/cobra"
)

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the code of every key pressed",
		Long: `Put the terminal in raw mode and print the decimal code of every key read,
followed by the character for printable keys. Press Ctrl-Q to stop.
The --record and --metric-addr flags work as they do for tilde.`,
		Example: `  # Show what the terminal sends for the arrow keys:
  tilde keys`,
		Args: cobra.NoArgs,
		RunE: keysRunE,
	}

	return cmd
}

func keysRunE(c *cobra.Command, args []string) error {
	opts, logger, err := prepare(c)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := tildectx.WithLogger(c.Context(), logger)

	s, err := newSession(opts, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	keys := countedKeys{KeyReader: terminal.NewKeyReader(os.Stdin), count: s.inst.Keys}
	return runRaw(ctx, os.Stdin, func(ctx context.Context) error {
		return editor.EchoKeys(ctx, keys, s.out)
	}, s.actors...)
}

// countedKeys counts every key read through it.
type countedKeys struct {
	editor.KeyReader
	count metrics.Counter
}

func (k countedKeys) ReadKey(ctx context.Context) (terminal.Key, error) {
	key, err := k.KeyReader.ReadKey(ctx)
	if err == nil {
		k.count.Add(1)
	}
	return key, err
}
