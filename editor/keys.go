package editor

import (
	"context"
	"io"

	"github.com/owenthereal/tilde/terminal"
)

// EchoKeys prints the code of every key read from keys, one per line, until
// Ctrl-Q. Output post-processing is off in raw mode, so lines end in CRLF.
func EchoKeys(ctx context.Context, keys KeyReader, out io.Writer) error {
	for {
		key, err := keys.ReadKey(ctx)
		if err != nil {
			return err
		}

		f := terminal.NewFrame(0)
		if err := appendStrings(f, key.String(), terminal.CRLF); err != nil {
			return err
		}
		if err := f.Flush(out); err != nil {
			return err
		}

		if key == terminal.KeyQuit {
			return nil
		}
	}
}
