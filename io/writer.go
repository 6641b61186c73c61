package io

import (
	"io"
)

func NewMultiWriter(primary io.Writer, mirrors ...io.Writer) *MultiWriter {
	return &MultiWriter{primary: primary, mirrors: mirrors}
}

// MultiWriter writes to a primary writer and copies whatever the primary
// accepted to every mirror. Write reports the primary's count and error, so
// a caller that resumes after a short write sends each byte to the mirrors
// exactly once.
type MultiWriter struct {
	primary io.Writer
	mirrors []io.Writer
}

func (t *MultiWriter) Write(p []byte) (int, error) {
	n, err := t.primary.Write(p)
	if n <= 0 {
		return n, err
	}

	for _, w := range t.mirrors {
		if merr := writeFull(w, p[:n]); merr != nil {
			return n, merr
		}
	}

	return n, err
}

// writeFull is for mirrors, which are regular files: a short write there is
// an error.
func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
