package io

import (
	"io"
)

// maxPendingQuery bounds a held-back CSI sequence. Every query filtered here
// is far shorter, so anything longer is released untouched.
const maxPendingQuery = 16

// QueryFilter drops terminal query sequences from a byte stream before it
// reaches w, so a recorded session can be replayed with cat without the
// replaying terminal answering into its own input.
//
// Filtered queries:
//   - CSI 5 n (device status request)
//   - CSI 6 n (cursor position request)
//   - CSI c, CSI 0 c (primary device attributes)
//   - CSI > c, CSI > 0 c (secondary device attributes)
//   - CSI = c, CSI = 0 c (tertiary device attributes)
//
// A sequence split across writes is held back until it is complete.
type QueryFilter struct {
	w       io.Writer
	pending []byte
	out     []byte
}

func NewQueryFilter(w io.Writer) *QueryFilter {
	return &QueryFilter{
		w:       w,
		pending: make([]byte, 0, maxPendingQuery+1),
		out:     make([]byte, 0, 4096),
	}
}

// Write reports len(p) once the filtered bytes are written. Input and output
// lengths differ, so a failed write reports 0.
func (f *QueryFilter) Write(p []byte) (int, error) {
	f.out = f.out[:0]
	for _, b := range p {
		f.feed(b)
	}

	if len(f.out) > 0 {
		if _, err := f.w.Write(f.out); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

func (f *QueryFilter) feed(b byte) {
	switch len(f.pending) {
	case 0:
		if b == 0x1b {
			f.pending = append(f.pending, b)
			return
		}
		f.out = append(f.out, b)

	case 1:
		switch b {
		case '[':
			f.pending = append(f.pending, b)
		case 0x1b:
			// the first ESC was not a CSI introducer; the second may be
			f.out = append(f.out, 0x1b)
		default:
			f.pending = append(f.pending, b)
			f.release()
		}

	default:
		f.pending = append(f.pending, b)
		if isQueryParam(b) {
			if len(f.pending) > maxPendingQuery {
				f.release()
			}
			return
		}

		params := f.pending[2 : len(f.pending)-1]
		if isQuery(params, b) {
			f.pending = f.pending[:0]
			return
		}
		f.release()
	}
}

func (f *QueryFilter) release() {
	f.out = append(f.out, f.pending...)
	f.pending = f.pending[:0]
}

func isQueryParam(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';' || b == '>' || b == '?' || b == '='
}

func isQuery(params []byte, final byte) bool {
	switch final {
	case 'n':
		return string(params) == "5" || string(params) == "6"
	case 'c':
		switch string(params) {
		case "", "0", ">", ">0", "=", "=0":
			return true
		}
	}
	return false
}
