// Package flushio provides flush-able writer wrappers so that buffered
// output can be forced out before an interactive read or a final exit.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher wraps w in a WriteFlusher. In-memory buffers (anything
// shaped like bytes.Buffer or strings.Builder) get a no-op Flush; writers
// that already flush are returned as-is; everything else goes through a
// bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Tee returns a WriteFlusher that duplicates writes to both a and b, in that
// order; a short or failed write stops at the first writer that misbehaved.
func Tee(a, b WriteFlusher) WriteFlusher { return tee{a, b} }

type tee struct{ a, b WriteFlusher }

func (t tee) Write(p []byte) (int, error) {
	n, err := t.a.Write(p)
	if err != nil {
		return n, err
	}
	return t.b.Write(p)
}

func (t tee) Flush() error {
	err := t.a.Flush()
	if berr := t.b.Flush(); err == nil {
		err = berr
	}
	return err
}
