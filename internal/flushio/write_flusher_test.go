package flushio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteFlusherOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	wf := NewWriteFlusher(&buf)

	_, err := wf.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", buf.String(), "buffers need no flushing")
	assert.NoError(t, wf.Flush())
}

func TestNewWriteFlusherBuffersPlainWriters(t *testing.T) {
	var sb strings.Builder
	wf := NewWriteFlusher(onlyWriter{&sb})

	_, err := wf.Write([]byte("hi"))
	require.NoError(t, err)
	assert.Empty(t, sb.String(), "writes are buffered until flushed")
	require.NoError(t, wf.Flush())
	assert.Equal(t, "hi", sb.String())
}

func TestNewWriteFlusherIdempotent(t *testing.T) {
	var buf bytes.Buffer
	wf := NewWriteFlusher(&buf)
	assert.Equal(t, wf, NewWriteFlusher(wf))
}

func TestTee(t *testing.T) {
	var a, b bytes.Buffer
	wf := Tee(NewWriteFlusher(&a), NewWriteFlusher(&b))

	_, err := wf.Write([]byte("both"))
	require.NoError(t, err)
	require.NoError(t, wf.Flush())
	assert.Equal(t, "both", a.String())
	assert.Equal(t, "both", b.String())
}

type onlyWriter struct{ w *strings.Builder }

func (ow onlyWriter) Write(p []byte) (int, error) { return ow.w.Write(p) }
