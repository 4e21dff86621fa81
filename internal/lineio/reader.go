// Package lineio provides buffered byte- and line-oriented reading with
// input-position tracking for user feedback.
package lineio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reader reads single bytes and whole lines from an underlying stream,
// tracking a 1-based line number and the stream's name.
type Reader struct {
	br   *bufio.Reader
	name string
	line int
}

// NewReader wraps r. If r implements Name() string that name is used in
// locations, otherwise a placeholder derived from its type.
func NewReader(r io.Reader) *Reader {
	name := fmt.Sprintf("<unnamed %T>", r)
	if nom, ok := r.(interface{ Name() string }); ok {
		name = nom.Name()
	}
	return &Reader{br: bufio.NewReader(r), name: name, line: 1}
}

// Name returns the name of the underlying stream.
func (rd *Reader) Name() string { return rd.name }

// Line returns the 1-based line number of the next unread byte.
func (rd *Reader) Line() int { return rd.line }

// Loc describes the current read position as "name:line".
func (rd *Reader) Loc() string { return fmt.Sprintf("%v:%v", rd.name, rd.line) }

// ReadByte reads one byte, advancing the line count past any line feed.
func (rd *Reader) ReadByte() (byte, error) {
	b, err := rd.br.ReadByte()
	if err == nil && b == '\n' {
		rd.line++
	}
	return b, err
}

// ReadLine reads up to and including the next line feed, returning the line
// without its terminator. A final unterminated line is returned with a nil
// error; io.EOF only when no bytes remain at all.
func (rd *Reader) ReadLine() (string, error) {
	s, err := rd.br.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	rd.line++
	return strings.TrimSuffix(s, "\n"), nil
}
