package main

import (
	"bytes"
	"io"

	"github.com/hurryabit/ruceki/internal/flushio"
	"github.com/hurryabit/ruceki/internal/lineio"
)

// Option configures a machine under construction.
type Option interface{ apply(m *Mach) }

var defaultOptions = Options(
	withInput(bytes.NewReader(nil)),
	withOutput(io.Discard),
)

// WithModule sets the module globals resolve against.
func WithModule(module Module) Option { return moduleOption(module) }

// WithEntry overrides the canonical entry expression.
func WithEntry(entry *Expr) Option { return entryOption{entry} }

// WithInput sets the stream the input built-ins read from.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithOutput sets the stream the output built-ins write to.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee duplicates machine output into w as well.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf enables per-step trace logging through the given function.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// Options merges any number of options into one.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(m *Mach) {}

type options []Option

func (opts options) apply(m *Mach) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(m)
		}
	}
}

type moduleOption Module
type entryOption struct{ entry *Expr }
type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})

func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (module moduleOption) apply(m *Mach) { m.module = Module(module) }

func (o entryOption) apply(m *Mach) { m.entry = o.entry }

func (i inputOption) apply(m *Mach) {
	m.in = lineio.NewReader(i.Reader)
}

func (o outputOption) apply(m *Mach) {
	if m.out != nil {
		m.out.Flush()
	}
	m.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		m.closers = append(m.closers, cl)
	}
}

func (o teeOption) apply(m *Mach) {
	m.out = flushio.Tee(m.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		m.closers = append(m.closers, cl)
	}
}

func (logfn withLogfn) apply(m *Mach) {
	m.logfn = logfn
}
