package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hurryabit/ruceki/internal/panicerr"
)

// New builds a machine from the default options (empty module, canonical
// entry point, empty input, discarded output) overridden by opts.
func New(opts ...Option) *Mach {
	var m Mach
	defaultOptions.apply(&m)
	Options(opts...).apply(&m)
	if m.module == nil {
		m.module = Module{}
	}
	if m.entry == nil {
		m.entry = entryPoint()
	}
	return &m
}

// Run drives the machine until its focus is a final value. Fatal evaluator
// conditions and I/O failures are returned as errors; the machine is not
// reusable after Run returns.
func (m *Mach) Run(ctx context.Context) error {
	err := panicerr.Recover("Mach", func() error {
		return m.run(ctx)
	})
	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	return err
}

// Steps returns how many transitions the machine has taken.
func (m *Mach) Steps() uint64 { return m.steps }

// Final returns the machine's answer after a successful Run, nil otherwise.
func (m *Mach) Final() *Value {
	if !m.isFinal() {
		return nil
	}
	return m.ctrl.val
}

// Close closes the output and tee writers given as options that implement
// io.Closer, in reverse order; inputs are not closed.
func (m *Mach) Close() (err error) {
	for i := len(m.closers) - 1; i >= 0; i-- {
		if cerr := m.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt aborts the run: flush what output we can, log, and panic a typed
// error for Run to recover.
func (m *Mach) halt(err error) {
	if m.out != nil {
		if ferr := m.out.Flush(); err == nil {
			err = ferr
		}
	}
	err = haltError{err}
	m.logf("#", "halt error: %v", err)
	panic(err)
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("machine halted: %v", err.error)
	}
	return "machine halted"
}

func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
	codeWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
