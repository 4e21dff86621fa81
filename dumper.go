package main

import (
	"fmt"
	"io"
)

// machDumper prints a machine's state: control focus, environment stack
// top-first in Local addressing order, and pending continuation frames.
type machDumper struct {
	mach *Mach
	out  io.Writer
}

func (dump machDumper) dump() {
	m := dump.mach
	fmt.Fprintf(dump.out, "# Mach Dump\n")
	fmt.Fprintf(dump.out, "  steps: %v\n", m.steps)
	fmt.Fprintf(dump.out, "  ctrl: %v\n", m.ctrl)

	fmt.Fprintf(dump.out, "  env: %v\n", len(m.env.stack))
	for idx := 1; idx <= len(m.env.stack); idx++ {
		v, _ := m.env.get(idx)
		fmt.Fprintf(dump.out, "    @%v %v\n", idx, v)
	}

	fmt.Fprintf(dump.out, "  kont: %v\n", len(m.kont))
	for i := len(m.kont) - 1; i >= 0; i-- {
		fmt.Fprintf(dump.out, "    [%v] %v\n", len(m.kont)-1-i, m.kont[i])
	}
}
