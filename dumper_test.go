package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

func TestDumpFinalState(t *testing.T) {
	var out bytes.Buffer
	m := New(WithModule(helloModule()), WithOutput(&out))
	defer m.Close()
	require.NoError(t, m.Run(context.Background()))

	var dump strings.Builder
	machDumper{mach: m, out: &dump}.dump()
	snaps.MatchSnapshot(t, dump.String())
}

func TestDumpMidRun(t *testing.T) {
	entry := eLet("x", eNum(1), eMatch(eAp(ePack(1, 2), eLocal(1), eNum(2)),
		altn(eNum(0)),
		altn(addE(eLocal(2), eLocal(1)), "a", "b")))
	m := New(WithEntry(&entry))
	defer m.Close()

	m.ctrl = ctrl{kind: ctrlExpr, expr: m.entry}
	for i := 0; i < 6; i++ {
		m.step()
		m.steps++
	}
	var dump strings.Builder
	machDumper{mach: m, out: &dump}.dump()
	snaps.MatchSnapshot(t, dump.String())
}
