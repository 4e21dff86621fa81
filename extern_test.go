package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternArith(t *testing.T) {
	machTestCases{
		machTest("add").
			withEntry(addE(eNum(2), eNum(3))).expectFinal("5"),
		machTest("add wraps").
			withEntry(addE(eNum(math.MaxInt64), eNum(1))).
			expectFinal("-9223372036854775808"),
		machTest("sub wraps").
			withEntry(subE(eNum(math.MinInt64), eNum(1))).
			expectFinal("9223372036854775807"),
		machTest("mul wraps").
			withEntry(eAp(eExtern(OpMul), eNum(math.MaxInt64), eNum(2))).
			expectFinal("-2"),
		machTest("neg").
			withEntry(eAp(eExtern(OpNeg), eNum(5))).expectFinal("-5"),
		machTest("neg of minimum wraps onto itself").
			withEntry(eAp(eExtern(OpNeg), eNum(math.MinInt64))).
			expectFinal("-9223372036854775808"),
	}.run(t)
}

func TestExternCompare(t *testing.T) {
	machTestCases{
		machTest("eq true").withEntry(eqE(eNum(4), eNum(4))).expectFinal("#1"),
		machTest("eq false").withEntry(eqE(eNum(4), eNum(5))).expectFinal("#0"),
		machTest("le on equal").withEntry(leE(eNum(4), eNum(4))).expectFinal("#1"),
		machTest("lt on equal").withEntry(ltE(eNum(4), eNum(4))).expectFinal("#0"),
		machTest("gt").withEntry(gtE(eNum(5), eNum(4))).expectFinal("#1"),
		machTest("ge").withEntry(geE(eNum(3), eNum(4))).expectFinal("#0"),
	}.run(t)
}

func TestExternChars(t *testing.T) {
	machTestCases{
		machTest("chr masks to the low byte").
			withEntry(eAp(eExtern(OpChr), eNum(321))).expectFinal("65"),
		machTest("chr of negative").
			withEntry(eAp(eExtern(OpChr), eNum(-1))).expectFinal("255"),
		machTest("ord is identity").
			withEntry(eAp(eExtern(OpOrd), eNum(7))).expectFinal("7"),
	}.run(t)
}

func TestExternOutput(t *testing.T) {
	machTestCases{
		machTest("puti writes decimal and newline").
			withEntry(putiE(eNum(-5))).expectOutput("-5\n").expectFinal("#0"),
		machTest("putc writes the low byte").
			withEntry(putcE('A')).expectOutput("A").expectFinal("#0"),
		machTest("putc truncates to a byte").
			withEntry(eAp(eExtern(OpPutc), eNum(321))).expectOutput("A"),
	}.run(t)
}

func TestExternInput(t *testing.T) {
	machTestCases{
		machTest("geti parses a line").
			withInput("42\n").withEntry(getiE()).expectFinal("42"),
		machTest("geti trims surrounding space").
			withInput("  -17 \n").withEntry(getiE()).expectFinal("-17"),
		machTest("geti accepts a final unterminated line").
			withInput("7").withEntry(getiE()).expectFinal("7"),
		machTest("geti on garbage is fatal").
			withInput("4 2\n").withEntry(getiE()).expectError(errInput),
		machTest("geti at end of input is fatal").
			withEntry(getiE()).expectError(errInput),
		machTest("getc reads one byte").
			withInput("AB").withEntry(getcE()).expectFinal("65"),
		machTest("getc at end of input yields -1").
			withEntry(getcE()).expectFinal("-1"),
		machTest("prompt is written before the read").
			withInput("x").
			withEntry(seqE(putcE('?'), eAp(eExtern(OpPutc), getcE()))).
			expectOutput("?x"),
	}.run(t)
}

func TestExternSeq(t *testing.T) {
	machTestCases{
		machTest("seq returns its second argument").
			withEntry(seqE(eNum(1), eNum(2))).expectFinal("2"),
		machTest("seq forces both arguments in order").
			withInput(numLines(8, 9)).
			withEntry(seqE(putiE(getiE()), putiE(getiE()))).
			expectOutput(numLines(8, 9)),
	}.run(t)
}

func TestExternArityFatal(t *testing.T) {
	m := New()
	assert.Panics(t, func() {
		m.evalExtern(OpAdd, []*Value{valNum(1)})
	}, "built-in arity mismatch must halt")
}

func TestExternTypeFatal(t *testing.T) {
	machTest("adding a pack is fatal").
		withEntry(addE(unitE(), eNum(1))).
		expectError(errNotNumber).
		run(t)
}
