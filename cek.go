package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hurryabit/ruceki/internal/flushio"
	"github.com/hurryabit/ruceki/internal/lineio"
)

// Mach is a CEK machine: a control focus, an environment stack of shared
// value handles, and a stack of continuation frames, stepped iteratively
// until the focus is a plain value with nothing left to do.
type Mach struct {
	logging

	module Module
	entry  *Expr

	ctrl  ctrl
	env   env
	kont  []kont
	steps uint64

	in      *lineio.Reader
	out     flushio.WriteFlusher
	closers []io.Closer
}

// ctrl is the current focus: an expression still to reduce, a value just
// produced, or the transient evaluating marker that must never be observed
// between steps.
type ctrl struct {
	kind ctrlKind
	expr *Expr
	val  *Value
}

type ctrlKind int

const (
	ctrlEvaluating ctrlKind = iota
	ctrlExpr
	ctrlValue
)

func (c ctrl) String() string {
	switch c.kind {
	case ctrlExpr:
		return fmt.Sprintf("Expr %v", c.expr)
	case ctrlValue:
		return fmt.Sprintf("Value %v", c.val)
	}
	return "Evaluating"
}

// env is a stack of value handles addressed by 1-based top-relative index.
type env struct {
	stack []*Value
}

func (e *env) get(idx int) (*Value, bool) {
	if idx < 1 || idx > len(e.stack) {
		return nil, false
	}
	return e.stack[len(e.stack)-idx], true
}

func (e *env) push(v *Value) {
	e.stack = append(e.stack, v)
}

func (e *env) pushMany(vs []*Value) {
	e.stack = append(e.stack, vs...)
}

func (e *env) pop(n int) {
	e.stack = e.stack[:len(e.stack)-n]
}

// kont is one continuation frame, discriminated by kind.
type kont struct {
	kind kontKind

	env     []*Value // Dump: environment stack to restore
	n       int      // Pop: entries to drop
	args    []Expr   // Args: remaining argument expressions (into the AST)
	prim    Prim     // Fun
	vals    []*Value // Fun: arguments collected so far (owned by the frame)
	missing int      // Fun
	altns   []Altn   // Match: alternatives (into the AST)
	body    *Expr    // Let
}

type kontKind int

const (
	kontDump kontKind = iota
	kontPop
	kontArgs
	kontFun
	kontMatch
	kontLet
)

func (k kont) String() string {
	switch k.kind {
	case kontDump:
		return fmt.Sprintf("Dump(%v)", len(k.env))
	case kontPop:
		return fmt.Sprintf("Pop(%v)", k.n)
	case kontArgs:
		return fmt.Sprintf("Args(%v)", len(k.args))
	case kontFun:
		return fmt.Sprintf("Fun(%v/%v+%v)", k.prim, len(k.vals), k.missing)
	case kontMatch:
		return fmt.Sprintf("Match(%v)", len(k.altns))
	case kontLet:
		return fmt.Sprintf("Let(%v)", k.body)
	}
	return fmt.Sprintf("Kont(%v?)", int(k.kind))
}

// Fatal evaluator conditions; all are raised through halt, and Run returns
// them with the haltError wrapper removed.
var (
	errStalled       = errors.New("control not updated after last step")
	errSteppedFinal  = errors.New("step on final state")
	errEmptyAp       = errors.New("application without arguments")
	errRecLet        = errors.New("recursive or multi-binding let")
	errUnknownGlobal = errors.New("unknown global")
	errBadIndex      = errors.New("bad de Bruijn index")
	errApplyNonFun   = errors.New("applying a non-function value")
	errMatchNonData  = errors.New("pattern match on non-data value")
	errBadTag        = errors.New("no alternative for constructor tag")
	errBindArity     = errors.New("alternative binds do not cover constructor fields")
	errExternArity   = errors.New("built-in applied to wrong argument count")
	errNotNumber     = errors.New("expected a number")
	errInput         = errors.New("input not a number")
)

// step performs exactly one machine transition. The control is swapped to
// the evaluating marker first so a half-finished transition can never be
// observed through the state itself.
func (m *Mach) step() {
	if m.logfn != nil {
		m.traceStep()
	}

	old := m.ctrl
	m.ctrl = ctrl{kind: ctrlEvaluating}

	switch old.kind {
	case ctrlExpr:
		m.ctrl = m.stepExpr(old.expr)
	case ctrlValue:
		m.ctrl = m.stepValue(old.val)
	default:
		m.halt(errStalled)
	}
}

func (m *Mach) stepExpr(e *Expr) ctrl {
	switch e.Kind {
	case ExprLocal:
		v, ok := m.env.get(e.Idx)
		if !ok {
			m.halt(fmt.Errorf("%w: %v of %v", errBadIndex, e.Idx, len(m.env.stack)))
		}
		return ctrl{kind: ctrlValue, val: v}

	case ExprGlobal:
		lam := m.module[e.Name]
		if lam == nil {
			m.halt(fmt.Errorf("%w: %v", errUnknownGlobal, e.Name))
		}
		return ctrl{kind: ctrlValue, val: valPAP(Prim{Kind: PrimGlobal, Name: e.Name, Lam: lam})}

	case ExprExtern:
		return ctrl{kind: ctrlValue, val: valPAP(Prim{Kind: PrimExtern, Op: e.Op})}

	case ExprPack:
		return ctrl{kind: ctrlValue, val: valPAP(Prim{Kind: PrimPack, Tag: e.Tag, Arity: e.Arity})}

	case ExprNum:
		return ctrl{kind: ctrlValue, val: valNum(e.Int)}

	case ExprAp:
		if len(e.Args) == 0 {
			m.halt(errEmptyAp)
		}
		m.kont = append(m.kont, kont{kind: kontArgs, args: e.Args})
		return ctrl{kind: ctrlExpr, expr: e.Fun}

	case ExprLet:
		if e.IsRec || len(e.Defns) != 1 {
			m.halt(errRecLet)
		}
		m.kont = append(m.kont, kont{kind: kontLet, body: e.Body})
		return ctrl{kind: ctrlExpr, expr: &e.Defns[0].Rhs}

	case ExprMatch:
		m.kont = append(m.kont, kont{kind: kontMatch, altns: e.Altns})
		return ctrl{kind: ctrlExpr, expr: e.Scrut}
	}

	m.halt(fmt.Errorf("invalid expression kind %v", int(e.Kind)))
	panic("unreachable")
}

func (m *Mach) stepValue(v *Value) ctrl {
	// a saturated PAP fires regardless of pending continuations
	if v.Kind == ValPAP && v.Missing == 0 {
		switch prim := v.Prim; prim.Kind {
		case PrimGlobal:
			fresh := make([]*Value, len(v.Args))
			copy(fresh, v.Args)
			m.kont = append(m.kont, kont{kind: kontDump, env: m.env.stack})
			m.env.stack = fresh
			return ctrl{kind: ctrlExpr, expr: &prim.Lam.Body}

		case PrimExtern:
			return ctrl{kind: ctrlValue, val: m.evalExtern(prim.Op, v.Args)}

		default:
			return ctrl{kind: ctrlValue, val: &Value{Kind: ValPack, Tag: prim.Tag, Args: v.Args}}
		}
	}

	if len(m.kont) == 0 {
		m.halt(errSteppedFinal)
	}
	fr := m.kont[len(m.kont)-1]
	m.kont = m.kont[:len(m.kont)-1]

	switch fr.kind {
	case kontDump:
		m.env.stack = fr.env
		return ctrl{kind: ctrlValue, val: v}

	case kontPop:
		m.env.pop(fr.n)
		return ctrl{kind: ctrlValue, val: v}

	case kontArgs:
		if v.Kind != ValPAP {
			m.halt(fmt.Errorf("%w: %v", errApplyNonFun, v))
		}
		head, rest := &fr.args[0], fr.args[1:]
		if len(rest) > 0 {
			m.kont = append(m.kont, kont{kind: kontArgs, args: rest})
		}
		collected := make([]*Value, len(v.Args), len(v.Args)+v.Missing)
		copy(collected, v.Args)
		m.kont = append(m.kont, kont{kind: kontFun, prim: v.Prim, vals: collected, missing: v.Missing})
		return ctrl{kind: ctrlExpr, expr: head}

	case kontFun:
		pap := &Value{
			Kind:    ValPAP,
			Prim:    fr.prim,
			Args:    append(fr.vals, v),
			Missing: fr.missing - 1,
		}
		return ctrl{kind: ctrlValue, val: pap}

	case kontMatch:
		if v.Kind != ValPack {
			m.halt(fmt.Errorf("%w: %v", errMatchNonData, v))
		}
		if v.Tag >= len(fr.altns) {
			m.halt(fmt.Errorf("%w: %v of %v", errBadTag, v.Tag, len(fr.altns)))
		}
		alt := &fr.altns[v.Tag]
		if len(alt.Binds) != len(v.Args) {
			m.halt(fmt.Errorf("%w: %v binds for %v fields", errBindArity, len(alt.Binds), len(v.Args)))
		}
		m.kont = append(m.kont, kont{kind: kontPop, n: len(v.Args)})
		m.env.pushMany(v.Args)
		return ctrl{kind: ctrlExpr, expr: &alt.Rhs}

	case kontLet:
		m.kont = append(m.kont, kont{kind: kontPop, n: 1})
		m.env.push(v)
		return ctrl{kind: ctrlExpr, expr: fr.body}
	}

	m.halt(fmt.Errorf("invalid continuation kind %v", int(fr.kind)))
	panic("unreachable")
}

// isFinal reports whether the machine has produced its answer: a plain
// number or data value with an empty continuation stack.
func (m *Mach) isFinal() bool {
	if m.ctrl.kind != ctrlValue || len(m.kont) != 0 {
		return false
	}
	switch m.ctrl.val.Kind {
	case ValNum, ValPack:
		return true
	}
	return false
}

func (m *Mach) run(ctx context.Context) error {
	m.ctrl = ctrl{kind: ctrlExpr, expr: m.entry}
	m.env.stack = nil
	m.kont = nil
	m.steps = 0

	for !m.isFinal() {
		m.step()
		m.steps++
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return m.out.Flush()
}

func (m *Mach) traceStep() {
	desc := m.ctrl.String()
	if m.codeWidth < len(desc) {
		m.codeWidth = len(desc)
	}
	m.logf(fmt.Sprintf("@%v", m.steps), "% -*v k:%v e:%v",
		m.codeWidth, desc, len(m.kont), len(m.env.stack))
}
