package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a closed union over machine values, discriminated by Kind.
// Values are shared by pointer and never mutated once constructed.
type Value struct {
	Kind ValKind

	Num int64 // Num

	Tag  int      // Pack
	Args []*Value // Pack: saturated fields; PAP: arguments collected so far

	Prim    Prim // PAP
	Missing int  // PAP: arguments still awaited
}

// ValKind discriminates Value variants.
type ValKind int

const (
	ValNum ValKind = iota
	ValPack
	ValPAP
)

// Prim is a callable primitive carried inside a PAP: a module global, a
// built-in operation, or a data constructor.
type Prim struct {
	Kind PrimKind

	Name Name    // Global
	Lam  *Lambda // Global

	Op ExtOp // Extern

	Tag   int // Pack
	Arity int // Pack
}

// PrimKind discriminates Prim variants.
type PrimKind int

const (
	PrimGlobal PrimKind = iota
	PrimExtern
	PrimPack
)

func (p Prim) arity() int {
	switch p.Kind {
	case PrimGlobal:
		return len(p.Lam.Binds)
	case PrimExtern:
		return p.Op.arity()
	}
	return p.Arity
}

func (p Prim) String() string {
	switch p.Kind {
	case PrimGlobal:
		return p.Name
	case PrimExtern:
		return p.Op.String()
	}
	return fmt.Sprintf("#%v/%v", p.Tag, p.Arity)
}

func valNum(n int64) *Value { return &Value{Kind: ValNum, Num: n} }
func valUnit() *Value       { return &Value{Kind: ValPack, Tag: 0} }

func valBool(b bool) *Value {
	if b {
		return &Value{Kind: ValPack, Tag: 1}
	}
	return &Value{Kind: ValPack, Tag: 0}
}

func valPAP(prim Prim) *Value {
	return &Value{Kind: ValPAP, Prim: prim, Missing: prim.arity()}
}

// String renders a value for trace, dump, and diagnostic lines: numbers in
// decimal, packs as "#tag(fields...)", PAPs as "prim[collected]/missing".
func (v *Value) String() string {
	switch v.Kind {
	case ValNum:
		return strconv.FormatInt(v.Num, 10)
	case ValPack:
		if len(v.Args) == 0 {
			return fmt.Sprintf("#%v", v.Tag)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "#%v(", v.Tag)
		for i, arg := range v.Args {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte(')')
		return sb.String()
	case ValPAP:
		var sb strings.Builder
		sb.WriteString(v.Prim.String())
		sb.WriteByte('[')
		for i, arg := range v.Args {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(arg.String())
		}
		fmt.Fprintf(&sb, "]/%v", v.Missing)
		return sb.String()
	}
	return fmt.Sprintf("Value(%v?)", int(v.Kind))
}

// ExtOp identifies a built-in operation.
type ExtOp int

const (
	OpAdd ExtOp = iota
	OpSub
	OpMul
	OpNeg
	OpEq
	OpLe
	OpLt
	OpGt
	OpGe
	OpChr
	OpOrd
	OpPuti
	OpPutc
	OpGeti
	OpGetc
	OpSeq

	numExtOps
)

var extOpNames = [numExtOps]string{
	"add", "sub", "mul", "neg",
	"eq", "le", "lt", "gt", "ge",
	"chr", "ord",
	"puti", "putc", "geti", "getc",
	"seq",
}

var extOpArity = [numExtOps]int{
	2, 2, 2, 1,
	2, 2, 2, 2, 2,
	1, 1,
	1, 1, 1, 1,
	2,
}

func (op ExtOp) String() string {
	if op < 0 || op >= numExtOps {
		return fmt.Sprintf("extern(%v?)", int(op))
	}
	return extOpNames[op]
}

func (op ExtOp) arity() int { return extOpArity[op] }

func extOpByName(name string) (ExtOp, bool) {
	for op, opName := range extOpNames {
		if opName == name {
			return ExtOp(op), true
		}
	}
	return 0, false
}
