package main

import "fmt"

// Name identifies a global lambda or a binder; binder names are purely
// informational since variables are addressed positionally.
type Name = string

// Expr is a closed union over the expression forms the machine reduces,
// discriminated by Kind. Only the fields of the active variant are
// meaningful.
type Expr struct {
	Kind ExprKind

	Idx  int  // Local: 1-based top-relative environment index
	Name Name // Local (informational), Global
	Op   ExtOp // Extern

	Tag   int // Pack
	Arity int // Pack

	Int int64 // Num

	Fun  *Expr  // Ap
	Args []Expr // Ap: non-empty, evaluated left to right

	IsRec bool   // Let: must be false
	Defns []Defn // Let: must hold exactly one definition
	Body  *Expr  // Let

	Scrut *Expr  // Match
	Altns []Altn // Match: indexed by constructor tag
}

// ExprKind discriminates Expr variants.
type ExprKind int

const (
	ExprLocal ExprKind = iota
	ExprGlobal
	ExprExtern
	ExprPack
	ExprNum
	ExprAp
	ExprLet
	ExprMatch
)

// Defn is a single let binding.
type Defn struct {
	Lhs Name
	Rhs Expr
}

// Altn is one match alternative; Binds has one entry per constructor field,
// the empty string standing for a wildcard.
type Altn struct {
	Binds []Name
	Rhs   Expr
}

// Lambda is a top-level function; its arity is len(Binds).
type Lambda struct {
	Binds []Name
	Body  Expr
}

// Module maps global names to their lambdas.
type Module map[Name]*Lambda

// entryPoint builds the canonical entry expression: apply the global main
// to the unit constructor.
func entryPoint() *Expr {
	e := eAp(eGlobal("main"), ePack(0, 0))
	return &e
}

// String renders the expression shallowly, for trace and dump lines.
func (e *Expr) String() string {
	switch e.Kind {
	case ExprLocal:
		return fmt.Sprintf("Local(%v)", e.Idx)
	case ExprGlobal:
		return fmt.Sprintf("Global(%v)", e.Name)
	case ExprExtern:
		return fmt.Sprintf("Extern(%v)", e.Op)
	case ExprPack:
		return fmt.Sprintf("Pack(%v/%v)", e.Tag, e.Arity)
	case ExprNum:
		return fmt.Sprintf("Num(%v)", e.Int)
	case ExprAp:
		return fmt.Sprintf("Ap/%v", len(e.Args))
	case ExprLet:
		if len(e.Defns) == 1 {
			return fmt.Sprintf("Let(%v)", e.Defns[0].Lhs)
		}
		return fmt.Sprintf("Let/%v", len(e.Defns))
	case ExprMatch:
		return fmt.Sprintf("Match/%v", len(e.Altns))
	}
	return fmt.Sprintf("Expr(%v?)", int(e.Kind))
}

//// expression builders, used by the entry point and by tests

func eLocal(idx int) Expr       { return Expr{Kind: ExprLocal, Idx: idx} }
func eGlobal(name Name) Expr    { return Expr{Kind: ExprGlobal, Name: name} }
func eExtern(op ExtOp) Expr     { return Expr{Kind: ExprExtern, Op: op} }
func ePack(tag, arity int) Expr { return Expr{Kind: ExprPack, Tag: tag, Arity: arity} }
func eNum(n int64) Expr         { return Expr{Kind: ExprNum, Int: n} }

func eAp(fun Expr, args ...Expr) Expr {
	return Expr{Kind: ExprAp, Fun: &fun, Args: args}
}

func eLet(name Name, rhs, body Expr) Expr {
	return Expr{Kind: ExprLet, Defns: []Defn{{Lhs: name, Rhs: rhs}}, Body: &body}
}

func eMatch(scrut Expr, altns ...Altn) Expr {
	return Expr{Kind: ExprMatch, Scrut: &scrut, Altns: altns}
}

func altn(rhs Expr, binds ...Name) Altn {
	return Altn{Binds: binds, Rhs: rhs}
}
