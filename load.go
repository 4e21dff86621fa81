package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadModule reads a serialized module from path: a JSON array of top-level
// declarations, each an externally tagged Def or Asm object. Asm entries
// are linkage placeholders and are dropped; duplicate Def names resolve to
// the last writer.
func LoadModule(path string) (Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	module, err := ParseModule(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return module, nil
}

// ParseModule decodes module JSON.
func ParseModule(data []byte) (Module, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("module is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New("module must be an array of declarations")
	}

	module := make(Module)
	var err error
	root.ForEach(func(_, decl gjson.Result) bool {
		var tag string
		var body gjson.Result
		if tag, body, err = unionTag(decl); err != nil {
			return false
		}
		switch tag {
		case "Def":
			name := body.Get("name")
			if !name.Exists() {
				err = errors.New("Def without name")
				return false
			}
			var lam Lambda
			if lam.Binds, err = parseBinds(body.Get("binds")); err == nil {
				lam.Body, err = parseExpr(body.Get("body"))
			}
			if err != nil {
				err = fmt.Errorf("in %v: %w", name.String(), err)
				return false
			}
			module[name.String()] = &lam
		case "Asm":
			// assembly linkage placeholder, nothing to evaluate
		default:
			err = fmt.Errorf("unknown declaration %q", tag)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return module, nil
}

// unionTag unwraps an externally tagged union: an object with exactly one
// key naming the variant.
func unionTag(r gjson.Result) (string, gjson.Result, error) {
	if !r.IsObject() {
		return "", gjson.Result{}, fmt.Errorf("expected a tagged object, found %v", r.Type)
	}
	var tag string
	var body gjson.Result
	n := 0
	r.ForEach(func(k, v gjson.Result) bool {
		tag, body = k.String(), v
		n++
		return true
	})
	if n != 1 {
		return "", gjson.Result{}, fmt.Errorf("expected exactly one variant tag, found %v", n)
	}
	return tag, body, nil
}

func parseExpr(r gjson.Result) (Expr, error) {
	tag, body, err := unionTag(r)
	if err != nil {
		return Expr{}, err
	}

	switch tag {
	case "Local":
		idx := body.Get("idx")
		if !idx.Exists() {
			return Expr{}, errors.New("Local without idx")
		}
		e := eLocal(int(idx.Int()))
		e.Name = body.Get("name").String()
		return e, nil

	case "Global":
		name := body.Get("name")
		if !name.Exists() {
			return Expr{}, errors.New("Global without name")
		}
		return eGlobal(name.String()), nil

	case "External":
		name := body.Get("name")
		op, ok := extOpByName(name.String())
		if !ok {
			return Expr{}, fmt.Errorf("unknown external %q", name.String())
		}
		return eExtern(op), nil

	case "Pack":
		t, a := body.Get("tag"), body.Get("arity")
		if !t.Exists() || !a.Exists() {
			return Expr{}, errors.New("Pack without tag or arity")
		}
		return ePack(int(t.Int()), int(a.Int())), nil

	case "Num":
		n := body.Get("int")
		if !n.Exists() {
			return Expr{}, errors.New("Num without int")
		}
		return eNum(n.Int()), nil

	case "Ap":
		fun, err := parseExpr(body.Get("fun"))
		if err != nil {
			return Expr{}, err
		}
		args, err := parseExprs(body.Get("args"))
		if err != nil {
			return Expr{}, err
		}
		e := Expr{Kind: ExprAp, Fun: &fun, Args: args}
		return e, nil

	case "Let":
		var e Expr
		e.Kind = ExprLet
		e.IsRec = body.Get("isrec").Bool()
		defns := body.Get("defns")
		if !defns.IsArray() {
			return Expr{}, errors.New("Let without defns")
		}
		defns.ForEach(func(_, d gjson.Result) bool {
			var defn Defn
			defn.Lhs = d.Get("lhs").String()
			defn.Rhs, err = parseExpr(d.Get("rhs"))
			e.Defns = append(e.Defns, defn)
			return err == nil
		})
		if err != nil {
			return Expr{}, err
		}
		b, err := parseExpr(body.Get("body"))
		if err != nil {
			return Expr{}, err
		}
		e.Body = &b
		return e, nil

	case "Match":
		scrut, err := parseExpr(body.Get("expr"))
		if err != nil {
			return Expr{}, err
		}
		e := Expr{Kind: ExprMatch, Scrut: &scrut}
		altns := body.Get("altns")
		if !altns.IsArray() {
			return Expr{}, errors.New("Match without altns")
		}
		altns.ForEach(func(_, a gjson.Result) bool {
			var alt Altn
			if alt.Binds, err = parseBinds(a.Get("binds")); err == nil {
				alt.Rhs, err = parseExpr(a.Get("rhs"))
			}
			e.Altns = append(e.Altns, alt)
			return err == nil
		})
		if err != nil {
			return Expr{}, err
		}
		return e, nil
	}

	return Expr{}, fmt.Errorf("unknown expression %q", tag)
}

func parseExprs(r gjson.Result) ([]Expr, error) {
	if !r.IsArray() {
		return nil, fmt.Errorf("expected an expression array, found %v", r.Type)
	}
	var exprs []Expr
	var err error
	r.ForEach(func(_, el gjson.Result) bool {
		var e Expr
		e, err = parseExpr(el)
		exprs = append(exprs, e)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return exprs, nil
}

// parseBinds decodes a binder list; null entries are wildcards.
func parseBinds(r gjson.Result) ([]Name, error) {
	if !r.IsArray() {
		return nil, fmt.Errorf("expected a binder array, found %v", r.Type)
	}
	var binds []Name
	r.ForEach(func(_, b gjson.Result) bool {
		if b.Type == gjson.Null {
			binds = append(binds, "")
		} else {
			binds = append(binds, b.String())
		}
		return true
	})
	return binds, nil
}
