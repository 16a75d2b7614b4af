package infer

import (
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// expr generates the constraints of an expression and returns its
// abstract value.
func (c *checker) expr(x syntax.Expr) *aval {
	a := c.exprInternal(x)
	c.record(x, a)
	return a
}

func (c *checker) exprInternal(x syntax.Expr) *aval {
	switch x := x.(type) {
	case *syntax.Name:
		obj := c.resolve(x)
		if obj == nil {
			return conflicting()
		}
		return c.objAval(obj)

	case *syntax.BasicLit:
		switch x.Kind {
		case syntax.NumberLit:
			return typed(numShape)
		case syntax.StringLit:
			return typed(strShape)
		case syntax.BoolLit:
			return typed(boolShape)
		}
		return conflicting()

	case *syntax.ThisExpr:
		return conflicting()

	case *syntax.ParenExpr:
		return c.expr(x.X)

	case *syntax.FuncLit:
		return c.funcLit(x)

	case *syntax.ObjectLit:
		s := newObject()
		for _, kv := range x.Props {
			c.expr(kv.Value).flowTo(s.prop(kv.Key.Value))
		}
		return typed(s)

	case *syntax.ArrayLit:
		s := newArray()
		for _, e := range x.Elems {
			c.expr(e).flowTo(s.elem)
		}
		return typed(s)

	case *syntax.Operation:
		if x.Y == nil {
			return c.unary(x)
		}
		return c.binary(x)

	case *syntax.AssignExpr:
		return c.assign(x)

	case *syntax.UpdateExpr:
		c.lvalue(x.X, typed(numShape))
		return typed(numShape)

	case *syntax.CondExpr:
		c.expr(x.Cond)
		result := new(aval)
		c.expr(x.X).flowTo(result)
		c.expr(x.Y).flowTo(result)
		return result

	case *syntax.SeqExpr:
		var last *aval
		for _, e := range x.List {
			last = c.expr(e)
		}
		return last

	case *syntax.CallExpr:
		fun := c.expr(x.Fun)
		args := make([]*aval, len(x.Args))
		for i, arg := range x.Args {
			args[i] = c.expr(arg)
		}
		ret := new(aval)
		fun.propagate(isCallee{args: args, ret: ret})
		return ret

	case *syntax.NewExpr:
		c.expr(x.Fun)
		for _, arg := range x.Args {
			c.expr(arg)
		}
		return conflicting()

	case *syntax.SelectorExpr:
		obj := c.expr(x.X)
		result := new(aval)
		obj.propagate(hasProp{name: x.Sel.Value, target: result})
		return result

	case *syntax.IndexExpr:
		arr := c.expr(x.X)
		c.expr(x.Index)
		result := new(aval)
		arr.propagate(index{target: result})
		return result
	}

	c.errorf(x.Pos(), "unexpected expression %T", x)
	return conflicting()
}

// unary handles prefix operators.
func (c *checker) unary(x *syntax.Operation) *aval {
	c.expr(x.X)
	switch x.Op {
	case syntax.Not, syntax.Delete:
		return typed(boolShape)
	case syntax.Typeof:
		return typed(strShape)
	case syntax.Void:
		return conflicting()
	}
	// - + ~
	return typed(numShape)
}

// binary handles binary operators.
func (c *checker) binary(x *syntax.Operation) *aval {
	lhs := c.expr(x.X)
	rhs := c.expr(x.Y)
	switch {
	case x.Op == syntax.Add:
		return plus(lhs, rhs)
	case x.Op.IsComparison(), x.Op.IsLogical(), x.Op == syntax.In, x.Op == syntax.Instanceof:
		return typed(boolShape)
	}
	// arithmetic, bitwise and shift operators
	return typed(numShape)
}

// plus returns the abstract value of lhs + rhs.
func plus(lhs, rhs *aval) *aval {
	result := new(aval)
	op := &plusOp{x: lhs, y: rhs, result: result}
	lhs.propagate(op)
	rhs.propagate(op)
	return result
}

// assign handles plain and compound assignment. The value of the
// expression is the value stored.
func (c *checker) assign(x *syntax.AssignExpr) *aval {
	if x.Op == 0 {
		rhs := c.expr(x.RHS)
		c.lvalue(x.LHS, rhs)
		return rhs
	}

	cur := c.expr(x.LHS)
	rhs := c.expr(x.RHS)
	var result *aval
	if x.Op == syntax.Add {
		result = plus(cur, rhs)
	} else {
		result = typed(numShape)
	}
	c.store(x.LHS, result)
	return result
}

// lvalue records the target of an assignment or update and stores value
// into it.
func (c *checker) lvalue(lhs syntax.Expr, value *aval) {
	c.expr(lhs)
	c.store(lhs, value)
}

// store makes value flow into the location denoted by lhs, which has
// already been walked.
func (c *checker) store(lhs syntax.Expr, value *aval) {
	switch lhs := syntax.Unparen(lhs).(type) {
	case *syntax.Name:
		if obj := c.eng.objects[lhs]; obj != nil {
			value.flowTo(c.objAval(obj))
		}
	case *syntax.SelectorExpr:
		c.eng.exprs[lhs.X].propagate(propWrite{name: lhs.Sel.Value, value: value})
	case *syntax.IndexExpr:
		c.eng.exprs[lhs.X].propagate(indexWrite{value: value})
	}
}

// funcLit checks a function literal. A named literal can refer to itself
// by name inside its body.
func (c *checker) funcLit(lit *syntax.FuncLit) *aval {
	s := newFunc(lit.Params)
	c.eng.funcs[lit] = s
	a := typed(s)

	scope := c.openFunc(lit, lit.Params, s, "function literal")
	if lit.Name != nil && scope.Lookup(lit.Name.Value) == nil {
		v := types.NewVar(lit.Name.Pos(), lit.Name.Value, nil)
		scope.Insert(v)
		c.eng.objs[v] = a
		c.eng.self[v] = lit
		c.def(lit.Name, v)
	}
	c.funcBody(scope, s, lit.Body)
	return a
}

func typed(s *shape) *aval {
	a := new(aval)
	a.add(s)
	return a
}

func conflicting() *aval {
	return &aval{conflict: true}
}
