package codegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/you-not-fish/gum/internal/rtabi"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// expr writes e with its refined type.
func (g *gen) expr(b *Buffer, e syntax.Expr) {
	defer g.restore(g.at(e))
	tmp := NewBuffer()
	natural := g.emit(tmp, e)
	g.convert(b, natural, g.ref.TypeOf(e), func() { inline(tmp, b) })
}

// emit writes e and returns the type of the C expression written. Every
// compound expression is parenthesized.
func (g *gen) emit(b *Buffer, e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.Name:
		return g.name(b, e, false)

	case *syntax.BasicLit:
		return g.basicLit(b, e)

	case *syntax.ParenExpr:
		g.expr(b, e.X)
		return g.ref.TypeOf(e.X)

	case *syntax.FuncLit:
		b.Write(g.liftFunc(b, e))
		return g.funcType(e)

	case *syntax.ObjectLit:
		return g.objectLit(b, e)

	case *syntax.ArrayLit:
		return g.arrayLit(b, e)

	case *syntax.Operation:
		if e.Y == nil {
			return g.unary(b, e)
		}
		return g.binary(b, e)

	case *syntax.AssignExpr:
		return g.assign(b, e)

	case *syntax.UpdateExpr:
		return g.update(b, e)

	case *syntax.CondExpr:
		t := g.ref.TypeOf(e)
		b.Write("(")
		g.test(b, e.Cond)
		b.Write("?")
		g.castTo(b, e.X, t)
		b.Write(":")
		g.castTo(b, e.Y, t)
		b.Write(")")
		return t

	case *syntax.SeqExpr:
		b.Write("(")
		for i, x := range e.List {
			if i > 0 {
				b.Write(",")
			}
			g.expr(b, x)
		}
		b.Write(")")
		return g.ref.TypeOf(e.List[len(e.List)-1])

	case *syntax.CallExpr:
		return g.call(b, e)

	case *syntax.IndexExpr:
		return g.index(b, e)

	case *syntax.SelectorExpr:
		return g.selector(b, e)

	case *syntax.ThisExpr:
		g.errorf(UnhandledConstruct, e.Pos(), "this")
	case *syntax.NewExpr:
		g.errorf(UnhandledConstruct, e.Pos(), "new expression")
	default:
		g.errorf(UnhandledConstruct, e.Pos(), "expression %T", e)
	}
	return nil
}

func (g *gen) funcType(fn syntax.Node) types.Type {
	if sig := g.eng.FuncType(fn); sig != nil {
		return sig
	}
	g.errorf(UnrepresentableType, fn.Pos(), "function has no type")
	return nil
}

// name writes a reference to the binding n denotes. Functions nested in
// another function are lifted to file scope, so a variable of an
// enclosing function is only reachable when it is a constant: its value
// is written in place of the reference. For an assignment target
// (lvalue), no such substitution is made.
func (g *gen) name(b *Buffer, n *syntax.Name, lvalue bool) types.Type {
	switch obj := g.eng.ObjectOf(n).(type) {
	case *types.FuncObj:
		name, ok := g.funcNames[obj.Decl()]
		if !ok {
			g.errorf(UnhandledConstruct, n.Pos(), "function %s was not hoisted", n.Value)
			return nil
		}
		b.Write(name)
		return g.funcType(obj.Decl())

	case *types.Var:
		if lit := g.eng.SelfFunc(obj); lit != nil {
			b.Write(g.liftFunc(b, lit))
			return g.funcType(lit)
		}
		if obj.IsPredeclared() || g.eng.IsSeeded(obj) {
			if obj.Name() == "undefined" {
				b.Write(rtabi.Undefined)
			} else {
				b.Write(obj.Name())
			}
			return g.ref.ObjectType(obj)
		}

		t := g.ref.VarType(obj)
		if scope := obj.Parent(); scope != nil && scope != g.scope && !scope.IsTop() {
			spec := obj.Decl()
			if lvalue || spec == nil || spec.Value == nil || !g.con.IsConst(n) {
				g.errorf(UnhandledConstruct, n.Pos(), "closure captures mutable variable %s", n.Value)
				return nil
			}
			b.Write("(")
			g.castTo(b, spec.Value, t)
			b.Write(")")
			return t
		}
		b.Write(g.sess.mangle(obj.Name()))
		return t
	}

	g.errorf(UnhandledConstruct, n.Pos(), "undeclared name %s", n.Value)
	return nil
}

func (g *gen) basicLit(b *Buffer, lit *syntax.BasicLit) types.Type {
	switch lit.Kind {
	case syntax.NumberLit:
		v, ok := lit.Float()
		if !ok {
			g.errorf(UnhandledConstruct, lit.Pos(), "malformed number %s", lit.Value)
			return nil
		}
		if isIntLit(lit) {
			b.Write(strconv.FormatInt(int64(v), 10))
			return types.Typ[types.Int]
		}
		b.Write(formatFloat(v))
		return types.Typ[types.Num]

	case syntax.StringLit:
		b.Write(quote(lit.Value))
		return types.Typ[types.Str]

	case syntax.BoolLit:
		b.Write(lit.Value)
		return types.Typ[types.Bool]

	case syntax.NullLit:
		b.Write(rtabi.Null)
		return types.Typ[types.Dynamic]
	}
	g.errorf(UnhandledConstruct, lit.Pos(), "literal %s", lit.Value)
	return nil
}

// formatFloat returns a C double constant for v.
func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "INFINITY"
	case math.IsNaN(v):
		return rtabi.NaN
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote returns s as a C string literal. Bytes outside printable ASCII
// are written as octal escapes.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '?':
			// no trigraphs
			sb.WriteString(`\?`)
		default:
			if c < 0x20 || c >= 0x7f {
				sb.WriteByte('\\')
				sb.WriteByte('0' + c>>6)
				sb.WriteByte('0' + c>>3&7)
				sb.WriteByte('0' + c&7)
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (g *gen) objectLit(b *Buffer, lit *syntax.ObjectLit) types.Type {
	t := g.ref.TypeOf(lit)
	st, ok := t.(*types.Struct)
	if !ok {
		g.errorf(UnrepresentableType, lit.Pos(), "object literal of type %s", typeString(t))
		return nil
	}
	b.Write("(", g.structName(b, st), ")", "{")
	if len(lit.Props) == 0 {
		b.Write("0")
	}
	for i, p := range lit.Props {
		f, _ := st.Lookup(p.Key.Value)
		if f == nil {
			g.errorf(UnrepresentableType, p.Pos(), "object literal has no field %s", p.Key.Value)
			return nil
		}
		if i > 0 {
			b.Write(",")
		}
		b.Write(".", g.sess.mangle(f.Name()), "=")
		g.castTo(b, p.Value, f.Type())
	}
	b.Write("}")
	return st
}

func (g *gen) arrayLit(b *Buffer, lit *syntax.ArrayLit) types.Type {
	t := g.ref.TypeOf(lit)
	at, ok := t.(*types.Array)
	if !ok {
		g.errorf(UnrepresentableType, lit.Pos(), "array literal of type %s", typeString(t))
		return nil
	}
	b.Write("(")
	g.writeType(b, at, nil, false, storageLen(len(lit.Elems)))
	b.Write(")", "{")
	if len(lit.Elems) == 0 {
		b.Write("0")
	}
	for i, x := range lit.Elems {
		if i > 0 {
			b.Write(",")
		}
		g.castTo(b, x, at.Elem())
	}
	b.Write("}")
	return at
}

// storageLen rounds an array literal's length up to a power of two.
func storageLen(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func (g *gen) unary(b *Buffer, x *syntax.Operation) types.Type {
	switch x.Op {
	case syntax.Not:
		b.Write("(", "!")
		g.test(b, x.X)
		b.Write(")")
		return types.Typ[types.Bool]
	case syntax.Sub, syntax.Add:
		b.Write("(", x.Op.String())
		g.castNum(b, x.X)
		b.Write(")")
		return types.Typ[types.Num]
	case syntax.Tilde:
		b.Write("(", "~")
		g.castInt(b, x.X)
		b.Write(")")
		return types.Typ[types.Int]
	}
	g.errorf(UnhandledConstruct, x.Pos(), "operator %s", x.Op)
	return nil
}

func (g *gen) binary(b *Buffer, x *syntax.Operation) types.Type {
	lt, rt := g.ref.TypeOf(x.X), g.ref.TypeOf(x.Y)
	integers := types.IsInteger(lt) && types.IsInteger(rt)

	switch x.Op {
	case syntax.Add:
		return g.add(b, x, lt, rt)

	case syntax.Sub, syntax.Mul:
		if integers {
			g.infix(b, x.X, x.Op.String(), x.Y, g.expr)
			return types.Typ[types.Int]
		}
		g.infix(b, x.X, x.Op.String(), x.Y, g.castNum)
		return types.Typ[types.Num]

	case syntax.Div:
		b.Write("(")
		if types.IsInteger(lt) {
			b.Write("(", rtabi.TypeNumber, ")")
		}
		g.castNum(b, x.X)
		b.Write("/")
		g.castNum(b, x.Y)
		b.Write(")")
		return types.Typ[types.Num]

	case syntax.Rem:
		if integers {
			g.infix(b, x.X, "%", x.Y, g.expr)
			return types.Typ[types.Int]
		}
		b.Write(rtabi.FnFmod, "(")
		g.castNum(b, x.X)
		b.Write(",")
		g.castNum(b, x.Y)
		b.Write(")")
		return types.Typ[types.Num]

	case syntax.Or, syntax.Xor, syntax.And, syntax.Shl, syntax.Shr:
		g.infix(b, x.X, x.Op.String(), x.Y, g.castInt)
		return types.Typ[types.Int]

	case syntax.Ushr:
		g.unsignedShift(b, func() { g.castInt(b, x.X) }, x.Y)
		return types.Typ[types.Int]

	case syntax.Eql, syntax.Neq, syntax.StrictEql, syntax.StrictNeq,
		syntax.Lss, syntax.Leq, syntax.Gtr, syntax.Geq:
		g.compare(b, x, lt, rt)
		return types.Typ[types.Bool]

	case syntax.OrOr, syntax.AndAnd:
		g.infix(b, x.X, x.Op.String(), x.Y, g.test)
		return types.Typ[types.Bool]
	}
	g.errorf(UnhandledConstruct, x.Pos(), "operator %s", x.Op)
	return nil
}

// infix writes (x op y) with both operands written by operand.
func (g *gen) infix(b *Buffer, x syntax.Expr, op string, y syntax.Expr, operand func(*Buffer, syntax.Expr)) {
	b.Write("(")
	operand(b, x)
	b.Write(op)
	operand(b, y)
	b.Write(")")
}

// unsignedShift writes a logical right shift of the 32-bit value left
// writes.
func (g *gen) unsignedShift(b *Buffer, left func(), y syntax.Expr) {
	b.Write("(", "(", rtabi.TypeInt, ")", "(", "(", "unsigned", "int", ")")
	left()
	b.Write(">>")
	g.castInt(b, y)
	b.Write(")", ")")
}

func (g *gen) add(b *Buffer, x *syntax.Operation, lt, rt types.Type) types.Type {
	str := types.Typ[types.Str]
	switch {
	case types.IsString(lt) || types.IsString(rt):
		b.Write(rtabi.Hprintf, "(", `"%s%s"`, ",")
		g.castTo(b, x.X, str)
		b.Write(",")
		g.castTo(b, x.Y, str)
		b.Write(")")
		return str

	case types.IsNumeric(lt) && types.IsNumeric(rt):
		if types.Identical(lt, rt) {
			g.infix(b, x.X, "+", x.Y, g.expr)
			return lt
		}
		// mixed operands add as doubles so the fraction is kept
		g.infix(b, x.X, "+", x.Y, g.castNum)
		return types.Typ[types.Num]

	case types.IsNumeric(lt):
		b.Write("(")
		g.expr(b, x.X)
		b.Write("+", "(")
		g.typeName(b, lt)
		b.Write(")")
		g.castTo(b, x.Y, lt)
		b.Write(")")
		return lt
	}

	dyn := types.Typ[types.Dynamic]
	b.Write(rtabi.BoxString, "(", rtabi.Hprintf, "(", `"%s%s"`, ",", rtabi.FnToNumber, "(")
	g.castTo(b, x.X, dyn)
	b.Write(")", ",", rtabi.FnToNumber, "(")
	g.castTo(b, x.Y, dyn)
	b.Write(")", ")", ")")
	return dyn
}

func (g *gen) compare(b *Buffer, x *syntax.Operation, lt, rt types.Type) {
	op := x.Op.String()
	switch x.Op {
	case syntax.StrictEql:
		op = "=="
	case syntax.StrictNeq:
		op = "!="
	}

	str := types.Typ[types.Str]
	switch {
	case types.IsString(lt) && (types.IsString(rt) || types.IsDynamic(rt)),
		types.IsDynamic(lt) && types.IsString(rt):
		b.Write("(", rtabi.FnStrcmp, "(")
		g.castTo(b, x.X, str)
		b.Write(",")
		g.castTo(b, x.Y, str)
		b.Write(")", op, "0", ")")

	case types.Is(lt, types.Bool) && types.Is(rt, types.Bool) && (op == "==" || op == "!="):
		g.infix(b, x.X, op, x.Y, g.expr)

	default:
		g.infix(b, x.X, op, x.Y, g.castNum)
	}
}

func (g *gen) assign(b *Buffer, x *syntax.AssignExpr) types.Type {
	lhs := syntax.Unparen(x.LHS)
	t := g.ref.TypeOf(lhs)
	target := func() { g.lvalue(b, lhs) }

	b.Write("(")
	defer b.Write(")")

	if x.Op == 0 {
		target()
		b.Write("=")
		g.castTo(b, x.RHS, t)
		return t
	}

	switch {
	case types.IsDynamic(t):
		g.errorf(UnhandledConstruct, x.Pos(), "compound assignment to dynamic value")

	case x.Op == syntax.Add && types.IsString(t):
		target()
		b.Write("=", rtabi.Hprintf, "(", `"%s%s"`, ",")
		target()
		b.Write(",")
		g.castTo(b, x.RHS, t)
		b.Write(")")

	case !types.IsNumeric(t):
		g.errorf(UnsupportedConversion, x.Pos(), "operator %s= on %s", x.Op, typeString(t))

	case x.Op == syntax.Rem && !types.IsInteger(t):
		target()
		b.Write("=", rtabi.FnFmod, "(")
		target()
		b.Write(",")
		g.castNum(b, x.RHS)
		b.Write(")")

	case x.Op == syntax.Ushr:
		target()
		b.Write("=")
		g.unsignedShift(b, func() {
			if !types.IsInteger(t) {
				b.Write("(", rtabi.TypeInt, ")")
			}
			target()
		}, x.RHS)

	case isBitwise(x.Op):
		if types.IsInteger(t) {
			target()
			b.Write(x.Op.String() + "=")
			g.castInt(b, x.RHS)
			break
		}
		target()
		b.Write("=", "(", "(", rtabi.TypeInt, ")")
		target()
		b.Write(x.Op.String())
		g.castInt(b, x.RHS)
		b.Write(")")

	default:
		target()
		b.Write(x.Op.String() + "=")
		g.castTo(b, x.RHS, t)
	}
	return t
}

func isBitwise(op syntax.Token) bool {
	switch op {
	case syntax.Or, syntax.Xor, syntax.And, syntax.Shl, syntax.Shr:
		return true
	}
	return false
}

func (g *gen) update(b *Buffer, x *syntax.UpdateExpr) types.Type {
	target := syntax.Unparen(x.X)
	t := g.ref.TypeOf(target)
	if !types.IsNumeric(t) {
		g.errorf(UnhandledConstruct, x.Pos(), "operator %s on %s", x.Op, typeString(t))
		return nil
	}
	b.Write("(")
	if x.Prefix {
		b.Write(x.Op.String())
		g.lvalue(b, target)
	} else {
		g.lvalue(b, target)
		b.Write(x.Op.String())
	}
	b.Write(")")
	return t
}

// lvalue writes an assignment target.
func (g *gen) lvalue(b *Buffer, x syntax.Expr) {
	defer g.restore(g.at(x))
	switch x := x.(type) {
	case *syntax.Name:
		if _, ok := g.eng.ObjectOf(x).(*types.FuncObj); ok {
			g.errorf(UnhandledConstruct, x.Pos(), "assignment to function %s", x.Value)
			return
		}
		g.name(b, x, true)
	case *syntax.SelectorExpr:
		if _, ok := g.ref.TypeOf(x.X).(*types.Struct); ok {
			g.selector(b, x)
			return
		}
		g.errorf(UnhandledConstruct, x.Pos(), "assignment to member of %s", typeString(g.ref.TypeOf(x.X)))
	case *syntax.IndexExpr:
		if _, ok := g.ref.TypeOf(x.X).(*types.Array); ok {
			g.index(b, x)
			return
		}
		g.errorf(UnhandledConstruct, x.Pos(), "assignment to element of %s", typeString(g.ref.TypeOf(x.X)))
	default:
		g.errorf(UnhandledConstruct, x.Pos(), "invalid assignment target")
	}
}

func (g *gen) call(b *Buffer, x *syntax.CallExpr) types.Type {
	switch ft := g.ref.TypeOf(x.Fun).(type) {
	case *types.Func:
		if len(x.Args) > len(ft.Params()) {
			g.errorf(UnhandledConstruct, x.Pos(), "too many arguments in call to %s", syntax.ExprString(x.Fun))
			return result(ft)
		}
		g.expr(b, x.Fun)
		b.Write("(")
		for i, p := range ft.Params() {
			if i > 0 {
				b.Write(",")
			}
			if i < len(x.Args) {
				g.castTo(b, x.Args[i], p.Type())
			} else {
				g.zeroValue(b, p.Type())
			}
		}
		b.Write(")")
		return result(ft)

	case *types.Basic:
		if types.IsDynamic(ft) {
			b.Write("(", "(", rtabi.TypeValue, "(", "*", ")", "(", ")", ")", rtabi.UnboxFunction, "(")
			g.expr(b, x.Fun)
			b.Write(")", ")", "(")
			for i, arg := range x.Args {
				if i > 0 {
					b.Write(",")
				}
				g.expr(b, arg)
			}
			b.Write(")")
			return types.Typ[types.Dynamic]
		}
	}
	g.errorf(UnhandledConstruct, x.Pos(), "call of non-function %s", syntax.ExprString(x.Fun))
	return nil
}

func (g *gen) index(b *Buffer, x *syntax.IndexExpr) types.Type {
	switch t := g.ref.TypeOf(x.X).(type) {
	case *types.Array:
		g.expr(b, x.X)
		b.Write("[")
		g.castInt(b, x.Index)
		b.Write("]")
		return t.Elem()
	case *types.Basic:
		if types.IsString(t) {
			b.Write(rtabi.Hprintf, "(", `"%c"`, ",")
			g.expr(b, x.X)
			b.Write("[")
			g.castInt(b, x.Index)
			b.Write("]", ")")
			return t
		}
	}
	g.errorf(UnhandledConstruct, x.Pos(), "index of %s", typeString(g.ref.TypeOf(x.X)))
	return nil
}

func (g *gen) selector(b *Buffer, x *syntax.SelectorExpr) types.Type {
	sel := x.Sel.Value
	switch t := g.ref.TypeOf(x.X).(type) {
	case *types.Struct:
		f, _ := t.Lookup(sel)
		if f == nil {
			g.errorf(UnhandledConstruct, x.Pos(), "%s has no field %s", typeString(t), sel)
			return nil
		}
		g.expr(b, x.X)
		b.Write(".", g.sess.mangle(sel))
		return f.Type()
	case *types.Basic:
		switch {
		case types.IsString(t) && sel == "length":
			b.Write("(", "(", rtabi.TypeInt, ")", rtabi.FnStrlen, "(")
			g.expr(b, x.X)
			b.Write(")", ")")
			return types.Typ[types.Int]
		case types.IsDynamic(t):
			g.errorf(UnhandledConstruct, x.Pos(), "member access on dynamic value")
			return nil
		}
	case *types.Array:
		if sel == "length" {
			g.errorf(UnhandledConstruct, x.Pos(), "length of array")
			return nil
		}
	}
	g.errorf(UnhandledConstruct, x.Pos(), "member %s of %s", sel, typeString(g.ref.TypeOf(x.X)))
	return nil
}
