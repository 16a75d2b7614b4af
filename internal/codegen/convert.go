package codegen

import (
	"github.com/you-not-fish/gum/internal/rtabi"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// cast writes e converted to type to, where from is the type e's
// emission has.
func (g *gen) cast(b *Buffer, e syntax.Expr, from, to types.Type) {
	g.convert(b, from, to, func() { g.expr(b, e) })
}

// castTo writes e converted to type to.
func (g *gen) castTo(b *Buffer, e syntax.Expr, to types.Type) {
	g.cast(b, e, g.ref.TypeOf(e), to)
}

// convert writes the value emit produces, of type from, as a value of
// type to. A pair without a conversion is an UnsupportedConversion
// error.
func (g *gen) convert(b *Buffer, from, to types.Type, emit func()) {
	if from == nil || to == nil || types.Identical(from, to) || types.SameKind(from, to) {
		emit()
		return
	}

	switch to := to.(type) {
	case *types.Func:
		if types.IsDynamic(from) {
			b.Write("(", "(")
			g.typeName(b, to)
			b.Write(")", rtabi.UnboxFunction, "(")
			emit()
			b.Write(")", ")")
			return
		}

	case *types.Array:
		if types.IsDynamic(from) {
			b.Write("(", "(")
			g.typeName(b, to)
			b.Write(")", rtabi.UnboxArray, "(")
			emit()
			b.Write(")", ")")
			return
		}

	case *types.Struct:
		if types.IsDynamic(from) {
			b.Write("(", "*", "(", g.structName(b, to), "*", ")", rtabi.UnboxObject, "(")
			emit()
			b.Write(")", ")")
			return
		}

	case *types.Basic:
		if g.convertBasic(b, from, to, emit) {
			return
		}
	}
	g.errorf(UnsupportedConversion, g.pos, "cannot convert %s to %s", typeString(from), typeString(to))
}

func (g *gen) convertBasic(b *Buffer, from types.Type, to *types.Basic, emit func()) bool {
	call := func(fn string) {
		b.Write(fn, "(", "(")
		emit()
		b.Write(")", ")")
	}

	switch to.Kind() {
	case types.Str:
		switch {
		case types.IsDynamic(from):
			call(rtabi.UnboxString)
		case types.Is(from, types.Int):
			b.Write(rtabi.Hprintf, "(", `"%ld"`, ",", "(", rtabi.TypeInt, ")", "(")
			emit()
			b.Write(")", ")")
		case types.Is(from, types.Num):
			b.Write(rtabi.Hprintf, "(", `"%g"`, ",", "(", rtabi.TypeNumber, ")", "(")
			emit()
			b.Write(")", ")")
		case types.Is(from, types.Bool):
			b.Write("(", "(")
			emit()
			b.Write(")", "?", `"true"`, ":", `"false"`, ")")
		case types.IsComposite(from):
			b.Write(rtabi.UnboxString, "(")
			g.convert(b, from, types.Typ[types.Dynamic], emit)
			b.Write(")")
		default:
			return false
		}

	case types.Int, types.Num:
		switch {
		case types.IsDynamic(from):
			if to.Kind() == types.Int {
				b.Write("(", "(", rtabi.TypeInt, ")")
				call(rtabi.UnboxNumber)
				b.Write(")")
				return true
			}
			call(rtabi.UnboxNumber)
		case types.Is(from, types.Num) && to.Kind() == types.Int:
			b.Write("(", "(", rtabi.TypeInt, ")", "(")
			emit()
			b.Write(")", ")")
		case types.IsNumeric(from), types.Is(from, types.Bool):
			emit()
		default:
			return false
		}

	case types.Bool:
		if !types.IsDynamic(from) {
			return false
		}
		call(rtabi.UnboxBool)

	case types.Dynamic:
		switch {
		case types.IsNumeric(from):
			call(rtabi.BoxNumber)
		case types.Is(from, types.Bool):
			call(rtabi.BoxBool)
		case types.IsString(from):
			call(rtabi.BoxString)
		default:
			switch from.(type) {
			case *types.Func:
				call(rtabi.BoxFunction)
			case *types.Array:
				call(rtabi.BoxArray)
			case *types.Struct:
				call(rtabi.BoxObject)
			default:
				return false
			}
		}

	default:
		return false
	}
	return true
}

// test writes e as a C condition with JS truthiness: 0, NaN and the
// empty string are false. Int, Bool and pointers use C truthiness.
func (g *gen) test(b *Buffer, e syntax.Expr) {
	t := g.ref.TypeOf(e)
	if _, ok := t.(*types.Struct); ok {
		b.Write("(", "(", "void", ")", "(")
		g.expr(b, e)
		b.Write(")", ",", "true", ")")
		return
	}
	truthy := func(fn string) {
		b.Write(fn, "(")
		g.expr(b, e)
		b.Write(")")
	}
	switch {
	case types.IsDynamic(t):
		g.cast(b, e, t, types.Typ[types.Bool])
	case types.Is(t, types.Num):
		truthy(rtabi.TruthyNumber)
	case types.IsString(t):
		truthy(rtabi.TruthyString)
	default:
		g.expr(b, e)
	}
}

// castInt writes e as a C long.
func (g *gen) castInt(b *Buffer, e syntax.Expr) {
	t := g.ref.TypeOf(e)
	if types.IsInteger(t) {
		g.expr(b, e)
		return
	}
	b.Write("(", rtabi.TypeInt, ")")
	g.cast(b, e, t, types.Typ[types.Num])
}

// castNum writes e as a C double.
func (g *gen) castNum(b *Buffer, e syntax.Expr) {
	g.castTo(b, e, types.Typ[types.Num])
}

func typeString(t types.Type) string {
	if t == nil {
		return "invalid type"
	}
	if b, ok := t.(*types.Basic); ok && b == nil {
		return "invalid type"
	}
	return t.String()
}
