package codegen

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/you-not-fish/gum/internal/rtabi"
	"github.com/you-not-fish/gum/internal/types"
)

// writeType writes a C declaration of type t to b. The declarator
// (normally the identifier) is written by id; a nil id writes an
// abstract declarator, as needed by casts. isConst qualifies the
// declared object. A positive length declares an array of that many
// elements instead of a pointer.
func (g *gen) writeType(b *Buffer, t types.Type, id func(), isConst bool, length int) {
	declare := func() {
		if isConst {
			b.Write("const")
		}
		if id != nil {
			id()
		}
	}

	switch t := t.(type) {
	case *types.Basic:
		switch {
		case types.Is(t, types.Dynamic):
			b.Write(rtabi.TypeValue)
		case types.Is(t, types.Num):
			b.Write(rtabi.TypeNumber)
		case types.Is(t, types.Int):
			b.Write(rtabi.TypeInt)
		case types.Is(t, types.Bool):
			b.Write(rtabi.TypeBool)
		case types.Is(t, types.Str):
			b.Write(rtabi.TypeString)
		default:
			g.errorf(UnrepresentableType, g.pos, "invalid type has no C representation")
			return
		}
		declare()

	case *types.Array:
		g.writeType(b, t.Elem(), func() {
			if length > 0 {
				if id != nil {
					id()
				}
				b.Write("[", itoa(length), "]")
				return
			}
			b.Write("*")
			declare()
		}, false, 0)

	case *types.Func:
		result := t.Result()
		if result == nil {
			result = types.Typ[types.Dynamic]
		}
		g.writeType(b, result, func() {
			b.Write("(", "*")
			declare()
			b.Write(")")
			g.writeParams(b, t)
		}, false, 0)

	case *types.Struct:
		b.Write(g.structName(b, t))
		declare()

	default:
		g.errorf(UnrepresentableType, g.pos, "invalid type has no C representation")
	}
}

// writeParams writes a parenthesized parameter list for signature sig.
func (g *gen) writeParams(b *Buffer, sig *types.Func) {
	b.Write("(")
	if sig.NumParams() == 0 {
		b.Write("void")
	}
	for i, p := range sig.Params() {
		if i > 0 {
			b.Write(",")
		}
		name := g.sess.mangle(p.Name())
		g.writeType(b, p.Type(), func() { b.Write(name) }, false, 0)
	}
	b.Write(")")
}

// typeName writes t as an abstract type name, as used in casts and
// compound literals.
func (g *gen) typeName(b *Buffer, t types.Type) {
	g.writeType(b, t, nil, false, 0)
}

// structName returns the typedef name of a struct shape, emitting the
// typedef ahead of b's output the first time the shape is seen. Shapes
// with the same field names and field types share one typedef.
func (g *gen) structName(b *Buffer, t *types.Struct) string {
	key := shapeKey(t)
	if name, ok := g.sess.lookupStruct(key); ok {
		return name
	}

	name := g.sess.NewID(rtabi.StructPrefix)
	td := NewBuffer()
	td.Write("typedef", "struct", "{")
	td.Newline()
	fields := sortedFields(t)
	for _, f := range fields {
		field := g.sess.mangle(f.Name())
		g.writeType(td, f.Type(), func() { td.Write(field) }, false, 0)
		td.Write(";")
		td.Newline()
	}
	if len(fields) == 0 {
		td.Write("char", "_", ";")
		td.Newline()
	}
	td.Write("}", name, ";")
	td.Newline()
	Pre(td, b)

	g.sess.addStruct(key, name)
	return name
}

func sortedFields(t *types.Struct) []*types.Var {
	fields := append([]*types.Var(nil), t.Fields()...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name() < fields[j].Name() })
	return fields
}

// shapeKey returns the registry key of a struct: the JSON encoding of
// its (name, type) pairs sorted by name.
func shapeKey(t *types.Struct) string {
	fields := sortedFields(t)
	pairs := make([][2]string, len(fields))
	for i, f := range fields {
		pairs[i] = [2]string{f.Name(), keyString(f.Type())}
	}
	data, _ := json.Marshal(pairs)
	return string(data)
}

// keyString is like Type.String but leaves out parameter names, which
// do not change a C function pointer type.
func keyString(t types.Type) string {
	switch t := t.(type) {
	case *types.Array:
		return "[]" + keyString(t.Elem())
	case *types.Func:
		var sb strings.Builder
		sb.WriteString("func(")
		for i, p := range t.Params() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(keyString(p.Type()))
		}
		sb.WriteString(")")
		if t.Result() != nil {
			sb.WriteString(" " + keyString(t.Result()))
		}
		return sb.String()
	case *types.Struct:
		return shapeKey(t)
	case nil:
		return "<nil>"
	}
	return t.String()
}

// zeroValue writes the value a missing argument of type t receives.
func (g *gen) zeroValue(b *Buffer, t types.Type) {
	switch {
	case types.IsDynamic(t):
		b.Write(rtabi.Undefined)
	case types.Is(t, types.Num):
		b.Write(rtabi.NaN)
	case types.Is(t, types.Int):
		b.Write("0")
	case types.Is(t, types.Bool):
		b.Write("false")
	default:
		if s, ok := t.(*types.Struct); ok {
			b.Write("(", g.structName(b, s), ")", "{", "0", "}")
			return
		}
		b.Write("NULL")
	}
}
