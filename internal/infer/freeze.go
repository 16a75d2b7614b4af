package infer

import "github.com/you-not-fish/gum/internal/types"

// freeze converts an abstract value to a static type.
func (e *Engine) freeze(a *aval) types.Type {
	if a == nil || a.conflict || a.typ == nil {
		return types.Typ[types.Dynamic]
	}
	return e.freezeShape(a.typ.find())
}

// freezeShape converts a representative shape to a static type.
// A shape reached again while it is being converted is recursive and
// becomes Dynamic at the point of recursion.
func (e *Engine) freezeShape(s *shape) types.Type {
	switch s.kind {
	case numKind:
		return types.Typ[types.Num]
	case intKind:
		return types.Typ[types.Int]
	case strKind:
		return types.Typ[types.Str]
	case boolKind:
		return types.Typ[types.Bool]
	}

	if t, ok := e.frozen[s]; ok {
		return t
	}
	if e.freezing[s] {
		return types.Typ[types.Dynamic]
	}
	e.freezing[s] = true
	defer delete(e.freezing, s)

	var t types.Type
	switch s.kind {
	case objKind:
		fields := make([]*types.Var, len(s.order))
		for i, name := range s.order {
			fields[i] = types.NewField(noPos, name, e.freeze(s.props[name]))
		}
		t = types.NewStruct(fields)
	case arrKind:
		t = types.NewArray(e.freeze(s.elem))
	case fnKind:
		params := make([]*types.Var, len(s.params))
		for i, p := range s.params {
			params[i] = types.NewParam(noPos, s.names[i], e.freeze(p))
		}
		t = types.NewFunc(params, e.freeze(s.ret))
	}
	e.frozen[s] = t
	return t
}

// fixedAval builds the abstract value of a table-declared type.
func fixedAval(t types.Type) *aval {
	a := &aval{fixed: true}
	switch t := t.(type) {
	case *types.Basic:
		switch {
		case types.Is(t, types.Int):
			a.typ = intShape
		case types.Is(t, types.Num):
			a.typ = numShape
		case types.Is(t, types.Str):
			a.typ = strShape
		case types.Is(t, types.Bool):
			a.typ = boolShape
		default:
			a.conflict = true
		}
	case *types.Array:
		a.typ = &shape{kind: arrKind, fixed: true, elem: fixedAval(t.Elem())}
	case *types.Struct:
		s := newObject()
		s.fixed = true
		for _, f := range t.Fields() {
			s.props[f.Name()] = fixedAval(f.Type())
			s.order = append(s.order, f.Name())
		}
		a.typ = s
	case *types.Func:
		s := &shape{kind: fnKind, fixed: true}
		for _, p := range t.Params() {
			s.params = append(s.params, fixedAval(p.Type()))
			s.names = append(s.names, p.Name())
		}
		if t.Result() != nil {
			s.ret = fixedAval(t.Result())
		} else {
			s.ret = new(aval)
		}
		a.typ = s
	default:
		a.conflict = true
	}
	return a
}
