package types

// Identical reports whether x and y are identical types.
// Struct identity compares the set of field names and the type of each
// field; field order and the place the shape was written do not matter.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return identicalStructs(x, y)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	return false
}

func identicalStructs(x, y *Struct) bool {
	if len(x.fields) != len(y.fields) {
		return false
	}
	for _, f := range x.fields {
		g, _ := y.Lookup(f.Name())
		if g == nil || !Identical(f.Type(), g.Type()) {
			return false
		}
	}
	return true
}

// identicalFuncs compares parameter types position by position.
// Parameter names are not part of the type.
func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

// SameKind reports whether x and y are both functions, both arrays, or
// both structs. It is a compatibility test for composite values and is
// never used for exact matches.
func SameKind(x, y Type) bool {
	switch x.(type) {
	case *Func:
		_, ok := y.(*Func)
		return ok
	case *Array:
		_, ok := y.(*Array)
		return ok
	case *Struct:
		_, ok := y.(*Struct)
		return ok
	}
	return false
}

// Is reports whether t is the basic type of the given kind.
func Is(t Type, kind BasicKind) bool {
	b, ok := t.(*Basic)
	return ok && b != nil && b.kind == kind
}

// IsInteger reports whether t is Int.
func IsInteger(t Type) bool {
	return Is(t, Int)
}

// IsNumeric reports whether t is Int or Num.
func IsNumeric(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b != nil && b.info&InfoNumeric != 0
}

// IsString reports whether t is Str.
func IsString(t Type) bool {
	return Is(t, Str)
}

// IsDynamic reports whether t is the boxed dynamic type.
func IsDynamic(t Type) bool {
	return Is(t, Dynamic)
}

// IsComposite reports whether t is a function, array, or struct type.
func IsComposite(t Type) bool {
	switch t.(type) {
	case *Func, *Array, *Struct:
		return true
	}
	return false
}

// Valid reports whether t is a representable type.
func Valid(t Type) bool {
	switch t := t.(type) {
	case *Basic:
		return t != nil && t.kind != Invalid
	case *Array:
		return t != nil && Valid(t.elem)
	case *Struct:
		if t == nil {
			return false
		}
		for _, f := range t.fields {
			if !Valid(f.Type()) {
				return false
			}
		}
		return true
	case *Func:
		if t == nil {
			return false
		}
		for _, p := range t.params {
			if !Valid(p.Type()) {
				return false
			}
		}
		return Valid(t.result)
	}
	return false
}
