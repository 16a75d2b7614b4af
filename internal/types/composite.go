package types

import (
	"sort"
	"strings"
)

// Array represents an array of elements of one type. The length is not
// part of the type.
type Array struct {
	typ
	elem Type
}

// NewArray creates a new array type with the given element type.
func NewArray(elem Type) *Array {
	return &Array{elem: elem}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// String implements Type.
func (a *Array) String() string {
	return "[]" + typeString(a.elem)
}

// Struct represents an object shape: an ordered list of named fields.
// The order is the order of first appearance in the source; it does not
// take part in identity.
type Struct struct {
	typ
	fields []*Var
}

// NewStruct creates a new struct type with the given fields.
func NewStruct(fields []*Var) *Struct {
	return &Struct{fields: fields}
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the field at the given index.
func (s *Struct) Field(i int) *Var {
	return s.fields[i]
}

// Fields returns all fields.
func (s *Struct) Fields() []*Var {
	return s.fields
}

// Lookup returns the field with the given name and its index,
// or (nil, -1) if there is none.
func (s *Struct) Lookup(name string) (*Var, int) {
	for i, f := range s.fields {
		if f.Name() == name {
			return f, i
		}
	}
	return nil, -1
}

// sorted returns the fields ordered by name.
func (s *Struct) sorted() []*Var {
	fields := make([]*Var, len(s.fields))
	copy(fields, s.fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name() < fields[j].Name()
	})
	return fields
}

// String implements Type. Fields are listed by name so that structs
// with the same shape print the same way.
func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("struct{")
	for i, f := range s.sorted() {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(f.Name())
		buf.WriteString(" ")
		buf.WriteString(typeString(f.Type()))
	}
	buf.WriteString("}")
	return buf.String()
}

// Func represents a function type.
type Func struct {
	typ
	params []*Var // parameters
	result Type   // return type; Dynamic when the function returns nothing useful
}

// NewFunc creates a new function type.
func NewFunc(params []*Var, result Type) *Func {
	return &Func{params: params, result: result}
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter at index i.
func (f *Func) Param(i int) *Var {
	return f.params[i]
}

// Result returns the result type.
func (f *Func) Result() Type {
	return f.result
}

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString("func(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Name())
		buf.WriteString(" ")
		buf.WriteString(typeString(p.Type()))
	}
	buf.WriteString(") ")
	buf.WriteString(typeString(f.result))
	return buf.String()
}

// typeString is like t.String but tolerates a nil type.
func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
