package types

import "github.com/you-not-fish/gum/internal/syntax"

// Object represents a declared entity: a variable, a parameter, or a
// function.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// VarKind distinguishes the ways a variable can come into existence.
type VarKind int

const (
	LocalVar    VarKind = iota // declared with var
	ParamVar                   // function parameter
	FieldVar                   // struct field or function type parameter
	Predeclared                // seeded from the runtime signature table
)

// Var represents a variable, a parameter, or a struct field.
type Var struct {
	object
	kind  VarKind
	decls []*syntax.VarSpec // declarators, in source order
}

// NewVar creates a new local variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// NewParam creates a new function parameter object.
func NewParam(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: ParamVar}
}

// NewField creates a new struct field object.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: FieldVar}
}

// NewPredeclared creates a variable provided by the target runtime,
// such as argc or INFINITY.
func NewPredeclared(name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ}, kind: Predeclared}
}

// Kind returns how the variable was declared.
func (v *Var) Kind() VarKind {
	return v.kind
}

// IsParam reports whether this variable is a function parameter.
func (v *Var) IsParam() bool {
	return v.kind == ParamVar
}

// IsField reports whether this variable is a struct field.
func (v *Var) IsField() bool {
	return v.kind == FieldVar
}

// IsPredeclared reports whether this variable comes from the runtime.
func (v *Var) IsPredeclared() bool {
	return v.kind == Predeclared
}

// AddDecl records a declarator for the variable. A name declared more
// than once in the same function has several.
func (v *Var) AddDecl(spec *syntax.VarSpec) {
	v.decls = append(v.decls, spec)
}

// Decls returns the declarators of the variable in source order.
func (v *Var) Decls() []*syntax.VarSpec {
	return v.decls
}

// Decl returns the first declarator, or nil for parameters and
// predeclared variables.
func (v *Var) Decl() *syntax.VarSpec {
	if len(v.decls) == 0 {
		return nil
	}
	return v.decls[0]
}

// SetType sets the variable's type.
// This is called during inference once the type is resolved.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// FuncObj represents a declared function.
type FuncObj struct {
	object
	decl *syntax.FuncDecl
	sig  *Func // function signature (set after construction)
}

// NewFuncObj creates a new function object.
// The signature should be set later using SetSignature.
func NewFuncObj(decl *syntax.FuncDecl) *FuncObj {
	return &FuncObj{object: object{name: decl.Name.Value, pos: decl.Pos()}, decl: decl}
}

// Decl returns the function declaration.
func (f *FuncObj) Decl() *syntax.FuncDecl {
	return f.decl
}

// Signature returns the function signature.
func (f *FuncObj) Signature() *Func {
	return f.sig
}

// SetSignature sets the function signature.
func (f *FuncObj) SetSignature(sig *Func) {
	f.sig = sig
	f.typ = sig
}
