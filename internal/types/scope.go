package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/you-not-fish/gum/internal/syntax"
)

// Scope represents a lexical scope. Variables are function scoped, so
// there is one scope for the program and one for every function
// declaration or function literal.
type Scope struct {
	parent   *Scope
	children []*Scope
	elems    map[string]Object
	node     syntax.Node // *syntax.Program, *syntax.FuncDecl or *syntax.FuncLit
	sig      *Func       // signature of the function; nil at top level
	comment  string      // debugging comment (e.g., "function foo")
}

// NewScope creates a new scope for node with the given parent.
func NewScope(parent *Scope, node syntax.Node, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		elems:   make(map[string]Object),
		node:    node,
		comment: comment,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the parent scope, or nil for the top-level scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Children returns the list of child scopes.
func (s *Scope) Children() []*Scope {
	return s.children
}

// Node returns the syntax node the scope belongs to.
func (s *Scope) Node() syntax.Node {
	return s.node
}

// IsTop reports whether s is the top-level scope of the program.
func (s *Scope) IsTop() bool {
	return s.parent == nil
}

// Top returns the outermost scope enclosing s.
func (s *Scope) Top() *Scope {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// Signature returns the signature of the function owning the scope,
// or nil for the top-level scope.
func (s *Scope) Signature() *Func {
	return s.sig
}

// SetSignature sets the function signature.
func (s *Scope) SetSignature(sig *Func) {
	s.sig = sig
}

// Params returns the parameter names of the function owning the scope.
func (s *Scope) Params() []string {
	var params []*syntax.Name
	switch n := s.node.(type) {
	case *syntax.FuncDecl:
		params = n.Params
	case *syntax.FuncLit:
		params = n.Params
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Value
	}
	return names
}

// Body returns the body of the function owning the scope, or nil for
// the top-level scope.
func (s *Scope) Body() *syntax.BlockStmt {
	switch n := s.node.(type) {
	case *syntax.FuncDecl:
		return n.Body
	case *syntax.FuncLit:
		return n.Body
	}
	return nil
}

// Pos returns the start position of the scope in source.
func (s *Scope) Pos() syntax.Pos {
	if s.node == nil {
		return syntax.Pos{}
	}
	return s.node.Pos()
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the object with the given name in the current scope.
// Returns nil if not found in this scope (does not search parent scopes).
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// LookupParent returns the object with the given name by searching
// from the current scope up through all parent scopes.
// Returns the object and the scope in which it was found.
// Returns (nil, nil) if not found.
func (s *Scope) LookupParent(name string) (Object, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if obj := scope.elems[name]; obj != nil {
			return obj, scope
		}
	}
	return nil, nil
}

// Insert inserts an object into the scope.
// If an object with the same name already exists, returns the existing object.
// Otherwise, returns nil.
func (s *Scope) Insert(obj Object) Object {
	name := obj.Name()
	if existing := s.elems[name]; existing != nil {
		return existing
	}
	s.elems[name] = obj
	obj.setParent(s)
	return nil
}

// Names returns the names of all objects in the scope, sorted alphabetically.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumObjects returns the number of objects in the scope.
func (s *Scope) NumObjects() int {
	return len(s.elems)
}

// String returns a string representation of the scope for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %s {\n", prefix, s.comment)
	for _, name := range s.Names() {
		obj := s.elems[name]
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, name, typeString(obj.Type()))
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}
