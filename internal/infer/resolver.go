package infer

import (
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// collect hoists the var and function declarations of a function body
// (or the program) into the current scope. Nested functions are not
// entered.
func (c *checker) collect(body syntax.Node) {
	syntax.InspectBody(body, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.VarSpec:
			c.collectVar(n)
		case *syntax.FuncDecl:
			c.collectFunc(n)
			return false
		}
		return true
	})
}

// collectVar declares the variable of a declarator. Declaring a name
// again, or declaring a parameter's name, refers to the same variable.
func (c *checker) collectVar(spec *syntax.VarSpec) {
	name := spec.Name.Value
	if obj := c.scope.Lookup(name); obj != nil {
		switch obj := obj.(type) {
		case *types.Var:
			obj.AddDecl(spec)
			c.def(spec.Name, obj)
		case *types.FuncObj:
			c.errorf(spec.Name.Pos(), "%s is declared both as a variable and a function", name)
		}
		return
	}

	v := types.NewVar(spec.Name.Pos(), name, nil)
	v.AddDecl(spec)
	c.scope.Insert(v)
	c.eng.objs[v] = new(aval)
	c.def(spec.Name, v)
}

// collectFunc declares a function and creates its shape, so that calls
// before the declaration see it.
func (c *checker) collectFunc(decl *syntax.FuncDecl) {
	name := decl.Name.Value
	if obj := c.scope.Lookup(name); obj != nil {
		if _, ok := obj.(*types.FuncObj); ok {
			c.errorf(decl.Name.Pos(), "function %s redeclared", name)
		} else {
			c.errorf(decl.Name.Pos(), "%s is declared both as a variable and a function", name)
		}
		return
	}

	obj := types.NewFuncObj(decl)
	c.scope.Insert(obj)
	s := newFunc(decl.Params)
	a := new(aval)
	a.add(s)
	c.eng.objs[obj] = a
	c.eng.funcs[decl] = s
	c.def(decl.Name, obj)
}

// resolve resolves a name to an object.
// Reports an error if the name is undefined.
func (c *checker) resolve(name *syntax.Name) types.Object {
	obj, _ := c.scope.LookupParent(name.Value)
	if obj == nil {
		c.errorf(name.Pos(), "undefined: %s", name.Value)
		return nil
	}
	c.use(name, obj)
	return obj
}
