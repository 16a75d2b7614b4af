package infer

import (
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

var noPos syntax.Pos

// checker walks a program once, generating constraints. Types propagate
// as soon as a constraint is registered, so the solution is complete when
// the walk ends.
type checker struct {
	conf *Config
	info *Info
	eng  *Engine

	// Current checking context
	scope *types.Scope // current function scope
	fn    *shape       // shape of the current function; nil at top level

	// Error tracking
	errors int        // error count
	first  *TypeError // first error
}

// checkProgram infers a whole program.
func (c *checker) checkProgram(prog *syntax.Program) {
	c.scope = types.NewScope(nil, prog, "top")
	c.eng.top = c.scope
	c.eng.fnScope[prog] = c.scope
	if c.info != nil {
		c.info.Scopes[prog] = c.scope
	}

	// Phase 1: hoist var and function declarations.
	c.collect(prog)

	// Phase 2: seed runtime globals.
	c.seed()

	// Phase 3: walk statements and function bodies.
	c.stmtList(prog.Body)
}

// seed declares the runtime globals. A top-level variable of the same
// name takes the global's fixed type.
func (c *checker) seed() {
	for _, g := range c.conf.Predeclared {
		a := fixedAval(g.Type)
		if obj := c.scope.Lookup(g.Name); obj != nil {
			if v, ok := obj.(*types.Var); ok {
				c.eng.objs[v] = a
				c.eng.seeded[v] = true
			}
			continue
		}
		v := types.NewPredeclared(g.Name, g.Type)
		c.scope.Insert(v)
		c.eng.objs[v] = a
		c.eng.seeded[v] = true
	}
}

// openFunc creates the scope of a function and binds its parameters.
func (c *checker) openFunc(n syntax.Node, params []*syntax.Name, s *shape, comment string) *types.Scope {
	scope := types.NewScope(c.scope, n, comment)
	c.eng.fnScope[n] = scope
	if c.info != nil {
		c.info.Scopes[n] = scope
	}

	for i, p := range params {
		if scope.Lookup(p.Value) != nil {
			c.errorf(p.Pos(), "duplicate parameter %s", p.Value)
			continue
		}
		v := types.NewParam(p.Pos(), p.Value, nil)
		scope.Insert(v)
		c.eng.objs[v] = s.params[i]
		c.def(p, v)
		c.record(p, s.params[i])
	}
	return scope
}

// funcBody checks the body of a function in its own scope.
func (c *checker) funcBody(scope *types.Scope, s *shape, body *syntax.BlockStmt) {
	outer, outerFn := c.scope, c.fn
	c.scope, c.fn = scope, s
	defer func() { c.scope, c.fn = outer, outerFn }()

	c.collect(body)
	c.stmtList(body.Stmts)
}

// objAval returns the abstract value of a declared object.
func (c *checker) objAval(obj types.Object) *aval {
	a, ok := c.eng.objs[obj]
	if !ok {
		a = new(aval)
		c.eng.objs[obj] = a
	}
	return a
}

// record associates an expression with its abstract value.
func (c *checker) record(x syntax.Expr, a *aval) {
	if _, ok := c.eng.exprs[x]; !ok {
		c.eng.order = append(c.eng.order, x)
	}
	c.eng.exprs[x] = a
	c.eng.nodeScope[x] = c.scope
}

// def records a defining identifier.
func (c *checker) def(name *syntax.Name, obj types.Object) {
	c.eng.objects[name] = obj
	if c.info != nil {
		c.info.Defs[name] = obj
	}
}

// use records a referencing identifier.
func (c *checker) use(name *syntax.Name, obj types.Object) {
	c.eng.objects[name] = obj
	if c.info != nil {
		c.info.Uses[name] = obj
	}
}

// finish freezes the solution into the objects, scopes and Info.
// Everything is visited in a fixed order so that recursive shapes are
// cut at the same place on every run.
func (c *checker) finish() {
	c.finishScope(c.eng.top)
	if c.info != nil {
		for _, x := range c.eng.order {
			c.info.Types[x] = c.eng.freeze(c.eng.exprs[x])
		}
	}
}

func (c *checker) finishScope(s *types.Scope) {
	if n := s.Node(); n != nil {
		if sig := c.eng.FuncType(n); sig != nil {
			s.SetSignature(sig)
		}
	}
	for _, name := range s.Names() {
		switch obj := s.Lookup(name).(type) {
		case *types.Var:
			if !obj.IsPredeclared() {
				obj.SetType(c.eng.freeze(c.eng.objs[obj]))
			}
		case *types.FuncObj:
			if sig := c.eng.FuncType(obj.Decl()); sig != nil {
				obj.SetSignature(sig)
			}
		}
	}
	for _, child := range s.Children() {
		c.finishScope(child)
	}
}
