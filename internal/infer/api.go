package infer

import (
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// Config specifies the configuration for inference.
type Config struct {
	// Error is called for each type error.
	// If nil, errors are silently ignored.
	Error ErrorHandler

	// Predeclared lists the globals provided by the target runtime, with
	// their fixed types. A top-level variable of the program with the same
	// name takes the fixed type instead of an inferred one.
	Predeclared []Global
}

// Global is a name provided by the target runtime.
type Global struct {
	Name string
	Type types.Type
}

// Info holds the results of inference.
type Info struct {
	// Types maps expressions to their inferred type.
	Types map[syntax.Expr]types.Type

	// Defs maps defining identifiers (declarators, parameters, function
	// names) to their objects.
	Defs map[*syntax.Name]types.Object

	// Uses maps referencing identifiers to their objects.
	Uses map[*syntax.Name]types.Object

	// Scopes maps the program and every function to its scope.
	Scopes map[syntax.Node]*types.Scope
}

// Check infers types for a parsed program.
// It returns the engine holding the results and the first error
// encountered, if any.
func Check(prog *syntax.Program, conf *Config, info *Info) (*Engine, error) {
	if conf == nil {
		conf = &Config{}
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]types.Type)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]types.Object)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]types.Object)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]*types.Scope)
		}
	}

	c := &checker{
		conf: conf,
		info: info,
		eng:  newEngine(),
	}

	c.checkProgram(prog)
	c.finish()

	if c.errors > 0 {
		return c.eng, c.first
	}
	return c.eng, nil
}

// Engine holds the inference results for one program. All queries are
// answered from the solved state and never change earlier answers.
type Engine struct {
	top       *types.Scope
	exprs     map[syntax.Expr]*aval
	order     []syntax.Expr // recorded expressions in walk order
	objs      map[types.Object]*aval
	nodeScope map[syntax.Node]*types.Scope
	fnScope   map[syntax.Node]*types.Scope
	funcs     map[syntax.Node]*shape
	objects   map[*syntax.Name]types.Object
	seeded    map[types.Object]bool
	self      map[types.Object]*syntax.FuncLit

	frozen   map[*shape]types.Type
	freezing map[*shape]bool
}

func newEngine() *Engine {
	return &Engine{
		exprs:     make(map[syntax.Expr]*aval),
		objs:      make(map[types.Object]*aval),
		nodeScope: make(map[syntax.Node]*types.Scope),
		fnScope:   make(map[syntax.Node]*types.Scope),
		funcs:     make(map[syntax.Node]*shape),
		objects:   make(map[*syntax.Name]types.Object),
		seeded:    make(map[types.Object]bool),
		self:      make(map[types.Object]*syntax.FuncLit),
		frozen:    make(map[*shape]types.Type),
		freezing:  make(map[*shape]bool),
	}
}

// TopScope returns the scope of the program.
func (e *Engine) TopScope() *types.Scope {
	return e.top
}

// ExprType returns the inferred type of x. Numbers are reported as Num
// unless they come from an integer-typed runtime global; values of
// unknown or conflicting type are Dynamic.
func (e *Engine) ExprType(x syntax.Expr) types.Type {
	if a, ok := e.exprs[x]; ok {
		return e.freeze(a)
	}
	if p, ok := x.(*syntax.ParenExpr); ok {
		return e.ExprType(p.X)
	}
	return types.Typ[types.Dynamic]
}

// ScopeOf returns the scope of the function whose body contains n. For a
// function declaration or literal this is the enclosing scope, not its
// own; use FuncScope for that.
func (e *Engine) ScopeOf(n syntax.Node) *types.Scope {
	if s, ok := e.nodeScope[n]; ok {
		return s
	}
	return e.top
}

// FuncScope returns the scope opened by a function declaration, function
// literal or the program.
func (e *Engine) FuncScope(n syntax.Node) *types.Scope {
	return e.fnScope[n]
}

// FuncType returns the signature of a function declaration or literal.
func (e *Engine) FuncType(n syntax.Node) *types.Func {
	s, ok := e.funcs[n]
	if !ok {
		return nil
	}
	f, _ := e.freezeShape(s.find()).(*types.Func)
	return f
}

// ObjectOf returns the object a name defines or refers to.
func (e *Engine) ObjectOf(n *syntax.Name) types.Object {
	return e.objects[n]
}

// IsSeeded reports whether obj takes its type from the signature table,
// either because it is a runtime global or because the program declares
// a variable of the same name at top level.
func (e *Engine) IsSeeded(obj types.Object) bool {
	return e.seeded[obj]
}

// SelfFunc returns the function literal obj names, when obj is the name
// of a named function literal visible inside its own body.
func (e *Engine) SelfFunc(obj types.Object) *syntax.FuncLit {
	return e.self[obj]
}
