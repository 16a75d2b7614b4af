package codegen

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// An Analyzer decides which variables can be emitted as const values.
// A variable is constant when nothing in the function declaring it
// (nested functions included) assigns it, increments or decrements it,
// or passes it as a call argument, and its initializer reads only
// constants and accesses no members.
type Analyzer struct {
	eng      *infer.Engine
	facts    map[*types.Scope]*mutations
	memo     map[types.Object]bool
	visiting map[types.Object]bool
}

// mutations records how the variables of one scope are written.
type mutations struct {
	assigned *set.Set[types.Object]
	updated  *set.Set[types.Object]
	passed   *set.Set[types.Object] // referenced inside a call argument
	members  *set.Set[types.Object] // root of an assigned member
}

// NewAnalyzer returns an analyzer over the results of eng.
func NewAnalyzer(eng *infer.Engine) *Analyzer {
	return &Analyzer{
		eng:      eng,
		facts:    make(map[*types.Scope]*mutations),
		memo:     make(map[types.Object]bool),
		visiting: make(map[types.Object]bool),
	}
}

// IsConst reports whether the binding name refers to is constant.
func (a *Analyzer) IsConst(name *syntax.Name) bool {
	obj := a.eng.ObjectOf(name)
	if obj == nil {
		return false
	}
	return a.isConst(obj)
}

func (a *Analyzer) isConst(obj types.Object) bool {
	if c, ok := a.memo[obj]; ok {
		return c
	}
	if a.visiting[obj] {
		// initializers that depend on each other
		return false
	}
	a.visiting[obj] = true
	c := a.compute(obj)
	delete(a.visiting, obj)
	a.memo[obj] = c
	return c
}

func (a *Analyzer) compute(obj types.Object) bool {
	v, ok := obj.(*types.Var)
	if !ok {
		// function declarations
		return true
	}
	if v.IsPredeclared() && (v.Name() == "argc" || v.Name() == "argv") {
		return false
	}
	if a.eng.SelfFunc(v) != nil {
		return true
	}
	if len(v.Decls()) > 1 {
		// a repeated declarator assigns
		return false
	}

	scope := v.Parent()
	if scope == nil {
		return false
	}
	m := a.mutationsOf(scope)
	if m.assigned.Contains(obj) || m.updated.Contains(obj) || m.passed.Contains(obj) {
		return false
	}

	if spec := v.Decl(); spec != nil && spec.Value != nil {
		return a.constInit(spec.Value)
	}
	return true
}

// constInit reports whether an initializer reads only constants and
// accesses no members. Function literals are values; their bodies are
// not inspected.
func (a *Analyzer) constInit(x syntax.Expr) bool {
	ok := true
	var visit func(n syntax.Node) bool
	visit = func(n syntax.Node) bool {
		if !ok {
			return false
		}
		switch n := n.(type) {
		case *syntax.FuncLit:
			return false
		case *syntax.SelectorExpr, *syntax.IndexExpr:
			ok = false
		case *syntax.KeyValueExpr:
			// the key names a property, not a binding
			syntax.Inspect(n.Value, visit)
			return false
		case *syntax.Name:
			if obj := a.eng.ObjectOf(n); obj == nil || !a.isConst(obj) {
				ok = false
			}
		}
		return ok
	}
	syntax.Inspect(x, visit)
	return ok
}

// mutationsOf computes, once per scope, which of its variables are
// written.
func (a *Analyzer) mutationsOf(scope *types.Scope) *mutations {
	if m, ok := a.facts[scope]; ok {
		return m
	}
	m := &mutations{
		assigned: set.New[types.Object](0),
		updated:  set.New[types.Object](0),
		passed:   set.New[types.Object](0),
		members:  set.New[types.Object](0),
	}
	local := func(x syntax.Expr) types.Object {
		name, ok := syntax.Unparen(x).(*syntax.Name)
		if !ok {
			return nil
		}
		if obj := a.eng.ObjectOf(name); obj != nil && obj.Parent() == scope {
			return obj
		}
		return nil
	}

	syntax.Inspect(scope.Node(), func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.AssignExpr:
			if obj := local(n.LHS); obj != nil {
				m.assigned.Insert(obj)
			} else if obj := local(memberRoot(n.LHS)); obj != nil {
				m.members.Insert(obj)
			}
		case *syntax.UpdateExpr:
			if obj := local(n.X); obj != nil {
				m.updated.Insert(obj)
			} else if obj := local(memberRoot(n.X)); obj != nil {
				m.members.Insert(obj)
			}
		case *syntax.CallExpr:
			for _, arg := range n.Args {
				syntax.Inspect(arg, func(an syntax.Node) bool {
					if name, ok := an.(*syntax.Name); ok {
						if obj := local(name); obj != nil {
							m.passed.Insert(obj)
						}
					}
					return true
				})
			}
		}
		return true
	})
	a.facts[scope] = m
	return m
}

// MemberWritten reports whether a field or element of the variable obj
// is assigned within its scope. Such writes leave the binding itself
// constant but rule out a const-qualified struct.
func (a *Analyzer) MemberWritten(obj types.Object) bool {
	if obj == nil || obj.Parent() == nil {
		return false
	}
	return a.mutationsOf(obj.Parent()).members.Contains(obj)
}

// memberRoot returns the variable expression at the base of a chain of
// member accesses, or x itself.
func memberRoot(x syntax.Expr) syntax.Expr {
	for {
		switch e := syntax.Unparen(x).(type) {
		case *syntax.SelectorExpr:
			x = e.X
		case *syntax.IndexExpr:
			x = e.X
		default:
			return e
		}
	}
}
