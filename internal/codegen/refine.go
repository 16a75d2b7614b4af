package codegen

import (
	"math"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

const noAssumption = math.MaxInt

// A Refiner narrows the types computed by inference, telling integers
// from other numbers. Answers are memoized per node.
//
// A local number variable is optimistically an integer: it is one unless
// some value stored into it, anywhere in the function that declares it,
// is not. Checking a store can require assuming that other variables are
// integers too; an answer that relied on an assumption still being
// checked is not memoized until that assumption is settled.
type Refiner struct {
	eng *infer.Engine

	types   map[syntax.Expr]types.Type
	ints    map[*types.Var]bool          // settled promotions
	stores  map[*types.Scope]*storeIndex // per-scope assignments, built on demand
	assumed map[*types.Var]int           // variables assumed integer -> assumption level
	level   int                          // number of assumptions in force
	dep     int                          // lowest assumption level the current query read
}

// storeIndex lists, per variable, the expressions stored into it within
// one function (nested functions included).
type storeIndex struct {
	stores map[*types.Var][]store
}

// store is one write to a variable.
type store struct {
	op    syntax.Token // 0 for = and declarator initializers
	value syntax.Expr
}

// NewRefiner returns a refiner over the results of eng.
func NewRefiner(eng *infer.Engine) *Refiner {
	return &Refiner{
		eng:     eng,
		types:   make(map[syntax.Expr]types.Type),
		ints:    make(map[*types.Var]bool),
		stores:  make(map[*types.Scope]*storeIndex),
		assumed: make(map[*types.Var]int),
		dep:     noAssumption,
	}
}

// TypeOf returns the refined type of e.
func (r *Refiner) TypeOf(e syntax.Expr) types.Type {
	if t, ok := r.types[e]; ok {
		return t
	}
	saved := r.dep
	r.dep = noAssumption
	t := r.refine(e)
	if r.dep > r.level {
		r.types[e] = t
	}
	r.dep = min(saved, r.dep)
	return t
}

func (r *Refiner) refine(e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.ParenExpr:
		return r.TypeOf(e.X)

	case *syntax.BasicLit:
		if e.Kind == syntax.NumberLit {
			if isIntLit(e) {
				return types.Typ[types.Int]
			}
			return types.Typ[types.Num]
		}

	case *syntax.Operation:
		if e.Y == nil {
			break
		}
		switch e.Op {
		case syntax.Or, syntax.Xor, syntax.And, syntax.Shl, syntax.Shr, syntax.Ushr:
			return types.Typ[types.Int]
		case syntax.Add, syntax.Sub, syntax.Mul, syntax.Rem:
			if types.IsInteger(r.TypeOf(e.X)) && types.IsInteger(r.TypeOf(e.Y)) {
				return types.Typ[types.Int]
			}
		}

	case *syntax.Name:
		// a named literal's own name has the literal's type
		if v, ok := r.eng.ObjectOf(e).(*types.Var); ok && r.eng.SelfFunc(v) == nil {
			return r.VarType(v)
		}
	}
	return r.eng.ExprType(e)
}

// isIntLit reports whether a number literal has an integral value that
// fits a C long.
func isIntLit(lit *syntax.BasicLit) bool {
	if !lit.IsIntegral() {
		return false
	}
	v, _ := lit.Float()
	return math.Abs(v) < 1<<63
}

// VarType returns the refined type of a variable.
func (r *Refiner) VarType(v *types.Var) types.Type {
	t := v.Type()
	if t == nil {
		return types.Typ[types.Dynamic]
	}
	if types.Is(t, types.Num) && r.promotable(v) && r.isInt(v) {
		return types.Typ[types.Int]
	}
	return t
}

// ObjectType returns the refined type of a declared object.
func (r *Refiner) ObjectType(obj types.Object) types.Type {
	if v, ok := obj.(*types.Var); ok {
		return r.VarType(v)
	}
	if t := obj.Type(); t != nil {
		return t
	}
	return types.Typ[types.Dynamic]
}

// promotable reports whether v may be narrowed at all. Parameters take
// whatever callers pass and table globals have fixed C types.
func (r *Refiner) promotable(v *types.Var) bool {
	switch {
	case v.IsParam(), v.IsField(), v.IsPredeclared():
		return false
	case r.eng.IsSeeded(v), r.eng.SelfFunc(v) != nil:
		return false
	}
	return v.Parent() != nil
}

// isInt decides whether every value stored into v is an integer.
func (r *Refiner) isInt(v *types.Var) bool {
	if ok, done := r.ints[v]; done {
		return ok
	}
	if l, ok := r.assumed[v]; ok {
		r.dep = min(r.dep, l)
		return true
	}

	r.level++
	l := r.level
	r.assumed[v] = l
	saved := r.dep
	r.dep = noAssumption

	ok := true
	for _, s := range r.storesOf(v) {
		if !r.intStore(s) {
			ok = false
			break
		}
	}

	delete(r.assumed, v)
	r.level--

	// A rejection stays valid under fewer assumptions; an acceptance is
	// final only if it relied on nothing but v itself.
	if !ok || r.dep >= l {
		r.ints[v] = ok
		r.dep = saved
	} else {
		r.dep = min(saved, r.dep)
	}
	return ok
}

// intStore reports whether a store keeps an integer variable integral.
func (r *Refiner) intStore(s store) bool {
	switch s.op {
	case 0, syntax.Add, syntax.Sub, syntax.Mul, syntax.Rem:
		return types.IsInteger(r.TypeOf(s.value))
	case syntax.Or, syntax.Xor, syntax.And, syntax.Shl, syntax.Shr, syntax.Ushr:
		return true
	}
	// /= and anything unexpected
	return false
}

// storesOf returns the stores into v within the function declaring it.
func (r *Refiner) storesOf(v *types.Var) []store {
	scope := v.Parent()
	idx, ok := r.stores[scope]
	if !ok {
		idx = r.indexStores(scope)
		r.stores[scope] = idx
	}
	return idx.stores[v]
}

func (r *Refiner) indexStores(scope *types.Scope) *storeIndex {
	idx := &storeIndex{stores: make(map[*types.Var][]store)}
	add := func(name *syntax.Name, s store) {
		if v, ok := r.eng.ObjectOf(name).(*types.Var); ok && v.Parent() == scope {
			idx.stores[v] = append(idx.stores[v], s)
		}
	}
	syntax.Inspect(scope.Node(), func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.VarSpec:
			if n.Value != nil {
				add(n.Name, store{value: n.Value})
			}
		case *syntax.AssignExpr:
			if name, ok := syntax.Unparen(n.LHS).(*syntax.Name); ok {
				add(name, store{op: n.Op, value: n.RHS})
			}
		}
		return true
	})
	return idx
}
