package codegen

import (
	"github.com/you-not-fish/gum/internal/rtabi"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// A var is visible throughout its function, before its declarator runs,
// so every variable is declared when its function (or the program)
// starts and each declarator with a value becomes an assignment. Two
// kinds of constant are declared at their declarator instead, with their
// value: globals whose initializer C accepts in a static definition, and
// locals declared directly in the function body.

// declared returns the variables a function body (or the program)
// declares, in order of their first declarator.
func (g *gen) declared(n syntax.Node) []*syntax.VarSpec {
	var specs []*syntax.VarSpec
	seen := make(map[*types.Var]bool)
	syntax.InspectBody(n, func(n syntax.Node) bool {
		spec, ok := n.(*syntax.VarSpec)
		if !ok {
			return true
		}
		v, ok := g.eng.ObjectOf(spec.Name).(*types.Var)
		if !ok || seen[v] || v.Parent() != g.scope {
			return true
		}
		seen[v] = true
		switch {
		case v.IsParam(), v.IsPredeclared(), g.eng.IsSeeded(v):
			// declared by the signature or the runtime
			return true
		}
		specs = append(specs, spec)
		return true
	})
	return specs
}

// directSpecs returns the declarators of var statements in stmts.
func directSpecs(stmts []syntax.Stmt) map[*syntax.VarSpec]bool {
	direct := make(map[*syntax.VarSpec]bool)
	for _, s := range stmts {
		if d, ok := s.(*syntax.VarDecl); ok {
			for _, spec := range d.List {
				direct[spec] = true
			}
		}
	}
	return direct
}

// hoistGlobals declares the program's variables ahead of b.
func (g *gen) hoistGlobals(b *Buffer, prog *syntax.Program) {
	direct := directSpecs(prog.Body)
	for _, spec := range g.declared(prog) {
		v := g.eng.ObjectOf(spec.Name).(*types.Var)
		t := g.ref.VarType(v)
		name := g.sess.mangle(v.Name())

		decl := NewBuffer()
		if direct[spec] && spec.Value != nil && g.con.IsConst(spec.Name) && g.staticInit(spec.Value, t) {
			g.static.Insert(spec)
			decl.Write("extern")
			g.writeType(decl, t, func() { decl.Write(name) }, g.constQualified(v, t), 0)
		} else {
			g.writeType(decl, t, func() { decl.Write(name) }, false, 0)
			if types.IsDynamic(t) {
				// undefined until assigned
				decl.Write("=", "{", itoa(rtabi.TagUndefined), "}")
			}
		}
		stmtEnd(decl)
		Pre(decl, b)
	}
}

// declareLocals declares the variables of the function body being
// emitted.
func (g *gen) declareLocals(b *Buffer, body *syntax.BlockStmt) {
	direct := directSpecs(body.Stmts)
	early := g.usedEarly(body)
	for _, spec := range g.declared(body) {
		v := g.eng.ObjectOf(spec.Name).(*types.Var)
		if direct[spec] && spec.Value != nil && !early[v] && g.con.IsConst(spec.Name) {
			g.inPlace.Insert(spec)
			continue
		}
		t := g.ref.VarType(v)
		name := g.sess.mangle(v.Name())
		g.writeType(b, t, func() { b.Write(name) }, false, 0)
		if types.IsDynamic(t) {
			b.Write("=", rtabi.Undefined)
		}
		stmtEnd(b)
	}
}

// usedEarly returns the variables of body read ahead of their first
// declarator. Such a variable cannot be defined at its declarator.
func (g *gen) usedEarly(body *syntax.BlockStmt) map[*types.Var]bool {
	early := make(map[*types.Var]bool)
	syntax.InspectBody(body, func(n syntax.Node) bool {
		x, ok := n.(*syntax.Name)
		if !ok {
			return true
		}
		v, ok := g.eng.ObjectOf(x).(*types.Var)
		if !ok || v.Parent() != g.scope {
			return true
		}
		if d := v.Decl(); d != nil && x.Pos().Before(d.Name.Pos()) {
			early[v] = true
		}
		return true
	})
	return early
}

// constQualified reports whether a constant of type t is declared const.
// A struct whose fields are assigned is not.
func (g *gen) constQualified(v *types.Var, t types.Type) bool {
	if _, ok := t.(*types.Struct); ok {
		return !g.con.MemberWritten(v)
	}
	return true
}

// staticInit reports whether x, converted to t, is a constant expression
// C accepts in the definition of a global.
func (g *gen) staticInit(x syntax.Expr, t types.Type) bool {
	from := g.ref.TypeOf(x)
	if !(types.Identical(from, t) || types.SameKind(from, t)) {
		return false
	}
	switch x := syntax.Unparen(x).(type) {
	case *syntax.BasicLit:
		return x.Kind != syntax.NullLit
	case *syntax.Operation:
		lit, ok := syntax.Unparen(x.X).(*syntax.BasicLit)
		return x.Op == syntax.Sub && x.Y == nil && ok && lit.Kind == syntax.NumberLit
	case *syntax.FuncLit:
		return true
	case *syntax.Name:
		switch obj := g.eng.ObjectOf(x).(type) {
		case *types.FuncObj:
			return true
		case *types.Var:
			if !obj.IsPredeclared() {
				return false
			}
			switch obj.Type().(type) {
			case *types.Basic:
				// argc, argv and undefined are not constant expressions
				return !types.IsDynamic(obj.Type()) && g.con.IsConst(x)
			case *types.Func:
				return true
			}
		}
	}
	return false
}

// varDecl emits the declarators of a var statement.
func (g *gen) varDecl(b *Buffer, d *syntax.VarDecl) {
	for _, spec := range d.List {
		switch {
		case g.static.Contains(spec):
			def := NewBuffer()
			g.constDef(def, spec)
			Pre(def, b)
		case g.inPlace.Contains(spec):
			g.constDef(b, spec)
		case spec.Value != nil:
			g.storeVar(b, spec)
			stmtEnd(b)
		}
	}
}

// constDef writes the definition of a constant.
func (g *gen) constDef(b *Buffer, spec *syntax.VarSpec) {
	defer g.restore(g.at(spec))
	v := g.eng.ObjectOf(spec.Name).(*types.Var)
	t := g.ref.VarType(v)
	name := g.sess.mangle(v.Name())
	g.writeType(b, t, func() { b.Write(name) }, g.constQualified(v, t), 0)
	b.Write("=")
	g.castTo(b, spec.Value, t)
	stmtEnd(b)
}

// storeVar writes the assignment of a declarator's value.
func (g *gen) storeVar(b *Buffer, spec *syntax.VarSpec) {
	defer g.restore(g.at(spec))
	obj := g.eng.ObjectOf(spec.Name)
	if obj == nil {
		g.errorf(UnhandledConstruct, spec.Pos(), "undeclared variable %s", spec.Name.Value)
		return
	}
	t := g.ref.ObjectType(obj)
	g.name(b, spec.Name, true)
	b.Write("=")
	g.castTo(b, spec.Value, t)
}

// forInit writes the declarators of a for statement's var clause as one
// comma expression.
func (g *gen) forInit(b *Buffer, d *syntax.VarDecl) {
	first := true
	for _, spec := range d.List {
		if spec.Value == nil {
			continue
		}
		if !first {
			b.Write(",")
		}
		first = false
		g.storeVar(b, spec)
	}
}
