// Package codegen translates a type-checked program to C source.
//
// Generation is a single depth-first walk over the syntax tree. Each
// expression is emitted with the type the Refiner gives it and converted
// wherever its context needs another. Declarations that C requires ahead
// of their use (struct typedefs, prototypes, globals and lifted function
// literals) are routed through the pre channel of the output Buffer;
// function definitions follow the entry point through its post channel.
package codegen

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/rtabi"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// Generate translates prog, checked by eng, to C. Top-level statements
// become the body of main. Struct typedefs and generated names are drawn
// from sess. On failure Generate returns the first *Error and no
// buffer.
func Generate(prog *syntax.Program, eng *infer.Engine, sess *Session) (*Buffer, error) {
	g := &gen{
		sess:      sess,
		eng:       eng,
		ref:       NewRefiner(eng),
		con:       NewAnalyzer(eng),
		scope:     eng.TopScope(),
		funcNames: make(map[syntax.Node]string),
		inPlace:   set.New[*syntax.VarSpec](0),
		static:    set.New[*syntax.VarSpec](0),
	}
	b := NewBuffer()
	g.program(b, prog)
	if g.err != nil {
		return nil, g.err
	}
	return b, nil
}

// Command-line arguments are copied from main's parameters into globals
// so that functions can read them.
const (
	mainArgc = "gum_argc"
	mainArgv = "gum_argv"
)

func (g *gen) program(b *Buffer, prog *syntax.Program) {
	defer g.restore(g.at(prog))

	args := NewBuffer()
	args.Write("int", "argc", ";")
	args.Newline()
	args.Write("char", "*", "*", "argv", ";")
	args.Newline()
	Pre(args, b)

	g.hoistFuncs(b, prog)
	g.hoistGlobals(b, prog)

	b.Write("int", rtabi.Main, "(", "int", mainArgc, ",", "char", "*", mainArgv, "[", "]", ")", "{")
	b.Newline()
	b.Write("argc", "=", mainArgc, ";")
	b.Newline()
	b.Write("argv", "=", mainArgv, ";")
	b.Newline()
	g.stmtList(b, prog.Body)
	b.Write("return", "0", ";")
	b.Newline()
	b.Write("}")
	b.Newline()
}

// hoistFuncs names the function declarations of the function body (or
// program) n and writes their prototypes ahead of b.
func (g *gen) hoistFuncs(b *Buffer, n syntax.Node) {
	syntax.InspectBody(n, func(n syntax.Node) bool {
		d, ok := n.(*syntax.FuncDecl)
		if !ok {
			return true
		}
		name := g.sess.NewID(rtabi.FuncPrefix)
		if g.scope.IsTop() {
			name = g.sess.mangle(d.Name.Value)
		}
		g.funcNames[d] = name

		sig := g.eng.FuncType(d)
		if sig == nil {
			g.errorf(UnrepresentableType, d.Pos(), "function %s has no type", d.Name.Value)
			return false
		}
		proto := NewBuffer()
		g.signature(proto, name, sig)
		stmtEnd(proto)
		Pre(proto, b)
		return false
	})
}

// signature writes a function declarator with its result type.
func (g *gen) signature(b *Buffer, name string, sig *types.Func) {
	g.writeType(b, result(sig), func() {
		b.Write(name)
		g.writeParams(b, sig)
	}, false, 0)
}

func result(sig *types.Func) types.Type {
	if sig.Result() == nil {
		return types.Typ[types.Dynamic]
	}
	return sig.Result()
}

// liftFunc emits the definition of a function literal ahead of b and
// returns its C name. A literal reached again, such as through an
// inlined initializer, reuses its first definition.
func (g *gen) liftFunc(b *Buffer, lit *syntax.FuncLit) string {
	if name, ok := g.funcNames[lit]; ok {
		return name
	}
	name := g.sess.NewID(rtabi.FuncPrefix)
	g.funcNames[lit] = name

	def := NewBuffer()
	g.funcDef(def, name, lit, lit.Body)
	Pre(def, b)
	return name
}

// funcDecl emits the definition of a function declaration after b.
func (g *gen) funcDecl(b *Buffer, d *syntax.FuncDecl) {
	name, ok := g.funcNames[d]
	if !ok {
		g.errorf(UnhandledConstruct, d.Pos(), "function %s was not hoisted", d.Name.Value)
		return
	}
	def := NewBuffer()
	g.funcDef(def, name, d, d.Body)
	Post(def, b)
}

// funcDef writes the definition of the function fn under the C name
// name. The body's locals are declared first; a function that falls off
// its end returns the zero value of its result type.
func (g *gen) funcDef(b *Buffer, name string, fn syntax.Node, body *syntax.BlockStmt) {
	sig := g.eng.FuncType(fn)
	scope := g.eng.FuncScope(fn)
	if sig == nil || scope == nil {
		g.errorf(UnrepresentableType, fn.Pos(), "function %s has no type", name)
		return
	}

	savedScope, savedSig := g.scope, g.sig
	g.scope, g.sig = scope, sig
	defer func() { g.scope, g.sig = savedScope, savedSig }()

	g.signature(b, name, sig)
	b.Write("{")
	b.Newline()
	g.hoistFuncs(b, body)
	g.declareLocals(b, body)
	g.stmtList(b, body.Stmts)
	if !endsInReturn(body.Stmts) {
		b.Write("return")
		g.zeroValue(b, result(sig))
		stmtEnd(b)
	}
	b.Write("}")
	b.Newline()
}

func endsInReturn(stmts []syntax.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*syntax.ReturnStmt)
	return ok
}
