package codegen

import "github.com/you-not-fish/gum/internal/syntax"

func (g *gen) stmtList(b *Buffer, list []syntax.Stmt) {
	for _, s := range list {
		if g.failed() {
			return
		}
		g.stmt(b, s)
	}
}

func (g *gen) stmt(b *Buffer, s syntax.Stmt) {
	defer g.restore(g.at(s))

	switch s := s.(type) {
	case *syntax.EmptyStmt:
		// nothing

	case *syntax.ExprStmt:
		g.expr(b, s.X)
		stmtEnd(b)

	case *syntax.VarDecl:
		g.varDecl(b, s)

	case *syntax.FuncDecl:
		g.funcDecl(b, s)

	case *syntax.BlockStmt:
		b.Write("{")
		b.Newline()
		g.stmtList(b, s.Stmts)
		b.Write("}")
		b.Newline()

	case *syntax.IfStmt:
		b.Write("if", "(")
		g.test(b, s.Cond)
		b.Write(")")
		g.body(b, s.Then)
		if s.Else != nil {
			b.Write("else")
			g.body(b, s.Else)
		}

	case *syntax.WhileStmt:
		b.Write("while", "(")
		g.test(b, s.Cond)
		b.Write(")")
		g.body(b, s.Body)

	case *syntax.DoWhileStmt:
		b.Write("do")
		g.body(b, s.Body)
		b.Write("while", "(")
		g.test(b, s.Cond)
		b.Write(")")
		stmtEnd(b)

	case *syntax.ForStmt:
		g.forStmt(b, s)

	case *syntax.ReturnStmt:
		g.returnStmt(b, s)

	case *syntax.BranchStmt:
		switch s.Tok {
		case syntax.Break:
			b.Write("break")
		case syntax.Continue:
			b.Write("continue")
		default:
			g.errorf(UnhandledConstruct, s.Pos(), "branch statement %s", s.Tok)
		}
		stmtEnd(b)

	case *syntax.ThrowStmt:
		g.errorf(UnhandledConstruct, s.Pos(), "throw statement")

	default:
		g.errorf(UnhandledConstruct, s.Pos(), "statement %T", s)
	}
}

// body writes a branch or loop body as a braced block.
func (g *gen) body(b *Buffer, s syntax.Stmt) {
	if _, ok := s.(*syntax.BlockStmt); ok {
		g.stmt(b, s)
		return
	}
	b.Write("{")
	b.Newline()
	g.stmt(b, s)
	b.Write("}")
	b.Newline()
}

func (g *gen) forStmt(b *Buffer, s *syntax.ForStmt) {
	b.Write("for", "(")
	switch init := s.Init.(type) {
	case nil:
	case *syntax.VarDecl:
		g.forInit(b, init)
	case *syntax.ExprStmt:
		g.expr(b, init.X)
	default:
		g.errorf(UnhandledConstruct, init.Pos(), "for clause %T", init)
	}
	b.Write(";")
	if s.Cond != nil {
		g.test(b, s.Cond)
	}
	b.Write(";")
	if s.Post != nil {
		g.expr(b, s.Post)
	}
	b.Write(")")
	g.body(b, s.Body)
}

func (g *gen) returnStmt(b *Buffer, s *syntax.ReturnStmt) {
	if g.sig == nil {
		// a return at top level ends the program
		if s.Result != nil {
			g.expr(b, s.Result)
			stmtEnd(b)
		}
		b.Write("return", "0")
		stmtEnd(b)
		return
	}

	t := result(g.sig)
	b.Write("return")
	if s.Result == nil {
		g.zeroValue(b, t)
	} else {
		g.castTo(b, s.Result, t)
	}
	stmtEnd(b)
}
