package infer

import "github.com/you-not-fish/gum/internal/syntax"

// stmtList checks a list of statements.
func (c *checker) stmtList(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a statement.
func (c *checker) stmt(s syntax.Stmt) {
	if s == nil {
		return
	}
	c.eng.nodeScope[s] = c.scope

	switch s := s.(type) {
	case *syntax.VarDecl:
		c.varDecl(s)

	case *syntax.FuncDecl:
		c.funcDecl(s)

	case *syntax.ExprStmt:
		c.expr(s.X)

	case *syntax.BlockStmt:
		c.stmtList(s.Stmts)

	case *syntax.IfStmt:
		c.expr(s.Cond)
		c.stmt(s.Then)
		c.stmt(s.Else)

	case *syntax.WhileStmt:
		c.expr(s.Cond)
		c.stmt(s.Body)

	case *syntax.DoWhileStmt:
		c.stmt(s.Body)
		c.expr(s.Cond)

	case *syntax.ForStmt:
		c.stmt(s.Init)
		if s.Cond != nil {
			c.expr(s.Cond)
		}
		if s.Post != nil {
			c.expr(s.Post)
		}
		c.stmt(s.Body)

	case *syntax.ReturnStmt:
		if s.Result == nil {
			return
		}
		a := c.expr(s.Result)
		if c.fn != nil {
			a.flowTo(c.fn.ret)
		}

	case *syntax.ThrowStmt:
		c.expr(s.X)

	case *syntax.BranchStmt, *syntax.EmptyStmt:
		// nothing to do

	default:
		c.errorf(s.Pos(), "unexpected statement %T", s)
	}
}

// varDecl makes each initializer flow into its variable.
func (c *checker) varDecl(d *syntax.VarDecl) {
	for _, spec := range d.List {
		c.eng.nodeScope[spec] = c.scope
		obj := c.eng.objects[spec.Name]
		if obj == nil {
			continue
		}
		target := c.objAval(obj)
		c.record(spec.Name, target)
		if spec.Value != nil {
			c.expr(spec.Value).flowTo(target)
		}
	}
}

// funcDecl checks the body of a hoisted function declaration.
func (c *checker) funcDecl(decl *syntax.FuncDecl) {
	s, ok := c.eng.funcs[decl]
	if !ok {
		// redeclared; still check the body
		s = newFunc(decl.Params)
		c.eng.funcs[decl] = s
	}
	if obj := c.eng.objects[decl.Name]; obj != nil {
		c.record(decl.Name, c.objAval(obj))
	}
	scope := c.openFunc(decl, decl.Params, s, "function "+decl.Name.Value)
	c.funcBody(scope, s, decl.Body)
}
