package syntax

import "io"

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on JavaScript source code.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos
	nl  bool // line terminator before the current token

	// Error handling
	errh   func(pos Pos, msg string)
	errcnt int
	first  error // first error encountered
	abort  bool  // set to true when error limit reached

	// Context tracking
	fnest int // function nesting depth (0 = top-level)
	lnest int // loop nesting depth within the current function
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	scanErrh := func(line, col uint32, msg string) {
		if errh != nil {
			errh(NewPos(filename, line, col), msg)
		}
	}

	p := &Parser{
		scanner: NewScanner(filename, src, scanErrh),
		errh:    errh,
	}
	p.next() // prime the parser with first token
	return p
}

// SetASIEnabled passes the ASI setting to the underlying scanner.
func (p *Parser) SetASIEnabled(enabled bool) {
	p.scanner.SetASIEnabled(enabled)
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
	p.nl = p.scanner.NewlineBefore()
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String())
		p.advance()
	}
}

// expect is like want but returns the position of the expected token.
func (p *Parser) expect(tok Token) Pos {
	pos := p.pos
	p.want(tok)
	return pos
}

// semi terminates a statement. With ASI enabled a missing semicolon is
// accepted before '}', at EOF, or when a line terminator precedes the
// current token.
func (p *Parser) semi() {
	if p.got(_Semi) {
		return
	}
	if p.scanner.ASIEnabled() && (p.tok == _Rbrace || p.tok == _EOF || p.nl) {
		return
	}
	p.syntaxError("expected ;")
	p.advance()
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

// syntaxErrorAt reports a syntax error at a specific position.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	p.errorLimitCheck(pos)
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(pos Pos) {
	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// advance skips tokens until it finds a synchronization point.
// This is used for error recovery.
func (p *Parser) advance() {
	sync := map[Token]bool{
		_Semi:     true,
		_Rbrace:   true,
		_Rparen:   true,
		_Rbrack:   true,
		_Var:      true,
		_Function: true,
		_If:       true,
		_For:      true,
		_While:    true,
		_Do:       true,
		_Return:   true,
		_Break:    true,
		_Continue: true,
		_EOF:      true,
	}

	for p.tok != _EOF && !sync[p.tok] {
		p.next()
	}

	// Consume sync point to avoid repeated errors at the same position
	if p.tok != _EOF {
		p.next()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete source file and returns the AST.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	prog.pos = p.pos

	for !p.abort && p.tok != _EOF {
		if s := p.stmt(); s != nil {
			prog.Body = append(prog.Body, s)
		}
	}

	return prog
}

// Concat joins several parsed files into one program, preserving order.
// Positions keep referring to their original files.
func Concat(files ...*Program) *Program {
	prog := &Program{}
	for _, f := range files {
		if f == nil {
			continue
		}
		if !prog.pos.IsValid() {
			prog.pos = f.pos
		}
		prog.Body = append(prog.Body, f.Body...)
	}
	return prog
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected identifier")
		// Return a placeholder for error recovery
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// propertyName parses the name after '.' or an object literal key.
// Keywords and string or number literals are accepted.
func (p *Parser) propertyName() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	switch {
	case p.tok == _Name, p.tok.IsKeyword(), p.tok == _Literal:
		if p.tok.IsKeyword() {
			n.Value = p.tok.String()
		}
		p.next()
	default:
		p.syntaxError("expected property name")
		n.Value = "_"
	}
	return n
}

// ----------------------------------------------------------------------------
// Declarations

// varDecl parses: var a [= x], b [= y]
// The terminating semicolon is left to the caller.
func (p *Parser) varDecl() *VarDecl {
	d := &VarDecl{}
	d.pos = p.pos

	p.want(_Var)
	for {
		spec := &VarSpec{}
		spec.pos = p.pos
		spec.Name = p.name()
		if p.got(_Assign) {
			spec.Value = p.assignExpr()
		}
		d.List = append(d.List, spec)
		if !p.got(_Comma) {
			break
		}
	}
	return d
}

// funcDecl parses: function Name(params) { body }
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Function)
	d.Name = p.name()
	d.Params, d.Body = p.funcBody()
	return d
}

// funcBody parses the parameter list and body shared by declarations
// and function literals.
func (p *Parser) funcBody() ([]*Name, *BlockStmt) {
	params := p.paramList()

	p.fnest++
	lnest := p.lnest
	p.lnest = 0
	body := p.blockStmt()
	p.lnest = lnest
	p.fnest--

	return params, body
}

// paramList parses (a, b, ...)
func (p *Parser) paramList() []*Name {
	p.want(_Lparen)

	var params []*Name
	for p.tok != _Rparen && p.tok != _EOF && !p.abort {
		params = append(params, p.name())
		if !p.got(_Comma) {
			break
		}
	}

	p.want(_Rparen)
	return params
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement.
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Lbrace:
		return p.blockStmt()

	case _Var:
		d := p.varDecl()
		p.semi()
		return d

	case _Function:
		return p.funcDecl()

	case _If:
		return p.ifStmt()

	case _While:
		return p.whileStmt()

	case _Do:
		return p.doWhileStmt()

	case _For:
		return p.forStmt()

	case _Return:
		return p.returnStmt()

	case _Break, _Continue:
		return p.branchStmt()

	case _Throw:
		return p.throwStmt()

	case _Semi:
		s := &EmptyStmt{}
		s.pos = p.pos
		p.next()
		return s

	default:
		s := &ExprStmt{}
		s.pos = p.pos
		s.X = p.expr()
		p.semi()
		return s
	}
}

// blockStmt parses { stmts... }
func (p *Parser) blockStmt() *BlockStmt {
	b := &BlockStmt{}
	b.pos = p.pos

	p.want(_Lbrace)

	for p.tok != _Rbrace && p.tok != _EOF && !p.abort {
		b.Stmts = append(b.Stmts, p.stmt())
	}

	b.Rbrace = p.pos
	p.want(_Rbrace)

	return b
}

// parenCond parses ( expr )
func (p *Parser) parenCond() Expr {
	p.want(_Lparen)
	x := p.expr()
	p.want(_Rparen)
	return x
}

// loopBody parses the body of a loop statement.
func (p *Parser) loopBody() Stmt {
	p.lnest++
	s := p.stmt()
	p.lnest--
	return s
}

// ifStmt parses: if (cond) then [else else]
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Cond = p.parenCond()
	s.Then = p.stmt()

	if p.got(_Else) {
		s.Else = p.stmt()
	}

	return s
}

// whileStmt parses: while (cond) body
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.pos = p.pos

	p.want(_While)
	s.Cond = p.parenCond()
	s.Body = p.loopBody()
	return s
}

// doWhileStmt parses: do body while (cond)
func (p *Parser) doWhileStmt() Stmt {
	s := &DoWhileStmt{}
	s.pos = p.pos

	p.want(_Do)
	s.Body = p.loopBody()
	p.want(_While)
	s.Cond = p.parenCond()
	// A semicolon is always optional after do-while.
	p.got(_Semi)
	return s
}

// forStmt parses: for ([init]; [cond]; [post]) body
func (p *Parser) forStmt() Stmt {
	s := &ForStmt{}
	s.pos = p.pos

	p.want(_For)
	p.want(_Lparen)

	switch p.tok {
	case _Semi:
	case _Var:
		s.Init = p.varDecl()
	default:
		init := &ExprStmt{}
		init.pos = p.pos
		init.X = p.expr()
		s.Init = init
	}
	if p.tok == _In {
		p.syntaxError("for-in loops are not supported")
		p.advance()
		return s
	}
	p.want(_Semi)

	if p.tok != _Semi {
		s.Cond = p.expr()
	}
	p.want(_Semi)

	if p.tok != _Rparen {
		s.Post = p.expr()
	}
	p.want(_Rparen)

	s.Body = p.loopBody()
	return s
}

// returnStmt parses: return [expr]
// A line terminator directly after return ends the statement.
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	if p.fnest == 0 {
		p.syntaxError("return statement outside function")
	}
	p.want(_Return)

	if p.tok != _Semi && p.tok != _Rbrace && p.tok != _EOF && !p.nl {
		s.Result = p.expr()
	}

	p.semi()
	return s
}

// branchStmt parses: break or continue
func (p *Parser) branchStmt() Stmt {
	s := &BranchStmt{Tok: p.tok}
	s.pos = p.pos
	if p.lnest == 0 {
		p.syntaxError(p.tok.String() + " statement outside loop")
	}
	p.next()
	if p.tok == _Name && !p.nl {
		p.syntaxError("labeled " + s.Tok.String() + " is not supported")
		p.next()
	}
	p.semi()
	return s
}

// throwStmt parses: throw expr
func (p *Parser) throwStmt() Stmt {
	s := &ThrowStmt{}
	s.pos = p.pos

	p.want(_Throw)
	if p.nl {
		p.syntaxError("line break after throw")
	}
	s.X = p.expr()
	p.semi()
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses a comma-separated expression sequence.
func (p *Parser) expr() Expr {
	x := p.assignExpr()
	if p.tok != _Comma {
		return x
	}

	seq := &SeqExpr{List: []Expr{x}}
	seq.pos = x.Pos()
	for p.got(_Comma) {
		seq.List = append(seq.List, p.assignExpr())
	}
	return seq
}

// assignExpr parses an assignment or a conditional expression.
// Assignment is right associative.
func (p *Parser) assignExpr() Expr {
	x := p.condExpr()

	switch p.tok {
	case _Assign, _AssignOp:
		var op Token
		if p.tok == _AssignOp {
			op = p.scanner.Op()
		}
		switch Unparen(x).(type) {
		case *Name, *SelectorExpr, *IndexExpr:
		default:
			p.syntaxError("invalid assignment target")
		}
		a := &AssignExpr{Op: op, LHS: x}
		a.pos = x.Pos()
		p.next()
		a.RHS = p.assignExpr()
		return a
	}

	return x
}

// condExpr parses: cond ? x : y
func (p *Parser) condExpr() Expr {
	x := p.binaryExpr(0)
	if p.tok != _Question {
		return x
	}

	c := &CondExpr{Cond: x}
	c.pos = x.Pos()
	p.next()
	c.X = p.assignExpr()
	p.want(_Colon)
	c.Y = p.assignExpr()
	return c
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements Pratt parsing / precedence climbing.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses a prefix expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Tilde, _Sub, _Add, _Typeof, _Void, _Delete:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op

	case _Inc, _Dec:
		u := &UpdateExpr{Op: p.tok, Prefix: true}
		u.pos = p.pos
		p.next()
		u.X = p.unaryExpr()
		p.checkUpdateTarget(u)
		return u
	}

	x := p.primaryExpr()

	// Postfix update binds only when no line terminator intervenes.
	if (p.tok == _Inc || p.tok == _Dec) && !p.nl {
		u := &UpdateExpr{Op: p.tok, X: x}
		u.pos = x.Pos()
		p.next()
		p.checkUpdateTarget(u)
		return u
	}
	return x
}

// checkUpdateTarget reports ++ and -- applied to something that is not
// a variable or member.
func (p *Parser) checkUpdateTarget(u *UpdateExpr) {
	switch Unparen(u.X).(type) {
	case *Name, *SelectorExpr, *IndexExpr:
	default:
		p.syntaxErrorAt(u.Pos(), "invalid "+u.Op.String()+" operand")
	}
}

// primaryExpr parses primary expressions and postfix operations.
func (p *Parser) primaryExpr() Expr {
	var x Expr
	if p.tok == _New {
		x = p.newExpr()
	} else {
		x = p.operand()
	}

	// Parse postfix operations: calls, index, selector
	for {
		switch p.tok {
		case _Lparen:
			x = p.callExpr(x)

		case _Lbrack:
			x = p.indexExpr(x)

		case _Dot:
			x = p.selectorExpr(x)

		default:
			return x
		}
	}
}

// operand parses an operand (the base of primary expressions).
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.next()
		return n

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.scanner.LitKind()}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen: // parenthesized expression
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	case _Function:
		return p.funcLit()

	case _Lbrace:
		return p.objectLit()

	case _Lbrack:
		return p.arrayLit()

	case _This:
		t := &ThisExpr{}
		t.pos = p.pos
		p.next()
		return t

	default:
		p.syntaxError("expected operand")
		n := &Name{Value: "_"} // error recovery
		n.pos = p.pos
		p.advance()
		return n
	}
}

// funcLit parses: function [name](params) { body }
func (p *Parser) funcLit() Expr {
	f := &FuncLit{}
	f.pos = p.pos

	p.want(_Function)
	if p.tok == _Name {
		f.Name = p.name()
	}
	f.Params, f.Body = p.funcBody()
	return f
}

// objectLit parses { key: value, ... }
func (p *Parser) objectLit() Expr {
	o := &ObjectLit{}
	o.pos = p.pos

	p.want(_Lbrace)
	for p.tok != _Rbrace && p.tok != _EOF && !p.abort {
		kv := &KeyValueExpr{}
		kv.pos = p.pos
		kv.Key = p.propertyName()
		p.want(_Colon)
		kv.Value = p.assignExpr()
		o.Props = append(o.Props, kv)
		if !p.got(_Comma) {
			break
		}
	}
	o.Rbrace = p.pos
	p.want(_Rbrace)
	return o
}

// arrayLit parses [a, b, ...]
func (p *Parser) arrayLit() Expr {
	a := &ArrayLit{}
	a.pos = p.pos

	p.want(_Lbrack)
	for p.tok != _Rbrack && p.tok != _EOF && !p.abort {
		if p.tok == _Comma {
			p.syntaxError("array holes are not supported")
			p.next()
			continue
		}
		a.Elems = append(a.Elems, p.assignExpr())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rbrack)
	return a
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun Expr) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()
	call.Args = p.args()
	return call
}

// args parses a parenthesized argument list.
func (p *Parser) args() []Expr {
	p.want(_Lparen)
	var list []Expr
	for p.tok != _Rparen && p.tok != _EOF && !p.abort {
		list = append(list, p.assignExpr())
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rparen)
	return list
}

// indexExpr parses X[Index]
func (p *Parser) indexExpr(x Expr) Expr {
	idx := &IndexExpr{X: x}
	idx.pos = x.Pos()

	p.want(_Lbrack)
	idx.Index = p.expr()
	p.want(_Rbrack)

	return idx
}

// selectorExpr parses X.Sel
func (p *Parser) selectorExpr(x Expr) Expr {
	sel := &SelectorExpr{X: x}
	sel.pos = x.Pos()

	p.want(_Dot)
	if p.tok == _Literal {
		p.syntaxError("expected property name")
	}
	sel.Sel = p.propertyName()

	return sel
}

// newExpr parses new Fun[(args)]
func (p *Parser) newExpr() Expr {
	n := &NewExpr{}
	n.pos = p.pos

	p.want(_New)
	var fun Expr
	if p.tok == _New {
		fun = p.newExpr()
	} else {
		fun = p.operand()
	}
	for {
		switch p.tok {
		case _Dot:
			fun = p.selectorExpr(fun)
			continue
		case _Lbrack:
			fun = p.indexExpr(fun)
			continue
		}
		break
	}
	n.Fun = fun
	if p.tok == _Lparen {
		n.Args = p.args()
	}
	return n
}
